package dto

// UUIDRequest validates an id taken from the route or the body
type UUIDRequest struct {
	ID string `json:"id" params:"id" validate:"required,uuid"`
}
