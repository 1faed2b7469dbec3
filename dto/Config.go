package dto

// SetConfigRequest creates the key or overwrites its value
type SetConfigRequest struct {
	Key   string `json:"key" validate:"required,max=255"`
	Value string `json:"value"`
}

// Features is the flag map attached to every API request, keyed without the "feature." prefix.
type Features map[string]string
