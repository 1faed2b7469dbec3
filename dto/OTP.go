package dto

// ProcessOTPRequest carries a one-time code submitted for an email address
type ProcessOTPRequest struct {
	Email     string `json:"email" validate:"required"`
	OTP       string `json:"otp" validate:"required"`
	UserAgent string `json:"user_agent,omitempty"`
}

// ResendOTPRequest asks for a fresh code to be sent to Email
type ResendOTPRequest struct {
	Email string `json:"email" validate:"required"`
}
