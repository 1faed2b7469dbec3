package dto

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is what the auth middleware attaches to the request as the current user
type AuthClaims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// Identity prefers the explicit user_id and falls back to the subject.
func (c *AuthClaims) Identity() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

func (c *AuthClaims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}
