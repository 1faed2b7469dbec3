package util

import (
	"strings"
)

// IsDuplicateKeyError checks if the error is a database constraint violation
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	// Postgres reports unique violations as SQLSTATE 23505
	return strings.Contains(err.Error(), "duplicate key value") ||
		strings.Contains(err.Error(), "23505")
}
