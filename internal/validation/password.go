// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
)

const (
	maxUsernameLength = 50
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidateUsername enforces the column width and the allowed character set.
func ValidateUsername(username string) error {
	if len(username) > maxUsernameLength {
		return fmt.Errorf("cannot create a new user because username exceeds %d characters", maxUsernameLength)
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("cannot create a new user because username contains a restricted character")
	}
	return nil
}

// ValidatePassword checks the password can be hashed without truncation.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("password must not exceed %d bytes", maxPasswordBytes)
	}
	return nil
}
