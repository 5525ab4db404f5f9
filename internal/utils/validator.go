package utils

import "strings"

// ValidatePassword checks the minimum password policy: at least 8
// characters with one uppercase letter, one lowercase letter and one digit.
func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case 'a' <= r && r <= 'z':
			hasLower = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

// SanitizeEmail lowercases and trims an email address so lookups are
// case-insensitive.
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
