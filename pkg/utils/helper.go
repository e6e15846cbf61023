package utils

import "strings"

// NormalizeEmail lowercases and trims an email used as a lookup key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
