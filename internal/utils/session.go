package utils

import (
	"crypto/rand"
	"fmt"
)

// GenerateSessionID mints the opaque token handed to anonymous
// visitors. It carries no claims; favorites are scoped to whatever
// string the client presents back.
func GenerateSessionID() (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 32

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	for i := 0; i < length; i++ {
		b[i] = charset[b[i]%byte(len(charset))]
	}
	return string(b), nil
}
