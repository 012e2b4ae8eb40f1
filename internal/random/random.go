// Package random wraps crypto/rand for token and identifier generation.
package random

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Bytes returns n bytes read from the system's secure random source.
func Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("random: reading %d bytes: %w", n, err)
	}
	return b, nil
}

// Base64String returns n random bytes encoded with standard, padded base64.
func Base64String(n int) (string, error) {
	b, err := Bytes(n)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// URLString returns n random bytes encoded with unpadded URL-safe base64,
// suitable for cookie values.
func URLString(n int) (string, error) {
	b, err := Bytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
