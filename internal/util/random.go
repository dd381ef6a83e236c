package util

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	mrand "math/rand"
)

// RandomToken returns a URL-safe random token with n random bytes of entropy.
// Share-link identifiers are minted with this.
func RandomToken(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("token size must be > 0")
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

// GeneratePassword produces a throwaway share-link password from a fixed
// alphanumeric-plus-symbol charset. It uses a non-cryptographic random
// source and is not suitable for anything security-sensitive.
func GeneratePassword(length int) string {
	if length <= 0 {
		length = 12
	}
	out := make([]byte, length)
	for i := range out {
		out[i] = passwordCharset[mrand.Intn(len(passwordCharset))]
	}
	return string(out)
}
