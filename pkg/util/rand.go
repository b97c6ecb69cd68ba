// Package util contains any functions used across the application that
// don't match any other package
package util

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand"
	"time"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var src = mrand.New(mrand.NewSource(time.Now().UnixNano()))

// RandStr returns a fast, non-cryptographic random string. Only used
// for request IDs, anything security sensitive goes through
// GenerateToken instead.
func RandStr(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[src.Intn(len(charset))]
	}

	return string(b)
}

// GenerateToken returns n random bytes hex encoded, from crypto/rand
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)

	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
