package security

import (
	"crypto/rand"
	"math/big"
)

const codeLength = 6

// GenerateVerificationCode returns a random code of exactly 6 decimal
// digits. The first digit is never 0 so the code survives being
// treated as a number somewhere down the line.
func GenerateVerificationCode() (string, error) {
	rangeStart := int64(1)
	for i := 0; i < codeLength-1; i++ {
		rangeStart *= 10
	}

	// [100000, 999999]
	n, err := rand.Int(rand.Reader, big.NewInt(rangeStart*9))
	if err != nil {
		return "", err
	}

	return big.NewInt(0).Add(n, big.NewInt(rangeStart)).String(), nil
}
