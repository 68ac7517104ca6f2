package model

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const (
	referralPrefix   = "CL"
	referralAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referralLength   = 6
)

// GenerateReferralCode returns CL followed by six upper-case alphanumerics.
func GenerateReferralCode(source io.Reader) (string, error) {
	if source == nil {
		source = rand.Reader
	}

	code := make([]byte, referralLength)
	limit := big.NewInt(int64(len(referralAlphabet)))

	for i := range code {
		n, err := rand.Int(source, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate referral code: %w", err)
		}

		code[i] = referralAlphabet[n.Int64()]
	}

	return referralPrefix + string(code), nil
}
