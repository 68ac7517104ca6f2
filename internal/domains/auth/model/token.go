package model

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

const tokenBytes = 32

// NewToken returns a random hex token for mailing and the sha256 digest to persist.
func NewToken(source io.Reader) (raw, digest string, err error) {
	if source == nil {
		source = rand.Reader
	}

	buf := make([]byte, tokenBytes)
	if _, err = io.ReadFull(source, buf); err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}

	raw = hex.EncodeToString(buf)

	return raw, Digest(raw), nil
}

func Digest(raw string) string {
	sum := sha256.Sum256([]byte(raw))

	return hex.EncodeToString(sum[:])
}
