package model

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"

	"cleanbook/shared/constant"
)

const (
	numberPrefix = "CL"
	numberRange  = 10000
)

// NumberGenerator produces booking numbers of the form CL + YYMMDD + 4 digits.
type NumberGenerator struct {
	Random io.Reader
}

func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{Random: rand.Reader}
}

func (g *NumberGenerator) Generate(at time.Time) (string, error) {
	source := g.Random
	if source == nil {
		source = rand.Reader
	}

	n, err := rand.Int(source, big.NewInt(numberRange))
	if err != nil {
		return "", fmt.Errorf("failed to generate booking number: %w", err)
	}

	return fmt.Sprintf("%s%s%04d", numberPrefix, at.Format(constant.NumberDateFmt), n.Int64()), nil
}
