package model_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanbook/internal/domains/auth/model"
)

func TestNewToken(t *testing.T) {
	raw, digest, err := model.NewToken(bytes.NewReader(make([]byte, 32)))

	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("00", 32), raw)
	assert.Len(t, digest, 64)
	assert.Equal(t, model.Digest(raw), digest)
	assert.NotEqual(t, raw, digest)
}

func TestNewTokenShortSource(t *testing.T) {
	_, _, err := model.NewToken(bytes.NewReader([]byte{1, 2}))

	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestDigestIsStable(t *testing.T) {
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		model.Digest("hello"))
}
