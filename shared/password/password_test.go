package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cleanbook/shared/password"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectedErr error
	}{
		{name: "customer registration", password: "Clean1234!"},
		{name: "seeded admin", password: "admin-Passw0rd"},
		{name: "hangul passphrase", password: "깨끗한집2026!"},
		{name: "bcrypt byte limit", password: strings.Repeat("a", 72)},
		{name: "empty", password: "", expectedErr: password.ErrEmptyPassword},
		{name: "over the bcrypt byte limit", password: strings.Repeat("청", 25), expectedErr: bcrypt.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$2a$"))

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, password.DefaultCost, cost)
			assert.NoError(t, password.Verify(tt.password, hash))
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("Clean1234!")
	require.NoError(t, err)

	second, err := password.Hash("Clean1234!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	const current = "Clean1234!"

	hash, err := password.Hash(current)
	require.NoError(t, err)

	tests := []struct {
		name        string
		password    string
		hash        string
		expectedErr error
		wrapped     bool
	}{
		{name: "login with the current password", password: current, hash: hash},
		{name: "login with a previous password", password: "Clean5678!", hash: hash, expectedErr: password.ErrInvalidPassword},
		{name: "case differs", password: "clean1234!", hash: hash, expectedErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hash, expectedErr: password.ErrInvalidPassword},
		{name: "account without a password hash", password: current, hash: "", expectedErr: password.ErrInvalidPassword},
		{name: "corrupted hash", password: current, hash: hash[:10], wrapped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.wrapped:
				require.Error(t, err)
				assert.NotErrorIs(t, err, password.ErrInvalidPassword)
				assert.Contains(t, err.Error(), "failed to verify password")
			default:
				assert.NoError(t, err)
			}
		})
	}
}
