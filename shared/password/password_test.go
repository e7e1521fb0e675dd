package password_test

import (
	"strings"
	"testing"

	"bms/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name    string
		plain   string
		wantErr error
	}{
		{name: "regular password", plain: "Secret123"},
		{name: "unicode password", plain: "Kata-Sandi9ü"},
		{name: "empty password", plain: "", wantErr: password.ErrEmptyPassword},
		{name: "longer than bcrypt limit", plain: strings.Repeat("a", 80), wantErr: password.ErrHashingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.plain)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hash)

				return
			}

			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$2a$12$"), "unexpected hash prefix %s", hash)
			assert.NoError(t, password.Verify(tt.plain, hash))
		})
	}
}

func TestVerify(t *testing.T) {
	hash, err := password.Hash("Secret123")
	require.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hash    string
		wantErr error
	}{
		{name: "match", plain: "Secret123", hash: hash},
		{name: "mismatch", plain: "Secret124", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty plain", plain: "", hash: hash, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", plain: "Secret123", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "malformed hash", plain: "Secret123", hash: "not-a-hash", wantErr: password.ErrVerifyingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hash)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := password.Hash("Secret123")
	require.NoError(t, err)

	second, err := password.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
