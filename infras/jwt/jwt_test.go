package jwt_test

import (
	"testing"

	"bms/config"
	"bms/infras/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "bms"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestGenerateAndValidate(t *testing.T) {
	svc := jwt.New(newConfig())

	pair, err := svc.GenerateTokenPair("acc-1", "dina@example.com", []string{"admin", "user"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.AccountID)
	assert.Equal(t, "dina@example.com", claims.Email)
	assert.Equal(t, []string{"admin", "user"}, claims.Roles)
	assert.True(t, claims.HasAnyRole("superadmin", "ADMIN"))
	assert.False(t, claims.HasAnyRole("superadmin"))

	_, err = svc.ValidateToken(pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(pair.RefreshToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	cfg := newConfig()
	cfg.JWT.AccessExpireMin = -1

	svc := jwt.New(cfg)

	pair, err := svc.GenerateTokenPair("acc-1", "dina@example.com", nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken, jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestRefreshTokens(t *testing.T) {
	svc := jwt.New(newConfig())

	pair, err := svc.GenerateTokenPair("acc-1", "dina@example.com", []string{"user"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, []string{"user"}, claims.Roles)

	_, err = svc.RefreshTokens(pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer token", header: "Bearer abc.def", want: "abc.def"},
		{name: "empty header", header: "", wantErr: jwt.ErrMissingToken},
		{name: "basic auth", header: "Basic abc", wantErr: jwt.ErrBearerPrefix},
		{name: "prefix only", header: "Bearer ", wantErr: jwt.ErrBearerPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, got)
		})
	}
}
