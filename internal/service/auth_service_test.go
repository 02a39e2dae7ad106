package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hpsapps/daily/internal/models"
	"github.com/hpsapps/daily/pkg/config"
	appErrors "github.com/hpsapps/daily/pkg/errors"
)

func authConfig(t *testing.T, password string) config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "daily-cover"},
		Auth: config.AuthConfig{
			AdminEmail:        "admin@school.local",
			AdminPasswordHash: string(hash),
		},
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := NewAuthService(authConfig(t, "s3cret"), nil)
	require.True(t, svc.Enabled())

	res, err := svc.Login(models.LoginRequest{Email: "admin@school.local", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	subject, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@school.local", subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(authConfig(t, "s3cret"), nil)

	_, err := svc.Login(models.LoginRequest{Email: "admin@school.local", Password: "wrong"})
	assert.Equal(t, appErrors.ErrInvalidCredentials, err)

	_, err = svc.Login(models.LoginRequest{Email: "other@school.local", Password: "s3cret"})
	assert.Equal(t, appErrors.ErrInvalidCredentials, err)
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	svc := NewAuthService(authConfig(t, "s3cret"), nil)

	res, err := svc.Login(models.LoginRequest{Email: "Admin@School.Local", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "admin@school.local", res.Email)
}

func TestLoginDisabledWithoutHash(t *testing.T) {
	cfg := config.Config{JWT: config.JWTConfig{Secret: "x", Expiration: time.Hour}}
	svc := NewAuthService(cfg, nil)
	require.False(t, svc.Enabled())

	_, err := svc.Login(models.LoginRequest{Email: "admin@school.local", Password: "anything"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(authConfig(t, "s3cret"), nil)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)

	other := NewAuthService(config.Config{
		JWT:  config.JWTConfig{Secret: "different", Expiration: time.Hour, Issuer: "daily-cover"},
		Auth: config.AuthConfig{AdminEmail: "admin@school.local", AdminPasswordHash: "hash"},
	}, nil)
	res, err := svc.Login(models.LoginRequest{Email: "admin@school.local", Password: "s3cret"})
	require.NoError(t, err)
	_, err = other.ValidateToken(res.AccessToken)
	require.Error(t, err)
}
