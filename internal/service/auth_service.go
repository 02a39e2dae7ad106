package service

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hpsapps/daily/internal/models"
	"github.com/hpsapps/daily/pkg/config"
	appErrors "github.com/hpsapps/daily/pkg/errors"
)

// AuthService authenticates the single operator account and issues access
// tokens for mutating routes. When no password hash is configured the
// service reports auth as disabled and the token guard is not installed.
type AuthService struct {
	cfg    config.Config
	logger *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(cfg config.Config, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{cfg: cfg, logger: logger}
}

// Enabled reports whether token auth is configured.
func (s *AuthService) Enabled() bool {
	return s.cfg.Auth.AdminPasswordHash != ""
}

// Login verifies the operator credential and issues a signed token.
func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	if !s.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "authentication is not configured")
	}
	if !strings.EqualFold(req.Email, s.cfg.Auth.AdminEmail) {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.Auth.AdminPasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("email", req.Email))
		return nil, appErrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	expiresAt := now.Add(s.cfg.JWT.Expiration)
	claims := jwt.RegisteredClaims{
		Issuer:    s.cfg.JWT.Issuer,
		Subject:   s.cfg.Auth.AdminEmail,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.cfg.JWT.Expiration.Seconds()),
		IssuedAt:    now,
		Email:       s.cfg.Auth.AdminEmail,
	}, nil
}

// ValidateToken parses and verifies an access token, returning its subject.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.ErrUnauthorized
		}
		return []byte(s.cfg.JWT.Secret), nil
	}, jwt.WithIssuer(s.cfg.JWT.Issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	return claims.Subject, nil
}
