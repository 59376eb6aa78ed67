package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/job-analysis/backend/internal/config"
)

var (
	ErrMisconfigured = errors.New("auth config invalid")
	ErrAuthMissing   = errors.New("authorization header missing")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
)

// TokenService issues and verifies the signed bearer tokens that gate
// every protected endpoint. The signing key is fixed at construction.
type TokenService struct {
	secret    []byte
	accessTTL time.Duration
}

func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET_KEY is required", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JWT_ACCESS_TTL", ErrMisconfigured)
	}

	return &TokenService{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: accessTTL,
	}, nil
}

// Issue signs an HS256 token carrying the subject and an expiry of
// now plus the configured TTL.
func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject claim.
// Expiry and structural/signature failures are distinguished so the
// gate can map them to different HTTP statuses.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}

// Authenticate resolves an Authorization header value to its subject.
// The "Bearer " prefix is stripped when present but not required. Only
// an absent or blank header counts as missing; a header that strips
// down to nothing carries a (vacuously) malformed token and fails
// verification instead.
func (s *TokenService) Authenticate(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", ErrAuthMissing
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

	return s.Verify(token)
}
