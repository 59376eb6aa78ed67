package service

import (
	"testing"

	"github.com/job-analysis/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, secret, ttl string) *TokenService {
	t.Helper()
	svc, err := NewTokenService(config.AuthConfig{JWTSecret: secret, AccessTTL: ttl})
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService(config.AuthConfig{AccessTTL: "30m"})
	assert.ErrorIs(t, err, ErrMisconfigured)

	_, err = NewTokenService(config.AuthConfig{JWTSecret: "s", AccessTTL: "soon"})
	assert.ErrorIs(t, err, ErrMisconfigured)
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", "30m")

	token, err := svc.Issue("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestVerifyExpired(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", "-1m")

	token, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongKey(t *testing.T) {
	issuer := newTestTokenService(t, "key-one", "30m")
	verifier := newTestTokenService(t, "key-two", "30m")

	token, err := issuer.Issue("a@x.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyMalformed(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", "30m")

	_, err := svc.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	token, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	_, err = svc.Verify(token + "x")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthenticate(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", "30m")

	token, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	subject, err := svc.Authenticate("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)

	// Prefix is optional: a bare token still authenticates.
	subject, err = svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestAuthenticateMissingHeader(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", "30m")

	_, err := svc.Authenticate("")
	assert.ErrorIs(t, err, ErrAuthMissing)

	_, err = svc.Authenticate("   ")
	assert.ErrorIs(t, err, ErrAuthMissing)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", "30m")

	_, err := svc.Authenticate("Bearer garbage")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// A header that is only the prefix carries an empty token, which
	// fails verification rather than counting as a missing header.
	_, err = svc.Authenticate("Bearer ")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
