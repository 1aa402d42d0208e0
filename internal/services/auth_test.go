package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/yungbote/brainsync-backend/internal/pkg/errors"
)

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)

	u, err := e.auth.Register(e.ctx, RegisterInput{Name: "Alice", Email: " Alice@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "secret1", u.Password)

	token, err := e.auth.Login(e.ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	rd, err := e.auth.ParseToken(e.ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, rd.UserID)
	assert.Equal(t, "alice@example.com", rd.Email)
}

func TestRegisterValidation(t *testing.T) {
	e := newEnv(t)
	cases := []RegisterInput{
		{Name: "", Email: "a@example.com", Password: "secret1"},
		{Name: "A", Email: "not-an-email", Password: "secret1"},
		{Name: "A", Email: "a@example.com", Password: "short"},
	}
	for _, in := range cases {
		_, err := e.auth.Register(e.ctx, in)
		assert.Equal(t, apperrors.KindInvalidArgument, apperrors.KindOf(err), "%+v", in)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	e := newEnv(t)
	_, err := e.auth.Register(e.ctx, RegisterInput{Name: "A", Email: "dup@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = e.auth.Register(e.ctx, RegisterInput{Name: "B", Email: "DUP@example.com", Password: "secret2"})
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestLoginRejectsBadCredentialsUniformly(t *testing.T) {
	e := newEnv(t)
	_, err := e.auth.Register(e.ctx, RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, wrongPass := e.auth.Login(e.ctx, "a@example.com", "nope")
	_, unknown := e.auth.Login(e.ctx, "ghost@example.com", "secret1")
	require.Error(t, wrongPass)
	require.Error(t, unknown)
	assert.True(t, errors.Is(wrongPass, apperrors.ErrUnauthorized))
	assert.Equal(t, apperrors.Message(wrongPass), apperrors.Message(unknown))
}

func TestParseTokenRejectsForgedAndExpired(t *testing.T) {
	e := newEnv(t)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{UserID: "x"}).SignedString([]byte("other"))
	require.NoError(t, err)
	_, err = e.auth.ParseToken(e.ctx, forged)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = e.auth.ParseToken(e.ctx, expired)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	_, err = e.auth.ParseToken(e.ctx, "")
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestAuthDefaults(t *testing.T) {
	e := newEnv(t)
	svc := NewAuthService(e.log, e.users, AuthConfig{JWTSecret: "s", BcryptCost: bcrypt.MinCost})
	assert.Equal(t, DefaultAccessTTL, svc.AccessTTL())
}
