package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/agrojobs/internal/model"
)

const secret = "test-secret"

func TestParseRoundTrip(t *testing.T) {
	principal := model.Principal{UserID: uuid.New(), Role: model.RoleManager}
	token, err := Issue(secret, principal, time.Hour)
	require.NoError(t, err)

	got, err := NewParser(secret).Parse(token)
	require.NoError(t, err)
	assert.Equal(t, principal, got)
}

func TestParseRejects(t *testing.T) {
	principal := model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}

	expired, err := Issue(secret, principal, -time.Minute)
	require.NoError(t, err)
	_, err = NewParser(secret).Parse(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	valid, err := Issue(secret, principal, time.Hour)
	require.NoError(t, err)
	_, err = NewParser("other-secret").Parse(valid)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewParser(secret).Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsBadClaims(t *testing.T) {
	sign := func(claims Claims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	_, err := NewParser(secret).Parse(sign(Claims{Role: "ADMIN", RegisteredClaims: jwt.RegisteredClaims{Subject: "42", ExpiresAt: exp}}))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewParser(secret).Parse(sign(Claims{Role: "ROOT", RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString(), ExpiresAt: exp}}))
	assert.ErrorIs(t, err, ErrInvalidToken)

	p, err := NewParser(secret).Parse(sign(Claims{Role: "viewer", RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString(), ExpiresAt: exp}}))
	require.NoError(t, err)
	assert.Equal(t, model.RoleViewer, p.Role)
}
