package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestInspector_Subject(t *testing.T) {
	i := NewInspector()

	tokenString := signToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	subject, err := i.Subject(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestInspector_Subject_NoExpiry(t *testing.T) {
	i := NewInspector()

	subject, err := i.Subject(signToken(t, jwt.MapClaims{"sub": "user-1"}))
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestInspector_Subject_Expired(t *testing.T) {
	i := NewInspector()

	tokenString := signToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := i.Subject(tokenString)
	assert.ErrorContains(t, err, "expired")
}

func TestInspector_Subject_Empty(t *testing.T) {
	i := NewInspector()

	_, err := i.Subject("")
	assert.Error(t, err)
}

func TestInspector_Subject_Malformed(t *testing.T) {
	i := NewInspector()

	_, err := i.Subject("not.a.jwt")
	assert.Error(t, err)
}

func TestInspector_Subject_MissingSubject(t *testing.T) {
	i := NewInspector()

	tokenString := signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := i.Subject(tokenString)
	assert.ErrorContains(t, err, "subject")
}
