package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davitk/account-console/internal/model"
)

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("a@example.com"))
	assert.NoError(t, Email("first.last+tag@sub.example.org"))

	assert.Error(t, Email(""))
	assert.Error(t, Email("not-an-email"))
	assert.Error(t, Email("a@b"))
	assert.Error(t, Email("a b@example.com"))
	assert.Error(t, Email(strings.Repeat("a", 120)+"@example.com"))
}

func TestPhone(t *testing.T) {
	assert.NoError(t, Phone("+995555123456"))
	assert.NoError(t, Phone("+1 555 123-4567"))

	assert.Error(t, Phone(""))
	assert.Error(t, Phone("555123456"))
	assert.Error(t, Phone("+0123456"))
	assert.Error(t, Phone("+995abc"))
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("secret"))

	assert.Error(t, Password(""))
	assert.Error(t, Password(strings.Repeat("x", 257)))
}

func TestVerificationCode(t *testing.T) {
	assert.NoError(t, VerificationCode("123456"))
	assert.NoError(t, VerificationCode("000000"))

	assert.Error(t, VerificationCode(""))
	assert.Error(t, VerificationCode("12345"))
	assert.Error(t, VerificationCode("1234567"))
	assert.Error(t, VerificationCode("12a456"))
	assert.Error(t, VerificationCode(" 123456"))
}

func TestUsername(t *testing.T) {
	assert.NoError(t, Username(""))
	assert.NoError(t, Username("davit"))
	assert.NoError(t, Username("da_vit-99"))

	assert.Error(t, Username("ab"))
	assert.Error(t, Username(strings.Repeat("a", 33)))
	assert.Error(t, Username("davit!"))
	assert.Error(t, Username("da vit"))
}

func TestURL(t *testing.T) {
	assert.NoError(t, URL(""))
	assert.NoError(t, URL("https://example.com/avatar.png"))
	assert.NoError(t, URL("http://example.com"))

	assert.Error(t, URL("ftp://example.com/a.png"))
	assert.Error(t, URL("not a url"))
	assert.Error(t, URL("https://"))
}

func TestJSONObject(t *testing.T) {
	object, err := JSONObject(`{"theme":"dark","count":2}`)
	require.NoError(t, err)
	assert.Equal(t, "dark", object["theme"])

	_, err = JSONObject(`[1,2]`)
	assert.Error(t, err)

	_, err = JSONObject(`null`)
	assert.Error(t, err)

	_, err = JSONObject(`"text"`)
	assert.Error(t, err)

	_, err = JSONObject(`{broken`)
	assert.Error(t, err)
}

func TestError_UnwrapsToPreconditionViolation(t *testing.T) {
	err := Email("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrPreconditionViolation)

	var vErr *Error
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "email", vErr.Field)
}

func TestSanitizeServiceError(t *testing.T) {
	assert.Equal(t, "unknown error", SanitizeServiceError(""))

	sanitized := SanitizeServiceError("call to https://auth.example.com/api failed for a@example.com at +995555123456")
	assert.NotContains(t, sanitized, "auth.example.com")
	assert.NotContains(t, sanitized, "a@example.com")
	assert.NotContains(t, sanitized, "+995555123456")
	assert.Contains(t, sanitized, "[URL]")
	assert.Contains(t, sanitized, "[EMAIL]")

	sanitized = SanitizeServiceError("token eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9 rejected")
	assert.Contains(t, sanitized, "[TOKEN]")

	long := SanitizeServiceError(strings.Repeat("z ", 300))
	assert.LessOrEqual(t, len(long), 200)
}
