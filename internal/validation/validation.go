// Package validation implements the client-side preconditions checked
// before any call leaves for the account service. It complements, never
// replaces, the service's own validation.
package validation

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/davitk/account-console/internal/model"
)

var (
	e164Pattern     = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	codePattern     = regexp.MustCompile(`^\d{6}$`)

	urlRedact   = regexp.MustCompile(`https?://\S+`)
	emailRedact = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRedact = regexp.MustCompile(`\+[1-9]\d{1,14}`)
	tokenRedact = regexp.MustCompile(`[A-Za-z0-9_-]{20,}`)
)

// Error is a failed precondition on a named field. It unwraps to
// model.ErrPreconditionViolation so callers can classify it.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *Error) Unwrap() error {
	return model.ErrPreconditionViolation
}

// Email checks the basic shape and length of an email address.
func Email(email string) error {
	if !emailPattern.MatchString(email) {
		return &Error{Field: "email", Message: "invalid email format"}
	}
	if len(email) > 128 {
		return &Error{Field: "email", Message: "email too long (max 128 characters)"}
	}
	return nil
}

// Phone checks E.164 format, tolerating spaces and dashes in the input.
func Phone(phone string) error {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	if !e164Pattern.MatchString(cleaned) {
		return &Error{Field: "phone", Message: "phone must be E.164 format (e.g. +995555123456)"}
	}
	return nil
}

// Password checks the password is present and within bounds.
func Password(password string) error {
	if password == "" {
		return &Error{Field: "password", Message: "password is required"}
	}
	if len(password) > 256 {
		return &Error{Field: "password", Message: "password too long (max 256 characters)"}
	}
	return nil
}

// VerificationCode requires exactly six digits.
func VerificationCode(code string) error {
	if !codePattern.MatchString(code) {
		return &Error{Field: "code", Message: "code must be exactly 6 digits"}
	}
	return nil
}

// Username checks length and character set. An empty username is allowed;
// it means no change.
func Username(username string) error {
	if username == "" {
		return nil
	}
	if len(username) < 3 {
		return &Error{Field: "username", Message: "username too short (min 3 characters)"}
	}
	if len(username) > 32 {
		return &Error{Field: "username", Message: "username too long (max 32 characters)"}
	}
	if !usernamePattern.MatchString(username) {
		return &Error{Field: "username", Message: "username can only contain letters, numbers, underscores, and hyphens"}
	}
	return nil
}

// URL checks that a non-empty value parses as an http(s) URL.
func URL(raw string) error {
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return &Error{Field: "url", Message: "invalid URL format"}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &Error{Field: "url", Message: "URL must use http or https protocol"}
	}
	return nil
}

// JSONObject parses a string as a JSON object, rejecting arrays, scalars
// and null.
func JSONObject(value string) (map[string]any, error) {
	var parsed any
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return nil, &Error{Field: "json", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	object, ok := parsed.(map[string]any)
	if !ok {
		return nil, &Error{Field: "json", Message: "must be a JSON object (not array or null)"}
	}
	return object, nil
}

// SanitizeServiceError strips URLs, contact identifiers and long opaque
// tokens from an upstream error text before it reaches a client, and caps
// the result at 200 characters.
func SanitizeServiceError(text string) string {
	if text == "" {
		return "unknown error"
	}

	text = urlRedact.ReplaceAllString(text, "[URL]")
	text = emailRedact.ReplaceAllString(text, "[EMAIL]")
	text = phoneRedact.ReplaceAllString(text, "[PHONE]")
	text = tokenRedact.ReplaceAllString(text, "[TOKEN]")
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
