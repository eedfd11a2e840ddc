package accountapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/davitk/account-console/internal/model"
)

// verificationIDHeader binds a mutating call to a previously obtained
// identity verification record.
const verificationIDHeader = "logto-verification-id"

// Client is a thin HTTP adapter over the remote account service. Every
// method performs exactly one call with the caller's bearer token; it
// holds no credential state of its own.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an adapter for the account service at endpoint.
// A trailing slash on the endpoint is tolerated.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(endpoint, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type requestSpec struct {
	operation      string
	method         string
	path           string
	accessToken    string
	verificationID string
	body           any
	out            any
}

func (c *Client) do(ctx context.Context, spec requestSpec) error {
	var reqBody io.Reader
	if spec.body != nil {
		encoded, err := json.Marshal(spec.body)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", spec.operation, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, spec.method, c.baseURL+spec.path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", spec.operation, err)
	}
	req.Header.Set("Authorization", "Bearer "+spec.accessToken)
	if spec.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if spec.verificationID != "" {
		req.Header.Set(verificationIDHeader, spec.verificationID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrTransport, spec.operation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrTransport, spec.operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Operation: spec.operation,
			Status:    resp.StatusCode,
			Body:      truncateBody(respBody),
		}
	}

	if spec.out != nil {
		if err := json.Unmarshal(respBody, spec.out); err != nil {
			return fmt.Errorf("%w: %s: malformed response: %v", model.ErrTransport, spec.operation, err)
		}
	}

	return nil
}

type verificationResult struct {
	VerificationRecordID string `json:"verificationRecordId"`
}

func (c *Client) requestVerificationRecord(ctx context.Context, spec requestSpec) (string, error) {
	var result verificationResult
	spec.out = &result
	if err := c.do(ctx, spec); err != nil {
		return "", err
	}
	if result.VerificationRecordID == "" {
		return "", fmt.Errorf("%w: %s: missing verificationRecordId", model.ErrTransport, spec.operation)
	}
	return result.VerificationRecordID, nil
}

// VerifyPassword proves the caller controls the account password and
// returns an identity verification record ID.
func (c *Client) VerifyPassword(ctx context.Context, accessToken, password string) (string, error) {
	return c.requestVerificationRecord(ctx, requestSpec{
		operation:   "password verification",
		method:      http.MethodPost,
		path:        "/api/verifications/password",
		accessToken: accessToken,
		body:        map[string]string{"password": password},
	})
}

// SendVerificationCode sends a one-time code to a new email or phone and
// returns the verification ID for the later verify call.
func (c *Client) SendVerificationCode(ctx context.Context, accessToken string, identifier model.Identifier) (string, error) {
	return c.requestVerificationRecord(ctx, requestSpec{
		operation:   "verification code send",
		method:      http.MethodPost,
		path:        "/api/verifications/verification-code",
		accessToken: accessToken,
		body:        map[string]model.Identifier{"identifier": identifier},
	})
}

// VerifyCode checks a one-time code against a previously sent challenge
// and returns the new-identifier verification record ID.
func (c *Client) VerifyCode(ctx context.Context, accessToken string, identifier model.Identifier, verificationID, code string) (string, error) {
	return c.requestVerificationRecord(ctx, requestSpec{
		operation:   "verification code verify",
		method:      http.MethodPost,
		path:        "/api/verifications/verification-code/verify",
		accessToken: accessToken,
		body: map[string]any{
			"identifier":     identifier,
			"verificationId": verificationID,
			"code":           code,
		},
	})
}

// UpdatePrimaryEmail replaces the primary email. Requires the identity
// verification record plus proof of control over the new address.
func (c *Client) UpdatePrimaryEmail(ctx context.Context, accessToken, identityVerificationID, email, newIdentifierVerificationID string) error {
	return c.do(ctx, requestSpec{
		operation:      "primary email update",
		method:         http.MethodPost,
		path:           "/api/my-account/primary-email",
		accessToken:    accessToken,
		verificationID: identityVerificationID,
		body: map[string]string{
			"email":                             email,
			"newIdentifierVerificationRecordId": newIdentifierVerificationID,
		},
	})
}

// UpdatePrimaryPhone replaces the primary phone. Requires the identity
// verification record plus proof of control over the new number.
func (c *Client) UpdatePrimaryPhone(ctx context.Context, accessToken, identityVerificationID, phone, newIdentifierVerificationID string) error {
	return c.do(ctx, requestSpec{
		operation:      "primary phone update",
		method:         http.MethodPost,
		path:           "/api/my-account/primary-phone",
		accessToken:    accessToken,
		verificationID: identityVerificationID,
		body: map[string]string{
			"phone":                             phone,
			"newIdentifierVerificationRecordId": newIdentifierVerificationID,
		},
	})
}

// RemovePrimaryEmail removes the primary email.
func (c *Client) RemovePrimaryEmail(ctx context.Context, accessToken, identityVerificationID string) error {
	return c.do(ctx, requestSpec{
		operation:      "primary email removal",
		method:         http.MethodDelete,
		path:           "/api/my-account/primary-email",
		accessToken:    accessToken,
		verificationID: identityVerificationID,
	})
}

// RemovePrimaryPhone removes the primary phone.
func (c *Client) RemovePrimaryPhone(ctx context.Context, accessToken, identityVerificationID string) error {
	return c.do(ctx, requestSpec{
		operation:      "primary phone removal",
		method:         http.MethodDelete,
		path:           "/api/my-account/primary-phone",
		accessToken:    accessToken,
		verificationID: identityVerificationID,
	})
}

// GenerateTotpSecret asks the account service for fresh TOTP enrollment
// material.
func (c *Client) GenerateTotpSecret(ctx context.Context, accessToken string) (model.TotpSecret, error) {
	var secret model.TotpSecret
	err := c.do(ctx, requestSpec{
		operation:   "totp secret generation",
		method:      http.MethodPost,
		path:        "/api/my-account/mfa-verifications/totp-secret/generate",
		accessToken: accessToken,
		out:         &secret,
	})
	if err != nil {
		return model.TotpSecret{}, err
	}
	return secret, nil
}

// AddMfaVerification enrolls a new MFA factor.
func (c *Client) AddMfaVerification(ctx context.Context, accessToken, identityVerificationID string, req model.AddMfaRequest) error {
	return c.do(ctx, requestSpec{
		operation:      "mfa enrollment",
		method:         http.MethodPost,
		path:           "/api/my-account/mfa-verifications",
		accessToken:    accessToken,
		verificationID: identityVerificationID,
		body:           req,
	})
}

// DeleteMfaVerification removes an enrolled MFA factor.
func (c *Client) DeleteMfaVerification(ctx context.Context, accessToken, identityVerificationID, mfaID string) error {
	return c.do(ctx, requestSpec{
		operation:      "mfa removal",
		method:         http.MethodDelete,
		path:           "/api/my-account/mfa-verifications/" + mfaID,
		accessToken:    accessToken,
		verificationID: identityVerificationID,
	})
}

// GenerateBackupCodes issues a new set of backup codes, invalidating any
// previously issued set.
func (c *Client) GenerateBackupCodes(ctx context.Context, accessToken, identityVerificationID string) ([]string, error) {
	var result struct {
		Codes []string `json:"codes"`
	}
	err := c.do(ctx, requestSpec{
		operation:      "backup codes generation",
		method:         http.MethodPost,
		path:           "/api/my-account/mfa-verifications/backup-codes/generate",
		accessToken:    accessToken,
		verificationID: identityVerificationID,
		out:            &result,
	})
	if err != nil {
		return nil, err
	}
	return result.Codes, nil
}

// GetBackupCodes fetches the current backup codes with their usage state.
func (c *Client) GetBackupCodes(ctx context.Context, accessToken, identityVerificationID string) ([]model.BackupCode, error) {
	var result struct {
		Codes []model.BackupCode `json:"codes"`
	}
	err := c.do(ctx, requestSpec{
		operation:      "backup codes fetch",
		method:         http.MethodGet,
		path:           "/api/my-account/mfa-verifications/backup-codes",
		accessToken:    accessToken,
		verificationID: identityVerificationID,
		out:            &result,
	})
	if err != nil {
		return nil, err
	}
	return result.Codes, nil
}

// GetUserData fetches the full account record.
func (c *Client) GetUserData(ctx context.Context, accessToken string) (model.UserData, error) {
	var data model.UserData
	err := c.do(ctx, requestSpec{
		operation:   "account fetch",
		method:      http.MethodGet,
		path:        "/api/my-account",
		accessToken: accessToken,
		out:         &data,
	})
	if err != nil {
		return model.UserData{}, err
	}
	return data, nil
}

// GetMfaVerifications lists the enrolled MFA factors.
func (c *Client) GetMfaVerifications(ctx context.Context, accessToken string) ([]model.MfaVerification, error) {
	var list []model.MfaVerification
	err := c.do(ctx, requestSpec{
		operation:   "mfa list fetch",
		method:      http.MethodGet,
		path:        "/api/my-account/mfa-verifications",
		accessToken: accessToken,
		out:         &list,
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateBasicInfo patches the directly editable account fields. Empty
// fields are dropped; a fully empty update is a no-op.
func (c *Client) UpdateBasicInfo(ctx context.Context, accessToken string, update model.BasicInfoUpdate) error {
	fields := map[string]string{}
	if update.Name != "" {
		fields["name"] = update.Name
	}
	if update.Username != "" {
		fields["username"] = update.Username
	}
	if update.Avatar != "" {
		fields["avatar"] = update.Avatar
	}
	if len(fields) == 0 {
		return nil
	}

	return c.do(ctx, requestSpec{
		operation:   "basic info update",
		method:      http.MethodPatch,
		path:        "/api/my-account",
		accessToken: accessToken,
		body:        fields,
	})
}

// UpdateProfile patches the structured name fields.
func (c *Client) UpdateProfile(ctx context.Context, accessToken string, profile model.UserProfile) error {
	return c.do(ctx, requestSpec{
		operation:   "profile update",
		method:      http.MethodPatch,
		path:        "/api/my-account/profile",
		accessToken: accessToken,
		body:        profile,
	})
}

// UpdateCustomData replaces the account's custom data object.
func (c *Client) UpdateCustomData(ctx context.Context, accessToken string, customData map[string]any) error {
	return c.do(ctx, requestSpec{
		operation:   "custom data update",
		method:      http.MethodPatch,
		path:        "/api/my-account",
		accessToken: accessToken,
		body:        map[string]any{"customData": customData},
	})
}
