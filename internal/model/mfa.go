package model

// MFA factor types known to the account service.
const (
	MfaTypeTotp       = "Totp"
	MfaTypeWebAuthn   = "WebAuthn"
	MfaTypeBackupCode = "BackupCode"
)

// MfaVerification is an enrolled second factor on the account record.
type MfaVerification struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Agent       string `json:"agent,omitempty"`
	CreatedAt   string `json:"createdAt"`
	LastUsedAt  string `json:"lastUsedAt,omitempty"`
	RemainCodes int    `json:"remainCodes,omitempty"`
}

// TotpSecret is freshly generated TOTP enrollment material. The secret is
// consumed by the enrollment call together with a code the user derives
// from it; it is never persisted.
type TotpSecret struct {
	Secret       string `json:"secret"`
	SecretQRCode string `json:"secretQrCode"`
}

// BackupCode is a single-use recovery code. UsedAt is empty while the
// code is still usable.
type BackupCode struct {
	Code   string `json:"code"`
	UsedAt string `json:"usedAt,omitempty"`
}

// AddMfaRequest is the payload of the MFA enrollment call. For TOTP the
// secret and the user-entered code are both required.
type AddMfaRequest struct {
	Type   string `json:"type"`
	Secret string `json:"secret,omitempty"`
	Code   string `json:"code,omitempty"`
}
