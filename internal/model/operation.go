package model

import "fmt"

// OperationKind identifies a sensitive account mutation that requires
// a verification flow before it is allowed to execute.
type OperationKind int

const (
	OperationUnknown OperationKind = iota
	OperationChangeEmail
	OperationRemoveEmail
	OperationChangePhone
	OperationRemovePhone
	OperationEnrollTotp
	OperationRemoveMfaFactor
	OperationGenerateBackupCodes
	OperationViewBackupCodes
)

var operationNames = map[OperationKind]string{
	OperationChangeEmail:         "change-email",
	OperationRemoveEmail:         "remove-email",
	OperationChangePhone:         "change-phone",
	OperationRemovePhone:         "remove-phone",
	OperationEnrollTotp:          "enroll-totp",
	OperationRemoveMfaFactor:     "remove-mfa-factor",
	OperationGenerateBackupCodes: "generate-backup-codes",
	OperationViewBackupCodes:     "view-backup-codes",
}

// String returns the wire name of the operation kind.
func (k OperationKind) String() string {
	if name, ok := operationNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseOperationKind resolves a wire name to an operation kind.
func ParseOperationKind(name string) (OperationKind, error) {
	for kind, n := range operationNames {
		if n == name {
			return kind, nil
		}
	}
	return OperationUnknown, fmt.Errorf("unknown operation kind %q", name)
}

// RequiresSecondaryProof reports whether the operation needs a second
// proof step after password verification. Identifier changes require
// proof of control over the new value; TOTP enrollment requires a code
// derived from the generated secret. Remove and view operations are
// authorized by the identity verification alone.
func (k OperationKind) RequiresSecondaryProof() bool {
	switch k {
	case OperationChangeEmail, OperationChangePhone, OperationEnrollTotp:
		return true
	default:
		return false
	}
}

// RequiresTarget reports whether the operation needs a target value at
// session start: the new identifier for changes, the factor ID for
// MFA removal.
func (k OperationKind) RequiresTarget() bool {
	switch k {
	case OperationChangeEmail, OperationChangePhone, OperationRemoveMfaFactor:
		return true
	default:
		return false
	}
}

// IdentifierType returns the contact identifier type the operation acts
// on, or an empty string for MFA operations.
func (k OperationKind) IdentifierType() string {
	switch k {
	case OperationChangeEmail, OperationRemoveEmail:
		return IdentifierEmail
	case OperationChangePhone, OperationRemovePhone:
		return IdentifierPhone
	default:
		return ""
	}
}
