// Package service implements audit log signing.
package service

import (
	auditDomain "github.com/allisson/cardvault/internal/audit/domain"
)

// AuditSigner signs and verifies audit log entries.
type AuditSigner interface {
	// Sign generates the HMAC signature for an audit log entry.
	Sign(masterKey []byte, log *auditDomain.AuditLog) ([]byte, error)

	// Verify checks the entry signature, returning ErrSignatureInvalid on
	// mismatch.
	Verify(masterKey []byte, log *auditDomain.AuditLog) error
}
