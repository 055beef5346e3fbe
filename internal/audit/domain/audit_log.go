// Package domain defines the audit trail models. Every step-up gated
// operation leaves a signed entry so tampering with the trail is detectable.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Action identifies the audited operation.
type Action string

// Audited actions. Only operations that expose or destroy sensitive data are
// recorded.
const (
	ActionCardReveal     Action = "card_reveal"
	ActionCardPurge      Action = "card_purge"
	ActionDocumentReveal Action = "document_reveal"
	ActionFpsReveal      Action = "fps_reveal"
	ActionTwoFactorReset Action = "twofactor_reset"
)

// AuditLog records a sensitive operation for compliance and incident review.
// The signature covers every field except ID and is produced with a key
// derived from the master secret, so entries cannot be forged or altered
// without it.
type AuditLog struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Action    Action
	Resource  string
	Metadata  map[string]any
	Signature []byte
	CreatedAt time.Time
}
