package domain

import (
	apperrors "github.com/allisson/cardvault/internal/errors"
)

// ErrSignatureInvalid indicates an audit log entry whose signature does not
// match its contents.
var ErrSignatureInvalid = apperrors.New("audit log signature is invalid")
