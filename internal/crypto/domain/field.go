// Package domain defines the core cryptographic domain models for field-level
// encryption.
//
// Two ciphers produce EncryptedField values: a process-wide symmetric cipher
// for card fields (serialized as "<ivHex>:<ciphertextHex>") and a per-account
// asymmetric cipher for document fields (serialized as base64 OAEP ciphertext
// with no delimiter). Both serializations are relied on bit-exactly by any
// future reader of persisted data.
package domain

// EncryptedField is an opaque value produced by a field cipher. It is
// self-describing: given only the correct key it can be decrypted without any
// external state.
type EncryptedField string

// FieldDelimiter separates the IV and ciphertext halves of a symmetric
// EncryptedField. Both halves are hex, so the delimiter can never appear
// inside either of them.
const FieldDelimiter = ":"

// String returns the serialized form stored at rest.
func (f EncryptedField) String() string {
	return string(f)
}

// IsZero reports whether the field holds no ciphertext.
func (f EncryptedField) IsZero() bool {
	return f == ""
}
