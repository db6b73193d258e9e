package keys

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/Type rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindRawBytes covers wrong-length or malformed scheme-specific raw bytes.
	KindRawBytes Kind = "RawBytes"
	// KindBech32 covers disallowed prefixes and malformed bech32 payloads.
	KindBech32 Kind = "Bech32"
	// KindEnvelope covers text-envelope type mismatches and malformed envelopes.
	KindEnvelope Kind = "Envelope"
	// KindDecode covers malformed CBOR structures and undefined role casts.
	KindDecode Kind = "Decode"
	// KindInternal covers broken internal assumptions surfaced as errors.
	KindInternal Kind = "Internal"
)

// Error is the library's structured error type.
//
// Type is the label of the serialized type the failure concerns
// (e.g. "PaymentVerificationKey", "StakePoolKeyHash").
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	Type    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, typeLabel, msg string) error {
	return &Error{Kind: kind, Type: typeLabel, Message: msg}
}

func wrapError(kind Kind, typeLabel, msg string, cause error) error {
	if cause == nil {
		return newError(kind, typeLabel, msg)
	}
	return &Error{Kind: kind, Type: typeLabel, Message: msg, Cause: cause}
}
