// Package envelope implements the text-envelope container: a small JSON
// document carrying a type tag, a free-form description and hex-encoded CBOR
// content. The type tag is the file-format discriminator; readers must match
// it exactly for round-trip compatibility with persisted files.
package envelope

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/praostools/praos/keys"
)

// Envelope is the on-disk shape. Field order is fixed by declaration order,
// so serialization is deterministic.
type Envelope struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	CBORHex     string `json:"cborHex"`
}

// New wraps CBOR content under a type tag.
func New(envType, description string, cborBytes []byte) Envelope {
	return Envelope{
		Type:        envType,
		Description: description,
		CBORHex:     hex.EncodeToString(cborBytes),
	}
}

// Encode renders the envelope as indented JSON with a trailing newline.
func (e Envelope) Encode() ([]byte, error) {
	out, err := json.MarshalIndent(e, "", "    ")
	if err != nil {
		return nil, &keys.Error{Kind: keys.KindEnvelope, Type: e.Type,
			Message: "text envelope encoding failed", Cause: err}
	}
	return append(out, '\n'), nil
}

// Parse reads an envelope without checking its type tag.
func Parse(data []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return Envelope{}, &keys.Error{Kind: keys.KindEnvelope,
			Message: "malformed text envelope", Cause: err}
	}
	if e.Type == "" {
		return Envelope{}, &keys.Error{Kind: keys.KindEnvelope,
			Message: "text envelope has no type tag"}
	}
	return e, nil
}

// CBORBytes decodes the hex content.
func (e Envelope) CBORBytes() ([]byte, error) {
	raw, err := hex.DecodeString(e.CBORHex)
	if err != nil {
		return nil, &keys.Error{Kind: keys.KindEnvelope, Type: e.Type,
			Message: "text envelope cborHex is not valid hex", Cause: err}
	}
	return raw, nil
}

// Decode parses an envelope, requires the exact type tag, and returns the
// CBOR content.
func Decode(data []byte, wantType string) ([]byte, error) {
	e, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if e.Type != wantType {
		return nil, &keys.Error{Kind: keys.KindEnvelope, Type: wantType,
			Message: fmt.Sprintf("text envelope type mismatch: expected %q, got %q", wantType, e.Type)}
	}
	return e.CBORBytes()
}
