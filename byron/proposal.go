package byron

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/praostools/praos/bip32ed25519"
	"github.com/praostools/praos/internal/canoncbor"
	"github.com/praostools/praos/keys"
)

const proposalLabel = "ByronUpdateProposal"

// ProtocolVersion is the proposed protocol version triple.
type ProtocolVersion struct {
	_     struct{} `cbor:",toarray"`
	Major uint16
	Minor uint16
	Alt   uint8
}

// SoftwareVersion names the proposing software release.
type SoftwareVersion struct {
	_       struct{} `cbor:",toarray"`
	AppName string
	Number  uint32
}

// ParameterUpdate is the sparse protocol-parameter delta. Absent fields are
// omitted from the encoding entirely.
type ParameterUpdate struct {
	ScriptVersion    *uint16 `cbor:"0,keyasint,omitempty"`
	SlotDuration     *uint64 `cbor:"1,keyasint,omitempty"`
	MaxBlockSize     *uint64 `cbor:"2,keyasint,omitempty"`
	MaxTxSize        *uint64 `cbor:"3,keyasint,omitempty"`
	UnlockStakeEpoch *uint64 `cbor:"4,keyasint,omitempty"`
}

// InstallerHash is the digest of one installer artifact.
type InstallerHash [32]byte

// UpdateProposalBody is everything the proposer signs: the version bump, the
// parameter delta, the software version and the per-system installer map.
type UpdateProposalBody struct {
	_               struct{} `cbor:",toarray"`
	ProtocolVersion ProtocolVersion
	ParameterUpdate ParameterUpdate
	SoftwareVersion SoftwareVersion
	Data            map[string]InstallerHash
}

// UpdateProposal is a signed proposal together with its canonical byte
// annotations. Construct with MakeUpdateProposal or UpdateProposalFromBytes.
type UpdateProposal struct {
	cborBytes []byte
	bodyBytes []byte

	Body       UpdateProposalBody
	IssuerVKey bip32ed25519.XPub
	Signature  []byte
}

type proposalWire struct {
	_         struct{} `cbor:",toarray"`
	Body      cbor.RawMessage
	Issuer    []byte
	Signature []byte
}

// MakeUpdateProposal signs body under the network magic with an extended
// issuer key, then re-annotates: the returned proposal stores the canonical
// bytes of the signed structure, ready for strict byte-for-byte verification.
func MakeUpdateProposal(magic uint32, body UpdateProposalBody, issuer bip32ed25519.XPrv) (*UpdateProposal, error) {
	bodyBytes, err := canoncbor.Marshal(body)
	if err != nil {
		return nil, &keys.Error{Kind: keys.KindDecode, Type: proposalLabel,
			Message: proposalLabel + ": body encoding failed", Cause: err}
	}
	sig := issuer.Sign(signedBytes(signTagUpdateProposal, magic, bodyBytes))

	xpub := issuer.XPub()
	enc, err := canoncbor.Marshal(proposalWire{
		Body:      cbor.RawMessage(bodyBytes),
		Issuer:    xpub.Bytes(),
		Signature: sig,
	})
	if err != nil {
		return nil, &keys.Error{Kind: keys.KindDecode, Type: proposalLabel,
			Message: proposalLabel + ": proposal encoding failed", Cause: err}
	}
	// Re-derive annotations from the serialized signed structure.
	return UpdateProposalFromBytes(enc)
}

// UpdateProposalFromBytes decodes a proposal and attaches byte-span
// annotations from the exact input buffer.
func UpdateProposalFromBytes(data []byte) (*UpdateProposal, error) {
	var w proposalWire
	if err := canoncbor.Unmarshal(data, &w); err != nil {
		return nil, &keys.Error{Kind: keys.KindDecode, Type: proposalLabel,
			Message: proposalLabel + ": malformed canonical structure", Cause: err}
	}
	var body UpdateProposalBody
	if err := canoncbor.Unmarshal(w.Body, &body); err != nil {
		return nil, &keys.Error{Kind: keys.KindDecode, Type: proposalLabel,
			Message: proposalLabel + ": malformed proposal body", Cause: err}
	}
	issuer, err := bip32ed25519.XPubFromBytes(w.Issuer)
	if err != nil {
		return nil, &keys.Error{Kind: keys.KindDecode, Type: proposalLabel,
			Message: proposalLabel + ": malformed issuer key", Cause: err}
	}
	return &UpdateProposal{
		cborBytes:  append([]byte(nil), data...),
		bodyBytes:  append([]byte(nil), w.Body...),
		Body:       body,
		IssuerVKey: issuer,
		Signature:  append([]byte(nil), w.Signature...),
	}, nil
}

// Bytes returns the canonical byte annotation.
func (p *UpdateProposal) Bytes() []byte {
	return append([]byte(nil), p.cborBytes...)
}

// BodyBytes returns the byte span the signature covers.
func (p *UpdateProposal) BodyBytes() []byte {
	return append([]byte(nil), p.bodyBytes...)
}

// Verify checks the issuer signature over the stored body annotation.
func (p *UpdateProposal) Verify(magic uint32) bool {
	return p.IssuerVKey.Verify(signedBytes(signTagUpdateProposal, magic, p.bodyBytes), p.Signature)
}

// RecoverUpID derives the proposal id from the canonical annotation. Stable
// under re-serialization, since the annotation is the serialization.
func RecoverUpID(p *UpdateProposal) UpID {
	return hashCanonicalBytes(p.cborBytes)
}
