package byron

import (
	"github.com/praostools/praos/bip32ed25519"
	"github.com/praostools/praos/internal/canoncbor"
	"github.com/praostools/praos/keys"
)

const voteLabel = "ByronVote"

// Vote is a signed yes/no decision on an update proposal, annotated with its
// canonical bytes. Construct with MakeVote or VoteFromBytes.
type Vote struct {
	cborBytes []byte

	VoterVKey  bip32ed25519.XPub
	ProposalID UpID
	Decision   bool
	Signature  []byte
}

type voteWire struct {
	_          struct{} `cbor:",toarray"`
	Voter      []byte
	ProposalID []byte
	Decision   bool
	Signature  []byte
}

// The signed payload of a vote: [proposalId, decision].
type votePayload struct {
	_          struct{} `cbor:",toarray"`
	ProposalID []byte
	Decision   bool
}

// MakeVote signs a decision on an already-signed proposal. The proposal id is
// recovered from the proposal's canonical bytes, so the vote references
// exactly the artifact the voter inspected.
func MakeVote(magic uint32, proposal *UpdateProposal, decision bool, voter bip32ed25519.XPrv) (*Vote, error) {
	id := RecoverUpID(proposal)
	payload, err := canoncbor.Marshal(votePayload{ProposalID: id[:], Decision: decision})
	if err != nil {
		return nil, &keys.Error{Kind: keys.KindDecode, Type: voteLabel,
			Message: voteLabel + ": payload encoding failed", Cause: err}
	}
	sig := voter.Sign(signedBytes(signTagUpdateVote, magic, payload))

	xpub := voter.XPub()
	enc, err := canoncbor.Marshal(voteWire{
		Voter:      xpub.Bytes(),
		ProposalID: id[:],
		Decision:   decision,
		Signature:  sig,
	})
	if err != nil {
		return nil, &keys.Error{Kind: keys.KindDecode, Type: voteLabel,
			Message: voteLabel + ": vote encoding failed", Cause: err}
	}
	// Re-derive annotations from the serialized signed structure.
	return VoteFromBytes(enc)
}

// VoteFromBytes decodes a vote and attaches the byte annotation from the
// exact input buffer.
func VoteFromBytes(data []byte) (*Vote, error) {
	var w voteWire
	if err := canoncbor.Unmarshal(data, &w); err != nil {
		return nil, &keys.Error{Kind: keys.KindDecode, Type: voteLabel,
			Message: voteLabel + ": malformed canonical structure", Cause: err}
	}
	voter, err := bip32ed25519.XPubFromBytes(w.Voter)
	if err != nil {
		return nil, &keys.Error{Kind: keys.KindDecode, Type: voteLabel,
			Message: voteLabel + ": malformed voter key", Cause: err}
	}
	if len(w.ProposalID) != len(UpID{}) {
		return nil, &keys.Error{Kind: keys.KindDecode, Type: voteLabel,
			Message: voteLabel + ": malformed proposal id"}
	}
	var id UpID
	copy(id[:], w.ProposalID)
	return &Vote{
		cborBytes:  append([]byte(nil), data...),
		VoterVKey:  voter,
		ProposalID: id,
		Decision:   w.Decision,
		Signature:  append([]byte(nil), w.Signature...),
	}, nil
}

// Bytes returns the canonical byte annotation.
func (v *Vote) Bytes() []byte {
	return append([]byte(nil), v.cborBytes...)
}

// Verify checks the voter signature over the referenced proposal id and
// decision.
func (v *Vote) Verify(magic uint32) bool {
	payload, err := canoncbor.Marshal(votePayload{ProposalID: v.ProposalID[:], Decision: v.Decision})
	if err != nil {
		return false
	}
	return v.VoterVKey.Verify(signedBytes(signTagUpdateVote, magic, payload), v.Signature)
}
