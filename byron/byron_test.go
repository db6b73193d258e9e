package byron

import (
	"bytes"
	"errors"
	"testing"

	"github.com/praostools/praos/bip32ed25519"
	"github.com/praostools/praos/keys"
)

const testMagic uint32 = 764824073

func issuerKey(t *testing.T, fill byte) bip32ed25519.XPrv {
	t.Helper()
	seed := make([]byte, bip32ed25519.SeedSize)
	for i := range seed {
		seed[i] = fill
	}
	xprv, err := bip32ed25519.FromSeed(seed)
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	return xprv
}

func sampleBody() UpdateProposalBody {
	maxBlock := uint64(2_000_000)
	slotDur := uint64(20_000)
	return UpdateProposalBody{
		ProtocolVersion: ProtocolVersion{Major: 3, Minor: 1, Alt: 0},
		ParameterUpdate: ParameterUpdate{MaxBlockSize: &maxBlock, SlotDuration: &slotDur},
		SoftwareVersion: SoftwareVersion{AppName: "cardano-sl", Number: 42},
		Data: map[string]InstallerHash{
			"linux64": {0x01, 0x02},
			"macos64": {0x03, 0x04},
			"win64":   {0x05, 0x06},
		},
	}
}

func TestMakeUpdateProposalSignsAndReannotates(t *testing.T) {
	issuer := issuerKey(t, 0x01)
	p, err := MakeUpdateProposal(testMagic, sampleBody(), issuer)
	if err != nil {
		t.Fatalf("MakeUpdateProposal: %v", err)
	}
	if !p.Verify(testMagic) {
		t.Fatalf("proposal did not verify")
	}
	if p.Verify(testMagic + 1) {
		t.Fatalf("proposal verified under a foreign network magic")
	}
	if len(p.Bytes()) == 0 || len(p.BodyBytes()) == 0 {
		t.Fatalf("expected byte annotations to be populated")
	}
	if !bytes.Contains(p.Bytes(), p.BodyBytes()) {
		t.Fatalf("body annotation is not a span of the proposal annotation")
	}
}

func TestUpdateProposalRoundTrip(t *testing.T) {
	issuer := issuerKey(t, 0x02)
	p, err := MakeUpdateProposal(testMagic, sampleBody(), issuer)
	if err != nil {
		t.Fatalf("MakeUpdateProposal: %v", err)
	}

	back, err := UpdateProposalFromBytes(p.Bytes())
	if err != nil {
		t.Fatalf("UpdateProposalFromBytes: %v", err)
	}
	if !bytes.Equal(back.Bytes(), p.Bytes()) {
		t.Fatalf("annotation not re-attached from the input buffer")
	}
	if !back.Verify(testMagic) {
		t.Fatalf("round-tripped proposal did not verify")
	}
	if back.Body.SoftwareVersion != p.Body.SoftwareVersion {
		t.Fatalf("body fields lost in round-trip")
	}
}

func TestRecoverUpIDStableUnderReserialization(t *testing.T) {
	issuer := issuerKey(t, 0x03)
	p, err := MakeUpdateProposal(testMagic, sampleBody(), issuer)
	if err != nil {
		t.Fatalf("MakeUpdateProposal: %v", err)
	}
	id := RecoverUpID(p)

	back, err := UpdateProposalFromBytes(p.Bytes())
	if err != nil {
		t.Fatalf("UpdateProposalFromBytes: %v", err)
	}
	if RecoverUpID(back) != id {
		t.Fatalf("proposal id not stable under re-serialization")
	}

	other, err := MakeUpdateProposal(testMagic, sampleBody(), issuerKey(t, 0x04))
	if err != nil {
		t.Fatalf("MakeUpdateProposal: %v", err)
	}
	if RecoverUpID(other) == id {
		t.Fatalf("distinct proposals produced the same id")
	}
}

func TestMakeVoteReferencesProposal(t *testing.T) {
	issuer := issuerKey(t, 0x05)
	voter := issuerKey(t, 0x06)
	p, err := MakeUpdateProposal(testMagic, sampleBody(), issuer)
	if err != nil {
		t.Fatalf("MakeUpdateProposal: %v", err)
	}

	v, err := MakeVote(testMagic, p, true, voter)
	if err != nil {
		t.Fatalf("MakeVote: %v", err)
	}
	if v.ProposalID != RecoverUpID(p) {
		t.Fatalf("vote does not reference the proposal id")
	}
	if !v.Decision {
		t.Fatalf("expected a yes vote")
	}
	if !v.Verify(testMagic) {
		t.Fatalf("vote did not verify")
	}
	if v.Verify(testMagic + 1) {
		t.Fatalf("vote verified under a foreign network magic")
	}
}

func TestVoteRoundTrip(t *testing.T) {
	p, err := MakeUpdateProposal(testMagic, sampleBody(), issuerKey(t, 0x07))
	if err != nil {
		t.Fatalf("MakeUpdateProposal: %v", err)
	}
	v, err := MakeVote(testMagic, p, false, issuerKey(t, 0x08))
	if err != nil {
		t.Fatalf("MakeVote: %v", err)
	}

	back, err := VoteFromBytes(v.Bytes())
	if err != nil {
		t.Fatalf("VoteFromBytes: %v", err)
	}
	if !bytes.Equal(back.Bytes(), v.Bytes()) {
		t.Fatalf("vote annotation not re-attached from the input buffer")
	}
	if back.Decision != false || back.ProposalID != v.ProposalID {
		t.Fatalf("vote fields lost in round-trip")
	}
	if !back.Verify(testMagic) {
		t.Fatalf("round-tripped vote did not verify")
	}
}

func TestDecodeErrorsCarryTaxonomy(t *testing.T) {
	_, err := UpdateProposalFromBytes([]byte{0xff, 0x00})
	var kerr *keys.Error
	if !errors.As(err, &kerr) {
		t.Fatalf("expected *keys.Error, got %v", err)
	}
	if kerr.Kind != keys.KindDecode || kerr.Type != "ByronUpdateProposal" {
		t.Fatalf("unexpected taxonomy: kind=%s type=%s", kerr.Kind, kerr.Type)
	}

	_, err = VoteFromBytes([]byte("not cbor"))
	if !errors.As(err, &kerr) {
		t.Fatalf("expected *keys.Error, got %v", err)
	}
	if kerr.Type != "ByronVote" {
		t.Fatalf("unexpected type label: %s", kerr.Type)
	}
}
