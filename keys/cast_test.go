package keys

import (
	"bytes"
	"errors"
	"testing"
)

func TestRelabelCastsPreserveBytes(t *testing.T) {
	gen := mustSigningKey[Genesis](t, 0x20).VerificationKey()
	asPayment, err := CastVerificationKey[Payment](gen)
	if err != nil {
		t.Fatalf("CastVerificationKey: %v", err)
	}
	if !bytes.Equal(asPayment.RawBytes(), gen.RawBytes()) {
		t.Fatalf("relabel cast changed key bytes")
	}

	// Payment and genesis relabel both ways.
	back, err := CastVerificationKey[Genesis](asPayment)
	if err != nil {
		t.Fatalf("CastVerificationKey: %v", err)
	}
	if !back.Equal(gen) {
		t.Fatalf("relabel cast round-trip mismatch")
	}

	utxo := mustSigningKey[GenesisUTxO](t, 0x21).VerificationKey()
	if _, err := CastVerificationKey[Payment](utxo); err != nil {
		t.Fatalf("GenesisUTxO -> Payment: %v", err)
	}

	deleg := mustSigningKey[GenesisDelegate](t, 0x22).VerificationKey()
	pool, err := CastVerificationKey[StakePool](deleg)
	if err != nil {
		t.Fatalf("GenesisDelegate -> StakePool: %v", err)
	}
	if _, err := CastVerificationKey[Stake](pool); err != nil {
		t.Fatalf("StakePool -> Stake: %v", err)
	}

	hot := mustSigningKey[CommitteeHot](t, 0x23).VerificationKey()
	if _, err := CastVerificationKey[Payment](hot); err != nil {
		t.Fatalf("CommitteeHot -> Payment: %v", err)
	}
	cold := mustSigningKey[CommitteeCold](t, 0x24).VerificationKey()
	if _, err := CastVerificationKey[Payment](cold); err != nil {
		t.Fatalf("CommitteeCold -> Payment: %v", err)
	}
}

func TestUndefinedCastsFail(t *testing.T) {
	pay := mustSigningKey[Payment](t, 0x25).VerificationKey()
	_, err := CastVerificationKey[StakePool](pay)
	var kerr *Error
	if !errors.As(err, &kerr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if kerr.Kind != KindDecode {
		t.Fatalf("unexpected kind: %s", kerr.Kind)
	}

	// No reverse edge: GenesisUTxO -> Payment has no Payment -> GenesisUTxO.
	if _, err := CastVerificationKey[GenesisUTxO](pay); err == nil {
		t.Fatalf("expected reverse relabel cast to be undefined")
	}
}

func TestExtendedToPlainCastHashStability(t *testing.T) {
	type check func(t *testing.T)
	checks := []check{
		castHashCheck[PaymentExtended, Payment](0x30),
		castHashCheck[StakeExtended, Stake](0x31),
		castHashCheck[GenesisDelegateExtended, GenesisDelegate](0x32),
		castHashCheck[StakePoolExtended, StakePool](0x33),
		castHashCheck[CommitteeHotExtended, CommitteeHot](0x34),
		castHashCheck[CommitteeColdExtended, CommitteeCold](0x35),
		castHashCheck[DRepExtended, DRep](0x36),
	}
	for _, c := range checks {
		c(t)
	}
}

func castHashCheck[From Role, To Role](fill byte) func(t *testing.T) {
	return func(t *testing.T) {
		t.Helper()
		ext := mustSigningKey[From](t, fill).VerificationKey()
		plain, err := CastVerificationKey[To](ext)
		if err != nil {
			t.Fatalf("%s -> %s: %v", RoleName[From](), RoleName[To](), err)
		}
		if !bytes.Equal(plain.RawBytes(), ext.RawBytes()[:plainVerificationKeySize]) {
			t.Fatalf("%s cast did not keep embedded public bytes", RoleName[From]())
		}
		if !bytes.Equal(ext.Hash().RawBytes(), plain.Hash().RawBytes()) {
			t.Fatalf("%s hash not stable across cast", RoleName[From]())
		}
	}
}

// The genesis-extended key hash historically shares the staking hash
// representation rather than a genesis-specific one. The observable contract
// is that both render identically for identical digests.
func TestGenesisExtendedHashBorrowsStakeRepresentation(t *testing.T) {
	ext := mustSigningKey[GenesisExtended](t, 0x37).VerificationKey()
	plain, err := CastVerificationKey[Genesis](ext)
	if err != nil {
		t.Fatalf("GenesisExtended -> Genesis: %v", err)
	}
	if !bytes.Equal(ext.Hash().RawBytes(), plain.Hash().RawBytes()) {
		t.Fatalf("genesis-extended hash not stable across cast")
	}

	stakeHash, err := HashFromRawBytes[Stake](ext.Hash().RawBytes())
	if err != nil {
		t.Fatalf("HashFromRawBytes: %v", err)
	}
	extText, err := ext.Hash().MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	stakeText, err := stakeHash.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if !bytes.Equal(extText, stakeText) {
		t.Fatalf("genesis-extended hash rendering diverged from the stake representation")
	}
}

func TestSigningKeyCasts(t *testing.T) {
	deleg := mustSigningKey[GenesisDelegate](t, 0x38)
	pool, err := CastSigningKey[StakePool](deleg)
	if err != nil {
		t.Fatalf("CastSigningKey: %v", err)
	}
	if !bytes.Equal(pool.RawBytes(), deleg.RawBytes()) {
		t.Fatalf("signing key relabel changed bytes")
	}
	castVK, err := CastVerificationKey[StakePool](deleg.VerificationKey())
	if err != nil {
		t.Fatalf("CastVerificationKey: %v", err)
	}
	if !pool.VerificationKey().Equal(castVK) {
		t.Fatalf("signing and verification key casts disagree")
	}

	// Extended private material cannot be reduced to a plain signing key.
	ext := mustSigningKey[PaymentExtended](t, 0x39)
	if _, err := CastSigningKey[Payment](ext); err == nil {
		t.Fatalf("expected extended signing key cast to be undefined")
	}
}
