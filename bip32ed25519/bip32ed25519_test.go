package bip32ed25519

import (
	"bytes"
	"testing"
)

func testSeed(fill byte) []byte {
	seed := make([]byte, SeedSize)
	for i := range seed {
		seed[i] = fill
	}
	return seed
}

func TestFromSeedDeterministic(t *testing.T) {
	a, err := FromSeed(testSeed(0x01))
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	b, err := FromSeed(testSeed(0x01))
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	if a != b {
		t.Fatalf("expected deterministic root generation")
	}

	c, err := FromSeed(testSeed(0x02))
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	if a == c {
		t.Fatalf("expected different seeds to generate different keys")
	}
}

func TestFromSeedRejectsBadSeedLength(t *testing.T) {
	for _, n := range []int{0, 16, 31, 33, 64} {
		if _, err := FromSeed(make([]byte, n)); err != ErrBadSeedLen {
			t.Fatalf("seed length %d: expected ErrBadSeedLen, got %v", n, err)
		}
	}
}

func TestScalarAdmissibilityBitClear(t *testing.T) {
	for fill := byte(0); fill < 32; fill++ {
		xprv, err := FromSeed(testSeed(fill))
		if err != nil {
			t.Fatalf("FromSeed: %v", err)
		}
		if xprv[31]&0x20 != 0 {
			t.Fatalf("seed fill %#x: admissibility bit set", fill)
		}
		if xprv[0]&0x07 != 0 || xprv[31]&0x80 != 0 || xprv[31]&0x40 == 0 {
			t.Fatalf("seed fill %#x: scalar not clamped", fill)
		}
	}
}

func TestXPubEmbedsPublicKey(t *testing.T) {
	xprv, err := FromSeed(testSeed(0x11))
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	xpub := xprv.XPub()
	if !bytes.Equal(xpub.PublicKey(), xprv[64:96]) {
		t.Fatalf("xpub public key does not match xprv embedded public key")
	}
	if !bytes.Equal(xpub.ChainCode(), xprv[96:128]) {
		t.Fatalf("xpub chain code does not match xprv chain code")
	}
}

func TestSignVerifiesAsPlainEd25519(t *testing.T) {
	xprv, err := FromSeed(testSeed(0x42))
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	xpub := xprv.XPub()

	msg := []byte("extended keys sign plain ed25519")
	sig := xprv.Sign(msg)
	if len(sig) != SignatureSize {
		t.Fatalf("expected %d-byte signature, got %d", SignatureSize, len(sig))
	}
	if !xpub.Verify(msg, sig) {
		t.Fatalf("signature did not verify")
	}
	if xpub.Verify([]byte("different message"), sig) {
		t.Fatalf("signature verified against a different message")
	}

	sig2 := xprv.Sign(msg)
	if !bytes.Equal(sig, sig2) {
		t.Fatalf("expected deterministic signatures")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	xprv, err := FromSeed(testSeed(0x07))
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}

	back, err := XPrvFromBytes(xprv.Bytes())
	if err != nil {
		t.Fatalf("XPrvFromBytes: %v", err)
	}
	if back != xprv {
		t.Fatalf("xprv bytes round-trip mismatch")
	}

	xpub := xprv.XPub()
	pubBack, err := XPubFromBytes(xpub.Bytes())
	if err != nil {
		t.Fatalf("XPubFromBytes: %v", err)
	}
	if pubBack != xpub {
		t.Fatalf("xpub bytes round-trip mismatch")
	}

	if _, err := XPubFromBytes(make([]byte, 63)); err != ErrBadKeyLen {
		t.Fatalf("expected ErrBadKeyLen for short xpub, got %v", err)
	}
	if _, err := XPrvFromBytes(make([]byte, 96)); err != ErrBadKeyLen {
		t.Fatalf("expected ErrBadKeyLen for short xprv, got %v", err)
	}
}

func TestTextRoundTrip(t *testing.T) {
	xprv, err := FromSeed(testSeed(0x2a))
	if err != nil {
		t.Fatalf("FromSeed: %v", err)
	}
	xpub := xprv.XPub()

	txt, err := xpub.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var back XPub
	if err := back.UnmarshalText(txt); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if back != xpub {
		t.Fatalf("xpub text round-trip mismatch")
	}

	var bad XPub
	if err := bad.UnmarshalText([]byte("abcd")); err != ErrBadKeyStr {
		t.Fatalf("expected ErrBadKeyStr, got %v", err)
	}
}
