package keys

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestBech32RoundTrip(t *testing.T) {
	sk := mustSigningKey[Payment](t, 0x10)
	vk := sk.VerificationKey()

	s, err := vk.Bech32()
	if err != nil {
		t.Fatalf("Bech32: %v", err)
	}
	if !strings.HasPrefix(s, "addr_vk1") {
		t.Fatalf("expected addr_vk prefix, got %q", s)
	}
	back, err := VerificationKeyFromBech32[Payment](s)
	if err != nil {
		t.Fatalf("VerificationKeyFromBech32: %v", err)
	}
	if !back.Equal(vk) {
		t.Fatalf("bech32 round-trip mismatch")
	}

	ss, err := sk.Bech32()
	if err != nil {
		t.Fatalf("Bech32: %v", err)
	}
	if !strings.HasPrefix(ss, "addr_sk1") {
		t.Fatalf("expected addr_sk prefix, got %q", ss)
	}
	skBack, err := SigningKeyFromBech32[Payment](ss)
	if err != nil {
		t.Fatalf("SigningKeyFromBech32: %v", err)
	}
	if !skBack.Equal(sk) {
		t.Fatalf("signing key bech32 round-trip mismatch")
	}
}

func TestBech32ExtendedPrefixesAreDistinct(t *testing.T) {
	ext := mustSigningKey[PaymentExtended](t, 0x11)
	s, err := ext.VerificationKey().Bech32()
	if err != nil {
		t.Fatalf("Bech32: %v", err)
	}
	if !strings.HasPrefix(s, "addr_xvk1") {
		t.Fatalf("expected addr_xvk prefix, got %q", s)
	}
	// The plain role must not accept the extended prefix.
	if _, err := VerificationKeyFromBech32[Payment](s); err == nil {
		t.Fatalf("expected extended-prefixed string to be rejected by the plain role")
	}

	xsk, err := ext.Bech32()
	if err != nil {
		t.Fatalf("Bech32: %v", err)
	}
	if !strings.HasPrefix(xsk, "addr_xsk1") {
		t.Fatalf("expected addr_xsk prefix, got %q", xsk)
	}
	back, err := SigningKeyFromBech32[PaymentExtended](xsk)
	if err != nil {
		t.Fatalf("SigningKeyFromBech32: %v", err)
	}
	if !back.Equal(ext) {
		t.Fatalf("extended signing key bech32 round-trip mismatch")
	}
}

func TestBech32ForeignPrefixRejected(t *testing.T) {
	stake, err := mustSigningKey[Stake](t, 0x12).VerificationKey().Bech32()
	if err != nil {
		t.Fatalf("Bech32: %v", err)
	}
	_, err = VerificationKeyFromBech32[Payment](stake)
	var kerr *Error
	if !errors.As(err, &kerr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if kerr.Kind != KindBech32 || kerr.Type != "PaymentVerificationKey" {
		t.Fatalf("unexpected taxonomy: kind=%s type=%s", kerr.Kind, kerr.Type)
	}
}

func TestBech32UndeclaredForGenesisFamily(t *testing.T) {
	vk := mustSigningKey[Genesis](t, 0x13).VerificationKey()
	if _, err := vk.Bech32(); err == nil {
		t.Fatalf("expected genesis keys to have no bech32 encoding")
	}
	if _, err := VerificationKeyFromBech32[GenesisDelegate]("pool_vk1qqq"); err == nil {
		t.Fatalf("expected genesis-delegate bech32 decode to fail")
	}
}

func TestHashBech32(t *testing.T) {
	h := mustSigningKey[StakePool](t, 0x14).VerificationKey().Hash()
	s, err := h.Bech32()
	if err != nil {
		t.Fatalf("Bech32: %v", err)
	}
	if !strings.HasPrefix(s, "pool1") {
		t.Fatalf("expected pool prefix, got %q", s)
	}
	back, err := HashFromBech32[StakePool](s)
	if err != nil {
		t.Fatalf("HashFromBech32: %v", err)
	}
	if !back.Equal(h) {
		t.Fatalf("hash bech32 round-trip mismatch")
	}

	// The extended pool role accepts the legacy pool_xvkh alias on decode but
	// encodes under the canonical pool prefix.
	ext := mustSigningKey[StakePoolExtended](t, 0x15).VerificationKey().Hash()
	es, err := ext.Bech32()
	if err != nil {
		t.Fatalf("Bech32: %v", err)
	}
	if !strings.HasPrefix(es, "pool1") {
		t.Fatalf("expected canonical pool prefix, got %q", es)
	}
}

func TestPoolAndDRepHashesMarshalAsBech32JSON(t *testing.T) {
	pool := mustSigningKey[StakePool](t, 0x16).VerificationKey().Hash()
	drep := mustSigningKey[DRep](t, 0x17).VerificationKey().Hash()

	out, err := json.Marshal(map[string]any{"pool": pool, "drep": drep})
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if !strings.Contains(string(out), `"pool1`) || !strings.Contains(string(out), `"drep1`) {
		t.Fatalf("expected bech32 hash rendering, got %s", out)
	}

	// As a map key.
	keyed := map[Hash[StakePool]]string{pool: "metadata"}
	out, err = json.Marshal(keyed)
	if err != nil {
		t.Fatalf("json.Marshal map key: %v", err)
	}
	if !strings.Contains(string(out), `"pool1`) {
		t.Fatalf("expected bech32 map key, got %s", out)
	}

	var back map[Hash[StakePool]]string
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if back[pool] != "metadata" {
		t.Fatalf("map key round-trip mismatch")
	}
}

func TestPlainHashesMarshalAsHexJSON(t *testing.T) {
	h := mustSigningKey[Payment](t, 0x18).VerificationKey().Hash()
	out, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	want := `"` + h.Hex() + `"`
	if string(out) != want {
		t.Fatalf("expected %s, got %s", want, out)
	}
}
