package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/praostools/praos/envelope"
	"github.com/praostools/praos/keys"
)

func testEnvelope(t *testing.T) envelope.Envelope {
	t.Helper()
	seed := make([]byte, keys.DeterministicSigningKeySeedSize[keys.Payment]())
	for i := range seed {
		seed[i] = 0x2a
	}
	sk, err := keys.DeterministicSigningKey[keys.Payment](seed)
	if err != nil {
		t.Fatalf("DeterministicSigningKey: %v", err)
	}
	vk := sk.VerificationKey()
	cborData, err := vk.MarshalCBOR()
	if err != nil {
		t.Fatalf("MarshalCBOR: %v", err)
	}
	return envelope.New(keys.VerificationKeyEnvelopeType[keys.Payment](), "Payment Verification Key", cborData)
}

func TestWriteReadRoundTrip(t *testing.T) {
	store := &Store{Directory: t.TempDir()}
	env := testEnvelope(t)

	path, err := store.WriteEnvelope("payment.vkey", env, false)
	if err != nil {
		t.Fatalf("WriteEnvelope: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}

	back, err := store.ReadEnvelope("payment.vkey")
	if err != nil {
		t.Fatalf("ReadEnvelope: %v", err)
	}
	if back != env {
		t.Fatalf("stored envelope mismatch: %+v != %+v", back, env)
	}
}

func TestWriteRefusesOverwrite(t *testing.T) {
	store := &Store{Directory: t.TempDir()}
	env := testEnvelope(t)

	if _, err := store.WriteEnvelope("payment.vkey", env, false); err != nil {
		t.Fatalf("WriteEnvelope: %v", err)
	}
	if _, err := store.WriteEnvelope("payment.vkey", env, false); err == nil {
		t.Fatalf("expected second write without overwrite to fail")
	}
	if _, err := store.WriteEnvelope("payment.vkey", env, true); err != nil {
		t.Fatalf("WriteEnvelope with overwrite: %v", err)
	}
}

func TestCheckName(t *testing.T) {
	valid := []string{"payment.vkey", "pool-1.skey", "node_counter", "OpCert.cert"}
	for _, name := range valid {
		if err := CheckName(name); err != nil {
			t.Fatalf("CheckName(%q): %v", name, err)
		}
	}
	invalid := []string{"", "a/b", "..", "../escape", ".hidden", "spaced name", "semi;colon"}
	for _, name := range invalid {
		if err := CheckName(name); err == nil {
			t.Fatalf("CheckName(%q): expected error", name)
		}
	}
}

func TestListSortedAndSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	store := &Store{Directory: dir}
	env := testEnvelope(t)

	for _, name := range []string{"b.vkey", "a.vkey", "c.skey"} {
		if _, err := store.WriteEnvelope(name, env, false); err != nil {
			t.Fatalf("WriteEnvelope(%q): %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o700); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"a.vkey", "b.vkey", "c.skey"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestListMissingDirectory(t *testing.T) {
	store := &Store{Directory: filepath.Join(t.TempDir(), "absent")}
	names, err := store.List()
	if err != nil {
		t.Fatalf("List on missing directory: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty listing, got %v", names)
	}
}
