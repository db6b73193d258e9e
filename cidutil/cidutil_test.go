package cidutil

import (
	"strings"
	"testing"
)

func TestArtifactCIDDeterministic(t *testing.T) {
	a := ArtifactCID([]byte("artifact bytes"))
	b := ArtifactCID([]byte("artifact bytes"))
	if a == "" || a != b {
		t.Fatalf("expected deterministic CID, got %q and %q", a, b)
	}
	if !strings.HasPrefix(a, "bafkrei") {
		t.Fatalf("expected CIDv1 raw sha2-256 prefix, got %q", a)
	}
	if ArtifactCID([]byte("other bytes")) == a {
		t.Fatalf("distinct artifacts produced the same CID")
	}
}

func TestParseArtifactCIDRoundTrip(t *testing.T) {
	s := ArtifactCID([]byte{0x01, 0x02, 0x03})
	c, err := ParseArtifactCID(s)
	if err != nil {
		t.Fatalf("ParseArtifactCID: %v", err)
	}
	if c.String() != s {
		t.Fatalf("CID round-trip mismatch")
	}
	if _, err := ParseArtifactCID("not a cid"); err == nil {
		t.Fatalf("expected invalid CID to fail")
	}
}
