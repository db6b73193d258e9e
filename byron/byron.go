// Package byron builds Byron-era update proposals and votes.
//
// Both artifacts are signed over canonical CBOR and carry the exact byte
// annotation the signature covers. Builders sign first and then re-serialize
// and re-decode the signed structure, so the stored annotation is always the
// byte sequence a strict canonical reader will verify against. Decoding
// re-attaches annotations from the exact input buffer consumed.
package byron

import (
	"golang.org/x/crypto/blake2b"

	"github.com/praostools/praos/internal/canoncbor"
)

// Sign tags scope a signature to one artifact kind. The signed bytes are
// tag || CBOR(protocol magic) || payload.
const (
	signTagUpdateProposal byte = 0x04
	signTagUpdateVote     byte = 0x06
)

// UpID identifies an update proposal: the Blake2b-256 digest of its canonical
// bytes.
type UpID [32]byte

func (id UpID) Bytes() []byte {
	return append([]byte(nil), id[:]...)
}

func signedBytes(tag byte, magic uint32, payload []byte) []byte {
	magicCbor, err := canoncbor.Marshal(magic)
	if err != nil {
		panic("byron: protocol magic encoding: " + err.Error())
	}
	out := make([]byte, 0, 1+len(magicCbor)+len(payload))
	out = append(out, tag)
	out = append(out, magicCbor...)
	return append(out, payload...)
}

func hashCanonicalBytes(b []byte) UpID {
	return UpID(blake2b.Sum256(b))
}
