// Package bip32ed25519 implements the extended Ed25519 key scheme used for
// hierarchical-deterministic key material.
//
// An extended private key (XPrv) carries a 64-byte expanded secret, the
// 32-byte public key and a 32-byte chain code. An extended public key (XPub)
// carries the public key and the chain code. Signatures produced with an XPrv
// are plain Ed25519 signatures: they verify with any Ed25519 verifier against
// the embedded public key.
package bip32ed25519

import (
	"crypto/hmac"
	"crypto/sha512"
	"errors"

	"filippo.io/edwards25519"
	circled25519 "github.com/cloudflare/circl/sign/ed25519"
)

const (
	// SeedSize is the seed length for root key generation. Extended keys
	// always generate from 32 bytes of entropy regardless of how much seed
	// material the caller holds.
	SeedSize = 32

	// PublicKeySize is the size of the plain public key embedded in an
	// extended key.
	PublicKeySize = 32

	// ChainCodeSize is the size of the derivation chain code.
	ChainCodeSize = 32

	// XPubSize is public key || chain code.
	XPubSize = PublicKeySize + ChainCodeSize

	// XPrvSize is expanded secret (64) || public key (32) || chain code (32).
	XPrvSize = 64 + PublicKeySize + ChainCodeSize

	// SignatureSize is the plain Ed25519 signature size.
	SignatureSize = 64
)

var (
	ErrBadSeedLen = errors.New("bip32ed25519: bad seed length")
	ErrBadKeyLen  = errors.New("bip32ed25519: bad key length")
	ErrBadKeyStr  = errors.New("bip32ed25519: bad key string")
)

// XPub is an extended public key: public key || chain code.
type XPub [XPubSize]byte

// XPrv is an extended private key: expanded secret || public key || chain code.
type XPrv [XPrvSize]byte

// Domain bytes for root generation. The secret and the chain code come from
// separate HMAC invocations keyed by the seed.
const (
	rootDomainSecret    = 0x00
	rootDomainChainCode = 0x01
)

// FromSeed generates the root extended private key for a 32-byte seed with an
// empty passphrase salt.
//
// The expanded secret is HMAC-SHA512(seed, domain || retry), re-drawn with an
// incremented retry byte until the scalar admissibility bit (0x20 of the last
// scalar byte) is clear, then clamped. Generation is fully deterministic.
func FromSeed(seed []byte) (XPrv, error) {
	var xprv XPrv
	if len(seed) != SeedSize {
		return xprv, ErrBadSeedLen
	}

	var secret [64]byte
	for retry := byte(0); ; retry++ {
		mac := hmac.New(sha512.New, seed)
		mac.Write([]byte{rootDomainSecret, retry})
		copy(secret[:], mac.Sum(nil))
		if secret[31]&0x20 == 0 {
			break
		}
	}
	secret[0] &= 0xf8
	secret[31] &= 0x7f
	secret[31] |= 0x40

	mac := hmac.New(sha512.New, seed)
	mac.Write([]byte{rootDomainChainCode})
	chainCode := mac.Sum(nil)[:ChainCodeSize]

	pub := scalarPublicKey(secret[:32])

	copy(xprv[0:64], secret[:])
	copy(xprv[64:96], pub)
	copy(xprv[96:128], chainCode)
	return xprv, nil
}

// XPub returns the extended public key for xprv.
func (xprv XPrv) XPub() (xpub XPub) {
	copy(xpub[0:32], xprv[64:96])
	copy(xpub[32:64], xprv[96:128])
	return xpub
}

// PublicKey returns the embedded plain Ed25519 public key.
func (xpub XPub) PublicKey() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, xpub[0:32])
	return out
}

// ChainCode returns the derivation chain code.
func (xpub XPub) ChainCode() []byte {
	out := make([]byte, ChainCodeSize)
	copy(out, xpub[32:64])
	return out
}

// Sign produces a plain Ed25519 signature over message using the extended
// secret. The nonce is derived from the right half of the expanded secret, so
// signing is deterministic.
func (xprv XPrv) Sign(message []byte) []byte {
	s := mustScalar(xprv[0:32])
	pub := xprv[64:96]

	h := sha512.New()
	h.Write(xprv[32:64])
	h.Write(message)
	r := mustWideScalar(h.Sum(nil))
	R := new(edwards25519.Point).ScalarBaseMult(r)

	h.Reset()
	h.Write(R.Bytes())
	h.Write(pub)
	h.Write(message)
	k := mustWideScalar(h.Sum(nil))

	S := edwards25519.NewScalar().MultiplyAdd(k, s, r)

	sig := make([]byte, SignatureSize)
	copy(sig[0:32], R.Bytes())
	copy(sig[32:64], S.Bytes())
	return sig
}

// Verify reports whether sig is a valid signature over message for the public
// key embedded in xpub.
func (xpub XPub) Verify(message, sig []byte) bool {
	return circled25519.Verify(circled25519.PublicKey(xpub[0:32]), message, sig)
}

func scalarPublicKey(kL []byte) []byte {
	s := mustScalar(kL)
	return new(edwards25519.Point).ScalarBaseMult(s).Bytes()
}

func mustScalar(kL []byte) *edwards25519.Scalar {
	s, err := edwards25519.NewScalar().SetBytesWithClamping(kL)
	if err != nil {
		// SetBytesWithClamping only rejects inputs that are not 32 bytes.
		panic("bip32ed25519: invalid scalar width: " + err.Error())
	}
	return s
}

func mustWideScalar(wide []byte) *edwards25519.Scalar {
	s, err := edwards25519.NewScalar().SetUniformBytes(wide)
	if err != nil {
		panic("bip32ed25519: invalid wide scalar width: " + err.Error())
	}
	return s
}
