package keys

import (
	"bytes"
	"fmt"
	"io"

	circled25519 "github.com/cloudflare/circl/sign/ed25519"
	"golang.org/x/crypto/blake2b"

	"github.com/praostools/praos/bip32ed25519"
)

// HashSize is the width of verification-key hashes (Blake2b-224).
const HashSize = 28

// SigningKey holds the private key material for role R: the 32-byte seed for
// plain roles, the 128-byte XPrv for extended roles. Raw-byte export is
// explicit via RawBytes; String never reveals key material.
type SigningKey[R Role] struct {
	priv []byte
}

// VerificationKey holds the public key for role R: 32 bytes for plain roles,
// 64 bytes (public key || chain code) for extended roles.
type VerificationKey[R Role] struct {
	pub []byte
}

// Hash is the Blake2b-224 digest of a verification key's plain public bytes.
// For extended roles the digest covers the embedded 32-byte public key, never
// the chain code, so hashes stay stable across extended/plain counterparts.
//
// Hash is comparable and ordered, so it works as a sorted-map key.
type Hash[R Role] struct {
	digest [HashSize]byte
}

// DeterministicSigningKeySeedSize returns how many seed bytes
// DeterministicSigningKey consumes for role R.
func DeterministicSigningKeySeedSize[R Role]() int {
	return specFor[R]().seedSize()
}

// DeterministicSigningKey derives the signing key for role R from seed
// material. It consumes the first DeterministicSigningKeySeedSize bytes;
// shorter input fails. Same seed, same key, on every run.
func DeterministicSigningKey[R Role](seed []byte) (SigningKey[R], error) {
	spec := specFor[R]()
	n := spec.seedSize()
	if len(seed) < n {
		return SigningKey[R]{}, newError(KindRawBytes, spec.signingKeyLabel(),
			fmt.Sprintf("%s: seed too short: need %d bytes, got %d", spec.signingKeyLabel(), n, len(seed)))
	}
	if spec.algorithm == AlgorithmEd25519BIP32 {
		xprv, err := bip32ed25519.FromSeed(seed[:n])
		if err != nil {
			return SigningKey[R]{}, wrapError(KindRawBytes, spec.signingKeyLabel(),
				spec.signingKeyLabel()+": root key generation failed", err)
		}
		return SigningKey[R]{priv: xprv.Bytes()}, nil
	}
	return SigningKey[R]{priv: append([]byte(nil), seed[:n]...)}, nil
}

// GenerateSigningKey draws a fresh seed from rand and derives a signing key.
func GenerateSigningKey[R Role](rand io.Reader) (SigningKey[R], error) {
	seed := make([]byte, DeterministicSigningKeySeedSize[R]())
	if _, err := io.ReadFull(rand, seed); err != nil {
		return SigningKey[R]{}, wrapError(KindInternal, specFor[R]().signingKeyLabel(),
			"reading seed entropy failed", err)
	}
	return DeterministicSigningKey[R](seed)
}

// VerificationKey returns the verification key for sk.
func (sk SigningKey[R]) VerificationKey() VerificationKey[R] {
	spec := specFor[R]()
	if spec.algorithm == AlgorithmEd25519BIP32 {
		xprv := sk.mustXPrv()
		xpub := xprv.XPub()
		return VerificationKey[R]{pub: xpub.Bytes()}
	}
	priv := circled25519.NewKeyFromSeed(sk.priv)
	pub := priv.Public().(circled25519.PublicKey)
	return VerificationKey[R]{pub: append([]byte(nil), pub...)}
}

// Sign signs message with sk's underlying scheme. Extended-role signatures
// are plain Ed25519 signatures over the embedded public key.
func (sk SigningKey[R]) Sign(message []byte) []byte {
	if specFor[R]().algorithm == AlgorithmEd25519BIP32 {
		return sk.mustXPrv().Sign(message)
	}
	priv := circled25519.NewKeyFromSeed(sk.priv)
	return circled25519.Sign(priv, message)
}

func (sk SigningKey[R]) mustXPrv() bip32ed25519.XPrv {
	xprv, err := bip32ed25519.XPrvFromBytes(sk.priv)
	if err != nil {
		// Construction enforces the width; reaching this means the key was
		// built outside the package contract.
		panic("keys: malformed extended signing key: " + err.Error())
	}
	return xprv
}

// Equal reports byte-exact equality.
func (sk SigningKey[R]) Equal(other SigningKey[R]) bool {
	return bytes.Equal(sk.priv, other.priv)
}

// String identifies the key without exposing private material.
func (sk SigningKey[R]) String() string {
	return specFor[R]().signingKeyLabel() + "{...}"
}

// Verify reports whether sig is a valid signature over message for vk.
func (vk VerificationKey[R]) Verify(message, sig []byte) bool {
	return circled25519.Verify(circled25519.PublicKey(vk.plainPublicBytes()), message, sig)
}

// Hash returns the Blake2b-224 digest of vk's plain public bytes.
func (vk VerificationKey[R]) Hash() Hash[R] {
	h, err := blake2b.New(HashSize, nil)
	if err != nil {
		panic("keys: blake2b init: " + err.Error())
	}
	h.Write(vk.plainPublicBytes())
	var out Hash[R]
	copy(out.digest[:], h.Sum(nil))
	return out
}

// plainPublicBytes is the 32-byte public key, for extended keys the embedded
// plain portion.
func (vk VerificationKey[R]) plainPublicBytes() []byte {
	if specFor[R]().algorithm == AlgorithmEd25519BIP32 {
		return vk.pub[:plainVerificationKeySize]
	}
	return vk.pub
}

// Equal reports byte-exact equality.
func (vk VerificationKey[R]) Equal(other VerificationKey[R]) bool {
	return bytes.Equal(vk.pub, other.pub)
}

func (vk VerificationKey[R]) String() string {
	return fmt.Sprintf("%s(%x)", specFor[R]().verificationKeyLabel(), vk.pub)
}

// Equal reports digest equality.
func (h Hash[R]) Equal(other Hash[R]) bool {
	return h.digest == other.digest
}

// Compare orders hashes lexicographically by digest bytes.
func (h Hash[R]) Compare(other Hash[R]) int {
	return bytes.Compare(h.digest[:], other.digest[:])
}
