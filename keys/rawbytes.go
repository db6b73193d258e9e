package keys

import (
	"encoding/hex"
	"fmt"
)

// RawBytes returns the serialized verification key: the 32-byte public key
// for plain roles, public key || chain code for extended roles.
func (vk VerificationKey[R]) RawBytes() []byte {
	return append([]byte(nil), vk.pub...)
}

// RawBytes exports the serialized signing key: the 32-byte seed for plain
// roles, the 128-byte XPrv for extended roles. Export is explicit; nothing in
// this package writes signing-key bytes anywhere on its own.
func (sk SigningKey[R]) RawBytes() []byte {
	return append([]byte(nil), sk.priv...)
}

// RawBytes returns the 28-byte digest.
func (h Hash[R]) RawBytes() []byte {
	return append([]byte(nil), h.digest[:]...)
}

// VerificationKeyFromRawBytes rebuilds a verification key of role R from its
// serialized form.
func VerificationKeyFromRawBytes[R Role](raw []byte) (VerificationKey[R], error) {
	spec := specFor[R]()
	if len(raw) != spec.verificationKeySize() {
		return VerificationKey[R]{}, newError(KindRawBytes, spec.verificationKeyLabel(),
			fmt.Sprintf("%s: expected %d bytes, got %d", spec.verificationKeyLabel(), spec.verificationKeySize(), len(raw)))
	}
	return VerificationKey[R]{pub: append([]byte(nil), raw...)}, nil
}

// SigningKeyFromRawBytes rebuilds a signing key of role R from its serialized
// form.
func SigningKeyFromRawBytes[R Role](raw []byte) (SigningKey[R], error) {
	spec := specFor[R]()
	if len(raw) != spec.signingKeySize() {
		return SigningKey[R]{}, newError(KindRawBytes, spec.signingKeyLabel(),
			fmt.Sprintf("%s: expected %d bytes, got %d", spec.signingKeyLabel(), spec.signingKeySize(), len(raw)))
	}
	return SigningKey[R]{priv: append([]byte(nil), raw...)}, nil
}

// HashFromRawBytes rebuilds a key hash of role R from its 28-byte digest.
func HashFromRawBytes[R Role](raw []byte) (Hash[R], error) {
	spec := specFor[R]()
	if len(raw) != HashSize {
		return Hash[R]{}, newError(KindRawBytes, spec.hashLabel(),
			fmt.Sprintf("%s: expected %d bytes, got %d", spec.hashLabel(), HashSize, len(raw)))
	}
	var h Hash[R]
	copy(h.digest[:], raw)
	return h, nil
}

// Hex returns the lowercase hex form of the serialized verification key.
func (vk VerificationKey[R]) Hex() string {
	return hex.EncodeToString(vk.pub)
}

// Hex returns the lowercase hex form of the digest.
func (h Hash[R]) Hex() string {
	return hex.EncodeToString(h.digest[:])
}

// VerificationKeyFromHex parses a hex-encoded verification key of role R.
func VerificationKeyFromHex[R Role](s string) (VerificationKey[R], error) {
	raw, err := decodeHex(s, specFor[R]().verificationKeyLabel())
	if err != nil {
		return VerificationKey[R]{}, err
	}
	return VerificationKeyFromRawBytes[R](raw)
}

// SigningKeyFromHex parses a hex-encoded signing key of role R.
func SigningKeyFromHex[R Role](s string) (SigningKey[R], error) {
	raw, err := decodeHex(s, specFor[R]().signingKeyLabel())
	if err != nil {
		return SigningKey[R]{}, err
	}
	return SigningKeyFromRawBytes[R](raw)
}

// HashFromHex parses a hex-encoded key hash of role R.
func HashFromHex[R Role](s string) (Hash[R], error) {
	raw, err := decodeHex(s, specFor[R]().hashLabel())
	if err != nil {
		return Hash[R]{}, err
	}
	return HashFromRawBytes[R](raw)
}

func decodeHex(s, typeLabel string) ([]byte, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, wrapError(KindRawBytes, typeLabel, typeLabel+": invalid hex", err)
	}
	return raw, nil
}
