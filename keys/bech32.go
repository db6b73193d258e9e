package keys

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Bech32 encodes the verification key under the role's canonical prefix.
// Roles without a declared prefix (the genesis family) fail.
func (vk VerificationKey[R]) Bech32() (string, error) {
	return bech32Encode(specFor[R]().vkeyBech32, specFor[R]().verificationKeyLabel(), vk.pub)
}

// Bech32 encodes the signing key under the role's canonical prefix.
func (sk SigningKey[R]) Bech32() (string, error) {
	return bech32Encode(specFor[R]().skeyBech32, specFor[R]().signingKeyLabel(), sk.priv)
}

// Bech32 encodes the key hash under the role's canonical hash prefix. Most
// roles have hex-only hashes; pool, drep and committee hashes declare one.
func (h Hash[R]) Bech32() (string, error) {
	return bech32Encode(specFor[R]().hashBech32, specFor[R]().hashLabel(), h.digest[:])
}

// VerificationKeyFromBech32 decodes a verification key of role R, accepting
// only the role's declared prefix set.
func VerificationKeyFromBech32[R Role](s string) (VerificationKey[R], error) {
	spec := specFor[R]()
	raw, err := bech32Decode(spec.vkeyBech32, spec.verificationKeyLabel(), s)
	if err != nil {
		return VerificationKey[R]{}, err
	}
	return VerificationKeyFromRawBytes[R](raw)
}

// SigningKeyFromBech32 decodes a signing key of role R.
func SigningKeyFromBech32[R Role](s string) (SigningKey[R], error) {
	spec := specFor[R]()
	raw, err := bech32Decode(spec.skeyBech32, spec.signingKeyLabel(), s)
	if err != nil {
		return SigningKey[R]{}, err
	}
	return SigningKeyFromRawBytes[R](raw)
}

// HashFromBech32 decodes a key hash of role R.
func HashFromBech32[R Role](s string) (Hash[R], error) {
	spec := specFor[R]()
	raw, err := bech32Decode(spec.hashBech32, spec.hashLabel(), s)
	if err != nil {
		return Hash[R]{}, err
	}
	return HashFromRawBytes[R](raw)
}

func bech32Encode(pair bech32Pair, typeLabel string, raw []byte) (string, error) {
	if !pair.defined() {
		return "", newError(KindBech32, typeLabel, typeLabel+": no bech32 encoding declared for this role")
	}
	conv, err := bech32.ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", wrapError(KindBech32, typeLabel, typeLabel+": bech32 payload conversion failed", err)
	}
	out, err := bech32.Encode(pair.encode, conv)
	if err != nil {
		return "", wrapError(KindBech32, typeLabel, typeLabel+": bech32 encoding failed", err)
	}
	return out, nil
}

func bech32Decode(pair bech32Pair, typeLabel, s string) ([]byte, error) {
	if !pair.defined() {
		return nil, newError(KindBech32, typeLabel, typeLabel+": no bech32 encoding declared for this role")
	}
	hrp, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return nil, wrapError(KindBech32, typeLabel, typeLabel+": malformed bech32 string", err)
	}
	if !prefixPermitted(pair, hrp) {
		return nil, newError(KindBech32, typeLabel,
			fmt.Sprintf("%s: bech32 prefix %q not permitted (accepted: %v)", typeLabel, hrp, pair.accept))
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, wrapError(KindBech32, typeLabel, typeLabel+": bech32 payload conversion failed", err)
	}
	return raw, nil
}

func prefixPermitted(pair bech32Pair, hrp string) bool {
	for _, p := range pair.accept {
		if p == hrp {
			return true
		}
	}
	return false
}
