package keys

import (
	"github.com/praostools/praos/internal/canoncbor"
)

// Keys CBOR-encode as byte strings. Plain keys pass their raw bytes through;
// extended keys wrap their serialized form in an explicit byte string since
// the extended scheme has no native CBOR primitive. Both cases are a single
// CBOR byte string on the wire; the distinction is the serialized width.

func (vk VerificationKey[R]) MarshalCBOR() ([]byte, error) {
	return canoncbor.Marshal(vk.pub)
}

func (vk *VerificationKey[R]) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := canoncbor.Unmarshal(data, &raw); err != nil {
		return wrapError(KindDecode, specFor[R]().verificationKeyLabel(),
			specFor[R]().verificationKeyLabel()+": malformed CBOR byte string", err)
	}
	decoded, err := VerificationKeyFromRawBytes[R](raw)
	if err != nil {
		return err
	}
	*vk = decoded
	return nil
}

func (sk SigningKey[R]) MarshalCBOR() ([]byte, error) {
	return canoncbor.Marshal(sk.priv)
}

func (sk *SigningKey[R]) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := canoncbor.Unmarshal(data, &raw); err != nil {
		return wrapError(KindDecode, specFor[R]().signingKeyLabel(),
			specFor[R]().signingKeyLabel()+": malformed CBOR byte string", err)
	}
	decoded, err := SigningKeyFromRawBytes[R](raw)
	if err != nil {
		return err
	}
	*sk = decoded
	return nil
}

func (h Hash[R]) MarshalCBOR() ([]byte, error) {
	return canoncbor.Marshal(h.digest[:])
}

func (h *Hash[R]) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := canoncbor.Unmarshal(data, &raw); err != nil {
		return wrapError(KindDecode, specFor[R]().hashLabel(),
			specFor[R]().hashLabel()+": malformed CBOR byte string", err)
	}
	decoded, err := HashFromRawBytes[R](raw)
	if err != nil {
		return err
	}
	*h = decoded
	return nil
}

// MarshalText renders the hash as bech32 when the role declares a hash prefix
// (pool, drep, committee) and as hex otherwise. encoding/json uses this for
// both values and map keys, which is how pool and DRep hashes appear in JSON.
func (h Hash[R]) MarshalText() ([]byte, error) {
	if specFor[R]().hashBech32.defined() {
		s, err := h.Bech32()
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	}
	return []byte(h.Hex()), nil
}

func (h *Hash[R]) UnmarshalText(text []byte) error {
	var (
		decoded Hash[R]
		err     error
	)
	if specFor[R]().hashBech32.defined() {
		decoded, err = HashFromBech32[R](string(text))
	} else {
		decoded, err = HashFromHex[R](string(text))
	}
	if err != nil {
		return err
	}
	*h = decoded
	return nil
}

func (h Hash[R]) String() string {
	text, err := h.MarshalText()
	if err != nil {
		return h.Hex()
	}
	return string(text)
}
