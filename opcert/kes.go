package opcert

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/praostools/praos/internal/canoncbor"
	"github.com/praostools/praos/keys"
)

// KesVerificationKeySize is the hot key width. The KES scheme itself is an
// external primitive; this package only carries its verification key.
const KesVerificationKeySize = 32

// Bech32 prefix and text-envelope tag for KES verification keys.
const (
	kesVKeyBech32Prefix = "kes_vk"
	KesVKeyEnvelopeType = "KesVerificationKey_ed25519_kes_2^6"
	kesVKeyLabel        = "KesVerificationKey"
)

// KesVerificationKey is the hot key bound by an operational certificate.
type KesVerificationKey [KesVerificationKeySize]byte

// KesVerificationKeyFromRawBytes rebuilds a KES verification key from its
// 32-byte form.
func KesVerificationKeyFromRawBytes(raw []byte) (KesVerificationKey, error) {
	var k KesVerificationKey
	if len(raw) != KesVerificationKeySize {
		return k, &keys.Error{Kind: keys.KindRawBytes, Type: kesVKeyLabel,
			Message: fmt.Sprintf("%s: expected %d bytes, got %d", kesVKeyLabel, KesVerificationKeySize, len(raw))}
	}
	copy(k[:], raw)
	return k, nil
}

func (k KesVerificationKey) RawBytes() []byte {
	return append([]byte(nil), k[:]...)
}

func (k KesVerificationKey) Hex() string {
	return hex.EncodeToString(k[:])
}

// Bech32 encodes the key under the kes_vk prefix.
func (k KesVerificationKey) Bech32() (string, error) {
	conv, err := bech32.ConvertBits(k[:], 8, 5, true)
	if err != nil {
		return "", &keys.Error{Kind: keys.KindBech32, Type: kesVKeyLabel,
			Message: kesVKeyLabel + ": bech32 payload conversion failed", Cause: err}
	}
	out, err := bech32.Encode(kesVKeyBech32Prefix, conv)
	if err != nil {
		return "", &keys.Error{Kind: keys.KindBech32, Type: kesVKeyLabel,
			Message: kesVKeyLabel + ": bech32 encoding failed", Cause: err}
	}
	return out, nil
}

// KesVerificationKeyFromBech32 decodes a kes_vk-prefixed key.
func KesVerificationKeyFromBech32(s string) (KesVerificationKey, error) {
	hrp, data, err := bech32.DecodeNoLimit(s)
	if err != nil {
		return KesVerificationKey{}, &keys.Error{Kind: keys.KindBech32, Type: kesVKeyLabel,
			Message: kesVKeyLabel + ": malformed bech32 string", Cause: err}
	}
	if hrp != kesVKeyBech32Prefix {
		return KesVerificationKey{}, &keys.Error{Kind: keys.KindBech32, Type: kesVKeyLabel,
			Message: fmt.Sprintf("%s: bech32 prefix %q not permitted (accepted: [%s])", kesVKeyLabel, hrp, kesVKeyBech32Prefix)}
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return KesVerificationKey{}, &keys.Error{Kind: keys.KindBech32, Type: kesVKeyLabel,
			Message: kesVKeyLabel + ": bech32 payload conversion failed", Cause: err}
	}
	return KesVerificationKeyFromRawBytes(raw)
}

func (k KesVerificationKey) MarshalCBOR() ([]byte, error) {
	return canoncbor.Marshal(k[:])
}

func (k *KesVerificationKey) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := canoncbor.Unmarshal(data, &raw); err != nil {
		return &keys.Error{Kind: keys.KindDecode, Type: kesVKeyLabel,
			Message: kesVKeyLabel + ": malformed CBOR byte string", Cause: err}
	}
	decoded, err := KesVerificationKeyFromRawBytes(raw)
	if err != nil {
		return err
	}
	*k = decoded
	return nil
}
