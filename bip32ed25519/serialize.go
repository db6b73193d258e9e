package bip32ed25519

import "encoding/hex"

func (xpub XPub) Bytes() []byte {
	return append([]byte(nil), xpub[:]...)
}

func (xprv XPrv) Bytes() []byte {
	return append([]byte(nil), xprv[:]...)
}

// XPubFromBytes rebuilds an extended public key from its 64-byte form.
func XPubFromBytes(b []byte) (XPub, error) {
	var xpub XPub
	if len(b) != XPubSize {
		return xpub, ErrBadKeyLen
	}
	copy(xpub[:], b)
	return xpub, nil
}

// XPrvFromBytes rebuilds an extended private key from its 128-byte form.
func XPrvFromBytes(b []byte) (XPrv, error) {
	var xprv XPrv
	if len(b) != XPrvSize {
		return xprv, ErrBadKeyLen
	}
	copy(xprv[:], b)
	return xprv, nil
}

func (xpub XPub) String() string {
	return hex.EncodeToString(xpub[:])
}

func (xpub XPub) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(XPubSize))
	hex.Encode(out, xpub[:])
	return out, nil
}

func (xpub *XPub) UnmarshalText(inp []byte) error {
	if len(inp) != 2*XPubSize {
		return ErrBadKeyStr
	}
	_, err := hex.Decode(xpub[:], inp)
	return err
}

func (xprv XPrv) String() string {
	return hex.EncodeToString(xprv[:])
}

func (xprv XPrv) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(XPrvSize))
	hex.Encode(out, xprv[:])
	return out, nil
}

func (xprv *XPrv) UnmarshalText(inp []byte) error {
	if len(inp) != 2*XPrvSize {
		return ErrBadKeyStr
	}
	_, err := hex.Decode(xprv[:], inp)
	return err
}
