// Package canoncbor fixes one deterministic CBOR configuration for the whole
// module. Every byte sequence a signature covers is produced through this
// package, so re-encoding a decoded value reproduces the signed bytes.
package canoncbor

import "github.com/fxamacker/cbor/v2"

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("canoncbor: enc mode: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("canoncbor: dec mode: " + err.Error())
	}
}

// Marshal encodes v with the module's deterministic encoding options.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}
