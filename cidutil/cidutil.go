// Package cidutil derives content identifiers for serialized artifacts
// (text envelopes, certificates, proposals). Artifacts are canonical bytes,
// so the CID is a stable audit reference: same artifact, same CID, anywhere.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// ArtifactCID returns a CIDv1 string using the "raw" multicodec and a
// sha2-256 multihash over the artifact bytes.
func ArtifactCID(artifact []byte) string {
	sum, err := multihash.Sum(artifact, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum only errors for invalid inputs; with SHA2_256 and -1
		// length, this should be unreachable.
		return ""
	}
	return cid.NewCidV1(cid.Raw, sum).String()
}

// ParseArtifactCID parses and validates a CID string.
func ParseArtifactCID(s string) (cid.Cid, error) {
	return cid.Decode(s)
}
