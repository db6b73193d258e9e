package keys

import "fmt"

// The casting matrix is a fixed directed graph. Casting never changes key
// bytes; a relabel edge swaps only the role tag, an extended edge narrows an
// extended key to the plain public key it embeds. There are no reverse edges.

type castEdge struct {
	from, to string
}

// Relabel edges: identical underlying representation, total, never fail.
var relabelVerificationKeyCasts = map[castEdge]struct{}{
	{"Genesis", "Payment"}:           {},
	{"Payment", "Genesis"}:           {},
	{"GenesisUTxO", "Payment"}:       {},
	{"GenesisDelegate", "StakePool"}: {},
	{"StakePool", "Stake"}:           {},
	{"CommitteeHot", "Payment"}:      {},
	{"CommitteeCold", "Payment"}:     {},
}

// Extended-to-plain edges: recompute the plain key from the embedded public
// bytes of the extended key.
var extendedVerificationKeyCasts = map[castEdge]struct{}{
	{"PaymentExtended", "Payment"}:                 {},
	{"StakeExtended", "Stake"}:                     {},
	{"GenesisExtended", "Genesis"}:                 {},
	{"GenesisDelegateExtended", "GenesisDelegate"}: {},
	{"StakePoolExtended", "StakePool"}:             {},
	{"CommitteeHotExtended", "CommitteeHot"}:       {},
	{"CommitteeColdExtended", "CommitteeCold"}:     {},
	{"DRepExtended", "DRep"}:                       {},
}

// Signing-key casts: extended private material cannot be reduced, so the only
// edge is the genesis-delegate relabel, where the schemes are identical.
var relabelSigningKeyCasts = map[castEdge]struct{}{
	{"GenesisDelegate", "StakePool"}: {},
}

// CastVerificationKey converts a verification key between related roles along
// the casting graph. Undefined edges fail with a Decode-kind error naming
// both roles.
func CastVerificationKey[To Role, From Role](vk VerificationKey[From]) (VerificationKey[To], error) {
	edge := castEdge{from: specFor[From]().name, to: specFor[To]().name}
	if _, ok := relabelVerificationKeyCasts[edge]; ok {
		return VerificationKey[To]{pub: append([]byte(nil), vk.pub...)}, nil
	}
	if _, ok := extendedVerificationKeyCasts[edge]; ok {
		if len(vk.pub) != extendedVKeySize || specFor[To]().verificationKeySize() != plainVerificationKeySize {
			// Extended and plain Ed25519 key sizes are compatible by
			// construction; a mismatch means a broken scheme assumption.
			panic(fmt.Sprintf("keys: impossible key width in cast %s -> %s", edge.from, edge.to))
		}
		return VerificationKey[To]{pub: append([]byte(nil), vk.pub[:plainVerificationKeySize]...)}, nil
	}
	return VerificationKey[To]{}, newError(KindDecode, specFor[From]().verificationKeyLabel(),
		fmt.Sprintf("no verification key cast from %s to %s", edge.from, edge.to))
}

// CastSigningKey converts a signing key between roles with identical signing
// schemes. Only the genesis-delegate to stake-pool relabel is defined.
func CastSigningKey[To Role, From Role](sk SigningKey[From]) (SigningKey[To], error) {
	edge := castEdge{from: specFor[From]().name, to: specFor[To]().name}
	if _, ok := relabelSigningKeyCasts[edge]; ok {
		return SigningKey[To]{priv: append([]byte(nil), sk.priv...)}, nil
	}
	return SigningKey[To]{}, newError(KindDecode, specFor[From]().signingKeyLabel(),
		fmt.Sprintf("no signing key cast from %s to %s", edge.from, edge.to))
}
