package keys

import (
	circled25519 "github.com/cloudflare/circl/sign/ed25519"

	"github.com/praostools/praos/bip32ed25519"
)

// Algorithm selects the signature scheme backing a key role.
type Algorithm int

const (
	// AlgorithmEd25519 is the plain Ed25519 scheme.
	AlgorithmEd25519 Algorithm = iota
	// AlgorithmEd25519BIP32 is the extended (chain-coded) Ed25519 scheme.
	AlgorithmEd25519BIP32
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmEd25519:
		return "ed25519"
	case AlgorithmEd25519BIP32:
		return "ed25519_bip32"
	default:
		return "unknown"
	}
}

// Role is the closed set of key-role tags. Role tags are never instantiated
// as data; they select behavior at the type level. The unexported method
// keeps the set closed to this package.
type Role interface {
	roleSpec() *roleSpec
}

// One tag per role. Extended variants are distinct roles: they never share
// serialized widths, bech32 prefixes or envelope tags with their plain
// counterparts.
type (
	Payment                 struct{}
	PaymentExtended         struct{}
	Stake                   struct{}
	StakeExtended           struct{}
	Genesis                 struct{}
	GenesisExtended         struct{}
	GenesisDelegate         struct{}
	GenesisDelegateExtended struct{}
	GenesisUTxO             struct{}
	StakePool               struct{}
	StakePoolExtended       struct{}
	CommitteeHot            struct{}
	CommitteeHotExtended    struct{}
	CommitteeCold           struct{}
	CommitteeColdExtended   struct{}
	DRep                    struct{}
	DRepExtended            struct{}
)

// bech32Pair is one canonical encode prefix plus the full accepted decode set.
// A zero pair means the encoding is not declared for the type.
type bech32Pair struct {
	encode string
	accept []string
}

func (p bech32Pair) defined() bool { return p.encode != "" }

type roleSpec struct {
	name      string
	algorithm Algorithm

	// envelopeBase and envelopeEra compose the text-envelope type tags:
	// <base><Verification|Signing>Key<era>_<algorithm>.
	envelopeBase string
	envelopeEra  string

	vkeyBech32 bech32Pair
	skeyBech32 bech32Pair
	hashBech32 bech32Pair
}

func one(prefix string) bech32Pair {
	return bech32Pair{encode: prefix, accept: []string{prefix}}
}

var (
	specPayment = roleSpec{
		name: "Payment", algorithm: AlgorithmEd25519,
		envelopeBase: "Payment", envelopeEra: "Shelley",
		vkeyBech32: one("addr_vk"), skeyBech32: one("addr_sk"),
	}
	specPaymentExtended = roleSpec{
		name: "PaymentExtended", algorithm: AlgorithmEd25519BIP32,
		envelopeBase: "PaymentExtended", envelopeEra: "Shelley",
		vkeyBech32: one("addr_xvk"), skeyBech32: one("addr_xsk"),
	}
	specStake = roleSpec{
		name: "Stake", algorithm: AlgorithmEd25519,
		envelopeBase: "Stake", envelopeEra: "Shelley",
		vkeyBech32: one("stake_vk"), skeyBech32: one("stake_sk"),
	}
	specStakeExtended = roleSpec{
		name: "StakeExtended", algorithm: AlgorithmEd25519BIP32,
		envelopeBase: "StakeExtended", envelopeEra: "Shelley",
		vkeyBech32: one("stake_xvk"), skeyBech32: one("stake_xsk"),
	}

	// The genesis family is envelope-only: it declares no bech32 prefixes.
	specGenesis = roleSpec{
		name: "Genesis", algorithm: AlgorithmEd25519,
		envelopeBase: "Genesis",
	}
	specGenesisExtended = roleSpec{
		name: "GenesisExtended", algorithm: AlgorithmEd25519BIP32,
		envelopeBase: "GenesisExtended",
	}
	specGenesisDelegate = roleSpec{
		name: "GenesisDelegate", algorithm: AlgorithmEd25519,
		envelopeBase: "GenesisDelegate",
	}
	specGenesisDelegateExtended = roleSpec{
		name: "GenesisDelegateExtended", algorithm: AlgorithmEd25519BIP32,
		envelopeBase: "GenesisDelegateExtended",
	}
	specGenesisUTxO = roleSpec{
		name: "GenesisUTxO", algorithm: AlgorithmEd25519,
		envelopeBase: "GenesisUTxO",
	}

	specStakePool = roleSpec{
		name: "StakePool", algorithm: AlgorithmEd25519,
		envelopeBase: "StakePool",
		vkeyBech32: one("pool_vk"), skeyBech32: one("pool_sk"),
		hashBech32: one("pool"),
	}
	specStakePoolExtended = roleSpec{
		name: "StakePoolExtended", algorithm: AlgorithmEd25519BIP32,
		envelopeBase: "StakePoolExtended",
		vkeyBech32: one("pool_xvk"), skeyBech32: one("pool_xsk"),
		hashBech32: bech32Pair{encode: "pool", accept: []string{"pool", "pool_xvkh"}},
	}

	specCommitteeHot = roleSpec{
		name: "CommitteeHot", algorithm: AlgorithmEd25519,
		envelopeBase: "ConstitutionalCommitteeHot",
		vkeyBech32: one("cc_hot_vk"), skeyBech32: one("cc_hot_sk"),
		hashBech32: one("cc_hot"),
	}
	specCommitteeHotExtended = roleSpec{
		name: "CommitteeHotExtended", algorithm: AlgorithmEd25519BIP32,
		envelopeBase: "ConstitutionalCommitteeHotExtended",
		vkeyBech32: one("cc_hot_xvk"), skeyBech32: one("cc_hot_xsk"),
		hashBech32: one("cc_hot"),
	}
	specCommitteeCold = roleSpec{
		name: "CommitteeCold", algorithm: AlgorithmEd25519,
		envelopeBase: "ConstitutionalCommitteeCold",
		vkeyBech32: one("cc_cold_vk"), skeyBech32: one("cc_cold_sk"),
		hashBech32: one("cc_cold"),
	}
	specCommitteeColdExtended = roleSpec{
		name: "CommitteeColdExtended", algorithm: AlgorithmEd25519BIP32,
		envelopeBase: "ConstitutionalCommitteeColdExtended",
		vkeyBech32: one("cc_cold_xvk"), skeyBech32: one("cc_cold_xsk"),
		hashBech32: one("cc_cold"),
	}

	specDRep = roleSpec{
		name: "DRep", algorithm: AlgorithmEd25519,
		envelopeBase: "DRep",
		vkeyBech32: one("drep_vk"), skeyBech32: one("drep_sk"),
		hashBech32: one("drep"),
	}
	specDRepExtended = roleSpec{
		name: "DRepExtended", algorithm: AlgorithmEd25519BIP32,
		envelopeBase: "DRepExtended",
		vkeyBech32: one("drep_xvk"), skeyBech32: one("drep_xsk"),
		hashBech32: one("drep"),
	}
)

func (Payment) roleSpec() *roleSpec                 { return &specPayment }
func (PaymentExtended) roleSpec() *roleSpec         { return &specPaymentExtended }
func (Stake) roleSpec() *roleSpec                   { return &specStake }
func (StakeExtended) roleSpec() *roleSpec           { return &specStakeExtended }
func (Genesis) roleSpec() *roleSpec                 { return &specGenesis }
func (GenesisExtended) roleSpec() *roleSpec         { return &specGenesisExtended }
func (GenesisDelegate) roleSpec() *roleSpec         { return &specGenesisDelegate }
func (GenesisDelegateExtended) roleSpec() *roleSpec { return &specGenesisDelegateExtended }
func (GenesisUTxO) roleSpec() *roleSpec             { return &specGenesisUTxO }
func (StakePool) roleSpec() *roleSpec               { return &specStakePool }
func (StakePoolExtended) roleSpec() *roleSpec       { return &specStakePoolExtended }
func (CommitteeHot) roleSpec() *roleSpec            { return &specCommitteeHot }
func (CommitteeHotExtended) roleSpec() *roleSpec    { return &specCommitteeHotExtended }
func (CommitteeCold) roleSpec() *roleSpec           { return &specCommitteeCold }
func (CommitteeColdExtended) roleSpec() *roleSpec   { return &specCommitteeColdExtended }
func (DRep) roleSpec() *roleSpec                    { return &specDRep }
func (DRepExtended) roleSpec() *roleSpec            { return &specDRepExtended }

func specFor[R Role]() *roleSpec {
	var r R
	return r.roleSpec()
}

// RoleName returns the registry name of R (e.g. "Payment", "StakePoolExtended").
func RoleName[R Role]() string {
	return specFor[R]().name
}

// RoleAlgorithm returns the signature scheme backing R.
func RoleAlgorithm[R Role]() Algorithm {
	return specFor[R]().algorithm
}

// Serialized widths per scheme.
const (
	plainVerificationKeySize = circled25519.PublicKeySize
	plainSigningKeySize      = circled25519.SeedSize
	extendedVKeySize         = bip32ed25519.XPubSize
	extendedSKeySize         = bip32ed25519.XPrvSize
)

func (s *roleSpec) verificationKeySize() int {
	if s.algorithm == AlgorithmEd25519BIP32 {
		return extendedVKeySize
	}
	return plainVerificationKeySize
}

func (s *roleSpec) signingKeySize() int {
	if s.algorithm == AlgorithmEd25519BIP32 {
		return extendedSKeySize
	}
	return plainSigningKeySize
}

// seedSize is 32 for both schemes: the plain scheme's nominal seed size, and a
// fixed 32 bytes for extended roles regardless of the scheme convention.
func (s *roleSpec) seedSize() int {
	if s.algorithm == AlgorithmEd25519BIP32 {
		return bip32ed25519.SeedSize
	}
	return circled25519.SeedSize
}

func (s *roleSpec) verificationKeyLabel() string { return s.name + "VerificationKey" }
func (s *roleSpec) signingKeyLabel() string      { return s.name + "SigningKey" }
func (s *roleSpec) hashLabel() string            { return s.name + "KeyHash" }

func (s *roleSpec) envelopeType(kind string) string {
	return s.envelopeBase + kind + "Key" + s.envelopeEra + "_" + s.algorithm.String()
}

// VerificationKeyEnvelopeType returns the text-envelope type tag for
// verification keys of R, e.g. "PaymentVerificationKeyShelley_ed25519".
func VerificationKeyEnvelopeType[R Role]() string {
	return specFor[R]().envelopeType("Verification")
}

// SigningKeyEnvelopeType returns the text-envelope type tag for signing keys
// of R, e.g. "StakePoolExtendedSigningKey_ed25519_bip32".
func SigningKeyEnvelopeType[R Role]() string {
	return specFor[R]().envelopeType("Signing")
}
