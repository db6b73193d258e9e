// Command vectorgen prints deterministic derivation vectors for the typed
// key families. The output is stable across runs and platforms, so it can be
// diffed against other implementations of the same derivation scheme.
package main

import (
	"encoding/hex"
	"fmt"

	"github.com/praostools/praos/keys"
	"github.com/praostools/praos/opcert"
)

func mustSigningKey[R keys.Role](seedByte byte) keys.SigningKey[R] {
	seed := make([]byte, keys.DeterministicSigningKeySeedSize[R]())
	for i := range seed {
		seed[i] = seedByte
	}
	sk, err := keys.DeterministicSigningKey[R](seed)
	if err != nil {
		panic(err)
	}
	return sk
}

func printVector[R keys.Role](seedByte byte) {
	sk := mustSigningKey[R](seedByte)
	vk := sk.VerificationKey()
	fmt.Printf("role=%s seed=%02x\n", keys.RoleName[R](), seedByte)
	fmt.Printf("  vkey-hex=%s\n", vk.Hex())
	if bech, err := vk.Bech32(); err == nil {
		fmt.Printf("  vkey-bech32=%s\n", bech)
	}
	fmt.Printf("  hash=%s\n", vk.Hash().String())
}

func main() {
	printVector[keys.Payment](0xA1)
	printVector[keys.PaymentExtended](0xA1)
	printVector[keys.Stake](0xA2)
	printVector[keys.StakeExtended](0xA2)
	printVector[keys.Genesis](0xA3)
	printVector[keys.GenesisExtended](0xA3)
	printVector[keys.GenesisDelegate](0xA4)
	printVector[keys.GenesisDelegateExtended](0xA4)
	printVector[keys.GenesisUTxO](0xA5)
	printVector[keys.StakePool](0xA6)
	printVector[keys.StakePoolExtended](0xA6)
	printVector[keys.CommitteeHot](0xA7)
	printVector[keys.CommitteeHotExtended](0xA7)
	printVector[keys.CommitteeCold](0xA8)
	printVector[keys.CommitteeColdExtended](0xA8)
	printVector[keys.DRep](0xA9)
	printVector[keys.DRepExtended](0xA9)

	poolKey := mustSigningKey[keys.StakePool](0xB1)
	var kesVKey opcert.KesVerificationKey
	for i := range kesVKey {
		kesVKey[i] = 0xB2
	}
	cert, next, err := opcert.Issue(kesVKey, opcert.ColdStakePoolKey(poolKey), 42, opcert.NewIssueCounter(7, poolKey.VerificationKey()))
	if err != nil {
		panic(err)
	}
	certCBOR, err := cert.MarshalCBOR()
	if err != nil {
		panic(err)
	}
	fmt.Printf("opcert issue-number=%d next=%d\n", cert.IssueNumber(), next.Count())
	fmt.Printf("  cbor=%s\n", hex.EncodeToString(certCBOR))
}
