// Package keys implements the typed key-role system: seventeen key roles
// (payment, stake, genesis, genesis-delegate, genesis-UTxO, stake-pool,
// committee hot/cold and DRep, each in plain and extended variants) with
// deterministic derivation, verification-key hashing and the raw, hex,
// bech32, CBOR and text-envelope encodings each role declares.
//
// Role tags are type-level: a VerificationKey[Payment] cannot be confused
// with a VerificationKey[Stake] at compile time. The per-role behavior lives
// in one registry table; every operation is generic over the role tag.
//
// Cross-role conversion goes through CastVerificationKey/CastSigningKey,
// which implement a fixed directed graph of relabel and extended-to-plain
// edges. Casts never alter key bytes.
package keys
