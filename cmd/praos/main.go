package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/praostools/praos/envelope"
	"github.com/praostools/praos/keys"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "key":
		return cmdKey(args[1:], out, errOut)
	case "opcert":
		return cmdOpcert(args[1:], out, errOut)
	case "doc-cid":
		return cmdDocCID(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "praos: typed key and operational certificate CLI")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  praos key gen --role <role> --name <name> [--seed-hex <hex>] [--dir <dir>] [--force]")
	fmt.Fprintln(w, "  praos key verification-key --role <role> --name <name> [--dir <dir>] [--force]")
	fmt.Fprintln(w, "  praos key hash --role <role> --name <name> [--dir <dir>]")
	fmt.Fprintln(w, "  praos key list [--dir <dir>]")
	fmt.Fprintln(w, "  praos opcert kes-vkey (--hex <64hex> | --bech32 <kes_vk..>) --out-file <file>")
	fmt.Fprintln(w, "  praos opcert new-counter --cold-verification-key-file <file> --count <n> --out-file <file>")
	fmt.Fprintln(w, "  praos opcert issue --kes-verification-key-file <file> --cold-signing-key-file <file>")
	fmt.Fprintln(w, "                     --counter-file <file> --kes-period <n> --out-file <file>")
	fmt.Fprintln(w, "  praos doc-cid <file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - key files live under ~/.praos/keys (<name>.vkey / <name>.skey, 0600)")
	fmt.Fprintln(w, "  - --seed-hex length depends on the role: 32 bytes for ed25519 roles,")
	fmt.Fprintln(w, "    32 bytes of entropy for ed25519_bip32 roles")
	fmt.Fprintln(w, "  - roles: "+strings.Join(roleNames(), ", "))
	fmt.Fprintln(w, "  - opcert issue accepts stake-pool, stake-pool-extended or")
	fmt.Fprintln(w, "    genesis-delegate-extended cold signing keys")
}

// roleCommands binds the generic key operations for one role behind plain
// function values so the CLI can dispatch on a role string.
type roleCommands struct {
	generate        func(seedHex string) (skey, vkey envelope.Envelope, err error)
	verificationKey func(skey envelope.Envelope) (envelope.Envelope, error)
	hash            func(vkey envelope.Envelope) (string, error)
}

func commandsFor[R keys.Role](skeyDesc, vkeyDesc string) roleCommands {
	vkeyEnvelope := func(sk keys.SigningKey[R]) (envelope.Envelope, error) {
		cborData, err := sk.VerificationKey().MarshalCBOR()
		if err != nil {
			return envelope.Envelope{}, err
		}
		return envelope.New(keys.VerificationKeyEnvelopeType[R](), vkeyDesc, cborData), nil
	}
	return roleCommands{
		generate: func(seedHex string) (envelope.Envelope, envelope.Envelope, error) {
			var sk keys.SigningKey[R]
			var err error
			if seedHex != "" {
				seed, derr := hex.DecodeString(seedHex)
				if derr != nil {
					return envelope.Envelope{}, envelope.Envelope{}, fmt.Errorf("seed is not valid hex: %w", derr)
				}
				sk, err = keys.DeterministicSigningKey[R](seed)
			} else {
				sk, err = keys.GenerateSigningKey[R](rand.Reader)
			}
			if err != nil {
				return envelope.Envelope{}, envelope.Envelope{}, err
			}
			skCBOR, err := sk.MarshalCBOR()
			if err != nil {
				return envelope.Envelope{}, envelope.Envelope{}, err
			}
			vkeyEnv, err := vkeyEnvelope(sk)
			if err != nil {
				return envelope.Envelope{}, envelope.Envelope{}, err
			}
			return envelope.New(keys.SigningKeyEnvelopeType[R](), skeyDesc, skCBOR), vkeyEnv, nil
		},
		verificationKey: func(skeyEnv envelope.Envelope) (envelope.Envelope, error) {
			if want := keys.SigningKeyEnvelopeType[R](); skeyEnv.Type != want {
				return envelope.Envelope{}, fmt.Errorf("expected envelope type %q, got %q", want, skeyEnv.Type)
			}
			raw, err := skeyEnv.CBORBytes()
			if err != nil {
				return envelope.Envelope{}, err
			}
			var sk keys.SigningKey[R]
			if err := sk.UnmarshalCBOR(raw); err != nil {
				return envelope.Envelope{}, err
			}
			return vkeyEnvelope(sk)
		},
		hash: func(vkeyEnv envelope.Envelope) (string, error) {
			if want := keys.VerificationKeyEnvelopeType[R](); vkeyEnv.Type != want {
				return "", fmt.Errorf("expected envelope type %q, got %q", want, vkeyEnv.Type)
			}
			raw, err := vkeyEnv.CBORBytes()
			if err != nil {
				return "", err
			}
			var vk keys.VerificationKey[R]
			if err := vk.UnmarshalCBOR(raw); err != nil {
				return "", err
			}
			return vk.Hash().String(), nil
		},
	}
}

var roleRegistry = map[string]roleCommands{
	"payment":                   commandsFor[keys.Payment]("Payment Signing Key", "Payment Verification Key"),
	"payment-extended":          commandsFor[keys.PaymentExtended]("Payment Signing Key", "Payment Verification Key"),
	"stake":                     commandsFor[keys.Stake]("Stake Signing Key", "Stake Verification Key"),
	"stake-extended":            commandsFor[keys.StakeExtended]("Stake Signing Key", "Stake Verification Key"),
	"genesis":                   commandsFor[keys.Genesis]("Genesis Signing Key", "Genesis Verification Key"),
	"genesis-extended":          commandsFor[keys.GenesisExtended]("Genesis Signing Key", "Genesis Verification Key"),
	"genesis-delegate":          commandsFor[keys.GenesisDelegate]("Genesis delegate operator key", "Genesis delegate operator key"),
	"genesis-delegate-extended": commandsFor[keys.GenesisDelegateExtended]("Genesis delegate operator key", "Genesis delegate operator key"),
	"genesis-utxo":              commandsFor[keys.GenesisUTxO]("Genesis initial UTxO Signing Key", "Genesis initial UTxO Verification Key"),
	"stake-pool":                commandsFor[keys.StakePool]("Stake Pool Operator Signing Key", "Stake Pool Operator Verification Key"),
	"stake-pool-extended":       commandsFor[keys.StakePoolExtended]("Stake Pool Operator Signing Key", "Stake Pool Operator Verification Key"),
	"committee-hot":             commandsFor[keys.CommitteeHot]("Constitutional Committee Hot Signing Key", "Constitutional Committee Hot Verification Key"),
	"committee-hot-extended":    commandsFor[keys.CommitteeHotExtended]("Constitutional Committee Hot Signing Key", "Constitutional Committee Hot Verification Key"),
	"committee-cold":            commandsFor[keys.CommitteeCold]("Constitutional Committee Cold Signing Key", "Constitutional Committee Cold Verification Key"),
	"committee-cold-extended":   commandsFor[keys.CommitteeColdExtended]("Constitutional Committee Cold Signing Key", "Constitutional Committee Cold Verification Key"),
	"drep":                      commandsFor[keys.DRep]("Delegated Representative Signing Key", "Delegated Representative Verification Key"),
	"drep-extended":             commandsFor[keys.DRepExtended]("Delegated Representative Signing Key", "Delegated Representative Verification Key"),
}

func roleNames() []string {
	names := make([]string, 0, len(roleRegistry))
	for name := range roleRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupRole(role string, errOut io.Writer) (roleCommands, bool) {
	cmds, ok := roleRegistry[role]
	if !ok {
		fmt.Fprintf(errOut, "unknown --role %q\n", role)
		fmt.Fprintln(errOut, "roles: "+strings.Join(roleNames(), ", "))
	}
	return cmds, ok
}
