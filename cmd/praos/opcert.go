package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/praostools/praos/cidutil"
	"github.com/praostools/praos/envelope"
	"github.com/praostools/praos/keys"
	"github.com/praostools/praos/opcert"
)

func cmdOpcert(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printOpcertUsage(errOut)
		return 2
	}
	switch args[0] {
	case "kes-vkey":
		return cmdOpcertKesVKey(args[1:], out, errOut)
	case "new-counter":
		return cmdOpcertNewCounter(args[1:], out, errOut)
	case "issue":
		return cmdOpcertIssue(args[1:], out, errOut)
	case "help", "-h", "--help":
		printOpcertUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown opcert subcommand: %s\n\n", args[0])
		printOpcertUsage(errOut)
		return 2
	}
}

func printOpcertUsage(w io.Writer) {
	fmt.Fprintln(w, "praos opcert: operational certificate issuance")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  praos opcert kes-vkey (--hex <64hex> | --bech32 <kes_vk..>) --out-file <file>")
	fmt.Fprintln(w, "  praos opcert new-counter --cold-verification-key-file <file> --count <n> --out-file <file>")
	fmt.Fprintln(w, "  praos opcert issue --kes-verification-key-file <file> --cold-signing-key-file <file>")
	fmt.Fprintln(w, "                     --counter-file <file> --kes-period <n> --out-file <file>")
}

func writeArtifact(path string, env envelope.Envelope, out, errOut io.Writer) int {
	data, err := env.Encode()
	if err != nil {
		fmt.Fprintf(errOut, "encode %s: %v\n", filepath.Base(path), err)
		return 1
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", path, err)
		return 1
	}
	fmt.Fprintf(out, "Wrote: %s (cid %s)\n", path, cidutil.ArtifactCID(data))
	return 0
}

func cmdOpcertKesVKey(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("opcert kes-vkey", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var hexStr string
	var bech32Str string
	var outFile string

	fs.StringVar(&hexStr, "hex", "", "KES verification key as 64 hex chars")
	fs.StringVar(&bech32Str, "bech32", "", "KES verification key as bech32 (kes_vk prefix)")
	fs.StringVar(&outFile, "out-file", "", "Output envelope file")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if outFile == "" {
		fmt.Fprintln(errOut, "missing --out-file")
		return 2
	}
	if (hexStr == "") == (bech32Str == "") {
		fmt.Fprintln(errOut, "provide exactly one of --hex or --bech32")
		return 2
	}

	var kesVKey opcert.KesVerificationKey
	if hexStr != "" {
		raw, err := hex.DecodeString(hexStr)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --hex: %v\n", err)
			return 2
		}
		kesVKey, err = opcert.KesVerificationKeyFromRawBytes(raw)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --hex: %v\n", err)
			return 2
		}
	} else {
		var err error
		kesVKey, err = opcert.KesVerificationKeyFromBech32(bech32Str)
		if err != nil {
			fmt.Fprintf(errOut, "invalid --bech32: %v\n", err)
			return 2
		}
	}

	cborData, err := kesVKey.MarshalCBOR()
	if err != nil {
		fmt.Fprintf(errOut, "encode KES key: %v\n", err)
		return 1
	}
	env := envelope.New(opcert.KesVKeyEnvelopeType, "KES Verification Key", cborData)
	return writeArtifact(outFile, env, out, errOut)
}

func cmdOpcertNewCounter(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("opcert new-counter", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var coldVKeyFile string
	var count uint64
	var outFile string

	fs.StringVar(&coldVKeyFile, "cold-verification-key-file", "", "Stake pool cold verification key envelope")
	fs.Uint64Var(&count, "count", 0, "Next certificate issue number")
	fs.StringVar(&outFile, "out-file", "", "Output counter envelope file")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if coldVKeyFile == "" {
		fmt.Fprintln(errOut, "missing --cold-verification-key-file")
		return 2
	}
	if outFile == "" {
		fmt.Fprintln(errOut, "missing --out-file")
		return 2
	}

	poolVKey, err := readPoolVerificationKey(coldVKeyFile)
	if err != nil {
		fmt.Fprintf(errOut, "read cold verification key: %v\n", err)
		return 1
	}
	env, err := opcert.NewIssueCounter(count, poolVKey).ToEnvelope()
	if err != nil {
		fmt.Fprintf(errOut, "encode counter: %v\n", err)
		return 1
	}
	return writeArtifact(outFile, env, out, errOut)
}

func cmdOpcertIssue(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("opcert issue", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var kesVKeyFile string
	var coldSKeyFile string
	var counterFile string
	var kesPeriod uint64
	var outFile string

	fs.StringVar(&kesVKeyFile, "kes-verification-key-file", "", "KES verification key envelope")
	fs.StringVar(&coldSKeyFile, "cold-signing-key-file", "", "Cold signing key envelope")
	fs.StringVar(&counterFile, "counter-file", "", "Issue counter envelope")
	fs.Uint64Var(&kesPeriod, "kes-period", 0, "KES evolution period of the hot key")
	fs.StringVar(&outFile, "out-file", "", "Output certificate envelope file")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if kesVKeyFile == "" || coldSKeyFile == "" || counterFile == "" || outFile == "" {
		fmt.Fprintln(errOut, "missing required flag (see 'praos opcert help')")
		return 2
	}

	kesVKey, err := readKesVerificationKey(kesVKeyFile)
	if err != nil {
		fmt.Fprintf(errOut, "read KES verification key: %v\n", err)
		return 1
	}
	cold, err := readColdCredential(coldSKeyFile)
	if err != nil {
		fmt.Fprintf(errOut, "read cold signing key: %v\n", err)
		return 1
	}
	counterData, err := os.ReadFile(counterFile)
	if err != nil {
		fmt.Fprintf(errOut, "read counter: %v\n", err)
		return 1
	}
	counter, err := opcert.IssueCounterFromEnvelope(counterData)
	if err != nil {
		fmt.Fprintf(errOut, "read counter: %v\n", err)
		return 1
	}

	cert, nextCounter, err := opcert.Issue(kesVKey, cold, kesPeriod, counter)
	if err != nil {
		fmt.Fprintf(errOut, "issue: %v\n", err)
		return 1
	}

	certEnv, err := cert.ToEnvelope()
	if err != nil {
		fmt.Fprintf(errOut, "encode certificate: %v\n", err)
		return 1
	}
	if status := writeArtifact(outFile, certEnv, out, errOut); status != 0 {
		return status
	}

	counterEnv, err := nextCounter.ToEnvelope()
	if err != nil {
		fmt.Fprintf(errOut, "encode counter: %v\n", err)
		return 1
	}
	counterData, err = counterEnv.Encode()
	if err != nil {
		fmt.Fprintf(errOut, "encode counter: %v\n", err)
		return 1
	}
	if err := os.WriteFile(counterFile, counterData, 0o600); err != nil {
		fmt.Fprintf(errOut, "write counter: %v\n", err)
		return 1
	}
	fmt.Fprintf(out, "Next issue number: %d\n", nextCounter.Count())
	return 0
}

func readKesVerificationKey(path string) (opcert.KesVerificationKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return opcert.KesVerificationKey{}, err
	}
	raw, err := envelope.Decode(data, opcert.KesVKeyEnvelopeType)
	if err != nil {
		return opcert.KesVerificationKey{}, err
	}
	var kesVKey opcert.KesVerificationKey
	if err := kesVKey.UnmarshalCBOR(raw); err != nil {
		return opcert.KesVerificationKey{}, err
	}
	return kesVKey, nil
}

func readPoolVerificationKey(path string) (keys.VerificationKey[keys.StakePool], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return keys.VerificationKey[keys.StakePool]{}, err
	}
	raw, err := envelope.Decode(data, keys.VerificationKeyEnvelopeType[keys.StakePool]())
	if err != nil {
		return keys.VerificationKey[keys.StakePool]{}, err
	}
	var vk keys.VerificationKey[keys.StakePool]
	if err := vk.UnmarshalCBOR(raw); err != nil {
		return keys.VerificationKey[keys.StakePool]{}, err
	}
	return vk, nil
}

// readColdCredential dispatches on the envelope type tag to the cold key
// families that may issue certificates.
func readColdCredential(path string) (opcert.ColdCredential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	env, err := envelope.Parse(data)
	if err != nil {
		return nil, err
	}
	raw, err := env.CBORBytes()
	if err != nil {
		return nil, err
	}

	switch env.Type {
	case keys.SigningKeyEnvelopeType[keys.StakePool]():
		var sk keys.SigningKey[keys.StakePool]
		if err := sk.UnmarshalCBOR(raw); err != nil {
			return nil, err
		}
		return opcert.ColdStakePoolKey(sk), nil
	case keys.SigningKeyEnvelopeType[keys.StakePoolExtended]():
		var sk keys.SigningKey[keys.StakePoolExtended]
		if err := sk.UnmarshalCBOR(raw); err != nil {
			return nil, err
		}
		return opcert.ColdStakePoolExtendedKey(sk), nil
	case keys.SigningKeyEnvelopeType[keys.GenesisDelegateExtended]():
		var sk keys.SigningKey[keys.GenesisDelegateExtended]
		if err := sk.UnmarshalCBOR(raw); err != nil {
			return nil, err
		}
		return opcert.ColdGenesisDelegateExtendedKey(sk), nil
	default:
		return nil, fmt.Errorf("envelope type %q cannot issue operational certificates", env.Type)
	}
}

func cmdDocCID(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("doc-cid", flag.ContinueOnError)
	fs.SetOutput(errOut)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: praos doc-cid <file>")
		return 2
	}
	path := fs.Arg(0)
	b, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", filepath.Base(path), err)
		return 1
	}
	_, _ = fmt.Fprintln(out, cidutil.ArtifactCID(b))
	return 0
}
