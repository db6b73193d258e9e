package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/praostools/praos/cidutil"
	"github.com/praostools/praos/envelope"
	"github.com/praostools/praos/keystore"
)

func cmdKey(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printKeyUsage(errOut)
		return 2
	}
	switch args[0] {
	case "gen":
		return cmdKeyGen(args[1:], out, errOut)
	case "verification-key":
		return cmdKeyVerificationKey(args[1:], out, errOut)
	case "hash":
		return cmdKeyHash(args[1:], out, errOut)
	case "list":
		return cmdKeyList(args[1:], out, errOut)
	case "help", "-h", "--help":
		printKeyUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown key subcommand: %s\n\n", args[0])
		printKeyUsage(errOut)
		return 2
	}
}

func printKeyUsage(w io.Writer) {
	fmt.Fprintln(w, "praos key: local key management")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  praos key gen --role <role> --name <name> [--seed-hex <hex>] [--dir <dir>] [--force]")
	fmt.Fprintln(w, "  praos key verification-key --role <role> --name <name> [--dir <dir>] [--force]")
	fmt.Fprintln(w, "  praos key hash --role <role> --name <name> [--dir <dir>]")
	fmt.Fprintln(w, "  praos key list [--dir <dir>]")
}

func openStore(dir string, errOut io.Writer) (*keystore.Store, bool) {
	store, err := keystore.Open(dir)
	if err != nil {
		fmt.Fprintf(errOut, "keystore: %v\n", err)
		return nil, false
	}
	return store, true
}

func storeEnvelope(store *keystore.Store, name string, env envelope.Envelope, force bool, out, errOut io.Writer) bool {
	path, err := store.WriteEnvelope(name, env, force)
	if err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", name, err)
		return false
	}
	data, err := env.Encode()
	if err != nil {
		fmt.Fprintf(errOut, "encode %s: %v\n", name, err)
		return false
	}
	fmt.Fprintf(out, "Stored: %s (cid %s)\n", path, cidutil.ArtifactCID(data))
	return true
}

func cmdKeyGen(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key gen", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var role string
	var name string
	var seedHex string
	var dir string
	var force bool

	fs.StringVar(&role, "role", "", "Key role")
	fs.StringVar(&name, "name", "", "Key name (files <name>.vkey and <name>.skey)")
	fs.StringVar(&seedHex, "seed-hex", "", "Optional deterministic seed as hex (for reproducible demos)")
	fs.StringVar(&dir, "dir", "", "Key directory (default ~/.praos/keys)")
	fs.BoolVar(&force, "force", false, "Overwrite existing key files")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if role == "" {
		fmt.Fprintln(errOut, "missing --role")
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	cmds, ok := lookupRole(role, errOut)
	if !ok {
		return 2
	}
	if err := keystore.CheckName(name); err != nil {
		fmt.Fprintf(errOut, "invalid --name: %v\n", err)
		return 2
	}
	store, ok := openStore(dir, errOut)
	if !ok {
		return 1
	}

	skeyEnv, vkeyEnv, err := cmds.generate(seedHex)
	if err != nil {
		fmt.Fprintf(errOut, "generate key: %v\n", err)
		return 1
	}
	if !storeEnvelope(store, name+".skey", skeyEnv, force, out, errOut) {
		return 1
	}
	if !storeEnvelope(store, name+".vkey", vkeyEnv, force, out, errOut) {
		return 1
	}
	return 0
}

func cmdKeyVerificationKey(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key verification-key", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var role string
	var name string
	var dir string
	var force bool

	fs.StringVar(&role, "role", "", "Key role")
	fs.StringVar(&name, "name", "", "Key name (reads <name>.skey, writes <name>.vkey)")
	fs.StringVar(&dir, "dir", "", "Key directory (default ~/.praos/keys)")
	fs.BoolVar(&force, "force", false, "Overwrite an existing verification key file")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if role == "" {
		fmt.Fprintln(errOut, "missing --role")
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	cmds, ok := lookupRole(role, errOut)
	if !ok {
		return 2
	}
	store, ok := openStore(dir, errOut)
	if !ok {
		return 1
	}

	skeyEnv, err := store.ReadEnvelope(name + ".skey")
	if err != nil {
		fmt.Fprintf(errOut, "read %s.skey: %v\n", name, err)
		return 1
	}
	vkeyEnv, err := cmds.verificationKey(skeyEnv)
	if err != nil {
		fmt.Fprintf(errOut, "derive verification key: %v\n", err)
		return 1
	}
	if !storeEnvelope(store, name+".vkey", vkeyEnv, force, out, errOut) {
		return 1
	}
	return 0
}

func cmdKeyHash(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key hash", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var role string
	var name string
	var dir string

	fs.StringVar(&role, "role", "", "Key role")
	fs.StringVar(&name, "name", "", "Key name (reads <name>.vkey)")
	fs.StringVar(&dir, "dir", "", "Key directory (default ~/.praos/keys)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if role == "" {
		fmt.Fprintln(errOut, "missing --role")
		return 2
	}
	if name == "" {
		fmt.Fprintln(errOut, "missing --name")
		return 2
	}
	cmds, ok := lookupRole(role, errOut)
	if !ok {
		return 2
	}
	store, ok := openStore(dir, errOut)
	if !ok {
		return 1
	}

	vkeyEnv, err := store.ReadEnvelope(name + ".vkey")
	if err != nil {
		fmt.Fprintf(errOut, "read %s.vkey: %v\n", name, err)
		return 1
	}
	hash, err := cmds.hash(vkeyEnv)
	if err != nil {
		fmt.Fprintf(errOut, "hash verification key: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(out, hash)
	return 0
}

func cmdKeyList(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("key list", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var dir string
	fs.StringVar(&dir, "dir", "", "Key directory (default ~/.praos/keys)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	store, ok := openStore(dir, errOut)
	if !ok {
		return 1
	}
	names, err := store.List()
	if err != nil {
		fmt.Fprintf(errOut, "list keys: %v\n", err)
		return 1
	}
	for _, name := range names {
		env, err := store.ReadEnvelope(name)
		if err != nil {
			fmt.Fprintf(errOut, "read %s: %v\n", name, err)
			return 1
		}
		fmt.Fprintf(out, "%s\t%s\n", name, env.Type)
	}
	return 0
}
