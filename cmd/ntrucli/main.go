package main

import (
	"bytes"
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	measure "ntrumls-signature/measure"
	ntru "ntrumls-signature/ntru"
	ntrurio "ntrumls-signature/ntru/io"
	"ntrumls-signature/ntru/keys"
	"ntrumls-signature/ntru/signverify"
	"ntrumls-signature/prof"
)

func usage() {
	fmt.Println(`usage: ntru <gen|sign|verify|params> [options]

Subcommands:
  gen      Generate a key pair and write <dir>/{public,private}.json
           Flags:
             -config <path>    configuration file (default: Parameters/Parameters.json)
             -set    <name>    parameter set name or hex OID (overrides the config)
             -dir    <path>    key directory (default: config key_dir)
             -seed   <hex>     32-byte hex entropy for a reproducible key
             -v                debug logging

  sign     Sign a message and write <dir>/signature.json
           Flags:
             -m      <string>  message to sign (required)
             -max    <int>     max rejection attempts (default: config max_sign_attempts)
             -hedged           mix fresh randomness into the blinding seed
             -v                debug logging
           Output (stdout):
             attempts, rejected (true if attempts > 1), max_attempts, norms

  verify   Verify <dir>/signature.json against <dir>/public.json

  params   List the supported parameter sets`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	prof.Enabled = true
	switch os.Args[1] {
	case "gen":
		runGen(os.Args[2:])
	case "sign":
		runSign(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	case "params":
		runParams()
	default:
		usage()
	}
}

// loadConfig resolves the configuration; an explicit -set overrides the
// file, so N/Q disagreements are tolerated in that case.
func loadConfig(path, set string) ntrurio.SystemParams {
	sys, err := ntrurio.LoadParamsSearch(path, set != "")
	if err != nil {
		log.Fatalf("load params: %v", err)
	}
	if set != "" {
		ps, err := ntru.ParamsByName(set)
		if err != nil {
			log.Fatalf("params: %v", err)
		}
		sys.Set = ps
	}
	return sys
}

func keyDir(flagDir string, sys ntrurio.SystemParams) string {
	if flagDir != "" {
		return flagDir
	}
	if sys.KeyDir != "" {
		return sys.KeyDir
	}
	return keys.DefaultDir
}

func runGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	cfg := fs.String("config", ntrurio.DefaultPath, "configuration file")
	set := fs.String("set", "", "parameter set name or hex OID")
	dir := fs.String("dir", "", "key directory")
	seed := fs.String("seed", "", "32-byte hex entropy")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Parse(args)
	ntru.SetDebug(*verbose)

	sys := loadConfig(*cfg, *set)
	entropy, err := signverify.DecodeSeedHex(*seed)
	if err != nil {
		log.Fatalf("gen: %v", err)
	}
	var rng io.Reader
	if entropy != nil {
		if len(entropy) != 32 {
			log.Fatalf("gen: -seed must be 32 bytes, got %d", len(entropy))
		}
		rng = bytes.NewReader(entropy)
	}
	out := keyDir(*dir, sys)
	_, priv, err := signverify.GenerateAndSave(sys, out, rng, *seed)
	if err != nil {
		log.Fatalf("gen: %v", err)
	}
	fmt.Printf("gen: %s keys written to %s (trials_used=%d)\n", sys.Set.Name, out, priv.Policy.TrialsUsed)
	report()
}

func runSign(args []string) {
	fs := flag.NewFlagSet("sign", flag.ExitOnError)
	cfg := fs.String("config", ntrurio.DefaultPath, "configuration file")
	dir := fs.String("dir", "", "key directory")
	msg := fs.String("m", "", "message string")
	max := fs.Int("max", 0, "max rejection attempts")
	hedged := fs.Bool("hedged", false, "hedged signing")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Parse(args)
	ntru.SetDebug(*verbose)
	if *msg == "" {
		log.Fatalf("sign: -m is required")
	}

	sys := loadConfig(*cfg, "")
	opts := ntru.SignOpts{MaxAttempts: sys.MaxSignAttempts}
	if *max > 0 {
		opts.MaxAttempts = *max
	}
	if *hedged {
		opts.Rand = rand.Reader
	}
	sig, err := signverify.SignAndSave(keyDir(*dir, sys), []byte(*msg), opts)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	fmt.Printf("sign: attempts=%d rejected=%v max_attempts=%d\n", sig.TrialsUsed, sig.Rejected, sig.MaxTrials)
	fmt.Printf("sign: ||s||=%d/%d ||t||=%d/%d\n", sig.Norm.SInf, sig.Norm.BoundS, sig.Norm.TInf, sig.Norm.BoundT)
	fmt.Printf("signature written to %s\n", keyDir(*dir, sys))
	report()
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	cfg := fs.String("config", ntrurio.DefaultPath, "configuration file")
	dir := fs.String("dir", "", "key directory")
	fs.Parse(args)

	sys := loadConfig(*cfg, "")
	ok, err := signverify.VerifySaved(keyDir(*dir, sys))
	if err != nil {
		log.Fatalf("verify: %v", err)
	}
	if !ok {
		fmt.Println("signature rejected")
		os.Exit(2)
	}
	fmt.Println("signature verified")
	report()
}

func runParams() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "name\toid\tN\tq\tpk\tsk\tsig")
	for _, ps := range ntru.AllParams() {
		fmt.Fprintf(w, "%s\t%s\t%d\t2^%d\t%d\t%d\t%d\n",
			ps.Name, ps.OIDString(), ps.N, ps.QBits,
			ps.PublicKeySize(), ps.PrivateKeySize(), ps.SignatureSize())
	}
	w.Flush()
}

// report prints timings, and byte counters when MEASURE_SIZES=1.
func report() {
	for _, st := range prof.Summarize(prof.SnapshotAndReset()) {
		fmt.Printf("  %-8s n=%d mean=%s max=%s\n", st.Label, st.Count, st.Mean(), st.Max)
	}
	if measure.Enabled {
		measure.Global.Dump(os.Stdout)
	}
}
