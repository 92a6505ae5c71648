// Command ntru_sign is a one-shot signer: it loads (or generates) a key
// pair, signs a message and writes the raw pk.bin and sig.bin blobs.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	ntru "ntrumls-signature/ntru"
	ntrurio "ntrumls-signature/ntru/io"
	"ntrumls-signature/ntru/signverify"
)

func main() {
	msgPath := flag.String("msg", "", "message file path or hex (if starts with 0x)")
	keyDir := flag.String("keys", "", "load keys from this directory instead of generating")
	set := flag.String("set", "", "parameter set for fresh keys (default: config)")
	outdir := flag.String("outdir", "./NTRU_Signature", "output directory")
	trials := flag.Int("trials", 0, "max signing attempts (default: config)")
	flag.Parse()

	if *msgPath == "" {
		log.Fatal("-msg required")
	}
	msg, err := readMessage(*msgPath)
	if err != nil {
		log.Fatal(err)
	}

	var privBlob, pubBlob []byte
	if *keyDir != "" {
		privBlob, pubBlob, err = signverify.LoadBlobs(*keyDir)
	} else {
		ps := ntru.Preset20151024_743()
		sys, errCfg := ntrurio.LoadParamsSearch(ntrurio.DefaultPath, true)
		if errCfg == nil {
			ps = sys.Set
			if *trials == 0 {
				*trials = sys.MaxSignAttempts
			}
		}
		if *set != "" {
			if ps, err = ntru.ParamsByName(*set); err != nil {
				log.Fatal(err)
			}
		}
		privBlob, pubBlob, err = signverify.GenerateKeys(ps)
	}
	if err != nil {
		log.Fatal(err)
	}

	sigBlob, used, err := signverify.SignWithOpts(privBlob, pubBlob, msg, ntru.SignOpts{MaxAttempts: *trials})
	if err != nil {
		log.Fatal(err)
	}
	if !signverify.Verify(sigBlob, pubBlob, msg) {
		log.Fatal("fresh signature failed to verify")
	}
	if err := os.MkdirAll(*outdir, 0o755); err != nil {
		log.Fatal(err)
	}
	pkPath := filepath.Join(*outdir, "pk.bin")
	sigPath := filepath.Join(*outdir, "sig.bin")
	if err := os.WriteFile(pkPath, pubBlob, 0o644); err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(sigPath, sigBlob, 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("attempts=%d\n%s\n%s\n", used, pkPath, sigPath)
}

func readMessage(arg string) ([]byte, error) {
	if strings.HasPrefix(arg, "0x") {
		b, err := hex.DecodeString(arg[2:])
		if err != nil {
			return nil, fmt.Errorf("message hex: %w", err)
		}
		return b, nil
	}
	return os.ReadFile(arg)
}
