// Command keycheck audits the persisted key pair and signature: it checks
// that h matches the secret, that both secrets are invertible, and reports
// the signature norms against their bounds.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	ntru "ntrumls-signature/ntru"
	"ntrumls-signature/ntru/keys"
	"ntrumls-signature/ntru/signverify"
)

func main() {
	dir := flag.String("dir", keys.DefaultDir, "key directory")
	flag.Parse()

	privBlob, pubBlob, err := signverify.LoadBlobs(*dir)
	if err != nil {
		log.Fatalf("load keys: %v", err)
	}
	sk, err := ntru.ParsePrivateKey(privBlob)
	if err != nil {
		log.Fatalf("parse private: %v", err)
	}
	pk, err := ntru.ParsePublicKey(pubBlob)
	if err != nil {
		sk.Destroy()
		log.Fatalf("parse public: %v", err)
	}
	failed, err := audit(*dir, sk, pk)
	// os.Exit and log.Fatalf skip deferred calls
	sk.Destroy()
	if err != nil {
		log.Fatalf("keycheck: %v", err)
	}
	if failed {
		os.Exit(1)
	}
}

// audit prints one line per check and reports whether any failed.
func audit(dir string, sk *ntru.PrivateKey, pk *ntru.PublicKey) (bool, error) {
	ps := pk.Params
	failed := false
	check := func(name string, ok bool) {
		status := "ok"
		if !ok {
			status = "FAIL"
			failed = true
		}
		fmt.Printf("%-28s %s\n", name, status)
	}
	fmt.Printf("parameter set: %s (oid %s)\n", ps.Name, ps.OIDString())
	check("h*p*F = g (mod q)", ntru.CheckPublicKey(sk, pk))
	check("F invertible mod q", ntru.IsUnit(sk.F.Dense(), ps.Q))
	check("g invertible mod p", ntru.IsUnit(sk.G.Dense(), ps.P))
	fmt.Printf("||h||inf = %d\n", pk.H.NormInf())

	doc, err := keys.Load(dir)
	if err != nil {
		fmt.Println("no signature:", err)
		return failed, nil
	}
	sigBlob, err := doc.RawBlob()
	if err != nil {
		return failed, fmt.Errorf("signature blob: %w", err)
	}
	msg, err := doc.RawMessage()
	if err != nil {
		return failed, fmt.Errorf("signature message: %w", err)
	}
	if sps, err := ntru.PeekParams(sigBlob); err == nil && sps.OID != ps.OID {
		return failed, &ntru.ParameterMismatchError{Want: ps.Name, Got: sps.Name}
	}
	sig, err := ntru.ParseSignature(sigBlob)
	if err != nil {
		return failed, fmt.Errorf("parse signature: %w", err)
	}
	sInf, tInf, err := ntru.SignatureNorms(pk, sig)
	if err != nil {
		return failed, err
	}
	fmt.Printf("||s||inf = %d (bound %d)\n", sInf, ps.NormBoundS)
	fmt.Printf("||t||inf = %d (bound %d)\n", tInf, ps.NormBoundT)
	check("signature verifies", ntru.VerifySignature(pk, msg, sig))
	return failed, nil
}
