// Package signverify exposes the blob-level operations and the
// persistence-backed flows used by the command line tools.
package signverify

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"time"

	"ntrumls-signature/measure"
	ntru "ntrumls-signature/ntru"
	ntrurio "ntrumls-signature/ntru/io"
	"ntrumls-signature/ntru/keys"
	"ntrumls-signature/prof"
)

const keyVersion = "ntru-key-v1"

// GenerateKeys returns fresh (private, public) key blobs for ps.
func GenerateKeys(ps ntru.ParameterSet) (privBlob, pubBlob []byte, err error) {
	defer prof.Track(time.Now(), "keygen")
	sk, pk, err := ntru.GenerateKey(ps, nil)
	if err != nil {
		return nil, nil, err
	}
	defer sk.Destroy()
	return sk.Bytes(), pk.Bytes(), nil
}

// Sign signs msg with the given key blobs.
func Sign(privBlob, pubBlob, msg []byte) ([]byte, error) {
	sig, _, err := SignWithOpts(privBlob, pubBlob, msg, ntru.SignOpts{})
	if err != nil {
		return nil, err
	}
	return sig, nil
}

// SignWithOpts is Sign with explicit options; it also returns the attempts used.
func SignWithOpts(privBlob, pubBlob, msg []byte, opts ntru.SignOpts) ([]byte, int, error) {
	defer prof.Track(time.Now(), "sign")
	sk, err := ntru.ParsePrivateKey(privBlob)
	if err != nil {
		return nil, 0, fmt.Errorf("sign: %w", err)
	}
	defer sk.Destroy()
	pk, err := ntru.ParsePublicKey(pubBlob)
	if err != nil {
		return nil, 0, fmt.Errorf("sign: %w", err)
	}
	sig, attempts, err := ntru.SignWithOpts(sk, pk, msg, opts)
	if err != nil {
		return nil, attempts, err
	}
	out := sig.Bytes()
	measure.Global.Add("ntru/signature/blob", int64(len(out)))
	return out, attempts, nil
}

// Verify reports whether sigBlob is a valid signature of msg under pubBlob.
func Verify(sigBlob, pubBlob, msg []byte) bool {
	defer prof.Track(time.Now(), "verify")
	return ntru.Verify(sigBlob, pubBlob, msg)
}

// GenerateAndSave creates a key pair and writes dir/{public,private}.json.
// rng may be nil for crypto/rand.
func GenerateAndSave(sys ntrurio.SystemParams, dir string, rng io.Reader, seedHex string) (*keys.PublicKey, *keys.PrivateKey, error) {
	defer prof.Track(time.Now(), "keygen")
	ps := sys.Set
	sk, pk, trials, err := ntru.GenerateKeyWithOpts(ps, ntru.KeygenOpts{MaxTrials: sys.MaxKeygenTrials, Rand: rng})
	if err != nil {
		return nil, nil, err
	}
	defer sk.Destroy()
	pubDoc := &keys.PublicKey{
		Version:  keyVersion,
		ParamSet: ps.Name,
		OID:      ps.OIDString(),
		N:        ps.N,
		Q:        strconv.FormatInt(ps.Q, 16),
		HCoeffs:  append([]int64(nil), pk.H...),
	}
	pubBlob := pk.Bytes()
	pubDoc.SetBlob(pubBlob)
	privDoc := &keys.PrivateKey{
		Version:  keyVersion,
		ParamSet: ps.Name,
		OID:      ps.OIDString(),
		N:        ps.N,
		Q:        strconv.FormatInt(ps.Q, 16),
	}
	privDoc.SetBlob(sk.Bytes())
	privDoc.Policy = &struct {
		TrialsUsed int    `json:"trials_used"`
		SeedHex    string `json:"seed,omitempty"`
	}{TrialsUsed: trials, SeedHex: seedHex}
	measure.Global.Add("ntru/public_key/blob", int64(len(pubBlob)))
	if err := keys.SavePublic(dir, pubDoc); err != nil {
		return nil, nil, err
	}
	if err := keys.SavePrivate(dir, privDoc); err != nil {
		return nil, nil, err
	}
	return pubDoc, privDoc, nil
}

// LoadBlobs reads the key blobs persisted in dir and checks that both
// documents name the same parameter set.
func LoadBlobs(dir string) (privBlob, pubBlob []byte, err error) {
	privDoc, err := keys.LoadPrivate(dir)
	if err != nil {
		return nil, nil, err
	}
	pubDoc, err := keys.LoadPublic(dir)
	if err != nil {
		return nil, nil, err
	}
	if privDoc.OID != pubDoc.OID {
		return nil, nil, &ntru.ParameterMismatchError{Want: pubDoc.ParamSet, Got: privDoc.ParamSet}
	}
	if privBlob, err = privDoc.RawBlob(); err != nil {
		return nil, nil, err
	}
	if pubBlob, err = pubDoc.RawBlob(); err != nil {
		return nil, nil, err
	}
	return privBlob, pubBlob, nil
}

// SignAndSave signs msg with the keys in dir and writes dir/signature.json.
func SignAndSave(dir string, msg []byte, opts ntru.SignOpts) (*keys.Signature, error) {
	privBlob, pubBlob, err := LoadBlobs(dir)
	if err != nil {
		return nil, err
	}
	opts.ApplyDefaults()
	sigBlob, attempts, err := SignWithOpts(privBlob, pubBlob, msg, opts)
	if err != nil {
		return nil, err
	}
	doc := keys.NewSignature()
	ps, _ := ntru.PeekParams(sigBlob)
	doc.ParamSet = ps.Name
	doc.OID = ps.OIDString()
	doc.SetBlob(sigBlob)
	doc.SetMessage(msg)
	doc.TrialsUsed = attempts
	doc.Rejected = attempts > 1
	doc.MaxTrials = opts.MaxAttempts
	doc.Hedged = opts.Rand != nil
	if err := fillNorms(doc, sigBlob, pubBlob, msg); err != nil {
		return nil, err
	}
	if err := keys.Save(dir, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// VerifySaved verifies dir/signature.json against dir/public.json.
func VerifySaved(dir string) (bool, error) {
	doc, err := keys.Load(dir)
	if err != nil {
		return false, err
	}
	pubDoc, err := keys.LoadPublic(dir)
	if err != nil {
		return false, err
	}
	sigBlob, err := doc.RawBlob()
	if err != nil {
		return false, err
	}
	pubBlob, err := pubDoc.RawBlob()
	if err != nil {
		return false, err
	}
	msg, err := doc.RawMessage()
	if err != nil {
		return false, err
	}
	defer prof.Track(time.Now(), "verify")
	return ntru.CheckSignature(sigBlob, pubBlob, msg)
}

func fillNorms(doc *keys.Signature, sigBlob, pubBlob, msg []byte) error {
	pk, err := ntru.ParsePublicKey(pubBlob)
	if err != nil {
		return err
	}
	sig, err := ntru.ParseSignature(sigBlob)
	if err != nil {
		return err
	}
	if doc.Norm.SInf, doc.Norm.TInf, err = ntru.SignatureNorms(pk, sig); err != nil {
		return err
	}
	doc.Norm.BoundS = pk.Params.NormBoundS
	doc.Norm.BoundT = pk.Params.NormBoundT
	doc.Norm.Passed = ntru.VerifySignature(pk, msg, sig)
	return nil
}

// DecodeSeedHex parses an optional hex seed for reproducible key generation.
func DecodeSeedHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return b, nil
}
