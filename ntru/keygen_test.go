package ntru

import (
	"bytes"
	"errors"
	"testing"
)

func TestGenerateKeyValidity(t *testing.T) {
	for _, ps := range AllParams() {
		sk, pk := cachedKey(t, ps)
		if !IsUnit(sk.F.Dense(), ps.Q) {
			t.Fatalf("%s: F not invertible mod q", ps.Name)
		}
		if !IsUnit(sk.G.Dense(), ps.P) {
			t.Fatalf("%s: g not invertible mod p", ps.Name)
		}
		if !CheckPublicKey(sk, pk) {
			t.Fatalf("%s: h*f != g mod q", ps.Name)
		}
		// g * g^-1 = 1 mod p
		if !Convolve(sk.G.Dense(), sk.GInvP, ps.P).Equal(One(ps.N)) {
			t.Fatalf("%s: stored g^-1 is wrong", ps.Name)
		}
		if len(pk.H) != ps.N || pk.H.NormInf() > ps.Q/2 {
			t.Fatalf("%s: h not centered", ps.Name)
		}
		if got := len(pk.Bytes()); got != ps.PublicKeySize() {
			t.Fatalf("%s: public key size %d, want %d", ps.Name, got, ps.PublicKeySize())
		}
		if got := len(sk.Bytes()); got != ps.PrivateKeySize() {
			t.Fatalf("%s: private key size %d, want %d", ps.Name, got, ps.PrivateKeySize())
		}
	}
}

func TestGenerateKeyReproducible(t *testing.T) {
	ps := Preset20151024_401()
	seed := bytes.Repeat([]byte{0x5a}, seedSize)
	sk1, pk1, err := GenerateKey(ps, bytes.NewReader(seed))
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	sk2, pk2, err := GenerateKey(ps, bytes.NewReader(seed))
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if !pk1.Equal(pk2) || !bytes.Equal(sk1.Bytes(), sk2.Bytes()) {
		t.Fatalf("same entropy produced different keys")
	}
	_, pk3, err := GenerateKey(ps, bytes.NewReader(bytes.Repeat([]byte{0xa5}, seedSize)))
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	if pk1.Equal(pk3) {
		t.Fatalf("different entropy produced the same key")
	}
}

func TestGenerateKeyErrors(t *testing.T) {
	ps := Preset20151024_401()
	var ke *KeyGenerationError

	_, _, err := GenerateKey(ps, bytes.NewReader(nil))
	if !errors.As(err, &ke) {
		t.Fatalf("empty reader: expected KeyGenerationError, got %v", err)
	}

	bad := ps
	bad.D1 = bad.N
	_, _, err = GenerateKey(bad, NewRNG(1))
	if !errors.As(err, &ke) {
		t.Fatalf("invalid set: expected KeyGenerationError, got %v", err)
	}
}

func TestGenerateKeyTrialsReported(t *testing.T) {
	ps := Preset20151024_443()
	sk, pk, trials, err := GenerateKeyWithOpts(ps, KeygenOpts{Rand: NewRNG(5)})
	if err != nil {
		t.Fatalf("GenerateKeyWithOpts: %v", err)
	}
	if trials < 1 || trials > DefaultKeygenTrials {
		t.Fatalf("trials = %d", trials)
	}
	if !CheckPublicKey(sk, pk) {
		t.Fatalf("key pair inconsistent")
	}
}

func TestGenerateKeyMany(t *testing.T) {
	slow(t)
	for _, ps := range AllParams() {
		rng := NewRNG(int64(ps.N) + 7)
		for i := 0; i < 1000; i++ {
			sk, pk, err := GenerateKey(ps, rng)
			if err != nil {
				t.Fatalf("%s key %d: %v", ps.Name, i, err)
			}
			if !CheckPublicKey(sk, pk) {
				t.Fatalf("%s key %d: inconsistent", ps.Name, i)
			}
			sk.Destroy()
		}
	}
}

func BenchmarkGenerateKey(b *testing.B) {
	for _, ps := range []ParameterSet{Preset20151024_401(), Preset20151024_743()} {
		b.Run(ps.Name, func(b *testing.B) {
			rng := NewRNG(1)
			for i := 0; i < b.N; i++ {
				if _, _, err := GenerateKey(ps, rng); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// toyParams is a valid ring small enough that g often vanishes at x = -1
// modulo 3, so single-trial key generation fails for many seeds.
func toyParams() ParameterSet {
	return newPreset("toy-10", [3]byte{0x00, 0x00, 0x01}, 4, 8, 10, 6, 2, 1, 1, 1, 10)
}

func TestGenerateKeyTrialCap(t *testing.T) {
	ps := toyParams()
	if err := ps.Validate(); err != nil {
		t.Fatalf("toy set invalid: %v", err)
	}
	failures := 0
	for seed := int64(0); seed < 200; seed++ {
		sk, pk, trials, err := GenerateKeyWithOpts(ps, KeygenOpts{MaxTrials: 1, Rand: NewRNG(seed)})
		if err == nil {
			if trials != 1 || !CheckPublicKey(sk, pk) {
				t.Fatalf("seed %d: trials=%d consistent=%v", seed, trials, CheckPublicKey(sk, pk))
			}
			continue
		}
		var ke *KeyGenerationError
		if !errors.As(err, &ke) {
			t.Fatalf("seed %d: expected KeyGenerationError, got %v", seed, err)
		}
		if ke.Trials != 1 || trials != 1 || ke.Err != nil || ke.Params != ps.Name {
			t.Fatalf("seed %d: unexpected error fields %+v (trials %d)", seed, ke, trials)
		}
		failures++

		// the same entropy succeeds once more trials are allowed
		sk, pk, trials, err = GenerateKeyWithOpts(ps, KeygenOpts{Rand: NewRNG(seed)})
		if err != nil {
			t.Fatalf("seed %d: default cap: %v", seed, err)
		}
		if trials < 2 || !CheckPublicKey(sk, pk) {
			t.Fatalf("seed %d: trials=%d after a failed first trial", seed, trials)
		}
	}
	if failures == 0 {
		t.Fatalf("no seed exhausted a single trial")
	}
}
