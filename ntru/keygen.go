package ntru

import (
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"ntrumls-signature/measure"
)

// DefaultKeygenTrials bounds the search for an invertible secret. A single
// trial succeeds with high probability for every supported set.
const DefaultKeygenTrials = 64

// KeygenOpts controls key generation.
type KeygenOpts struct {
	MaxTrials int       // cap on sampled (F, g) pairs (defaults to DefaultKeygenTrials)
	Rand      io.Reader // entropy source (defaults to crypto/rand); a fixed reader reproduces the key
}

// ApplyDefaults fills unset fields.
func (opts *KeygenOpts) ApplyDefaults() {
	if opts.MaxTrials <= 0 {
		opts.MaxTrials = DefaultKeygenTrials
	}
	if opts.Rand == nil {
		opts.Rand = rand.Reader
	}
}

// GenerateKey samples a key pair for ps using rng (nil means crypto/rand).
func GenerateKey(ps ParameterSet, rng io.Reader) (*PrivateKey, *PublicKey, error) {
	sk, pk, _, err := GenerateKeyWithOpts(ps, KeygenOpts{Rand: rng})
	return sk, pk, err
}

// GenerateKeyWithOpts is GenerateKey with explicit options. It also
// returns the number of trials used.
func GenerateKeyWithOpts(ps ParameterSet, opts KeygenOpts) (*PrivateKey, *PublicKey, int, error) {
	if err := ps.Validate(); err != nil {
		return nil, nil, 0, &KeyGenerationError{Params: ps.Name, Err: fmt.Errorf("invalid parameter set: %w", err)}
	}
	opts.ApplyDefaults()
	entropy := make([]byte, seedSize)
	if _, err := io.ReadFull(opts.Rand, entropy); err != nil {
		return nil, nil, 0, &KeyGenerationError{Params: ps.Name, Err: fmt.Errorf("read entropy: %w", err)}
	}
	defer func() {
		for i := range entropy {
			entropy[i] = 0
		}
	}()

	for trial := 1; trial <= opts.MaxTrials; trial++ {
		sk, pk, err := keygenTrial(ps, entropy, trial)
		if err != nil {
			return nil, nil, trial, &KeyGenerationError{Params: ps.Name, Trials: trial, Err: err}
		}
		if sk == nil {
			dbg(os.Stderr, "[KeyGen] %s trial %d: secret not invertible\n", ps.Name, trial)
			continue
		}
		measure.Global.Add("ntru/keygen/trials", int64(trial))
		dbg(os.Stderr, "[KeyGen] %s done after %d trial(s)\n", ps.Name, trial)
		return sk, pk, trial, nil
	}
	return nil, nil, opts.MaxTrials, &KeyGenerationError{Params: ps.Name, Trials: opts.MaxTrials}
}

// keygenTrial returns (nil, nil, nil) when the sampled pair is rejected.
func keygenTrial(ps ParameterSet, entropy []byte, trial int) (*PrivateKey, *PublicKey, error) {
	stream, err := keygenStream(entropy, trial)
	if err != nil {
		return nil, nil, err
	}
	F, err := SampleProductForm(ps, stream)
	if err != nil {
		return nil, nil, fmt.Errorf("sample F: %w", err)
	}
	G, err := SampleProductForm(ps, stream)
	if err != nil {
		return nil, nil, fmt.Errorf("sample g: %w", err)
	}
	fInvQ, ok := Invert(F.Dense(), ps.Q)
	if !ok {
		return nil, nil, nil
	}
	gInvP, ok := Invert(G.Dense(), ps.P)
	if !ok {
		return nil, nil, nil
	}
	h, err := PublicKeyH(fInvQ, G, ps)
	fInvQ.wipe()
	if err != nil {
		return nil, nil, err
	}
	return newPrivateKey(ps, F, G, gInvP), newPublicKey(ps, h), nil
}
