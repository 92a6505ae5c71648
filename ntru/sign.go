package ntru

import (
	"fmt"
	"io"
	"os"

	"ntrumls-signature/measure"
)

// DefaultMaxSignAttempts caps the rejection loop. The lowest per-attempt
// acceptance rate, about 1 in 120 for xxx-20151024-401, puts the chance of
// exhausting the cap near 2^-99.
const DefaultMaxSignAttempts = 8192

// SignOpts controls signing.
type SignOpts struct {
	MaxAttempts int // defaults to DefaultMaxSignAttempts
	// Rand, when set, contributes a 32-byte nonce to the blinding seed
	// (hedged signing). Nil keeps signing fully deterministic.
	Rand io.Reader
}

// ApplyDefaults fills unset fields.
func (opts *SignOpts) ApplyDefaults() {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxSignAttempts
	}
}

// Sign produces a deterministic signature of msg.
func Sign(sk *PrivateKey, pk *PublicKey, msg []byte) (*Signature, error) {
	sig, _, err := SignWithOpts(sk, pk, msg, SignOpts{})
	return sig, err
}

// SignWithOpts signs msg and reports how many attempts the rejection loop
// used. Only candidates inside every bound are ever returned.
func SignWithOpts(sk *PrivateKey, pk *PublicKey, msg []byte, opts SignOpts) (*Signature, int, error) {
	if sk == nil || pk == nil || sk.digest == nil {
		return nil, 0, &SigningError{Reason: "missing or destroyed key"}
	}
	ps := sk.Params
	if err := checkSameParams(ps, pk.Params); err != nil {
		return nil, 0, err
	}
	if !CheckPublicKey(sk, pk) {
		return nil, 0, &SigningError{Params: ps.Name, Reason: "public key does not belong to private key"}
	}
	opts.ApplyDefaults()

	var nonce []byte
	if opts.Rand != nil {
		nonce = make([]byte, seedSize)
		if _, err := io.ReadFull(opts.Rand, nonce); err != nil {
			return nil, 0, &SigningError{Params: ps.Name, Reason: "read nonce", Err: err}
		}
	}

	sp, tp := hashToTarget(pk.Digest[:], msg, ps.N)
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		stream, err := blindStream(sk.digest, pk.Digest[:], nonce, msg, attempt)
		if err != nil {
			return nil, attempt, &SigningError{Params: ps.Name, Attempts: attempt, Err: err}
		}
		s, err := signAttempt(sk, pk, sp, tp, stream)
		if err != nil {
			return nil, attempt, &SigningError{Params: ps.Name, Attempts: attempt, Err: err}
		}
		if s != nil {
			measure.Global.Add("ntru/sign/attempts", int64(attempt))
			dbg(os.Stderr, "[Sign] %s accepted at attempt %d\n", ps.Name, attempt)
			return &Signature{Params: ps, S: s}, attempt, nil
		}
	}
	return nil, opts.MaxAttempts, &SigningError{Params: ps.Name, Attempts: opts.MaxAttempts, Reason: "no candidate within bounds"}
}

// signAttempt runs one blinded candidate. It returns (nil, nil) on rejection.
//
//	s0 = sp + p*r            r uniform, so s0 = sp (mod p)
//	t0 = h*s0 mod q
//	a  = g^-1 (tp - t0) mod p
//	s  = s0 + a*f,  t = t0 + a*g   with f = p*F, hence t = h*s (mod q)
func signAttempt(sk *PrivateKey, pk *PublicKey, sp, tp Poly, stream io.Reader) (Poly, error) {
	ps := sk.Params
	rMax := ps.Q / (2 * ps.P)
	r := NewPoly(ps.N)
	if err := fillBounded(stream, r, -rMax, rMax); err != nil {
		return nil, fmt.Errorf("sample r: %w", err)
	}
	s0 := sp.Add(r.MulConst(ps.P))
	t0 := pk.ComputeT(s0)
	a := Convolve(sk.GInvP, tp.Sub(t0), ps.P).ReduceCentered(ps.P)

	af := sk.F.Mul(a).MulConst(ps.P)
	ag := sk.G.Mul(a)
	s := s0.Add(af)
	t := t0.Add(ag)

	// evaluate every bound before deciding so the rejection reason is not
	// visible in timing
	ok := withinBound(af, ps.Bs)
	ok = withinBound(ag, ps.Bt) && ok
	ok = withinBound(s, ps.NormBoundS) && ok
	ok = withinBound(t, ps.NormBoundT) && ok
	if !ok {
		return nil, nil
	}
	return s, nil
}

// withinBound reports ||p||inf <= bound without an early exit.
func withinBound(p Poly, bound int64) bool {
	var over int64
	for _, c := range p {
		// (bound - |c|) is negative exactly when c is out of range
		m := c >> 63
		abs := (c ^ m) - m
		over |= (bound - abs) >> 63
	}
	return over == 0
}
