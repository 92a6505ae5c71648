package ntru

import (
	"os"
)

// Invert returns b with a*b = 1 in Z_m[x]/(x^N - 1), coefficients in [0, m).
// m must be a prime below 2^31 or a power of two; the bool is false when a
// is not a unit.
func Invert(a Poly, m int64) (Poly, bool) {
	dbg(os.Stderr, "[Inv] Invert begin N=%d m=%d\n", len(a), m)
	switch {
	case m < 2:
		return nil, false
	case m&(m-1) == 0:
		return invertPow2(a, m)
	case m < 1<<31 && isPrime(m):
		return invertPrime(a, uint64(m))
	default:
		return nil, false
	}
}

// IsUnit reports whether a is invertible modulo m.
func IsUnit(a Poly, m int64) bool {
	_, ok := Invert(a, m)
	return ok
}

// invertPow2 inverts mod 2 and lifts with b <- b*(2 - a*b), doubling the
// number of correct bits each round.
func invertPow2(a Poly, m int64) (Poly, bool) {
	b, ok := invertPrime(a, 2)
	if !ok {
		return nil, false
	}
	n := len(a)
	for mod := int64(2); mod < m; {
		mod *= mod
		if mod > m || mod <= 0 {
			mod = m
		}
		ab := Convolve(a, b, m)
		two := NewPoly(n)
		two[0] = 2
		b = Convolve(b, two.Sub(ab), m)
	}
	check := Convolve(a, b, m)
	if !check.Equal(One(n)) {
		return nil, false
	}
	dbg(os.Stderr, "[Inv] lifted to m=%d\n", m)
	return b, true
}

// polyP is a polynomial over GF(p), low degree first.
type polyP struct {
	coeffs []uint64
	p      uint64
}

func (a polyP) degree() int { return degreeSlice(a.coeffs) }

func polySub(a, b polyP) polyP {
	n := len(a.coeffs)
	if len(b.coeffs) > n {
		n = len(b.coeffs)
	}
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		var ai, bi uint64
		if i < len(a.coeffs) {
			ai = a.coeffs[i]
		}
		if i < len(b.coeffs) {
			bi = b.coeffs[i]
		}
		out[i] = modSub(ai, bi, a.p)
	}
	return polyP{coeffs: trimSlice(out), p: a.p}
}

func polyMul(a, b polyP) polyP {
	if len(a.coeffs) == 0 || len(b.coeffs) == 0 {
		return polyP{p: a.p}
	}
	out := make([]uint64, len(a.coeffs)+len(b.coeffs)-1)
	for i, ai := range a.coeffs {
		if ai == 0 {
			continue
		}
		for j, bj := range b.coeffs {
			if bj == 0 {
				continue
			}
			out[i+j] = (out[i+j] + ai*bj) % a.p
		}
	}
	return polyP{coeffs: trimSlice(out), p: a.p}
}

// polyDiv returns quotient and remainder of a / b over GF(p).
func polyDiv(a, b polyP) (polyP, polyP, bool) {
	db := b.degree()
	if db < 0 {
		return polyP{}, polyP{}, false
	}
	p := a.p
	r := append([]uint64(nil), a.coeffs...)
	da := degreeSlice(r)
	if da < db {
		return polyP{p: p}, polyP{coeffs: trimSlice(r), p: p}, true
	}
	quot := make([]uint64, da-db+1)
	inv, ok := modInv(b.coeffs[db], p)
	if !ok {
		return polyP{}, polyP{}, false
	}
	for da >= db {
		coef := r[da] * inv % p
		shift := da - db
		quot[shift] = (quot[shift] + coef) % p
		for i := 0; i <= db; i++ {
			r[i+shift] = modSub(r[i+shift], coef*b.coeffs[i]%p, p)
		}
		da = degreeSlice(r[:da])
	}
	return polyP{coeffs: trimSlice(quot), p: p}, polyP{coeffs: trimSlice(r), p: p}, true
}

func degreeSlice(a []uint64) int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != 0 {
			return i
		}
	}
	return -1
}

func trimSlice(a []uint64) []uint64 {
	return a[:degreeSlice(a)+1]
}

// reduceModXN1 folds a polynomial of any degree into Z_p[x]/(x^N - 1).
func reduceModXN1(a polyP, n int) []uint64 {
	out := make([]uint64, n)
	for i, c := range a.coeffs {
		out[i%n] = (out[i%n] + c) % a.p
	}
	return out
}

// invertPrime runs the extended Euclidean algorithm on (x^N - 1, a) over
// GF(p) and keeps only the cofactor of a.
func invertPrime(a Poly, p uint64) (Poly, bool) {
	n := len(a)
	r0 := polyP{coeffs: make([]uint64, n+1), p: p}
	r0.coeffs[0] = p - 1
	r0.coeffs[n] = 1
	r1c := make([]uint64, n)
	for i, c := range a {
		r1c[i] = uint64(modFloor(c, int64(p)))
	}
	r1 := polyP{coeffs: trimSlice(r1c), p: p}
	t0 := polyP{p: p}
	t1 := polyP{coeffs: []uint64{1}, p: p}
	for r1.degree() >= 0 {
		quot, rem, ok := polyDiv(r0, r1)
		if !ok {
			return nil, false
		}
		r0, r1 = r1, rem
		t0, t1 = t1, polySub(t0, polyMul(quot, t1))
	}
	if r0.degree() != 0 {
		return nil, false
	}
	invConst, ok := modInv(r0.coeffs[0], p)
	if !ok {
		return nil, false
	}
	folded := reduceModXN1(t0, n)
	out := NewPoly(n)
	for i, c := range folded {
		out[i] = int64(c * invConst % p)
	}
	return out, true
}

func modSub(x, y, p uint64) uint64 {
	if x >= y {
		return x - y
	}
	return x + (p - y)
}

// modInv inverts a modulo prime p by Fermat.
func modInv(a, p uint64) (uint64, bool) {
	a %= p
	if a == 0 {
		return 0, false
	}
	res, base, e := uint64(1), a, p-2
	for e > 0 {
		if e&1 == 1 {
			res = res * base % p
		}
		base = base * base % p
		e >>= 1
	}
	return res, true
}

func isPrime(m int64) bool {
	if m < 2 {
		return false
	}
	for d := int64(2); d*d <= m; d++ {
		if m%d == 0 {
			return false
		}
	}
	return true
}
