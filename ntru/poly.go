package ntru

// Poly is a dense element of Z[x]/(x^N - 1) with exact int64 coefficients.
// Reduction is always explicit; no operation wraps silently.
type Poly []int64

// NewPoly returns the zero polynomial of length n.
func NewPoly(n int) Poly { return make(Poly, n) }

// One returns the constant polynomial 1 of length n.
func One(n int) Poly {
	p := make(Poly, n)
	p[0] = 1
	return p
}

// Clone returns an independent copy.
func (p Poly) Clone() Poly { return append(Poly(nil), p...) }

// Equal reports coefficient-wise equality.
func (p Poly) Equal(q Poly) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	out := make(Poly, len(p))
	for i := range p {
		out[i] = p[i] + q[i]
	}
	return out
}

// Sub returns p - q.
func (p Poly) Sub(q Poly) Poly {
	out := make(Poly, len(p))
	for i := range p {
		out[i] = p[i] - q[i]
	}
	return out
}

// MulConst returns k*p.
func (p Poly) MulConst(k int64) Poly {
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = k * c
	}
	return out
}

// NormInf returns the largest absolute coefficient.
func (p Poly) NormInf() int64 {
	var m int64
	for _, c := range p {
		if c < 0 {
			c = -c
		}
		if c > m {
			m = c
		}
	}
	return m
}

// wipe zeroes the coefficients in place.
func (p Poly) wipe() {
	for i := range p {
		p[i] = 0
	}
}
