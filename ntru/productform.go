package ntru

import (
	"fmt"
	"io"
)

// SparseTernary holds the positions of the +1 and -1 coefficients of one
// product-form factor. Positions are distinct across both lists.
type SparseTernary struct {
	Plus  []uint16
	Minus []uint16
}

// mulInto adds (this * b) to out, both of length N.
func (s SparseTernary) mulInto(out, b Poly) {
	n := len(b)
	for _, idx := range s.Plus {
		i := int(idx)
		hi := out[i:]
		for j := range hi {
			hi[j] += b[j]
		}
		lo := out[:i]
		tail := b[n-i:]
		for j := range lo {
			lo[j] += tail[j]
		}
	}
	for _, idx := range s.Minus {
		i := int(idx)
		hi := out[i:]
		for j := range hi {
			hi[j] -= b[j]
		}
		lo := out[:i]
		tail := b[n-i:]
		for j := range lo {
			lo[j] -= tail[j]
		}
	}
}

func (s SparseTernary) mul(b Poly) Poly {
	out := NewPoly(len(b))
	s.mulInto(out, b)
	return out
}

// ProductForm is the secret polynomial F = 1 + A1*A2 + A3, where factor Ai
// has exactly d_i coefficients +1 and d_i coefficients -1.
type ProductForm struct {
	N       int
	Factors [3]SparseTernary
}

// Mul returns F*b exactly in Z[x]/(x^N - 1) in O(N*(d1+d2+d3)).
func (pf *ProductForm) Mul(b Poly) Poly {
	out := b.Clone()
	t := pf.Factors[0].mul(b)
	pf.Factors[1].mulInto(out, t)
	pf.Factors[2].mulInto(out, b)
	return out
}

// MulMod returns F*b reduced into [-m/2, m/2).
func (pf *ProductForm) MulMod(b Poly, m int64) Poly {
	return pf.Mul(b).ReduceCentered(m)
}

// Dense expands F into its N coefficients.
func (pf *ProductForm) Dense() Poly { return pf.Mul(One(pf.N)) }

func (pf *ProductForm) wipe() {
	for i := range pf.Factors {
		for j := range pf.Factors[i].Plus {
			pf.Factors[i].Plus[j] = 0
		}
		for j := range pf.Factors[i].Minus {
			pf.Factors[i].Minus[j] = 0
		}
	}
}

// SampleProductForm draws the three factors with weights (d1, d2, d3)
// from the stream, positions uniform without replacement per factor.
func SampleProductForm(ps ParameterSet, stream io.Reader) (*ProductForm, error) {
	pf := &ProductForm{N: ps.N}
	for i, d := range []int{ps.D1, ps.D2, ps.D3} {
		idx, err := sampleDistinctIndices(stream, ps.N, 2*d)
		if err != nil {
			return nil, fmt.Errorf("sample factor %d: %w", i+1, err)
		}
		pf.Factors[i] = SparseTernary{Plus: idx[:d:d], Minus: idx[d:]}
	}
	return pf, nil
}

// sampleDistinctIndices returns k distinct positions in [0, n).
func sampleDistinctIndices(stream io.Reader, n, k int) ([]uint16, error) {
	used := make([]bool, n)
	out := make([]uint16, 0, k)
	buf := make([]int64, 1)
	for len(out) < k {
		if err := fillBounded(stream, buf, 0, int64(n-1)); err != nil {
			return nil, err
		}
		i := buf[0]
		if used[i] {
			continue
		}
		used[i] = true
		out = append(out, uint16(i))
	}
	return out, nil
}

// validate checks weights, ranges and distinctness against ps.
func (pf *ProductForm) validate(ps ParameterSet) error {
	if pf.N != ps.N {
		return fmt.Errorf("product form has N=%d, want %d", pf.N, ps.N)
	}
	for i, d := range []int{ps.D1, ps.D2, ps.D3} {
		f := pf.Factors[i]
		if len(f.Plus) != d || len(f.Minus) != d {
			return fmt.Errorf("factor %d has weight (%d,%d), want %d", i+1, len(f.Plus), len(f.Minus), d)
		}
		seen := make(map[uint16]bool, 2*d)
		for _, idx := range append(append([]uint16(nil), f.Plus...), f.Minus...) {
			if int(idx) >= ps.N {
				return fmt.Errorf("factor %d index %d out of range", i+1, idx)
			}
			if seen[idx] {
				return fmt.Errorf("factor %d repeats index %d", i+1, idx)
			}
			seen[idx] = true
		}
	}
	return nil
}
