package ntru

import (
	"testing"
)

// naiveCyclic is the textbook O(N^2) product reduced into [0, m).
func naiveCyclic(a, b Poly, m int64) Poly {
	n := len(a)
	out := NewPoly(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			k := (i + j) % n
			out[k] = modFloor(out[k]+modFloor(a[i], m)*modFloor(b[j], m), m)
		}
	}
	return out
}

func randomPoly(rng *RNG, n int, lo, hi int64) Poly {
	p := NewPoly(n)
	for i := range p {
		p[i] = lo + int64(rng.Intn(int(hi-lo+1)))
	}
	return p
}

func TestPolyArithmetic(t *testing.T) {
	a := Poly{1, -2, 3}
	b := Poly{4, 5, -6}
	if got := a.Add(b); !got.Equal(Poly{5, 3, -3}) {
		t.Fatalf("Add: %v", got)
	}
	if got := a.Sub(b); !got.Equal(Poly{-3, -7, 9}) {
		t.Fatalf("Sub: %v", got)
	}
	if got := a.MulConst(3); !got.Equal(Poly{3, -6, 9}) {
		t.Fatalf("MulConst: %v", got)
	}
	if a.NormInf() != 3 || b.NormInf() != 6 {
		t.Fatalf("NormInf: %d %d", a.NormInf(), b.NormInf())
	}
	c := a.Clone()
	c[0] = 100
	if a[0] != 1 {
		t.Fatalf("Clone aliases its source")
	}
}

func TestReduceCenteredRange(t *testing.T) {
	for _, m := range []int64{3, 2, 1 << 15, 1 << 18} {
		p := Poly{-m, -m/2 - 1, -m / 2, -1, 0, 1, m/2 - 1, m / 2, m, 3*m + 1}
		c := p.ReduceCentered(m)
		for i, v := range c {
			if 2*v < -m || 2*v >= m {
				t.Fatalf("m=%d: coefficient %d -> %d outside [-m/2, m/2)", m, p[i], v)
			}
			if modFloor(v-p[i], m) != 0 {
				t.Fatalf("m=%d: %d -> %d changes the residue", m, p[i], v)
			}
		}
	}
	if got := (Poly{2, -2, 4}).ReduceCentered(3); !got.Equal(Poly{-1, 1, 1}) {
		t.Fatalf("mod 3 centering: %v", got)
	}
	if got := (Poly{8, -8}).ReduceCentered(16); !got.Equal(Poly{-8, -8}) {
		t.Fatalf("mod 16 centering must map q/2 to -q/2: %v", got)
	}
}

func TestConvolveMatchesNaive(t *testing.T) {
	rng := NewRNG(1)
	for _, m := range []int64{3, 1 << 15, 1 << 20, 2053} {
		for _, n := range []int{1, 7, 31, 401} {
			a := randomPoly(rng, n, -m, m)
			b := randomPoly(rng, n, -m, m)
			got := Convolve(a, b, m)
			want := naiveCyclic(a, b, m)
			if !got.Equal(want) {
				t.Fatalf("m=%d n=%d: convolution mismatch", m, n)
			}
		}
	}
}

func TestConvolveIdentityAndShift(t *testing.T) {
	n := 11
	q := int64(1 << 16)
	a := randomPoly(NewRNG(2), n, 0, q-1)
	if got := Convolve(a, One(n), q); !got.Equal(a) {
		t.Fatalf("a*1 != a")
	}
	x := NewPoly(n)
	x[1] = 1
	got := Convolve(a, x, q)
	for i := 0; i < n; i++ {
		if got[(i+1)%n] != a[i] {
			t.Fatalf("x*a is not a cyclic shift")
		}
	}
}

func TestInvertSmallRing(t *testing.T) {
	rng := NewRNG(3)
	for _, m := range []int64{2, 3, 1 << 11, 1 << 17} {
		found := 0
		for trial := 0; trial < 40; trial++ {
			a := randomPoly(rng, 13, -1, 1)
			inv, ok := Invert(a, m)
			if !ok {
				continue
			}
			found++
			if got := Convolve(a, inv, m); !got.Equal(One(13)) {
				t.Fatalf("m=%d: a*a^-1 = %v", m, got)
			}
		}
		if found == 0 {
			t.Fatalf("m=%d: no invertible element in 40 trials", m)
		}
	}
}

func TestInvertRejectsNonUnits(t *testing.T) {
	n := 17
	// 1 - x vanishes at x = 1, a root of x^N - 1 in every field
	a := NewPoly(n)
	a[0], a[1] = 1, -1
	for _, m := range []int64{2, 3, 1 << 15} {
		if IsUnit(a, m) {
			t.Fatalf("1-x reported invertible mod %d", m)
		}
	}
	if IsUnit(NewPoly(n), 3) {
		t.Fatalf("zero reported invertible")
	}
	if _, ok := Invert(One(n), 6); ok {
		t.Fatalf("composite non power-of-two modulus must be refused")
	}
	// 3 is a unit mod 2^k but zero mod 3
	three := NewPoly(n)
	three[0] = 3
	if !IsUnit(three, 1<<15) || IsUnit(three, 3) {
		t.Fatalf("constant 3: wrong invertibility")
	}
}

func TestInvModPow2(t *testing.T) {
	for _, q := range []int64{1 << 15, 1 << 17, 1 << 20} {
		inv := invModPow2(3, q)
		if modFloor(3*inv, q) != 1 {
			t.Fatalf("3 * %d != 1 mod %d", inv, q)
		}
	}
}

func TestCongruentMod(t *testing.T) {
	a := Poly{1, -1, 4}
	b := Poly{4, 2, -2}
	if !a.CongruentMod(b, 3) {
		t.Fatalf("expected congruence mod 3")
	}
	if a.CongruentMod(b, 2) {
		t.Fatalf("unexpected congruence mod 2")
	}
	if a.CongruentMod(Poly{1}, 3) {
		t.Fatalf("length mismatch must not be congruent")
	}
}

func TestWithinBound(t *testing.T) {
	p := Poly{-5, 3, 5}
	if !withinBound(p, 5) || withinBound(p, 4) {
		t.Fatalf("withinBound wrong at the boundary")
	}
}

func BenchmarkConvolve743(b *testing.B) {
	rng := NewRNG(4)
	q := int64(1 << 17)
	x := randomPoly(rng, 743, 0, q-1)
	y := randomPoly(rng, 743, 0, q-1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Convolve(x, y, q)
	}
}
