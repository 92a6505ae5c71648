package ntru

// modFloor returns x mod m in [0, m) for m > 0.
func modFloor(x, m int64) int64 {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// centerCoeff maps x to its representative in [-m/2, m/2).
// For odd m the interval is [-(m-1)/2, (m-1)/2].
func centerCoeff(x, m int64) int64 {
	r := modFloor(x, m)
	if r >= (m+1)/2 {
		r -= m
	}
	return r
}

// ReduceCentered maps every coefficient into [-m/2, m/2).
func (p Poly) ReduceCentered(m int64) Poly {
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = centerCoeff(c, m)
	}
	return out
}

// ReduceMod maps every coefficient into [0, m).
func (p Poly) ReduceMod(m int64) Poly {
	out := make(Poly, len(p))
	for i, c := range p {
		out[i] = modFloor(c, m)
	}
	return out
}

// CongruentMod reports whether p and q agree coefficient-wise modulo m.
func (p Poly) CongruentMod(q Poly, m int64) bool {
	if len(p) != len(q) {
		return false
	}
	diff := 0
	for i := range p {
		if modFloor(p[i]-q[i], m) != 0 {
			diff |= 1
		}
	}
	return diff == 0
}
