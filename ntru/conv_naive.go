package ntru

// Convolve computes the cyclic product a*b in Z_m[x]/(x^N - 1) with
// coefficients in [0, m). Power-of-two moduli up to 2^32 accumulate in
// wrapping uint32 arithmetic, which is exact modulo m.
func Convolve(a, b Poly, m int64) Poly {
	n := len(a)
	if m > 0 && m <= 1<<32 && m&(m-1) == 0 {
		return convolvePow2(a, b, m)
	}
	bm := b.ReduceMod(m)
	// accumulate exactly when n*(m-1)^2 cannot overflow, reduce once at the end
	lazy := m < 1<<20 && int64(n)*(m-1)*(m-1) < 1<<62
	res := NewPoly(n)
	for i, ai := range a {
		ai = modFloor(ai, m)
		if ai == 0 {
			continue
		}
		k := i
		for _, bj := range bm {
			if lazy {
				res[k] += ai * bj
			} else {
				res[k] = (res[k] + ai*bj) % m
			}
			k++
			if k == n {
				k = 0
			}
		}
	}
	if lazy {
		for i := range res {
			res[i] %= m
		}
	}
	return res
}

func convolvePow2(a, b Poly, m int64) Poly {
	n := len(a)
	bu := make([]uint32, n)
	for j, bj := range b {
		bu[j] = uint32(bj)
	}
	acc := make([]uint32, n)
	for i, ai := range a {
		au := uint32(ai)
		if au == 0 {
			continue
		}
		// acc[i+j mod n] += a_i * b_j, split to avoid the modulo in the loop
		hi := acc[i:]
		for j := range hi {
			hi[j] += au * bu[j]
		}
		lo := acc[:i]
		tail := bu[n-i:]
		for j := range lo {
			lo[j] += au * tail[j]
		}
	}
	mask := uint32(m - 1)
	res := NewPoly(n)
	for i, c := range acc {
		res[i] = int64(c & mask)
	}
	return res
}

// convolveCentered returns Convolve(a, b, m) mapped into [-m/2, m/2).
func convolveCentered(a, b Poly, m int64) Poly {
	return Convolve(a, b, m).ReduceCentered(m)
}
