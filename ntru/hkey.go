package ntru

import (
	"fmt"
	"os"
)

// invModPow2 returns a^-1 mod m for odd a and m a power of two.
func invModPow2(a, m int64) int64 {
	x := int64(1)
	for i := 0; i < 6; i++ {
		x = modFloor(x*(2-modFloor(a*x, m)), m)
	}
	return x
}

// PublicKeyH computes h = g * (p*F)^-1 mod q, centered, from F^-1 mod q.
func PublicKeyH(fInvQ Poly, G *ProductForm, ps ParameterSet) (Poly, error) {
	dbg(os.Stderr, "[H] PublicKeyH begin N=%d q=%d\n", ps.N, ps.Q)
	if len(fInvQ) != ps.N || G == nil || G.N != ps.N {
		return nil, fmt.Errorf("PublicKeyH: dimension mismatch for %s", ps.Name)
	}
	pInv := invModPow2(ps.P, ps.Q)
	gf := G.Mul(fInvQ)
	for i := range gf {
		gf[i] = modFloor(modFloor(gf[i], ps.Q)*pInv, ps.Q)
	}
	dbg(os.Stderr, "[H] PublicKeyH done\n")
	return gf.ReduceCentered(ps.Q), nil
}

// CheckPublicKey verifies h * p*F = g (mod q), i.e. that pk belongs to sk.
// It costs one product-form multiplication.
func CheckPublicKey(sk *PrivateKey, pk *PublicKey) bool {
	if sk == nil || pk == nil || sk.Params.OID != pk.Params.OID {
		return false
	}
	ps := sk.Params
	hf := sk.F.Mul(pk.H).MulConst(ps.P)
	return hf.CongruentMod(sk.G.Dense(), ps.Q)
}
