package ntru

// PrivateKey owns the secret pair in product form. The signing secret is
// f = p*F; g^-1 mod p is kept for the blinding correction.
type PrivateKey struct {
	Params ParameterSet
	F      *ProductForm
	G      *ProductForm
	GInvP  Poly // coefficients in [0, p)
	digest []byte
}

// PublicKey holds h = g * f^-1 mod q (centered) and the digest of its
// packed form, which domain-separates every message hash.
type PublicKey struct {
	Params ParameterSet
	H      Poly
	Digest [DigestSize]byte
}

// Signature carries s only; the verifier recomputes t = h*s.
type Signature struct {
	Params ParameterSet
	S      Poly
}

func newPublicKey(ps ParameterSet, h Poly) *PublicKey {
	pk := &PublicKey{Params: ps, H: h}
	packed := packRing(nil, h, ps.Q, ps.QBits)
	copy(pk.Digest[:], shakeWithDomain(domainPublicDigest, DigestSize, ps.OID[:], packed))
	return pk
}

func newPrivateKey(ps ParameterSet, F, G *ProductForm, gInvP Poly) *PrivateKey {
	sk := &PrivateKey{Params: ps, F: F, G: G, GInvP: gInvP}
	sk.digest = shakeWithDomain(domainSecretDigest, DigestSize, ps.OID[:], sk.payload())
	return sk
}

// Destroy zeroes the secret material. The key is unusable afterwards.
func (sk *PrivateKey) Destroy() {
	if sk == nil {
		return
	}
	if sk.F != nil {
		sk.F.wipe()
	}
	if sk.G != nil {
		sk.G.wipe()
	}
	sk.GInvP.wipe()
	for i := range sk.digest {
		sk.digest[i] = 0
	}
	sk.digest = nil
}

// Equal reports whether two public keys encode the same element.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.Params.OID == other.Params.OID && pk.H.Equal(other.H) && pk.Digest == other.Digest
}

// ComputeT returns t = h*s mod q, centered. Signer and verifier both go
// through this function so they share one reduction convention. It returns
// nil when s does not have N coefficients.
func (pk *PublicKey) ComputeT(s Poly) Poly {
	if len(s) != pk.Params.N || len(pk.H) != pk.Params.N {
		return nil
	}
	return convolveCentered(pk.H, s, pk.Params.Q)
}
