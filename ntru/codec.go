package ntru

import (
	"crypto/subtle"
	"encoding/binary"
)

// Blob tags.
const (
	tagPrivateKey byte = 0x01
	tagPublicKey  byte = 0x02
	tagSignature  byte = 0x03
)

const (
	oidLen    = 3
	headerLen = 2 + oidLen

	kindPrivate   = "private key"
	kindPublic    = "public key"
	kindSignature = "signature"
)

func putHeader(dst []byte, tag byte, ps ParameterSet) []byte {
	dst = append(dst, tag, oidLen)
	return append(dst, ps.OID[:]...)
}

// readHeader validates the framing of a blob and resolves its parameter
// set. The total length must match the size expected for that set.
func readHeader(src []byte, tag byte, kind string, size func(ParameterSet) int) (ParameterSet, []byte, error) {
	if len(src) < headerLen {
		return ParameterSet{}, nil, decodeErr(kind, "truncated header (%d bytes)", len(src))
	}
	if src[0] != tag {
		return ParameterSet{}, nil, decodeErr(kind, "tag 0x%02x, want 0x%02x", src[0], tag)
	}
	if src[1] != oidLen {
		return ParameterSet{}, nil, decodeErr(kind, "oid length %d, want %d", src[1], oidLen)
	}
	ps, err := ParamsByOID(src[2:headerLen])
	if err != nil {
		return ParameterSet{}, nil, decodeErr(kind, "%v", err)
	}
	if want := size(ps); len(src) != want {
		return ParameterSet{}, nil, decodeErr(kind, "length %d, want %d for %s", len(src), want, ps.Name)
	}
	return ps, src[headerLen:], nil
}

// PeekParams returns the parameter set named by any blob header.
func PeekParams(blob []byte) (ParameterSet, error) {
	if len(blob) < headerLen || blob[1] != oidLen {
		return ParameterSet{}, decodeErr("blob", "bad header")
	}
	ps, err := ParamsByOID(blob[2:headerLen])
	if err != nil {
		return ParameterSet{}, decodeErr("blob", "%v", err)
	}
	return ps, nil
}

// packRing writes the coefficients of a mod q, qBits each, big-endian
// bit order; the last byte is zero padded.
func packRing(dst []byte, a Poly, q int64, qBits int) []byte {
	var acc uint64
	accLen := 0
	mask := uint64(q - 1)
	for _, c := range a {
		acc = (acc << uint(qBits)) | (uint64(c) & mask)
		accLen += qBits
		for accLen >= 8 {
			accLen -= 8
			dst = append(dst, byte(acc>>uint(accLen)))
		}
	}
	if accLen > 0 {
		dst = append(dst, byte(acc<<uint(8-accLen)))
	}
	return dst
}

// unpackRing is the inverse of packRing. src must be exactly
// ceil(n*qBits/8) bytes and unused trailing bits must be zero.
func unpackRing(src []byte, n, qBits int) (Poly, bool) {
	if len(src) != (n*qBits+7)/8 {
		return nil, false
	}
	out := NewPoly(n)
	var acc uint64
	accLen := 0
	mask := uint64(1)<<uint(qBits) - 1
	j := 0
	for _, b := range src {
		acc = (acc << 8) | uint64(b)
		accLen += 8
		for accLen >= qBits && j < n {
			accLen -= qBits
			out[j] = int64((acc >> uint(accLen)) & mask)
			j++
		}
	}
	if acc&(uint64(1)<<uint(accLen)-1) != 0 {
		return nil, false
	}
	return out, true
}

// packProductForm writes, per factor, the plus then minus indices as
// big-endian uint16.
func packProductForm(dst []byte, pf *ProductForm) []byte {
	var w [2]byte
	for _, f := range pf.Factors {
		for _, idx := range f.Plus {
			binary.BigEndian.PutUint16(w[:], idx)
			dst = append(dst, w[:]...)
		}
		for _, idx := range f.Minus {
			binary.BigEndian.PutUint16(w[:], idx)
			dst = append(dst, w[:]...)
		}
	}
	return dst
}

func unpackProductForm(src []byte, ps ParameterSet) (*ProductForm, error) {
	if len(src) != ps.ProductFormBytes() {
		return nil, decodeErr(kindPrivate, "product form length %d, want %d", len(src), ps.ProductFormBytes())
	}
	pf := &ProductForm{N: ps.N}
	off := 0
	read := func(k int) []uint16 {
		out := make([]uint16, k)
		for i := range out {
			out[i] = binary.BigEndian.Uint16(src[off:])
			off += 2
		}
		return out
	}
	for i, d := range []int{ps.D1, ps.D2, ps.D3} {
		pf.Factors[i].Plus = read(d)
		pf.Factors[i].Minus = read(d)
	}
	if err := pf.validate(ps); err != nil {
		return nil, decodeErr(kindPrivate, "%v", err)
	}
	return pf, nil
}

// packTrits stores coefficients in [0,3) five per byte, little-endian
// within the byte: b = t0 + 3*t1 + 9*t2 + 27*t3 + 81*t4.
func packTrits(dst []byte, a Poly) []byte {
	for i := 0; i < len(a); i += 5 {
		var b, w int64 = 0, 1
		for k := 0; k < 5 && i+k < len(a); k++ {
			b += modFloor(a[i+k], 3) * w
			w *= 3
		}
		dst = append(dst, byte(b))
	}
	return dst
}

func unpackTrits(src []byte, n int) (Poly, bool) {
	if len(src) != (n+4)/5 {
		return nil, false
	}
	out := NewPoly(n)
	for j, b := range src {
		v := int64(b)
		if v >= 243 {
			return nil, false
		}
		for k := 0; k < 5; k++ {
			i := 5*j + k
			t := v % 3
			v /= 3
			if i >= n {
				if t != 0 {
					return nil, false
				}
				continue
			}
			out[i] = t
		}
	}
	return out, true
}

// Bytes encodes the public key: header, packed h, digest.
func (pk *PublicKey) Bytes() []byte {
	ps := pk.Params
	out := make([]byte, 0, ps.PublicKeySize())
	out = putHeader(out, tagPublicKey, ps)
	out = packRing(out, pk.H, ps.Q, ps.QBits)
	return append(out, pk.Digest[:]...)
}

// ParsePublicKey decodes a public key blob and checks its digest.
func ParsePublicKey(blob []byte) (*PublicKey, error) {
	ps, body, err := readHeader(blob, tagPublicKey, kindPublic, ParameterSet.PublicKeySize)
	if err != nil {
		return nil, err
	}
	ringLen := ps.RingBytes()
	h, ok := unpackRing(body[:ringLen], ps.N, ps.QBits)
	if !ok {
		return nil, decodeErr(kindPublic, "non-zero padding bits")
	}
	pk := newPublicKey(ps, h.ReduceCentered(ps.Q))
	if subtle.ConstantTimeCompare(pk.Digest[:], body[ringLen:]) != 1 {
		return nil, decodeErr(kindPublic, "digest mismatch")
	}
	return pk, nil
}

// Bytes encodes the private key: header, F, g, g^-1 mod p.
func (sk *PrivateKey) Bytes() []byte {
	ps := sk.Params
	out := make([]byte, 0, ps.PrivateKeySize())
	out = putHeader(out, tagPrivateKey, ps)
	return append(out, sk.payload()...)
}

func (sk *PrivateKey) payload() []byte {
	ps := sk.Params
	out := make([]byte, 0, ps.PrivateKeySize()-headerLen)
	out = packProductForm(out, sk.F)
	out = packProductForm(out, sk.G)
	return packTrits(out, sk.GInvP)
}

// ParsePrivateKey decodes a private key blob. It checks that g^-1 mod p
// really inverts g.
func ParsePrivateKey(blob []byte) (*PrivateKey, error) {
	ps, body, err := readHeader(blob, tagPrivateKey, kindPrivate, ParameterSet.PrivateKeySize)
	if err != nil {
		return nil, err
	}
	pfLen := ps.ProductFormBytes()
	F, err := unpackProductForm(body[:pfLen], ps)
	if err != nil {
		return nil, err
	}
	G, err := unpackProductForm(body[pfLen:2*pfLen], ps)
	if err != nil {
		return nil, err
	}
	gInv, ok := unpackTrits(body[2*pfLen:], ps.N)
	if !ok {
		return nil, decodeErr(kindPrivate, "invalid trit packing")
	}
	if !Convolve(G.Dense(), gInv, ps.P).Equal(One(ps.N)) {
		return nil, decodeErr(kindPrivate, "stored inverse does not invert g mod p")
	}
	return newPrivateKey(ps, F, G, gInv), nil
}

// Bytes encodes the signature: header, packed s.
func (sig *Signature) Bytes() []byte {
	ps := sig.Params
	out := make([]byte, 0, ps.SignatureSize())
	out = putHeader(out, tagSignature, ps)
	return packRing(out, sig.S, ps.Q, ps.QBits)
}

// ParseSignature decodes a signature blob. Coefficients come back centered.
func ParseSignature(blob []byte) (*Signature, error) {
	ps, body, err := readHeader(blob, tagSignature, kindSignature, ParameterSet.SignatureSize)
	if err != nil {
		return nil, err
	}
	s, ok := unpackRing(body, ps.N, ps.QBits)
	if !ok {
		return nil, decodeErr(kindSignature, "non-zero padding bits")
	}
	return &Signature{Params: ps, S: s.ReduceCentered(ps.Q)}, nil
}
