package ntru

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ParameterSet fixes the ring Z_q[x]/(x^N - 1), the message-space prime p,
// the rejection bounds and the product-form weights shared by the signer
// and the verifier. Values are copied, never mutated.
type ParameterSet struct {
	Name  string
	OID   [3]byte
	NBits int // bits needed to hold an index in [0, N)
	QBits int // log2(Q)
	N     int
	P     int64
	Q     int64
	// Bs bounds ||a*f||, Bt bounds ||a*g|| for the blinding correction a.
	Bs         int64
	Bt         int64
	NormBoundS int64 // Q/2 - Bs
	NormBoundT int64 // Q/2 - Bt
	D1, D2, D3 int
	PaddedN    int
}

// Validate checks the internal consistency of a parameter set.
func (ps ParameterSet) Validate() error {
	if ps.N <= 1 {
		return errors.New("N must be > 1")
	}
	if ps.NBits <= 0 || ps.NBits > 16 || ps.N > 1<<ps.NBits {
		return fmt.Errorf("N=%d does not fit in %d index bits", ps.N, ps.NBits)
	}
	if ps.PaddedN < ps.N {
		return fmt.Errorf("padded N %d smaller than N %d", ps.PaddedN, ps.N)
	}
	if ps.P != 3 {
		return fmt.Errorf("p must be 3, got %d", ps.P)
	}
	if ps.QBits <= 1 || ps.QBits > 31 || ps.Q != int64(1)<<ps.QBits {
		return fmt.Errorf("Q=%d is not 2^%d", ps.Q, ps.QBits)
	}
	if ps.D1 <= 0 || ps.D2 <= 0 || ps.D3 <= 0 {
		return errors.New("product-form weights must be positive")
	}
	for _, d := range []int{ps.D1, ps.D2, ps.D3} {
		if 2*d > ps.N {
			return fmt.Errorf("factor weight %d too large for N=%d", d, ps.N)
		}
	}
	if 2*(ps.D1+ps.D2+ps.D3) > ps.N {
		return fmt.Errorf("2*(d1+d2+d3)=%d exceeds N=%d", 2*(ps.D1+ps.D2+ps.D3), ps.N)
	}
	if ps.Bs <= 0 || ps.Bt <= 0 {
		return errors.New("norm bounds must be positive")
	}
	if ps.NormBoundS != ps.Q/2-ps.Bs || ps.NormBoundT != ps.Q/2-ps.Bt {
		return errors.New("norm bounds must equal q/2 - B")
	}
	if ps.NormBoundS <= 0 || ps.NormBoundT <= 0 {
		return errors.New("bounds leave no room below q/2")
	}
	return nil
}

// OIDString renders the object identifier as lowercase hex.
func (ps ParameterSet) OIDString() string { return hex.EncodeToString(ps.OID[:]) }

func (ps ParameterSet) String() string { return ps.Name }

// Weight returns d1+d2+d3.
func (ps ParameterSet) Weight() int { return ps.D1 + ps.D2 + ps.D3 }

// ProductFormBytes is the packed size of one product-form polynomial:
// 2*(d1+d2+d3) uint16 indices.
func (ps ParameterSet) ProductFormBytes() int { return 4 * ps.Weight() }

// RingBytes is the packed size of a dense element mod q.
func (ps ParameterSet) RingBytes() int { return (ps.N*ps.QBits + 7) / 8 }

// TritBytes is the packed size of a dense element mod 3 (five trits per byte).
func (ps ParameterSet) TritBytes() int { return (ps.N + 4) / 5 }

// PublicKeySize returns the encoded public key length in bytes.
func (ps ParameterSet) PublicKeySize() int { return headerLen + ps.RingBytes() + DigestSize }

// PrivateKeySize returns the encoded private key length in bytes.
func (ps ParameterSet) PrivateKeySize() int {
	return headerLen + 2*ps.ProductFormBytes() + ps.TritBytes()
}

// SignatureSize returns the encoded signature length in bytes.
func (ps ParameterSet) SignatureSize() int { return headerLen + ps.RingBytes() }

// AllParams returns every supported parameter set in table order.
func AllParams() []ParameterSet {
	out := make([]ParameterSet, len(presets))
	copy(out, presets)
	return out
}

// ParamsByOID looks a parameter set up by its 3-byte object identifier.
func ParamsByOID(oid []byte) (ParameterSet, error) {
	if len(oid) != len(ParameterSet{}.OID) {
		return ParameterSet{}, fmt.Errorf("oid length %d, want 3", len(oid))
	}
	for _, ps := range presets {
		if ps.OID[0] == oid[0] && ps.OID[1] == oid[1] && ps.OID[2] == oid[2] {
			return ps, nil
		}
	}
	return ParameterSet{}, fmt.Errorf("unknown parameter set oid %x", oid)
}

// ParamsByName accepts either the set name (case-insensitive) or its hex OID.
func ParamsByName(name string) (ParameterSet, error) {
	name = strings.TrimSpace(name)
	for _, ps := range presets {
		if strings.EqualFold(ps.Name, name) {
			return ps, nil
		}
	}
	if raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(name), "0x")); err == nil && len(raw) == 3 {
		return ParamsByOID(raw)
	}
	return ParameterSet{}, fmt.Errorf("unknown parameter set %q", name)
}
