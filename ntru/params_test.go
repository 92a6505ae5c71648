package ntru

import (
	"strings"
	"testing"
)

func TestPresetsValidate(t *testing.T) {
	all := AllParams()
	if len(all) != 9 {
		t.Fatalf("got %d parameter sets, want 9", len(all))
	}
	seen := make(map[[3]byte]bool)
	for _, ps := range all {
		if err := ps.Validate(); err != nil {
			t.Fatalf("%s: %v", ps.Name, err)
		}
		if seen[ps.OID] {
			t.Fatalf("%s: duplicate oid %x", ps.Name, ps.OID)
		}
		seen[ps.OID] = true
	}
}

// Sizes follow the reference wrapper for the public key; the private key
// uses 16-bit index slots for the two product forms.
func TestBlobSizes(t *testing.T) {
	cases := []struct {
		ps             ParameterSet
		pub, priv, sig int
	}{
		{Preset20140508_401(), 5 + 903 + 64, 5 + 2*88 + 81, 5 + 903},
		{Preset20151024_401(), 5 + 752 + 64, 5 + 2*88 + 81, 5 + 752},
		{Preset20151024_907(), 5 + 1928 + 64, 5 + 2*128 + 182, 5 + 1928},
		{Preset20140508_743(), 5 + 1858 + 64, 5 + 2*148 + 149, 5 + 1858},
	}
	for _, c := range cases {
		if got := c.ps.PublicKeySize(); got != c.pub {
			t.Fatalf("%s public key size %d want %d", c.ps.Name, got, c.pub)
		}
		if got := c.ps.PrivateKeySize(); got != c.priv {
			t.Fatalf("%s private key size %d want %d", c.ps.Name, got, c.priv)
		}
		if got := c.ps.SignatureSize(); got != c.sig {
			t.Fatalf("%s signature size %d want %d", c.ps.Name, got, c.sig)
		}
	}
}

func TestNormBounds(t *testing.T) {
	ps := Preset20151024_743()
	if ps.Q != 131072 || ps.NormBoundS != 65536-186 || ps.NormBoundT != 65536-62 {
		t.Fatalf("unexpected bounds: %+v", ps)
	}
}

func TestParamsLookup(t *testing.T) {
	for _, ps := range AllParams() {
		byOID, err := ParamsByOID(ps.OID[:])
		if err != nil || byOID.Name != ps.Name {
			t.Fatalf("ParamsByOID(%x): %v %v", ps.OID, byOID.Name, err)
		}
		byName, err := ParamsByName(strings.ToUpper(ps.Name))
		if err != nil || byName.OID != ps.OID {
			t.Fatalf("ParamsByName(%s): %v", ps.Name, err)
		}
		byHex, err := ParamsByName("0x" + ps.OIDString())
		if err != nil || byHex.OID != ps.OID {
			t.Fatalf("ParamsByName(hex %s): %v", ps.OIDString(), err)
		}
	}
	if _, err := ParamsByOID([]byte{0, 0, 1}); err == nil {
		t.Fatalf("expected error for unknown oid")
	}
	if _, err := ParamsByOID([]byte{0xff, 0xff}); err == nil {
		t.Fatalf("expected error for short oid")
	}
	if _, err := ParamsByName("xxx-20151024-999"); err == nil {
		t.Fatalf("expected error for unknown name")
	}
}

func TestAllParamsIsACopy(t *testing.T) {
	all := AllParams()
	all[0].N = 3
	if Preset20140508_401().N != 401 {
		t.Fatalf("AllParams exposed the internal table")
	}
}

func TestValidateRejects(t *testing.T) {
	base := Preset20151024_401()
	mutations := map[string]func(*ParameterSet){
		"q not power of two": func(ps *ParameterSet) { ps.Q++ },
		"p":                  func(ps *ParameterSet) { ps.P = 5 },
		"weights":            func(ps *ParameterSet) { ps.D1 = 201 },
		"norm bound":         func(ps *ParameterSet) { ps.NormBoundS++ },
		"padded":             func(ps *ParameterSet) { ps.PaddedN = ps.N - 1 },
		"index bits":         func(ps *ParameterSet) { ps.NBits = 8 },
	}
	for name, mutate := range mutations {
		ps := base
		mutate(&ps)
		if err := ps.Validate(); err == nil {
			t.Fatalf("%s: Validate accepted %+v", name, ps)
		}
	}
}
