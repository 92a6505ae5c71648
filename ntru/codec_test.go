package ntru

import (
	"bytes"
	"errors"
	"testing"
)

func TestPackRingRoundTrip(t *testing.T) {
	rng := NewRNG(11)
	for _, ps := range AllParams() {
		h := randomPoly(rng, ps.N, -ps.Q/2, ps.Q/2-1)
		packed := packRing(nil, h, ps.Q, ps.QBits)
		if len(packed) != ps.RingBytes() {
			t.Fatalf("%s: packed %d bytes, want %d", ps.Name, len(packed), ps.RingBytes())
		}
		got, ok := unpackRing(packed, ps.N, ps.QBits)
		if !ok {
			t.Fatalf("%s: unpackRing failed", ps.Name)
		}
		if !got.ReduceCentered(ps.Q).Equal(h) {
			t.Fatalf("%s: ring round trip mismatch", ps.Name)
		}
	}
}

func TestUnpackRingRejectsPadding(t *testing.T) {
	ps := Preset20151024_401() // 401*15 bits leaves 1 padding bit
	packed := packRing(nil, NewPoly(ps.N), ps.Q, ps.QBits)
	packed[len(packed)-1] |= 0x01
	if _, ok := unpackRing(packed, ps.N, ps.QBits); ok {
		t.Fatalf("non-zero padding accepted")
	}
	if _, ok := unpackRing(packed[:len(packed)-1], ps.N, ps.QBits); ok {
		t.Fatalf("truncated input accepted")
	}
}

func TestTritsRoundTrip(t *testing.T) {
	rng := NewRNG(12)
	for _, n := range []int{1, 5, 401, 907} {
		a := randomPoly(rng, n, 0, 2)
		packed := packTrits(nil, a)
		if len(packed) != (n+4)/5 {
			t.Fatalf("n=%d: %d bytes", n, len(packed))
		}
		got, ok := unpackTrits(packed, n)
		if !ok || !got.Equal(a) {
			t.Fatalf("n=%d: trit round trip mismatch", n)
		}
	}
	if _, ok := unpackTrits([]byte{243}, 5); ok {
		t.Fatalf("byte 243 accepted")
	}
	// n = 401 leaves four unused trits in the last byte
	if _, ok := unpackTrits(append(make([]byte, 80), 3), 401); ok {
		t.Fatalf("non-zero unused trit accepted")
	}
}

func TestKeyAndSignatureCodecIdempotent(t *testing.T) {
	for _, ps := range AllParams() {
		sk, pk := cachedKey(t, ps)

		skBlob := sk.Bytes()
		if len(skBlob) != ps.PrivateKeySize() {
			t.Fatalf("%s: private blob %d bytes, want %d", ps.Name, len(skBlob), ps.PrivateKeySize())
		}
		sk2, err := ParsePrivateKey(skBlob)
		if err != nil {
			t.Fatalf("%s: ParsePrivateKey: %v", ps.Name, err)
		}
		if !bytes.Equal(sk2.Bytes(), skBlob) || !sk2.GInvP.Equal(sk.GInvP) || !bytes.Equal(sk2.digest, sk.digest) {
			t.Fatalf("%s: private key round trip mismatch", ps.Name)
		}

		pkBlob := pk.Bytes()
		pk2, err := ParsePublicKey(pkBlob)
		if err != nil {
			t.Fatalf("%s: ParsePublicKey: %v", ps.Name, err)
		}
		if !pk2.Equal(pk) || !bytes.Equal(pk2.Bytes(), pkBlob) {
			t.Fatalf("%s: public key round trip mismatch", ps.Name)
		}

		sig, err := Sign(sk, pk, []byte("codec"))
		if err != nil {
			t.Fatalf("%s: Sign: %v", ps.Name, err)
		}
		sigBlob := sig.Bytes()
		sig2, err := ParseSignature(sigBlob)
		if err != nil {
			t.Fatalf("%s: ParseSignature: %v", ps.Name, err)
		}
		if !sig2.S.Equal(sig.S) || !bytes.Equal(sig2.Bytes(), sigBlob) {
			t.Fatalf("%s: signature round trip mismatch", ps.Name)
		}
	}
}

func expectDecodingError(t *testing.T, what string, err error) {
	t.Helper()
	var de *DecodingError
	if !errors.As(err, &de) {
		t.Fatalf("%s: expected *DecodingError, got %v", what, err)
	}
}

func TestDecodeRejectsFraming(t *testing.T) {
	ps := Preset20151024_401()
	sk, pk := cachedKey(t, ps)
	pkBlob := pk.Bytes()
	skBlob := sk.Bytes()

	_, err := ParsePublicKey(pkBlob[:3])
	expectDecodingError(t, "short header", err)
	_, err = ParsePublicKey(pkBlob[:len(pkBlob)-1])
	expectDecodingError(t, "truncated", err)
	_, err = ParsePublicKey(append(append([]byte(nil), pkBlob...), 0))
	expectDecodingError(t, "trailing byte", err)

	wrongTag := append([]byte(nil), pkBlob...)
	wrongTag[0] = tagSignature
	_, err = ParsePublicKey(wrongTag)
	expectDecodingError(t, "tag", err)

	wrongLen := append([]byte(nil), pkBlob...)
	wrongLen[1] = 4
	_, err = ParsePublicKey(wrongLen)
	expectDecodingError(t, "oid length", err)

	unknown := append([]byte(nil), pkBlob...)
	unknown[4] = 0x00
	_, err = ParsePublicKey(unknown)
	expectDecodingError(t, "unknown oid", err)

	digest := append([]byte(nil), pkBlob...)
	digest[len(digest)-1] ^= 0x80
	_, err = ParsePublicKey(digest)
	expectDecodingError(t, "digest", err)

	// a private key blob is not a public key
	_, err = ParsePublicKey(skBlob)
	expectDecodingError(t, "kind", err)

	// corrupt an index of the first factor beyond N
	badIdx := append([]byte(nil), skBlob...)
	badIdx[headerLen] = 0xff
	_, err = ParsePrivateKey(badIdx)
	expectDecodingError(t, "index", err)

	// g^-1 mod p must invert g
	badInv := append([]byte(nil), skBlob...)
	badInv[len(badInv)-3] ^= 0x01
	_, err = ParsePrivateKey(badInv)
	expectDecodingError(t, "inverse", err)
}

func TestPeekParams(t *testing.T) {
	ps := Preset20140508_593()
	_, pk := cachedKey(t, ps)
	got, err := PeekParams(pk.Bytes())
	if err != nil || got.Name != ps.Name {
		t.Fatalf("PeekParams: %v %v", got.Name, err)
	}
	if _, err := PeekParams([]byte{1}); err == nil {
		t.Fatalf("expected error for short blob")
	}
}
