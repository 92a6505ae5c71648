package ntru

// VerifySignature checks sig on msg under pk. It returns false on every
// failure, including a parameter set mismatch.
func VerifySignature(pk *PublicKey, msg []byte, sig *Signature) bool {
	if pk == nil || sig == nil || pk.Params.OID != sig.Params.OID {
		return false
	}
	ps := pk.Params
	if len(sig.S) != ps.N || len(pk.H) != ps.N {
		return false
	}
	sp, tp := hashToTarget(pk.Digest[:], msg, ps.N)
	s := sig.S.ReduceCentered(ps.Q)
	t := pk.ComputeT(s)

	ok := s.CongruentMod(sp, ps.P)
	ok = t.CongruentMod(tp, ps.P) && ok
	ok = withinBound(s, ps.NormBoundS) && ok
	ok = withinBound(t, ps.NormBoundT) && ok
	return ok
}

// CheckSignature decodes both blobs and verifies. Malformed blobs yield a
// *DecodingError and blobs from different parameter sets a
// *ParameterMismatchError; a well-formed but invalid signature yields
// (false, nil).
func CheckSignature(sigBlob, pubBlob, msg []byte) (bool, error) {
	pk, err := ParsePublicKey(pubBlob)
	if err != nil {
		return false, err
	}
	if sps, err := PeekParams(sigBlob); err == nil {
		if err := checkSameParams(pk.Params, sps); err != nil {
			return false, err
		}
	}
	sig, err := ParseSignature(sigBlob)
	if err != nil {
		return false, err
	}
	return VerifySignature(pk, msg, sig), nil
}

// Verify reports whether sigBlob is a valid signature of msg under pubBlob.
// It never errors; any malformed input is simply rejected.
func Verify(sigBlob, pubBlob, msg []byte) bool {
	ok, err := CheckSignature(sigBlob, pubBlob, msg)
	return err == nil && ok
}

// SignatureNorms returns ||s||inf and ||h*s||inf, for diagnostics. Key and
// signature from different parameter sets yield a *ParameterMismatchError.
func SignatureNorms(pk *PublicKey, sig *Signature) (sInf, tInf int64, err error) {
	if pk == nil || sig == nil {
		return 0, 0, &DecodingError{Kind: kindSignature, Reason: "missing key or signature"}
	}
	if err := checkSameParams(pk.Params, sig.Params); err != nil {
		return 0, 0, err
	}
	if len(sig.S) != pk.Params.N || len(pk.H) != pk.Params.N {
		return 0, 0, decodeErr(kindSignature, "length %d, want %d", len(sig.S), pk.Params.N)
	}
	s := sig.S.ReduceCentered(pk.Params.Q)
	return s.NormInf(), pk.ComputeT(s).NormInf(), nil
}
