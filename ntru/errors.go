package ntru

import "fmt"

// KeyGenerationError reports that no invertible secret was found within
// the trial cap. It points at a defective parameter set or entropy source.
type KeyGenerationError struct {
	Params string
	Trials int
	Err    error
}

func (e *KeyGenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ntru: key generation for %s failed: %v", e.Params, e.Err)
	}
	return fmt.Sprintf("ntru: key generation for %s found no invertible secret in %d trials", e.Params, e.Trials)
}

func (e *KeyGenerationError) Unwrap() error { return e.Err }

// SigningError reports that no candidate passed the bound checks within the
// attempt cap, or that the inputs cannot be used to sign.
type SigningError struct {
	Params   string
	Attempts int
	Reason   string
	Err      error
}

func (e *SigningError) Error() string {
	msg := fmt.Sprintf("ntru: signing under %s failed", e.Params)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Attempts > 0 {
		msg += fmt.Sprintf(" after %d attempts", e.Attempts)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SigningError) Unwrap() error { return e.Err }

// DecodingError reports a malformed key or signature blob.
type DecodingError struct {
	Kind   string // "private key", "public key" or "signature"
	Reason string
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("ntru: malformed %s: %s", e.Kind, e.Reason)
}

// ParameterMismatchError reports objects bound to different parameter sets.
type ParameterMismatchError struct {
	Want string
	Got  string
}

func (e *ParameterMismatchError) Error() string {
	return fmt.Sprintf("ntru: parameter set mismatch: want %s, got %s", e.Want, e.Got)
}

func decodeErr(kind, format string, a ...any) error {
	return &DecodingError{Kind: kind, Reason: fmt.Sprintf(format, a...)}
}

func checkSameParams(want, got ParameterSet) error {
	if want.OID != got.OID {
		return &ParameterMismatchError{Want: want.Name, Got: got.Name}
	}
	return nil
}
