package keys

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ntrumls-signature/measure"
)

// Signature holds the signature bundle persisted to JSON.
type Signature struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	ParamSet  string `json:"param_set"`
	OID       string `json:"oid"`
	Message   string `json:"message"`
	Blob      string `json:"blob"`
	Norm      struct {
		SInf   int64 `json:"s_inf"`
		TInf   int64 `json:"t_inf"`
		BoundS int64 `json:"bound_s"`
		BoundT int64 `json:"bound_t"`
		Passed bool  `json:"passed"`
	} `json:"norm"`
	TrialsUsed int  `json:"trials_used"`
	Rejected   bool `json:"rejected"`
	MaxTrials  int  `json:"max_trials"`
	Hedged     bool `json:"hedged,omitempty"`
}

// NewSignature creates a base signature with timestamp.
func NewSignature() *Signature {
	s := &Signature{Version: "ntru-signature-v1"}
	s.Timestamp = time.Now().UTC().Format(time.RFC3339)
	return s
}

// SetBlob stores the raw signature blob.
func (sig *Signature) SetBlob(b []byte) { sig.Blob = EncodeSeed(b) }

// RawBlob decodes the stored signature blob.
func (sig *Signature) RawBlob() ([]byte, error) {
	b, err := DecodeSeed(sig.Blob)
	if err != nil {
		return nil, fmt.Errorf("signature blob: %w", err)
	}
	return b, nil
}

// SetMessage stores the signed message.
func (sig *Signature) SetMessage(m []byte) { sig.Message = EncodeSeed(m) }

// RawMessage decodes the signed message.
func (sig *Signature) RawMessage() ([]byte, error) {
	m, err := DecodeSeed(sig.Message)
	if err != nil {
		return nil, fmt.Errorf("signature message: %w", err)
	}
	return m, nil
}

// Save writes signature to dir/signature.json.
func Save(dir string, sig *Signature) error {
	if sig == nil {
		return nil
	}
	if err := writeJSON(dir, "signature.json", 0o644, sig); err != nil {
		return err
	}
	if measure.Enabled {
		if info, err := os.Stat(filepath.Join(dir, "signature.json")); err == nil {
			measure.Global.Add("ntru/signature/json_file", info.Size())
		}
	}
	return nil
}

// Load reads signature from dir/signature.json.
func Load(dir string) (*Signature, error) {
	var sig Signature
	if err := readJSON(dir, "signature.json", &sig); err != nil {
		return nil, err
	}
	return &sig, nil
}

// DecodeSeed converts base64 seed string to bytes.
func DecodeSeed(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}

// EncodeSeed returns base64 representation of seed bytes.
func EncodeSeed(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
