package keys

import (
	"encoding/base64"
	"fmt"
)

// PublicKey is the JSON document wrapping a public key blob. HCoeffs is an
// informational copy of h (centered); the blob is authoritative.
type PublicKey struct {
	Version  string  `json:"version"`
	ParamSet string  `json:"param_set"`
	OID      string  `json:"oid"`
	N        int     `json:"N"`
	Q        string  `json:"Q"`
	Blob     string  `json:"blob"`
	HCoeffs  []int64 `json:"h_coeffs,omitempty"`
}

// SetBlob stores the raw blob base64 encoded.
func (pk *PublicKey) SetBlob(b []byte) { pk.Blob = base64.StdEncoding.EncodeToString(b) }

// RawBlob decodes the stored blob.
func (pk *PublicKey) RawBlob() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(pk.Blob)
	if err != nil {
		return nil, fmt.Errorf("public key blob: %w", err)
	}
	return b, nil
}

// SavePublic writes the public key to dir/public.json.
func SavePublic(dir string, pk *PublicKey) error {
	if pk == nil {
		return nil
	}
	return writeJSON(dir, "public.json", 0o644, pk)
}

// LoadPublic reads the public key from dir/public.json.
func LoadPublic(dir string) (*PublicKey, error) {
	var pk PublicKey
	if err := readJSON(dir, "public.json", &pk); err != nil {
		return nil, err
	}
	return &pk, nil
}
