package keys

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDir is where the CLIs keep key and signature documents.
const DefaultDir = "ntru_keys"

// PrivateKey is the JSON document wrapping a private key blob.
type PrivateKey struct {
	Version  string `json:"version"`
	ParamSet string `json:"param_set"`
	OID      string `json:"oid"`
	N        int    `json:"N"`
	Q        string `json:"Q"`
	Blob     string `json:"blob"`
	Policy   *struct {
		TrialsUsed int    `json:"trials_used"`
		SeedHex    string `json:"seed,omitempty"`
	} `json:"policy,omitempty"`
}

// SetBlob stores the raw blob base64 encoded.
func (sk *PrivateKey) SetBlob(b []byte) { sk.Blob = base64.StdEncoding.EncodeToString(b) }

// RawBlob decodes the stored blob.
func (sk *PrivateKey) RawBlob() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(sk.Blob)
	if err != nil {
		return nil, fmt.Errorf("private key blob: %w", err)
	}
	return b, nil
}

// SavePrivate writes the private key to dir/private.json with owner-only
// permissions.
func SavePrivate(dir string, sk *PrivateKey) error {
	if sk == nil {
		return nil
	}
	return writeJSON(dir, "private.json", 0o600, sk)
}

// LoadPrivate reads the private key from dir/private.json.
func LoadPrivate(dir string) (*PrivateKey, error) {
	var sk PrivateKey
	if err := readJSON(dir, "private.json", &sk); err != nil {
		return nil, err
	}
	return &sk, nil
}

func writeJSON(dir, name string, perm os.FileMode, v any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func readJSON(dir, name string, v any) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
