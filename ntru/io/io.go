// Package io loads the runtime configuration of the signing tools.
package io

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ntru "ntrumls-signature/ntru"
)

// DefaultPath is the configuration file consulted by the CLIs.
const DefaultPath = "Parameters/Parameters.json"

// SystemParams is the resolved runtime configuration.
type SystemParams struct {
	Set             ntru.ParameterSet
	MaxSignAttempts int
	MaxKeygenTrials int
	KeyDir          string
}

// LoadParams reads a configuration file. param_set selects the parameter
// set by name or hex OID. Optional N and Q must agree with the set unless
// allowMismatch is true, in which case the set wins.
func LoadParams(path string, allowMismatch bool) (SystemParams, error) {
	var p SystemParams
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	var rawAny map[string]any
	if err := json.Unmarshal(data, &rawAny); err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	name, _ := lookup(rawAny, "param_set", "paramSet", "oid").(string)
	if name == "" {
		return p, fmt.Errorf("missing param_set in %s", path)
	}
	p.Set, err = ntru.ParamsByName(name)
	if err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	if v := lookup(rawAny, "N", "n"); v != nil {
		n, err := toInt64(v)
		if err != nil {
			return p, fmt.Errorf("%s: N: %w", path, err)
		}
		if n != int64(p.Set.N) && !allowMismatch {
			return p, &ntru.ParameterMismatchError{Want: p.Set.Name, Got: fmt.Sprintf("N=%d", n)}
		}
	}
	if v := lookup(rawAny, "Q", "q"); v != nil {
		q, err := toInt64(v)
		if err != nil {
			return p, fmt.Errorf("%s: Q: %w", path, err)
		}
		if q != p.Set.Q && !allowMismatch {
			return p, &ntru.ParameterMismatchError{Want: p.Set.Name, Got: fmt.Sprintf("Q=%d", q)}
		}
	}
	if v := lookup(rawAny, "max_sign_attempts"); v != nil {
		n, err := toInt64(v)
		if err != nil || n < 0 {
			return p, fmt.Errorf("%s: invalid max_sign_attempts", path)
		}
		p.MaxSignAttempts = int(n)
	}
	if v := lookup(rawAny, "max_keygen_trials"); v != nil {
		n, err := toInt64(v)
		if err != nil || n < 0 {
			return p, fmt.Errorf("%s: invalid max_keygen_trials", path)
		}
		p.MaxKeygenTrials = int(n)
	}
	if dir, ok := lookup(rawAny, "key_dir").(string); ok {
		p.KeyDir = dir
	}
	return p, nil
}

// LoadParamsSearch tries path, then the same path one directory up, so
// that tools and tests run from subdirectories find the shared file.
func LoadParamsSearch(path string, allowMismatch bool) (SystemParams, error) {
	p, err := LoadParams(path, allowMismatch)
	if err == nil || filepath.IsAbs(path) || !os.IsNotExist(err) {
		return p, err
	}
	if p2, err2 := LoadParams(filepath.Join("..", path), allowMismatch); err2 == nil {
		return p2, nil
	}
	return p, err
}

func lookup(m map[string]any, names ...string) any {
	for _, n := range names {
		if v, ok := m[n]; ok {
			return v
		}
	}
	return nil
}

func toInt64(v any) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return parseQString(t)
	default:
		return 0, fmt.Errorf("unsupported value %v", v)
	}
}

// parseQString accepts decimal, 0x-prefixed hex, or 2^k.
func parseQString(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "2^") {
		k, err := strconv.Atoi(s[2:])
		if err != nil || k < 0 || k > 62 {
			return 0, fmt.Errorf("invalid power of two %q", s)
		}
		return int64(1) << k, nil
	}
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		x, err := hex.DecodeString(s[2:])
		if err != nil || len(x) > 8 {
			return 0, fmt.Errorf("invalid hex %q", s)
		}
		var q int64
		for _, b := range x {
			q = q<<8 | int64(b)
		}
		return q, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
