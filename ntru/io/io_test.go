package io

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	ntru "ntrumls-signature/ntru"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Parameters.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadParamsByName(t *testing.T) {
	path := writeConfig(t, `{"param_set":"xxx-20151024-743","N":743,"Q":"2^17","max_sign_attempts":100,"key_dir":"keys"}`)
	p, err := LoadParams(path, false)
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	if p.Set.Name != "xxx-20151024-743" || p.MaxSignAttempts != 100 || p.KeyDir != "keys" {
		t.Fatalf("unexpected params: %+v", p)
	}
}

func TestLoadParamsByOID(t *testing.T) {
	path := writeConfig(t, `{"oid":"fffff6","Q":"0x020000"}`)
	p, err := LoadParams(path, false)
	if err != nil {
		t.Fatalf("LoadParams: %v", err)
	}
	if p.Set.N != 907 {
		t.Fatalf("got N=%d want 907", p.Set.N)
	}
}

func TestLoadParamsMismatch(t *testing.T) {
	path := writeConfig(t, `{"param_set":"xxx-20140508-401","N":443}`)
	_, err := LoadParams(path, false)
	var pm *ntru.ParameterMismatchError
	if !errors.As(err, &pm) {
		t.Fatalf("expected ParameterMismatchError, got %v", err)
	}
	if _, err := LoadParams(path, true); err != nil {
		t.Fatalf("allowMismatch should accept: %v", err)
	}
}

func TestLoadParamsUnknownSet(t *testing.T) {
	path := writeConfig(t, `{"param_set":"xxx-1999-17"}`)
	if _, err := LoadParams(path, false); err == nil {
		t.Fatalf("expected error for unknown set")
	}
}

func TestParseQString(t *testing.T) {
	cases := map[string]int64{"131072": 131072, "0x8000": 32768, "2^18": 262144}
	for in, want := range cases {
		got, err := parseQString(in)
		if err != nil || got != want {
			t.Fatalf("parseQString(%q) = %d, %v want %d", in, got, err, want)
		}
	}
}
