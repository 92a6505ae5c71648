package ntru

import (
	"os"
	"sync"
	"testing"
)

type keyPair struct {
	sk *PrivateKey
	pk *PublicKey
}

var (
	keyCacheMu sync.Mutex
	keyCache   = map[string]keyPair{}
)

// cachedKey returns one deterministic key pair per parameter set so the
// suites do not pay for key generation repeatedly. Callers must not
// destroy it.
func cachedKey(t testing.TB, ps ParameterSet) (*PrivateKey, *PublicKey) {
	t.Helper()
	keyCacheMu.Lock()
	defer keyCacheMu.Unlock()
	if kp, ok := keyCache[ps.Name]; ok {
		return kp.sk, kp.pk
	}
	sk, pk, err := GenerateKey(ps, NewRNG(int64(ps.OID[2])))
	if err != nil {
		t.Fatalf("%s: GenerateKey: %v", ps.Name, err)
	}
	keyCache[ps.Name] = keyPair{sk, pk}
	return sk, pk
}

// slow gates the exhaustive suites.
func slow(t *testing.T) {
	t.Helper()
	if os.Getenv("NTRU_SLOW") != "1" {
		t.Skip("set NTRU_SLOW=1 to run")
	}
}
