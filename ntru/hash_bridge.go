package ntru

import (
	"encoding/binary"
	"fmt"

	"github.com/tuneinsight/lattigo/v4/utils"
	"golang.org/x/crypto/sha3"
)

// DigestSize is the length of public and secret key digests.
const DigestSize = 64

// seedSize is the key length handed to the stream expander.
const seedSize = 32

// Domain separation tags, one per use of the hash.
const (
	domainPublicDigest = "ntrumls-pk-digest-v1"
	domainSecretDigest = "ntrumls-sk-digest-v1"
	domainTarget       = "ntrumls-sign-target-v1"
	domainBlind        = "ntrumls-sign-blind-v1"
	domainKeygen       = "ntrumls-keygen-v1"
)

// shakeWithDomain absorbs the domain tag and every part in order and
// squeezes outLen bytes.
func shakeWithDomain(domain string, outLen int, parts ...[]byte) []byte {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte(domain))
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	out := make([]byte, outLen)
	_, _ = h.Read(out)
	return out
}

// newStream keys the deterministic expander with seed.
func newStream(seed []byte) (utils.PRNG, error) {
	prng, err := utils.NewKeyedPRNG(seed)
	if err != nil {
		return nil, fmt.Errorf("keyed prng: %w", err)
	}
	return prng, nil
}

// keygenStream expands fresh entropy for one key generation trial.
func keygenStream(entropy []byte, trial int) (utils.PRNG, error) {
	var ctr [4]byte
	binary.LittleEndian.PutUint32(ctr[:], uint32(trial))
	return newStream(shakeWithDomain(domainKeygen, seedSize, entropy, ctr[:]))
}

// blindStream derives the stream for signing attempt `attempt`. The secret
// digest keeps the blinding unpredictable to anyone holding only public data.
func blindStream(secretDigest, publicDigest, nonce, msg []byte, attempt int) (utils.PRNG, error) {
	var msgLen [8]byte
	binary.LittleEndian.PutUint64(msgLen[:], uint64(len(msg)))
	var ctr [4]byte
	binary.LittleEndian.PutUint32(ctr[:], uint32(attempt))
	seed := shakeWithDomain(domainBlind, seedSize, secretDigest, publicDigest, nonce, msgLen[:], msg, ctr[:])
	return newStream(seed)
}

// hashToTarget maps (public key digest, message) to the ternary pair
// (sp, tp) that a signature must match modulo p.
func hashToTarget(publicDigest, msg []byte, n int) (sp, tp Poly) {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte(domainTarget))
	_, _ = h.Write(publicDigest)
	_, _ = h.Write(msg)
	trits := NewPoly(2 * n)
	// a SHAKE reader never fails
	_ = sampleTrits(h, trits)
	return trits[:n:n], trits[n:]
}
