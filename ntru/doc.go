// Package ntru implements NTRUMLS, a lattice signature scheme over
// Z_q[x]/(x^N - 1) with q a power of two and p = 3.
//
// A private key holds two product-form secrets F and g (each 1 + A1*A2 + A3
// with sparse ternary Ai); the public key is h = g * (3F)^-1 mod q. A
// signature is a single ring element s with s = sp and h*s = tp modulo 3,
// where (sp, tp) is hashed from the public key digest and the message, and
// both s and h*s are bounded in infinity norm. Signing blinds each attempt
// with a stream derived from the key, the message and an attempt counter,
// and rejects every candidate whose norms could reveal the secret.
//
// Keys and signatures travel as tagged blobs: tag, OID length, 3-byte OID,
// bit-packed payload. Nine standardized parameter sets are built in; see
// AllParams.
package ntru
