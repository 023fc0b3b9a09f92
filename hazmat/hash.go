// Package hazmat implements the pinned cryptographic primitives the rest of the module builds
// on: SHA-512, HMAC-SHA512, HKDF-SHA512 sub-key derivation, PBKDF2-HMAC-SHA256 password-based
// key derivation, and AES-CBC with PKCS7 padding. Every function here is a thin wrapper around a
// standard-library or golang.org/x/crypto primitive; none of it should be reimplemented at a
// higher layer. The PKCS7 padding check in SymmetricDecrypt is not constant-time.
package hazmat

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"hash"
)

func newSHA512() hash.Hash { return sha512.New() }

func newSHA256() hash.Hash { return sha256.New() }

// Hash returns the SHA-512 digest of data.
func Hash(data []byte) []byte {
	sum := sha512.Sum512(data)
	return sum[:]
}

// HMACSum computes a SHA-512 HMAC of data under key. Use this instead of Hash on a naive
// concatenation of key and data: a plain hash can leak enough to let an adversary recover the
// key in some constructions.
func HMACSum(key, data []byte) []byte {
	h := hmac.New(sha512.New, key)
	h.Write(data)
	return h.Sum(nil)
}

// HMACEqual reports whether two HMACs match, in time independent of where they first differ.
func HMACEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
