// Package ers implements an encrypted range search library for 2- and 3-dimensional
// integer point databases.
//
// A data owner holds a multimap from integer-coordinate points to opaque document
// payloads. [github.com/cloudsecuritygroup/ers/schemes/linear] and its siblings turn that
// multimap into a secret key and an encrypted index that a semi-honest server can answer
// axis-aligned orthogonal range queries against, given a client-issued trapdoor. The server
// never sees plaintext points, plaintext queries, or plaintext payloads; its leakage is
// exactly the set of encrypted-label lookups induced by the range-cover the scheme chose for
// the query.
//
// The five scheme families ([github.com/cloudsecuritygroup/ers/schemes/linear],
// rangebrc, quadbrc, qdagsrc, tdagsrc) trade index size against query size by choosing
// between a multi-token Best Range Cover (BRC, disjoint, exact) and a single-token Single
// Range Cover (SRC, may overlap the query on every side). All of them are built on the same
// [github.com/cloudsecuritygroup/ers/emm] engine, which binds a cover's canonical byte
// encoding to an HMAC label and an AES-CBC ciphertext.
package ers

import "errors"

// Sentinel errors distinguishable by callers per the error taxonomy. They are returned
// directly or wrapped with additional context via fmt.Errorf's %w verb; callers should use
// errors.Is to test against these values.
var (
	// ErrInvalidGeometry is returned when a Rect or Rect3D is constructed with start > end on
	// any axis.
	ErrInvalidGeometry = errors.New("ers: rectangle start must be <= end on every axis")

	// ErrMalformedQuery is returned when a query's two corner points do not satisfy the
	// dominance relation p1 <= p2 componentwise, and the caller bypassed normalization.
	ErrMalformedQuery = errors.New("ers: query points do not satisfy p1 <= p2 componentwise")

	// ErrInvalidKey is returned when a key's length is incompatible with the AES variant it
	// would select (valid AES key sizes are 16, 24, and 32 bytes).
	ErrInvalidKey = errors.New("ers: key length incompatible with AES key schedule")

	// ErrDecrypt is returned when PKCS7 unpadding fails after an AES-CBC decryption, which
	// happens with overwhelming probability when the wrong key is used.
	ErrDecrypt = errors.New("ers: ciphertext padding check failed")

	// ErrSerialization is returned when a value cannot be represented by the canonical
	// encoder, or when a canonical encoding cannot be parsed back.
	ErrSerialization = errors.New("ers: value not representable in canonical encoding")
)
