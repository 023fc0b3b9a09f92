// Package linear implements the trivial ERS scheme: every point in the domain gets its own
// trapdoor, and a query decomposes into one point-equality lookup per grid point it contains.
// It is the baseline every other scheme is a compaction of — minimal build-time expansion,
// maximal query-time expansion.
package linear

import (
	"fmt"

	"github.com/cloudsecuritygroup/ers"
	"github.com/cloudsecuritygroup/ers/emm"
	"github.com/cloudsecuritygroup/ers/geometry"
)

// Scheme is the 2-D Linear scheme. The zero value is ready to use.
type Scheme struct {
	emm.Engine
	encryptedDB map[string][]byte
}

// Setup returns a fresh securityParameter-byte key.
func (s *Scheme) Setup(securityParameter int) ([]byte, error) {
	return s.Engine.Setup(securityParameter)
}

// BuildIndex encrypts plaintextMM, a mapping from point to its payloads, one label per point.
func (s *Scheme) BuildIndex(key []byte, plaintextMM map[geometry.Point][][]byte) error {
	modified := make(map[string][][]byte, len(plaintextMM))
	for point, values := range plaintextMM {
		modified[string(point.Bytes())] = values
	}

	db, err := s.Engine.BuildIndex(key, modified)
	if err != nil {
		return err
	}
	s.encryptedDB = db
	return nil
}

// Trapdoor returns one token per grid point in the closed rectangle [p1, p2].
func (s *Scheme) Trapdoor(key []byte, p1, p2 geometry.Point) ([][]byte, error) {
	if !p1.Dominates(p2) {
		return nil, fmt.Errorf("linear: trapdoor: %w", ers.ErrMalformedQuery)
	}

	seen := make(map[string][]byte)
	for x := p1.X; x <= p2.X; x++ {
		for y := p1.Y; y <= p2.Y; y++ {
			point := geometry.Point{X: x, Y: y}
			token := s.Engine.Trapdoor(key, point.Bytes())
			seen[string(token)] = token
		}
	}

	tokens := make([][]byte, 0, len(seen))
	for _, t := range seen {
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// Search probes the encrypted index with every token and returns the union of results.
func (s *Scheme) Search(tokens [][]byte) [][]byte {
	seen := make(map[string][]byte)
	for _, token := range tokens {
		for _, ct := range s.Engine.Search(token, s.encryptedDB) {
			seen[string(ct)] = ct
		}
	}
	results := make([][]byte, 0, len(seen))
	for _, ct := range seen {
		results = append(results, ct)
	}
	return results
}

// Resolve decrypts every ciphertext in results.
func (s *Scheme) Resolve(key []byte, results [][]byte) ([][]byte, error) {
	return s.Engine.Resolve(key, results)
}

// EncryptedDB returns the built encrypted index, primarily for storage-size measurement.
func (s *Scheme) EncryptedDB() map[string][]byte {
	return s.encryptedDB
}
