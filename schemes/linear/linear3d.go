package linear

import (
	"fmt"

	"github.com/cloudsecuritygroup/ers"
	"github.com/cloudsecuritygroup/ers/emm"
	"github.com/cloudsecuritygroup/ers/geometry"
)

// Scheme3D is the 3-D counterpart of Scheme.
type Scheme3D struct {
	emm.Engine
	encryptedDB map[string][]byte
}

// Setup returns a fresh securityParameter-byte key.
func (s *Scheme3D) Setup(securityParameter int) ([]byte, error) {
	return s.Engine.Setup(securityParameter)
}

// BuildIndex encrypts plaintextMM, a mapping from point to its payloads, one label per point.
func (s *Scheme3D) BuildIndex(key []byte, plaintextMM map[geometry.Point3D][][]byte) error {
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

// Trapdoor returns one token per grid point in the closed box [p1, p2].
func (s *Scheme3D) Trapdoor(key []byte, p1, p2 geometry.Point3D) ([][]byte, error) {
	if !p1.Dominates(p2) {
		return nil, fmt.Errorf("linear: trapdoor: %w", ers.ErrMalformedQuery)
	}

	seen := make(map[string][]byte)
	for x := p1.X; x <= p2.X; x++ {
		for y := p1.Y; y <= p2.Y; y++ {
			for z := p1.Z; z <= p2.Z; z++ {
				point := geometry.Point3D{X: x, Y: y, Z: z}
				token := s.Engine.Trapdoor(key, point.Bytes())
				seen[string(token)] = token
			}
		}
	}

	tokens := make([][]byte, 0, len(seen))
	for _, t := range seen {
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// Search probes the encrypted index with every token and returns the union of results.
func (s *Scheme3D) Search(tokens [][]byte) [][]byte {
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
func (s *Scheme3D) Resolve(key []byte, results [][]byte) ([][]byte, error) {
	return s.Engine.Resolve(key, results)
}
