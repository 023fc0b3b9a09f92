package quadbrc

import (
	"fmt"

	"github.com/cloudsecuritygroup/ers"
	"github.com/cloudsecuritygroup/ers/emm"
	"github.com/cloudsecuritygroup/ers/geometry"
	"github.com/cloudsecuritygroup/ers/octtree"
)

// Scheme3D is the 3-D counterpart of Scheme, generalizing the quadtree to an octtree.
type Scheme3D struct {
	emm.Engine
	MaxX, MaxY, MaxZ int64

	qdag        octtree.Tree
	encryptedDB map[string][]byte
}

// New3D returns a Scheme3D over the domain [0, maxX) x [0, maxY) x [0, maxZ).
func New3D(maxX, maxY, maxZ int64) *Scheme3D {
	return &Scheme3D{MaxX: maxX, MaxY: maxY, MaxZ: maxZ}
}

// Setup returns a fresh securityParameter-byte key.
func (s *Scheme3D) Setup(securityParameter int) ([]byte, error) {
	return s.Engine.Setup(securityParameter)
}

// BuildIndex encrypts plaintextMM, a mapping from point to its payloads.
func (s *Scheme3D) BuildIndex(key []byte, plaintextMM map[geometry.Point3D][][]byte) error {
	maxSide := s.MaxX
	if s.MaxY > maxSide {
		maxSide = s.MaxY
	}
	if s.MaxZ > maxSide {
		maxSide = s.MaxZ
	}
	level := quadLevel(maxSide)
	side := int64(1) << uint(level)
	s.qdag = octtree.New(geometry.Rect3D{
		Start: geometry.Point3D{X: 0, Y: 0, Z: 0},
		End:   geometry.Point3D{X: side - 1, Y: side - 1, Z: side - 1},
	}, level)

	modified := make(map[string][][]byte)
	for point, vals := range plaintextMM {
		for _, cover := range s.qdag.ContainingCovers(point) {
			label := string(cover.PackBytes())
			modified[label] = append(modified[label], vals...)
		}
	}

	db, err := s.Engine.BuildIndex(key, modified)
	if err != nil {
		return err
	}
	s.encryptedDB = db
	return nil
}

// Trapdoor returns one token per disjoint box in the query's Best Range Cover.
func (s *Scheme3D) Trapdoor(key []byte, p1, p2 geometry.Point3D) ([][]byte, error) {
	if !p1.Dominates(p2) {
		return nil, fmt.Errorf("quadbrc: trapdoor: %w", ers.ErrMalformedQuery)
	}

	query := geometry.Rect3D{Start: p1, End: p2}
	covers := s.qdag.BRCCover(query)

	seen := make(map[string][]byte)
	for _, rect := range covers {
		token := s.Engine.Trapdoor(key, rect.PackBytes())
		seen[string(token)] = token
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
