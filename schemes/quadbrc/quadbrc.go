// Package quadbrc implements the QuadBRC scheme: a single geometric quadtree over a
// power-of-two-aligned domain square. A point is tagged at build time with the aligned square it
// falls in at every scale up to the tree's level (index-side expansion = level+1); a query
// decomposes into the quadtree's Best Range Cover, one trapdoor token per disjoint square in the
// cover.
package quadbrc

import (
	"fmt"
	"math/bits"

	"github.com/cloudsecuritygroup/ers"
	"github.com/cloudsecuritygroup/ers/emm"
	"github.com/cloudsecuritygroup/ers/geometry"
	"github.com/cloudsecuritygroup/ers/quadtree"
)

// Scheme is the 2-D QuadBRC scheme.
type Scheme struct {
	emm.Engine
	MaxX, MaxY int64

	qdag        quadtree.Tree
	encryptedDB map[string][]byte
}

// New returns a Scheme over the domain [0, maxX) x [0, maxY).
func New(maxX, maxY int64) *Scheme {
	return &Scheme{MaxX: maxX, MaxY: maxY}
}

// Setup returns a fresh securityParameter-byte key.
func (s *Scheme) Setup(securityParameter int) ([]byte, error) {
	return s.Engine.Setup(securityParameter)
}

func nextPowerOf2(x int64) int64 {
	if x == 0 {
		return 1
	}
	return 1 << uint(bits.Len64(uint64(x-1)))
}

func quadLevel(maxSide int64) int {
	side := nextPowerOf2(maxSide)
	return bits.TrailingZeros64(uint64(side))
}

// BuildIndex encrypts plaintextMM, a mapping from point to its payloads.
func (s *Scheme) BuildIndex(key []byte, plaintextMM map[geometry.Point][][]byte) error {
	maxSide := s.MaxX
	if s.MaxY > maxSide {
		maxSide = s.MaxY
	}
	level := quadLevel(maxSide)
	side := int64(1) << uint(level)
	s.qdag = quadtree.New(geometry.Rect{
		Start: geometry.Point{X: 0, Y: 0},
		End:   geometry.Point{X: side - 1, Y: side - 1},
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

// Trapdoor returns one token per disjoint square in the query's Best Range Cover.
func (s *Scheme) Trapdoor(key []byte, p1, p2 geometry.Point) ([][]byte, error) {
	if !p1.Dominates(p2) {
		return nil, fmt.Errorf("quadbrc: trapdoor: %w", ers.ErrMalformedQuery)
	}

	query := geometry.Rect{Start: p1, End: p2}
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
