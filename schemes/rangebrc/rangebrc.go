// Package rangebrc implements the RangeBRC scheme: two independent 1-D range trees, one per
// axis, composed by cross product. A point is tagged at build time with every node on its
// root-to-leaf path in each axis's tree (Best Range Cover's disjoint-cover property means that
// path coincides with "every node covering the point" on a balanced tree); a query decomposes
// into the cross product of each axis's BRC cover, one trapdoor token per (x-node, y-node) pair.
package rangebrc

import (
	"fmt"
	"math"

	"github.com/cloudsecuritygroup/ers"
	"github.com/cloudsecuritygroup/ers/canon"
	"github.com/cloudsecuritygroup/ers/emm"
	"github.com/cloudsecuritygroup/ers/geometry"
	"github.com/cloudsecuritygroup/ers/rangetree"
)

// Scheme is the 2-D RangeBRC scheme.
type Scheme struct {
	emm.Engine
	MaxX, MaxY int64

	xTree       *rangetree.Tree
	yTree       *rangetree.Tree
	xHeight     int
	yHeight     int
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

func treeHeight(maxCoord int64) int {
	return int(math.Ceil(math.Log2(float64(maxCoord))))
}

// BuildIndex encrypts plaintextMM, a mapping from point to its payloads.
func (s *Scheme) BuildIndex(key []byte, plaintextMM map[geometry.Point][][]byte) error {
	s.xHeight = treeHeight(s.MaxX)
	s.yHeight = treeHeight(s.MaxY)
	s.xTree = rangetree.New(s.xHeight)
	s.yTree = rangetree.New(s.yHeight)

	modified := make(map[string][][]byte)
	for point, vals := range plaintextMM {
		xPath := rangetree.Path(s.xHeight, point.X)
		yPath := rangetree.Path(s.yHeight, point.Y)
		for _, xNode := range xPath {
			for _, yNode := range yPath {
				label := string(canon.Interval2D(xNode, yNode))
				modified[label] = append(modified[label], vals...)
			}
		}
	}

	db, err := s.Engine.BuildIndex(key, modified)
	if err != nil {
		return err
	}
	s.encryptedDB = db
	return nil
}

// Trapdoor returns one token per pair in the cross product of the query's per-axis BRC covers.
func (s *Scheme) Trapdoor(key []byte, p1, p2 geometry.Point) ([][]byte, error) {
	if !p1.Dominates(p2) {
		return nil, fmt.Errorf("rangebrc: trapdoor: %w", ers.ErrMalformedQuery)
	}

	xCovers := s.xTree.BRCCover(canon.Interval{Lo: p1.X, Hi: p2.X})
	yCovers := s.yTree.BRCCover(canon.Interval{Lo: p1.Y, Hi: p2.Y})

	seen := make(map[string][]byte)
	for _, x := range xCovers {
		for _, y := range yCovers {
			label := canon.Interval2D(x, y)
			token := s.Engine.Trapdoor(key, label)
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
