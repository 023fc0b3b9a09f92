// Package tdagsrc implements the TdagSRC scheme: two independent 1-D TDAGs, one per axis. A
// point is tagged at build time with every ancestor interval (path node or virtual middle) that
// contains it in each axis's TDAG; a query decomposes into exactly one per-axis Single Range
// Cover, giving a single trapdoor token per query at the cost of a larger index than RangeBRC's.
package tdagsrc

import (
	"fmt"
	"math"

	"github.com/cloudsecuritygroup/ers"
	"github.com/cloudsecuritygroup/ers/canon"
	"github.com/cloudsecuritygroup/ers/emm"
	"github.com/cloudsecuritygroup/ers/geometry"
	"github.com/cloudsecuritygroup/ers/tdag"
)

// Scheme is the 2-D TdagSRC scheme.
type Scheme struct {
	emm.Engine
	MaxX, MaxY int64

	xTree       *tdag.Tree
	yTree       *tdag.Tree
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
	s.xTree = tdag.New(s.xHeight)
	s.yTree = tdag.New(s.yHeight)

	modified := make(map[string][][]byte)
	for point, vals := range plaintextMM {
		xAncestors := tdag.Ancestors(s.xHeight, point.X)
		yAncestors := tdag.Ancestors(s.yHeight, point.Y)
		for _, xNode := range xAncestors {
			for _, yNode := range yAncestors {
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

// Trapdoor returns the single token for the query's per-axis SRC cover pair.
func (s *Scheme) Trapdoor(key []byte, p1, p2 geometry.Point) ([]byte, error) {
	if !p1.Dominates(p2) {
		return nil, fmt.Errorf("tdagsrc: trapdoor: %w", ers.ErrMalformedQuery)
	}

	xCover := s.xTree.SRCCover(canon.Interval{Lo: p1.X, Hi: p2.X})
	yCover := s.yTree.SRCCover(canon.Interval{Lo: p1.Y, Hi: p2.Y})
	label := canon.Interval2D(xCover, yCover)
	return s.Engine.Trapdoor(key, label), nil
}

// Search probes the encrypted index with token.
func (s *Scheme) Search(token []byte) [][]byte {
	return s.Engine.Search(token, s.encryptedDB)
}

// Resolve decrypts every ciphertext in results.
func (s *Scheme) Resolve(key []byte, results [][]byte) ([][]byte, error) {
	return s.Engine.Resolve(key, results)
}

// EncryptedDB returns the built encrypted index, primarily for storage-size measurement.
func (s *Scheme) EncryptedDB() map[string][]byte {
	return s.encryptedDB
}
