// Package qdagsrc implements the QdagSRC scheme: a single QDAG over a power-of-two-aligned
// domain square. A point is tagged at build time with every ordinary and intermediate square in
// the QDAG that contains it; a query decomposes into exactly one trapdoor token, the QDAG's
// smallest Single Range Cover.
package qdagsrc

import (
	"fmt"
	"math"

	"github.com/cloudsecuritygroup/ers"
	"github.com/cloudsecuritygroup/ers/emm"
	"github.com/cloudsecuritygroup/ers/geometry"
	"github.com/cloudsecuritygroup/ers/qdag"
)

// Scheme is the 2-D QdagSRC scheme.
type Scheme struct {
	emm.Engine
	MaxX, MaxY int64

	qdag        qdag.Tree
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

func qdagHeight(maxX, maxY int64) int {
	xh := int(math.Ceil(math.Log2(float64(maxX))))
	yh := int(math.Ceil(math.Log2(float64(maxY))))
	if xh > yh {
		return xh
	}
	return yh
}

// BuildIndex encrypts plaintextMM, a mapping from point to its payloads.
func (s *Scheme) BuildIndex(key []byte, plaintextMM map[geometry.Point][][]byte) error {
	height := qdagHeight(s.MaxX, s.MaxY)
	side := int64(1) << uint(height)
	s.qdag = qdag.New(geometry.Rect{
		Start: geometry.Point{X: 0, Y: 0},
		End:   geometry.Point{X: side, Y: side},
	}, height)

	modified := make(map[string][][]byte)
	for point, vals := range plaintextMM {
		for _, rect := range s.qdag.ContainingCovers(point) {
			label := string(rect.PackBytes())
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

// Trapdoor returns the single token for the query's Single Range Cover.
func (s *Scheme) Trapdoor(key []byte, p1, p2 geometry.Point) ([]byte, error) {
	if !p1.Dominates(p2) {
		return nil, fmt.Errorf("qdagsrc: trapdoor: %w", ers.ErrMalformedQuery)
	}

	cover := s.qdag.SRCCover(geometry.Rect{Start: p1, End: p2})
	return s.Engine.Trapdoor(key, cover.PackBytes()), nil
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
