package qdagsrc

import (
	"fmt"
	"math"

	"github.com/cloudsecuritygroup/ers"
	"github.com/cloudsecuritygroup/ers/emm"
	"github.com/cloudsecuritygroup/ers/geometry"
	"github.com/cloudsecuritygroup/ers/octdag"
)

// Scheme3D is the 3-D counterpart of Scheme, generalizing the QDAG to an Oct-QDAG.
type Scheme3D struct {
	emm.Engine
	MaxX, MaxY, MaxZ int64

	qdag        octdag.Tree
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

func octdagHeight(maxX, maxY, maxZ int64) int {
	h := int(math.Ceil(math.Log2(float64(maxX))))
	if yh := int(math.Ceil(math.Log2(float64(maxY)))); yh > h {
		h = yh
	}
	if zh := int(math.Ceil(math.Log2(float64(maxZ)))); zh > h {
		h = zh
	}
	return h
}

// BuildIndex encrypts plaintextMM, a mapping from point to its payloads.
func (s *Scheme3D) BuildIndex(key []byte, plaintextMM map[geometry.Point3D][][]byte) error {
	height := octdagHeight(s.MaxX, s.MaxY, s.MaxZ)
	side := int64(1) << uint(height)
	s.qdag = octdag.New(geometry.Rect3D{
		Start: geometry.Point3D{X: 0, Y: 0, Z: 0},
		End:   geometry.Point3D{X: side, Y: side, Z: side},
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
func (s *Scheme3D) Trapdoor(key []byte, p1, p2 geometry.Point3D) ([]byte, error) {
	if !p1.Dominates(p2) {
		return nil, fmt.Errorf("qdagsrc: trapdoor: %w", ers.ErrMalformedQuery)
	}

	cover := s.qdag.SRCCover(geometry.Rect3D{Start: p1, End: p2})
	return s.Engine.Trapdoor(key, cover.PackBytes()), nil
}

// Search probes the encrypted index with token.
func (s *Scheme3D) Search(token []byte) [][]byte {
	return s.Engine.Search(token, s.encryptedDB)
}

// Resolve decrypts every ciphertext in results.
func (s *Scheme3D) Resolve(key []byte, results [][]byte) ([][]byte, error) {
	return s.Engine.Resolve(key, results)
}
