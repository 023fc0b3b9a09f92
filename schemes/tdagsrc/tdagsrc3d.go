package tdagsrc

import (
	"fmt"

	"github.com/cloudsecuritygroup/ers"
	"github.com/cloudsecuritygroup/ers/canon"
	"github.com/cloudsecuritygroup/ers/emm"
	"github.com/cloudsecuritygroup/ers/geometry"
	"github.com/cloudsecuritygroup/ers/tdag"
)

// Scheme3D is the 3-D counterpart of Scheme.
type Scheme3D struct {
	emm.Engine
	MaxX, MaxY, MaxZ int64

	xTree, yTree, zTree       *tdag.Tree
	xHeight, yHeight, zHeight int
	encryptedDB               map[string][]byte
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
	s.xHeight = treeHeight(s.MaxX)
	s.yHeight = treeHeight(s.MaxY)
	s.zHeight = treeHeight(s.MaxZ)
	s.xTree = tdag.New(s.xHeight)
	s.yTree = tdag.New(s.yHeight)
	s.zTree = tdag.New(s.zHeight)

	modified := make(map[string][][]byte)
	for point, vals := range plaintextMM {
		xAncestors := tdag.Ancestors(s.xHeight, point.X)
		yAncestors := tdag.Ancestors(s.yHeight, point.Y)
		zAncestors := tdag.Ancestors(s.zHeight, point.Z)
		for _, xNode := range xAncestors {
			for _, yNode := range yAncestors {
				for _, zNode := range zAncestors {
					label := string(canon.Interval3D(xNode, yNode, zNode))
					modified[label] = append(modified[label], vals...)
				}
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

// Trapdoor returns the single token for the query's per-axis SRC cover triple.
func (s *Scheme3D) Trapdoor(key []byte, p1, p2 geometry.Point3D) ([]byte, error) {
	if !p1.Dominates(p2) {
		return nil, fmt.Errorf("tdagsrc: trapdoor: %w", ers.ErrMalformedQuery)
	}

	xCover := s.xTree.SRCCover(canon.Interval{Lo: p1.X, Hi: p2.X})
	yCover := s.yTree.SRCCover(canon.Interval{Lo: p1.Y, Hi: p2.Y})
	zCover := s.zTree.SRCCover(canon.Interval{Lo: p1.Z, Hi: p2.Z})
	label := canon.Interval3D(xCover, yCover, zCover)
	return s.Engine.Trapdoor(key, label), nil
}

// Search probes the encrypted index with token.
func (s *Scheme3D) Search(token []byte) [][]byte {
	return s.Engine.Search(token, s.encryptedDB)
}

// Resolve decrypts every ciphertext in results.
func (s *Scheme3D) Resolve(key []byte, results [][]byte) ([][]byte, error) {
	return s.Engine.Resolve(key, results)
}
