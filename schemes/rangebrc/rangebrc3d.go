package rangebrc

import (
	"fmt"

	"github.com/cloudsecuritygroup/ers"
	"github.com/cloudsecuritygroup/ers/canon"
	"github.com/cloudsecuritygroup/ers/emm"
	"github.com/cloudsecuritygroup/ers/geometry"
	"github.com/cloudsecuritygroup/ers/rangetree"
)

// Scheme3D is the 3-D counterpart of Scheme: three independent per-axis range trees composed by
// a three-way cross product, generalizing the 2-D construction the same way the rest of this
// module's geometric families generalize from quadrants to octants.
type Scheme3D struct {
	emm.Engine
	MaxX, MaxY, MaxZ int64

	xTree, yTree, zTree       *rangetree.Tree
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
	s.xTree = rangetree.New(s.xHeight)
	s.yTree = rangetree.New(s.yHeight)
	s.zTree = rangetree.New(s.zHeight)

	modified := make(map[string][][]byte)
	for point, vals := range plaintextMM {
		xPath := rangetree.Path(s.xHeight, point.X)
		yPath := rangetree.Path(s.yHeight, point.Y)
		zPath := rangetree.Path(s.zHeight, point.Z)
		for _, xNode := range xPath {
			for _, yNode := range yPath {
				for _, zNode := range zPath {
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

// Trapdoor returns one token per triple in the cross product of the query's per-axis BRC covers.
func (s *Scheme3D) Trapdoor(key []byte, p1, p2 geometry.Point3D) ([][]byte, error) {
	if !p1.Dominates(p2) {
		return nil, fmt.Errorf("rangebrc: trapdoor: %w", ers.ErrMalformedQuery)
	}

	xCovers := s.xTree.BRCCover(canon.Interval{Lo: p1.X, Hi: p2.X})
	yCovers := s.yTree.BRCCover(canon.Interval{Lo: p1.Y, Hi: p2.Y})
	zCovers := s.zTree.BRCCover(canon.Interval{Lo: p1.Z, Hi: p2.Z})

	seen := make(map[string][]byte)
	for _, x := range xCovers {
		for _, y := range yCovers {
			for _, z := range zCovers {
				label := canon.Interval3D(x, y, z)
				token := s.Engine.Trapdoor(key, label)
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
