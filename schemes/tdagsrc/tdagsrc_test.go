package tdagsrc_test

import (
	"testing"

	"github.com/cloudsecuritygroup/ers/geometry"
	"github.com/cloudsecuritygroup/ers/schemes/tdagsrc"
)

func TestScheme_singleTokenTrapdoor(t *testing.T) {
	s := tdagsrc.New(8, 8)
	key, err := s.Setup(16)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	mm := map[geometry.Point][][]byte{
		geometry.NewPoint(3, 4): {[]byte("q")},
	}
	if err := s.BuildIndex(key, mm); err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}

	token, err := s.Trapdoor(key, geometry.NewPoint(2, 3), geometry.NewPoint(5, 6))
	if err != nil {
		t.Fatal(err)
	}

	resolved, err := s.Resolve(key, s.Search(token))
	if err != nil {
		t.Fatal(err)
	}
	if len(resolved) != 1 || string(resolved[0]) != "q" {
		t.Errorf("Resolve() = %v, want [\"q\"]", resolved)
	}
}

func TestScheme3D_singlePoint(t *testing.T) {
	s := tdagsrc.New3D(4, 4, 4)
	key, err := s.Setup(16)
	if err != nil {
		t.Fatal(err)
	}

	mm := map[geometry.Point3D][][]byte{
		geometry.NewPoint3D(1, 2, 3): {[]byte("z")},
	}
	if err := s.BuildIndex(key, mm); err != nil {
		t.Fatal(err)
	}

	token, err := s.Trapdoor(key, geometry.NewPoint3D(0, 0, 0), geometry.NewPoint3D(3, 3, 3))
	if err != nil {
		t.Fatal(err)
	}
	resolved, err := s.Resolve(key, s.Search(token))
	if err != nil {
		t.Fatal(err)
	}
	if len(resolved) != 1 || string(resolved[0]) != "z" {
		t.Errorf("Resolve() = %v, want [\"z\"]", resolved)
	}
}
