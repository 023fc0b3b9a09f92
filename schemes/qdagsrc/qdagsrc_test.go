package qdagsrc_test

import (
	"testing"

	"github.com/cloudsecuritygroup/ers/geometry"
	"github.com/cloudsecuritygroup/ers/schemes/qdagsrc"
)

func TestScheme_singleTokenTrapdoor(t *testing.T) {
	s := qdagsrc.New(8, 8)
	key, err := s.Setup(16)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	mm := map[geometry.Point][][]byte{
		geometry.NewPoint(3, 3): {[]byte("c")},
	}
	if err := s.BuildIndex(key, mm); err != nil {
		t.Fatalf("BuildIndex() error = %v", err)
	}

	token, err := s.Trapdoor(key, geometry.NewPoint(2, 2), geometry.NewPoint(5, 5))
	if err != nil {
		t.Fatal(err)
	}

	results := s.Search(token)
	if got, want := len(results), 1; got != want {
		t.Fatalf("len(Search()) = %d, want %d (a single ciphertext)", got, want)
	}

	resolved, err := s.Resolve(key, results)
	if err != nil {
		t.Fatal(err)
	}
	if len(resolved) != 1 || string(resolved[0]) != "c" {
		t.Errorf("Resolve() = %v, want [\"c\"]", resolved)
	}
}

func TestScheme3D_singlePoint(t *testing.T) {
	s := qdagsrc.New3D(4, 4, 4)
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
