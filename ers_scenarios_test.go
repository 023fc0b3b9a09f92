package ers_test

import (
	"testing"

	"github.com/cloudsecuritygroup/ers/geometry"
	"github.com/cloudsecuritygroup/ers/schemes/linear"
	"github.com/cloudsecuritygroup/ers/schemes/qdagsrc"
	"github.com/cloudsecuritygroup/ers/schemes/quadbrc"
	"github.com/cloudsecuritygroup/ers/schemes/rangebrc"
	"github.com/cloudsecuritygroup/ers/schemes/tdagsrc"
)

// TestScenario1 is spec.md §8 scenario (1): an 8x8 domain, a single point (3,5) with payload
// b"p", queried by (2,2)-(5,7). Every scheme must return {b"p"} after resolve.
func TestScenario1(t *testing.T) {
	const payload = "p"
	p := geometry.NewPoint(3, 5)
	q1, q2 := geometry.NewPoint(2, 2), geometry.NewPoint(5, 7)

	t.Run("linear", func(t *testing.T) {
		var s linear.Scheme
		key, err := s.Setup(16)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.BuildIndex(key, map[geometry.Point][][]byte{p: {[]byte(payload)}}); err != nil {
			t.Fatal(err)
		}
		tokens, err := s.Trapdoor(key, q1, q2)
		if err != nil {
			t.Fatal(err)
		}
		assertSinglePayload(t, mustResolve(t, s.Resolve(key, s.Search(tokens))), payload)
	})

	t.Run("rangebrc", func(t *testing.T) {
		s := rangebrc.New(8, 8)
		key, err := s.Setup(16)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.BuildIndex(key, map[geometry.Point][][]byte{p: {[]byte(payload)}}); err != nil {
			t.Fatal(err)
		}
		tokens, err := s.Trapdoor(key, q1, q2)
		if err != nil {
			t.Fatal(err)
		}
		assertSinglePayload(t, mustResolve(t, s.Resolve(key, s.Search(tokens))), payload)
	})

	t.Run("quadbrc", func(t *testing.T) {
		s := quadbrc.New(8, 8)
		key, err := s.Setup(16)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.BuildIndex(key, map[geometry.Point][][]byte{p: {[]byte(payload)}}); err != nil {
			t.Fatal(err)
		}
		tokens, err := s.Trapdoor(key, q1, q2)
		if err != nil {
			t.Fatal(err)
		}
		assertSinglePayload(t, mustResolve(t, s.Resolve(key, s.Search(tokens))), payload)
	})

	t.Run("qdagsrc", func(t *testing.T) {
		s := qdagsrc.New(8, 8)
		key, err := s.Setup(16)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.BuildIndex(key, map[geometry.Point][][]byte{p: {[]byte(payload)}}); err != nil {
			t.Fatal(err)
		}
		token, err := s.Trapdoor(key, q1, q2)
		if err != nil {
			t.Fatal(err)
		}
		assertSinglePayload(t, mustResolve(t, s.Resolve(key, s.Search(token))), payload)
	})

	t.Run("tdagsrc", func(t *testing.T) {
		s := tdagsrc.New(8, 8)
		key, err := s.Setup(16)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.BuildIndex(key, map[geometry.Point][][]byte{p: {[]byte(payload)}}); err != nil {
			t.Fatal(err)
		}
		token, err := s.Trapdoor(key, q1, q2)
		if err != nil {
			t.Fatal(err)
		}
		assertSinglePayload(t, mustResolve(t, s.Resolve(key, s.Search(token))), payload)
	})
}

func mustResolve(t *testing.T, results [][]byte, err error) [][]byte {
	t.Helper()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return results
}

func assertSinglePayload(t *testing.T, resolved [][]byte, want string) {
	t.Helper()
	if len(resolved) != 1 {
		t.Fatalf("len(Resolve()) = %d, want 1", len(resolved))
	}
	if got := string(resolved[0]); got != want {
		t.Errorf("Resolve()[0] = %q, want %q", got, want)
	}
}
