// Package testrand provides a deterministic random bit generator for testing.
package testrand

import (
	"crypto/sha512"
	"encoding/binary"
	"io"
)

// DRBG is a deterministic random bit generator based on SHA-512 counter mode.
type DRBG struct {
	seed    []byte
	counter uint64
}

// New returns a new DRBG instance initialized with the given customization string.
func New(customization string) *DRBG {
	seed := sha512.Sum512([]byte(customization))
	return &DRBG{seed: seed[:]}
}

// Data returns n bytes of deterministic data from the DRBG.
func (d *DRBG) Data(n int) []byte {
	out := make([]byte, 0, n+sha512.Size)
	for len(out) < n {
		var ctr [8]byte
		binary.BigEndian.PutUint64(ctr[:], d.counter)
		d.counter++
		h := sha512.New()
		h.Write(d.seed)
		h.Write(ctr[:])
		out = h.Sum(out)
	}
	return out[:n]
}

// Reader returns a pseudorandom io.Reader seeded with a value from this DRBG.
func (d *DRBG) Reader() io.Reader {
	return &drbgReader{New(string(d.Data(32)))}
}

type drbgReader struct {
	d *DRBG
}

func (r *drbgReader) Read(p []byte) (int, error) {
	copy(p, r.d.Data(len(p)))
	return len(p), nil
}
