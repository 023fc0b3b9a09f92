// Package canon implements the fixed-width, collision-free byte encodings used as HMAC input
// throughout the module. Every scheme must use the same encoding at build time and at query
// time for a given cover shape: the EMM engine's labels are only as strong as this binding (see
// the emm package doc).
//
// The original implementation this module is derived from serialized covers as JSON wrapping
// base64-tagged byte strings. This package instead uses fixed-width big-endian packed integers,
// which spec §4's canonical-serialization invariant permits as an alternative so long as build
// and query encode a given cover identically.
package canon

import "encoding/binary"

// Interval is a closed integer interval [Lo, Hi], the unit the rangetree and tdag packages
// operate on.
type Interval struct {
	Lo, Hi int64
}

// Bytes returns a fixed 16-byte big-endian encoding of iv: 8 bytes of Lo followed by 8 bytes of
// Hi.
func (iv Interval) Bytes() []byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], uint64(iv.Lo))
	binary.BigEndian.PutUint64(b[8:16], uint64(iv.Hi))
	return b[:]
}

// Interval2D encodes a pair of per-axis intervals (an X cover and a Y cover) as used by the
// RangeBRC and TdagSRC schemes' labels and trapdoor tokens.
func Interval2D(x, y Interval) []byte {
	b := make([]byte, 0, 32)
	b = append(b, x.Bytes()...)
	b = append(b, y.Bytes()...)
	return b
}

// Interval3D encodes a triple of per-axis intervals, the 3-D counterpart of Interval2D.
func Interval3D(x, y, z Interval) []byte {
	b := make([]byte, 0, 48)
	b = append(b, x.Bytes()...)
	b = append(b, y.Bytes()...)
	b = append(b, z.Bytes()...)
	return b
}
