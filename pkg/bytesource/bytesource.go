// Package bytesource adapts ordinary Go byte sources (an io.Reader, a
// byte slice) to the "pull a byte, or none" function spec §6 requires
// of the theory/claims/proof streams. It is the only package under
// pkg/ that imports io or bufio; pkg/machine never sees a
// concrete source, only a NextFunc.
package bytesource

import (
	"bufio"
	"io"
)

// NextFunc pulls the next byte of a stream, or reports none remain.
// It is the exact shape spec §6 calls "a pull a byte, or none
// function".
type NextFunc func() (byte, bool)

// FromReader wraps r in a buffered reader and returns a NextFunc over
// it. Any read error other than io.EOF is treated as end-of-stream,
// since the core has no way to report a transport-level error
// separately from "no more bytes" — that distinction belongs to the
// caller inspecting the reader directly, not to the verifier.
func FromReader(r io.Reader) NextFunc {
	br := bufio.NewReader(r)
	return func() (byte, bool) {
		b, err := br.ReadByte()
		if err != nil {
			return 0, false
		}
		return b, true
	}
}

// FromBytes returns a NextFunc over an in-memory byte slice, for
// tests and small embedded streams.
func FromBytes(data []byte) NextFunc {
	i := 0
	return func() (byte, bool) {
		if i >= len(data) {
			return 0, false
		}
		b := data[i]
		i++
		return b, true
	}
}
