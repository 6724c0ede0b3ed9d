// Package signature verifies document payloads by their leading magic
// bytes. A candidate URL counts as a hit only when the served bytes carry
// the expected marker; anything else (typically an HTML error page served
// with a 200 status) is a miss.
package signature

import "bytes"

// PDFMarker is the 4-byte magic sequence every PDF document starts with.
var PDFMarker = []byte("%PDF")

// Verifier checks byte buffers against an expected leading marker.
// It is pure and stateless: no I/O, never an error, never a panic.
type Verifier struct {
	marker []byte
}

// New creates a verifier for the given magic marker.
func New(marker []byte) *Verifier {
	m := make([]byte, len(marker))
	copy(m, marker)
	return &Verifier{marker: m}
}

// PDF returns a verifier for the PDF magic marker.
func PDF() *Verifier {
	return New(PDFMarker)
}

// Valid reports whether buf begins with the expected marker.
// Buffers shorter than the marker are invalid.
func (v *Verifier) Valid(buf []byte) bool {
	if len(buf) < len(v.marker) {
		return false
	}
	return bytes.Equal(buf[:len(v.marker)], v.marker)
}

// MarkerLength returns the number of leading bytes the verifier inspects.
func (v *Verifier) MarkerLength() int {
	return len(v.marker)
}

// IsPDF reports whether buf begins with the PDF magic marker.
func IsPDF(buf []byte) bool {
	return PDF().Valid(buf)
}
