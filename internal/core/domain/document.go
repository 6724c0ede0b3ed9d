package domain

import "time"

// Document is a successfully retrieved specification payload.
type Document struct {
	// Identifier is the product code the document was resolved for.
	Identifier Identifier

	// SourceURL is the candidate URL that served the document.
	SourceURL string

	// Filename is the suggested name for saving the payload.
	Filename string

	// Payload is the raw document bytes.
	Payload []byte

	// Retrieved is when the transfer completed.
	Retrieved time.Time
}

// Size returns the payload length in bytes.
func (d *Document) Size() int {
	return len(d.Payload)
}
