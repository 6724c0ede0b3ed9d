package domain

// NotFoundMessage is the user-facing summary when every candidate URL
// was probed without a verified match.
const NotFoundMessage = "Could not find the document for this identifier"

// Status classifies the terminal result of a resolution call.
type Status int

const (
	// StatusFound indicates a verified document was retrieved.
	StatusFound Status = iota

	// StatusNotFound indicates every candidate was probed without a
	// verified match.
	StatusNotFound

	// StatusTransferFailed indicates a candidate verified but the committed
	// download failed. Distinct from StatusNotFound: the URL was confirmed
	// correct, the condition is transient.
	StatusTransferFailed

	// StatusInvalidIdentifier indicates the input failed the shape
	// contract; nothing was probed.
	StatusInvalidIdentifier

	// StatusCancelled indicates the caller cancelled the resolution
	// between candidates.
	StatusCancelled
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusTransferFailed:
		return "transfer_failed"
	case StatusInvalidIdentifier:
		return "invalid_identifier"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome is the terminal value of a resolution call. Once returned it is
// owned by the caller; the resolver retains no state.
type Outcome struct {
	// Status classifies the result.
	Status Status

	// Document holds the retrieved payload.
	// Non-nil only when Status is StatusFound.
	Document *Document

	// Trace lists every probed candidate in arrival order.
	Trace Trace

	// Message is a human-readable summary for failure statuses.
	Message string
}

// Failed reports whether the resolution ended without a document.
func (o *Outcome) Failed() bool {
	return o.Status != StatusFound
}
