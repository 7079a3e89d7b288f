package semdom

import (
	"errors"
	"fmt"
)

// ErrNoBody is returned when the markup parses but contains no body element
// to anchor the semantic tree on.
var ErrNoBody = errors.New("semdom: document has no body element")

// InputTooLargeError is returned by Parse when the raw markup exceeds the
// configured size limit. Nothing is parsed in that case.
type InputTooLargeError struct {
	Max    int
	Actual int
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("semdom: input of %d bytes exceeds limit of %d", e.Actual, e.Max)
}

// InvalidURLProtocolError is returned by ValidateURL for schemes that are
// either actively dangerous (javascript:, data:) or simply not allowed.
type InvalidURLProtocolError struct {
	Protocol string
}

func (e *InvalidURLProtocolError) Error() string {
	return fmt.Sprintf("semdom: url protocol %q is not allowed", e.Protocol)
}
