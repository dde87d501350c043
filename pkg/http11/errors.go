package http11

import "errors"

// Parser errors.
var (
	// ErrInvalidStatusLine indicates the response status line could not be
	// parsed (oversize version/phrase, or a non-digit in the status code).
	ErrInvalidStatusLine = errors.New("http11: invalid status line")

	// ErrInvalidChunkSize indicates a chunk-size line did not contain a
	// usable hex digit before LF.
	ErrInvalidChunkSize = errors.New("http11: invalid chunk size")
)
