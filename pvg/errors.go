package pvg

import "errors"

// Sentinel errors returned by the decoder.
var (
	// ErrTruncated is returned when the buffer ends mid-value.
	ErrTruncated = errors.New("pvg: truncated buffer")

	// ErrUnknownTag is returned when the decode loop hits a record tag
	// it does not recognize. Remaining bytes are treated as corrupt.
	ErrUnknownTag = errors.New("pvg: unknown record tag")

	// ErrHeader is returned when the document header cannot be parsed.
	ErrHeader = errors.New("pvg: corrupt header")

	// ErrVersion is returned for format versions this decoder does not
	// understand.
	ErrVersion = errors.New("pvg: unsupported version")

	// ErrTooManyRecords is returned when a document exceeds the one-byte
	// primitive count.
	ErrTooManyRecords = errors.New("pvg: record count exceeds 255")
)
