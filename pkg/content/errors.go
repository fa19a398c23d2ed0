package content

import "errors"

var (
	// ErrInvalid is wrapped by every load-time validation failure.
	ErrInvalid = errors.New("content: invalid")

	// ErrMissingFile is returned when a required content file is absent in every supported format.
	ErrMissingFile = errors.New("content: file not found")

	// ErrDecode is returned when a content file cannot be decoded into its schema.
	ErrDecode = errors.New("content: decode failed")
)
