package pagecache

import "errors"

var (
	// ErrNotFound is returned when a key is absent or expired.
	ErrNotFound = errors.New("pagecache: entry not found")

	// ErrClosed is returned by writes to a closed store.
	ErrClosed = errors.New("pagecache: closed")

	ErrMarshal   = errors.New("pagecache: failed to marshal page")
	ErrUnmarshal = errors.New("pagecache: failed to unmarshal page")
)
