package locations

import "errors"

var (
	// ErrInvalidLocation is returned by NewRegistry when an entry breaks a data invariant.
	ErrInvalidLocation = errors.New("locations: invalid location")

	// ErrDuplicateID is returned by NewRegistry when two entries share an id.
	ErrDuplicateID = errors.New("locations: duplicate id")

	// ErrDecode is returned by Load when the file cannot be decoded.
	ErrDecode = errors.New("locations: decode failed")
)
