package bulkedit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPlaceholderMismatch is matched by every *MismatchError.
	ErrPlaceholderMismatch = errors.New("bulkedit: placeholder mismatch")

	// ErrUnknownSegment is returned when a replacement targets an index that was never extracted.
	ErrUnknownSegment = errors.New("bulkedit: unknown segment")

	// ErrMalformed is returned by ParseNumbered for input that is not in the numbered format.
	ErrMalformed = errors.New("bulkedit: malformed numbered text")
)

// Mismatch describes one replacement whose token inventory differs from the original.
type Mismatch struct {
	Path  string
	Want  []string
	Got   []string
	Index int
}

// Missing returns tokens present in the original but absent from the replacement.
func (m Mismatch) Missing() []string {
	return difference(m.Want, m.Got)
}

// Extra returns tokens introduced by the replacement.
func (m Mismatch) Extra() []string {
	return difference(m.Got, m.Want)
}

// MismatchError lists every rejected replacement.
type MismatchError struct {
	Mismatches []Mismatch
}

func (e *MismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d segment(s) rejected", ErrPlaceholderMismatch, len(e.Mismatches))
	for _, m := range e.Mismatches {
		fmt.Fprintf(&b, "\n  #%d %s: want %v, got %v", m.Index, m.Path, m.Want, m.Got)
	}
	return b.String()
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrPlaceholderMismatch
}

func difference(a, b []string) []string {
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	var out []string
	for _, s := range a {
		if _, ok := set[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}
