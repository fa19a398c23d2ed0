package bulkedit

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/pagefarm/pagefarm/pkg/placeholder"
)

// Segment is one prose string extracted from a content tree.
type Segment struct {
	Path   string   `json:"path"`
	Text   string   `json:"text"`
	Tokens []string `json:"tokens,omitempty"`
	Index  int      `json:"index"`
}

// Extract numbers every prose string of a decoded JSON tree from 1.
// Object keys are visited in sorted order, so the numbering is stable for
// a given tree. Strings under skipped keys and strings with no letters
// outside their placeholders are left out.
func Extract(tree any, opts ...Option) []Segment {
	var segs []Segment
	w := &walker{cfg: newConfig(opts), visit: func(s Segment) (string, bool) {
		segs = append(segs, s)
		return "", false
	}}
	w.walk(tree, "")
	return segs
}

// Validate checks replacements against the extracted segments. Every
// replacement must target a known index and keep the original token
// inventory exactly. All problems are reported together; a *MismatchError
// is returned (possibly joined with ErrUnknownSegment) when tokens differ.
func Validate(segments []Segment, replacements map[int]string) error {
	byIndex := make(map[int]Segment, len(segments))
	for _, s := range segments {
		byIndex[s.Index] = s
	}

	var (
		unknown    []string
		mismatches []Mismatch
	)
	for _, idx := range slices.Sorted(maps.Keys(replacements)) {
		seg, ok := byIndex[idx]
		if !ok {
			unknown = append(unknown, strconv.Itoa(idx))
			continue
		}
		got := placeholder.Find(replacements[idx])
		if !slices.Equal(seg.Tokens, got) {
			mismatches = append(mismatches, Mismatch{
				Index: idx,
				Path:  seg.Path,
				Want:  seg.Tokens,
				Got:   got,
			})
		}
	}

	var errs []error
	if len(unknown) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrUnknownSegment, strings.Join(unknown, ", ")))
	}
	if len(mismatches) > 0 {
		errs = append(errs, &MismatchError{Mismatches: mismatches})
	}
	return errors.Join(errs...)
}

// Apply returns a copy of tree with the numbered replacements inserted.
// Nothing is applied unless every replacement passes Validate; on error the
// returned tree is nil.
func Apply(tree any, replacements map[int]string, opts ...Option) (any, error) {
	if err := Validate(Extract(tree, opts...), replacements); err != nil {
		return nil, err
	}

	w := &walker{cfg: newConfig(opts), visit: func(s Segment) (string, bool) {
		r, ok := replacements[s.Index]
		return r, ok
	}}
	return w.walk(tree, ""), nil
}

// walker rebuilds a tree while numbering eligible strings in visit order.
type walker struct {
	cfg   *config
	visit func(Segment) (string, bool)
	next  int
}

func (w *walker) walk(v any, path string) any {
	switch t := v.(type) {
	case string:
		if !prose(t) {
			return t
		}
		w.next++
		seg := Segment{Index: w.next, Path: path, Text: t, Tokens: placeholder.Find(t)}
		if r, ok := w.visit(seg); ok {
			return r
		}
		return t
	case map[string]any:
		out := make(map[string]any, len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			if _, skip := w.cfg.skip[k]; skip {
				out[k] = clone(t[k])
				continue
			}
			out[k] = w.walk(t[k], path+"/"+escape(k))
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = w.walk(val, path+"/"+strconv.Itoa(i))
		}
		return out
	default:
		return v
	}
}

// prose reports whether s has letters once placeholder tokens are removed.
func prose(s string) bool {
	for _, tok := range placeholder.Find(s) {
		s = strings.ReplaceAll(s, tok, "")
	}
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = clone(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = clone(val)
		}
		return out
	default:
		return v
	}
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escape(key string) string {
	return pointerEscaper.Replace(key)
}
