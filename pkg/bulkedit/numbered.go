package bulkedit

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var header = regexp.MustCompile(`^<<<(\d+)>>>$`)

// WriteNumbered writes segments in the exchange format used for external
// rewriting: a "<<<N>>>" line, the segment text, then one blank line.
func WriteNumbered(w io.Writer, segments []Segment) error {
	bw := bufio.NewWriter(w)
	for _, s := range segments {
		if _, err := fmt.Fprintf(bw, "<<<%d>>>\n%s\n\n", s.Index, s.Text); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseNumbered reads text written in the WriteNumbered format. One
// trailing blank line per entry is the separator and is dropped; any
// further trailing newlines belong to the text, so an unedited file
// round-trips exactly.
func ParseNumbered(r io.Reader) (map[int]string, error) {
	out := make(map[int]string)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var (
		current = -1
		lines   []string
		lineNo  int
	)
	flush := func() {
		if current < 0 {
			return
		}
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = lines[:n-1]
		}
		out[current] = strings.Join(lines, "\n")
		lines = lines[:0]
	}

	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if m := header.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			idx, err := strconv.Atoi(m[1])
			if err != nil || idx < 1 {
				return nil, fmt.Errorf("%w: line %d: bad index %q", ErrMalformed, lineNo, m[1])
			}
			if _, dup := out[idx]; dup {
				return nil, fmt.Errorf("%w: line %d: duplicate index %d", ErrMalformed, lineNo, idx)
			}
			current = idx
			continue
		}
		if current < 0 {
			if strings.TrimSpace(line) != "" {
				return nil, fmt.Errorf("%w: line %d: text before first header", ErrMalformed, lineNo)
			}
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return out, nil
}
