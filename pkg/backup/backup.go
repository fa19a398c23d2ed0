package backup

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Store saves snapshots of files before they are replaced.
type Store interface {
	// Save stores data under a key derived from name and returns that key.
	Save(ctx context.Context, name string, data []byte) (string, error)

	// Load returns the bytes of a snapshot previously returned by Save.
	Load(ctx context.Context, key string) ([]byte, error)
}

// timestampLayout sorts lexically in time order.
const timestampLayout = "20060102T150405.000000000Z"

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// baseName reduces a file path to a name safe for keys and file names.
func baseName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "..", "")
	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == "_" {
		return "file"
	}
	return name
}

func stamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
