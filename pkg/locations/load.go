package locations

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a location list from fsys and builds a Registry from it.
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
func Load(fsys fs.FS, name string) (*Registry, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("locations: read %s: %w", name, err)
	}

	locs, err := Decode(data, path.Ext(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return NewRegistry(locs)
}

// Decode parses a location list. ext selects the format (".json", ".yaml", ".yml").
func Decode(data []byte, ext string) ([]Location, error) {
	var locs []Location
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &locs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
	default:
		if err := json.Unmarshal(data, &locs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
	}
	return locs, nil
}
