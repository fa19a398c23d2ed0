package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"
)

// File base names inside a content directory. Each may be .json, .yaml or .yml.
const (
	FileSite     = "site"
	FileServices = "services"
	FileGuides   = "cost-guides"
	FilePages    = "pages"
)

var extensions = []string{".json", ".yaml", ".yml"}

// Load reads, validates and prepares every content file in fsys.
func Load(fsys fs.FS) (*Store, error) {
	var (
		site     Site
		services []Service
		guides   []Guide
		pages    map[PageKind]Page
	)
	for _, f := range []struct {
		name string
		dst  any
	}{
		{FileSite, &site},
		{FileServices, &services},
		{FileGuides, &guides},
		{FilePages, &pages},
	} {
		if err := readInto(fsys, f.name, f.dst); err != nil {
			return nil, err
		}
	}
	return New(site, services, guides, pages)
}

// ResolveFile returns the path of base in the first supported format present in fsys.
func ResolveFile(fsys fs.FS, base string) (string, error) {
	for _, ext := range extensions {
		name := base + ext
		if _, err := fs.Stat(fsys, name); err == nil {
			return name, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("content: stat %s: %w", name, err)
		}
	}
	return "", fmt.Errorf("%w: %s{%s}", ErrMissingFile, base, ".json,.yaml,.yml")
}

func readInto(fsys fs.FS, base string, dst any) error {
	name, err := ResolveFile(fsys, base)
	if err != nil {
		return err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("content: read %s: %w", name, err)
	}
	if err := Decode(data, path.Ext(name), dst); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Decode parses data into dst. Unknown fields are rejected so that a renamed
// key in a content file fails at startup instead of rendering empty copy.
func Decode(data []byte, ext string, dst any) error {
	switch ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(dst); err != nil {
			return fmt.Errorf("%w: %w", ErrDecode, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(dst); err != nil {
			return fmt.Errorf("%w: %w", ErrDecode, err)
		}
	}
	return nil
}
