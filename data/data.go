// Package data embeds the sample site used by local runs and tests.
package data

import (
	"embed"
	"io/fs"
)

//go:embed content emails static
var files embed.FS

// LocationsFile is the registry file name inside Content.
const LocationsFile = "locations.yaml"

// Content returns the sample content directory.
func Content() fs.FS { return sub("content") }

// Emails returns the email templates and layouts.
func Emails() fs.FS { return sub("emails") }

// Static returns public assets served under /static/.
func Static() fs.FS { return sub("static") }

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return f
}
