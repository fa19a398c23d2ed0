// Command contentctl checks and edits the site content files: it validates a
// content directory, exports prose for bulk rewriting, applies rewritten
// prose back with a backup, and previews routing decisions and resolved copy.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/pagefarm/pagefarm/data"
	"github.com/pagefarm/pagefarm/pkg/backup"
	"github.com/pagefarm/pagefarm/pkg/content"
	"github.com/pagefarm/pagefarm/pkg/locations"
	"github.com/pagefarm/pagefarm/pkg/siteroute"
)

type config struct {
	ContentDir string `env:"CONTENT_DIR"`
	Routing    siteroute.Config
	Backup     backup.S3Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config

	root := &cobra.Command{
		Use:          "contentctl",
		Short:        "Validate and bulk-edit site content",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := env.ParseAs[config]()
			if err != nil {
				return fmt.Errorf("parse environment: %w", err)
			}
			if cmd.Flags().Changed("dir") {
				parsed.ContentDir = cfg.ContentDir
			}
			cfg = parsed
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfg.ContentDir, "dir", "", "content directory (default CONTENT_DIR, else the embedded sample site)")

	root.AddCommand(
		newValidateCmd(&cfg),
		newExtractCmd(),
		newApplyCmd(&cfg),
		newRouteCmd(&cfg),
		newPreviewCmd(&cfg),
	)
	return root
}

// site is a loaded content directory.
type site struct {
	store    *content.Store
	registry *locations.Registry
}

func (c *config) contentFS() fs.FS {
	if c.ContentDir == "" {
		return data.Content()
	}
	return os.DirFS(c.ContentDir)
}

func loadSite(fsys fs.FS) (*site, error) {
	store, err := content.Load(fsys)
	if err != nil {
		return nil, err
	}
	registry, err := loadRegistry(fsys)
	if err != nil {
		return nil, err
	}
	return &site{store: store, registry: registry}, nil
}

func loadRegistry(fsys fs.FS) (*locations.Registry, error) {
	name, err := content.ResolveFile(fsys, "locations")
	if err != nil {
		return nil, err
	}
	return locations.Load(fsys, name)
}

// baseName strips the directory and extension of a content file name.
func baseName(name string) string {
	b := path.Base(name)
	return b[:len(b)-len(path.Ext(b))]
}
