package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pagefarm/pagefarm/pkg/content"
	"github.com/pagefarm/pagefarm/pkg/placeholder"
)

func newPreviewCmd(cfg *config) *cobra.Command {
	var service string
	cmd := &cobra.Command{
		Use:   "preview FILE LOCATION",
		Short: "Print a content file with its placeholders resolved for one location",
		Long: "Preview resolves every placeholder of a JSON or YAML content file the way the\n" +
			"site would for LOCATION, a location id, state slug or state code. Tokens\n" +
			"without a value are left as written.",
		Example: "  contentctl preview data/content/services.yaml austin-tx --service roof-repair\n" +
			"  contentctl preview data/content/pages.yaml ia",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSite(cfg.contentFS())
			if err != nil {
				return err
			}
			loc, ok := s.registry.ByID(args[1])
			if !ok {
				loc, ok = s.registry.StateLocation(args[1])
			}
			if !ok {
				return fmt.Errorf("unknown location %q", args[1])
			}

			var svc *content.Service
			if service != "" {
				found, ok := s.store.Service(service)
				if !ok {
					return fmt.Errorf("unknown service %q", service)
				}
				svc = &found
			}

			zip := ""
			if zips := s.registry.ZipCodes(loc); len(zips) > 0 {
				zip = zips[0]
			}

			tree, err := readTree(args[0])
			if err != nil {
				return err
			}
			resolved := placeholder.ResolveTree(tree, s.store.Bindings(loc, zip, svc))
			out, err := encodeTree(resolved, filepath.Ext(args[0]))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&service, "service", "", "service slug bound to {SERVICE}")
	return cmd
}
