package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pagefarm/pagefarm/pkg/slug"
)

var reservedSlugs = []string{"services", "about", "contact", "states", "api", "locations", "cost-guides", "static"}

func newValidateCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load every content file and cross-check references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSite(cfg.contentFS())
			if err != nil {
				return err
			}
			if err := s.check(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d locations in %d states, %d services, %d cost guides\n",
				s.registry.Len(), len(s.registry.States()), len(s.store.Services()), len(s.store.Guides()))
			return nil
		},
	}
}

// maxLabelLen is the DNS label limit location ids must fit in.
const maxLabelLen = 63

// locationID is the canonical id of a city: its folded name and state.
func locationID(name, state string) string {
	return slug.Make(name+" "+state, slug.StripChars("'’"), slug.MaxLength(maxLabelLen))
}

// check reports problems the loaders cannot see on their own: location
// service blocks naming unknown services, service slugs that would shadow
// a site page on a subdomain, and location ids that drift from the city
// name they serve.
func (s *site) check() error {
	var errs []error
	for _, svc := range s.store.ServiceSlugs() {
		if slices.Contains(reservedSlugs, svc) {
			errs = append(errs, fmt.Errorf("service %q: slug is reserved for site pages", svc))
		}
	}
	for _, loc := range s.registry.All() {
		if want := locationID(loc.Name, loc.State); loc.ID != want {
			errs = append(errs, fmt.Errorf("location %q: id should be %q for %s, %s", loc.ID, want, loc.Name, loc.State))
		}
		for _, b := range loc.Services {
			if _, ok := s.store.Service(b.Slug); !ok {
				errs = append(errs, fmt.Errorf("location %q: service block %q is not in the catalog", loc.ID, b.Slug))
			}
		}
	}
	return errors.Join(errs...)
}
