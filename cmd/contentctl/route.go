package main

import (
	"fmt"
	"net/url"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pagefarm/pagefarm/pkg/siteroute"
)

func newRouteCmd(cfg *config) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "route HOST [PATH]",
		Short: "Show the routing decision for a host and path",
		Example: "  contentctl route austin-tx.example.com /roof-repair\n" +
			"  contentctl route example.com '/locations/austin-tx?utm=1'",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSite(cfg.contentFS())
			if err != nil {
				return err
			}
			routing := cfg.Routing
			routing.ServiceSlugs = s.store.ServiceSlugs()
			engine := siteroute.New(routing, s.registry)

			target := "/"
			if len(args) == 2 {
				target = args[1]
			}
			u, err := url.Parse(target)
			if err != nil {
				return fmt.Errorf("invalid path %q: %w", target, err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if all {
				req := engine.Prepare(args[0], u.Path, u.RawQuery)
				for _, r := range engine.Rules() {
					_, ok := r.Match(req)
					fmt.Fprintf(w, "%s\t%t\n", r.Name, ok)
				}
				fmt.Fprintln(w)
			}

			d := engine.Decide(args[0], u.Path, u.RawQuery)
			fmt.Fprintf(w, "kind\t%s\n", d.Route.Kind)
			if d.Route.ID != "" {
				fmt.Fprintf(w, "tenant\t%s\n", d.Route.ID)
			}
			fmt.Fprintf(w, "rule\t%s\n", d.Rule)
			fmt.Fprintf(w, "action\t%s\n", d.Action)
			switch d.Action {
			case siteroute.ActionRedirect:
				fmt.Fprintf(w, "status\t%d\n", d.Status)
				fmt.Fprintf(w, "location\t%s\n", d.URL)
			case siteroute.ActionRewrite:
				fmt.Fprintf(w, "path\t%s\n", d.Path)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "rules", false, "also list which rules match, in evaluation order")
	return cmd
}
