package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/layer-renamer/internal/template"
)

func (a *app) newKeywordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keywords [token...]",
		Short: "List the template keywords, or describe the given ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) > 0 {
				for _, token := range args {
					p, ok := template.Lookup(token)
					if !ok {
						return fmt.Errorf("unknown keyword %q", token)
					}
					fmt.Fprintf(out, "%-24s %s (%s)\n", p.Token, p.Description, p.Group)
				}
				return nil
			}

			for i, g := range template.Groups() {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, g.String())
				for _, p := range template.ByGroup(g) {
					fmt.Fprintf(out, "  %-24s %s\n", p.Token, p.Description)
				}
			}
			return nil
		},
	}
}
