package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/layer-renamer/internal/rename"
	"github.com/handiism/layer-renamer/internal/template"
)

func (a *app) newPreviewCmd() *cobra.Command {
	var tmpl string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the names a rename would produce",
		Long: `Shows the live preview of the template for the first selected layer,
with $↑ and $↓ standing in for sequence numbers, followed by the name every
selected layer would get. Nothing is renamed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tmpl == "" {
				tmpl = a.settings.DefaultTemplate
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			h, err := a.openHost(ctx)
			if err != nil {
				return err
			}
			driver := rename.NewDriver(h, rename.WithLogger(a.logger))

			preview, err := driver.Preview(ctx, tmpl)
			if err != nil {
				return err
			}
			plan, err := driver.Plan(ctx, tmpl)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Preview: %s\n", preview)
			if template.HasCounters(tmpl) {
				fmt.Fprintf(out, "%s counts down to the last layer, %s counts up from the first\n",
					template.AscendingMarker, template.DescendingMarker)
			}
			if len(plan) == 0 {
				fmt.Fprintln(out, "No layers selected")
				return nil
			}
			fmt.Fprintln(out)
			for _, p := range plan {
				fmt.Fprintf(out, "  %s → %s\n", p.OldName, p.NewName)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&tmpl, "template", "t", "", "Rename template (default from config)")
	return cmd
}
