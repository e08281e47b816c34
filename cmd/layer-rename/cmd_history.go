package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recently used templates, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			recent := a.settings.LoadHistory().Recent()
			if len(recent) == 0 {
				fmt.Fprintln(out, "No recent renames")
				return nil
			}
			for i, tmpl := range recent {
				fmt.Fprintf(out, "%d. %s\n", i+1, tmpl)
			}
			return nil
		},
	}
}
