package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/layer-renamer/internal/rename"
)

func (a *app) newRenameCmd() *cobra.Command {
	var tmpl string

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename the selected layers",
		Long: `Resolves the template once per selected layer and renames it.

Layers that cannot be renamed are reported and the rest of the batch carries on.
The command exits with status 1 when any layer failed.

Example:
  layer-rename rename --manifest mockup.yaml -t "{layer:name}_{nn:1}"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tmpl == "" {
				tmpl = a.settings.DefaultTemplate
			}
			return a.runRename(cmd, tmpl)
		},
	}

	cmd.Flags().StringVarP(&tmpl, "template", "t", "", "Rename template (default from config)")
	return cmd
}

func (a *app) runRename(cmd *cobra.Command, tmpl string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	h, err := a.openHost(ctx)
	if err != nil {
		return err
	}

	hist := a.settings.LoadHistory()
	hist.Add(tmpl)
	if err := hist.Save(ctx, a.settings.HistoryPath); err != nil {
		a.logger.Warn("Failed to save history", zap.String("path", a.settings.HistoryPath), zap.Error(err))
	}

	driver := rename.NewDriver(h,
		rename.WithLogger(a.logger),
		rename.WithProgress(printProgress(out, a.settings.Verbose)),
	)

	result, err := driver.Run(ctx, tmpl)
	if err != nil {
		return err
	}

	if !result.OK() {
		return fmt.Errorf("%d failure(s) in batch", len(result.Failed))
	}
	return nil
}

// printProgress writes driver events as console lines. Verbose events are
// dropped unless verbose is set.
func printProgress(out io.Writer, verbose bool) func(rename.ProgressEvent) {
	return func(event rename.ProgressEvent) {
		if event.Level == rename.LevelVerbose && !verbose {
			return
		}

		var prefix string
		switch event.Level {
		case rename.LevelError:
			prefix = "✗ "
		case rename.LevelWarning:
			prefix = "! "
		case rename.LevelSuccess:
			prefix = "✓ "
		case rename.LevelInfo:
			prefix = "› "
		default:
			prefix = "  "
		}

		if event.Total > 0 {
			fmt.Fprintf(out, "%s[%d/%d] %s\n", prefix, event.Step, event.Total, event.Message)
			return
		}
		fmt.Fprintln(out, prefix+event.Message)
	}
}
