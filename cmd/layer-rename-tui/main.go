package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/handiism/layer-renamer/internal/config"
	"github.com/handiism/layer-renamer/internal/host"
	"github.com/handiism/layer-renamer/internal/logging"
	"github.com/handiism/layer-renamer/internal/rename"
	"github.com/handiism/layer-renamer/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		opts       host.OpenOptions
	)

	cmd := &cobra.Command{
		Use:          "layer-rename-tui",
		Short:        "Interactive batch layer renamer",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = config.DefaultPath()
			}
			settings, err := config.Load(configPath)
			if err != nil {
				return err
			}

			logger, err := logging.NewFileOnly(settings)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			opts.ImageDir = settings.ToImageDirOptions()
			opts.Logger = logger
			h, err := host.Open(cmd.Context(), opts)
			if err != nil {
				return err
			}

			result, err := tui.Run(tui.Config{
				Driver:   rename.NewDriver(h, rename.WithLogger(logger)),
				Settings: settings,
				History:  settings.LoadHistory(),
				Logger:   logger,
			})
			if err != nil {
				return err
			}
			if result == nil {
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Renamed %d layer(s)\n", len(result.Renamed))
			for _, f := range result.Failed {
				fmt.Fprintf(out, "✗ %s\n", f.Error())
			}
			if !result.OK() {
				return fmt.Errorf("%d failure(s) in batch", len(result.Failed))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: user config directory)")
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "YAML document manifest")
	cmd.Flags().StringVar(&opts.Dir, "dir", "", "Directory of images to treat as a document")
	cmd.Flags().StringSliceVar(&opts.Select, "select", nil, "Select layers whose names match these patterns")
	return cmd
}
