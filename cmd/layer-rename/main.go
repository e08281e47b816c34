package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/layer-renamer/internal/config"
	"github.com/handiism/layer-renamer/internal/host"
	"github.com/handiism/layer-renamer/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app holds the state shared by all subcommands.
type app struct {
	configPath string
	manifest   string
	dir        string
	selection  []string
	verbose    bool

	settings *config.Settings
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "layer-rename",
		Short: "Batch-rename layers from a template",
		Long: `layer-rename renames every selected layer of a document from one template.

A template is literal text mixed with keywords such as {layer:name}, {doc:width},
{year} or {nn:1}. Run "layer-rename keywords" for the full list.

Documents are either a YAML manifest (--manifest) or a directory of images (--dir),
where every image file is a layer.

For the interactive dialog, use: layer-rename-tui`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to config file (default: user config directory)")
	flags.StringVar(&a.manifest, "manifest", "", "YAML document manifest")
	flags.StringVar(&a.dir, "dir", "", "Directory of images to treat as a document")
	flags.StringSliceVar(&a.selection, "select", nil, "Select layers whose names match these patterns")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Show verbose output")

	root.AddCommand(
		a.newRenameCmd(),
		a.newPreviewCmd(),
		a.newHistoryCmd(),
		a.newKeywordsCmd(),
	)
	return root
}

// setup loads the settings and builds the logger.
func (a *app) setup() error {
	path := a.configPath
	if path == "" {
		path = config.DefaultPath()
	}

	settings, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.verbose {
		settings.Verbose = true
	}

	logger, err := logging.New(settings)
	if err != nil {
		return err
	}

	a.settings = settings
	a.logger = logger
	return nil
}

// openHost opens the document named by the flags.
func (a *app) openHost(ctx context.Context) (host.Source, error) {
	return host.Open(ctx, host.OpenOptions{
		Manifest: a.manifest,
		Dir:      a.dir,
		Select:   a.selection,
		ImageDir: a.settings.ToImageDirOptions(),
		Logger:   a.logger,
	})
}
