package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"cdr.dev/slog/v3"
	"cdr.dev/slog/v3/sloggers/sloghuman"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"github.com/hoppxi/svgico/internal/manager"
	"github.com/hoppxi/svgico/internal/prompt"
)

var Version = "0.1.0"

// rootOptions are the flags shared by every command that converts icons.
type rootOptions struct {
	configFile string
	pick       bool
	debug      bool
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌ Error:", err)
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "svgico",
		Version: Version,
		Short:   "Convert a directory of SVG icons into multi-size ICO files",
		Long: "svgico recolors the placeholder fill of every SVG in the input directory,\n" +
			"renders it at each configured size and packs the renders into one .ico per icon.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			color, err := resolveColor(cmd, cfg, opts)
			if err != nil {
				return err
			}
			logger.Debug(cmd.Context(), "resolved color", slog.F("color", color))

			return app.Run(cmd.Context(), color)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default ./svgico.yaml when present)")
	flags.String("input", "", "directory containing the .svg icons (default ./svg)")
	flags.String("output", "", "directory the .ico files are written to (default ./__generated__)")
	flags.IntSlice("sizes", nil, "icon sizes in pixels (default 16,24,32,48,64,128,256)")
	flags.String("color", "", "fill color to apply; skips the prompt")
	flags.BoolVar(&opts.pick, "pick", false, "choose the color in a desktop color dialog")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging on stderr")

	cmd.AddCommand(newInitConfigCmd())
	cmd.AddCommand(newWatchCmd(opts))
	return cmd
}

func newLogger(w io.Writer, debug bool) slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.Make(sloghuman.Sink(w)).Leveled(level)
}

// setup loads configuration and builds the run driver for cmd.
func setup(cmd *cobra.Command, opts *rootOptions) (*manager.AppManager, manager.Config, slog.Logger, error) {
	logger := newLogger(cmd.ErrOrStderr(), opts.debug)

	cm := &manager.ConfigManager{File: opts.configFile, Flags: cmd.Flags()}
	cfg, err := cm.Decode()
	if err != nil {
		return nil, manager.Config{}, logger, err
	}
	logger.Debug(cmd.Context(), "loaded config",
		slog.F("input_dir", cfg.InputDir),
		slog.F("output_dir", cfg.OutputDir),
		slog.F("sizes", cfg.Sizes),
	)

	app, err := manager.NewFromConfig(cfg, afero.NewOsFs(), cmd.OutOrStdout(), logger)
	if err != nil {
		return nil, manager.Config{}, logger, err
	}
	return app, cfg, logger, nil
}

// resolveColor settles the run's color exactly once: an explicit value from
// flags, environment or config wins, then the color dialog, then the
// interactive prompt.
func resolveColor(cmd *cobra.Command, cfg manager.Config, opts *rootOptions) (string, error) {
	var (
		color string
		err   error
	)
	switch {
	case cfg.ColorSet:
		color = cfg.Color
	case opts.pick:
		color, err = prompt.PickColor(cfg.SourceFillColor)
	default:
		color, err = prompt.Color(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout())
	}
	if err != nil {
		return "", err
	}

	if cfg.ValidateColor {
		if err := prompt.ValidateHex(color); err != nil {
			return "", xerrors.Errorf("color rejected: %w", err)
		}
	}
	return color, nil
}
