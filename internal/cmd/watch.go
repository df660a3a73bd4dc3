package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cdr.dev/slog/v3"
	"github.com/spf13/cobra"

	"github.com/hoppxi/svgico/internal/watchers"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Convert all icons, then reconvert SVGs as they change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, cfg, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			color, err := resolveColor(cmd, cfg, opts)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.Run(ctx, color); err != nil {
				return err
			}

			return watchDir(ctx, app.InputDir(), logger, func(ctx context.Context, names []string) error {
				return app.ConvertNames(ctx, color, names)
			})
		},
	}
}

// watchDir reconverts changed SVGs until ctx is done. Conversion failures are
// logged and do not stop the watch.
func watchDir(ctx context.Context, dir string, logger slog.Logger, convert func(context.Context, []string) error) error {
	err := watchers.WatchSVG(ctx, dir, watchers.BatchDelay, logger, func(ctx context.Context, names []string) {
		if err := convert(ctx, names); err != nil {
			logger.Error(ctx, "conversion failed", slog.Error(err))
		}
	})
	if err != nil {
		return err
	}
	logger.Info(ctx, "stopped watching")
	return nil
}
