package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"kanjigraph/internal/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	var flags exportFlags
	cmd := &cobra.Command{
		Use:   "watch INPUT",
		Short: "Export, then export again whenever INPUT changes",
		Long: `Runs a full export, then watches INPUT and re-runs the full export after
every change. Each run rebuilds the mapping from scratch. A run that fails is
reported and the watch continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, a.cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, closeSvc, err := a.exportService(nil)
			if err != nil {
				return err
			}
			defer closeSvc()

			input := args[0]
			runExport(ctx, cmd, a, svc, input)

			w := watcher.New(input, a.logger, func(ctx context.Context) {
				runExport(ctx, cmd, a, svc, input)
			})
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Annotations = inputAnnotation(1)
	flags.register(cmd)
	return cmd
}
