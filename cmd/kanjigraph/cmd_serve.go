package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"kanjigraph/internal/handler"
	"kanjigraph/internal/hub"
	"kanjigraph/internal/service"
	"kanjigraph/internal/watcher"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr    string
		catalog string
		watch   bool
	)
	cmd := &cobra.Command{
		Use:   "serve INPUT",
		Short: "Serve the relation mapping and diagrams over HTTP",
		Long: `Loads INPUT and serves it as a JSON API. With --watch (the default) the
mapping is reloaded whenever INPUT changes and clients subscribed to
/api/events are notified.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Serve.Addr = addr
			}
			if cmd.Flags().Changed("catalog") {
				a.cfg.Catalog.Path = catalog
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx, args[0], watch)
		},
	}
	cmd.Annotations = inputAnnotation(1)
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (default: :3000)")
	cmd.Flags().StringVar(&catalog, "catalog", "", "SQLite catalog to expose artifacts from")
	cmd.Flags().BoolVar(&watch, "watch", true, "Reload the mapping when INPUT changes")
	return cmd
}

func (a *app) serve(ctx context.Context, input string, watch bool) error {
	eventBus := service.NewEventBus()
	kanjiSvc := service.NewKanjiService(a.logger, eventBus, a.renderOptions())
	if err := kanjiSvc.Load(input); err != nil {
		return err
	}

	catalog, err := a.openCatalog()
	if err != nil {
		return err
	}
	if catalog != nil {
		defer catalog.Close()
	}

	sseHub := hub.New(a.logger)
	kanjiHandler := handler.NewKanjiHandler(kanjiSvc, a.logger)
	if catalog != nil {
		kanjiHandler.SetCatalog(catalog)
	}

	mux := http.NewServeMux()
	kanjiHandler.Register(mux)
	mux.Handle("GET /api/events", sseHub)

	server := &http.Server{
		Addr: a.cfg.Serve.Addr,
		Handler: handler.Chain(mux,
			handler.Recover(a.logger),
			handler.Logger(a.logger),
		),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sseHub.Run(gctx)
		return nil
	})

	// Connect event bus to SSE hub
	events := make(chan service.Event, 100)
	eventBus.Subscribe(events)
	g.Go(func() error {
		defer eventBus.Unsubscribe(events)
		for {
			select {
			case event := <-events:
				sseHub.Broadcast(event)
			case <-gctx.Done():
				return nil
			}
		}
	})

	if watch {
		w := watcher.New(input, a.logger, func(context.Context) {
			if err := kanjiSvc.Load(input); err != nil {
				a.logger.Warn("reload failed, keeping previous mapping", zap.Error(err))
			}
		})
		g.Go(func() error {
			if err := w.Watch(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		a.logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
