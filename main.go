package main

import (
	"context"
	stderrors "errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"statcompare/adapters/excel"
	"statcompare/adapters/stats/inferential"
	"statcompare/app"
	"statcompare/internal"
	"statcompare/internal/config"
	"statcompare/internal/errors"
	"statcompare/internal/metrics"
	"statcompare/ui"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Logging.Level))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appConfig, logger); err != nil {
		logger.Error("server stopped: %v", err)
		os.Exit(1)
	}
}

// run serves the public UI and, when enabled, the admin listener until ctx
// is cancelled or either server fails.
func run(ctx context.Context, appConfig *config.Config, logger *internal.Logger) error {
	recorder := metrics.NewRecorder()
	service := app.NewComparisonService(excel.NewUploadReader(logger), inferential.Executor{}, recorder, logger)

	server, err := ui.NewServer(service, logger, appConfig.Server.GinMode)
	if err != nil {
		return errors.Wrap(err, "failed to initialize server")
	}

	servers := []*http.Server{{
		Addr:    ":" + appConfig.Server.Port,
		Handler: server.Handler(),
	}}
	if appConfig.Admin.Enabled {
		servers = append(servers, &http.Server{
			Addr:    ":" + appConfig.Admin.Port,
			Handler: ui.NewAdminRouter(recorder.Handler()),
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			logger.Info("listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
				return errors.Wrapf(err, "listener %s failed", srv.Addr)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down")
		var firstErr error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	})

	return g.Wait()
}
