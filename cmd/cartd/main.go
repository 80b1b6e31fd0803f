package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/shoply/cartd/internal/app"
	"github.com/shoply/cartd/internal/config"
	"github.com/shoply/cartd/internal/notify"
	"github.com/shoply/cartd/internal/products"
	"github.com/shoply/cartd/internal/service"
	"github.com/shoply/cartd/internal/store"
	"github.com/shoply/cartd/pkg/config/configloader"
	"github.com/shoply/cartd/pkg/logger"
	pnats "github.com/shoply/cartd/pkg/nats"
	"golang.org/x/sync/errgroup"
)

const serviceName = "cart"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run initializes the application, connects the cart storage and the
// notification sink, and starts the HTTP and pprof servers.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](serviceName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	slogger := newLogger(cfg.Log.Level)
	slog.SetDefault(slogger)

	cartStore, err := store.NewRedisStore(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to cart storage: %w", err)
	}
	slogger.Info("Successfully connected to cart storage", slog.String("addr", cfg.Redis.Addr))

	notifier, closeNats, err := setupNotifier(cfg, slogger)
	if err != nil {
		return fmt.Errorf("failed to set up notification sink: %w", err)
	}
	defer closeNats()

	gateway := products.NewClient(cfg.Services.Products, cfg.Resilience, slogger)

	cartService, err := service.NewService(ctx, cartStore, gateway, notifier, slogger)
	if err != nil {
		return fmt.Errorf("failed to initialize cart service: %w", err)
	}

	deps := app.SetupDependencies(cartService, slogger)
	httpServer := app.SetupHttpServer(deps, cfg)
	pprofServer := &http.Server{
		Addr: cfg.PProf.Addr,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Start the HTTP server
	g.Go(func() error {
		slogger.Info("HTTP server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown HTTP server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		slogger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	// Start the pprof server if enabled
	if cfg.PProf.Enabled {
		g.Go(func() error {
			slogger.Info("Pprof server listening", slog.String("addr", pprofServer.Addr))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server failed: %w", err)
			}
			return nil
		})
		// gracefully shutdown pprof server on context cancellation
		g.Go(func() error {
			<-gCtx.Done()
			slogger.Info("Shutting down pprof server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			return pprofServer.Shutdown(shutdownCtx)
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// setupNotifier wires the notification sink: a NATS publisher when enabled,
// otherwise the structured log.
func setupNotifier(cfg *config.Config, slogger *slog.Logger) (notify.Notifier, func(), error) {
	if !cfg.Nats.Enabled {
		return notify.NewLogNotifier(slogger), func() {}, nil
	}

	nc, err := pnats.NewClient(cfg.Nats.Url, cfg.Nats.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := pnats.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}
	closeNats := func() {
		nc.Close()
		slogger.Info("NATS connection closed")
	}
	return notify.NewNatsNotifier(pnats.NewNatsPublisher(js), slogger), closeNats, nil
}

// newLogger creates a new slog.Logger instance with the specified log level.
func newLogger(level string) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	logHandler := logger.NewContextHandler(slog.NewJSONHandler(os.Stdout, loggerOpts))
	return slog.New(logHandler)
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
