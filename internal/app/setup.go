// Package app contains the application setup for the cart service.
package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shoply/cartd/internal/config"
	"github.com/shoply/cartd/internal/service"
	"github.com/shoply/cartd/internal/transport/rest"
	"github.com/shoply/cartd/pkg/server"
)

type Dependencies struct {
	CartService service.CartService
	Logger      *slog.Logger
}

func SetupDependencies(cartService service.CartService, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		CartService: cartService,
		Logger:      logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the cart service.
// Used by tests to set up the handler with the necessary middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the cart service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	cartHandler := rest.NewHandler(deps.CartService, deps.Logger)
	cartHandler.RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the cart service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
