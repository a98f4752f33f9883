package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/deploy-status/internal/http/health"
	"github.com/janisto/deploy-status/internal/http/routes"
	"github.com/janisto/deploy-status/internal/platform/config"
	applog "github.com/janisto/deploy-status/internal/platform/logging"
	appmiddleware "github.com/janisto/deploy-status/internal/platform/middleware"
	"github.com/janisto/deploy-status/internal/platform/openapi"
	"github.com/janisto/deploy-status/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(serve())
}

// serve runs the process and returns its exit code. Deferred log flushing
// happens before main calls os.Exit.
func serve() int {
	ctx := context.Background()
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(ctx, "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg, err := loadConfig(Version)
	if err != nil {
		applog.LogError(ctx, "config load failed", err)
		return 1
	}

	srv := newServer(cfg, newRouter(Version))
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		applog.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		return 1
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	applog.LogInfo(ctx, "server listening", zap.String("addr", srv.Addr), zap.String("port", cfg.Port), zap.String("version", Version))
	if err := run(sigCtx, srv, ln); err != nil {
		applog.LogError(ctx, "server error", err, zap.String("addr", srv.Addr))
		return 1
	}
	applog.LogInfo(ctx, "server exited")
	return 0
}

// loadConfig reads the environment. Development builds also pick up a local
// .env file; release builds never read one.
func loadConfig(version string) (config.Config, error) {
	if version == "dev" {
		return config.LoadFiles(".env")
	}
	return config.Load()
}

// newRouter assembles the middleware stack, the probe endpoint and the huma API.
func newRouter(version string) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(openapi.DocsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only run behind a proxy that sets it (Cloud Run, nginx).
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20),
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
		chimiddleware.GetHead,
	)

	router.Get("/health", health.Handler)

	api := humachi.New(router, openapi.NewConfig("Deploy Status API", version))
	routes.Register(api)
	return router
}

func newServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}
}

// run serves on ln until ctx is cancelled, then shuts down gracefully. It
// returns the serve error if the listener fails first.
func run(ctx context.Context, srv *http.Server, ln net.Listener) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-serveErr
}
