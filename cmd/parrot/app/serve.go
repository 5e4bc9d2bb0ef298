package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/parrotdev/parrot/internal/api"
	"github.com/parrotdev/parrot/internal/service"
	"github.com/parrotdev/parrot/internal/watcher"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the API server and block until terminated.

The bind address is taken from --host/--port or the PARROT_HOST/PARROT_PORT
environment variables. With --watch (the default) the server restarts when
the source tree changes; in-flight requests are dropped on restart.`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second
	serverRequestTimeout   = 10 * time.Second
	serverReadTimeout      = 10 * time.Second
	serverWriteTimeout     = 15 * time.Second // must exceed serverRequestTimeout so the timeout middleware can respond
	serverIdleTimeout      = 60 * time.Second
)

func init() {
	serveCmd.Flags().String("host", "127.0.0.1", "Host to bind the server to")
	serveCmd.Flags().Int("port", 8000, "Port to bind the server to")
	serveCmd.Flags().Bool("watch", true, "Restart on source changes")

	for _, flag := range []string{"host", "port", "watch"} {
		if err := viper.BindPFlag(flag, serveCmd.Flags().Lookup(flag)); err != nil {
			slog.Error("Failed to bind serve flag", "flag", flag, "error", err)
		}
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	host := viper.GetString("host")
	port := viper.GetInt("port")
	watch := viper.GetBool("watch")

	address := net.JoinHostPort(host, strconv.Itoa(port))
	baseURL := fmt.Sprintf("http://%s", address)

	slog.Info("Starting API server", "address", baseURL, "watch", watch)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	svc := service.New()

	for {
		restart, err := serveOnce(svc, address, baseURL, watch, quit)
		if err != nil {
			return err
		}
		if !restart {
			return nil
		}
		slog.Info("Source change detected, restarting server")
	}
}

// serveOnce runs the server until it is terminated by a signal, fails, or
// (in watch mode) a source change requests a restart. A watch-triggered
// restart closes the listener immediately without draining requests.
func serveOnce(svc *service.Service, address, baseURL string, watch bool, quit <-chan os.Signal) (restart bool, err error) {
	router := api.NewServer(svc,
		api.WithBaseURL(baseURL),
		api.WithMiddlewares(
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(serverRequestTimeout),
			api.LoggingMiddleware,
		),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var changed chan struct{}
	if watch {
		w, werr := watcher.New(".")
		if werr != nil {
			slog.Warn("Watch mode unavailable, continuing without it", "error", werr)
		} else {
			defer func() { _ = w.Close() }()

			watchCtx, cancel := context.WithCancel(context.Background())
			defer cancel()

			changed = make(chan struct{}, 1)
			go func() {
				if err := w.Watch(watchCtx); err == nil {
					changed <- struct{}{}
				}
			}()
		}
	}

	select {
	case err := <-serveErr:
		return false, fmt.Errorf("server failed: %w", err)

	case <-changed:
		// Hard disconnect: watch restarts do not drain in-flight requests.
		_ = server.Close()
		return true, nil

	case <-quit:
		slog.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server forced to shutdown", "error", err)
			return false, err
		}

		slog.Info("Server shutdown complete")
		return false, nil
	}
}
