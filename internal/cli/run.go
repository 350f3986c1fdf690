package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/youmna-rabie/event-registry/internal/config"
	"github.com/youmna-rabie/event-registry/internal/event"
	"github.com/youmna-rabie/event-registry/internal/notify"
	"github.com/youmna-rabie/event-registry/internal/registration"
	"github.com/youmna-rabie/event-registry/internal/server"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the HTTP server",
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath, ".env")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg.Logging, os.Stdout)
	slog.SetDefault(logger)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, logger, ln)
}

// serve runs the API on ln, together with the notification bus when enabled,
// until ctx is done or either of them fails.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, ln net.Listener) error {
	events := event.NewMemoryStore()
	registrations := registration.NewMemoryStore(events)

	var (
		publisher notify.Publisher = notify.Discard{}
		bus       *notify.Bus
	)
	if !cfg.Notifications.Disabled {
		b, err := notify.NewBus(logger, notify.Options{BufferSize: cfg.Notifications.BufferSize})
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("creating notification bus: %w", err)
		}
		bus, publisher = b, b
		defer func() {
			if err := bus.Close(); err != nil {
				logger.Warn("closing notification bus", "error", err)
			}
		}()
	}

	srv := server.NewServer(cfg, events, registrations, publisher, logger)
	httpSrv := &http.Server{
		Handler:           srv,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	if bus != nil {
		g.Go(func() error {
			return bus.Run(ctx)
		})
	}

	g.Go(func() error {
		// The bus drops messages published before its handlers subscribe.
		if bus != nil {
			select {
			case <-bus.Running():
			case <-ctx.Done():
				_ = ln.Close()
				return nil
			}
		}

		logger.Info("server starting", "addr", ln.Addr().String())
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down gracefully")
		shutCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newLogger builds the process logger: JSON for machines, tint's coloured
// text handler for terminals.
func newLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	var handler slog.Handler
	level := parseLogLevel(cfg.Level)

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05.000",
		})
	}

	return slog.New(handler)
}

func parseLogLevel(level string) slog.Level {
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
