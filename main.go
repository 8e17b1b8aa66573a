package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/diddle/cliparse"
	"github.com/danielhkuo/diddle/db"
	"github.com/danielhkuo/diddle/middleware"
	"github.com/danielhkuo/diddle/notify"
	"github.com/danielhkuo/diddle/router"
	"github.com/danielhkuo/diddle/voting"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("diddle stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	if err := cliparse.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error parsing flags: %w", err)
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return err
	}

	// Apply schema migrations
	if err := db.Migrate(dialect, cfg.DatabaseURL); err != nil {
		return err
	}
	slog.Info("Database schema ready", "dialect", dialect)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	notifier, closeNotifier, err := newNotifier(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeNotifier.Close()

	queue := notify.NewQueue(notify.DefaultSize, cfg.NotifyDelay)
	dispatcher := notify.NewDispatcher(queue, notifier, store, cfg.BaseURL)
	engine := voting.NewEngine(store, dispatcher)

	// Create server
	server := &http.Server{
		Handler:           middleware.CORS(router.NewRouter(store, engine, dispatcher, cfg)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return queue.Run(gctx)
	})
	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port, "base_url", cfg.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	slog.Info("Server closed", "error", err)
	return err
}

// newNotifier builds the configured backend. The returned closer is always
// safe to call.
func newNotifier(ctx context.Context, cfg cliparse.Config) (notify.Notifier, io.Closer, error) {
	switch cfg.Notifier {
	case cliparse.NotifierRedis:
		n, err := notify.NewRedisNotifier(cfg.RedisURL, cfg.NotifyChannel)
		if err != nil {
			return nil, nil, err
		}
		if err := n.Ping(ctx); err != nil {
			slog.Warn("redis not reachable, notifications may be lost", "error", err)
		}
		return n, n, nil
	case cliparse.NotifierNone:
		return notify.Nop{}, io.NopCloser(nil), nil
	default:
		return notify.LogNotifier{}, io.NopCloser(nil), nil
	}
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
