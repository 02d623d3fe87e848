package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/yeongunheo/kitchenpos/internal/auth"
	"github.com/yeongunheo/kitchenpos/internal/config"
	"github.com/yeongunheo/kitchenpos/internal/events"
	"github.com/yeongunheo/kitchenpos/internal/kitchen"
	"github.com/yeongunheo/kitchenpos/internal/metrics"
	"github.com/yeongunheo/kitchenpos/internal/middleware"
	"github.com/yeongunheo/kitchenpos/internal/service"
	"github.com/yeongunheo/kitchenpos/internal/storage"
	"github.com/yeongunheo/kitchenpos/internal/storage/postgres"
	"github.com/yeongunheo/kitchenpos/internal/storage/sqlite"
	"github.com/yeongunheo/kitchenpos/pkg/api/apiconnect"
	"github.com/yeongunheo/kitchenpos/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup()
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := openStore(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	publisher, closePublisher, err := openPublisher(cfg.Events)
	if err != nil {
		return err
	}
	defer closePublisher()

	m := metrics.New()
	k := kitchen.New(store, kitchen.Options{
		Logger:    slog.Default(),
		Publisher: publisher,
		Metrics:   m,
	})

	var jwtManager *auth.JWTManager
	if cfg.Auth.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
	}

	// The first interceptor is the outermost.
	public := []connect.Interceptor{middleware.MetricsInterceptor(m), middleware.LoggingInterceptor(slog.Default())}
	protected := public
	if cfg.Auth.Disabled {
		slog.Warn("Authentication disabled, kitchen RPCs are open")
	} else {
		protected = []connect.Interceptor{
			middleware.MetricsInterceptor(m),
			middleware.RequireAuth(jwtManager),
			middleware.LoggingInterceptor(slog.Default()),
		}
	}
	publicOpts := connect.WithInterceptors(public...)
	protectedOpts := connect.WithInterceptors(protected...)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(apiconnect.NewProductServiceHandler(service.NewProductService(k.Products), protectedOpts))
	mux.Handle(apiconnect.NewMenuServiceHandler(service.NewMenuService(k.MenuGroups, k.Menus), protectedOpts))
	mux.Handle(apiconnect.NewTableServiceHandler(service.NewTableService(k.Tables), protectedOpts))
	mux.Handle(apiconnect.NewTableGroupServiceHandler(service.NewTableGroupService(k.TableGroups), protectedOpts))

	if jwtManager != nil {
		authService := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, slog.Default())
		mux.Handle(apiconnect.NewAuthServiceHandler(authService, publicOpts))
	}

	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(corsMiddleware(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.DBConfig) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		store, err := postgres.New(ctx, cfg.DatabaseURL, postgres.Options{MaxConns: cfg.MaxConns, ConnectRetries: 5})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		slog.Info("Storage initialized", "driver", cfg.Driver)
		return store, nil
	default:
		store, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		slog.Info("Storage initialized", "driver", cfg.Driver, "database", cfg.Path)
		return store, nil
	}
}

func openPublisher(cfg config.EventsConfig) (events.Publisher, func(), error) {
	if cfg.AMQPURL == "" {
		slog.Info("AMQP_URL not set, domain events are discarded")
		return events.NopPublisher{}, func() {}, nil
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange, slog.Default())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize event publisher: %w", err)
	}
	slog.Info("Publishing domain events", "exchange", cfg.Exchange)
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			slog.Warn("Failed to close event publisher", "error", err)
		}
	}, nil
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, Kitchenpos-Error-Code")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
