package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/schedulist/schedulist/internal/auth"
	"github.com/schedulist/schedulist/internal/config"
	"github.com/schedulist/schedulist/internal/metrics"
	"github.com/schedulist/schedulist/internal/middleware"
	"github.com/schedulist/schedulist/internal/service"
	"github.com/schedulist/schedulist/internal/storage/sqlite"
	"github.com/schedulist/schedulist/pkg/logging"
)

func main() {
	configPath := flag.String("config", "./schedulist.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	if cfg.JWTSecret == "change-me" {
		slog.Warn("Using the placeholder JWT secret; set jwt_secret in the config")
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration())
	authenticator := auth.NewPasswordAuthenticator(store)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "GET", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
	}))

	// Register Connect services. Auth interceptors run outermost so the
	// logging interceptor sees the authenticated identity in its context.
	common := connect.WithInterceptors(middleware.LoggingInterceptor(), metrics.Interceptor())
	service.RegisterAuthHandlers(router, service.NewAuthService(authenticator, jwtManager, slog.Default()),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)), common)
	service.RegisterEventTypeHandlers(router, service.NewEventTypeService(store),
		connect.WithInterceptors(middleware.RequireAuth(jwtManager)), common)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(router, &http2.Server{})

	slog.Info("Connect server starting", "address", cfg.Listen, "public_base_url", cfg.PublicBaseURL)
	if err := http.ListenAndServe(cfg.Listen, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
