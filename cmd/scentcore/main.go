package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/scentify/scentcore/internal/config"
	"github.com/scentify/scentcore/internal/dataset"
	domcat "github.com/scentify/scentcore/internal/domain/catalog"
	"github.com/scentify/scentcore/internal/kv"
	kvMemory "github.com/scentify/scentcore/internal/kv/memory"
	kvRedis "github.com/scentify/scentcore/internal/kv/redis"
	logpkg "github.com/scentify/scentcore/internal/logger"
	"github.com/scentify/scentcore/internal/metrics"
	clicksrepo "github.com/scentify/scentcore/internal/repository/clicks"
	"github.com/scentify/scentcore/internal/repository/respcache"
	chiTransport "github.com/scentify/scentcore/internal/transport/chi"
	"github.com/scentify/scentcore/internal/transport/fragella"
	cataloguc "github.com/scentify/scentcore/internal/usecase/catalog"
	healthuc "github.com/scentify/scentcore/internal/usecase/health"
	recommenduc "github.com/scentify/scentcore/internal/usecase/recommend"
	usageuc "github.com/scentify/scentcore/internal/usecase/usage"
	"github.com/scentify/scentcore/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting scentcore API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.Strings("cache_addrs", cfg.Cache.Addrs),
	)

	// Create cache store based on driver
	var store kv.Store
	switch cfg.Cache.Driver {
	case "memory":
		store = kvMemory.NewStore()
	case "redis":
		store, err = kvRedis.NewStore(kvRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
	default:
		logger.Fatal("Unknown cache driver", zap.String("driver", cfg.Cache.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Cache.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Cache store not ready", zap.Error(err))
	}
	logger.Info("Connected to cache store")

	// Register catalog metrics explicitly (no init())
	metrics.RegisterCatalogMetrics()

	// Provider client
	client := fragella.NewClient(&fragella.Config{
		BaseURL:     cfg.Provider.BaseURL,
		APIKey:      cfg.Provider.APIKey,
		Timeout:     time.Duration(cfg.Provider.TimeoutSec) * time.Second,
		MaxAttempts: cfg.Provider.MaxAttempts,
		RetryBase:   time.Duration(cfg.Provider.RetryBaseMs) * time.Millisecond,
		RetryMax:    time.Duration(cfg.Provider.RetryMaxMs) * time.Millisecond,
		Logger:      logger,
	})

	// Source chain: client -> breaker -> response cache
	var source domcat.Source = client
	if cfg.Provider.CircuitBreaker {
		source = fragella.NewBreakerSource(source, logger)
	}
	source = respcache.New(
		source, store,
		time.Duration(cfg.Cache.TTLSec)*time.Second,
		metrics.ResponseCacheTotal, logger,
	)

	// Catalog service, with the local dataset behind the provider when configured
	catalogSvc := cataloguc.New(source, client, logger).
		WithLimits(cfg.Catalog.DefaultLimit, cfg.Catalog.MaxLimit)

	if cfg.Fallback.DatasetPath != "" {
		ds, err := dataset.Load(cfg.Fallback.DatasetPath)
		if err != nil {
			logger.Fatal("Failed to load fallback dataset",
				zap.String("path", cfg.Fallback.DatasetPath),
				zap.Error(err),
			)
		}
		catalogSvc = catalogSvc.WithFallback(ds)
		logger.Info("Fallback dataset loaded",
			zap.String("path", cfg.Fallback.DatasetPath),
			zap.Int("records", ds.Len()),
		)
	}

	// Click history and personalization
	clickStore := clicksrepo.New(store, time.Duration(cfg.Session.TTLSec)*time.Second)
	recommendSvc := recommenduc.New(clickStore, logger)

	// Usage service reads the provider's remaining request budget
	usageSvc := usageuc.New(client)

	// Health service
	healthSvc := healthuc.New(store, client)

	// Create chi server
	server := chiTransport.NewServer(catalogSvc, recommendSvc, clickStore, usageSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
