package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloud-ru/mcp-mortgage-go/internal/advice"
	"github.com/cloud-ru/mcp-mortgage-go/internal/cache"
	"github.com/cloud-ru/mcp-mortgage-go/internal/config"
	"github.com/cloud-ru/mcp-mortgage-go/internal/logger"
	"github.com/cloud-ru/mcp-mortgage-go/internal/server"
	"github.com/cloud-ru/mcp-mortgage-go/internal/tools"
	"github.com/cloud-ru/mcp-mortgage-go/internal/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.DevelopmentMode)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	tracer, shutdownTracing, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint, log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("error during tracing shutdown", zap.Error(err))
		}
	}()

	adviceCache, closeCache := newCache(ctx, cfg, log)
	defer closeCache()

	var generator advice.Generator
	if cfg.AdviceEnabled() {
		gemini, err := advice.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn("advice generator unavailable, using fallback text", zap.Error(err))
		} else {
			generator = gemini
			log.Info("advice generator enabled", zap.String("model", cfg.GeminiModel))
		}
	} else {
		log.Info("GEMINI_API_KEY not set, advice uses fallback text")
	}

	advisor := advice.NewService(generator, adviceCache, cfg.AdviceCacheTTL, cfg.AdviceTimeout, log)
	registry := tools.NewRegistry(cfg, tracer, advisor)

	limiter := server.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	defer limiter.Stop()

	if !cfg.DevelopmentMode {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.New(registry, limiter, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AdviceTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("address", httpServer.Addr), zap.Strings("tools", registry.Names()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server exited")
	return nil
}

// newCache выбирает Redis, если он настроен и доступен, иначе кэш в памяти
func newCache(ctx context.Context, cfg *config.Config, log *zap.Logger) (cache.Repository, func()) {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryCache(), func() {}
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword, log)
	if err != nil {
		log.Warn("redis unavailable, falling back to in-memory advice cache", zap.Error(err))
		return cache.NewMemoryCache(), func() {}
	}

	log.Info("advice cache backed by redis", zap.String("addr", cfg.RedisAddr))
	return redisCache, func() {
		if err := redisCache.Close(); err != nil {
			log.Error("error closing redis", zap.Error(err))
		}
	}
}
