package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/doughlab/doughcalc/internal/container"
	"github.com/doughlab/doughcalc/internal/messaging"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// The consumer worker reads its configuration from the environment rather
// than flags so it can run as a sidecar next to the server with the same
// settings.
func optionsFromEnv() *container.Options {
	return &container.Options{
		RedisAddr:   envOr("REDIS_ADDR", "localhost:6379"),
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		LogFormat:   envOr("LOG_FORMAT", "console"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func main() {
	injector := do.New()
	do.ProvideValue(injector, optionsFromEnv())
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.PostgresPackage(injector)
	container.ConsumerGroupPackage(injector)

	logger := do.MustInvoke[*zap.Logger](injector)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group := do.MustInvoke[*messaging.ConsumerGroup](injector)
	if err := group.Start(ctx); err != nil {
		logger.Fatal("failed to start analytics consumers", zap.Error(err))
	}

	logger.Info("analytics consumer running")
	<-ctx.Done()

	logger.Info("shutting down")

	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
