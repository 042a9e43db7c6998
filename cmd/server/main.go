package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/siitecch/learn-api/internal/config"
	api "github.com/siitecch/learn-api/internal/http"
	"github.com/siitecch/learn-api/internal/log"
	"github.com/siitecch/learn-api/internal/metrics"
	"github.com/siitecch/learn-api/internal/queue"
	"github.com/siitecch/learn-api/internal/repo"
)

// @title Siitecch Learn API
// @version 1.0
// @description Learning-content platform backend: auth, catalogue, feedback.
// @schemes http https
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	logger, err := log.Init(cfg.Production())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	var rds *repo.Redis
	if cfg.RedisAddr != "" {
		rds = repo.NewRedis(cfg.RedisAddr)
		if err := rds.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, rate limiting disabled", zap.Error(err))
			rds = nil
		} else {
			defer rds.Close()
		}
	}

	var pub queue.Publisher = queue.NewNoop()
	if cfg.RabbitURL != "" {
		rp, err := queue.NewRabbit(cfg.RabbitURL)
		if err != nil {
			logger.Warn("rabbit unreachable, events disabled", zap.Error(err))
		} else {
			pub = rp
			defer pub.Close()
		}
	}

	metrics.MustRegister()

	h := api.NewHandler(store, cfg.JWTSecret, cfg.RefreshSecret, cfg.Production(),
		rds, cfg.RateLimitPerMin, pub)
	r := api.NewRouter(h)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	logger.Info("learn-api listening", zap.String("port", cfg.Port))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		logger.Info("shutting down", zap.String("signal", s.String()))
	case err := <-srvErr:
		logger.Error("server error", zap.Error(err))
	}
}
