package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/complaint-map/internal/config"
	"github.com/complaint-map/internal/infrastructure/mail"
	"github.com/complaint-map/internal/pkg/logger"
	"github.com/complaint-map/internal/repository/cache"
	redisRepo "github.com/complaint-map/internal/repository/redis"
	"github.com/complaint-map/internal/worker"
	"github.com/complaint-map/internal/worker/escalation"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.NewWithFile(cfg.Log.Level, logger.FileConfig{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Complaint Escalation Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Duration("stream_read_timeout", cfg.Worker.StreamReadTimeout),
		zap.String("smtp_host", cfg.SMTP.Host))

	if !cfg.RedisEnabled() {
		log.Fatal("REDIS_HOST is required by the worker")
	}
	if !cfg.SMTPEnabled() {
		log.Fatal("SMTP_HOST and SMTP_FROM are required by the worker")
	}

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(context.Background(), &cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Initialize repositories
	streamRepo := redisRepo.NewStreamRepositoryWithBlock(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
	notifier := mail.NewNotifier(&cfg.SMTP, log)

	// 5. Initialize workers
	escalationWorker := escalation.NewWorker(
		streamRepo,
		notifier,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	workerManager := worker.NewManager(log)
	workerManager.Register(escalationWorker)

	// 6. Run until a shutdown signal
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
