package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"viewtube/internal/config"
	"viewtube/internal/infra/database"
	infraES "viewtube/internal/infra/elasticsearch"
	infraKafka "viewtube/internal/infra/kafka"
	"viewtube/internal/repository"
	"viewtube/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// The worker keeps the Elasticsearch videos index in step with the
// database by consuming video lifecycle events.

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Fatal("Failed to init elasticsearch", zap.Error(err))
	}
	defer infraES.Close()

	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := infraES.InitIndexes(initCtx); err != nil {
		logger.Fatal("Failed to init elasticsearch indexes", zap.Error(err))
	}
	initCancel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	videoRepo := repository.NewVideoRepository(database.Get())

	topic := cfg.Kafka.Topics["video_events"]
	groupID := "viewtube-index-worker"

	logger.Info("Index worker started",
		zap.String("topic", topic),
		zap.String("group", groupID),
		zap.Strings("brokers", cfg.Kafka.Brokers),
	)

	handler := func(event *infraKafka.VideoEvent) error {
		return handleVideoEvent(ctx, videoRepo, event)
	}

	infraKafka.StartVideoEventConsumer(ctx, cfg.Kafka.Brokers, topic, groupID, handler)

	logger.Info("Index worker stopped")
}

// handleVideoEvent applies one lifecycle event to the search index,
// retrying transient failures with exponential backoff. An updated
// video that turns out to be gone from the database is treated as a
// delete; the index always converges to the database state.
func handleVideoEvent(ctx context.Context, videoRepo *repository.VideoRepository, event *infraKafka.VideoEvent) error {
	sync := func() error {
		switch event.Type {
		case infraKafka.EventVideoDeleted:
			return infraES.DeleteVideo(ctx, event.VideoID)

		case infraKafka.EventVideoPublished, infraKafka.EventVideoUpdated:
			video, err := videoRepo.GetByIDWithOwner(event.VideoID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return infraES.DeleteVideo(ctx, event.VideoID)
				}
				return err
			}
			if !video.IsPublished {
				return infraES.DeleteVideo(ctx, event.VideoID)
			}
			return infraES.SyncVideo(ctx, video)

		default:
			logger.Warn("Unknown video event type", zap.String("type", event.Type))
			return nil
		}
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	if err := backoff.Retry(sync, policy); err != nil {
		logger.Error("Failed to apply video event",
			zap.String("type", event.Type),
			zap.Int64("video_id", event.VideoID),
			zap.Error(err),
		)
		return err
	}
	return nil
}
