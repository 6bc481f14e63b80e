package service

import (
	"context"
	"io"
	"time"

	"viewtube/internal/config"
	"viewtube/internal/infra/kafka"
	"viewtube/internal/infra/minio"
	"viewtube/internal/infra/redis"
)

// ObjectStore uploads and deletes media objects.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, objectName string, r io.Reader, size int64, contentType string) (url, key string, err error)
	Delete(ctx context.Context, bucket, objectName string) error
}

// EventPublisher emits video lifecycle events.
type EventPublisher interface {
	PublishVideoEvent(ctx context.Context, event *kafka.VideoEvent) error
}

// StatsCache caches serialized aggregates with a TTL.
type StatsCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// minioStore backs ObjectStore with the MinIO client.
type minioStore struct{}

func NewObjectStore() ObjectStore { return minioStore{} }

func (minioStore) Upload(ctx context.Context, bucket, objectName string, r io.Reader, size int64, contentType string) (string, string, error) {
	return minio.UploadFile(ctx, bucket, objectName, r, size, contentType)
}

func (minioStore) Delete(ctx context.Context, bucket, objectName string) error {
	return minio.DeleteFile(ctx, bucket, objectName)
}

// kafkaPublisher backs EventPublisher with the Kafka producer.
type kafkaPublisher struct {
	topic string
}

func NewEventPublisher(cfg *config.KafkaConfig) EventPublisher {
	return kafkaPublisher{topic: cfg.Topics["video_events"]}
}

func (p kafkaPublisher) PublishVideoEvent(ctx context.Context, event *kafka.VideoEvent) error {
	return kafka.SendVideoEvent(ctx, p.topic, event)
}

// redisCache backs StatsCache with Redis.
type redisCache struct{}

func NewStatsCache() StatsCache { return redisCache{} }

func (redisCache) Get(ctx context.Context, key string) (string, error) {
	return redis.Get().Get(ctx, key).Result()
}

func (redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return redis.Get().Set(ctx, key, value, ttl).Err()
}
