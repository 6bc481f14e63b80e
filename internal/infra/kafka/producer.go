package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"viewtube/internal/config"
	"viewtube/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// Video lifecycle event types.
const (
	EventVideoPublished = "published"
	EventVideoUpdated   = "updated"
	EventVideoDeleted   = "deleted"
)

// VideoEvent announces a video lifecycle change. The API produces these;
// the index worker consumes them to keep the search index in step.
type VideoEvent struct {
	Type    string `json:"type"`
	VideoID int64  `json:"video_id"`
}

// InitProducer sets up the shared Kafka writer.
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// SendVideoEvent publishes a video lifecycle event. Events for the same
// video share a key, so the consumer sees them in order.
func SendVideoEvent(ctx context.Context, topic string, event *VideoEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal video event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(fmt.Sprintf("video-%d", event.VideoID)),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send video event: %w", err)
	}

	logger.Info("Video event sent",
		zap.Int64("video_id", event.VideoID),
		zap.String("type", event.Type),
		zap.String("topic", topic),
	)

	return nil
}

// CloseProducer shuts the writer down.
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
