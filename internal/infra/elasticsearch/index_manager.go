package elasticsearch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"viewtube/pkg/logger"

	"go.uber.org/zap"
)

// VideoIndexName is the index holding searchable video documents.
const VideoIndexName = "videos"

// videoIndexMapping defines the videos index. Text fields use the
// standard analyzer; owner_name and title carry keyword sub-fields
// for exact matching and aggregations.
const videoIndexMapping = `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0
  },
  "mappings": {
    "properties": {
      "id":           {"type": "long"},
      "owner_id":     {"type": "long"},
      "owner_name":   {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "title":        {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "description":  {"type": "text"},
      "is_published": {"type": "boolean"},
      "view_count":   {"type": "long"},
      "duration":     {"type": "float"},
      "created_at":   {"type": "date"},
      "updated_at":   {"type": "date"}
    }
  }
}`

// EnsureVideoIndex creates the videos index if it does not exist.
func EnsureVideoIndex(ctx context.Context) error {
	exists, err := IndicesExists(ctx, VideoIndexName)
	if err != nil {
		return fmt.Errorf("check index %s: %w", VideoIndexName, err)
	}
	if exists {
		logger.Debug("Elasticsearch index exists", zap.String("index", VideoIndexName))
		return nil
	}

	resp, err := IndicesCreate(ctx, VideoIndexName, strings.NewReader(videoIndexMapping))
	if err != nil {
		return fmt.Errorf("create index %s: %w", VideoIndexName, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("create index %s: %s", VideoIndexName, string(body))
	}

	logger.Info("Elasticsearch index created", zap.String("index", VideoIndexName))
	return nil
}

// InitIndexes ensures all indexes used by the application exist.
func InitIndexes(ctx context.Context) error {
	return EnsureVideoIndex(ctx)
}
