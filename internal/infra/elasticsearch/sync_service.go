package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"viewtube/internal/model"
	"viewtube/pkg/logger"

	"go.uber.org/zap"
)

// VideoDoc is the document shape stored in the videos index.
type VideoDoc struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsPublished bool      `json:"is_published"`
	ViewCount   int64     `json:"view_count"`
	Duration    int       `json:"duration"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewVideoDoc builds a document from a video with its owner loaded.
func NewVideoDoc(v *model.Video) *VideoDoc {
	return &VideoDoc{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		OwnerName:   v.Owner.UserName,
		Title:       v.Title,
		Description: v.Description,
		IsPublished: v.IsPublished,
		ViewCount:   v.ViewCount,
		Duration:    v.Duration,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// SyncVideo indexes one video document, overwriting any previous version.
func SyncVideo(ctx context.Context, v *model.Video) error {
	doc := NewVideoDoc(v)
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal video doc: %w", err)
	}

	resp, err := Index(ctx, VideoIndexName, strconv.FormatInt(v.ID, 10), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("index video %d: %w", v.ID, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("index video %d: %s", v.ID, string(raw))
	}

	logger.Debug("Video synced to Elasticsearch", zap.Int64("video_id", v.ID))
	return nil
}

// DeleteVideo removes a video document. A missing document is not an error.
func DeleteVideo(ctx context.Context, videoID int64) error {
	resp, err := Delete(ctx, VideoIndexName, strconv.FormatInt(videoID, 10))
	if err != nil {
		return fmt.Errorf("delete video %d from index: %w", videoID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 404 {
		return nil
	}
	if resp.IsError() {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete video %d from index: %s", videoID, string(raw))
	}

	logger.Debug("Video removed from Elasticsearch", zap.Int64("video_id", videoID))
	return nil
}

// BulkSyncVideos indexes a batch of videos with one bulk request.
func BulkSyncVideos(ctx context.Context, videos []*model.Video) error {
	if len(videos) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, v := range videos {
		meta := map[string]map[string]any{
			"index": {
				"_index": VideoIndexName,
				"_id":    strconv.FormatInt(v.ID, 10),
			},
		}
		metaLine, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("marshal bulk meta: %w", err)
		}
		docLine, err := json.Marshal(NewVideoDoc(v))
		if err != nil {
			return fmt.Errorf("marshal bulk doc: %w", err)
		}
		buf.Write(metaLine)
		buf.WriteByte('\n')
		buf.Write(docLine)
		buf.WriteByte('\n')
	}

	resp, err := Bulk(ctx, &buf)
	if err != nil {
		return fmt.Errorf("bulk sync videos: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bulk sync videos: %s", string(raw))
	}

	logger.Info("Videos bulk synced to Elasticsearch", zap.Int("count", len(videos)))
	return nil
}
