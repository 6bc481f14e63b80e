package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"viewtube/internal/api/dto"
	"viewtube/internal/infra/kafka"
	"viewtube/internal/infra/minio"
	"viewtube/internal/model"
	"viewtube/internal/query"
	"viewtube/pkg/logger"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound = errors.New("video not found")
	ErrNotVideoOwner = errors.New("not the owner of this video")

	// ErrCascadeIncomplete marks a multi-step delete that finished with
	// one or more failed steps. The message names the failed steps; the
	// whole delete can be retried.
	ErrCascadeIncomplete = errors.New("delete incomplete")
)

// cascadeError wraps the aggregated step failures of a cascade delete,
// or passes nil through when every step succeeded.
func cascadeError(errs error) error {
	if errs == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrCascadeIncomplete, errs)
}

// Upload is one incoming file part.
type Upload struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

type VideoService struct {
	videoRepo    VideoRepo
	commentRepo  CommentRepo
	likeRepo     LikeRepo
	playlistRepo PlaylistRepo
	watchRepo    WatchRepo
	subRepo      SubscriptionRepo
	store        ObjectStore
	events       EventPublisher
}

func NewVideoService(
	videoRepo VideoRepo,
	commentRepo CommentRepo,
	likeRepo LikeRepo,
	playlistRepo PlaylistRepo,
	watchRepo WatchRepo,
	subRepo SubscriptionRepo,
	store ObjectStore,
	events EventPublisher,
) *VideoService {
	return &VideoService{
		videoRepo:    videoRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		playlistRepo: playlistRepo,
		watchRepo:    watchRepo,
		subRepo:      subRepo,
		store:        store,
		events:       events,
	}
}

// List pages through published videos, applying search, owner filter and
// sort from the raw query parameters.
func (s *VideoService) List(raw query.RawListParams) (*query.Page[dto.VideoInfo], error) {
	p, err := query.Build(raw, query.Videos)
	if err != nil {
		return nil, err
	}

	videos, total, err := s.videoRepo.List(p, true)
	if err != nil {
		return nil, err
	}

	return query.NewPage(toVideoInfos(videos), total, p.Page, p.Limit), nil
}

// GetForViewing returns a video composed with engagement state for the
// viewer, and records the watch. An unpublished video is visible only to
// its owner. viewerID 0 means anonymous: nothing is recorded and the
// view counter does not move.
//
// A watch is recorded at most once per (viewer, video); only the insert
// that actually lands bumps the view counter, so repeat visits and
// concurrent requests cannot double-count.
func (s *VideoService) GetForViewing(ctx context.Context, videoID, viewerID int64) (*dto.VideoDetail, error) {
	video, err := s.videoRepo.GetByIDWithOwner(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, ErrVideoNotFound
	}

	if viewerID != 0 && video.IsPublished {
		firstWatch, err := s.watchRepo.Add(viewerID, videoID)
		if err != nil {
			logger.Warn("Failed to record watch",
				zap.Int64("video_id", videoID), zap.Int64("user_id", viewerID), zap.Error(err))
		} else if firstWatch {
			if err := s.videoRepo.IncrementViewCount(videoID); err != nil {
				logger.Warn("Failed to increment view count",
					zap.Int64("video_id", videoID), zap.Error(err))
			} else {
				video.ViewCount++
			}
		}
	}

	detail := &dto.VideoDetail{VideoInfo: toVideoInfo(video)}

	if detail.LikeCount, err = s.likeRepo.CountForVideo(videoID); err != nil {
		return nil, err
	}
	if detail.SubscriberCount, err = s.subRepo.CountByChannel(video.OwnerID); err != nil {
		return nil, err
	}
	if viewerID != 0 {
		if detail.IsLiked, err = s.likeRepo.ExistsForVideo(viewerID, videoID); err != nil {
			return nil, err
		}
		if viewerID != video.OwnerID {
			if detail.IsSubscribed, err = s.subRepo.Exists(viewerID, video.OwnerID); err != nil {
				return nil, err
			}
		}
	}

	return detail, nil
}

// Publish uploads the media, creates the video row and emits a
// published event.
func (s *VideoService) Publish(ctx context.Context, ownerID int64, req *dto.VideoUploadRequest, videoFile Upload, thumbnail *Upload) (*dto.VideoInfo, error) {
	videoURL, videoKey, err := s.store.Upload(ctx, minio.VideoBucket,
		objectName(ownerID, videoFile.Filename), videoFile.Reader, videoFile.Size, videoFile.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}

	var thumbURL, thumbKey string
	if thumbnail != nil {
		thumbURL, thumbKey, err = s.store.Upload(ctx, minio.ThumbnailBucket,
			objectName(ownerID, thumbnail.Filename), thumbnail.Reader, thumbnail.Size, thumbnail.ContentType)
		if err != nil {
			// Roll back the video object before failing.
			_ = s.store.Delete(ctx, minio.VideoBucket, videoKey)
			return nil, fmt.Errorf("upload thumbnail: %w", err)
		}
	}

	video := &model.Video{
		OwnerID:            ownerID,
		Title:              req.Title,
		Description:        req.Description,
		VideoURL:           videoURL,
		VideoObjectKey:     videoKey,
		ThumbnailURL:       thumbURL,
		ThumbnailObjectKey: thumbKey,
		Duration:           req.Duration,
		IsPublished:        true,
	}

	if err := s.videoRepo.Create(video); err != nil {
		_ = s.store.Delete(ctx, minio.VideoBucket, videoKey)
		if thumbKey != "" {
			_ = s.store.Delete(ctx, minio.ThumbnailBucket, thumbKey)
		}
		return nil, err
	}

	s.publishEvent(ctx, kafka.EventVideoPublished, video.ID)

	info := toVideoInfo(video)
	return &info, nil
}

// Update applies the non-nil metadata fields. Only the owner may update.
func (s *VideoService) Update(ctx context.Context, videoID, ownerID int64, req *dto.VideoUpdateRequest) (*dto.VideoInfo, error) {
	if _, err := s.mustOwn(videoID, ownerID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if _, err := s.videoRepo.Update(videoID, updates); err != nil {
			return nil, err
		}
	}

	video, err := s.videoRepo.GetByIDWithOwner(videoID)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, kafka.EventVideoUpdated, videoID)

	info := toVideoInfo(video)
	return &info, nil
}

// TogglePublish flips the publish flag. Only the owner may toggle.
func (s *VideoService) TogglePublish(ctx context.Context, videoID, ownerID int64) (*dto.PublishToggleData, error) {
	video, err := s.mustOwn(videoID, ownerID)
	if err != nil {
		return nil, err
	}

	next := !video.IsPublished
	if _, err := s.videoRepo.Update(videoID, map[string]interface{}{"is_published": next}); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, kafka.EventVideoUpdated, videoID)

	return &dto.PublishToggleData{ID: videoID, IsPublished: next}, nil
}

// Delete removes a video and everything that references it: watch
// history entries, comments and their likes, video likes, playlist
// entries, then the row itself, the stored media and the search
// document. Every step runs even if an earlier one fails; each step is
// idempotent, so the aggregated error can be resolved by retrying.
func (s *VideoService) Delete(ctx context.Context, videoID, ownerID int64) error {
	video, err := s.mustOwn(videoID, ownerID)
	if err != nil {
		return err
	}

	var errs error

	if err := s.watchRepo.DeleteByVideo(videoID); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("delete watch entries: %w", err))
	}

	commentIDs, err := s.commentRepo.ListIDsByVideo(videoID)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("list comments: %w", err))
	} else if len(commentIDs) > 0 {
		if err := s.likeRepo.DeleteByComments(commentIDs); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete comment likes: %w", err))
		}
	}

	if err := s.commentRepo.DeleteByVideo(videoID); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("delete comments: %w", err))
	}

	if err := s.likeRepo.DeleteByVideo(videoID); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("delete video likes: %w", err))
	}

	if err := s.playlistRepo.RemoveVideoFromAll(videoID); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("delete playlist entries: %w", err))
	}

	if err := s.videoRepo.Delete(videoID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		errs = multierr.Append(errs, fmt.Errorf("delete video row: %w", err))
	}

	if video.VideoObjectKey != "" {
		if err := s.store.Delete(ctx, minio.VideoBucket, video.VideoObjectKey); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete video object: %w", err))
		}
	}
	if video.ThumbnailObjectKey != "" {
		if err := s.store.Delete(ctx, minio.ThumbnailBucket, video.ThumbnailObjectKey); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete thumbnail object: %w", err))
		}
	}

	s.publishEvent(ctx, kafka.EventVideoDeleted, videoID)

	return cascadeError(errs)
}

// ListByChannel pages through one channel's videos, including
// unpublished ones when the channel owner is asking.
func (s *VideoService) ListByChannel(channelID, viewerID int64, page, limit int) (*query.Page[dto.VideoInfo], error) {
	skip := (page - 1) * limit
	publishedOnly := viewerID != channelID
	videos, total, err := s.videoRepo.ListByOwner(channelID, publishedOnly, skip, limit)
	if err != nil {
		return nil, err
	}
	return query.NewPage(toVideoInfos(videos), total, page, limit), nil
}

func (s *VideoService) mustOwn(videoID, ownerID int64) (*model.Video, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if video.OwnerID != ownerID {
		return nil, ErrNotVideoOwner
	}
	return video, nil
}

func (s *VideoService) publishEvent(ctx context.Context, eventType string, videoID int64) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishVideoEvent(ctx, &kafka.VideoEvent{Type: eventType, VideoID: videoID}); err != nil {
		logger.Warn("Failed to publish video event",
			zap.String("type", eventType), zap.Int64("video_id", videoID), zap.Error(err))
	}
}

func objectName(ownerID int64, filename string) string {
	return fmt.Sprintf("%d/%d%s", ownerID, time.Now().UnixNano(), filepath.Ext(filename))
}
