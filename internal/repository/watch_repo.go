package repository

import (
	"viewtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchRepository struct {
	db *gorm.DB
}

func NewWatchRepository(db *gorm.DB) *WatchRepository {
	return &WatchRepository{db: db}
}

// Add records that the user watched the video. The insert is guarded by
// the unique (user, video) index with ON CONFLICT DO NOTHING, so it
// reports true exactly once per pair; the caller bumps the view counter
// only on that first insert.
func (r *WatchRepository) Add(userID, videoID int64) (bool, error) {
	entry := &model.WatchEntry{UserID: userID, VideoID: videoID}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByUser returns the user's watch history, most recent first, with
// the watched videos and their owners joined.
func (r *WatchRepository) ListByUser(userID int64, skip, limit int) ([]model.WatchEntry, int64, error) {
	q := r.db.Model(&model.WatchEntry{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.WatchEntry
	err := q.Preload("Video").Preload("Video.Owner").
		Order("created_at DESC, id DESC").Offset(skip).Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// DeleteByVideo removes a video from every user's watch history.
func (r *WatchRepository) DeleteByVideo(videoID int64) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.WatchEntry{}).Error
}
