package repository

import (
	"viewtube/internal/model"

	"gorm.io/gorm"
)

type PlaylistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// GetByID fetches a playlist by id.
func (r *PlaylistRepository) GetByID(id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.db.Where("id = ?", id).First(&playlist).Error; err != nil {
		return nil, err
	}
	return &playlist, nil
}

// GetByIDWithVideos fetches a playlist with its owner and its entries in
// playlist order, each entry carrying the dereferenced video.
func (r *PlaylistRepository) GetByIDWithVideos(id int64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.Preload("Owner").
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("playlist_entries.position ASC, playlist_entries.id ASC")
		}).
		Preload("Entries.Video").
		Where("id = ?", id).First(&playlist).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

// ListByOwner returns a user's playlists, newest first.
func (r *PlaylistRepository) ListByOwner(ownerID int64, skip, limit int) ([]model.Playlist, int64, error) {
	q := r.db.Model(&model.Playlist{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var playlists []model.Playlist
	err := q.Order("created_at DESC, id DESC").Offset(skip).Limit(limit).
		Find(&playlists).Error
	if err != nil {
		return nil, 0, err
	}
	return playlists, total, nil
}

// Create inserts a new playlist.
func (r *PlaylistRepository) Create(playlist *model.Playlist) error {
	return r.db.Create(playlist).Error
}

// Update applies the given column updates and returns the fresh row.
func (r *PlaylistRepository) Update(id int64, updates map[string]interface{}) (*model.Playlist, error) {
	result := r.db.Model(&model.Playlist{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete removes a playlist and its entries.
func (r *PlaylistRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&model.PlaylistEntry{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Playlist{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddVideo appends a video to the end of a playlist. Adding a video that
// is already present surfaces the unique (playlist, video) index as
// gorm.ErrDuplicatedKey.
func (r *PlaylistRepository) AddVideo(playlistID, videoID int64) (*model.PlaylistEntry, error) {
	var next int
	err := r.db.Model(&model.PlaylistEntry{}).Where("playlist_id = ?", playlistID).
		Select("COALESCE(MAX(position), 0) + 1").Scan(&next).Error
	if err != nil {
		return nil, err
	}

	entry := &model.PlaylistEntry{PlaylistID: playlistID, VideoID: videoID, Position: next}
	if err := r.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// RemoveVideo drops a video from a playlist, reporting whether it was
// present.
func (r *PlaylistRepository) RemoveVideo(playlistID, videoID int64) (bool, error) {
	result := r.db.Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveVideoFromAll drops a video from every playlist that contains it.
func (r *PlaylistRepository) RemoveVideoFromAll(videoID int64) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.PlaylistEntry{}).Error
}
