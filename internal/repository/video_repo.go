package repository

import (
	"viewtube/internal/model"
	"viewtube/internal/query"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID fetches a video by id.
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.Where("id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithOwner fetches a video with its owner joined.
func (r *VideoRepository) GetByIDWithOwner(id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.Preload("Owner").Where("id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDAndOwner fetches a video only when the given user owns it.
func (r *VideoRepository) GetByIDAndOwner(videoID, ownerID int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Where("id = ? AND owner_id = ?", videoID, ownerID).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Create inserts a new video record.
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// Update applies the given column updates and returns the fresh row.
func (r *VideoRepository) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete removes the video row. Dependent records are detached by the
// cascade in the service layer before this runs.
func (r *VideoRepository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&model.Video{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List runs a query pipeline over published videos: count over the match
// predicate first, then the ordered window, optionally with owners.
func (r *VideoRepository) List(p query.Pipeline, withOwner bool) ([]model.Video, int64, error) {
	base := p.Match(r.db.Model(&model.Video{}).Where("is_published = ?", true))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	find := p.Window(p.Order(base))
	if withOwner {
		find = find.Preload("Owner")
	}

	var videos []model.Video
	if err := find.Find(&videos).Error; err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// ListByOwner returns a channel's videos, newest first. With
// publishedOnly false, unpublished videos are included too.
func (r *VideoRepository) ListByOwner(ownerID int64, publishedOnly bool, skip, limit int) ([]model.Video, int64, error) {
	q := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID)
	if publishedOnly {
		q = q.Where("is_published = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := q.Order("created_at DESC, id DESC").Offset(skip).Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// GetByIDsWithOwner fetches videos in bulk with owners joined.
func (r *VideoRepository) GetByIDsWithOwner(ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.Preload("Owner").Where("id IN ?", ids).Find(&videos).Error
	return videos, err
}

// IncrementViewCount bumps the view counter atomically at the store.
func (r *VideoRepository) IncrementViewCount(id int64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// SumViewsByOwner totals the view counters of a channel's videos.
func (r *VideoRepository) SumViewsByOwner(ownerID int64) (int64, error) {
	var total int64
	err := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(view_count), 0)").Scan(&total).Error
	return total, err
}

// CountByOwner counts a channel's videos.
func (r *VideoRepository) CountByOwner(ownerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}
