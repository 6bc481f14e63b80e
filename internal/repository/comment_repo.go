package repository

import (
	"viewtube/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// GetByID fetches a comment by id.
func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Create inserts a new comment.
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// Update applies the given column updates and returns the fresh row.
func (r *CommentRepository) Update(id int64, updates map[string]interface{}) (*model.Comment, error) {
	result := r.db.Model(&model.Comment{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete removes a comment.
func (r *CommentRepository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&model.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByVideo returns a video's comments, newest first, with owners
// joined, plus the total before windowing.
func (r *CommentRepository) ListByVideo(videoID int64, skip, limit int) ([]model.Comment, int64, error) {
	q := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := q.Preload("Owner").Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// ListIDsByVideo returns the ids of all comments on a video.
func (r *CommentRepository) ListIDsByVideo(videoID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID).
		Pluck("id", &ids).Error
	return ids, err
}

// DeleteByVideo removes all comments on a video. Deleting an already
// clean video is a no-op, so the cascade step can be retried.
func (r *CommentRepository) DeleteByVideo(videoID int64) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.Comment{}).Error
}
