package repository

import (
	"viewtube/internal/model"

	"gorm.io/gorm"
)

type TweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{db: db}
}

// GetByID fetches a tweet by id.
func (r *TweetRepository) GetByID(id int64) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := r.db.Where("id = ?", id).First(&tweet).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// GetByIDWithOwner fetches a tweet with its owner joined.
func (r *TweetRepository) GetByIDWithOwner(id int64) (*model.Tweet, error) {
	var tweet model.Tweet
	if err := r.db.Preload("Owner").Where("id = ?", id).First(&tweet).Error; err != nil {
		return nil, err
	}
	return &tweet, nil
}

// Create inserts a new tweet.
func (r *TweetRepository) Create(tweet *model.Tweet) error {
	return r.db.Create(tweet).Error
}

// Update applies the given column updates and returns the fresh row.
func (r *TweetRepository) Update(id int64, updates map[string]interface{}) (*model.Tweet, error) {
	result := r.db.Model(&model.Tweet{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete removes a tweet.
func (r *TweetRepository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&model.Tweet{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByOwner returns a user's tweets, newest first, with owners joined.
func (r *TweetRepository) ListByOwner(ownerID int64, skip, limit int) ([]model.Tweet, int64, error) {
	q := r.db.Model(&model.Tweet{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tweets []model.Tweet
	err := q.Preload("Owner").Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).Find(&tweets).Error
	if err != nil {
		return nil, 0, err
	}
	return tweets, total, nil
}
