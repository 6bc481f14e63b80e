package repository

import (
	"viewtube/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// ExistsForVideo reports whether the user likes the video.
func (r *LikeRepository) ExistsForVideo(ownerID, videoID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("owner_id = ? AND video_id = ?", ownerID, videoID).Count(&count).Error
	return count > 0, err
}

// CreateForVideo inserts a video like. A racing duplicate surfaces the
// store's uniqueness violation as gorm.ErrDuplicatedKey.
func (r *LikeRepository) CreateForVideo(ownerID, videoID int64) (*model.Like, error) {
	like := &model.Like{OwnerID: ownerID, VideoID: &videoID}
	if err := r.db.Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}

// DeleteForVideo removes a video like, reporting whether one existed.
func (r *LikeRepository) DeleteForVideo(ownerID, videoID int64) (bool, error) {
	result := r.db.Where("owner_id = ? AND video_id = ?", ownerID, videoID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExistsForComment reports whether the user likes the comment.
func (r *LikeRepository) ExistsForComment(ownerID, commentID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("owner_id = ? AND comment_id = ?", ownerID, commentID).Count(&count).Error
	return count > 0, err
}

// CreateForComment inserts a comment like.
func (r *LikeRepository) CreateForComment(ownerID, commentID int64) (*model.Like, error) {
	like := &model.Like{OwnerID: ownerID, CommentID: &commentID}
	if err := r.db.Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}

// DeleteForComment removes a comment like, reporting whether one existed.
func (r *LikeRepository) DeleteForComment(ownerID, commentID int64) (bool, error) {
	result := r.db.Where("owner_id = ? AND comment_id = ?", ownerID, commentID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExistsForTweet reports whether the user likes the tweet.
func (r *LikeRepository) ExistsForTweet(ownerID, tweetID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("owner_id = ? AND tweet_id = ?", ownerID, tweetID).Count(&count).Error
	return count > 0, err
}

// CreateForTweet inserts a tweet like.
func (r *LikeRepository) CreateForTweet(ownerID, tweetID int64) (*model.Like, error) {
	like := &model.Like{OwnerID: ownerID, TweetID: &tweetID}
	if err := r.db.Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}

// DeleteForTweet removes a tweet like, reporting whether one existed.
func (r *LikeRepository) DeleteForTweet(ownerID, tweetID int64) (bool, error) {
	result := r.db.Where("owner_id = ? AND tweet_id = ?", ownerID, tweetID).
		Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountForVideo counts likes on a video.
func (r *LikeRepository) CountForVideo(videoID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

// CountForComment counts likes on a comment.
func (r *LikeRepository) CountForComment(commentID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("comment_id = ?", commentID).Count(&count).Error
	return count, err
}

// CountForTweet counts likes on a tweet.
func (r *LikeRepository) CountForTweet(tweetID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("tweet_id = ?", tweetID).Count(&count).Error
	return count, err
}

// ListVideoLikesByOwner returns the user's video likes, newest first,
// with the liked video and its owner joined.
func (r *LikeRepository) ListVideoLikesByOwner(ownerID int64, skip, limit int) ([]model.Like, int64, error) {
	q := r.db.Model(&model.Like{}).
		Where("owner_id = ? AND video_id IS NOT NULL", ownerID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var likes []model.Like
	err := q.Preload("Video").Preload("Video.Owner").
		Order("created_at DESC, id DESC").Offset(skip).Limit(limit).
		Find(&likes).Error
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}

// CountForOwnerVideos counts likes across all videos owned by a channel.
func (r *LikeRepository) CountForOwnerVideos(ownerID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Where("videos.owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}

// DeleteByVideo removes all likes targeting a video.
func (r *LikeRepository) DeleteByVideo(videoID int64) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.Like{}).Error
}

// DeleteByComment removes all likes targeting a comment.
func (r *LikeRepository) DeleteByComment(commentID int64) error {
	return r.db.Where("comment_id = ?", commentID).Delete(&model.Like{}).Error
}

// DeleteByComments removes all likes targeting any of the comments.
func (r *LikeRepository) DeleteByComments(commentIDs []int64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.Where("comment_id IN ?", commentIDs).Delete(&model.Like{}).Error
}

// DeleteByTweet removes all likes targeting a tweet.
func (r *LikeRepository) DeleteByTweet(tweetID int64) error {
	return r.db.Where("tweet_id = ?", tweetID).Delete(&model.Like{}).Error
}
