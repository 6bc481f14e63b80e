package model

import "time"

// Like records that a user likes exactly one of a video, a comment or a
// tweet; the other two target columns stay NULL. The record's existence
// IS the liked state. Each composite unique index only collides when its
// target column is non-NULL, so together they enforce at most one like
// per (owner, target) without constraining the other kinds.
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID   int64     `gorm:"not null;index:idx_likes_owner_id;uniqueIndex:uq_like_owner_video;uniqueIndex:uq_like_owner_comment;uniqueIndex:uq_like_owner_tweet" json:"owner_id"`
	VideoID   *int64    `gorm:"uniqueIndex:uq_like_owner_video;index:idx_likes_video_id" json:"video_id"`
	CommentID *int64    `gorm:"uniqueIndex:uq_like_owner_comment;index:idx_likes_comment_id" json:"comment_id"`
	TweetID   *int64    `gorm:"uniqueIndex:uq_like_owner_tweet;index:idx_likes_tweet_id" json:"tweet_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Owner User   `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Video *Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (Like) TableName() string {
	return "likes"
}
