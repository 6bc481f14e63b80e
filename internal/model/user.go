package model

import "time"

// User is an account and, at the same time, a channel others can
// subscribe to. Password and refresh-token hashes never serialize.
type User struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserName         string    `gorm:"size:255;not null;uniqueIndex" json:"username"`
	Email            string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	FullName         string    `gorm:"size:255;not null" json:"full_name"`
	Avatar           *string   `gorm:"size:500" json:"avatar"`
	Password         string    `gorm:"size:255;not null" json:"-"`
	RefreshTokenHash string    `gorm:"size:255" json:"-"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Videos   []Video   `gorm:"foreignKey:OwnerID" json:"videos,omitempty"`
	Tweets   []Tweet   `gorm:"foreignKey:OwnerID" json:"tweets,omitempty"`
	Comments []Comment `gorm:"foreignKey:OwnerID" json:"comments,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// WatchEntry records that a user has watched a video. The unique
// (user_id, video_id) index makes recording a watch idempotent: only the
// first insert for a pair succeeds, and only that insert may bump the
// video's view counter.
type WatchEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_watch_user_video;index:idx_watch_user_id" json:"user_id"`
	VideoID   int64     `gorm:"not null;uniqueIndex:uq_watch_user_video;index:idx_watch_video_id" json:"video_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_watch_created_at" json:"created_at"`

	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (WatchEntry) TableName() string {
	return "watch_entries"
}
