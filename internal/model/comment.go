package model

import "time"

// Comment on a video.
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID   int64     `gorm:"not null;index:idx_comments_video_id;index:idx_comments_video_created,priority:1" json:"video_id"`
	OwnerID   int64     `gorm:"not null;index:idx_comments_owner_id" json:"owner_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_video_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Owner User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
