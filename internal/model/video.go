package model

import "time"

// Video metadata. The media itself lives in object storage; VideoURL and
// ThumbnailURL are the public locations, the object keys allow deletion.
type Video struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID            int64     `gorm:"not null;index:idx_videos_owner_id;index:idx_videos_owner_published" json:"owner_id"`
	Title              string    `gorm:"size:200;not null" json:"title"`
	Description        string    `gorm:"type:text" json:"description"`
	VideoURL           string    `gorm:"size:500;not null" json:"video_url"`
	VideoObjectKey     string    `gorm:"size:500" json:"-"`
	ThumbnailURL       string    `gorm:"size:500" json:"thumbnail_url"`
	ThumbnailObjectKey string    `gorm:"size:500" json:"-"`
	Duration           int       `gorm:"default:0" json:"duration"` // seconds
	ViewCount          int64     `gorm:"default:0" json:"view_count"`
	IsPublished        bool      `gorm:"default:true;index:idx_videos_owner_published" json:"is_published"`
	CreatedAt          time.Time `gorm:"autoCreateTime;index:idx_videos_created_at" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Owner    User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Comments []Comment `gorm:"foreignKey:VideoID" json:"comments,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}
