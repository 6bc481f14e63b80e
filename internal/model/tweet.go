package model

import "time"

// Tweet is a short text post on a channel, optionally with an image.
type Tweet struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID        int64     `gorm:"not null;index:idx_tweets_owner_id" json:"owner_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	ImageURL       *string   `gorm:"size:500" json:"image_url"`
	ImageObjectKey *string   `gorm:"size:500" json:"-"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index:idx_tweets_created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

func (Tweet) TableName() string {
	return "tweets"
}
