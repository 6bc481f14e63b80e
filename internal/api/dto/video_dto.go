package dto

import "time"

// VideoUploadRequest is the multipart/form-data metadata; the file parts
// are "video" and "thumbnail".
type VideoUploadRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"omitempty"`
	Duration    int    `form:"duration" binding:"omitempty,min=0"`
}

// VideoUpdateRequest updates metadata; nil fields stay unchanged.
type VideoUpdateRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
}

// VideoInfo is the video list/detail shape.
type VideoInfo struct {
	ID           int64       `json:"id"`
	OwnerID      int64       `json:"owner_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	VideoURL     string      `json:"video_url"`
	ThumbnailURL string      `json:"thumbnail_url"`
	Duration     int         `json:"duration"`
	ViewCount    int64       `json:"view_count"`
	IsPublished  bool        `json:"is_published"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Owner        *OwnerBrief `json:"owner,omitempty"`
}

// VideoDetail is a VideoInfo composed with engagement state for the viewer.
type VideoDetail struct {
	VideoInfo
	LikeCount       int64 `json:"like_count"`
	IsLiked         bool  `json:"is_liked"`
	SubscriberCount int64 `json:"subscriber_count"`
	IsSubscribed    bool  `json:"is_subscribed"`
}

// PublishToggleData reports the publish flag after a toggle.
type PublishToggleData struct {
	ID          int64 `json:"id"`
	IsPublished bool  `json:"is_published"`
}
