package dto

import "time"

// TweetCreateRequest is multipart/form-data; the optional file part is "image".
type TweetCreateRequest struct {
	Content string `form:"content" binding:"required,min=1,max=500"`
}

type TweetUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

// TweetInfo is one tweet with its author.
type TweetInfo struct {
	ID        int64       `json:"id"`
	Content   string      `json:"content"`
	ImageURL  *string     `json:"image_url"`
	LikeCount int64       `json:"like_count"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Owner     *OwnerBrief `json:"owner,omitempty"`
}
