package dto

import "time"

type CommentCreateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

type CommentUpdateRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentInfo is one comment with its author.
type CommentInfo struct {
	ID        int64       `json:"id"`
	VideoID   int64       `json:"video_id"`
	Content   string      `json:"content"`
	LikeCount int64       `json:"like_count"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Owner     *OwnerBrief `json:"owner,omitempty"`
}
