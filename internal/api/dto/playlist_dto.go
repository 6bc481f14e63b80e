package dto

import "time"

type PlaylistCreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"omitempty"`
}

type PlaylistUpdateRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
}

// PlaylistInfo is the playlist list shape.
type PlaylistInfo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	VideoCount  int       `json:"video_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlaylistDetail is a playlist with its videos in position order.
type PlaylistDetail struct {
	PlaylistInfo
	Owner  *OwnerBrief `json:"owner,omitempty"`
	Videos []VideoInfo `json:"videos"`
}
