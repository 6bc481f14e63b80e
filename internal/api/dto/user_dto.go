package dto

import "time"

// UserInfo is the public view of an account. Credentials never appear here.
type UserInfo struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnerBrief is the author info nested inside videos, comments and tweets.
type OwnerBrief struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"full_name"`
	Avatar   *string `json:"avatar"`
}

// UserUpdateRequest updates profile fields; nil fields stay unchanged.
type UserUpdateRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Avatar   *string `json:"avatar" binding:"omitempty,max=500"`
}

// ChannelProfile is a user profile enriched with subscription counts.
type ChannelProfile struct {
	UserInfo
	SubscriberCount int64 `json:"subscriber_count"`
	IsSubscribed    bool  `json:"is_subscribed"`
}

// WatchHistoryItem is one entry in a user's watch history.
type WatchHistoryItem struct {
	Video     VideoInfo `json:"video"`
	WatchedAt time.Time `json:"watched_at"`
}
