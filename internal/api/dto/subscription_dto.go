package dto

import "time"

// ToggleSubscriptionData reports the subscribed state after a toggle.
type ToggleSubscriptionData struct {
	Subscribed      bool  `json:"subscribed"`
	SubscriberCount int64 `json:"subscriber_count"`
}

// SubscriberItem is one subscriber of a channel.
type SubscriberItem struct {
	User         OwnerBrief `json:"user"`
	SubscribedAt time.Time  `json:"subscribed_at"`
}

// SubscribedChannelItem is one channel a user subscribes to.
type SubscribedChannelItem struct {
	Channel      OwnerBrief `json:"channel"`
	SubscribedAt time.Time  `json:"subscribed_at"`
}
