package model

import "time"

// Subscription of one user (subscriber) to another user's channel.
// Existence of the record is the subscribed state; the unique pair index
// turns a racing duplicate insert into a constraint violation.
type Subscription struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SubscriberID int64     `gorm:"not null;uniqueIndex:uq_subscriber_channel;index:idx_subscriptions_subscriber" json:"subscriber_id"`
	ChannelID    int64     `gorm:"not null;uniqueIndex:uq_subscriber_channel;index:idx_subscriptions_channel" json:"channel_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Subscriber User `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
	Channel    User `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
