package repository

import (
	"viewtube/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Exists reports whether the subscriber follows the channel.
func (r *SubscriptionRepository) Exists(subscriberID, channelID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts a subscription. A racing duplicate surfaces the store's
// uniqueness violation as gorm.ErrDuplicatedKey.
func (r *SubscriptionRepository) Create(subscriberID, channelID int64) (*model.Subscription, error) {
	sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	if err := r.db.Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// Delete removes a subscription, reporting whether one existed.
func (r *SubscriptionRepository) Delete(subscriberID, channelID int64) (bool, error) {
	result := r.db.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.Subscription{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CountByChannel counts a channel's subscribers.
func (r *SubscriptionRepository) CountByChannel(channelID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID).
		Count(&count).Error
	return count, err
}

// ListSubscribers returns who follows the channel, newest first, with
// subscriber profiles joined.
func (r *SubscriptionRepository) ListSubscribers(channelID int64, skip, limit int) ([]model.Subscription, int64, error) {
	q := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []model.Subscription
	err := q.Preload("Subscriber").Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// ListChannels returns the channels a user follows, newest first, with
// channel profiles joined.
func (r *SubscriptionRepository) ListChannels(subscriberID int64, skip, limit int) ([]model.Subscription, int64, error) {
	q := r.db.Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subs []model.Subscription
	err := q.Preload("Channel").Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).Find(&subs).Error
	if err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}
