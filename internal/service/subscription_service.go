package service

import (
	"errors"

	"viewtube/internal/api/dto"
	"viewtube/internal/query"

	"gorm.io/gorm"
)

var (
	ErrChannelNotFound      = errors.New("channel not found")
	ErrCannotSubscribeSelf  = errors.New("cannot subscribe to your own channel")
	ErrSubscriptionConflict = errors.New("subscription state changed concurrently")
)

type SubscriptionService struct {
	subRepo  SubscriptionRepo
	userRepo UserRepo
}

func NewSubscriptionService(subRepo SubscriptionRepo, userRepo UserRepo) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

// Toggle flips the caller's subscription to a channel and reports the
// resulting state. Self-subscription is rejected outright.
func (s *SubscriptionService) Toggle(subscriberID, channelID int64) (*dto.ToggleSubscriptionData, error) {
	if subscriberID == channelID {
		return nil, ErrCannotSubscribeSelf
	}

	if _, err := s.userRepo.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	exists, err := s.subRepo.Exists(subscriberID, channelID)
	if err != nil {
		return nil, err
	}

	var subscribed bool
	if exists {
		deleted, err := s.subRepo.Delete(subscriberID, channelID)
		if err != nil {
			return nil, err
		}
		if !deleted {
			return nil, ErrSubscriptionConflict
		}
	} else {
		if _, err := s.subRepo.Create(subscriberID, channelID); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrSubscriptionConflict
			}
			return nil, err
		}
		subscribed = true
	}

	count, err := s.subRepo.CountByChannel(channelID)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleSubscriptionData{Subscribed: subscribed, SubscriberCount: count}, nil
}

// ListSubscribers pages through a channel's subscribers, newest first.
func (s *SubscriptionService) ListSubscribers(channelID int64, page, limit int) (*query.Page[dto.SubscriberItem], error) {
	if _, err := s.userRepo.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	skip := (page - 1) * limit
	subs, total, err := s.subRepo.ListSubscribers(channelID, skip, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SubscriberItem, 0, len(subs))
	for i := range subs {
		brief := toOwnerBrief(&subs[i].Subscriber)
		if brief == nil {
			continue
		}
		items = append(items, dto.SubscriberItem{User: *brief, SubscribedAt: subs[i].CreatedAt})
	}
	return query.NewPage(items, total, page, limit), nil
}

// ListSubscribedChannels pages through the channels a user subscribes to.
func (s *SubscriptionService) ListSubscribedChannels(subscriberID int64, page, limit int) (*query.Page[dto.SubscribedChannelItem], error) {
	skip := (page - 1) * limit
	subs, total, err := s.subRepo.ListChannels(subscriberID, skip, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SubscribedChannelItem, 0, len(subs))
	for i := range subs {
		brief := toOwnerBrief(&subs[i].Channel)
		if brief == nil {
			continue
		}
		items = append(items, dto.SubscribedChannelItem{Channel: *brief, SubscribedAt: subs[i].CreatedAt})
	}
	return query.NewPage(items, total, page, limit), nil
}
