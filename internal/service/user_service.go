package service

import (
	"errors"

	"viewtube/internal/api/dto"
	"viewtube/internal/query"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo         UserRepo
	subscriptionRepo SubscriptionRepo
	watchRepo        WatchRepo
}

func NewUserService(userRepo UserRepo, subscriptionRepo SubscriptionRepo, watchRepo WatchRepo) *UserService {
	return &UserService{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		watchRepo:        watchRepo,
	}
}

// GetChannelProfile returns a user's public profile with subscription
// counts. viewerID 0 means anonymous; IsSubscribed is then false.
func (s *UserService) GetChannelProfile(userID, viewerID int64) (*dto.ChannelProfile, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	subscriberCount, err := s.subscriptionRepo.CountByChannel(userID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != 0 && viewerID != userID {
		isSubscribed, err = s.subscriptionRepo.Exists(viewerID, userID)
		if err != nil {
			return nil, err
		}
	}

	return &dto.ChannelProfile{
		UserInfo:        *toUserInfo(user),
		SubscriberCount: subscriberCount,
		IsSubscribed:    isSubscribed,
	}, nil
}

// UpdateProfile applies the non-nil fields of the request.
func (s *UserService) UpdateProfile(userID int64, req *dto.UserUpdateRequest) (*dto.UserInfo, error) {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		exists, err := s.userRepo.ExistsByEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailExists
		}
		updates["email"] = *req.Email
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}

	if len(updates) == 0 {
		return s.GetCurrentProfile(userID)
	}

	user, err := s.userRepo.Update(userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// GetCurrentProfile returns the user's own profile.
func (s *UserService) GetCurrentProfile(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toUserInfo(user), nil
}

// GetWatchHistory pages through the user's watch history, newest first.
func (s *UserService) GetWatchHistory(userID int64, page, limit int) (*query.Page[dto.WatchHistoryItem], error) {
	skip := (page - 1) * limit
	entries, total, err := s.watchRepo.ListByUser(userID, skip, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.WatchHistoryItem, 0, len(entries))
	for i := range entries {
		items = append(items, dto.WatchHistoryItem{
			Video:     toVideoInfo(&entries[i].Video),
			WatchedAt: entries[i].CreatedAt,
		})
	}
	return query.NewPage(items, total, page, limit), nil
}
