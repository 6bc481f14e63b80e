package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"viewtube/internal/api/dto"
	"viewtube/internal/query"
	"viewtube/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const statsCacheTTL = 60 * time.Second

type DashboardService struct {
	videoRepo VideoRepo
	subRepo   SubscriptionRepo
	likeRepo  LikeRepo
	userRepo  UserRepo
	cache     StatsCache
}

func NewDashboardService(videoRepo VideoRepo, subRepo SubscriptionRepo, likeRepo LikeRepo, userRepo UserRepo, cache StatsCache) *DashboardService {
	return &DashboardService{
		videoRepo: videoRepo,
		subRepo:   subRepo,
		likeRepo:  likeRepo,
		userRepo:  userRepo,
		cache:     cache,
	}
}

// GetChannelStats computes a channel's totals. The four metrics run
// concurrently and independently: a metric that fails is reported in
// FailedMetrics and left at zero instead of failing the whole response.
// Fully successful results are cached briefly.
func (s *DashboardService) GetChannelStats(ctx context.Context, channelID int64) (*dto.ChannelStats, error) {
	if _, err := s.userRepo.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	cacheKey := fmt.Sprintf("dashboard:stats:%d", channelID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var stats dto.ChannelStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats := &dto.ChannelStats{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	metric := func(name string, fetch func() (int64, error), assign func(int64)) {
		defer wg.Done()
		v, err := fetch()
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			logger.Warn("Channel stat failed",
				zap.String("metric", name), zap.Int64("channel_id", channelID), zap.Error(err))
			stats.FailedMetrics = append(stats.FailedMetrics, name)
			return
		}
		assign(v)
	}

	wg.Add(4)
	go metric("total_videos",
		func() (int64, error) { return s.videoRepo.CountByOwner(channelID) },
		func(v int64) { stats.TotalVideos = v })
	go metric("total_views",
		func() (int64, error) { return s.videoRepo.SumViewsByOwner(channelID) },
		func(v int64) { stats.TotalViews = v })
	go metric("total_subscribers",
		func() (int64, error) { return s.subRepo.CountByChannel(channelID) },
		func(v int64) { stats.TotalSubscribers = v })
	go metric("total_likes",
		func() (int64, error) { return s.likeRepo.CountForOwnerVideos(channelID) },
		func(v int64) { stats.TotalLikes = v })
	wg.Wait()

	// Partial results must not be cached: the next request should try
	// the failed metrics again.
	if s.cache != nil && len(stats.FailedMetrics) == 0 {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(raw), statsCacheTTL); err != nil {
				logger.Warn("Failed to cache channel stats",
					zap.Int64("channel_id", channelID), zap.Error(err))
			}
		}
	}

	return stats, nil
}

// GetChannelVideos pages through the owner's own videos, unpublished
// included.
func (s *DashboardService) GetChannelVideos(ownerID int64, page, limit int) (*query.Page[dto.VideoInfo], error) {
	skip := (page - 1) * limit
	videos, total, err := s.videoRepo.ListByOwner(ownerID, false, skip, limit)
	if err != nil {
		return nil, err
	}
	return query.NewPage(toVideoInfos(videos), total, page, limit), nil
}
