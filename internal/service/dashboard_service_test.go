package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardFixture struct {
	svc    *DashboardService
	videos *fakeVideoRepo
	subs   *fakeSubscriptionRepo
	likes  *fakeLikeRepo
	users  *fakeUserRepo
	cache  *fakeStatsCache
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()
	f := &dashboardFixture{
		videos: newFakeVideoRepo(),
		subs:   newFakeSubscriptionRepo(),
		likes:  newFakeLikeRepo(),
		users:  newFakeUserRepo(),
		cache:  newFakeStatsCache(),
	}
	f.svc = NewDashboardService(f.videos, f.subs, f.likes, f.users, f.cache)
	return f
}

func (f *dashboardFixture) seedChannel(t *testing.T) int64 {
	t.Helper()
	channel := f.users.addUser("creator", "creator@example.com")

	v1 := f.videos.addVideo(channel.ID, "first", true)
	v2 := f.videos.addVideo(channel.ID, "second", false)
	v1.ViewCount = 40
	v2.ViewCount = 2

	_, err := f.subs.Create(7, channel.ID)
	require.NoError(t, err)
	_, err = f.subs.Create(8, channel.ID)
	require.NoError(t, err)

	_, err = f.likes.CreateForVideo(7, v1.ID)
	require.NoError(t, err)
	_, err = f.likes.CreateForVideo(8, v1.ID)
	require.NoError(t, err)
	_, err = f.likes.CreateForVideo(9, v2.ID)
	require.NoError(t, err)

	return channel.ID
}

func TestChannelStats(t *testing.T) {
	f := newDashboardFixture(t)
	channelID := f.seedChannel(t)

	stats, err := f.svc.GetChannelStats(context.Background(), channelID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(42), stats.TotalViews)
	assert.Equal(t, int64(2), stats.TotalSubscribers)
	assert.Equal(t, int64(3), stats.TotalLikes)
	assert.Empty(t, stats.FailedMetrics)
	assert.Equal(t, 1, f.cache.sets)
}

func TestChannelStatsServedFromCache(t *testing.T) {
	f := newDashboardFixture(t)
	channelID := f.seedChannel(t)

	_, err := f.svc.GetChannelStats(context.Background(), channelID)
	require.NoError(t, err)

	// Data changes underneath; the cached totals still come back.
	f.videos.addVideo(channelID, "third", true)

	stats, err := f.svc.GetChannelStats(context.Background(), channelID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, 1, f.cache.sets)
}

func TestChannelStatsPartialFailure(t *testing.T) {
	f := newDashboardFixture(t)
	channelID := f.seedChannel(t)

	f.videos.sumErr = errors.New("views query timed out")
	f.subs.countErr = errors.New("subscriptions query timed out")

	stats, err := f.svc.GetChannelStats(context.Background(), channelID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"total_views", "total_subscribers"}, stats.FailedMetrics)
	assert.Zero(t, stats.TotalViews)
	assert.Zero(t, stats.TotalSubscribers)

	// The healthy metrics still came through.
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(3), stats.TotalLikes)

	// Partial results never reach the cache.
	assert.Zero(t, f.cache.sets)
}

func TestChannelStatsUnknownChannel(t *testing.T) {
	f := newDashboardFixture(t)

	_, err := f.svc.GetChannelStats(context.Background(), 99)
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestChannelVideosIncludeDrafts(t *testing.T) {
	f := newDashboardFixture(t)
	channelID := f.seedChannel(t)

	page, err := f.svc.GetChannelVideos(channelID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalItems)
}
