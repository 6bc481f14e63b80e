package service

import (
	"testing"

	"viewtube/internal/api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (*UserService, *fakeUserRepo, *fakeSubscriptionRepo, *fakeWatchRepo) {
	t.Helper()
	users := newFakeUserRepo()
	subs := newFakeSubscriptionRepo()
	watches := newFakeWatchRepo()
	return NewUserService(users, subs, watches), users, subs, watches
}

func TestGetChannelProfile(t *testing.T) {
	svc, users, subs, _ := newUserFixture(t)
	channel := users.addUser("creator", "creator@example.com")

	_, err := subs.Create(2, channel.ID)
	require.NoError(t, err)
	_, err = subs.Create(3, channel.ID)
	require.NoError(t, err)

	profile, err := svc.GetChannelProfile(channel.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "creator", profile.Username)
	assert.Equal(t, int64(2), profile.SubscriberCount)
	assert.True(t, profile.IsSubscribed)

	// Anonymous viewers never read as subscribed.
	profile, err = svc.GetChannelProfile(channel.ID, 0)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	// Nor does the owner looking at their own channel.
	profile, err = svc.GetChannelProfile(channel.ID, channel.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	_, err = svc.GetChannelProfile(99, 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, users, _, _ := newUserFixture(t)
	user := users.addUser("alice", "alice@example.com")
	users.addUser("bob", "bob@example.com")

	name := "Alice Cooper"
	info, err := svc.UpdateProfile(user.ID, &dto.UserUpdateRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", info.FullName)

	// Taking another account's email is rejected.
	taken := "bob@example.com"
	_, err = svc.UpdateProfile(user.ID, &dto.UserUpdateRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailExists)

	// An empty update is a no-op read.
	info, err = svc.UpdateProfile(user.ID, &dto.UserUpdateRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", info.FullName)
}

func TestGetWatchHistory(t *testing.T) {
	svc, _, _, watches := newUserFixture(t)

	for _, videoID := range []int64{10, 11, 12} {
		_, err := watches.Add(5, videoID)
		require.NoError(t, err)
	}
	_, err := watches.Add(6, 10)
	require.NoError(t, err)

	page, err := svc.GetWatchHistory(5, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalItems)
	assert.Len(t, page.Items, 2)
	assert.True(t, page.HasNext)
}
