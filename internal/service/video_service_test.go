package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"viewtube/internal/api/dto"
	"viewtube/internal/infra/kafka"
	"viewtube/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type videoFixture struct {
	svc       *VideoService
	videos    *fakeVideoRepo
	comments  *fakeCommentRepo
	likes     *fakeLikeRepo
	playlists *fakePlaylistRepo
	watches   *fakeWatchRepo
	subs      *fakeSubscriptionRepo
	store     *fakeObjectStore
	events    *fakeEventPublisher
}

func newVideoFixture(t *testing.T) *videoFixture {
	t.Helper()
	f := &videoFixture{
		videos:    newFakeVideoRepo(),
		comments:  newFakeCommentRepo(),
		likes:     newFakeLikeRepo(),
		playlists: newFakePlaylistRepo(),
		watches:   newFakeWatchRepo(),
		subs:      newFakeSubscriptionRepo(),
		store:     &fakeObjectStore{},
		events:    &fakeEventPublisher{},
	}
	f.svc = NewVideoService(f.videos, f.comments, f.likes, f.playlists, f.watches, f.subs, f.store, f.events)
	return f
}

func TestGetForViewingCountsFirstWatchOnly(t *testing.T) {
	f := newVideoFixture(t)
	video := f.videos.addVideo(1, "first", true)

	detail, err := f.svc.GetForViewing(context.Background(), video.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.ViewCount)

	// The same viewer coming back does not move the counter.
	detail, err = f.svc.GetForViewing(context.Background(), video.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), detail.ViewCount)

	// A different viewer does.
	detail, err = f.svc.GetForViewing(context.Background(), video.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.ViewCount)
}

func TestGetForViewingAnonymousRecordsNothing(t *testing.T) {
	f := newVideoFixture(t)
	video := f.videos.addVideo(1, "first", true)

	detail, err := f.svc.GetForViewing(context.Background(), video.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), detail.ViewCount)
	assert.Empty(t, f.watches.entries)
}

func TestGetForViewingUnpublishedVisibleToOwnerOnly(t *testing.T) {
	f := newVideoFixture(t)
	video := f.videos.addVideo(1, "draft", false)

	_, err := f.svc.GetForViewing(context.Background(), video.ID, 2)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	detail, err := f.svc.GetForViewing(context.Background(), video.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "draft", detail.Title)
	// Owner previews do not count as watches.
	assert.Empty(t, f.watches.entries)
	assert.Equal(t, int64(0), detail.ViewCount)
}

func TestGetForViewingComposesEngagement(t *testing.T) {
	f := newVideoFixture(t)
	video := f.videos.addVideo(1, "first", true)

	_, err := f.likes.CreateForVideo(2, video.ID)
	require.NoError(t, err)
	_, err = f.likes.CreateForVideo(3, video.ID)
	require.NoError(t, err)
	_, err = f.subs.Create(2, 1)
	require.NoError(t, err)

	detail, err := f.svc.GetForViewing(context.Background(), video.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.LikeCount)
	assert.True(t, detail.IsLiked)
	assert.Equal(t, int64(1), detail.SubscriberCount)
	assert.True(t, detail.IsSubscribed)
}

func TestPublishUploadsAndEmitsEvent(t *testing.T) {
	f := newVideoFixture(t)

	req := &dto.VideoUploadRequest{Title: "launch", Description: "demo", Duration: 90}
	videoFile := Upload{Reader: strings.NewReader("data"), Size: 4, ContentType: "video/mp4", Filename: "launch.mp4"}
	thumb := Upload{Reader: strings.NewReader("img"), Size: 3, ContentType: "image/png", Filename: "cover.png"}

	info, err := f.svc.Publish(context.Background(), 1, req, videoFile, &thumb)
	require.NoError(t, err)
	assert.Equal(t, "launch", info.Title)
	assert.True(t, info.IsPublished)
	assert.NotEmpty(t, info.VideoURL)
	assert.Len(t, f.store.uploads, 2)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, kafka.EventVideoPublished, f.events.events[0].Type)
	assert.Equal(t, info.ID, f.events.events[0].VideoID)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	f := newVideoFixture(t)
	video := f.videos.addVideo(1, "first", true)

	title := "renamed"
	_, err := f.svc.Update(context.Background(), video.ID, 2, &dto.VideoUpdateRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotVideoOwner)

	info, err := f.svc.Update(context.Background(), video.ID, 1, &dto.VideoUpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", info.Title)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, kafka.EventVideoUpdated, f.events.events[0].Type)
}

func TestTogglePublishFlips(t *testing.T) {
	f := newVideoFixture(t)
	video := f.videos.addVideo(1, "first", true)

	data, err := f.svc.TogglePublish(context.Background(), video.ID, 1)
	require.NoError(t, err)
	assert.False(t, data.IsPublished)

	data, err = f.svc.TogglePublish(context.Background(), video.ID, 1)
	require.NoError(t, err)
	assert.True(t, data.IsPublished)
}

func TestDeleteCascadesEverything(t *testing.T) {
	f := newVideoFixture(t)
	video := f.videos.addVideo(1, "doomed", true)
	video.VideoObjectKey = "1/doomed.mp4"
	video.ThumbnailObjectKey = "1/doomed.png"

	c1 := f.comments.addComment(video.ID, 2, "a")
	c2 := f.comments.addComment(video.ID, 3, "b")
	_, err := f.likes.CreateForComment(4, c1.ID)
	require.NoError(t, err)
	_, err = f.likes.CreateForComment(4, c2.ID)
	require.NoError(t, err)
	_, err = f.likes.CreateForVideo(2, video.ID)
	require.NoError(t, err)
	_, err = f.likes.CreateForVideo(3, video.ID)
	require.NoError(t, err)

	p1 := f.playlists.addPlaylist(2, "watch later")
	p2 := f.playlists.addPlaylist(3, "favorites")
	_, err = f.playlists.AddVideo(p1.ID, video.ID)
	require.NoError(t, err)
	_, err = f.playlists.AddVideo(p2.ID, video.ID)
	require.NoError(t, err)

	for _, uid := range []int64{2, 3, 4} {
		_, err := f.watches.Add(uid, video.ID)
		require.NoError(t, err)
	}

	require.NoError(t, f.svc.Delete(context.Background(), video.ID, 1))

	assert.Empty(t, f.videos.videos)
	assert.Empty(t, f.comments.comments)
	assert.Empty(t, f.likes.likes)
	assert.Empty(t, f.watches.entries)
	assert.Zero(t, f.playlists.countEntries(video.ID))
	assert.ElementsMatch(t, []string{"videos/1/doomed.mp4", "thumbnails/1/doomed.png"}, f.store.deletes)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, kafka.EventVideoDeleted, f.events.events[0].Type)
}

func TestDeleteKeepsGoingAfterFailures(t *testing.T) {
	f := newVideoFixture(t)
	video := f.videos.addVideo(1, "doomed", true)

	f.comments.addComment(video.ID, 2, "a")
	_, err := f.likes.CreateForVideo(2, video.ID)
	require.NoError(t, err)

	f.comments.deleteErr = errors.New("comments table locked")
	f.playlists.removeErr = errors.New("playlist entries table locked")

	err = f.svc.Delete(context.Background(), video.ID, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCascadeIncomplete)
	assert.Contains(t, err.Error(), "delete comments")
	assert.Contains(t, err.Error(), "delete playlist entries")

	// Failed steps did not stop the rest of the cascade.
	assert.Empty(t, f.likes.likes)
	assert.Empty(t, f.videos.videos)
	require.Len(t, f.events.events, 1)
	assert.Equal(t, kafka.EventVideoDeleted, f.events.events[0].Type)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	f := newVideoFixture(t)
	video := f.videos.addVideo(1, "kept", true)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), video.ID, 2), ErrNotVideoOwner)
	assert.ErrorIs(t, f.svc.Delete(context.Background(), 99, 1), ErrVideoNotFound)
	assert.Len(t, f.videos.videos, 1)
}

func TestListByChannelHidesDraftsFromOthers(t *testing.T) {
	f := newVideoFixture(t)
	f.videos.addVideo(1, "public", true)
	f.videos.addVideo(1, "draft", false)

	page, err := f.svc.ListByChannel(1, 2, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalItems)

	page, err = f.svc.ListByChannel(1, 1, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalItems)
}

func TestListAppliesSearchAndPaging(t *testing.T) {
	f := newVideoFixture(t)
	f.videos.addVideo(1, "go tutorial", true)
	f.videos.addVideo(1, "go deep dive", true)
	f.videos.addVideo(2, "cooking", true)
	f.videos.addVideo(2, "go hidden draft", false)

	page, err := f.svc.List(query.RawListParams{Query: "go", Page: "1", Limit: "1"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalItems)
	assert.Len(t, page.Items, 1)
	assert.True(t, page.HasNext)

	_, err = f.svc.List(query.RawListParams{OwnerID: "abc"})
	assert.ErrorIs(t, err, query.ErrInvalidOwnerID)
}
