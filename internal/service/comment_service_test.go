package service

import (
	"testing"

	"viewtube/internal/api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentFixture(t *testing.T) (*CommentService, *fakeCommentRepo, *fakeVideoRepo, *fakeLikeRepo) {
	t.Helper()
	comments := newFakeCommentRepo()
	videos := newFakeVideoRepo()
	likes := newFakeLikeRepo()
	return NewCommentService(comments, videos, likes), comments, videos, likes
}

func TestCommentCreate(t *testing.T) {
	svc, _, videos, _ := newCommentFixture(t)
	video := videos.addVideo(1, "first", true)

	info, err := svc.Create(video.ID, 2, &dto.CommentCreateRequest{Content: "nice"})
	require.NoError(t, err)
	assert.Equal(t, "nice", info.Content)
	assert.Equal(t, video.ID, info.VideoID)
	assert.Zero(t, info.LikeCount)

	_, err = svc.Create(99, 2, &dto.CommentCreateRequest{Content: "nice"})
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestCommentCreateOnDraftVideo(t *testing.T) {
	svc, _, videos, _ := newCommentFixture(t)
	video := videos.addVideo(1, "draft", false)

	// A draft is invisible to everyone but its owner.
	_, err := svc.Create(video.ID, 2, &dto.CommentCreateRequest{Content: "sneaky"})
	assert.ErrorIs(t, err, ErrVideoNotFound)

	_, err = svc.Create(video.ID, 1, &dto.CommentCreateRequest{Content: "note to self"})
	require.NoError(t, err)
}

func TestCommentUpdateAuthorOnly(t *testing.T) {
	svc, comments, videos, _ := newCommentFixture(t)
	video := videos.addVideo(1, "first", true)
	comment := comments.addComment(video.ID, 2, "original")

	_, err := svc.Update(comment.ID, 1, &dto.CommentUpdateRequest{Content: "hijacked"})
	assert.ErrorIs(t, err, ErrNotCommentOwner)

	info, err := svc.Update(comment.ID, 2, &dto.CommentUpdateRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", info.Content)
}

func TestCommentDeletePermissions(t *testing.T) {
	svc, comments, videos, _ := newCommentFixture(t)
	video := videos.addVideo(1, "first", true)

	byAuthor := comments.addComment(video.ID, 2, "a")
	byOther := comments.addComment(video.ID, 3, "b")

	// A third party may not delete.
	assert.ErrorIs(t, svc.Delete(byOther.ID, 4), ErrNotCommentOwner)

	// The author may.
	require.NoError(t, svc.Delete(byAuthor.ID, 2))

	// The video's owner may moderate any comment on their video.
	require.NoError(t, svc.Delete(byOther.ID, 1))

	assert.Empty(t, comments.comments)
}

func TestCommentDeleteRemovesLikes(t *testing.T) {
	svc, comments, videos, likes := newCommentFixture(t)
	video := videos.addVideo(1, "first", true)
	comment := comments.addComment(video.ID, 2, "a")

	_, err := likes.CreateForComment(3, comment.ID)
	require.NoError(t, err)
	_, err = likes.CreateForComment(4, comment.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(comment.ID, 2))
	assert.Empty(t, likes.likes)
}

func TestCommentListByVideo(t *testing.T) {
	svc, comments, videos, likes := newCommentFixture(t)
	video := videos.addVideo(1, "first", true)

	c1 := comments.addComment(video.ID, 2, "a")
	comments.addComment(video.ID, 3, "b")
	_, err := likes.CreateForComment(4, c1.ID)
	require.NoError(t, err)

	page, err := svc.ListByVideo(video.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalItems)
	require.Len(t, page.Items, 2)

	var liked int64
	for _, item := range page.Items {
		liked += item.LikeCount
	}
	assert.Equal(t, int64(1), liked)

	_, err = svc.ListByVideo(99, 1, 10)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}
