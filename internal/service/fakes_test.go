package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"viewtube/internal/infra/kafka"
	"viewtube/internal/model"
	"viewtube/internal/query"

	"gorm.io/gorm"
)

// In-memory fakes for the repository interfaces. Error fields let tests
// inject failures per method.

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) addUser(username, email string) *model.User {
	u := &model.User{ID: f.nextID, UserName: username, Email: email, FullName: username}
	f.users[u.ID] = u
	f.nextID++
	return u
}

func (f *fakeUserRepo) GetByID(id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(username string) (*model.User, error) {
	for _, u := range f.users {
		if u.UserName == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Create(user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Update(id int64, updates map[string]interface{}) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := updates["full_name"]; ok {
		u.FullName = v.(string)
	}
	if v, ok := updates["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := updates["avatar"]; ok {
		s := v.(string)
		u.Avatar = &s
	}
	if v, ok := updates["password"]; ok {
		u.Password = v.(string)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) ExistsByUsername(username string) (bool, error) {
	_, err := f.GetByUsername(username)
	return err == nil, nil
}

func (f *fakeUserRepo) ExistsByEmail(email string) (bool, error) {
	_, err := f.GetByEmail(email)
	return err == nil, nil
}

func (f *fakeUserRepo) SetRefreshTokenHash(id int64, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.RefreshTokenHash = hash
	return nil
}

func (f *fakeUserRepo) GetByRefreshTokenHash(hash string) (*model.User, error) {
	if hash == "" {
		return nil, gorm.ErrRecordNotFound
	}
	for _, u := range f.users {
		if u.RefreshTokenHash == hash {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) SearchByName(q string, limit int) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.UserName), strings.ToLower(q)) ||
			strings.Contains(strings.ToLower(u.FullName), strings.ToLower(q)) {
			out = append(out, *u)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByIDs(ids []int64) ([]model.User, error) {
	var out []model.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeVideoRepo struct {
	videos  map[int64]*model.Video
	nextID  int64
	sumErr  error
	listErr error
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: map[int64]*model.Video{}, nextID: 1}
}

func (f *fakeVideoRepo) addVideo(ownerID int64, title string, published bool) *model.Video {
	v := &model.Video{
		ID:          f.nextID,
		OwnerID:     ownerID,
		Title:       title,
		IsPublished: published,
		Owner:       model.User{ID: ownerID, UserName: fmt.Sprintf("user%d", ownerID)},
	}
	f.videos[v.ID] = v
	f.nextID++
	return v
}

func (f *fakeVideoRepo) GetByID(id int64) (*model.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideoRepo) GetByIDWithOwner(id int64) (*model.Video, error) {
	return f.GetByID(id)
}

func (f *fakeVideoRepo) GetByIDAndOwner(videoID, ownerID int64) (*model.Video, error) {
	v, err := f.GetByID(videoID)
	if err != nil {
		return nil, err
	}
	if v.OwnerID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (f *fakeVideoRepo) Create(video *model.Video) error {
	video.ID = f.nextID
	f.nextID++
	cp := *video
	f.videos[video.ID] = &cp
	return nil
}

func (f *fakeVideoRepo) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	v, ok := f.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if val, ok := updates["title"]; ok {
		v.Title = val.(string)
	}
	if val, ok := updates["description"]; ok {
		v.Description = val.(string)
	}
	if val, ok := updates["is_published"]; ok {
		v.IsPublished = val.(bool)
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideoRepo) Delete(id int64) error {
	if _, ok := f.videos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.videos, id)
	return nil
}

func (f *fakeVideoRepo) List(p query.Pipeline, withOwner bool) ([]model.Video, int64, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var all []model.Video
	for _, v := range f.videos {
		if !v.IsPublished {
			continue
		}
		if p.Search != "" && !strings.Contains(strings.ToLower(v.Title), strings.ToLower(p.Search)) {
			continue
		}
		if p.OwnerID != nil && v.OwnerID != *p.OwnerID {
			continue
		}
		all = append(all, *v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	start := p.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeVideoRepo) ListByOwner(ownerID int64, publishedOnly bool, skip, limit int) ([]model.Video, int64, error) {
	var all []model.Video
	for _, v := range f.videos {
		if v.OwnerID != ownerID {
			continue
		}
		if publishedOnly && !v.IsPublished {
			continue
		}
		all = append(all, *v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if skip > len(all) {
		skip = len(all)
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (f *fakeVideoRepo) GetByIDsWithOwner(ids []int64) ([]model.Video, error) {
	var out []model.Video
	for _, id := range ids {
		if v, ok := f.videos[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (f *fakeVideoRepo) IncrementViewCount(id int64) error {
	v, ok := f.videos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.ViewCount++
	return nil
}

func (f *fakeVideoRepo) SumViewsByOwner(ownerID int64) (int64, error) {
	if f.sumErr != nil {
		return 0, f.sumErr
	}
	var sum int64
	for _, v := range f.videos {
		if v.OwnerID == ownerID {
			sum += v.ViewCount
		}
	}
	return sum, nil
}

func (f *fakeVideoRepo) CountByOwner(ownerID int64) (int64, error) {
	var n int64
	for _, v := range f.videos {
		if v.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

type fakeCommentRepo struct {
	comments  map[int64]*model.Comment
	nextID    int64
	deleteErr error
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[int64]*model.Comment{}, nextID: 1}
}

func (f *fakeCommentRepo) addComment(videoID, ownerID int64, content string) *model.Comment {
	c := &model.Comment{ID: f.nextID, VideoID: videoID, OwnerID: ownerID, Content: content}
	f.comments[c.ID] = c
	f.nextID++
	return c
}

func (f *fakeCommentRepo) GetByID(id int64) (*model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) Create(comment *model.Comment) error {
	comment.ID = f.nextID
	f.nextID++
	cp := *comment
	f.comments[comment.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) Update(id int64, updates map[string]interface{}) (*model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := updates["content"]; ok {
		c.Content = v.(string)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) Delete(id int64) error {
	if _, ok := f.comments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) ListByVideo(videoID int64, skip, limit int) ([]model.Comment, int64, error) {
	var all []model.Comment
	for _, c := range f.comments {
		if c.VideoID == videoID {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if skip > len(all) {
		skip = len(all)
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (f *fakeCommentRepo) ListIDsByVideo(videoID int64) ([]int64, error) {
	var ids []int64
	for _, c := range f.comments {
		if c.VideoID == videoID {
			ids = append(ids, c.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeCommentRepo) DeleteByVideo(videoID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for id, c := range f.comments {
		if c.VideoID == videoID {
			delete(f.comments, id)
		}
	}
	return nil
}

type fakeLikeRepo struct {
	likes     map[int64]*model.Like
	nextID    int64
	createErr error
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: map[int64]*model.Like{}, nextID: 1}
}

func (f *fakeLikeRepo) find(match func(*model.Like) bool) *model.Like {
	for _, l := range f.likes {
		if match(l) {
			return l
		}
	}
	return nil
}

func (f *fakeLikeRepo) create(ownerID int64, videoID, commentID, tweetID *int64) (*model.Like, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	l := &model.Like{ID: f.nextID, OwnerID: ownerID, VideoID: videoID, CommentID: commentID, TweetID: tweetID}
	f.likes[l.ID] = l
	f.nextID++
	return l, nil
}

func (f *fakeLikeRepo) ExistsForVideo(ownerID, videoID int64) (bool, error) {
	return f.find(func(l *model.Like) bool {
		return l.OwnerID == ownerID && l.VideoID != nil && *l.VideoID == videoID
	}) != nil, nil
}

func (f *fakeLikeRepo) CreateForVideo(ownerID, videoID int64) (*model.Like, error) {
	if exists, _ := f.ExistsForVideo(ownerID, videoID); exists {
		return nil, gorm.ErrDuplicatedKey
	}
	return f.create(ownerID, &videoID, nil, nil)
}

func (f *fakeLikeRepo) DeleteForVideo(ownerID, videoID int64) (bool, error) {
	l := f.find(func(l *model.Like) bool {
		return l.OwnerID == ownerID && l.VideoID != nil && *l.VideoID == videoID
	})
	if l == nil {
		return false, nil
	}
	delete(f.likes, l.ID)
	return true, nil
}

func (f *fakeLikeRepo) ExistsForComment(ownerID, commentID int64) (bool, error) {
	return f.find(func(l *model.Like) bool {
		return l.OwnerID == ownerID && l.CommentID != nil && *l.CommentID == commentID
	}) != nil, nil
}

func (f *fakeLikeRepo) CreateForComment(ownerID, commentID int64) (*model.Like, error) {
	if exists, _ := f.ExistsForComment(ownerID, commentID); exists {
		return nil, gorm.ErrDuplicatedKey
	}
	return f.create(ownerID, nil, &commentID, nil)
}

func (f *fakeLikeRepo) DeleteForComment(ownerID, commentID int64) (bool, error) {
	l := f.find(func(l *model.Like) bool {
		return l.OwnerID == ownerID && l.CommentID != nil && *l.CommentID == commentID
	})
	if l == nil {
		return false, nil
	}
	delete(f.likes, l.ID)
	return true, nil
}

func (f *fakeLikeRepo) ExistsForTweet(ownerID, tweetID int64) (bool, error) {
	return f.find(func(l *model.Like) bool {
		return l.OwnerID == ownerID && l.TweetID != nil && *l.TweetID == tweetID
	}) != nil, nil
}

func (f *fakeLikeRepo) CreateForTweet(ownerID, tweetID int64) (*model.Like, error) {
	if exists, _ := f.ExistsForTweet(ownerID, tweetID); exists {
		return nil, gorm.ErrDuplicatedKey
	}
	return f.create(ownerID, nil, nil, &tweetID)
}

func (f *fakeLikeRepo) DeleteForTweet(ownerID, tweetID int64) (bool, error) {
	l := f.find(func(l *model.Like) bool {
		return l.OwnerID == ownerID && l.TweetID != nil && *l.TweetID == tweetID
	})
	if l == nil {
		return false, nil
	}
	delete(f.likes, l.ID)
	return true, nil
}

func (f *fakeLikeRepo) CountForVideo(videoID int64) (int64, error) {
	var n int64
	for _, l := range f.likes {
		if l.VideoID != nil && *l.VideoID == videoID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLikeRepo) CountForComment(commentID int64) (int64, error) {
	var n int64
	for _, l := range f.likes {
		if l.CommentID != nil && *l.CommentID == commentID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLikeRepo) CountForTweet(tweetID int64) (int64, error) {
	var n int64
	for _, l := range f.likes {
		if l.TweetID != nil && *l.TweetID == tweetID {
			n++
		}
	}
	return n, nil
}

func (f *fakeLikeRepo) ListVideoLikesByOwner(ownerID int64, skip, limit int) ([]model.Like, int64, error) {
	var all []model.Like
	for _, l := range f.likes {
		if l.OwnerID == ownerID && l.VideoID != nil {
			all = append(all, *l)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if skip > len(all) {
		skip = len(all)
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (f *fakeLikeRepo) CountForOwnerVideos(ownerID int64) (int64, error) {
	// The fake has no join; tests set likes on videos they know belong
	// to the owner.
	var n int64
	for _, l := range f.likes {
		if l.VideoID != nil {
			n++
		}
	}
	return n, nil
}

func (f *fakeLikeRepo) DeleteByVideo(videoID int64) error {
	for id, l := range f.likes {
		if l.VideoID != nil && *l.VideoID == videoID {
			delete(f.likes, id)
		}
	}
	return nil
}

func (f *fakeLikeRepo) DeleteByComment(commentID int64) error {
	for id, l := range f.likes {
		if l.CommentID != nil && *l.CommentID == commentID {
			delete(f.likes, id)
		}
	}
	return nil
}

func (f *fakeLikeRepo) DeleteByComments(commentIDs []int64) error {
	for _, cid := range commentIDs {
		if err := f.DeleteByComment(cid); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeLikeRepo) DeleteByTweet(tweetID int64) error {
	for id, l := range f.likes {
		if l.TweetID != nil && *l.TweetID == tweetID {
			delete(f.likes, id)
		}
	}
	return nil
}

type subKey struct{ subscriber, channel int64 }

type fakeSubscriptionRepo struct {
	subs      map[subKey]time.Time
	createErr error
	countErr  error
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: map[subKey]time.Time{}}
}

func (f *fakeSubscriptionRepo) Exists(subscriberID, channelID int64) (bool, error) {
	_, ok := f.subs[subKey{subscriberID, channelID}]
	return ok, nil
}

func (f *fakeSubscriptionRepo) Create(subscriberID, channelID int64) (*model.Subscription, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	k := subKey{subscriberID, channelID}
	if _, ok := f.subs[k]; ok {
		return nil, gorm.ErrDuplicatedKey
	}
	f.subs[k] = time.Now()
	return &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}, nil
}

func (f *fakeSubscriptionRepo) Delete(subscriberID, channelID int64) (bool, error) {
	k := subKey{subscriberID, channelID}
	if _, ok := f.subs[k]; !ok {
		return false, nil
	}
	delete(f.subs, k)
	return true, nil
}

func (f *fakeSubscriptionRepo) CountByChannel(channelID int64) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	var n int64
	for k := range f.subs {
		if k.channel == channelID {
			n++
		}
	}
	return n, nil
}

func (f *fakeSubscriptionRepo) ListSubscribers(channelID int64, skip, limit int) ([]model.Subscription, int64, error) {
	var all []model.Subscription
	for k, at := range f.subs {
		if k.channel == channelID {
			all = append(all, model.Subscription{
				SubscriberID: k.subscriber,
				ChannelID:    k.channel,
				CreatedAt:    at,
				Subscriber:   model.User{ID: k.subscriber, UserName: fmt.Sprintf("user%d", k.subscriber)},
			})
		}
	}
	total := int64(len(all))
	if skip > len(all) {
		skip = len(all)
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (f *fakeSubscriptionRepo) ListChannels(subscriberID int64, skip, limit int) ([]model.Subscription, int64, error) {
	var all []model.Subscription
	for k, at := range f.subs {
		if k.subscriber == subscriberID {
			all = append(all, model.Subscription{
				SubscriberID: k.subscriber,
				ChannelID:    k.channel,
				CreatedAt:    at,
				Channel:      model.User{ID: k.channel, UserName: fmt.Sprintf("user%d", k.channel)},
			})
		}
	}
	total := int64(len(all))
	if skip > len(all) {
		skip = len(all)
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

type fakePlaylistRepo struct {
	playlists map[int64]*model.Playlist
	entries   map[int64][]model.PlaylistEntry // by playlist id
	nextID    int64
	removeErr error
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{
		playlists: map[int64]*model.Playlist{},
		entries:   map[int64][]model.PlaylistEntry{},
		nextID:    1,
	}
}

func (f *fakePlaylistRepo) addPlaylist(ownerID int64, name string) *model.Playlist {
	p := &model.Playlist{ID: f.nextID, OwnerID: ownerID, Name: name}
	f.playlists[p.ID] = p
	f.nextID++
	return p
}

func (f *fakePlaylistRepo) GetByID(id int64) (*model.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlaylistRepo) GetByIDWithVideos(id int64) (*model.Playlist, error) {
	p, err := f.GetByID(id)
	if err != nil {
		return nil, err
	}
	p.Entries = append([]model.PlaylistEntry(nil), f.entries[id]...)
	return p, nil
}

func (f *fakePlaylistRepo) ListByOwner(ownerID int64, skip, limit int) ([]model.Playlist, int64, error) {
	var all []model.Playlist
	for _, p := range f.playlists {
		if p.OwnerID == ownerID {
			all = append(all, *p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if skip > len(all) {
		skip = len(all)
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (f *fakePlaylistRepo) Create(playlist *model.Playlist) error {
	playlist.ID = f.nextID
	f.nextID++
	cp := *playlist
	f.playlists[playlist.ID] = &cp
	return nil
}

func (f *fakePlaylistRepo) Update(id int64, updates map[string]interface{}) (*model.Playlist, error) {
	p, ok := f.playlists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := updates["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := updates["description"]; ok {
		p.Description = v.(string)
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlaylistRepo) Delete(id int64) error {
	if _, ok := f.playlists[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.playlists, id)
	delete(f.entries, id)
	return nil
}

func (f *fakePlaylistRepo) AddVideo(playlistID, videoID int64) (*model.PlaylistEntry, error) {
	for _, e := range f.entries[playlistID] {
		if e.VideoID == videoID {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	entry := model.PlaylistEntry{
		PlaylistID: playlistID,
		VideoID:    videoID,
		Position:   len(f.entries[playlistID]) + 1,
	}
	f.entries[playlistID] = append(f.entries[playlistID], entry)
	return &entry, nil
}

func (f *fakePlaylistRepo) RemoveVideo(playlistID, videoID int64) (bool, error) {
	entries := f.entries[playlistID]
	for i, e := range entries {
		if e.VideoID == videoID {
			f.entries[playlistID] = append(entries[:i], entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlaylistRepo) RemoveVideoFromAll(videoID int64) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	for pid := range f.entries {
		_, _ = f.RemoveVideo(pid, videoID)
	}
	return nil
}

func (f *fakePlaylistRepo) countEntries(videoID int64) int {
	n := 0
	for _, entries := range f.entries {
		for _, e := range entries {
			if e.VideoID == videoID {
				n++
			}
		}
	}
	return n
}

type fakeTweetRepo struct {
	tweets map[int64]*model.Tweet
	nextID int64
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: map[int64]*model.Tweet{}, nextID: 1}
}

func (f *fakeTweetRepo) addTweet(ownerID int64, content string) *model.Tweet {
	t := &model.Tweet{ID: f.nextID, OwnerID: ownerID, Content: content}
	f.tweets[t.ID] = t
	f.nextID++
	return t
}

func (f *fakeTweetRepo) GetByID(id int64) (*model.Tweet, error) {
	t, ok := f.tweets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTweetRepo) GetByIDWithOwner(id int64) (*model.Tweet, error) {
	return f.GetByID(id)
}

func (f *fakeTweetRepo) Create(tweet *model.Tweet) error {
	tweet.ID = f.nextID
	f.nextID++
	cp := *tweet
	f.tweets[tweet.ID] = &cp
	return nil
}

func (f *fakeTweetRepo) Update(id int64, updates map[string]interface{}) (*model.Tweet, error) {
	t, ok := f.tweets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if v, ok := updates["content"]; ok {
		t.Content = v.(string)
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTweetRepo) Delete(id int64) error {
	if _, ok := f.tweets[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.tweets, id)
	return nil
}

func (f *fakeTweetRepo) ListByOwner(ownerID int64, skip, limit int) ([]model.Tweet, int64, error) {
	var all []model.Tweet
	for _, t := range f.tweets {
		if t.OwnerID == ownerID {
			all = append(all, *t)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if skip > len(all) {
		skip = len(all)
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

type watchKey struct{ user, video int64 }

type fakeWatchRepo struct {
	entries   map[watchKey]time.Time
	deleteErr error
}

func newFakeWatchRepo() *fakeWatchRepo {
	return &fakeWatchRepo{entries: map[watchKey]time.Time{}}
}

func (f *fakeWatchRepo) Add(userID, videoID int64) (bool, error) {
	k := watchKey{userID, videoID}
	if _, ok := f.entries[k]; ok {
		return false, nil
	}
	f.entries[k] = time.Now()
	return true, nil
}

func (f *fakeWatchRepo) ListByUser(userID int64, skip, limit int) ([]model.WatchEntry, int64, error) {
	var all []model.WatchEntry
	for k, at := range f.entries {
		if k.user == userID {
			all = append(all, model.WatchEntry{
				UserID:    k.user,
				VideoID:   k.video,
				CreatedAt: at,
				Video:     model.Video{ID: k.video},
			})
		}
	}
	total := int64(len(all))
	if skip > len(all) {
		skip = len(all)
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

func (f *fakeWatchRepo) DeleteByVideo(videoID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for k := range f.entries {
		if k.video == videoID {
			delete(f.entries, k)
		}
	}
	return nil
}

// fakeObjectStore records uploads and deletions.
type fakeObjectStore struct {
	uploads   []string // bucket/object
	deletes   []string
	deleteErr error
}

func (f *fakeObjectStore) Upload(_ context.Context, bucket, objectName string, r io.Reader, _ int64, _ string) (string, string, error) {
	_, _ = io.Copy(io.Discard, r)
	f.uploads = append(f.uploads, bucket+"/"+objectName)
	return "http://store/" + bucket + "/" + objectName, objectName, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, bucket, objectName string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, bucket+"/"+objectName)
	return nil
}

// fakeEventPublisher records events.
type fakeEventPublisher struct {
	events []kafka.VideoEvent
}

func (f *fakeEventPublisher) PublishVideoEvent(_ context.Context, event *kafka.VideoEvent) error {
	f.events = append(f.events, *event)
	return nil
}

// fakeStatsCache is a map with recorded sets.
type fakeStatsCache struct {
	values map[string]string
	sets   int
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{values: map[string]string{}}
}

func (f *fakeStatsCache) Get(_ context.Context, key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeStatsCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	f.values[key] = value
	f.sets++
	return nil
}
