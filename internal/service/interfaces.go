package service

import (
	"viewtube/internal/model"
	"viewtube/internal/query"
)

// Repository contracts the services depend on. The concrete
// repository types satisfy them; tests substitute fakes.

type UserRepo interface {
	GetByID(id int64) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	Create(user *model.User) error
	Update(id int64, updates map[string]interface{}) (*model.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	SetRefreshTokenHash(id int64, hash string) error
	GetByRefreshTokenHash(hash string) (*model.User, error)
	SearchByName(q string, limit int) ([]model.User, error)
	GetByIDs(ids []int64) ([]model.User, error)
}

type VideoRepo interface {
	GetByID(id int64) (*model.Video, error)
	GetByIDWithOwner(id int64) (*model.Video, error)
	GetByIDAndOwner(videoID, ownerID int64) (*model.Video, error)
	Create(video *model.Video) error
	Update(id int64, updates map[string]interface{}) (*model.Video, error)
	Delete(id int64) error
	List(p query.Pipeline, withOwner bool) ([]model.Video, int64, error)
	ListByOwner(ownerID int64, publishedOnly bool, skip, limit int) ([]model.Video, int64, error)
	GetByIDsWithOwner(ids []int64) ([]model.Video, error)
	IncrementViewCount(id int64) error
	SumViewsByOwner(ownerID int64) (int64, error)
	CountByOwner(ownerID int64) (int64, error)
}

type CommentRepo interface {
	GetByID(id int64) (*model.Comment, error)
	Create(comment *model.Comment) error
	Update(id int64, updates map[string]interface{}) (*model.Comment, error)
	Delete(id int64) error
	ListByVideo(videoID int64, skip, limit int) ([]model.Comment, int64, error)
	ListIDsByVideo(videoID int64) ([]int64, error)
	DeleteByVideo(videoID int64) error
}

type LikeRepo interface {
	ExistsForVideo(ownerID, videoID int64) (bool, error)
	CreateForVideo(ownerID, videoID int64) (*model.Like, error)
	DeleteForVideo(ownerID, videoID int64) (bool, error)
	ExistsForComment(ownerID, commentID int64) (bool, error)
	CreateForComment(ownerID, commentID int64) (*model.Like, error)
	DeleteForComment(ownerID, commentID int64) (bool, error)
	ExistsForTweet(ownerID, tweetID int64) (bool, error)
	CreateForTweet(ownerID, tweetID int64) (*model.Like, error)
	DeleteForTweet(ownerID, tweetID int64) (bool, error)
	CountForVideo(videoID int64) (int64, error)
	CountForComment(commentID int64) (int64, error)
	CountForTweet(tweetID int64) (int64, error)
	ListVideoLikesByOwner(ownerID int64, skip, limit int) ([]model.Like, int64, error)
	CountForOwnerVideos(ownerID int64) (int64, error)
	DeleteByVideo(videoID int64) error
	DeleteByComment(commentID int64) error
	DeleteByComments(commentIDs []int64) error
	DeleteByTweet(tweetID int64) error
}

type SubscriptionRepo interface {
	Exists(subscriberID, channelID int64) (bool, error)
	Create(subscriberID, channelID int64) (*model.Subscription, error)
	Delete(subscriberID, channelID int64) (bool, error)
	CountByChannel(channelID int64) (int64, error)
	ListSubscribers(channelID int64, skip, limit int) ([]model.Subscription, int64, error)
	ListChannels(subscriberID int64, skip, limit int) ([]model.Subscription, int64, error)
}

type PlaylistRepo interface {
	GetByID(id int64) (*model.Playlist, error)
	GetByIDWithVideos(id int64) (*model.Playlist, error)
	ListByOwner(ownerID int64, skip, limit int) ([]model.Playlist, int64, error)
	Create(playlist *model.Playlist) error
	Update(id int64, updates map[string]interface{}) (*model.Playlist, error)
	Delete(id int64) error
	AddVideo(playlistID, videoID int64) (*model.PlaylistEntry, error)
	RemoveVideo(playlistID, videoID int64) (bool, error)
	RemoveVideoFromAll(videoID int64) error
}

type TweetRepo interface {
	GetByID(id int64) (*model.Tweet, error)
	GetByIDWithOwner(id int64) (*model.Tweet, error)
	Create(tweet *model.Tweet) error
	Update(id int64, updates map[string]interface{}) (*model.Tweet, error)
	Delete(id int64) error
	ListByOwner(ownerID int64, skip, limit int) ([]model.Tweet, int64, error)
}

type WatchRepo interface {
	Add(userID, videoID int64) (bool, error)
	ListByUser(userID int64, skip, limit int) ([]model.WatchEntry, int64, error)
	DeleteByVideo(videoID int64) error
}
