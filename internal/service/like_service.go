package service

import (
	"errors"

	"viewtube/internal/api/dto"
	"viewtube/internal/query"

	"gorm.io/gorm"
)

// ErrLikeConflict surfaces a toggle race: another request flipped the
// same like between our check and our write. The client can safely retry.
var ErrLikeConflict = errors.New("like state changed concurrently")

type LikeService struct {
	likeRepo    LikeRepo
	videoRepo   VideoRepo
	commentRepo CommentRepo
	tweetRepo   TweetRepo
}

func NewLikeService(likeRepo LikeRepo, videoRepo VideoRepo, commentRepo CommentRepo, tweetRepo TweetRepo) *LikeService {
	return &LikeService{likeRepo: likeRepo, videoRepo: videoRepo, commentRepo: commentRepo, tweetRepo: tweetRepo}
}

// ToggleVideoLike flips the caller's like on a video and reports the
// resulting state. Creating a like that already exists trips the unique
// index and maps to ErrLikeConflict rather than double-liking.
func (s *LikeService) ToggleVideoLike(ownerID, videoID int64) (*dto.ToggleLikeData, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	liked, err := s.toggle(
		func() (bool, error) { return s.likeRepo.ExistsForVideo(ownerID, videoID) },
		func() error { _, err := s.likeRepo.CreateForVideo(ownerID, videoID); return err },
		func() (bool, error) { return s.likeRepo.DeleteForVideo(ownerID, videoID) },
	)
	if err != nil {
		return nil, err
	}

	count, err := s.likeRepo.CountForVideo(videoID)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleLikeData{Liked: liked, LikeCount: count}, nil
}

// ToggleCommentLike flips the caller's like on a comment.
func (s *LikeService) ToggleCommentLike(ownerID, commentID int64) (*dto.ToggleLikeData, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	liked, err := s.toggle(
		func() (bool, error) { return s.likeRepo.ExistsForComment(ownerID, commentID) },
		func() error { _, err := s.likeRepo.CreateForComment(ownerID, commentID); return err },
		func() (bool, error) { return s.likeRepo.DeleteForComment(ownerID, commentID) },
	)
	if err != nil {
		return nil, err
	}

	count, err := s.likeRepo.CountForComment(commentID)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleLikeData{Liked: liked, LikeCount: count}, nil
}

// ToggleTweetLike flips the caller's like on a tweet.
func (s *LikeService) ToggleTweetLike(ownerID, tweetID int64) (*dto.ToggleLikeData, error) {
	if _, err := s.tweetRepo.GetByID(tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}

	liked, err := s.toggle(
		func() (bool, error) { return s.likeRepo.ExistsForTweet(ownerID, tweetID) },
		func() error { _, err := s.likeRepo.CreateForTweet(ownerID, tweetID); return err },
		func() (bool, error) { return s.likeRepo.DeleteForTweet(ownerID, tweetID) },
	)
	if err != nil {
		return nil, err
	}

	count, err := s.likeRepo.CountForTweet(tweetID)
	if err != nil {
		return nil, err
	}
	return &dto.ToggleLikeData{Liked: liked, LikeCount: count}, nil
}

// VideoLikeCount reports how many likes a video currently has.
func (s *LikeService) VideoLikeCount(videoID int64) (*dto.LikeCountData, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	count, err := s.likeRepo.CountForVideo(videoID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeCountData{LikeCount: count}, nil
}

// CommentLikeCount reports how many likes a comment currently has.
func (s *LikeService) CommentLikeCount(commentID int64) (*dto.LikeCountData, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	count, err := s.likeRepo.CountForComment(commentID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeCountData{LikeCount: count}, nil
}

// TweetLikeCount reports how many likes a tweet currently has.
func (s *LikeService) TweetLikeCount(tweetID int64) (*dto.LikeCountData, error) {
	if _, err := s.tweetRepo.GetByID(tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}

	count, err := s.likeRepo.CountForTweet(tweetID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeCountData{LikeCount: count}, nil
}

// GetLikedVideos pages through the videos the user has liked, newest
// like first. Likes whose video has since disappeared are skipped from
// the items, but TotalItems still counts every like row, so a page can
// hold fewer items than the paging metadata implies.
func (s *LikeService) GetLikedVideos(ownerID int64, page, limit int) (*query.Page[dto.VideoInfo], error) {
	skip := (page - 1) * limit
	likes, total, err := s.likeRepo.ListVideoLikesByOwner(ownerID, skip, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.VideoInfo, 0, len(likes))
	for i := range likes {
		if likes[i].Video == nil || likes[i].Video.ID == 0 {
			continue
		}
		items = append(items, toVideoInfo(likes[i].Video))
	}
	return query.NewPage(items, total, page, limit), nil
}

// toggle runs a check-then-act like flip. A duplicate-key error on
// create means a concurrent request already liked; a delete that removes
// nothing means a concurrent request already unliked. Both map to
// ErrLikeConflict.
func (s *LikeService) toggle(exists func() (bool, error), create func() error, remove func() (bool, error)) (bool, error) {
	has, err := exists()
	if err != nil {
		return false, err
	}

	if has {
		deleted, err := remove()
		if err != nil {
			return false, err
		}
		if !deleted {
			return false, ErrLikeConflict
		}
		return false, nil
	}

	if err := create(); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, ErrLikeConflict
		}
		return false, err
	}
	return true, nil
}
