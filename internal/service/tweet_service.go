package service

import (
	"context"
	"errors"
	"fmt"

	"viewtube/internal/api/dto"
	"viewtube/internal/infra/minio"
	"viewtube/internal/model"
	"viewtube/internal/query"

	"go.uber.org/multierr"

	"gorm.io/gorm"
)

var (
	ErrTweetNotFound = errors.New("tweet not found")
	ErrNotTweetOwner = errors.New("not the owner of this tweet")
)

type TweetService struct {
	tweetRepo TweetRepo
	likeRepo  LikeRepo
	store     ObjectStore
}

func NewTweetService(tweetRepo TweetRepo, likeRepo LikeRepo, store ObjectStore) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, likeRepo: likeRepo, store: store}
}

// Create posts a tweet, with an optional attached image.
func (s *TweetService) Create(ctx context.Context, ownerID int64, req *dto.TweetCreateRequest, image *Upload) (*dto.TweetInfo, error) {
	tweet := &model.Tweet{
		OwnerID: ownerID,
		Content: req.Content,
	}

	if image != nil {
		url, key, err := s.store.Upload(ctx, minio.ImageBucket,
			objectName(ownerID, image.Filename), image.Reader, image.Size, image.ContentType)
		if err != nil {
			return nil, err
		}
		tweet.ImageURL = &url
		tweet.ImageObjectKey = &key
	}

	if err := s.tweetRepo.Create(tweet); err != nil {
		if tweet.ImageObjectKey != nil {
			_ = s.store.Delete(ctx, minio.ImageBucket, *tweet.ImageObjectKey)
		}
		return nil, err
	}

	info := toTweetInfo(tweet, 0)
	return &info, nil
}

// ListByOwner pages through a user's tweets, newest first, with like
// counts attached.
func (s *TweetService) ListByOwner(ownerID int64, page, limit int) (*query.Page[dto.TweetInfo], error) {
	skip := (page - 1) * limit
	tweets, total, err := s.tweetRepo.ListByOwner(ownerID, skip, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TweetInfo, 0, len(tweets))
	for i := range tweets {
		likeCount, err := s.likeRepo.CountForTweet(tweets[i].ID)
		if err != nil {
			return nil, err
		}
		items = append(items, toTweetInfo(&tweets[i], likeCount))
	}
	return query.NewPage(items, total, page, limit), nil
}

// Update edits a tweet's text. Only the author may edit.
func (s *TweetService) Update(tweetID, ownerID int64, req *dto.TweetUpdateRequest) (*dto.TweetInfo, error) {
	if _, err := s.mustOwn(tweetID, ownerID); err != nil {
		return nil, err
	}

	tweet, err := s.tweetRepo.Update(tweetID, map[string]interface{}{"content": req.Content})
	if err != nil {
		return nil, err
	}

	likeCount, err := s.likeRepo.CountForTweet(tweetID)
	if err != nil {
		return nil, err
	}
	info := toTweetInfo(tweet, likeCount)
	return &info, nil
}

// Delete removes a tweet, its likes and its stored image. Every step
// runs; errors are aggregated.
func (s *TweetService) Delete(ctx context.Context, tweetID, ownerID int64) error {
	tweet, err := s.mustOwn(tweetID, ownerID)
	if err != nil {
		return err
	}

	var errs error
	if err := s.likeRepo.DeleteByTweet(tweetID); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("delete tweet likes: %w", err))
	}
	if err := s.tweetRepo.Delete(tweetID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		errs = multierr.Append(errs, fmt.Errorf("delete tweet row: %w", err))
	}
	if tweet.ImageObjectKey != nil {
		if err := s.store.Delete(ctx, minio.ImageBucket, *tweet.ImageObjectKey); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete image object: %w", err))
		}
	}
	return cascadeError(errs)
}

func (s *TweetService) mustOwn(tweetID, ownerID int64) (*model.Tweet, error) {
	tweet, err := s.tweetRepo.GetByID(tweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	if tweet.OwnerID != ownerID {
		return nil, ErrNotTweetOwner
	}
	return tweet, nil
}
