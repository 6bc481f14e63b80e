package service

import (
	"errors"
	"fmt"

	"viewtube/internal/api/dto"
	"viewtube/internal/model"
	"viewtube/internal/query"

	"go.uber.org/multierr"

	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("not the owner of this comment")
)

type CommentService struct {
	commentRepo CommentRepo
	videoRepo   VideoRepo
	likeRepo    LikeRepo
}

func NewCommentService(commentRepo CommentRepo, videoRepo VideoRepo, likeRepo LikeRepo) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo, likeRepo: likeRepo}
}

// ListByVideo pages through a video's comments, newest first, with like
// counts attached.
func (s *CommentService) ListByVideo(videoID int64, page, limit int) (*query.Page[dto.CommentInfo], error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	skip := (page - 1) * limit
	comments, total, err := s.commentRepo.ListByVideo(videoID, skip, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		likeCount, err := s.likeRepo.CountForComment(comments[i].ID)
		if err != nil {
			return nil, err
		}
		items = append(items, toCommentInfo(&comments[i], likeCount))
	}
	return query.NewPage(items, total, page, limit), nil
}

// Create adds a comment to a video.
func (s *CommentService) Create(videoID, ownerID int64, req *dto.CommentCreateRequest) (*dto.CommentInfo, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if !video.IsPublished && video.OwnerID != ownerID {
		return nil, ErrVideoNotFound
	}

	comment := &model.Comment{
		VideoID: videoID,
		OwnerID: ownerID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	info := toCommentInfo(comment, 0)
	return &info, nil
}

// Update edits a comment's content. Only the author may edit.
func (s *CommentService) Update(commentID, ownerID int64, req *dto.CommentUpdateRequest) (*dto.CommentInfo, error) {
	if _, err := s.mustOwn(commentID, ownerID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.Update(commentID, map[string]interface{}{"content": req.Content})
	if err != nil {
		return nil, err
	}

	likeCount, err := s.likeRepo.CountForComment(commentID)
	if err != nil {
		return nil, err
	}
	info := toCommentInfo(comment, likeCount)
	return &info, nil
}

// Delete removes a comment and its likes. Both the comment's author and
// the video's owner may delete.
func (s *CommentService) Delete(commentID, userID int64) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.OwnerID != userID {
		video, err := s.videoRepo.GetByID(comment.VideoID)
		if err != nil {
			return err
		}
		if video.OwnerID != userID {
			return ErrNotCommentOwner
		}
	}

	var errs error
	if err := s.likeRepo.DeleteByComment(commentID); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("delete comment likes: %w", err))
	}
	if err := s.commentRepo.Delete(commentID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		errs = multierr.Append(errs, fmt.Errorf("delete comment row: %w", err))
	}
	return cascadeError(errs)
}

func (s *CommentService) mustOwn(commentID, ownerID int64) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.OwnerID != ownerID {
		return nil, ErrNotCommentOwner
	}
	return comment, nil
}
