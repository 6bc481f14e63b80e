package service

import (
	"viewtube/internal/api/dto"
	"viewtube/internal/model"
)

func toUserInfo(u *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        u.ID,
		Username:  u.UserName,
		Email:     u.Email,
		FullName:  u.FullName,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

func toOwnerBrief(u *model.User) *dto.OwnerBrief {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &dto.OwnerBrief{
		ID:       u.ID,
		Username: u.UserName,
		FullName: u.FullName,
		Avatar:   u.Avatar,
	}
}

func toVideoInfo(v *model.Video) dto.VideoInfo {
	return dto.VideoInfo{
		ID:           v.ID,
		OwnerID:      v.OwnerID,
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		ViewCount:    v.ViewCount,
		IsPublished:  v.IsPublished,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
		Owner:        toOwnerBrief(&v.Owner),
	}
}

func toVideoInfos(videos []model.Video) []dto.VideoInfo {
	out := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		out = append(out, toVideoInfo(&videos[i]))
	}
	return out
}

func toCommentInfo(c *model.Comment, likeCount int64) dto.CommentInfo {
	return dto.CommentInfo{
		ID:        c.ID,
		VideoID:   c.VideoID,
		Content:   c.Content,
		LikeCount: likeCount,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Owner:     toOwnerBrief(&c.Owner),
	}
}

func toTweetInfo(t *model.Tweet, likeCount int64) dto.TweetInfo {
	return dto.TweetInfo{
		ID:        t.ID,
		Content:   t.Content,
		ImageURL:  t.ImageURL,
		LikeCount: likeCount,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		Owner:     toOwnerBrief(&t.Owner),
	}
}

func toPlaylistInfo(p *model.Playlist) dto.PlaylistInfo {
	return dto.PlaylistInfo{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		VideoCount:  len(p.Entries),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
