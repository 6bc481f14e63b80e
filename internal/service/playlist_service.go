package service

import (
	"errors"

	"viewtube/internal/api/dto"
	"viewtube/internal/model"
	"viewtube/internal/query"

	"gorm.io/gorm"
)

var (
	ErrPlaylistNotFound       = errors.New("playlist not found")
	ErrNotPlaylistOwner       = errors.New("not the owner of this playlist")
	ErrVideoAlreadyInPlaylist = errors.New("video already in playlist")
	ErrVideoNotInPlaylist     = errors.New("video not in playlist")
)

type PlaylistService struct {
	playlistRepo PlaylistRepo
	videoRepo    VideoRepo
}

func NewPlaylistService(playlistRepo PlaylistRepo, videoRepo VideoRepo) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo}
}

// Create makes an empty playlist.
func (s *PlaylistService) Create(ownerID int64, req *dto.PlaylistCreateRequest) (*dto.PlaylistInfo, error) {
	playlist := &model.Playlist{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
	}
	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, err
	}
	info := toPlaylistInfo(playlist)
	return &info, nil
}

// Get returns a playlist with its videos in position order.
func (s *PlaylistService) Get(playlistID int64) (*dto.PlaylistDetail, error) {
	playlist, err := s.playlistRepo.GetByIDWithVideos(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}

	videos := make([]dto.VideoInfo, 0, len(playlist.Entries))
	for i := range playlist.Entries {
		videos = append(videos, toVideoInfo(&playlist.Entries[i].Video))
	}

	return &dto.PlaylistDetail{
		PlaylistInfo: toPlaylistInfo(playlist),
		Owner:        toOwnerBrief(&playlist.Owner),
		Videos:       videos,
	}, nil
}

// ListByOwner pages through a user's playlists.
func (s *PlaylistService) ListByOwner(ownerID int64, page, limit int) (*query.Page[dto.PlaylistInfo], error) {
	skip := (page - 1) * limit
	playlists, total, err := s.playlistRepo.ListByOwner(ownerID, skip, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PlaylistInfo, 0, len(playlists))
	for i := range playlists {
		items = append(items, toPlaylistInfo(&playlists[i]))
	}
	return query.NewPage(items, total, page, limit), nil
}

// Update renames or re-describes a playlist. Only the owner may update.
func (s *PlaylistService) Update(playlistID, ownerID int64, req *dto.PlaylistUpdateRequest) (*dto.PlaylistInfo, error) {
	if _, err := s.mustOwn(playlistID, ownerID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if _, err := s.playlistRepo.Update(playlistID, updates); err != nil {
			return nil, err
		}
	}

	playlist, err := s.playlistRepo.GetByID(playlistID)
	if err != nil {
		return nil, err
	}

	info := toPlaylistInfo(playlist)
	return &info, nil
}

// Delete removes a playlist and its entries. Only the owner may delete.
func (s *PlaylistService) Delete(playlistID, ownerID int64) error {
	if _, err := s.mustOwn(playlistID, ownerID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(playlistID)
}

// AddVideo appends a video to the end of a playlist. A video can appear
// at most once per playlist.
func (s *PlaylistService) AddVideo(playlistID, videoID, ownerID int64) error {
	if _, err := s.mustOwn(playlistID, ownerID); err != nil {
		return err
	}

	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	if _, err := s.playlistRepo.AddVideo(playlistID, videoID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrVideoAlreadyInPlaylist
		}
		return err
	}
	return nil
}

// RemoveVideo drops a video from a playlist.
func (s *PlaylistService) RemoveVideo(playlistID, videoID, ownerID int64) error {
	if _, err := s.mustOwn(playlistID, ownerID); err != nil {
		return err
	}

	removed, err := s.playlistRepo.RemoveVideo(playlistID, videoID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrVideoNotInPlaylist
	}
	return nil
}

func (s *PlaylistService) mustOwn(playlistID, ownerID int64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	if playlist.OwnerID != ownerID {
		return nil, ErrNotPlaylistOwner
	}
	return playlist, nil
}
