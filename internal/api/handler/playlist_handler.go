package handler

import (
	"errors"

	"viewtube/internal/api/dto"
	"viewtube/internal/api/middleware"
	"viewtube/internal/api/response"
	"viewtube/internal/service"
	"viewtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PlaylistHandler struct {
	playlistService *service.PlaylistService
}

func NewPlaylistHandler(playlistService *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// Create POST /api/v1/playlists
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req dto.PlaylistCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.playlistService.Create(currentUserID, &req)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.Created(c, "playlist created", info)
}

// Get GET /api/v1/playlists/:id
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid playlist id")
		return
	}

	detail, err := h.playlistService.Get(playlistID)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "playlist", detail)
}

// ListByUser GET /api/v1/playlists/user/:id
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}

	page, limit := parsePagination(c)

	data, err := h.playlistService.ListByOwner(userID, page, limit)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "playlists", data)
}

// Update PATCH /api/v1/playlists/:id
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid playlist id")
		return
	}

	var req dto.PlaylistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.playlistService.Update(playlistID, currentUserID, &req)
	if err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "playlist updated", info)
}

// Delete DELETE /api/v1/playlists/:id
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid playlist id")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.playlistService.Delete(playlistID, currentUserID); err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "playlist deleted", nil)
}

// AddVideo POST /api/v1/playlists/:id/videos/:videoId
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid playlist id")
		return
	}
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.playlistService.AddVideo(playlistID, videoID, currentUserID); err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "video added to playlist", nil)
}

// RemoveVideo DELETE /api/v1/playlists/:id/videos/:videoId
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "invalid playlist id")
		return
	}
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		response.BadRequest(c, "invalid video id")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.playlistService.RemoveVideo(playlistID, videoID, currentUserID); err != nil {
		handlePlaylistError(c, err)
		return
	}

	response.OK(c, "video removed from playlist", nil)
}

func handlePlaylistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlaylistNotFound),
		errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrVideoNotInPlaylist):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotPlaylistOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrVideoAlreadyInPlaylist):
		response.Conflict(c, err.Error())
	default:
		logger.Error("Playlist operation failed", zap.Error(err))
		response.InternalError(c, "internal error")
	}
}
