package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vidtube/vidtube-api/internal/db"
	"github.com/vidtube/vidtube-api/internal/db/models"
	"github.com/vidtube/vidtube-api/internal/db/repository"
	"github.com/vidtube/vidtube-api/internal/middleware"
)

// PlaylistHandler handles playlist requests.
type PlaylistHandler struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
}

// NewPlaylistHandler creates a new PlaylistHandler instance.
func NewPlaylistHandler(playlists repository.PlaylistRepository, videos repository.VideoRepository) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists, videos: videos}
}

type playlistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create makes a new empty playlist.
func (h *PlaylistHandler) Create(c *gin.Context) {
	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		respondError(c, http.StatusBadRequest, "Name is required")
		return
	}

	playlist := models.NewPlaylist(middleware.CurrentUserID(c), req.Name, req.Description)

	if err := h.playlists.Create(c.Request.Context(), playlist); err != nil {
		handleStorageError(c, err, "Playlist not found")
		return
	}

	respond(c, http.StatusCreated, playlist, "Playlist created successfully")
}

// Get fetches a playlist with its videos resolved. An empty playlist is
// returned with an empty video list, not a 404.
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, ok := parseUUIDParam(c, "playlistId")
	if !ok {
		return
	}

	detail, err := h.playlists.GetDetail(c.Request.Context(), playlistID)
	if err != nil {
		handleStorageError(c, err, "Playlist not found")
		return
	}

	respond(c, http.StatusOK, detail, "Playlist fetched successfully")
}

// watchLaterName is the reserved name of the per-user Watch Later
// playlist.
const watchLaterName = "Watch Later"

// WatchLater fetches the caller's Watch Later playlist, creating it on
// first use.
func (h *PlaylistHandler) WatchLater(c *gin.Context) {
	ctx := c.Request.Context()
	ownerID := middleware.CurrentUserID(c)

	playlist, err := h.playlists.GetByOwnerAndName(ctx, ownerID, watchLaterName)
	if err == nil {
		respond(c, http.StatusOK, playlist, "Watch Later playlist fetched successfully")
		return
	}
	if !db.IsNotFound(err) {
		handleStorageError(c, err, "Playlist not found")
		return
	}

	playlist = models.NewPlaylist(ownerID, watchLaterName, "Videos saved for later")
	if err := h.playlists.Create(ctx, playlist); err != nil {
		handleStorageError(c, err, "Playlist not found")
		return
	}

	respond(c, http.StatusOK, playlist, "Watch Later playlist fetched successfully")
}

// ListByUser returns a user's playlists.
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}

	playlists, err := h.playlists.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		handleStorageError(c, err, "Playlists not found")
		return
	}

	respond(c, http.StatusOK, playlists, "Playlists fetched successfully")
}

// Update renames an owned playlist.
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, ok := parseUUIDParam(c, "playlistId")
	if !ok {
		return
	}

	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		respondError(c, http.StatusBadRequest, "Name is required")
		return
	}

	if !h.requireOwnedPlaylist(c, playlistID) {
		return
	}

	playlist, err := h.playlists.Update(c.Request.Context(), playlistID, req.Name, req.Description)
	if err != nil {
		handleStorageError(c, err, "Playlist not found")
		return
	}

	respond(c, http.StatusOK, playlist, "Playlist updated successfully")
}

// Delete removes an owned playlist.
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, ok := parseUUIDParam(c, "playlistId")
	if !ok {
		return
	}

	if !h.requireOwnedPlaylist(c, playlistID) {
		return
	}

	if err := h.playlists.Delete(c.Request.Context(), playlistID); err != nil {
		handleStorageError(c, err, "Playlist not found")
		return
	}

	respond(c, http.StatusOK, nil, "Playlist deleted successfully")
}

// AddVideo appends a video to an owned playlist. Re-adding a video the
// playlist already holds is a no-op success.
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	playlistID, videoID, ok := h.playlistVideoParams(c)
	if !ok {
		return
	}

	if !h.requireOwnedPlaylist(c, playlistID) {
		return
	}

	if _, err := h.videos.GetByID(c.Request.Context(), videoID); err != nil {
		handleStorageError(c, err, "Video not found")
		return
	}

	if err := h.playlists.AddVideo(c.Request.Context(), playlistID, videoID); err != nil {
		handleStorageError(c, err, "Video not found")
		return
	}

	respond(c, http.StatusOK, nil, "Video added to playlist successfully")
}

// RemoveVideo drops a video from an owned playlist.
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	playlistID, videoID, ok := h.playlistVideoParams(c)
	if !ok {
		return
	}

	if !h.requireOwnedPlaylist(c, playlistID) {
		return
	}

	if err := h.playlists.RemoveVideo(c.Request.Context(), playlistID, videoID); err != nil {
		handleStorageError(c, err, "Playlist not found")
		return
	}

	respond(c, http.StatusOK, nil, "Video removed from playlist successfully")
}

func (h *PlaylistHandler) playlistVideoParams(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	playlistID, ok := parseUUIDParam(c, "playlistId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	videoID, ok := parseUUIDParam(c, "videoId")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return playlistID, videoID, true
}

func (h *PlaylistHandler) requireOwnedPlaylist(c *gin.Context, playlistID uuid.UUID) bool {
	playlist, err := h.playlists.GetByID(c.Request.Context(), playlistID)
	if err != nil {
		handleStorageError(c, err, "Playlist not found")
		return false
	}

	if playlist.OwnerID != middleware.CurrentUserID(c) {
		respondError(c, http.StatusForbidden, "You do not own this playlist")
		return false
	}

	return true
}
