package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vidtube/vidtube-api/internal/db/models"
	"github.com/vidtube/vidtube-api/internal/db/repository"
	"github.com/vidtube/vidtube-api/internal/events"
	"github.com/vidtube/vidtube-api/internal/media"
	"github.com/vidtube/vidtube-api/internal/middleware"
	"github.com/vidtube/vidtube-api/pkg/logger"
)

// VideoHandler handles video upload, lifecycle and listing requests.
type VideoHandler struct {
	videos     repository.VideoRepository
	history    repository.WatchHistoryRepository
	store      media.Store
	publisher  events.Publisher
	historyCap int
}

// NewVideoHandler creates a new VideoHandler instance.
func NewVideoHandler(
	videos repository.VideoRepository,
	history repository.WatchHistoryRepository,
	store media.Store,
	publisher events.Publisher,
	historyCap int,
) *VideoHandler {
	return &VideoHandler{
		videos:     videos,
		history:    history,
		store:      store,
		publisher:  publisher,
		historyCap: historyCap,
	}
}

// List returns one page of published videos. Query parameters: query,
// userId, sortBy, sortType, page, limit.
func (h *VideoHandler) List(c *gin.Context) {
	filters := repository.VideoFilters{
		Query:   c.Query("query"),
		SortBy:  c.Query("sortBy"),
		SortDir: c.Query("sortType"),
		Page:    pageFromQuery(c),
	}

	if ownerParam := c.Query("userId"); ownerParam != "" {
		ownerID, err := uuid.Parse(ownerParam)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid userId")
			return
		}
		filters.OwnerID = &ownerID
	}

	page, err := h.videos.List(c.Request.Context(), filters)
	if err != nil {
		handleStorageError(c, err, "Videos not found")
		return
	}

	respond(c, http.StatusOK, page, "Videos fetched successfully")
}

// Publish uploads the video file and thumbnail and creates the video
// record.
func (h *VideoHandler) Publish(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	if title == "" {
		respondError(c, http.StatusBadRequest, "Title is required")
		return
	}

	duration, err := strconv.ParseFloat(c.PostForm("duration"), 64)
	if err != nil || duration < 0 {
		duration = 0
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Video file is required")
		return
	}
	thumbnail, err := c.FormFile("thumbnail")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Thumbnail is required")
		return
	}

	videoURL, err := uploadFile(c, h.store, videoFile)
	if err != nil {
		logger.Log.Error("Failed to upload video file", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to upload video file")
		return
	}
	thumbnailURL, err := uploadFile(c, h.store, thumbnail)
	if err != nil {
		logger.Log.Error("Failed to upload thumbnail", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to upload thumbnail")
		return
	}

	ownerID := middleware.CurrentUserID(c)
	video := models.NewVideo(ownerID, videoURL, thumbnailURL, title, description, duration)

	if err := h.videos.Create(c.Request.Context(), video); err != nil {
		handleStorageError(c, err, "Video not found")
		return
	}

	h.publisher.Publish(c.Request.Context(), events.VideoPublished, video.ID, ownerID)

	logger.Log.Info("Published video",
		zap.String("videoId", video.ID.String()),
		zap.String("ownerId", ownerID.String()),
	)

	respond(c, http.StatusCreated, video, "Video published successfully")
}

// Get fetches one video with its channel projection. Every fetch bumps
// the view counter; the watch-history update and the viewed event are
// best effort.
func (h *VideoHandler) Get(c *gin.Context) {
	videoID, ok := parseUUIDParam(c, "videoId")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	detail, err := h.videos.GetDetail(ctx, videoID)
	if err != nil {
		handleStorageError(c, err, "Video not found")
		return
	}

	if err := h.videos.IncrementViews(ctx, videoID); err != nil {
		logger.Log.Warn("Failed to increment views",
			zap.String("videoId", videoID.String()),
			zap.Error(err),
		)
	} else {
		detail.Views++
	}

	userID := middleware.CurrentUserID(c)
	if err := h.history.RecordView(ctx, userID, videoID, h.historyCap); err != nil {
		logger.Log.Warn("Failed to record watch history",
			zap.String("userId", userID.String()),
			zap.String("videoId", videoID.String()),
			zap.Error(err),
		)
	}

	h.publisher.Publish(ctx, events.VideoViewed, videoID, detail.OwnerID)

	respond(c, http.StatusOK, detail, "Video fetched successfully")
}

// Update modifies title, description and optionally the thumbnail of an
// owned video.
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, ok := parseUUIDParam(c, "videoId")
	if !ok {
		return
	}

	video, ok := h.requireOwnedVideo(c, videoID)
	if !ok {
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	if title == "" && description == "" {
		respondError(c, http.StatusBadRequest, "Nothing to update")
		return
	}
	if title == "" {
		title = video.Title
	}
	if description == "" {
		description = video.Description
	}

	thumbnailURL := ""
	if thumbnail, err := c.FormFile("thumbnail"); err == nil {
		thumbnailURL, err = uploadFile(c, h.store, thumbnail)
		if err != nil {
			logger.Log.Error("Failed to upload thumbnail", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Failed to upload thumbnail")
			return
		}
	}

	updated, err := h.videos.UpdateMetadata(c.Request.Context(), videoID, title, description, thumbnailURL)
	if err != nil {
		handleStorageError(c, err, "Video not found")
		return
	}

	respond(c, http.StatusOK, updated, "Video updated successfully")
}

// Delete removes an owned video, its stored media and dependent rows.
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, ok := parseUUIDParam(c, "videoId")
	if !ok {
		return
	}

	video, ok := h.requireOwnedVideo(c, videoID)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if err := h.videos.Delete(ctx, videoID); err != nil {
		handleStorageError(c, err, "Video not found")
		return
	}

	// Object removal is best effort; the record is already gone.
	if err := h.store.Remove(ctx, video.VideoURL); err != nil {
		logger.Log.Warn("Failed to remove video object", zap.Error(err))
	}
	if err := h.store.Remove(ctx, video.ThumbnailURL); err != nil {
		logger.Log.Warn("Failed to remove thumbnail object", zap.Error(err))
	}

	h.publisher.Publish(ctx, events.VideoDeleted, videoID, video.OwnerID)

	logger.Log.Info("Deleted video",
		zap.String("videoId", videoID.String()),
	)

	respond(c, http.StatusOK, nil, "Video deleted successfully")
}

// TogglePublish flips an owned video's publish flag.
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, ok := parseUUIDParam(c, "videoId")
	if !ok {
		return
	}

	if _, ok := h.requireOwnedVideo(c, videoID); !ok {
		return
	}

	video, err := h.videos.TogglePublish(c.Request.Context(), videoID)
	if err != nil {
		handleStorageError(c, err, "Video not found")
		return
	}

	message := "Video unpublished successfully"
	if video.IsPublished {
		message = "Video published successfully"
	}

	respond(c, http.StatusOK, video, message)
}

// requireOwnedVideo loads the video and checks the caller owns it. On
// failure the response is already written.
func (h *VideoHandler) requireOwnedVideo(c *gin.Context, videoID uuid.UUID) (*models.Video, bool) {
	video, err := h.videos.GetByID(c.Request.Context(), videoID)
	if err != nil {
		handleStorageError(c, err, "Video not found")
		return nil, false
	}

	if video.OwnerID != middleware.CurrentUserID(c) {
		respondError(c, http.StatusForbidden, "You do not own this video")
		return nil, false
	}

	return video, true
}

// pageFromQuery reads page and limit query parameters, clamping them to
// valid bounds.
func pageFromQuery(c *gin.Context) repository.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return repository.NewPage(page, limit)
}
