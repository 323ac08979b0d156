package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidtube/vidtube-api/internal/db/repository"
	"github.com/vidtube/vidtube-api/internal/middleware"
)

// DashboardHandler serves the channel owner's dashboard views.
type DashboardHandler struct {
	dashboard repository.DashboardRepository
	videos    repository.VideoRepository
	history   repository.WatchHistoryRepository
}

// NewDashboardHandler creates a new DashboardHandler instance.
func NewDashboardHandler(
	dashboard repository.DashboardRepository,
	videos repository.VideoRepository,
	history repository.WatchHistoryRepository,
) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, videos: videos, history: history}
}

// Stats returns the caller's channel aggregates, computed fresh.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.ChannelStats(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		handleStorageError(c, err, "Channel not found")
		return
	}

	respond(c, http.StatusOK, stats, "Channel stats fetched successfully")
}

// Videos returns all of the caller's videos, published or not.
func (h *DashboardHandler) Videos(c *gin.Context) {
	videos, err := h.videos.ListByOwner(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		handleStorageError(c, err, "Videos not found")
		return
	}

	respond(c, http.StatusOK, videos, "Channel videos fetched successfully")
}

// WatchHistory returns the caller's watch history, most recent first.
func (h *DashboardHandler) WatchHistory(c *gin.Context) {
	entries, err := h.history.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		handleStorageError(c, err, "Watch history not found")
		return
	}

	respond(c, http.StatusOK, entries, "Watch history fetched successfully")
}
