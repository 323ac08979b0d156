package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidtube/vidtube-api/internal/db/models"
	"github.com/vidtube/vidtube-api/internal/db/repository"
	"github.com/vidtube/vidtube-api/internal/middleware"
)

// LikeHandler handles like toggles and the liked-video listing.
type LikeHandler struct {
	likes repository.LikeRepository
}

// NewLikeHandler creates a new LikeHandler instance.
func NewLikeHandler(likes repository.LikeRepository) *LikeHandler {
	return &LikeHandler{likes: likes}
}

type toggleResult struct {
	Liked bool `json:"liked"`
}

// ToggleVideo flips the caller's like on a video.
func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	h.toggle(c, models.LikeTargetVideo, "videoId", "Video not found")
}

// ToggleComment flips the caller's like on a comment.
func (h *LikeHandler) ToggleComment(c *gin.Context) {
	h.toggle(c, models.LikeTargetComment, "commentId", "Comment not found")
}

// ToggleTweet flips the caller's like on a tweet.
func (h *LikeHandler) ToggleTweet(c *gin.Context) {
	h.toggle(c, models.LikeTargetTweet, "tweetId", "Tweet not found")
}

func (h *LikeHandler) toggle(c *gin.Context, target models.LikeTarget, param, notFoundMsg string) {
	targetID, ok := parseUUIDParam(c, param)
	if !ok {
		return
	}

	liked, err := h.likes.Toggle(c.Request.Context(), target, targetID, middleware.CurrentUserID(c))
	if err != nil {
		handleStorageError(c, err, notFoundMsg)
		return
	}

	message := "Unliked successfully"
	if liked {
		message = "Liked successfully"
	}

	respond(c, http.StatusOK, toggleResult{Liked: liked}, message)
}

// ListLikedVideos returns the videos the caller has liked.
func (h *LikeHandler) ListLikedVideos(c *gin.Context) {
	videos, err := h.likes.ListLikedVideos(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		handleStorageError(c, err, "Liked videos not found")
		return
	}

	respond(c, http.StatusOK, videos, "Liked videos fetched successfully")
}
