package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidtube/vidtube-api/internal/db/repository"
	"github.com/vidtube/vidtube-api/internal/middleware"
)

// SubscriptionHandler handles subscription toggles and listings.
type SubscriptionHandler struct {
	subscriptions repository.SubscriptionRepository
}

// NewSubscriptionHandler creates a new SubscriptionHandler instance.
func NewSubscriptionHandler(subscriptions repository.SubscriptionRepository) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

type subscriptionResult struct {
	Subscribed bool `json:"subscribed"`
}

// Toggle flips the caller's subscription to a channel.
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, ok := parseUUIDParam(c, "channelId")
	if !ok {
		return
	}

	subscriberID := middleware.CurrentUserID(c)
	if channelID == subscriberID {
		respondError(c, http.StatusBadRequest, "You cannot subscribe to yourself")
		return
	}

	subscribed, err := h.subscriptions.Toggle(c.Request.Context(), channelID, subscriberID)
	if err != nil {
		handleStorageError(c, err, "Channel not found")
		return
	}

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}

	respond(c, http.StatusOK, subscriptionResult{Subscribed: subscribed}, message)
}

// ListSubscribers returns a channel's subscribers.
func (h *SubscriptionHandler) ListSubscribers(c *gin.Context) {
	channelID, ok := parseUUIDParam(c, "channelId")
	if !ok {
		return
	}

	subscribers, err := h.subscriptions.ListSubscribers(c.Request.Context(), channelID)
	if err != nil {
		handleStorageError(c, err, "Channel not found")
		return
	}

	respond(c, http.StatusOK, subscribers, "Subscribers fetched successfully")
}

// ListSubscribedChannels returns the channels a user subscribes to.
func (h *SubscriptionHandler) ListSubscribedChannels(c *gin.Context) {
	subscriberID, ok := parseUUIDParam(c, "subscriberId")
	if !ok {
		return
	}

	channels, err := h.subscriptions.ListSubscribedChannels(c.Request.Context(), subscriberID)
	if err != nil {
		handleStorageError(c, err, "User not found")
		return
	}

	respond(c, http.StatusOK, channels, "Subscribed channels fetched successfully")
}
