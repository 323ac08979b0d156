package models

import (
	"time"

	"github.com/google/uuid"
)

// Video represents an uploaded video and its metadata.
type Video struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"ownerId"`
	VideoURL     string    `json:"videoFile"`
	ThumbnailURL string    `json:"thumbnail"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewVideo creates a published Video owned by ownerID.
func NewVideo(ownerID uuid.UUID, videoURL, thumbnailURL, title, description string, duration float64) *Video {
	now := time.Now()
	return &Video{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Title:        title,
		Description:  description,
		Duration:     duration,
		IsPublished:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// VideoView is a video annotated with its owner's reduced projection.
type VideoView struct {
	Video
	Owner OwnerRef `json:"owner"`
}

// VideoDetail is the single-video response shape: the owner appears as
// a nested channel projection.
type VideoDetail struct {
	Video
	Channel OwnerRef `json:"channel"`
}

// VideoPage is one page of a video listing with pagination totals.
type VideoPage struct {
	Videos      []VideoView `json:"videos"`
	TotalVideos int         `json:"totalVideos"`
	TotalPages  int         `json:"totalPages"`
	Page        int         `json:"page"`
	Limit       int         `json:"limit"`
}
