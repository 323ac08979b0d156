package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a comment on a video.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	VideoID   uuid.UUID `json:"videoId"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewComment creates a Comment on the given video.
func NewComment(videoID, ownerID uuid.UUID, content string) *Comment {
	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CommentView is a comment annotated with its owner's reduced projection.
type CommentView struct {
	Comment
	Owner OwnerRef `json:"owner"`
}
