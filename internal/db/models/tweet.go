package models

import (
	"time"

	"github.com/google/uuid"
)

// Tweet represents a short text post by a user.
type Tweet struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTweet creates a Tweet owned by ownerID.
func NewTweet(ownerID uuid.UUID, content string) *Tweet {
	now := time.Now()
	return &Tweet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TweetView is the feed shape: owner projection, like count and the
// IDs of everyone who liked the tweet.
type TweetView struct {
	Tweet
	Owner      OwnerRef    `json:"owner"`
	LikesCount int         `json:"likesCount"`
	LikerIDs   []uuid.UUID `json:"likerIds"`
}
