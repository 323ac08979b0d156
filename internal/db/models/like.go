package models

import (
	"time"

	"github.com/google/uuid"
)

// LikeTarget names the kind of entity a like points at.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Like records that a user liked exactly one of a video, a comment or
// a tweet. Uniqueness per (liker, target) is a storage constraint.
type Like struct {
	ID        uuid.UUID  `json:"id"`
	LikedBy   uuid.UUID  `json:"likedBy"`
	VideoID   *uuid.UUID `json:"videoId,omitempty"`
	CommentID *uuid.UUID `json:"commentId,omitempty"`
	TweetID   *uuid.UUID `json:"tweetId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// LikedVideo is a liked-videos listing entry.
type LikedVideo struct {
	LikedAt time.Time `json:"likedAt"`
	Video   VideoView `json:"video"`
}
