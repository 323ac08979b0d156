package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription records that subscriber follows channel. At most one
// row per pair; a user never subscribes to themself.
type Subscription struct {
	ID           uuid.UUID `json:"id"`
	ChannelID    uuid.UUID `json:"channel"`
	SubscriberID uuid.UUID `json:"subscriber"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Subscriber is one entry in a channel's subscriber listing.
type Subscriber struct {
	User         OwnerRef  `json:"subscriber"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// SubscribedChannel is one entry in a user's subscribed-channels listing.
type SubscribedChannel struct {
	Channel      OwnerRef  `json:"channel"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
