package models

import "time"

// ChannelStats are per-channel read-only aggregates, computed fresh on
// every call. Missing aggregates default to zero, never null.
type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
}

// WatchHistoryEntry is one entry of a user's watch history, most
// recent first.
type WatchHistoryEntry struct {
	WatchedAt time.Time `json:"watchedAt"`
	Video     VideoView `json:"video"`
}
