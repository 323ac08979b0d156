package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/vidtube/vidtube-api/internal/db/models"
)

func TestDashboardHandler_Stats_ZeroDefaults(t *testing.T) {
	handler := NewDashboardHandler(newMockDashboardRepo(), newMockVideoRepo(), newMockHistoryRepo())

	c, w := newTestContext(t, "GET", "/api/v1/dashboard/stats", nil)
	asUser(c, uuid.New())
	handler.Stats(c)

	if w.Code != http.StatusOK {
		t.Fatalf("Stats() status = %d, want %d", w.Code, http.StatusOK)
	}

	env := decodeEnvelope(t, w)
	var stats models.ChannelStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}

	if stats.TotalSubscribers != 0 || stats.TotalVideos != 0 || stats.TotalViews != 0 || stats.TotalLikes != 0 {
		t.Errorf("fresh channel stats = %+v, want all zeros", stats)
	}
}

func TestDashboardHandler_Videos_IncludesUnpublished(t *testing.T) {
	videos := newMockVideoRepo()
	handler := NewDashboardHandler(newMockDashboardRepo(), videos, newMockHistoryRepo())

	ownerID := uuid.New()
	published := models.NewVideo(ownerID, "a.mp4", "a.png", "published", "", 10)
	hidden := models.NewVideo(ownerID, "b.mp4", "b.png", "hidden", "", 10)
	hidden.IsPublished = false
	videos.videos[published.ID] = published
	videos.videos[hidden.ID] = hidden

	c, w := newTestContext(t, "GET", "/api/v1/dashboard/videos", nil)
	asUser(c, ownerID)
	handler.Videos(c)

	if w.Code != http.StatusOK {
		t.Fatalf("Videos() status = %d, want %d", w.Code, http.StatusOK)
	}

	env := decodeEnvelope(t, w)
	var owned []models.Video
	if err := json.Unmarshal(env.Data, &owned); err != nil {
		t.Fatalf("decode videos: %v", err)
	}

	if len(owned) != 2 {
		t.Errorf("got %d videos, want 2 (unpublished included)", len(owned))
	}
}

func TestDashboardHandler_WatchHistory_Empty(t *testing.T) {
	handler := NewDashboardHandler(newMockDashboardRepo(), newMockVideoRepo(), newMockHistoryRepo())

	c, w := newTestContext(t, "GET", "/api/v1/users/history", nil)
	asUser(c, uuid.New())
	handler.WatchHistory(c)

	if w.Code != http.StatusOK {
		t.Fatalf("WatchHistory() status = %d, want %d", w.Code, http.StatusOK)
	}

	env := decodeEnvelope(t, w)
	if string(env.Data) != "[]" {
		t.Errorf("WatchHistory() data = %s, want []", env.Data)
	}
}
