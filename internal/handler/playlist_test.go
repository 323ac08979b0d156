package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidtube/vidtube-api/internal/db/models"
)

func TestPlaylistHandler_Create_RequiresName(t *testing.T) {
	handler := NewPlaylistHandler(newMockPlaylistRepo(), newMockVideoRepo())

	c, w := newTestContext(t, "POST", "/api/v1/playlists", map[string]string{"description": "no name"})
	asUser(c, uuid.New())
	handler.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaylistHandler_Get_EmptyPlaylist(t *testing.T) {
	playlists := newMockPlaylistRepo()
	handler := NewPlaylistHandler(playlists, newMockVideoRepo())

	playlist := models.NewPlaylist(uuid.New(), "watch later", "")
	playlists.playlists[playlist.ID] = playlist

	c, w := newTestContext(t, "GET", "/api/v1/playlists/"+playlist.ID.String(), nil)
	setParam(c, "playlistId", playlist.ID.String())
	handler.Get(c)

	// An empty playlist is still a playlist, not a 404.
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)

	var detail models.PlaylistDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, playlist.Name, detail.Name)
	assert.NotNil(t, detail.Videos)
	assert.Empty(t, detail.Videos)
}

func TestPlaylistHandler_WatchLater_CreatesOnce(t *testing.T) {
	playlists := newMockPlaylistRepo()
	handler := NewPlaylistHandler(playlists, newMockVideoRepo())

	userID := uuid.New()
	fetch := func() models.Playlist {
		c, w := newTestContext(t, "GET", "/api/v1/playlists/watch-later", nil)
		asUser(c, userID)
		handler.WatchLater(c)
		require.Equal(t, http.StatusOK, w.Code)

		var playlist models.Playlist
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &playlist))
		return playlist
	}

	first := fetch()
	assert.Equal(t, "Watch Later", first.Name)
	assert.Equal(t, userID, first.OwnerID)

	// A second fetch returns the same playlist instead of a duplicate.
	second := fetch()
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, playlists.playlists, 1)
}

func TestPlaylistHandler_Get_NotFound(t *testing.T) {
	handler := NewPlaylistHandler(newMockPlaylistRepo(), newMockVideoRepo())

	missing := uuid.New()
	c, w := newTestContext(t, "GET", "/api/v1/playlists/"+missing.String(), nil)
	setParam(c, "playlistId", missing.String())
	handler.Get(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaylistHandler_Update_NotOwner(t *testing.T) {
	playlists := newMockPlaylistRepo()
	handler := NewPlaylistHandler(playlists, newMockVideoRepo())

	playlist := models.NewPlaylist(uuid.New(), "watch later", "")
	playlists.playlists[playlist.ID] = playlist

	c, w := newTestContext(t, "PATCH", "/api/v1/playlists/"+playlist.ID.String(), map[string]string{"name": "stolen"})
	asUser(c, uuid.New())
	setParam(c, "playlistId", playlist.ID.String())
	handler.Update(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "watch later", playlist.Name)
}

func TestPlaylistHandler_AddVideo_MissingVideo(t *testing.T) {
	playlists := newMockPlaylistRepo()
	handler := NewPlaylistHandler(playlists, newMockVideoRepo())

	ownerID := uuid.New()
	playlist := models.NewPlaylist(ownerID, "watch later", "")
	playlists.playlists[playlist.ID] = playlist

	missing := uuid.New()
	c, w := newTestContext(t, "PATCH", "/api/v1/playlists/add/"+playlist.ID.String()+"/videos/"+missing.String(), nil)
	asUser(c, ownerID)
	setParam(c, "playlistId", playlist.ID.String())
	setParam(c, "videoId", missing.String())
	handler.AddVideo(c)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, playlists.videos[playlist.ID])
}

func TestPlaylistHandler_AddVideo_Duplicate(t *testing.T) {
	playlists := newMockPlaylistRepo()
	videos := newMockVideoRepo()
	handler := NewPlaylistHandler(playlists, videos)

	ownerID := uuid.New()
	playlist := models.NewPlaylist(ownerID, "watch later", "")
	playlists.playlists[playlist.ID] = playlist

	video := models.NewVideo(ownerID, "v.mp4", "t.png", "a video", "", 10)
	videos.videos[video.ID] = video

	add := func() int {
		c, w := newTestContext(t, "PATCH", "/api/v1/playlists/add/"+playlist.ID.String()+"/videos/"+video.ID.String(), nil)
		asUser(c, ownerID)
		setParam(c, "playlistId", playlist.ID.String())
		setParam(c, "videoId", video.ID.String())
		handler.AddVideo(c)
		return w.Code
	}

	require.Equal(t, http.StatusOK, add())
	require.Equal(t, http.StatusOK, add())
	assert.Len(t, playlists.videos[playlist.ID], 1)
}
