package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeHandler_ToggleVideo_RoundTrip(t *testing.T) {
	handler := NewLikeHandler(newMockLikeRepo())

	userID := uuid.New()
	videoID := uuid.New()

	toggle := func() (int, envelope) {
		c, w := newTestContext(t, "POST", "/api/v1/likes/toggle/video/"+videoID.String(), nil)
		asUser(c, userID)
		setParam(c, "videoId", videoID.String())
		handler.ToggleVideo(c)
		return w.Code, decodeEnvelope(t, w)
	}

	code, env := toggle()
	require.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
	assert.Equal(t, "Liked successfully", env.Message)

	code, env = toggle()
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Unliked successfully", env.Message)

	// Third toggle recreates the like.
	code, env = toggle()
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Liked successfully", env.Message)
}

func TestLikeHandler_ToggleVideo_IndependentPerUser(t *testing.T) {
	handler := NewLikeHandler(newMockLikeRepo())

	videoID := uuid.New()

	toggle := func(userID uuid.UUID) envelope {
		c, w := newTestContext(t, "POST", "/api/v1/likes/toggle/video/"+videoID.String(), nil)
		asUser(c, userID)
		setParam(c, "videoId", videoID.String())
		handler.ToggleVideo(c)
		return decodeEnvelope(t, w)
	}

	first := toggle(uuid.New())
	second := toggle(uuid.New())

	assert.Equal(t, "Liked successfully", first.Message)
	assert.Equal(t, "Liked successfully", second.Message)
}

func TestLikeHandler_ToggleVideo_InvalidID(t *testing.T) {
	handler := NewLikeHandler(newMockLikeRepo())

	c, w := newTestContext(t, "POST", "/api/v1/likes/toggle/video/not-a-uuid", nil)
	asUser(c, uuid.New())
	setParam(c, "videoId", "not-a-uuid")
	handler.ToggleVideo(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
}

func TestLikeHandler_ListLikedVideos_Empty(t *testing.T) {
	handler := NewLikeHandler(newMockLikeRepo())

	c, w := newTestContext(t, "GET", "/api/v1/likes/videos", nil)
	asUser(c, uuid.New())
	handler.ListLikedVideos(c)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "[]", string(env.Data))
}
