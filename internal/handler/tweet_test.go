package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidtube/vidtube-api/internal/db"
	"github.com/vidtube/vidtube-api/internal/db/models"
)

type mockTweetRepo struct {
	tweets map[uuid.UUID]*models.Tweet
}

func newMockTweetRepo() *mockTweetRepo {
	return &mockTweetRepo{tweets: make(map[uuid.UUID]*models.Tweet)}
}

func (m *mockTweetRepo) Create(ctx context.Context, tweet *models.Tweet) error {
	m.tweets[tweet.ID] = tweet
	return nil
}

func (m *mockTweetRepo) GetByID(ctx context.Context, tweetID uuid.UUID) (*models.Tweet, error) {
	tweet, ok := m.tweets[tweetID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return tweet, nil
}

func (m *mockTweetRepo) Feed(ctx context.Context, ownerID *uuid.UUID) ([]models.TweetView, error) {
	views := []models.TweetView{}
	for _, tweet := range m.tweets {
		if ownerID != nil && tweet.OwnerID != *ownerID {
			continue
		}
		views = append(views, models.TweetView{Tweet: *tweet, LikerIDs: []uuid.UUID{}})
	}
	return views, nil
}

func (m *mockTweetRepo) UpdateContent(ctx context.Context, tweetID uuid.UUID, content string) (*models.Tweet, error) {
	tweet, ok := m.tweets[tweetID]
	if !ok {
		return nil, db.ErrNotFound
	}
	tweet.Content = content
	tweet.UpdatedAt = time.Now()
	return tweet, nil
}

func (m *mockTweetRepo) Delete(ctx context.Context, tweetID uuid.UUID) error {
	if _, ok := m.tweets[tweetID]; !ok {
		return db.ErrNotFound
	}
	delete(m.tweets, tweetID)
	return nil
}

func TestTweetHandler_Create(t *testing.T) {
	tweets := newMockTweetRepo()
	handler := NewTweetHandler(tweets)

	c, w := newTestContext(t, "POST", "/api/v1/tweets", map[string]string{"content": "hello"})
	asUser(c, uuid.New())
	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, tweets.tweets, 1)
}

func TestTweetHandler_Create_EmptyContent(t *testing.T) {
	handler := NewTweetHandler(newMockTweetRepo())

	c, w := newTestContext(t, "POST", "/api/v1/tweets", map[string]string{"content": ""})
	asUser(c, uuid.New())
	handler.Create(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTweetHandler_UserFeed(t *testing.T) {
	tweets := newMockTweetRepo()
	handler := NewTweetHandler(tweets)

	ownerID := uuid.New()
	mine := models.NewTweet(ownerID, "mine")
	other := models.NewTweet(uuid.New(), "other")
	tweets.tweets[mine.ID] = mine
	tweets.tweets[other.ID] = other

	c, w := newTestContext(t, "GET", "/api/v1/tweets/user/"+ownerID.String(), nil)
	asUser(c, ownerID)
	setParam(c, "userId", ownerID.String())
	handler.UserFeed(c)

	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var feed []models.TweetView
	require.NoError(t, json.Unmarshal(env.Data, &feed))
	require.Len(t, feed, 1)
	assert.Equal(t, "mine", feed[0].Content)
	// Liker IDs serialize as an array even when no one liked the tweet.
	assert.NotNil(t, feed[0].LikerIDs)
}

func TestTweetHandler_Delete_NotOwner(t *testing.T) {
	tweets := newMockTweetRepo()
	handler := NewTweetHandler(tweets)

	tweet := models.NewTweet(uuid.New(), "keep me")
	tweets.tweets[tweet.ID] = tweet

	c, w := newTestContext(t, "DELETE", "/api/v1/tweets/"+tweet.ID.String(), nil)
	asUser(c, uuid.New())
	setParam(c, "tweetId", tweet.ID.String())
	handler.Delete(c)

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Len(t, tweets.tweets, 1)
}
