package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vidtube/vidtube-api/internal/db"
	"github.com/vidtube/vidtube-api/internal/db/models"
	"github.com/vidtube/vidtube-api/internal/db/repository"
)

// Stateful map-backed mocks for the repository interfaces.

type mockUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return db.ErrDuplicateKey
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}
	return nil, db.ErrNotFound
}

type mockVideoRepo struct {
	videos map[uuid.UUID]*models.Video
}

func newMockVideoRepo() *mockVideoRepo {
	return &mockVideoRepo{videos: make(map[uuid.UUID]*models.Video)}
}

func (m *mockVideoRepo) Create(ctx context.Context, video *models.Video) error {
	m.videos[video.ID] = video
	return nil
}

func (m *mockVideoRepo) GetByID(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	video, ok := m.videos[videoID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return video, nil
}

func (m *mockVideoRepo) GetDetail(ctx context.Context, videoID uuid.UUID) (*models.VideoDetail, error) {
	video, ok := m.videos[videoID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &models.VideoDetail{Video: *video}, nil
}

func (m *mockVideoRepo) List(ctx context.Context, filters repository.VideoFilters) (*models.VideoPage, error) {
	page := &models.VideoPage{
		Videos: []models.VideoView{},
		Page:   filters.Page.Number,
		Limit:  filters.Page.Size,
	}
	for _, v := range m.videos {
		if !v.IsPublished {
			continue
		}
		if filters.OwnerID != nil && v.OwnerID != *filters.OwnerID {
			continue
		}
		page.Videos = append(page.Videos, models.VideoView{Video: *v})
	}
	page.TotalVideos = len(page.Videos)
	page.TotalPages = filters.Page.TotalPages(page.TotalVideos)
	return page, nil
}

func (m *mockVideoRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Video, error) {
	videos := []models.Video{}
	for _, v := range m.videos {
		if v.OwnerID == ownerID {
			videos = append(videos, *v)
		}
	}
	return videos, nil
}

func (m *mockVideoRepo) UpdateMetadata(ctx context.Context, videoID uuid.UUID, title, description, thumbnailURL string) (*models.Video, error) {
	video, ok := m.videos[videoID]
	if !ok {
		return nil, db.ErrNotFound
	}
	video.Title = title
	video.Description = description
	if thumbnailURL != "" {
		video.ThumbnailURL = thumbnailURL
	}
	video.UpdatedAt = time.Now()
	return video, nil
}

func (m *mockVideoRepo) Delete(ctx context.Context, videoID uuid.UUID) error {
	if _, ok := m.videos[videoID]; !ok {
		return db.ErrNotFound
	}
	delete(m.videos, videoID)
	return nil
}

func (m *mockVideoRepo) TogglePublish(ctx context.Context, videoID uuid.UUID) (*models.Video, error) {
	video, ok := m.videos[videoID]
	if !ok {
		return nil, db.ErrNotFound
	}
	video.IsPublished = !video.IsPublished
	return video, nil
}

func (m *mockVideoRepo) IncrementViews(ctx context.Context, videoID uuid.UUID) error {
	video, ok := m.videos[videoID]
	if !ok {
		return db.ErrNotFound
	}
	video.Views++
	return nil
}

type likeKey struct {
	target   models.LikeTarget
	targetID uuid.UUID
	likedBy  uuid.UUID
}

type mockLikeRepo struct {
	likes map[likeKey]bool
}

func newMockLikeRepo() *mockLikeRepo {
	return &mockLikeRepo{likes: make(map[likeKey]bool)}
}

func (m *mockLikeRepo) Toggle(ctx context.Context, target models.LikeTarget, targetID, likedBy uuid.UUID) (bool, error) {
	key := likeKey{target: target, targetID: targetID, likedBy: likedBy}
	if m.likes[key] {
		delete(m.likes, key)
		return false, nil
	}
	m.likes[key] = true
	return true, nil
}

func (m *mockLikeRepo) ListLikedVideos(ctx context.Context, likedBy uuid.UUID) ([]models.LikedVideo, error) {
	return []models.LikedVideo{}, nil
}

type subscriptionKey struct {
	channelID    uuid.UUID
	subscriberID uuid.UUID
}

type mockSubscriptionRepo struct {
	subscriptions map[subscriptionKey]bool
}

func newMockSubscriptionRepo() *mockSubscriptionRepo {
	return &mockSubscriptionRepo{subscriptions: make(map[subscriptionKey]bool)}
}

func (m *mockSubscriptionRepo) Toggle(ctx context.Context, channelID, subscriberID uuid.UUID) (bool, error) {
	key := subscriptionKey{channelID: channelID, subscriberID: subscriberID}
	if m.subscriptions[key] {
		delete(m.subscriptions, key)
		return false, nil
	}
	m.subscriptions[key] = true
	return true, nil
}

func (m *mockSubscriptionRepo) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]models.Subscriber, error) {
	return []models.Subscriber{}, nil
}

func (m *mockSubscriptionRepo) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.SubscribedChannel, error) {
	return []models.SubscribedChannel{}, nil
}

func (m *mockSubscriptionRepo) CountForChannel(ctx context.Context, channelID uuid.UUID) (int64, error) {
	var n int64
	for key := range m.subscriptions {
		if key.channelID == channelID {
			n++
		}
	}
	return n, nil
}

type mockPlaylistRepo struct {
	playlists map[uuid.UUID]*models.Playlist
	videos    map[uuid.UUID][]uuid.UUID
}

func newMockPlaylistRepo() *mockPlaylistRepo {
	return &mockPlaylistRepo{
		playlists: make(map[uuid.UUID]*models.Playlist),
		videos:    make(map[uuid.UUID][]uuid.UUID),
	}
}

func (m *mockPlaylistRepo) Create(ctx context.Context, playlist *models.Playlist) error {
	m.playlists[playlist.ID] = playlist
	return nil
}

func (m *mockPlaylistRepo) GetByID(ctx context.Context, playlistID uuid.UUID) (*models.Playlist, error) {
	playlist, ok := m.playlists[playlistID]
	if !ok {
		return nil, db.ErrNotFound
	}
	return playlist, nil
}

func (m *mockPlaylistRepo) GetDetail(ctx context.Context, playlistID uuid.UUID) (*models.PlaylistDetail, error) {
	playlist, ok := m.playlists[playlistID]
	if !ok {
		return nil, db.ErrNotFound
	}
	detail := &models.PlaylistDetail{Playlist: *playlist, Videos: []models.VideoView{}}
	for _, videoID := range m.videos[playlistID] {
		detail.Videos = append(detail.Videos, models.VideoView{
			Video: models.Video{ID: videoID},
		})
	}
	return detail, nil
}

func (m *mockPlaylistRepo) GetByOwnerAndName(ctx context.Context, ownerID uuid.UUID, name string) (*models.Playlist, error) {
	for _, p := range m.playlists {
		if p.OwnerID == ownerID && p.Name == name {
			return p, nil
		}
	}
	return nil, db.ErrNotFound
}

func (m *mockPlaylistRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Playlist, error) {
	playlists := []models.Playlist{}
	for _, p := range m.playlists {
		if p.OwnerID == ownerID {
			playlists = append(playlists, *p)
		}
	}
	return playlists, nil
}

func (m *mockPlaylistRepo) Update(ctx context.Context, playlistID uuid.UUID, name, description string) (*models.Playlist, error) {
	playlist, ok := m.playlists[playlistID]
	if !ok {
		return nil, db.ErrNotFound
	}
	playlist.Name = name
	playlist.Description = description
	return playlist, nil
}

func (m *mockPlaylistRepo) Delete(ctx context.Context, playlistID uuid.UUID) error {
	if _, ok := m.playlists[playlistID]; !ok {
		return db.ErrNotFound
	}
	delete(m.playlists, playlistID)
	delete(m.videos, playlistID)
	return nil
}

func (m *mockPlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	for _, existing := range m.videos[playlistID] {
		if existing == videoID {
			return nil
		}
	}
	m.videos[playlistID] = append(m.videos[playlistID], videoID)
	return nil
}

func (m *mockPlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	kept := m.videos[playlistID][:0]
	for _, existing := range m.videos[playlistID] {
		if existing != videoID {
			kept = append(kept, existing)
		}
	}
	m.videos[playlistID] = kept
	return nil
}

type mockDashboardRepo struct {
	stats map[uuid.UUID]*models.ChannelStats
}

func newMockDashboardRepo() *mockDashboardRepo {
	return &mockDashboardRepo{stats: make(map[uuid.UUID]*models.ChannelStats)}
}

func (m *mockDashboardRepo) ChannelStats(ctx context.Context, channelID uuid.UUID) (*models.ChannelStats, error) {
	if stats, ok := m.stats[channelID]; ok {
		return stats, nil
	}
	return &models.ChannelStats{}, nil
}

type historyKey struct {
	userID  uuid.UUID
	videoID uuid.UUID
}

type mockHistoryRepo struct {
	entries map[historyKey]time.Time
}

func newMockHistoryRepo() *mockHistoryRepo {
	return &mockHistoryRepo{entries: make(map[historyKey]time.Time)}
}

func (m *mockHistoryRepo) RecordView(ctx context.Context, userID, videoID uuid.UUID, maxEntries int) error {
	m.entries[historyKey{userID: userID, videoID: videoID}] = time.Now()
	return nil
}

func (m *mockHistoryRepo) List(ctx context.Context, userID uuid.UUID) ([]models.WatchHistoryEntry, error) {
	entries := []models.WatchHistoryEntry{}
	for key, at := range m.entries {
		if key.userID == userID {
			entries = append(entries, models.WatchHistoryEntry{
				WatchedAt: at,
				Video:     models.VideoView{Video: models.Video{ID: key.videoID}},
			})
		}
	}
	return entries, nil
}
