package models

import (
	"time"

	"github.com/google/uuid"
)

// Playlist is a named, ordered collection of video references.
type Playlist struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewPlaylist creates a Playlist owned by ownerID.
func NewPlaylist(ownerID uuid.UUID, name, description string) *Playlist {
	now := time.Now()
	return &Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// PlaylistDetail is the fetch-by-id shape: the playlist's own fields
// plus its videos flattened to annotated objects. Videos is always
// non-nil; an empty playlist serializes as an empty array.
type PlaylistDetail struct {
	Playlist
	Videos []VideoView `json:"videos"`
}
