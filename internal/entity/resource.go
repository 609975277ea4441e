package entity

import (
	"time"

	"github.com/google/uuid"
)

// Resource is the shape shared by notes and bookmarks. Repositories and the
// generic service logic only rely on this view of an entity.
type Resource interface {
	GetId() uuid.UUID
	GetUserId() uuid.UUID
	GetTags() []string
	GetCreatedAt() time.Time
	// SearchText is the text the free-text clause is evaluated against.
	SearchText() string
	// Stamp records store-assigned identity and timestamps.
	Stamp(id uuid.UUID, createdAt, updatedAt time.Time)
	Touch(updatedAt time.Time)
}
