package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	ResourceCreated = "RESOURCE_CREATED"
	ResourceUpdated = "RESOURCE_UPDATED"
	ResourceDeleted = "RESOURCE_DELETED"
)

// NewResourceEvent describes a mutation of one note or bookmark.
func NewResourceEvent(eventType, kind string, id, ownerID uuid.UUID) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"kind":    kind,
			"id":      id.String(),
			"user_id": ownerID.String(),
		},
		OccurredAt: time.Now().UTC(),
	}
}
