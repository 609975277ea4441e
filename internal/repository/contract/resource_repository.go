package contract

import (
	"context"

	"marknote-be/internal/entity"
	"marknote-be/internal/repository/specification"

	"github.com/google/uuid"
)

// Patch is a partial update. Only supplied fields are present in Columns and
// touched by Apply.
type Patch[E entity.Resource] interface {
	Columns() map[string]any
	Apply(e E)
	Empty() bool
}

// ResourceRepository is the storage contract shared by every resource kind.
// FindOne reports an empty match as a not-found error. Update and Delete are
// scoped to the owner and report a missing row the same way.
type ResourceRepository[E entity.Resource] interface {
	Create(ctx context.Context, e E) (E, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (E, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]E, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch Patch[E]) (E, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	DistinctTags(ctx context.Context, ownerID uuid.UUID) ([]string, error)
}

type NoteRepository = ResourceRepository[*entity.Note]

type BookmarkRepository = ResourceRepository[*entity.Bookmark]
