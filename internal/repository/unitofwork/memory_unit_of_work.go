package unitofwork

import (
	"context"

	"marknote-be/internal/entity"
	"marknote-be/internal/repository/contract"
	"marknote-be/internal/repository/memory"
)

// MemoryRepositoryFactory serves every unit of work from the same in-process
// repositories. Transactions are no-ops; each repository call is atomic.
type MemoryRepositoryFactory struct {
	Notes     *memory.ResourceRepository[*entity.Note]
	Bookmarks *memory.ResourceRepository[*entity.Bookmark]
}

func NewMemoryRepositoryFactory() *MemoryRepositoryFactory {
	return &MemoryRepositoryFactory{
		Notes:     memory.NewNoteRepository(),
		Bookmarks: memory.NewBookmarkRepository(),
	}
}

func (f *MemoryRepositoryFactory) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return &memoryUnitOfWork{factory: f}
}

type memoryUnitOfWork struct {
	factory *MemoryRepositoryFactory
}

func (u *memoryUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *memoryUnitOfWork) Commit() error                   { return nil }
func (u *memoryUnitOfWork) Rollback() error                 { return nil }

func (u *memoryUnitOfWork) NoteRepository() contract.NoteRepository {
	return u.factory.Notes
}

func (u *memoryUnitOfWork) BookmarkRepository() contract.BookmarkRepository {
	return u.factory.Bookmarks
}
