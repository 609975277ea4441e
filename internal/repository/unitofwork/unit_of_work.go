package unitofwork

import (
	"context"

	"marknote-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NoteRepository() contract.NoteRepository
	BookmarkRepository() contract.BookmarkRepository
}
