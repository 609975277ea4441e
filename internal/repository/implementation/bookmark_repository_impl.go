package implementation

import (
	"marknote-be/internal/entity"
	"marknote-be/internal/mapper"
	"marknote-be/internal/model"
	"marknote-be/internal/repository/contract"

	"gorm.io/gorm"
)

func NewBookmarkRepository(db *gorm.DB) contract.BookmarkRepository {
	return NewResourceRepository[*entity.Bookmark, model.Bookmark](db, mapper.NewBookmarkMapper(), "Bookmark")
}
