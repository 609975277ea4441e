package implementation

import (
	"marknote-be/internal/entity"
	"marknote-be/internal/mapper"
	"marknote-be/internal/model"
	"marknote-be/internal/repository/contract"

	"gorm.io/gorm"
)

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return NewResourceRepository[*entity.Note, model.Note](db, mapper.NewNoteMapper(), "Note")
}
