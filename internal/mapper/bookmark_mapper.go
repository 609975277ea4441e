package mapper

import (
	"marknote-be/internal/entity"
	"marknote-be/internal/model"

	"github.com/lib/pq"
)

type BookmarkMapper struct{}

func NewBookmarkMapper() *BookmarkMapper {
	return &BookmarkMapper{}
}

func (m *BookmarkMapper) ToEntity(b *model.Bookmark) *entity.Bookmark {
	if b == nil {
		return nil
	}

	return &entity.Bookmark{
		Id:          b.Id,
		UserId:      b.UserId,
		Title:       b.Title,
		Url:         b.Url,
		Description: b.Description,
		Tags:        append([]string{}, b.Tags...),
		IsFavorite:  b.IsFavorite,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (m *BookmarkMapper) ToModel(b *entity.Bookmark) *model.Bookmark {
	if b == nil {
		return nil
	}

	return &model.Bookmark{
		Id:          b.Id,
		UserId:      b.UserId,
		Title:       b.Title,
		Url:         b.Url,
		Description: b.Description,
		Tags:        pq.StringArray(append([]string{}, b.Tags...)),
		IsFavorite:  b.IsFavorite,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (m *BookmarkMapper) ToEntities(bookmarks []*model.Bookmark) []*entity.Bookmark {
	entities := make([]*entity.Bookmark, len(bookmarks))
	for i, b := range bookmarks {
		entities[i] = m.ToEntity(b)
	}
	return entities
}
