package contract

import (
	"marknote-be/internal/entity"

	"github.com/lib/pq"
)

type NotePatch struct {
	Title      *string
	Content    *string
	Tags       []string
	TagsSet    bool
	IsFavorite *bool
}

func (p NotePatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.TagsSet {
		cols["tags"] = pq.StringArray(p.Tags)
	}
	if p.IsFavorite != nil {
		cols["is_favorite"] = *p.IsFavorite
	}
	return cols
}

func (p NotePatch) Apply(n *entity.Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.TagsSet {
		n.Tags = append([]string{}, p.Tags...)
	}
	if p.IsFavorite != nil {
		n.IsFavorite = *p.IsFavorite
	}
}

func (p NotePatch) Empty() bool { return len(p.Columns()) == 0 }

type BookmarkPatch struct {
	Title       *string
	Url         *string
	Description *string
	Tags        []string
	TagsSet     bool
	IsFavorite  *bool
}

func (p BookmarkPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Url != nil {
		cols["url"] = *p.Url
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.TagsSet {
		cols["tags"] = pq.StringArray(p.Tags)
	}
	if p.IsFavorite != nil {
		cols["is_favorite"] = *p.IsFavorite
	}
	return cols
}

func (p BookmarkPatch) Apply(b *entity.Bookmark) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Url != nil {
		b.Url = *p.Url
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.TagsSet {
		b.Tags = append([]string{}, p.Tags...)
	}
	if p.IsFavorite != nil {
		b.IsFavorite = *p.IsFavorite
	}
}

func (p BookmarkPatch) Empty() bool { return len(p.Columns()) == 0 }
