package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Bookmark struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	Url         string
	Description string
	Tags        []string
	IsFavorite  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (b *Bookmark) GetId() uuid.UUID        { return b.Id }
func (b *Bookmark) GetUserId() uuid.UUID    { return b.UserId }
func (b *Bookmark) GetTags() []string       { return b.Tags }
func (b *Bookmark) GetCreatedAt() time.Time { return b.CreatedAt }

func (b *Bookmark) SearchText() string {
	return strings.Join([]string{b.Title, b.Description, b.Url}, " ")
}

func (b *Bookmark) Stamp(id uuid.UUID, createdAt, updatedAt time.Time) {
	b.Id = id
	b.CreatedAt = createdAt
	b.UpdatedAt = updatedAt
}

func (b *Bookmark) Touch(updatedAt time.Time) { b.UpdatedAt = updatedAt }

func (b *Bookmark) Clone() *Bookmark {
	c := *b
	c.Tags = append([]string{}, b.Tags...)
	return &c
}
