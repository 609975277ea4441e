package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Note struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Title      string
	Content    string
	Tags       []string
	IsFavorite bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (n *Note) GetId() uuid.UUID        { return n.Id }
func (n *Note) GetUserId() uuid.UUID    { return n.UserId }
func (n *Note) GetTags() []string       { return n.Tags }
func (n *Note) GetCreatedAt() time.Time { return n.CreatedAt }

func (n *Note) SearchText() string {
	return strings.Join([]string{n.Title, n.Content}, " ")
}

func (n *Note) Stamp(id uuid.UUID, createdAt, updatedAt time.Time) {
	n.Id = id
	n.CreatedAt = createdAt
	n.UpdatedAt = updatedAt
}

func (n *Note) Touch(updatedAt time.Time) { n.UpdatedAt = updatedAt }

func (n *Note) Clone() *Note {
	c := *n
	c.Tags = append([]string{}, n.Tags...)
	return &c
}
