package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title      string   `json:"title" validate:"notblank"`
	Content    string   `json:"content" validate:"notblank"`
	Tags       []string `json:"tags"`
	IsFavorite bool     `json:"isFavorite"`
}

// UpdateNoteRequest is a partial update: nil fields are left untouched.
type UpdateNoteRequest struct {
	Title      *string   `json:"title" validate:"omitnil,notblank"`
	Content    *string   `json:"content" validate:"omitnil,notblank"`
	Tags       *[]string `json:"tags"`
	IsFavorite *bool     `json:"isFavorite"`
}

type NoteResponse struct {
	Id         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
