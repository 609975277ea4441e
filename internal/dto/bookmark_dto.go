package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookmarkRequest leaves Title optional; a blank title is resolved
// from the page itself.
type CreateBookmarkRequest struct {
	Url         string   `json:"url" validate:"notblank,httpurl" label:"URL"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	IsFavorite  bool     `json:"isFavorite"`
}

type UpdateBookmarkRequest struct {
	Url         *string   `json:"url" validate:"omitnil,notblank,httpurl" label:"URL"`
	Title       *string   `json:"title" validate:"omitnil,notblank"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	IsFavorite  *bool     `json:"isFavorite"`
}

type BookmarkResponse struct {
	Id          uuid.UUID `json:"id"`
	Url         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	IsFavorite  bool      `json:"isFavorite"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
