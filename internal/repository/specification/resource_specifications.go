package specification

import (
	"strings"

	"marknote-be/internal/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// UserOwnedBy is the tenant isolation clause. Every read carries it.
type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

func (s UserOwnedBy) Matches(r entity.Resource) bool {
	return r.GetUserId() == s.UserID
}

// FullTextSearch matches against the generated search_vector column.
// Ranking is left to PostgreSQL; results keep the listing order.
type FullTextSearch struct {
	Query string
}

func (s FullTextSearch) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("search_vector @@ websearch_to_tsquery('simple', ?)", s.Query)
}

// Matches is a plain approximation of the tsquery: every term must occur.
func (s FullTextSearch) Matches(r entity.Resource) bool {
	text := strings.ToLower(r.SearchText())
	for _, term := range strings.Fields(strings.ToLower(s.Query)) {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

// TagsOverlap keeps rows carrying at least one of Tags.
type TagsOverlap struct {
	Tags []string
}

func (s TagsOverlap) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tags && ?", pq.StringArray(s.Tags))
}

func (s TagsOverlap) Matches(r entity.Resource) bool {
	for _, have := range r.GetTags() {
		for _, want := range s.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}
