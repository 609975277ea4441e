package specification

import (
	"marknote-be/internal/entity"

	"gorm.io/gorm"
)

// Specification defines the interface for query specifications
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Matcher is implemented by specifications that can also be evaluated
// against an entity held outside the database.
type Matcher interface {
	Matches(r entity.Resource) bool
}

// MatchAll reports whether r satisfies every Matcher in specs. Specifications
// without a Matcher side (ordering) are ignored.
func MatchAll(r entity.Resource, specs ...Specification) bool {
	for _, spec := range specs {
		if m, ok := spec.(Matcher); ok && !m.Matches(r) {
			return false
		}
	}
	return true
}
