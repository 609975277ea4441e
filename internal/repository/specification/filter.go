package specification

import (
	"strings"

	"marknote-be/internal/entity"
	"marknote-be/pkg/tags"

	"github.com/google/uuid"
)

// ResourceFilter is the structured form of a listing request. The owner
// clause is always present; Text and AnyTags are optional and ANDed.
type ResourceFilter struct {
	OwnerID uuid.UUID
	Text    string
	AnyTags []string
}

// BuildResourceFilter turns raw query parameters into a ResourceFilter.
// Blank q means no text clause. tagsCSV entries are normalized the same way
// stored tags are, and an empty result means no tag clause.
func BuildResourceFilter(ownerID uuid.UUID, q, tagsCSV string) ResourceFilter {
	return ResourceFilter{
		OwnerID: ownerID,
		Text:    strings.TrimSpace(q),
		AnyTags: tags.SplitCSV(tagsCSV),
	}
}

func (f ResourceFilter) HasText() bool { return f.Text != "" }

func (f ResourceFilter) HasTags() bool { return len(f.AnyTags) > 0 }

// Specifications renders the filter for a repository, newest first.
func (f ResourceFilter) Specifications() []Specification {
	specs := []Specification{UserOwnedBy{UserID: f.OwnerID}}
	if f.HasText() {
		specs = append(specs, FullTextSearch{Query: f.Text})
	}
	if f.HasTags() {
		specs = append(specs, TagsOverlap{Tags: f.AnyTags})
	}
	return append(specs, NewestFirst())
}

func (f ResourceFilter) Matches(r entity.Resource) bool {
	return MatchAll(r, f.Specifications()...)
}
