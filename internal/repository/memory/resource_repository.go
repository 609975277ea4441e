package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"marknote-be/internal/entity"
	"marknote-be/internal/pkg/apperror"
	"marknote-be/internal/repository/contract"
	"marknote-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// Cloner is a resource that can hand out an independent copy of itself.
type Cloner[E any] interface {
	entity.Resource
	Clone() E
}

type record[E any] struct {
	value E
	seq   uint64
}

// ResourceRepository keeps resources in process. It evaluates the same
// specifications as the SQL store through their Matcher side and always
// lists newest first.
type ResourceRepository[E Cloner[E]] struct {
	mu    sync.Mutex
	cache *cache.Cache
	seq   uint64
	label string
	now   func() time.Time
}

func NewResourceRepository[E Cloner[E]](label string) *ResourceRepository[E] {
	return &ResourceRepository[E]{
		cache: cache.New(cache.NoExpiration, 0),
		label: label,
		now:   time.Now,
	}
}

func NewNoteRepository() *ResourceRepository[*entity.Note] {
	return NewResourceRepository[*entity.Note]("Note")
}

func NewBookmarkRepository() *ResourceRepository[*entity.Bookmark] {
	return NewResourceRepository[*entity.Bookmark]("Bookmark")
}

func (r *ResourceRepository[E]) notFound() error {
	return apperror.NotFound(r.label + " not found")
}

func (r *ResourceRepository[E]) get(id uuid.UUID) (record[E], bool) {
	if x, found := r.cache.Get(id.String()); found {
		return x.(record[E]), true
	}
	return record[E]{}, false
}

// sorted returns every stored record, newest first.
func (r *ResourceRepository[E]) sorted() []record[E] {
	items := r.cache.Items()
	records := make([]record[E], 0, len(items))
	for _, item := range items {
		records = append(records, item.Object.(record[E]))
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i].value.GetCreatedAt(), records[j].value.GetCreatedAt()
		if a.Equal(b) {
			return records[i].seq > records[j].seq
		}
		return a.After(b)
	})
	return records
}

func (r *ResourceRepository[E]) Create(_ context.Context, e E) (E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := e.Clone()
	now := r.now()
	stored.Stamp(uuid.New(), now, now)
	r.seq++
	r.cache.Set(stored.GetId().String(), record[E]{value: stored, seq: r.seq}, cache.NoExpiration)
	return stored.Clone(), nil
}

func (r *ResourceRepository[E]) FindOne(_ context.Context, specs ...specification.Specification) (E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero E
	for _, rec := range r.sorted() {
		if specification.MatchAll(rec.value, specs...) {
			return rec.value.Clone(), nil
		}
	}
	return zero, r.notFound()
}

func (r *ResourceRepository[E]) FindAll(_ context.Context, specs ...specification.Specification) ([]E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []E{}
	for _, rec := range r.sorted() {
		if specification.MatchAll(rec.value, specs...) {
			result = append(result, rec.value.Clone())
		}
	}
	return result, nil
}

func (r *ResourceRepository[E]) Update(_ context.Context, ownerID, id uuid.UUID, patch contract.Patch[E]) (E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero E
	rec, ok := r.get(id)
	if !ok || rec.value.GetUserId() != ownerID {
		return zero, r.notFound()
	}
	if patch.Empty() {
		return rec.value.Clone(), nil
	}

	updated := rec.value.Clone()
	patch.Apply(updated)
	updated.Touch(r.now())
	r.cache.Set(id.String(), record[E]{value: updated, seq: rec.seq}, cache.NoExpiration)
	return updated.Clone(), nil
}

func (r *ResourceRepository[E]) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.get(id)
	if !ok || rec.value.GetUserId() != ownerID {
		return r.notFound()
	}
	r.cache.Delete(id.String())
	return nil
}

func (r *ResourceRepository[E]) DistinctTags(_ context.Context, ownerID uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := map[string]struct{}{}
	tags := []string{}
	for _, rec := range r.sorted() {
		if rec.value.GetUserId() != ownerID {
			continue
		}
		for _, tag := range rec.value.GetTags() {
			if _, dup := seen[tag]; !dup {
				seen[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// Remove drops a row behind the caller's back. Tests use it to simulate a
// concurrent delete between a read and a write.
func (r *ResourceRepository[E]) Remove(id uuid.UUID) {
	r.cache.Delete(id.String())
}
