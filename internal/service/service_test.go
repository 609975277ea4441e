package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"marknote-be/internal/dto"
	"marknote-be/internal/entity"
	"marknote-be/internal/pkg/apperror"
	"marknote-be/internal/pkg/logger"
	"marknote-be/internal/repository/contract"
	"marknote-be/internal/repository/specification"
	"marknote-be/internal/repository/unitofwork"
	"marknote-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher records lookups and answers with a fixed title, or with the
// URL itself when title is empty.
type stubFetcher struct {
	mu    sync.Mutex
	title string
	calls []string
}

func (f *stubFetcher) FetchTitle(_ context.Context, url string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	if f.title == "" {
		return url
	}
	return f.title
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []string{}
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func newNoteFixture() (INoteService, *unitofwork.MemoryRepositoryFactory, *recordingPublisher) {
	factory := unitofwork.NewMemoryRepositoryFactory()
	pub := &recordingPublisher{}
	return NewNoteService(factory, pub, logger.NewNopLogger()), factory, pub
}

func newBookmarkFixture(fetcher *stubFetcher) (IBookmarkService, *unitofwork.MemoryRepositoryFactory) {
	factory := unitofwork.NewMemoryRepositoryFactory()
	return NewBookmarkService(factory, nil, fetcher, logger.NewNopLogger()), factory
}

func TestNoteService_CreateValidation(t *testing.T) {
	svc, _, pub := newNoteFixture()
	ctx := context.Background()
	owner := uuid.New()

	tests := []struct {
		name    string
		req     dto.CreateNoteRequest
		message string
	}{
		{name: "missing title", req: dto.CreateNoteRequest{Content: "body"}, message: "Title is required"},
		{name: "blank title", req: dto.CreateNoteRequest{Title: "   ", Content: "body"}, message: "Title is required"},
		{name: "missing content", req: dto.CreateNoteRequest{Title: "t"}, message: "Content is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, owner, &tt.req)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}

	list, err := svc.List(ctx, owner, &dto.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, pub.types())
}

func TestNoteService_CreateDefaultsAndTags(t *testing.T) {
	svc, _, pub := newNoteFixture()

	note, err := svc.Create(context.Background(), uuid.New(), &dto.CreateNoteRequest{
		Title:   "Groceries",
		Content: "milk",
		Tags:    []string{"Dev", " dev ", "", "Tools"},
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, note.Id)
	assert.Equal(t, []string{"dev", "tools"}, note.Tags)
	assert.False(t, note.IsFavorite)
	assert.False(t, note.CreatedAt.IsZero())
	assert.Equal(t, []string{events.ResourceCreated}, pub.types())
}

func TestNoteService_ListFiltersByOwnerAndTags(t *testing.T) {
	svc, _, _ := newNoteFixture()
	ctx := context.Background()
	u := uuid.New()
	other := uuid.New()

	mine, err := svc.Create(ctx, u, &dto.CreateNoteRequest{Title: "mine", Content: "x", Tags: []string{"dev"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, other, &dto.CreateNoteRequest{Title: "theirs", Content: "x", Tags: []string{"dev"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, u, &dto.CreateNoteRequest{Title: "unrelated", Content: "x", Tags: []string{"other"}})
	require.NoError(t, err)

	list, err := svc.List(ctx, u, &dto.ListQuery{Tags: "Dev,tools"})

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.Id, list[0].Id)
}

func TestNoteService_ListNewestFirst(t *testing.T) {
	svc, _, _ := newNoteFixture()
	ctx := context.Background()
	u := uuid.New()

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, u, &dto.CreateNoteRequest{Title: title, Content: "x"})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, u, &dto.ListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "first", list[2].Title)
}

func TestNoteService_OwnershipIsolation(t *testing.T) {
	svc, _, _ := newNoteFixture()
	ctx := context.Background()
	a := uuid.New()
	b := uuid.New()

	note, err := svc.Create(ctx, a, &dto.CreateNoteRequest{Title: "secret", Content: "x"})
	require.NoError(t, err)

	_, err = svc.Show(ctx, b, note.Id)
	assert.True(t, apperror.IsNotFound(err))

	_, err = svc.Update(ctx, b, note.Id, &dto.UpdateNoteRequest{Title: strPtr("pwned")})
	assert.True(t, apperror.IsNotFound(err))

	err = svc.Delete(ctx, b, note.Id)
	assert.True(t, apperror.IsNotFound(err))

	stillThere, err := svc.Show(ctx, a, note.Id)
	require.NoError(t, err)
	assert.Equal(t, "secret", stillThere.Title)
}

func TestNoteService_PartialUpdate(t *testing.T) {
	svc, _, pub := newNoteFixture()
	ctx := context.Background()
	u := uuid.New()

	note, err := svc.Create(ctx, u, &dto.CreateNoteRequest{Title: "t", Content: "c", Tags: []string{"a"}})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)

	updated, err := svc.Update(ctx, u, note.Id, &dto.UpdateNoteRequest{IsFavorite: boolPtr(true)})

	require.NoError(t, err)
	assert.True(t, updated.IsFavorite)
	assert.Equal(t, "t", updated.Title)
	assert.Equal(t, "c", updated.Content)
	assert.Equal(t, []string{"a"}, updated.Tags)
	assert.Equal(t, note.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(note.UpdatedAt))
	assert.Equal(t, []string{events.ResourceCreated, events.ResourceUpdated}, pub.types())
}

func TestNoteService_UpdateValidatesSuppliedFieldsOnly(t *testing.T) {
	svc, _, _ := newNoteFixture()
	ctx := context.Background()
	u := uuid.New()

	note, err := svc.Create(ctx, u, &dto.CreateNoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, u, note.Id, &dto.UpdateNoteRequest{Content: strPtr("  ")})
	assert.True(t, apperror.IsValidation(err))

	updated, err := svc.Update(ctx, u, note.Id, &dto.UpdateNoteRequest{Tags: &[]string{"New", "new"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, updated.Tags)
	assert.Equal(t, "c", updated.Content)
}

func TestNoteService_UpdateMissingBeforeValidation(t *testing.T) {
	svc, _, _ := newNoteFixture()

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), &dto.UpdateNoteRequest{Title: strPtr("")})

	assert.True(t, apperror.IsNotFound(err))
}

func TestNoteService_EmptyUpdateReturnsExisting(t *testing.T) {
	svc, _, pub := newNoteFixture()
	ctx := context.Background()
	u := uuid.New()

	note, err := svc.Create(ctx, u, &dto.CreateNoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	same, err := svc.Update(ctx, u, note.Id, &dto.UpdateNoteRequest{})

	require.NoError(t, err)
	assert.Equal(t, note.UpdatedAt, same.UpdatedAt)
	assert.Equal(t, []string{events.ResourceCreated}, pub.types())
}

func TestNoteService_DeleteTwice(t *testing.T) {
	svc, _, pub := newNoteFixture()
	ctx := context.Background()
	u := uuid.New()

	note, err := svc.Create(ctx, u, &dto.CreateNoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u, note.Id))

	err = svc.Delete(ctx, u, note.Id)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, []string{events.ResourceCreated, events.ResourceDeleted}, pub.types())
}

func TestNoteService_PublishFailureIsAbsorbed(t *testing.T) {
	factory := unitofwork.NewMemoryRepositoryFactory()
	pub := &recordingPublisher{err: errors.New("bus down")}
	svc := NewNoteService(factory, pub, logger.NewNopLogger())

	note, err := svc.Create(context.Background(), uuid.New(), &dto.CreateNoteRequest{Title: "t", Content: "c"})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, note.Id)
}

func TestNoteService_Tags(t *testing.T) {
	svc, _, _ := newNoteFixture()
	ctx := context.Background()
	u := uuid.New()

	_, err := svc.Create(ctx, u, &dto.CreateNoteRequest{Title: "1", Content: "x", Tags: []string{"work", "Dev"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, u, &dto.CreateNoteRequest{Title: "2", Content: "x", Tags: []string{"dev"}})
	require.NoError(t, err)

	tags, err := svc.Tags(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "work"}, tags)
}

// racingFactory deletes the row right after the existence check, the way a
// concurrent request would.
type racingFactory struct {
	*unitofwork.MemoryRepositoryFactory
}

func (f racingFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return racingUnitOfWork{UnitOfWork: f.MemoryRepositoryFactory.NewUnitOfWork(ctx), factory: f.MemoryRepositoryFactory}
}

type racingUnitOfWork struct {
	unitofwork.UnitOfWork
	factory *unitofwork.MemoryRepositoryFactory
}

func (u racingUnitOfWork) NoteRepository() contract.NoteRepository {
	return racingNoteRepository{NoteRepository: u.UnitOfWork.NoteRepository(), factory: u.factory}
}

type racingNoteRepository struct {
	contract.NoteRepository
	factory *unitofwork.MemoryRepositoryFactory
}

func (r racingNoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	note, err := r.NoteRepository.FindOne(ctx, specs...)
	if err == nil {
		r.factory.Notes.Remove(note.Id)
	}
	return note, err
}

func TestNoteService_ConcurrentDeleteIsNotFound(t *testing.T) {
	base := unitofwork.NewMemoryRepositoryFactory()
	ctx := context.Background()
	u := uuid.New()

	seed := NewNoteService(base, nil, logger.NewNopLogger())
	note, err := seed.Create(ctx, u, &dto.CreateNoteRequest{Title: "t", Content: "c"})
	require.NoError(t, err)
	other, err := seed.Create(ctx, u, &dto.CreateNoteRequest{Title: "t2", Content: "c"})
	require.NoError(t, err)

	svc := NewNoteService(racingFactory{base}, nil, logger.NewNopLogger())

	_, err = svc.Update(ctx, u, note.Id, &dto.UpdateNoteRequest{Title: strPtr("x")})
	assert.True(t, apperror.IsNotFound(err))

	err = svc.Delete(ctx, u, other.Id)
	assert.True(t, apperror.IsNotFound(err))
}

// txFactory counts how each unit of work ends.
type txFactory struct {
	*unitofwork.MemoryRepositoryFactory
	mu                        sync.Mutex
	begun, commits, rollbacks int
	beginErr                  error
}

func (f *txFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &txUnitOfWork{UnitOfWork: f.MemoryRepositoryFactory.NewUnitOfWork(ctx), factory: f}
}

func (f *txFactory) counts() (int, int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.begun, f.commits, f.rollbacks
}

type txUnitOfWork struct {
	unitofwork.UnitOfWork
	factory *txFactory
}

func (u *txUnitOfWork) Begin(ctx context.Context) error {
	u.factory.mu.Lock()
	defer u.factory.mu.Unlock()
	if u.factory.beginErr != nil {
		return u.factory.beginErr
	}
	u.factory.begun++
	return nil
}

func (u *txUnitOfWork) Commit() error {
	u.factory.mu.Lock()
	defer u.factory.mu.Unlock()
	u.factory.commits++
	return nil
}

func (u *txUnitOfWork) Rollback() error {
	u.factory.mu.Lock()
	defer u.factory.mu.Unlock()
	u.factory.rollbacks++
	return nil
}

func TestNoteService_WritesRunInTransaction(t *testing.T) {
	ctx := context.Background()
	u := uuid.New()

	t.Run("update and delete commit", func(t *testing.T) {
		factory := &txFactory{MemoryRepositoryFactory: unitofwork.NewMemoryRepositoryFactory()}
		svc := NewNoteService(factory, nil, logger.NewNopLogger())

		note, err := svc.Create(ctx, u, &dto.CreateNoteRequest{Title: "t", Content: "c"})
		require.NoError(t, err)

		_, err = svc.Update(ctx, u, note.Id, &dto.UpdateNoteRequest{Title: strPtr("x")})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, u, note.Id))

		begun, commits, rollbacks := factory.counts()
		assert.Equal(t, 2, begun)
		assert.Equal(t, 2, commits)
		assert.Equal(t, 0, rollbacks)
	})

	t.Run("missing row rolls back", func(t *testing.T) {
		factory := &txFactory{MemoryRepositoryFactory: unitofwork.NewMemoryRepositoryFactory()}
		svc := NewNoteService(factory, nil, logger.NewNopLogger())

		_, err := svc.Update(ctx, u, uuid.New(), &dto.UpdateNoteRequest{Title: strPtr("x")})
		assert.True(t, apperror.IsNotFound(err))
		err = svc.Delete(ctx, u, uuid.New())
		assert.True(t, apperror.IsNotFound(err))

		begun, commits, rollbacks := factory.counts()
		assert.Equal(t, 2, begun)
		assert.Equal(t, 0, commits)
		assert.Equal(t, 2, rollbacks)
	})

	t.Run("begin failure is a storage error", func(t *testing.T) {
		factory := &txFactory{
			MemoryRepositoryFactory: unitofwork.NewMemoryRepositoryFactory(),
			beginErr:                errors.New("connection refused"),
		}
		svc := NewNoteService(factory, nil, logger.NewNopLogger())

		err := svc.Delete(ctx, u, uuid.New())

		assert.True(t, apperror.IsStorage(err))
	})
}

func TestNoteService_LongTitle(t *testing.T) {
	svc, _, _ := newNoteFixture()
	ctx := context.Background()
	u := uuid.New()
	title := strings.Repeat("long title ", 40)

	note, err := svc.Create(ctx, u, &dto.CreateNoteRequest{Title: title, Content: "c"})

	require.NoError(t, err)
	assert.Equal(t, title, note.Title)
}

func TestBookmarkService_TitleFallback(t *testing.T) {
	fetcher := &stubFetcher{}
	svc, _ := newBookmarkFixture(fetcher)

	bookmark, err := svc.Create(context.Background(), uuid.New(), &dto.CreateBookmarkRequest{Url: "https://unreachable.example/page"})

	require.NoError(t, err)
	assert.Equal(t, "https://unreachable.example/page", bookmark.Title)
	assert.Equal(t, "", bookmark.Description)
	assert.Equal(t, []string{}, bookmark.Tags)
	assert.Equal(t, []string{"https://unreachable.example/page"}, fetcher.calls)
}

func TestBookmarkService_TitleResolution(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		wantTitle string
		wantCalls int
	}{
		{name: "fetched when omitted", title: "", wantTitle: "Fetched Title", wantCalls: 1},
		{name: "fetched when blank", title: "   ", wantTitle: "Fetched Title", wantCalls: 1},
		{name: "kept when supplied", title: "Mine", wantTitle: "Mine", wantCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFetcher{title: "Fetched Title"}
			svc, _ := newBookmarkFixture(fetcher)

			bookmark, err := svc.Create(context.Background(), uuid.New(), &dto.CreateBookmarkRequest{Url: "https://go.dev", Title: tt.title})

			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, bookmark.Title)
			assert.Len(t, fetcher.calls, tt.wantCalls)
		})
	}
}

func TestBookmarkService_URLValidation(t *testing.T) {
	fetcher := &stubFetcher{}
	svc, _ := newBookmarkFixture(fetcher)
	ctx := context.Background()
	u := uuid.New()

	tests := []struct {
		name    string
		url     string
		message string
	}{
		{name: "ftp scheme", url: "ftp://x.com", message: "Please provide a valid URL starting with http:// or https://"},
		{name: "missing", url: "", message: "URL is required"},
		{name: "blank", url: "  ", message: "URL is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, u, &dto.CreateBookmarkRequest{Url: tt.url, Title: "x"})
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
	assert.Empty(t, fetcher.calls)

	created, err := svc.Create(ctx, u, &dto.CreateBookmarkRequest{Url: "http://x.com", Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, "http://x.com", created.Url)
}

func TestBookmarkService_Update(t *testing.T) {
	svc, _ := newBookmarkFixture(&stubFetcher{})
	ctx := context.Background()
	u := uuid.New()

	bookmark, err := svc.Create(ctx, u, &dto.CreateBookmarkRequest{Url: "https://go.dev", Title: "Go", Description: "lang"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, u, bookmark.Id, &dto.UpdateBookmarkRequest{Url: strPtr("ftp://go.dev")})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Update(ctx, u, bookmark.Id, &dto.UpdateBookmarkRequest{Title: strPtr(" ")})
	assert.True(t, apperror.IsValidation(err))

	updated, err := svc.Update(ctx, u, bookmark.Id, &dto.UpdateBookmarkRequest{Description: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Description)
	assert.Equal(t, "Go", updated.Title)
	assert.Equal(t, "https://go.dev", updated.Url)
}

func TestBookmarkService_ListSearch(t *testing.T) {
	svc, _ := newBookmarkFixture(&stubFetcher{})
	ctx := context.Background()
	u := uuid.New()

	_, err := svc.Create(ctx, u, &dto.CreateBookmarkRequest{Url: "https://go.dev", Title: "Go", Description: "programming language", Tags: []string{"lang"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, u, &dto.CreateBookmarkRequest{Url: "https://rust-lang.org", Title: "Rust", Description: "systems language", Tags: []string{"lang"}})
	require.NoError(t, err)

	list, err := svc.List(ctx, u, &dto.ListQuery{Q: "programming", Tags: "lang"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Go", list[0].Title)
}
