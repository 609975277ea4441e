package service

import (
	"context"

	"marknote-be/internal/dto"
	"marknote-be/internal/entity"
	"marknote-be/internal/pkg/logger"
	"marknote-be/internal/repository/contract"
	"marknote-be/internal/repository/unitofwork"
	"marknote-be/pkg/tags"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID, query *dto.ListQuery) ([]*dto.NoteResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Tags(ctx context.Context, userId uuid.UUID) ([]string, error)
}

type noteService struct {
	manager *resourceManager[*entity.Note, dto.CreateNoteRequest, dto.UpdateNoteRequest]
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	logger logger.ILogger,
) INoteService {
	kind := resourceKind[*entity.Note, dto.CreateNoteRequest, dto.UpdateNoteRequest]{
		name:   "note",
		module: "NOTE",
		repo: func(uow unitofwork.UnitOfWork) contract.ResourceRepository[*entity.Note] {
			return uow.NoteRepository()
		},
		build: func(_ context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) *entity.Note {
			return &entity.Note{
				UserId:     userId,
				Title:      req.Title,
				Content:    req.Content,
				Tags:       tags.Normalize(req.Tags),
				IsFavorite: req.IsFavorite,
			}
		},
		patch: func(req *dto.UpdateNoteRequest) contract.Patch[*entity.Note] {
			patch := contract.NotePatch{
				Title:      req.Title,
				Content:    req.Content,
				IsFavorite: req.IsFavorite,
			}
			if req.Tags != nil {
				patch.Tags = tags.Normalize(*req.Tags)
				patch.TagsSet = true
			}
			return patch
		},
	}

	return &noteService{
		manager: newResourceManager(kind, uowFactory, publisherService, logger),
	}
}

func toNoteResponse(note *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:         note.Id,
		Title:      note.Title,
		Content:    note.Content,
		Tags:       note.Tags,
		IsFavorite: note.IsFavorite,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
	}
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	note, err := c.manager.Create(ctx, userId, req)
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID, query *dto.ListQuery) ([]*dto.NoteResponse, error) {
	notes, err := c.manager.List(ctx, userId, query.Q, query.Tags)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		res = append(res, toNoteResponse(note))
	}
	return res, nil
}

func (c *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	note, err := c.manager.Show(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	note, err := c.manager.Update(ctx, userId, id, req)
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	return c.manager.Delete(ctx, userId, id)
}

func (c *noteService) Tags(ctx context.Context, userId uuid.UUID) ([]string, error) {
	return c.manager.Tags(ctx, userId)
}
