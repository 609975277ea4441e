package service

import (
	"context"
	"strings"

	"marknote-be/internal/dto"
	"marknote-be/internal/entity"
	"marknote-be/internal/pkg/logger"
	"marknote-be/internal/repository/contract"
	"marknote-be/internal/repository/unitofwork"
	"marknote-be/pkg/tags"
	"marknote-be/pkg/webtitle"

	"github.com/google/uuid"
)

type IBookmarkService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateBookmarkRequest) (*dto.BookmarkResponse, error)
	List(ctx context.Context, userId uuid.UUID, query *dto.ListQuery) ([]*dto.BookmarkResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.BookmarkResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateBookmarkRequest) (*dto.BookmarkResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Tags(ctx context.Context, userId uuid.UUID) ([]string, error)
}

type bookmarkService struct {
	manager *resourceManager[*entity.Bookmark, dto.CreateBookmarkRequest, dto.UpdateBookmarkRequest]
}

// NewBookmarkService resolves missing titles through titleFetcher, which is
// expected to return the URL itself when the page cannot be read.
func NewBookmarkService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	titleFetcher webtitle.Fetcher,
	logger logger.ILogger,
) IBookmarkService {
	kind := resourceKind[*entity.Bookmark, dto.CreateBookmarkRequest, dto.UpdateBookmarkRequest]{
		name:   "bookmark",
		module: "BOOKMARK",
		repo: func(uow unitofwork.UnitOfWork) contract.ResourceRepository[*entity.Bookmark] {
			return uow.BookmarkRepository()
		},
		build: func(ctx context.Context, userId uuid.UUID, req *dto.CreateBookmarkRequest) *entity.Bookmark {
			title := strings.TrimSpace(req.Title)
			if title == "" {
				title = titleFetcher.FetchTitle(ctx, req.Url)
			}
			return &entity.Bookmark{
				UserId:      userId,
				Title:       title,
				Url:         req.Url,
				Description: req.Description,
				Tags:        tags.Normalize(req.Tags),
				IsFavorite:  req.IsFavorite,
			}
		},
		patch: func(req *dto.UpdateBookmarkRequest) contract.Patch[*entity.Bookmark] {
			patch := contract.BookmarkPatch{
				Title:       req.Title,
				Url:         req.Url,
				Description: req.Description,
				IsFavorite:  req.IsFavorite,
			}
			if req.Tags != nil {
				patch.Tags = tags.Normalize(*req.Tags)
				patch.TagsSet = true
			}
			return patch
		},
	}

	return &bookmarkService{
		manager: newResourceManager(kind, uowFactory, publisherService, logger),
	}
}

func toBookmarkResponse(bookmark *entity.Bookmark) *dto.BookmarkResponse {
	return &dto.BookmarkResponse{
		Id:          bookmark.Id,
		Url:         bookmark.Url,
		Title:       bookmark.Title,
		Description: bookmark.Description,
		Tags:        bookmark.Tags,
		IsFavorite:  bookmark.IsFavorite,
		CreatedAt:   bookmark.CreatedAt,
		UpdatedAt:   bookmark.UpdatedAt,
	}
}

func (c *bookmarkService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateBookmarkRequest) (*dto.BookmarkResponse, error) {
	bookmark, err := c.manager.Create(ctx, userId, req)
	if err != nil {
		return nil, err
	}
	return toBookmarkResponse(bookmark), nil
}

func (c *bookmarkService) List(ctx context.Context, userId uuid.UUID, query *dto.ListQuery) ([]*dto.BookmarkResponse, error) {
	bookmarks, err := c.manager.List(ctx, userId, query.Q, query.Tags)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.BookmarkResponse, 0, len(bookmarks))
	for _, bookmark := range bookmarks {
		res = append(res, toBookmarkResponse(bookmark))
	}
	return res, nil
}

func (c *bookmarkService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.BookmarkResponse, error) {
	bookmark, err := c.manager.Show(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	return toBookmarkResponse(bookmark), nil
}

func (c *bookmarkService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateBookmarkRequest) (*dto.BookmarkResponse, error) {
	bookmark, err := c.manager.Update(ctx, userId, id, req)
	if err != nil {
		return nil, err
	}
	return toBookmarkResponse(bookmark), nil
}

func (c *bookmarkService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	return c.manager.Delete(ctx, userId, id)
}

func (c *bookmarkService) Tags(ctx context.Context, userId uuid.UUID) ([]string, error) {
	return c.manager.Tags(ctx, userId)
}
