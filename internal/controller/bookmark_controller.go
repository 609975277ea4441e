package controller

import (
	"marknote-be/internal/dto"
	"marknote-be/internal/pkg/serverutils"
	"marknote-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBookmarkController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Tags(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type bookmarkController struct {
	bookmarkService service.IBookmarkService
	auth        fiber.Handler
}

func NewBookmarkController(bookmarkService service.IBookmarkService, auth fiber.Handler) IBookmarkController {
	return &bookmarkController{
		bookmarkService: bookmarkService,
		auth:        auth,
	}
}

func (c *bookmarkController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/bookmarks")
	h.Use(c.auth)
	h.Post("/", c.Create)
	h.Get("/", c.List)
	h.Get("/tags", c.Tags)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Patch("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *bookmarkController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateBookmarkRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.bookmarkService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create bookmark", res))
}

func (c *bookmarkController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var query dto.ListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.bookmarkService.List(ctx.UserContext(), userId, &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.ListResponse(res, len(res)))
}

func (c *bookmarkController) Tags(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.bookmarkService.Tags(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.ListResponse(res, len(res)))
}

func (c *bookmarkController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	id, err := resourceID(ctx, "Bookmark")
	if err != nil {
		return err
	}

	res, err := c.bookmarkService.Show(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show bookmark", res))
}

func (c *bookmarkController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	id, err := resourceID(ctx, "Bookmark")
	if err != nil {
		return err
	}

	var req dto.UpdateBookmarkRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.bookmarkService.Update(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update bookmark", res))
}

func (c *bookmarkController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	id, err := resourceID(ctx, "Bookmark")
	if err != nil {
		return err
	}

	if err := c.bookmarkService.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete bookmark", fiber.Map{}))
}
