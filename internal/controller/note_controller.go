package controller

import (
	"strings"

	"quicknotes-be/internal/dto"
	"quicknotes-be/internal/pkg/serverutils"
	"quicknotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	List(ctx *fiber.Ctx) error
	ListTags(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{noteService: noteService}
}

func (c *noteController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/notes")
	h.Use(auth)
	// Fixed paths first so they don't get swallowed by :id.
	h.Get("/tags", c.ListTags)
	h.Get("/search", c.Search)
	h.Get("/", c.List)
	h.Post("/", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func authUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	idStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, serverutils.NewUnauthorized("Invalid or expired token")
	}
	return userId, nil
}

func noteIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.NewValidationError("Note ID must be a valid UUID")
	}
	return id, nil
}

// parseTags splits a comma-separated tags parameter, dropping empty segments.
func parseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId, err := authUserId(ctx)
	if err != nil {
		return err
	}

	q := dto.ListNotesQuery{
		Limit:  ctx.QueryInt("limit", service.DefaultPageLimit),
		Offset: ctx.QueryInt("offset", 0),
		Tags:   parseTags(ctx.Query("tags")),
	}
	if err := serverutils.ValidateRequest(q); err != nil {
		return err
	}

	res, err := c.noteService.List(ctx.Context(), userId, &q)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) ListTags(ctx *fiber.Ctx) error {
	userId, err := authUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.ListTags(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Search(ctx *fiber.Ctx) error {
	userId, err := authUserId(ctx)
	if err != nil {
		return err
	}

	tags := parseTags(ctx.Query("tags"))
	if len(tags) == 0 {
		return serverutils.NewBadRequest("Tags parameter is required for search")
	}

	res, err := c.noteService.Search(ctx.Context(), userId, tags)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	userId, err := authUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	note, err := c.noteService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if note == nil {
		return serverutils.NewNotFound("Note not found")
	}
	return ctx.JSON(fiber.Map{"note": note})
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, err := authUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	note, err := c.noteService.Create(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"note": note})
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId, err := authUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	note, err := c.noteService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}
	if note == nil {
		return serverutils.NewNotFound("Note not found")
	}
	return ctx.JSON(fiber.Map{"note": note})
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId, err := authUserId(ctx)
	if err != nil {
		return err
	}
	id, err := noteIdParam(ctx)
	if err != nil {
		return err
	}

	removed, err := c.noteService.Delete(ctx.Context(), userId, id)
	if err != nil {
		return err
	}
	if !removed {
		return serverutils.NewNotFound("Note not found")
	}
	return ctx.JSON(fiber.Map{"message": "Note deleted successfully"})
}
