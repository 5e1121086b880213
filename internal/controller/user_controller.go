package controller

import (
	"quicknotes-be/internal/dto"
	"quicknotes-be/internal/pkg/serverutils"
	"quicknotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Profile(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
	DeleteAccount(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
}

func NewUserController(service service.IUserService) IUserController {
	return &userController{service: service}
}

func (c *userController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/users")
	h.Use(auth)
	h.Get("/me", c.Profile)
	h.Put("/password", c.ChangePassword)
	h.Delete("/me", c.DeleteAccount)
}

func (c *userController) Profile(ctx *fiber.Ctx) error {
	userId, err := authUserId(ctx)
	if err != nil {
		return err
	}

	user, err := c.service.Profile(ctx.Context(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"user": user})
}

func (c *userController) ChangePassword(ctx *fiber.Ctx) error {
	userId, err := authUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.ChangePassword(ctx.Context(), userId, &req); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"message": "Password updated successfully"})
}

func (c *userController) DeleteAccount(ctx *fiber.Ctx) error {
	userId, err := authUserId(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteAccount(ctx.Context(), userId); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"message": "Account deleted successfully"})
}
