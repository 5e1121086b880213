package controller

import (
	"quicknotes-be/internal/dto"
	"quicknotes-be/internal/pkg/serverutils"
	"quicknotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Verify(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
	h.Get("/verify", c.Verify)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Register(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

// Verify reads the bearer token itself so an absent token can be reported
// distinctly from an invalid one.
func (c *authController) Verify(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	var tokenStr string
	if len(authHeader) >= 7 && authHeader[:7] == "Bearer " {
		tokenStr = authHeader[7:]
	}

	res, err := c.service.Verify(ctx.Context(), tokenStr)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
