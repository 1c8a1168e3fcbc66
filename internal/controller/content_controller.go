// FILE: internal/controller/content_controller.go
package controller

import (
	"aura-ops-be/internal/dto"
	"aura-ops-be/internal/pkg/serverutils"
	"aura-ops-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IContentController interface {
	RegisterRoutes(r fiber.Router)
	SaveContent(ctx *fiber.Ctx) error
}

type contentController struct {
	service service.IContentService
}

func NewContentController(service service.IContentService) IContentController {
	return &contentController{service: service}
}

func (c *contentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/content")
	h.Post("/", c.SaveContent)
}

func (c *contentController) SaveContent(ctx *fiber.Ctx) error {
	var req dto.SaveContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid request body"))
	}

	res, err := c.service.SaveContent(ctx.Context(), &req)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(res)
}
