// FILE: internal/controller/notice_controller.go
package controller

import (
	"aura-ops-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoticeController interface {
	RegisterRoutes(r fiber.Router)
	GetNotices(ctx *fiber.Ctx) error
}

type noticeController struct {
	service service.INoticeService
}

func NewNoticeController(service service.INoticeService) INoticeController {
	return &noticeController{service: service}
}

func (c *noticeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notices")
	h.Get("/", c.GetNotices)
}

func (c *noticeController) GetNotices(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"notices": c.service.Active()})
}
