// FILE: internal/controller/instance_controller.go
package controller

import (
	"aura-ops-be/internal/dto"
	"aura-ops-be/internal/pkg/serverutils"
	"aura-ops-be/internal/service"
	"aura-ops-be/pkg/aura"

	"github.com/gofiber/fiber/v2"
)

type IInstanceController interface {
	RegisterRoutes(r fiber.Router)
	GetInstances(ctx *fiber.Ctx) error
	LoadInstances(ctx *fiber.Ctx) error
	RefreshInstance(ctx *fiber.Ctx) error
	PerformAction(ctx *fiber.Ctx) error
	DeleteInstance(ctx *fiber.Ctx) error
}

type instanceController struct {
	service service.IReconcilerService
}

func NewInstanceController(service service.IReconcilerService) IInstanceController {
	return &instanceController{service: service}
}

func (c *instanceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/instances")
	h.Get("/", c.GetInstances)
	h.Post("/load", c.LoadInstances)
	h.Post("/:id/refresh", c.RefreshInstance)
	h.Post("/:id/actions", c.PerformAction)
	h.Delete("/:id", c.DeleteInstance)
}

// GetInstances serves the cached view; an empty cache triggers a full load
// so the first page render does not come up blank.
func (c *instanceController) GetInstances(ctx *fiber.Ctx) error {
	if c.service.Count() == 0 {
		instances, err := c.service.LoadAll(ctx.Context())
		if err != nil {
			return serverutils.HandleError(ctx, err)
		}
		return ctx.JSON(dto.InstanceListResponse{Instances: instances})
	}
	return ctx.JSON(dto.InstanceListResponse{Instances: c.service.List()})
}

func (c *instanceController) LoadInstances(ctx *fiber.Ctx) error {
	instances, err := c.service.LoadAll(ctx.Context())
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(dto.InstanceListResponse{Instances: instances})
}

func (c *instanceController) RefreshInstance(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	instance, err := c.service.RefreshOne(ctx.Context(), id)
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	if instance == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(fiber.StatusNotFound, "instance not found in cache"))
	}
	return ctx.JSON(instance)
}

func (c *instanceController) PerformAction(ctx *fiber.Ctx) error {
	id := ctx.Params("id")

	var req dto.InstanceActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "invalid request body"))
	}

	instance, err := c.service.IssueAction(ctx.Context(), id, aura.Action(req.Action))
	if err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(instance)
}

func (c *instanceController) DeleteInstance(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	confirmed := ctx.Query("confirm", "false") == "true"

	if err := c.service.DeleteOne(ctx.Context(), id, confirmed); err != nil {
		return serverutils.HandleError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse(fiber.Map{"id": id, "deleted": true}))
}
