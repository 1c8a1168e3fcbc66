// FILE: internal/controller/tenant_controller.go
package controller

import (
	"aura-ops-be/internal/entity"

	"github.com/gofiber/fiber/v2"
)

type ITenantController interface {
	RegisterRoutes(r fiber.Router)
	GetTenants(ctx *fiber.Ctx) error
}

type tenantController struct {
	catalog *entity.TenantCatalog
}

func NewTenantController(catalog *entity.TenantCatalog) ITenantController {
	return &tenantController{catalog: catalog}
}

func (c *tenantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tenants")
	h.Get("/", c.GetTenants)
}

func (c *tenantController) GetTenants(ctx *fiber.Ctx) error {
	return ctx.JSON(c.catalog)
}
