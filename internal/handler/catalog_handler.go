package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/repo-tools/internal/tools"
)

// CatalogHandler lists the repository tools.
type CatalogHandler struct {
	catalog tools.Catalog
}

func NewCatalogHandler(catalog tools.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) Register(r fiber.Router) {
	r.Get("/tools", h.list)
}

// list handles GET /tools
func (h *CatalogHandler) list(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tools": h.catalog.Definitions(),
	})
}
