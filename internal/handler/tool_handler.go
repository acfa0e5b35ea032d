package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/repo-tools/internal/models"
	"github.com/ahmednasr/repo-tools/internal/service"
)

// ToolHandler wires HTTP → AskService.
type ToolHandler struct {
	svc service.AskService
}

// NewToolHandler returns a struct pointer so you can call Register on it.
func NewToolHandler(svc service.AskService) *ToolHandler {
	return &ToolHandler{svc: svc}
}

// Register mounts the /tool endpoint on the supplied router.
func (h *ToolHandler) Register(r fiber.Router) {
	r.Post("/tool", h.ask)
}

// ask handles POST /tool  { "query": "...", "owner": "...", "repo": "..." }
func (h *ToolHandler) ask(c *fiber.Ctx) error {
	var req models.ToolRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}

	answer, err := h.svc.Ask(c.UserContext(), req)
	switch {
	case errors.Is(err, service.ErrInvalidQuery):
		return fiber.NewError(fiber.StatusBadRequest, "Query is required and must be a non-empty string")
	case errors.Is(err, service.ErrNoRepository):
		return fiber.NewError(fiber.StatusBadRequest, "No repository specified and no default repository configured")
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to process request")
	}

	return c.JSON(models.ToolResponse{Response: answer})
}
