package handler

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/repo-tools/internal/service"
)

// HistoryHandler exposes the recently queried repositories.
type HistoryHandler struct {
	svc service.HistoryService
}

func NewHistoryHandler(svc service.HistoryService) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

func (h *HistoryHandler) Register(r fiber.Router) {
	r.Get("/repos/recent", h.recent)
}

// recent handles GET /repos/recent?limit=N
func (h *HistoryHandler) recent(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", service.DefaultRecentLimit)

	repos, err := h.svc.Recent(c.UserContext(), limit)
	if err != nil {
		log.Printf("[History Handler] listing recent repositories failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load recent repositories")
	}
	return c.JSON(repos)
}
