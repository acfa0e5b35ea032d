package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// Pinger is anything with a liveness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	completion Pinger
	history    Pinger
	timeout    time.Duration
}

// NewHealthHandler probes completion and history; either may be nil.
func NewHealthHandler(completion, history Pinger, timeout time.Duration) *HealthHandler {
	return &HealthHandler{
		completion: completion,
		history:    history,
		timeout:    timeout,
	}
}

func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	var completion, history string
	var g errgroup.Group
	g.Go(func() error {
		completion = check(ctx, h.completion, "ok", "unavailable")
		return nil
	})
	g.Go(func() error {
		history = check(ctx, h.history, "connected", "error")
		return nil
	})
	_ = g.Wait()

	return c.JSON(fiber.Map{
		"status":     "ok",
		"completion": completion,
		"history":    history,
	})
}

func check(ctx context.Context, p Pinger, up, down string) string {
	if p == nil {
		return "not_configured"
	}
	if err := p.Ping(ctx); err != nil {
		return down
	}
	return up
}
