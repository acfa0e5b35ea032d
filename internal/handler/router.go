package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/repo-tools/internal/middleware"
	"github.com/ahmednasr/repo-tools/internal/models"
	"github.com/ahmednasr/repo-tools/internal/service"
	"github.com/ahmednasr/repo-tools/internal/tools"
)

// NewApp returns a fiber app with the shared error rendering and middleware.
func NewApp(readTimeout, writeTimeout time.Duration) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "repo-tools",
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		ErrorHandler: ErrorHandler,
	})
	app.Use(middleware.Recover())
	app.Use(middleware.Logging())
	return app
}

// RegisterRoutes mounts the API under /api/v1. POST /tool is also served at
// the root for clients that predate the versioned prefix.
func RegisterRoutes(app *fiber.App,
	askSvc service.AskService,
	catalog tools.Catalog,
	historySvc service.HistoryService,
) {
	tool := NewToolHandler(askSvc)

	v1 := app.Group("/api/v1")
	tool.Register(v1)
	NewCatalogHandler(catalog).Register(v1)
	NewHistoryHandler(historySvc).Register(v1)

	tool.Register(app)
}

// ErrorHandler renders every error as {"error": msg}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(models.ErrorResponse{Error: msg})
}
