package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CheckHandler struct{}

func (CheckHandler) HandleHealthy(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"result": "ok"})
}

// NewApp builds the fiber app with every route of the API.
func NewApp(h *Handler, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler(log),
		DisableStartupMessage: true,
	})
	app.Use(RequestLogger(log))

	var (
		check    = app.Group("/check")
		apiv1    = app.Group("/api/v1", BearerToken())
		sessions = apiv1.Group("/sessions")
	)

	check.Get("/healthy", CheckHandler{}.HandleHealthy)

	sessions.Post("/", h.StartSession)
	sessions.Get("/:id", h.GetSession)
	sessions.Delete("/:id", h.EndSession)
	sessions.Post("/:id/next", h.Next)
	sessions.Post("/:id/previous", h.Previous)
	sessions.Post("/:id/export", h.Export)
	sessions.Get("/:id/form", h.Form)
	sessions.Get("/:id/document", h.Document)
	sessions.Get("/:id/preview", h.Preview)
	sessions.Put("/:id/personal-info", h.UpdatePersonalInfo)
	sessions.Post("/:id/:slice", h.AddEntity)
	sessions.Delete("/:id/:slice/:entityId", h.RemoveEntity)
	sessions.Patch("/:id/:slice/:entityId", h.UpdateEntity)

	return app
}
