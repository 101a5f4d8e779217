package api

import (
	"scholarmatch/docs"
	"scholarmatch/internal/api/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

func SetupRouter(
	recHandler *handlers.RecommendHandler,
	chatHandler *handlers.ChatHandler,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // ensure docs package is imported and init() is called
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/stats", recHandler.Stats)
	v1.Get("/records", recHandler.ListRecords)
	v1.Get("/records/:name", recHandler.GetRecord)
	v1.Post("/similar", recHandler.FindSimilar)
	v1.Post("/recommend", recHandler.Recommend)
	v1.Post("/chat", chatHandler.Chat)

	admin := v1.Group("/admin")
	admin.Post("/rebuild", recHandler.Rebuild)

	return app
}
