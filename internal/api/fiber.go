// Package api assembles the Fiber application.
package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	gqlschema "github.com/sentinelvuln/sentinel-backend/graphql"
	"github.com/sentinelvuln/sentinel-backend/internal/ingest"
	"github.com/sentinelvuln/sentinel-backend/internal/query"
	"github.com/sentinelvuln/sentinel-backend/restapi"
)

// NewFiberApp creates and configures a Fiber app with REST and GraphQL routes
func NewFiberApp(engine *query.Engine, pipeline *ingest.Pipeline, ingestInterval time.Duration, log *zap.SugaredLogger) *fiber.App {
	// Initialize GraphQL schema
	gqlschema.InitEngine(engine)
	schema, err := gqlschema.CreateSchema()
	if err != nil {
		log.Fatalf("Failed to create GraphQL schema: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:     "sentinel-backend API v1.0",
		ReadTimeout: 60 * time.Second,
		// Any error a handler did not map itself becomes a generic 500;
		// the cause is logged, never exposed in the body.
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fiberErr, ok := err.(*fiber.Error); ok && fiberErr.Code != fiber.StatusInternalServerError {
				return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
			}
			log.Errorf("Error handling %s: %v", c.Path(), err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
		},
	})

	// Middleware
	app.Use(fiberrecover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	// CORS also answers the preflight OPTIONS requests with an empty 200.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(logger.New())

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	// Setup REST and GraphQL routes
	restapi.SetupRoutes(app, engine, pipeline, schema, ingestInterval, log)

	// Unmatched paths
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	})

	return app
}
