// Package dashboard provides the aggregate endpoints backing the
// dashboard cards and charts.
package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sentinelvuln/sentinel-backend/internal/query"
)

// Stats returns the aggregate counters over the whole table.
func Stats(engine *query.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := engine.Stats(c.Context())
		if err != nil {
			return err
		}

		return c.JSON(stats)
	}
}

// Trends returns twelve monthly KEV-addition buckets, oldest first.
func Trends(engine *query.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		trends, err := engine.Trends(c.Context())
		if err != nil {
			return err
		}

		return c.JSON(trends)
	}
}
