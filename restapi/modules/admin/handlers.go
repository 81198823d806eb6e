// Package admin provides the operational endpoints.
package admin

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/sentinelvuln/sentinel-backend/internal/ingest"
	"github.com/sentinelvuln/sentinel-backend/model"
)

// TriggerIngest runs one ingestion synchronously and reports the written
// count. This is the manual form of the scheduled trigger.
func TriggerIngest(pipeline *ingest.Pipeline) fiber.Handler {
	return func(c *fiber.Ctx) error {
		processed, err := pipeline.Run(c.Context())
		if err != nil {
			return err
		}

		return c.JSON(model.IngestResult{
			Success:   true,
			Message:   fmt.Sprintf("Processed %d CVEs", processed),
			Processed: processed,
		})
	}
}
