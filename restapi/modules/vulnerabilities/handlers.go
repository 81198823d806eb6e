// Package vulnerabilities provides the read endpoints for vulnerability
// records.
package vulnerabilities

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sentinelvuln/sentinel-backend/internal/query"
	"github.com/sentinelvuln/sentinel-backend/util"
)

// List returns the paginated feed sorted by composite score or published
// date, with optional vendor/cwe/severity/kev filters.
func List(engine *query.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "20"))

		params := query.ListParams{
			Sort:     c.Query("sort", "score"),
			Limit:    limit,
			Cursor:   c.Query("cursor"),
			Vendor:   c.Query("vendor"),
			CWE:      c.Query("cwe"),
			Severity: c.Query("severity"),
			KEVOnly:  c.Query("kev") == "true",
		}

		result, err := engine.List(c.Context(), params)
		if err != nil {
			return err
		}

		return c.JSON(result)
	}
}

// Detail returns a single record by identifier, 404 when absent.
func Detail(engine *query.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cveID := c.Params("cveId")

		rec, err := engine.Detail(c.Context(), cveID)
		if err != nil {
			return err
		}
		if rec == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "CVE " + util.NormalizeCVEID(cveID) + " not found",
			})
		}

		return c.JSON(rec)
	}
}

// Search matches the query string against identifiers and descriptions.
func Search(engine *query.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Query parameter 'q' is required",
			})
		}

		result, err := engine.Search(c.Context(), q)
		if err != nil {
			return err
		}

		return c.JSON(result)
	}
}

// Top10 returns the highest-scored records published in the past week.
func Top10(engine *query.Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := engine.Top10(c.Context())
		if err != nil {
			return err
		}

		return c.JSON(result)
	}
}
