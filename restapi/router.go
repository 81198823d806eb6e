// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	gql "github.com/graphql-go/graphql"
	"go.uber.org/zap"

	"github.com/sentinelvuln/sentinel-backend/internal/ingest"
	"github.com/sentinelvuln/sentinel-backend/internal/query"
	"github.com/sentinelvuln/sentinel-backend/restapi/modules/admin"
	"github.com/sentinelvuln/sentinel-backend/restapi/modules/dashboard"
	"github.com/sentinelvuln/sentinel-backend/restapi/modules/vulnerabilities"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint. A
// non-zero ingestInterval starts the background ingestion ticker; runs can
// always be triggered manually through the admin endpoint.
func SetupRoutes(app *fiber.App, engine *query.Engine, pipeline *ingest.Pipeline, schema gql.Schema, ingestInterval time.Duration, log *zap.SugaredLogger) {

	if ingestInterval > 0 {
		go startIngestScheduler(pipeline, ingestInterval, log)
	}

	api := app.Group("/api")

	// GraphQL mirror of the read API
	api.Post("/graphql", GraphQLHandler(schema))

	// Vulnerability feed. Static routes are registered before the
	// parameterized detail route so /search and /top10 keep their paths.
	vulns := api.Group("/vulnerabilities")
	vulns.Get("/", vulnerabilities.List(engine))
	vulns.Get("/search", vulnerabilities.Search(engine))
	vulns.Get("/top10", vulnerabilities.Top10(engine))
	vulns.Get("/:cveId", vulnerabilities.Detail(engine))

	// Dashboard aggregates
	api.Get("/stats", dashboard.Stats(engine))
	api.Get("/trends", dashboard.Trends(engine))

	// Operational endpoints
	adminGroup := api.Group("/admin")
	adminGroup.Post("/ingest", admin.TriggerIngest(pipeline))

	log.Info("API routes initialized successfully")
}

func startIngestScheduler(pipeline *ingest.Pipeline, interval time.Duration, log *zap.SugaredLogger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		count, err := pipeline.Run(context.Background())
		if err != nil {
			log.Errorf("Scheduled ingestion failed: %v", err)
			continue
		}
		log.Infof("Scheduled ingestion complete: %d CVEs written", count)
	}
}
