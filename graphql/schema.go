// Package graphql assembles the root schema from the per-module query fields.
package graphql

import (
	gql "github.com/graphql-go/graphql"

	"github.com/sentinelvuln/sentinel-backend/graphql/modules/dashboard"
	"github.com/sentinelvuln/sentinel-backend/graphql/modules/vulnerabilities"
	"github.com/sentinelvuln/sentinel-backend/internal/query"
)

var engine *query.Engine

// InitEngine stores the query engine for the resolvers.
func InitEngine(e *query.Engine) {
	engine = e
}

// CreateSchema builds the read-only root query schema.
func CreateSchema() (gql.Schema, error) {
	fields := gql.Fields{}

	for name, field := range vulnerabilities.GetQueryFields(engine) {
		fields[name] = field
	}
	for name, field := range dashboard.GetQueryFields(engine) {
		fields[name] = field
	}

	rootQuery := gql.ObjectConfig{Name: "Query", Fields: fields}

	return gql.NewSchema(gql.SchemaConfig{
		Query: gql.NewObject(rootQuery),
	})
}
