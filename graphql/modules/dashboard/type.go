// Package dashboard defines the GraphQL types for the dashboard queries.
package dashboard

import (
	gql "github.com/graphql-go/graphql"
)

// StatsType represents the aggregate counters for the top cards
var StatsType = gql.NewObject(gql.ObjectConfig{
	Name: "Stats",
	Fields: gql.Fields{
		"totalCVEs":    &gql.Field{Type: gql.Int},
		"kevCount":     &gql.Field{Type: gql.Int},
		"avgEPSS":      &gql.Field{Type: gql.Float},
		"cvesThisWeek": &gql.Field{Type: gql.Int},
	},
})

// TrendBucketType represents one month of KEV additions
var TrendBucketType = gql.NewObject(gql.ObjectConfig{
	Name: "TrendBucket",
	Fields: gql.Fields{
		"month": &gql.Field{Type: gql.String},
		"count": &gql.Field{Type: gql.Int},
	},
})
