// Package vulnerabilities defines the GraphQL types and queries for
// vulnerability records.
package vulnerabilities

import (
	gql "github.com/graphql-go/graphql"
)

// VulnerabilityType mirrors the REST record shape.
var VulnerabilityType = gql.NewObject(gql.ObjectConfig{
	Name: "Vulnerability",
	Fields: gql.Fields{
		"cveId":           &gql.Field{Type: gql.String},
		"description":     &gql.Field{Type: gql.String},
		"cvssScore":       &gql.Field{Type: gql.Float},
		"cvssSeverity":    &gql.Field{Type: gql.String},
		"epssScore":       &gql.Field{Type: gql.Float},
		"epssPercentile":  &gql.Field{Type: gql.Float},
		"isKEV":           &gql.Field{Type: gql.Boolean},
		"kevDateAdded":    &gql.Field{Type: gql.String},
		"kevDueDate":      &gql.Field{Type: gql.String},
		"compositeScore":  &gql.Field{Type: gql.Float},
		"affectedVendor":  &gql.Field{Type: gql.String},
		"affectedProduct": &gql.Field{Type: gql.String},
		"cweId":           &gql.Field{Type: gql.String},
		"references":      &gql.Field{Type: gql.NewList(gql.String)},
		"publishedDate":   &gql.Field{Type: gql.String},
		"lastModified":    &gql.Field{Type: gql.String},
		"updatedAt":       &gql.Field{Type: gql.String},
	},
})
