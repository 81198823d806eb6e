package vulnerabilities

import (
	gql "github.com/graphql-go/graphql"

	"github.com/sentinelvuln/sentinel-backend/internal/query"
)

// GetQueryFields returns the vulnerability queries to be mounted in the root schema
func GetQueryFields(engine *query.Engine) gql.Fields {
	return gql.Fields{
		"vulnerabilities": &gql.Field{
			Type: gql.NewList(VulnerabilityType),
			Args: gql.FieldConfigArgument{
				"limit": &gql.ArgumentConfig{Type: gql.Int, DefaultValue: 20},
				"sort":  &gql.ArgumentConfig{Type: gql.String, DefaultValue: "score"},
			},
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				limit := p.Args["limit"].(int)
				sort := p.Args["sort"].(string)
				return ResolveVulnerabilities(p.Context, engine, sort, limit)
			},
		},
		"vulnerability": &gql.Field{
			Type: VulnerabilityType,
			Args: gql.FieldConfigArgument{
				"cveId": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
			},
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				cveID := p.Args["cveId"].(string)
				return ResolveVulnerability(p.Context, engine, cveID)
			},
		},
	}
}
