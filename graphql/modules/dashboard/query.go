package dashboard

import (
	gql "github.com/graphql-go/graphql"

	"github.com/sentinelvuln/sentinel-backend/internal/query"
)

// GetQueryFields returns the dashboard queries to be mounted in the root schema
func GetQueryFields(engine *query.Engine) gql.Fields {
	return gql.Fields{
		"stats": &gql.Field{
			Type: StatsType,
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				return ResolveStats(p.Context, engine)
			},
		},
		"kevTrend": &gql.Field{
			Type: gql.NewList(TrendBucketType),
			Resolve: func(p gql.ResolveParams) (interface{}, error) {
				return ResolveKEVTrend(p.Context, engine)
			},
		},
	}
}
