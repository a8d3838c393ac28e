package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/mobilitymap/internal/core/domain"
)

// buildSchema creates the GraphQL schema over the published render result.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	recordType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MobilityRecord",
		Fields: graphql.Fields{
			"country":       &graphql.Field{Type: graphql.String},
			"raw_country":   &graphql.Field{Type: graphql.String},
			"student_count": &graphql.Field{Type: graphql.Int},
			"location":      &graphql.Field{Type: geoPointType},
			"popup": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(domain.MobilityRecord); ok {
						return r.PopupText(), nil
					}
					return nil, nil
				},
			},
		},
	})

	countryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Country",
		Fields: graphql.Fields{
			"country":  &graphql.Field{Type: graphql.String},
			"students": &graphql.Field{Type: graphql.Int},
			"records":  &graphql.Field{Type: graphql.Int},
			"matched":  &graphql.Field{Type: graphql.Boolean},
		},
	})

	summaryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Summary",
		Fields: graphql.Fields{
			"records":       &graphql.Field{Type: graphql.Int},
			"countries":     &graphql.Field{Type: graphql.Int},
			"students":      &graphql.Field{Type: graphql.Int},
			"unmatched":     &graphql.Field{Type: graphql.Int},
			"boundaries":    &graphql.Field{Type: graphql.Int},
			"mapping_set":   &graphql.Field{Type: graphql.String},
			"artifact_url":  &graphql.Field{Type: graphql.String},
			"artifact_size": &graphql.Field{Type: graphql.Int},
			"rendered_at": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if s, ok := p.Source.(Summary); ok {
						return s.RenderedAt.Format(time.RFC3339), nil
					}
					return nil, nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"records": &graphql.Field{
				Type:        graphql.NewList(recordType),
				Description: "Reconciled mobility records in input order",
				Args: graphql.FieldConfigArgument{
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: defaultPageLimit},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					offset, _ := p.Args["offset"].(int)
					limit, _ := p.Args["limit"].(int)
					if limit > maxPageLimit {
						limit = maxPageLimit
					}
					records, _ := deps.Atlas.Records(offset, limit)
					return records, nil
				},
			},
			"countries": &graphql.Field{
				Type:        graphql.NewList(countryType),
				Description: "Student totals per reconciled country",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Atlas.Countries(), nil
				},
			},
			"unmatched": &graphql.Field{
				Type:        graphql.NewList(graphql.String),
				Description: "Reconciled names without a boundary feature",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Atlas.Unmatched(), nil
				},
			},
			"summary": &graphql.Field{
				Type: summaryType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return buildSummary(deps), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil || req.Query == "" {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})
		if len(result.Errors) > 0 {
			LoggerFromCtx(c.UserContext()).Warn("graphql query failed",
				"errors", len(result.Errors),
				"first", result.Errors[0].Message,
			)
		}

		return c.JSON(result)
	}
}
