package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// buildSchema creates the GraphQL schema wired to the profile service.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	pointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProfilePoint",
		Fields: graphql.Fields{
			"x": &graphql.Field{Type: graphql.Float, Description: "Cumulative distance in metres"},
			"z": &graphql.Field{Type: graphql.Float, Description: "Elevation"},
		},
	})

	boundsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BoundingRange",
		Fields: graphql.Fields{
			"z_min":   &graphql.Field{Type: graphql.Int},
			"z_max":   &graphql.Field{Type: graphql.Int},
			"x_start": &graphql.Field{Type: graphql.Float},
			"x_end":   &graphql.Field{Type: graphql.Float},
		},
	})

	profileType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Profile",
		Fields: graphql.Fields{
			"points":    &graphql.Field{Type: graphql.NewList(pointType)},
			"bounds":    &graphql.Field{Type: boundsType},
			"gridlines": &graphql.Field{Type: graphql.Int},
			"length_m":  &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"profile": &graphql.Field{
				Type:        profileType,
				Description: "Flatten a GeoJSON elevation profile line",
				Args: graphql.FieldConfigArgument{
					"geojson": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					raw, _ := p.Args["geojson"].(string)
					sum, err := deps.Profiles.Profile(p.Context, []byte(raw))
					if err != nil {
						return nil, errors.New(conversionFailedMessage)
					}
					return map[string]interface{}{
						"points":    sum.Points,
						"bounds":    sum.Bounds,
						"gridlines": sum.Gridlines,
						"length_m":  sum.Length,
					}, nil
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
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
