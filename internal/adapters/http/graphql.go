package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/stagewise/venuescout/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	venueType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Venue",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.String},
			"slug":     &graphql.Field{Type: graphql.String},
			"name":     &graphql.Field{Type: graphql.String},
			"location": &graphql.Field{Type: geoPointType},
			"city":     &graphql.Field{Type: graphql.String},
			"region":   &graphql.Field{Type: graphql.String},
			"capacity": &graphql.Field{Type: graphql.Int},
			"distance": &graphql.Field{Type: graphql.Float},
		},
	})

	artistType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Artist",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.String},
			"slug":    &graphql.Field{Type: graphql.String},
			"name":    &graphql.Field{Type: graphql.String},
			"genre":   &graphql.Field{Type: graphql.String},
			"tracked": &graphql.Field{Type: graphql.Boolean},
		},
	})

	stopType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TourStop",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.String},
			"location": &graphql.Field{Type: geoPointType},
			"date":     &graphql.Field{Type: graphql.String},
			"label":    &graphql.Field{Type: graphql.String},
		},
	})

	routeFitType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RouteFit",
		Fields: graphql.Fields{
			"origin_stop":       &graphql.Field{Type: stopType},
			"destination_stop":  &graphql.Field{Type: stopType},
			"direct_distance":   &graphql.Field{Type: graphql.Float},
			"distance_to_venue": &graphql.Field{Type: graphql.Float},
			"detour_distance":   &graphql.Field{Type: graphql.Float},
			"extra_distance":    &graphql.Field{Type: graphql.Float},
			"days_available":    &graphql.Field{Type: graphql.Int},
			"routing_score":     &graphql.Field{Type: graphql.Float},
		},
	})

	discoveryResultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "DiscoveryResult",
		Fields: graphql.Fields{
			"artist":   &graphql.Field{Type: graphql.String},
			"best_fit": &graphql.Field{Type: routeFitType},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"venues": &graphql.Field{
				Type:        graphql.NewList(venueType),
				Description: "List all venues",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Venues.List(p.Context)
				},
			},
			"venue": &graphql.Field{
				Type:        venueType,
				Description: "Get a venue by slug",
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Venues.GetBySlug(p.Context, p.Args["slug"].(string))
				},
			},
			"venuesNearby": &graphql.Field{
				Type:        graphql.NewList(venueType),
				Description: "Find venues near a location (radius in miles)",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 25.0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["lat"].(float64)
					lon := p.Args["lon"].(float64)
					radius := p.Args["radius"].(float64)
					limit := p.Args["limit"].(int)
					return deps.Venues.FindNearby(p.Context, lat, lon, radius, limit)
				},
			},
			"artists": &graphql.Field{
				Type:        graphql.NewList(artistType),
				Description: "List all tracked artists",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Artists.ListTracked(p.Context)
				},
			},
			"artist": &graphql.Field{
				Type:        artistType,
				Description: "Get an artist by slug",
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Artists.GetBySlug(p.Context, p.Args["slug"].(string))
				},
			},
			"discovery": &graphql.Field{
				Type:        graphql.NewList(discoveryResultType),
				Description: "Rank touring artists routable through a venue",
				Args: graphql.FieldConfigArgument{
					"venue_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"radius":   &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 50.0},
					"start":    &graphql.ArgumentConfig{Type: graphql.String},
					"end":      &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					venueID := p.Args["venue_id"].(string)
					radius := p.Args["radius"].(float64)

					now := time.Now().UTC().Truncate(24 * time.Hour)
					window := domain.DateWindow{Start: now, End: now.AddDate(0, 0, defaultDiscoveryWindowDays)}
					if raw, ok := p.Args["start"].(string); ok && raw != "" {
						t, err := time.Parse(time.DateOnly, raw)
						if err != nil {
							return nil, err
						}
						window.Start = t
					}
					if raw, ok := p.Args["end"].(string); ok && raw != "" {
						t, err := time.Parse(time.DateOnly, raw)
						if err != nil {
							return nil, err
						}
						window.End = t
					}

					return deps.Discovery.DiscoverForVenue(p.Context, venueID, radius, window)
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
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
