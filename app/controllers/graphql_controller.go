package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	gql "github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/repositories"
	"github.com/shashiranjanraj/foodshare/app/services"
	"github.com/shashiranjanraj/foodshare/pkg/graphql"
	"github.com/shashiranjanraj/foodshare/pkg/logger"
	"github.com/shashiranjanraj/foodshare/pkg/response"
)

type actorCtxKey struct{}

func actorFrom(ctx context.Context) *models.User {
	actor, _ := ctx.Value(actorCtxKey{}).(*models.User)
	return actor
}

// GraphQLController serves the read-only query surface: listings (through
// the actor's visibility scope) and the actor's dashboard stats. All
// mutations stay on the REST endpoints.
type GraphQLController struct {
	schema   gql.Schema
	listings *services.ListingService
	stats    *services.StatsService
}

func NewGraphQLController() *GraphQLController {
	c := &GraphQLController{
		listings: services.NewListingService(),
		stats:    services.NewStatsService(),
	}

	userType := gql.NewObject(gql.ObjectConfig{
		Name: "User",
		Fields: gql.Fields{
			"id":           &gql.Field{Type: gql.Int},
			"full_name":    &gql.Field{Type: gql.String},
			"organization": &gql.Field{Type: gql.String},
			"role":         &gql.Field{Type: gql.String},
		},
	})

	listingType := gql.NewObject(gql.ObjectConfig{
		Name: "FoodListing",
		Fields: gql.Fields{
			"id":          &gql.Field{Type: gql.Int},
			"title":       &gql.Field{Type: gql.String},
			"description": &gql.Field{Type: gql.String},
			"quantity":    &gql.Field{Type: gql.Int},
			"location":    &gql.Field{Type: gql.String},
			"expiry_time": &gql.Field{Type: gql.DateTime},
			"status":      &gql.Field{Type: gql.String},
			"created_by": &gql.Field{
				Type: userType,
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					l, ok := p.Source.(models.FoodListing)
					if !ok || l.CreatedBy == nil {
						return nil, nil
					}
					return *l.CreatedBy, nil
				},
			},
		},
	})

	statsType := gql.NewObject(gql.ObjectConfig{
		Name: "DashboardStats",
		Fields: gql.Fields{
			"role":                    &gql.Field{Type: gql.String},
			"my_active_listings":      &gql.Field{Type: gql.Int},
			"my_distributed_listings": &gql.Field{Type: gql.Int},
			"my_expiring_soon":        &gql.Field{Type: gql.Int},
			"available_listings":      &gql.Field{Type: gql.Int},
			"expiring_soon":           &gql.Field{Type: gql.Int},
			"total_listings":          &gql.Field{Type: gql.Int},
			"active_listings":         &gql.Field{Type: gql.Int},
			"distributed_listings":    &gql.Field{Type: gql.Int},
			"expired_listings":        &gql.Field{Type: gql.Int},
		},
	})

	rootQuery := gql.NewObject(gql.ObjectConfig{
		Name: "RootQuery",
		Fields: gql.Fields{
			"listings": &gql.Field{
				Type: gql.NewList(listingType),
				Args: gql.FieldConfigArgument{
					"status": &gql.ArgumentConfig{Type: gql.String},
					"search": &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: c.resolveListings,
			},
			"listing": &gql.Field{
				Type: listingType,
				Args: gql.FieldConfigArgument{
					"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
				},
				Resolve: c.resolveListing,
			},
			"dashboard_stats": &gql.Field{
				Type:    statsType,
				Resolve: c.resolveStats,
			},
		},
	})

	schema, err := graphql.NewSchema(rootQuery)
	if err != nil {
		logger.Error("graphql: schema build failed", "error", err)
	}
	c.schema = schema
	return c
}

func (c *GraphQLController) resolveListings(p gql.ResolveParams) (interface{}, error) {
	actor := actorFrom(p.Context)
	if actor == nil {
		return nil, nil
	}

	filter := repositories.ListingFilter{}
	if s, ok := p.Args["status"].(string); ok {
		filter.Status = s
	}
	if s, ok := p.Args["search"].(string); ok {
		filter.Search = s
	}

	listings, _, err := c.listings.List(actor, filter)
	return listings, err
}

func (c *GraphQLController) resolveListing(p gql.ResolveParams) (interface{}, error) {
	actor := actorFrom(p.Context)
	if actor == nil {
		return nil, nil
	}

	id, _ := p.Args["id"].(int)
	listing, err := c.listings.Get(actor, uint(id))
	if err != nil {
		return nil, nil // absent and invisible look the same
	}
	return listing, nil
}

func (c *GraphQLController) resolveStats(p gql.ResolveParams) (interface{}, error) {
	actor := actorFrom(p.Context)
	if actor == nil {
		return nil, nil
	}
	stats, err := c.stats.Dashboard(actor)
	if err != nil {
		return nil, err
	}
	// Flatten so the pointer fields resolve as plain ints.
	return statsMap(stats), nil
}

func statsMap(s services.DashboardStats) map[string]interface{} {
	out := map[string]interface{}{"role": string(s.Role)}
	put := func(key string, v *int64) {
		if v != nil {
			out[key] = int(*v)
		}
	}
	put("my_active_listings", s.MyActiveListings)
	put("my_distributed_listings", s.MyDistributedListings)
	put("my_expiring_soon", s.MyExpiringSoon)
	put("available_listings", s.AvailableListings)
	put("expiring_soon", s.ExpiringSoon)
	put("total_listings", s.TotalListings)
	put("active_listings", s.ActiveListings)
	put("distributed_listings", s.DistributedListings)
	put("expired_listings", s.ExpiredListings)
	return out
}

func (c *GraphQLController) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req graphql.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid GraphQL request body")
		return
	}

	ctx := context.WithValue(r.Context(), actorCtxKey{}, actor)
	result := graphql.Do(ctx, c.schema, req)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result) //nolint:errcheck
}
