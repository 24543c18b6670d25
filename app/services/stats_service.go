package services

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/foodshare/app/models"
	"github.com/shashiranjanraj/foodshare/app/repositories"
	"github.com/shashiranjanraj/foodshare/pkg/cache"
	"github.com/shashiranjanraj/foodshare/pkg/logger"
)

const statsCacheTTL = 60 * time.Second

// DashboardStats is the role-shaped aggregate payload. Only the fields for
// the actor's role are populated; the rest are omitted from JSON.
type DashboardStats struct {
	Role models.Role `json:"role"`

	// FoodProvider: own listings.
	MyActiveListings      *int64 `json:"my_active_listings,omitempty"`
	MyDistributedListings *int64 `json:"my_distributed_listings,omitempty"`
	MyExpiringSoon        *int64 `json:"my_expiring_soon,omitempty"`

	// NGO/Volunteer, Individual: what can be requested.
	AvailableListings *int64 `json:"available_listings,omitempty"`
	ExpiringSoon      *int64 `json:"expiring_soon,omitempty"`

	// Admin: platform-wide.
	TotalListings       *int64 `json:"total_listings,omitempty"`
	ActiveListings      *int64 `json:"active_listings,omitempty"`
	DistributedListings *int64 `json:"distributed_listings,omitempty"`
	ExpiredListings     *int64 `json:"expired_listings,omitempty"`
}

type StatsService struct {
	listings *repositories.ListingRepository
}

func NewStatsService() *StatsService {
	return &StatsService{listings: repositories.NewListingRepository()}
}

// Dashboard computes the actor's role-specific counters, served from a short
// Redis cache keyed per user.
func (s *StatsService) Dashboard(actor *models.User) (DashboardStats, error) {
	key := fmt.Sprintf("stats:dashboard:%d", actor.ID)

	var cached DashboardStats
	if cache.Get(key, &cached) {
		return cached, nil
	}

	stats, err := s.compute(actor)
	if err != nil {
		return DashboardStats{}, err
	}
	if err := cache.Set(key, stats, statsCacheTTL); err != nil {
		logger.Warn("cache dashboard stats", "error", err)
	}
	return stats, nil
}

func (s *StatsService) compute(actor *models.User) (DashboardStats, error) {
	stats := DashboardStats{Role: actor.Role}

	switch actor.Role {
	case models.RoleFoodProvider:
		active, err := s.listings.CountOwnedExcluding(actor.ID, models.ListingDistributed)
		if err != nil {
			return stats, err
		}
		distributed, err := s.listings.CountOwnedWithStatus(actor.ID, models.ListingDistributed)
		if err != nil {
			return stats, err
		}
		expiring, err := s.listings.CountOwnedExpiringSoon(actor.ID)
		if err != nil {
			return stats, err
		}
		stats.MyActiveListings = &active
		stats.MyDistributedListings = &distributed
		stats.MyExpiringSoon = &expiring

	case models.RoleAdmin:
		total, err := s.listings.CountAll()
		if err != nil {
			return stats, err
		}
		active, err := s.listings.CountExcluding(models.ListingDistributed)
		if err != nil {
			return stats, err
		}
		distributed, err := s.listings.CountWithStatus(models.ListingDistributed)
		if err != nil {
			return stats, err
		}
		expired, err := s.listings.CountExpired()
		if err != nil {
			return stats, err
		}
		stats.TotalListings = &total
		stats.ActiveListings = &active
		stats.DistributedListings = &distributed
		stats.ExpiredListings = &expired

	default: // NGO/Volunteer, Individual
		available, err := s.listings.CountAvailable()
		if err != nil {
			return stats, err
		}
		expiring, err := s.listings.CountAvailableExpiringSoon()
		if err != nil {
			return stats, err
		}
		stats.AvailableListings = &available
		stats.ExpiringSoon = &expiring
	}

	return stats, nil
}
