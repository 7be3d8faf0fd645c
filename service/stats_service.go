package service

import (
	"context"
	"fmt"

	"nexusconnect-backend/models"
)

// UserCounter counts registered users
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

// ProfileCounter counts published profiles
type ProfileCounter interface {
	CountPublished(ctx context.Context) (int64, error)
	CountPublishedCountries(ctx context.Context) (int64, error)
}

// StatsService aggregates platform counters
type StatsService struct {
	users    UserCounter
	profiles ProfileCounter
}

// NewStatsService creates a new stats service
func NewStatsService(users UserCounter, profiles ProfileCounter) *StatsService {
	return &StatsService{users: users, profiles: profiles}
}

// Platform returns the counters shown on the landing page
func (s *StatsService) Platform(ctx context.Context) (*models.PlatformStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	profiles, err := s.profiles.CountPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count profiles: %w", err)
	}
	countries, err := s.profiles.CountPublishedCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count countries: %w", err)
	}

	return &models.PlatformStats{
		TotalUsers:         users,
		TotalEntrepreneurs: profiles,
		CountriesCovered:   countries,
	}, nil
}

// Contact returns the counters shown on the contact page. Views and
// problems are not tracked and always read zero.
func (s *StatsService) Contact(ctx context.Context) (*models.ContactStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to retrieve stats: %w", err)
	}
	profiles, err := s.profiles.CountPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to retrieve stats: %w", err)
	}
	return &models.ContactStats{TotalUsers: users, TotalProfiles: profiles}, nil
}
