package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nexusconnect-backend/events"
	"nexusconnect-backend/models"
	"nexusconnect-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Listing bounds
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
	MaxRating        = 5.0
)

var statusMessages = map[models.ProfileStatus]string{
	models.StatusDraft:       "Profile saved as draft.",
	models.StatusPublished:   "Profile published!",
	models.StatusDeactivated: "Profile deactivated.",
}

// EntrepreneurService handles business logic for entrepreneur profiles
type EntrepreneurService struct {
	profiles ProfileStore
	accounts AccountFlagStore
	drafts   DraftStore
	events   events.Publisher
	log      *zap.Logger
	now      func() time.Time
}

// EntrepreneurServiceOption is a functional option for EntrepreneurService
type EntrepreneurServiceOption func(*EntrepreneurService)

// WithProfileStore sets the profile store
func WithProfileStore(store ProfileStore) EntrepreneurServiceOption {
	return func(s *EntrepreneurService) {
		s.profiles = store
	}
}

// WithAccountFlagStore sets the store that tracks has_profile
func WithAccountFlagStore(store AccountFlagStore) EntrepreneurServiceOption {
	return func(s *EntrepreneurService) {
		s.accounts = store
	}
}

// WithDraftCleanup deletes the caller's draft once the profile is created
func WithDraftCleanup(store DraftStore) EntrepreneurServiceOption {
	return func(s *EntrepreneurService) {
		s.drafts = store
	}
}

// WithEventPublisher sets the publisher for status events
func WithEventPublisher(p events.Publisher) EntrepreneurServiceOption {
	return func(s *EntrepreneurService) {
		s.events = p
	}
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) EntrepreneurServiceOption {
	return func(s *EntrepreneurService) {
		s.log = log
	}
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) EntrepreneurServiceOption {
	return func(s *EntrepreneurService) {
		s.now = now
	}
}

// NewEntrepreneurService creates a new entrepreneur service
func NewEntrepreneurService(opts ...EntrepreneurServiceOption) *EntrepreneurService {
	s := &EntrepreneurService{
		events: events.NopPublisher{},
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateOwn creates the caller's profile in draft status
func (s *EntrepreneurService) CreateOwn(ctx context.Context, userID uuid.UUID, in *models.EntrepreneurCreate) (*models.EntrepreneurProfile, error) {
	if s.profiles == nil {
		return nil, ErrServiceNotReady
	}

	exists, err := s.profiles.ExistsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if exists {
		return nil, ErrProfileExists
	}

	profile, err := s.profiles.Create(ctx, userID, in, models.StatusDraft, s.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.setHasProfile(ctx, userID, true)

	if s.drafts != nil {
		if err := s.drafts.Delete(ctx, userID); err != nil {
			s.log.Warn("failed to delete draft after profile creation",
				zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	s.log.Info("entrepreneur profile created",
		zap.String("user_id", userID.String()),
		zap.String("profile_id", profile.ID.String()),
	)
	return NormalizeProfile(profile), nil
}

// GetOwn returns the caller's full profile
func (s *EntrepreneurService) GetOwn(ctx context.Context, userID uuid.UUID) (*models.EntrepreneurProfile, error) {
	if s.profiles == nil {
		return nil, ErrServiceNotReady
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, profileError("get profile", err)
	}
	return NormalizeProfile(profile), nil
}

// GetPublic returns a published profile without contact details
func (s *EntrepreneurService) GetPublic(ctx context.Context, id uuid.UUID) (*models.EntrepreneurPublic, error) {
	if s.profiles == nil {
		return nil, ErrServiceNotReady
	}
	profile, err := s.profiles.GetPublicByID(ctx, id)
	if err != nil {
		return nil, profileError("get public profile", err)
	}
	return NormalizePublic(profile), nil
}

// UpdateOwn applies a partial patch to the caller's profile. Empty patches
// and patches touching locked fields are rejected before any store call.
func (s *EntrepreneurService) UpdateOwn(ctx context.Context, userID uuid.UUID, patch *models.EntrepreneurUpdate) (*models.EntrepreneurProfile, error) {
	if s.profiles == nil {
		return nil, ErrServiceNotReady
	}

	fields, err := checkPatch(patch)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.UpdateByUserID(ctx, userID, fields)
	if err != nil {
		return nil, profileError("update profile", err)
	}
	return NormalizeProfile(profile), nil
}

// UpdateByID applies a partial patch to profile id on behalf of its owner
func (s *EntrepreneurService) UpdateByID(ctx context.Context, id, requesterID uuid.UUID, patch *models.EntrepreneurUpdate) (*models.EntrepreneurProfile, error) {
	if s.profiles == nil {
		return nil, ErrServiceNotReady
	}

	fields, err := checkPatch(patch)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwner(ctx, id, requesterID); err != nil {
		return nil, err
	}

	profile, err := s.profiles.UpdateByID(ctx, id, fields)
	if err != nil {
		return nil, profileError("update profile", err)
	}
	return NormalizeProfile(profile), nil
}

func checkPatch(patch *models.EntrepreneurUpdate) (map[string]interface{}, error) {
	if patch == nil {
		return nil, ErrEmptyUpdate
	}
	fields := patch.Fields()
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}
	if err := CheckLockedFields(fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// DeleteOwn removes the caller's profile
func (s *EntrepreneurService) DeleteOwn(ctx context.Context, userID uuid.UUID) error {
	if s.profiles == nil {
		return ErrServiceNotReady
	}
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil {
		return profileError("delete profile", err)
	}
	s.setHasProfile(ctx, userID, false)
	return nil
}

// DeleteByID removes profile id when requesterID owns it
func (s *EntrepreneurService) DeleteByID(ctx context.Context, id, requesterID uuid.UUID) error {
	if s.profiles == nil {
		return ErrServiceNotReady
	}
	if err := s.requireOwner(ctx, id, requesterID); err != nil {
		return err
	}
	if err := s.profiles.DeleteByID(ctx, id); err != nil {
		return profileError("delete profile", err)
	}
	s.setHasProfile(ctx, requesterID, false)
	return nil
}

func (s *EntrepreneurService) requireOwner(ctx context.Context, id, requesterID uuid.UUID) error {
	owner, err := s.profiles.GetOwnerID(ctx, id)
	if err != nil {
		return profileError("load profile owner", err)
	}
	if owner != requesterID {
		return ErrForbidden
	}
	return nil
}

// SetStatus moves the caller's profile to target. Every state is reachable
// from every other; only the value is checked.
func (s *EntrepreneurService) SetStatus(ctx context.Context, userID uuid.UUID, target string) (*models.StatusChange, error) {
	if s.profiles == nil {
		return nil, ErrServiceNotReady
	}

	status := models.ProfileStatus(target)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	profile, err := s.profiles.UpdateByUserID(ctx, userID, map[string]interface{}{"status": string(status)})
	if err != nil {
		return nil, profileError("update status", err)
	}

	event := events.StatusChanged{
		ProfileID: profile.ID,
		UserID:    userID,
		Status:    string(status),
		ChangedAt: s.now().UTC(),
	}
	if err := s.events.Publish(ctx, events.TopicEntrepreneurStatusChanged, profile.ID.String(), event); err != nil {
		s.log.Warn("failed to publish status event", zap.String("profile_id", profile.ID.String()), zap.Error(err))
	}

	return &models.StatusChange{Status: status, Message: statusMessages[status]}, nil
}

// ListProfilesRequest carries the raw listing parameters
type ListProfilesRequest struct {
	Search      string
	CountryCode string
	City        string
	ProfileType string
	// Tags is the comma-separated tag list; nil when the parameter is absent.
	Tags      *string
	MinRating *float64
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// List returns one page of published profiles. A search term without
// matches, or a tags parameter with no usable tag, yields an empty page
// without running the listing query.
func (s *EntrepreneurService) List(ctx context.Context, req ListProfilesRequest) ([]*models.EntrepreneurPublic, error) {
	if s.profiles == nil {
		return nil, ErrServiceNotReady
	}

	filter, err := buildFilter(req)
	if err != nil {
		return nil, err
	}

	empty := make([]*models.EntrepreneurPublic, 0)
	if req.Tags != nil && len(filter.Tags) == 0 {
		return empty, nil
	}

	if filter.Search != "" {
		ids, err := s.profiles.SearchPublishedIDs(ctx, filter.Search)
		if err != nil {
			return nil, fmt.Errorf("failed to search profiles: %w", err)
		}
		if len(ids) == 0 {
			return empty, nil
		}
		filter.IDs = ids
	}

	profiles, err := s.profiles.ListPublic(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	for _, p := range profiles {
		NormalizePublic(p)
	}
	return profiles, nil
}

func buildFilter(req ListProfilesRequest) (models.ProfileFilter, error) {
	if req.Limit < 1 || req.Limit > MaxListLimit {
		return models.ProfileFilter{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidFilter, MaxListLimit)
	}
	if req.Offset < 0 {
		return models.ProfileFilter{}, fmt.Errorf("%w: offset must be >= 0", ErrInvalidFilter)
	}
	if req.MinRating != nil && (*req.MinRating < 0 || *req.MinRating > MaxRating) {
		return models.ProfileFilter{}, fmt.Errorf("%w: min_rating must be between 0 and 5", ErrInvalidFilter)
	}

	filter := models.ProfileFilter{
		Search:      strings.TrimSpace(req.Search),
		CountryCode: models.NormalizeCountryCode(req.CountryCode),
		City:        strings.TrimSpace(req.City),
		ProfileType: strings.TrimSpace(req.ProfileType),
		MinRating:   req.MinRating,
		SortBy:      "created_at",
		Ascending:   strings.EqualFold(req.SortOrder, "asc"),
		Limit:       req.Limit,
		Offset:      req.Offset,
	}
	if req.SortBy == "rating" {
		filter.SortBy = "rating"
	}
	if req.Tags != nil {
		for _, tag := range strings.Split(*req.Tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}
	return filter, nil
}

// GetContact reveals the contact details of a published profile
func (s *EntrepreneurService) GetContact(ctx context.Context, id uuid.UUID) (*models.ContactInfo, error) {
	if s.profiles == nil {
		return nil, ErrServiceNotReady
	}
	info, err := s.profiles.GetContactInfo(ctx, id)
	if err != nil {
		return nil, profileError("get contact info", err)
	}
	return info, nil
}

// setHasProfile is best effort: the profile row is already written.
func (s *EntrepreneurService) setHasProfile(ctx context.Context, userID uuid.UUID, has bool) {
	if s.accounts == nil {
		return
	}
	if err := s.accounts.SetHasProfile(ctx, userID, has); err != nil {
		s.log.Warn("failed to update has_profile",
			zap.String("user_id", userID.String()),
			zap.Bool("has_profile", has),
			zap.Error(err),
		)
	}
}

func profileError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrProfileNotFound
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
