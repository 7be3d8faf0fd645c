package service

import (
	"context"
	"errors"
	"fmt"

	"nexusconnect-backend/models"
	"nexusconnect-backend/repository"

	"github.com/google/uuid"
)

// DraftService handles the autosaved profile form
type DraftService struct {
	drafts DraftStore
}

// DraftServiceOption is a functional option for DraftService
type DraftServiceOption func(*DraftService)

// DraftWithStore sets the draft store
func DraftWithStore(store DraftStore) DraftServiceOption {
	return func(s *DraftService) {
		s.drafts = store
	}
}

// NewDraftService creates a new draft service
func NewDraftService(opts ...DraftServiceOption) *DraftService {
	s := &DraftService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the caller's draft, or an empty draft at step 1.
func (s *DraftService) Get(ctx context.Context, userID uuid.UUID) (*models.EntrepreneurDraft, error) {
	if s.drafts == nil {
		return nil, ErrServiceNotReady
	}

	draft, err := s.drafts.Get(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.EmptyDraft(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if draft.FormData == nil {
		draft.FormData = make(models.FormData)
	}
	return draft, nil
}

// Save replaces the caller's draft. current_step defaults to 1.
func (s *DraftService) Save(ctx context.Context, userID uuid.UUID, payload *models.DraftPayload) (*models.EntrepreneurDraft, error) {
	if s.drafts == nil {
		return nil, ErrServiceNotReady
	}

	step := 1
	if payload.CurrentStep != nil {
		step = *payload.CurrentStep
	}
	formData := models.FormData(payload.FormData)
	if formData == nil {
		formData = make(models.FormData)
	}

	draft, err := s.drafts.Upsert(ctx, userID, formData, step)
	if err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	if draft == nil {
		draft = &models.EntrepreneurDraft{UserID: userID, FormData: formData, CurrentStep: step}
	}
	return draft, nil
}

// Delete removes the caller's draft. Missing drafts are not an error.
func (s *DraftService) Delete(ctx context.Context, userID uuid.UUID) error {
	if s.drafts == nil {
		return ErrServiceNotReady
	}
	if err := s.drafts.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
