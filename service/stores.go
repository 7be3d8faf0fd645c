package service

import (
	"context"
	"time"

	"nexusconnect-backend/models"

	"github.com/google/uuid"
)

// ProfileStore is the persistence used by EntrepreneurService.
// *repository.EntrepreneurRepository satisfies it.
type ProfileStore interface {
	ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, userID uuid.UUID, in *models.EntrepreneurCreate, status models.ProfileStatus, firstSavedAt time.Time) (*models.EntrepreneurProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.EntrepreneurProfile, error)
	GetPublicByID(ctx context.Context, id uuid.UUID) (*models.EntrepreneurPublic, error)
	GetOwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	UpdateByUserID(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) (*models.EntrepreneurProfile, error)
	UpdateByID(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.EntrepreneurProfile, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	SearchPublishedIDs(ctx context.Context, term string) ([]uuid.UUID, error)
	ListPublic(ctx context.Context, filter models.ProfileFilter) ([]*models.EntrepreneurPublic, error)
	GetContactInfo(ctx context.Context, id uuid.UUID) (*models.ContactInfo, error)
	CountPublished(ctx context.Context) (int64, error)
	CountPublishedCountries(ctx context.Context) (int64, error)
}

// AccountFlagStore keeps user_profiles.has_profile in step with the profile row
type AccountFlagStore interface {
	SetHasProfile(ctx context.Context, userID uuid.UUID, has bool) error
}

// UserStore is the persistence used by AuthService
type UserStore interface {
	AccountFlagStore
	Create(ctx context.Context, email, passwordHash string, firstName, lastName *string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAccount(ctx context.Context, userID uuid.UUID) (*models.Account, error)
	Count(ctx context.Context) (int64, error)
}

// DraftStore is the persistence used by DraftService
type DraftStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.EntrepreneurDraft, error)
	Upsert(ctx context.Context, userID uuid.UUID, formData models.FormData, step int) (*models.EntrepreneurDraft, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// ContactStore is the persistence used by ContactService
type ContactStore interface {
	Create(ctx context.Context, in *models.ContactMessageCreate) (*models.ContactMessage, error)
}
