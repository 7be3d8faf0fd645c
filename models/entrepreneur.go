package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProfileStatus represents the publication state of an entrepreneur profile
type ProfileStatus string

const (
	StatusDraft       ProfileStatus = "draft"
	StatusPublished   ProfileStatus = "published"
	StatusDeactivated ProfileStatus = "deactivated"
)

// Valid reports whether s is one of the three known states.
// Every state may move to every other state; only the value is checked.
func (s ProfileStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusDeactivated:
		return true
	}
	return false
}

// Scan implements sql.Scanner so a NULL status reads as "".
func (s *ProfileStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = ""
	case string:
		*s = ProfileStatus(v)
	case []byte:
		*s = ProfileStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into ProfileStatus", value)
	}
	return nil
}

// ProfileType represents the kind of business behind a profile
type ProfileType string

const (
	ProfileTypeEntreprise   ProfileType = "entreprise"
	ProfileTypeFreelance    ProfileType = "freelance"
	ProfileTypePME          ProfileType = "pme"
	ProfileTypeArtisan      ProfileType = "artisan"
	ProfileTypeONG          ProfileType = "ONG"
	ProfileTypeCabinet      ProfileType = "cabinet"
	ProfileTypeOrganisation ProfileType = "organisation"
	ProfileTypeAutre        ProfileType = "autre"
)

// PortfolioItem is one entry of a profile portfolio
type PortfolioItem struct {
	Type  string `json:"type" validate:"required,oneof=image link"`
	Value string `json:"value" validate:"required"`
}

// Portfolio is stored as JSONB
type Portfolio []PortfolioItem

// Value implements driver.Valuer for JSONB
func (p Portfolio) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB
func (p *Portfolio) Scan(value interface{}) error {
	if value == nil {
		*p = make(Portfolio, 0)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*p = make(Portfolio, 0)
		return nil
	}

	if len(bytes) == 0 {
		*p = make(Portfolio, 0)
		return nil
	}

	return json.Unmarshal(bytes, p)
}

// EntrepreneurPublic is the public projection of a profile: no contact details.
type EntrepreneurPublic struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	ProfileType  ProfileType   `json:"profile_type" db:"profile_type"`
	FirstName    string        `json:"first_name" db:"first_name"`
	LastName     string        `json:"last_name" db:"last_name"`
	CompanyName  *string       `json:"company_name" db:"company_name"`
	ActivityName *string       `json:"activity_name" db:"activity_name"`
	LogoURL      *string       `json:"logo_url" db:"logo_url"`
	Description  string        `json:"description" db:"description"`
	Tags         []string      `json:"tags" db:"tags"`
	CountryCode  string        `json:"country_code" db:"country_code"`
	City         string        `json:"city" db:"city"`
	Website      *string       `json:"website" db:"website"`
	Portfolio    Portfolio     `json:"portfolio" db:"portfolio"`
	Rating       float64       `json:"rating" db:"rating"`
	ReviewCount  int           `json:"review_count" db:"review_count"`
	IsPremium    bool          `json:"is_premium" db:"is_premium"`
	IsActive     *bool         `json:"is_active,omitempty" db:"is_active"`
	Status       ProfileStatus `json:"status" db:"status"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// EntrepreneurProfile is the full record, returned only to its owner.
type EntrepreneurProfile struct {
	EntrepreneurPublic

	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	Phone        string     `json:"phone" db:"phone"`
	Whatsapp     string     `json:"whatsapp" db:"whatsapp"`
	Email        string     `json:"email" db:"email"`
	PremiumUntil *time.Time `json:"premium_until" db:"premium_until"`
	FirstSavedAt *time.Time `json:"first_saved_at,omitempty" db:"first_saved_at"`
}

// ContactInfo is returned by the privileged contact lookup
type ContactInfo struct {
	Phone    string `json:"phone"`
	Whatsapp string `json:"whatsapp"`
	Email    string `json:"email"`
}

// EntrepreneurCreate is the payload for creating the caller's profile
type EntrepreneurCreate struct {
	ProfileType  ProfileType     `json:"profile_type" validate:"required,oneof=entreprise freelance pme artisan ONG cabinet organisation autre"`
	FirstName    string          `json:"first_name" validate:"required,min=1,max=100"`
	LastName     string          `json:"last_name" validate:"required,min=1,max=100"`
	CompanyName  *string         `json:"company_name" validate:"omitempty,max=200"`
	ActivityName *string         `json:"activity_name" validate:"omitempty,max=200"`
	Description  string          `json:"description" validate:"required,min=1,max=200"`
	Tags         []string        `json:"tags" validate:"max=5"`
	Phone        string          `json:"phone" validate:"required,min=1,max=50"`
	Whatsapp     string          `json:"whatsapp" validate:"required,min=1,max=50"`
	Email        string          `json:"email" validate:"required,email"`
	CountryCode  string          `json:"country_code" validate:"required,len=2"`
	City         string          `json:"city" validate:"required,min=1,max=100"`
	Website      *string         `json:"website" validate:"omitempty,max=500"`
	Portfolio    []PortfolioItem `json:"portfolio" validate:"dive"`
	LogoURL      *string         `json:"logo_url"`
	IsActive     *bool           `json:"is_active"`
}

// EntrepreneurUpdate is a partial patch; nil fields are left untouched
type EntrepreneurUpdate struct {
	ProfileType  *ProfileType     `json:"profile_type" validate:"omitnil,oneof=entreprise freelance pme artisan ONG cabinet organisation autre"`
	FirstName    *string          `json:"first_name" validate:"omitnil,min=1,max=100"`
	LastName     *string          `json:"last_name" validate:"omitnil,min=1,max=100"`
	CompanyName  *string          `json:"company_name" validate:"omitnil,max=200"`
	ActivityName *string          `json:"activity_name" validate:"omitnil,max=200"`
	Description  *string          `json:"description" validate:"omitnil,min=1,max=200"`
	Tags         *[]string        `json:"tags" validate:"omitnil,max=5"`
	Phone        *string          `json:"phone" validate:"omitnil,min=1,max=50"`
	Whatsapp     *string          `json:"whatsapp" validate:"omitnil,min=1,max=50"`
	Email        *string          `json:"email" validate:"omitnil,email"`
	CountryCode  *string          `json:"country_code" validate:"omitnil,len=2"`
	City         *string          `json:"city" validate:"omitnil,min=1,max=100"`
	Website      *string          `json:"website" validate:"omitnil,max=500"`
	Portfolio    *[]PortfolioItem `json:"portfolio" validate:"omitnil,dive"`
	LogoURL      *string          `json:"logo_url"`
	IsActive     *bool            `json:"is_active"`
}

// Fields returns the set fields keyed by column name.
func (u *EntrepreneurUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if u.ProfileType != nil {
		fields["profile_type"] = string(*u.ProfileType)
	}
	setString(fields, "first_name", u.FirstName)
	setString(fields, "last_name", u.LastName)
	setString(fields, "company_name", u.CompanyName)
	setString(fields, "activity_name", u.ActivityName)
	setString(fields, "description", u.Description)
	if u.Tags != nil {
		fields["tags"] = *u.Tags
	}
	setString(fields, "phone", u.Phone)
	setString(fields, "whatsapp", u.Whatsapp)
	setString(fields, "email", u.Email)
	if u.CountryCode != nil {
		fields["country_code"] = NormalizeCountryCode(*u.CountryCode)
	}
	setString(fields, "city", u.City)
	setString(fields, "website", u.Website)
	if u.Portfolio != nil {
		fields["portfolio"] = Portfolio(*u.Portfolio)
	}
	setString(fields, "logo_url", u.LogoURL)
	if u.IsActive != nil {
		fields["is_active"] = *u.IsActive
	}
	return fields
}

// NormalizeCountryCode trims and upper-cases an ISO country code.
func NormalizeCountryCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func setString(fields map[string]interface{}, key string, v *string) {
	if v != nil {
		fields[key] = *v
	}
}

// ProfileFilter holds the listing filters for the public directory
type ProfileFilter struct {
	Search      string
	CountryCode string
	City        string
	ProfileType string
	Tags        []string
	MinRating   *float64
	SortBy      string
	Ascending   bool
	Limit       int
	Offset      int
	IDs         []uuid.UUID
}

// StatusChange is the confirmation returned after a status update
type StatusChange struct {
	Status  ProfileStatus `json:"status"`
	Message string        `json:"message"`
}
