package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactStatus represents the triage state of a contact message
type ContactStatus string

const (
	ContactStatusNew     ContactStatus = "new"
	ContactStatusRead    ContactStatus = "read"
	ContactStatusReplied ContactStatus = "replied"
)

// ContactMessageCreate is the body of a contact form submission
type ContactMessageCreate struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=1,max=500"`
	Message string `json:"message" validate:"required,min=1"`
}

// ContactMessage is a stored contact form submission
type ContactMessage struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// ContactStats is returned by GET /contact/stats
type ContactStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalProfiles int64 `json:"total_profiles"`
	TotalViews    int64 `json:"total_views"`
	TotalProblems int64 `json:"total_problems"`
}

// PlatformStats is returned by GET /stats
type PlatformStats struct {
	TotalUsers         int64 `json:"total_users"`
	TotalEntrepreneurs int64 `json:"total_entrepreneurs"`
	CountriesCovered   int64 `json:"countries_covered"`
}
