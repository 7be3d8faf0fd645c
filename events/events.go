package events

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessageCreated is published after a contact form is stored
type ContactMessageCreated struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusChanged is published after a profile changes status
type StatusChanged struct {
	ProfileID uuid.UUID `json:"profile_id"`
	UserID    uuid.UUID `json:"user_id"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}
