package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// FormData is the opaque autosave payload, stored as JSONB
type FormData map[string]interface{}

// Value implements driver.Valuer for JSONB
func (f FormData) Value() (driver.Value, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner for JSONB
func (f *FormData) Scan(value interface{}) error {
	if value == nil {
		*f = make(FormData)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	case map[string]interface{}:
		*f = FormData(v)
		return nil
	default:
		*f = make(FormData)
		return nil
	}

	if len(bytes) == 0 {
		*f = make(FormData)
		return nil
	}

	return json.Unmarshal(bytes, f)
}

// EntrepreneurDraft is the in-progress profile form of a user
type EntrepreneurDraft struct {
	UserID      uuid.UUID  `json:"-"`
	FormData    FormData   `json:"form_data"`
	CurrentStep int        `json:"current_step"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// EmptyDraft is returned when a user has not saved anything yet.
func EmptyDraft(userID uuid.UUID) *EntrepreneurDraft {
	return &EntrepreneurDraft{
		UserID:      userID,
		FormData:    make(FormData),
		CurrentStep: 1,
	}
}

// DraftPayload is the body of a draft save request
type DraftPayload struct {
	FormData    map[string]interface{} `json:"form_data" validate:"required"`
	CurrentStep *int                   `json:"current_step" validate:"omitnil,min=1"`
}
