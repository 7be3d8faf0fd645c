package repository

import (
	"context"

	"nexusconnect-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactRepository handles database operations for contact messages
type ContactRepository struct {
	db *pgxpool.Pool
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create stores a contact form submission with status "new"
func (r *ContactRepository) Create(ctx context.Context, in *models.ContactMessageCreate) (*models.ContactMessage, error) {
	query := `
		INSERT INTO contact_messages (name, email, subject, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, subject, message, status, created_at`

	m := &models.ContactMessage{}
	err := r.db.QueryRow(ctx, query,
		in.Name, in.Email, in.Subject, in.Message, string(models.ContactStatusNew),
	).Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}
