package repository

import (
	"context"

	"nexusconnect-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DraftRepository handles database operations for profile drafts
type DraftRepository struct {
	db *pgxpool.Pool
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *pgxpool.Pool) *DraftRepository {
	return &DraftRepository{db: db}
}

// Get returns the draft saved by userID
func (r *DraftRepository) Get(ctx context.Context, userID uuid.UUID) (*models.EntrepreneurDraft, error) {
	d := &models.EntrepreneurDraft{UserID: userID}
	err := r.db.QueryRow(ctx,
		`SELECT form_data, current_step, updated_at FROM entrepreneur_drafts WHERE user_id = $1`,
		userID,
	).Scan(&d.FormData, &d.CurrentStep, &d.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return d, nil
}

// Upsert stores the draft of userID, replacing any previous one
func (r *DraftRepository) Upsert(ctx context.Context, userID uuid.UUID, formData models.FormData, step int) (*models.EntrepreneurDraft, error) {
	query := `
		INSERT INTO entrepreneur_drafts (user_id, form_data, current_step, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			form_data = EXCLUDED.form_data,
			current_step = EXCLUDED.current_step,
			updated_at = EXCLUDED.updated_at
		RETURNING form_data, current_step, updated_at`

	d := &models.EntrepreneurDraft{UserID: userID}
	err := r.db.QueryRow(ctx, query, userID, formData, step).Scan(&d.FormData, &d.CurrentStep, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the draft of userID. Deleting a missing draft is not an error.
func (r *DraftRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM entrepreneur_drafts WHERE user_id = $1`, userID)
	return err
}
