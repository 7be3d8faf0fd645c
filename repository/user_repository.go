package repository

import (
	"context"
	"strings"

	"nexusconnect-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles database operations for users and their accounts
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user and its account row in one transaction
func (r *UserRepository) Create(ctx context.Context, email, passwordHash string, firstName, lastName *string) (*models.Account, error) {
	account := &models.Account{
		Email:     strings.ToLower(email),
		FirstName: firstName,
		LastName:  lastName,
	}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id`,
			account.Email, passwordHash,
		).Scan(&account.ID); err != nil {
			return err
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO user_profiles (user_id, first_name, last_name, has_profile) VALUES ($1, $2, $3, FALSE)`,
			account.ID, firstName, lastName,
		)
		return err
	})
	if err != nil {
		if pgErrorCode(err) == codeUniqueViolation {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return account, nil
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u := &models.User{}
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = $1`,
		strings.ToLower(email),
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// GetAccount returns the API view of userID
func (r *UserRepository) GetAccount(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	a := &models.Account{}
	err := r.db.QueryRow(ctx, `
		SELECT u.id, u.email, p.first_name, p.last_name, COALESCE(p.has_profile, FALSE)
		FROM users u
		LEFT JOIN user_profiles p ON p.user_id = u.id
		WHERE u.id = $1`,
		userID,
	).Scan(&a.ID, &a.Email, &a.FirstName, &a.LastName, &a.HasProfile)
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// SetHasProfile flips the account flag that tracks profile ownership
func (r *UserRepository) SetHasProfile(ctx context.Context, userID uuid.UUID, has bool) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO user_profiles (user_id, has_profile) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET has_profile = EXCLUDED.has_profile, updated_at = NOW()`,
		userID, has,
	)
	return err
}

// Count returns the number of registered users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
