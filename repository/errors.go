package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicate   = errors.New("record already exists")
	ErrSchemaDrift = errors.New("database schema is missing an expected column")
)

// Postgres SQLSTATE codes
const (
	codeUniqueViolation = "23505"
	codeUndefinedColumn = "42703"
)

// activeColumn may be absent from older deployments of the schema.
const activeColumn = "is_active"

// pgErrorCode returns the SQLSTATE of err, or "" when err is not a PgError.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsMissingActiveColumn reports whether err means the is_active column does
// not exist. Postgres errors are classified by SQLSTATE; anything else falls
// back to a deliberately narrow message match.
func IsMissingActiveColumn(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeUndefinedColumn {
		return strings.Contains(strings.ToLower(pgErr.Message), activeColumn)
	}

	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, activeColumn) {
		return false
	}
	return strings.Contains(msg, "column") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "missing")
}

func isUndefinedColumn(err error) bool {
	return pgErrorCode(err) == codeUndefinedColumn || IsMissingActiveColumn(err)
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// withActiveFallback runs primary and, only when it failed because is_active
// is missing, runs degraded once. A degraded call that still hits an
// undefined column is reported as ErrSchemaDrift.
func withActiveFallback[T any](
	ctx context.Context,
	log *zap.Logger,
	op string,
	primary func(context.Context) (T, error),
	degraded func(context.Context) (T, error),
) (T, error) {
	v, err := primary(ctx)
	if err == nil || !IsMissingActiveColumn(err) {
		return v, err
	}

	log.Warn("is_active column missing, retrying without it",
		zap.String("operation", op),
		zap.Error(err),
	)

	v, err = degraded(ctx)
	if err != nil && isUndefinedColumn(err) {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrSchemaDrift, op, err)
	}
	return v, err
}
