package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"nexusconnect-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	// publicColumns never include contact details or the owner id.
	publicColumns = `id, profile_type, first_name, last_name, company_name, activity_name,
		logo_url, description, tags, country_code, city, website, portfolio,
		rating, review_count, is_premium, status, created_at, updated_at`

	privateColumns = `user_id, phone, whatsapp, email, premium_until, first_saved_at`

	// publishedClause restricts a query to profiles visible to the public.
	publishedClause = `status = 'published'`
	activeClause    = `COALESCE(is_active, TRUE)`
)

// updatableColumns guards the dynamic SET clause.
var updatableColumns = map[string]bool{
	"profile_type": true, "first_name": true, "last_name": true,
	"company_name": true, "activity_name": true, "description": true,
	"tags": true, "phone": true, "whatsapp": true, "email": true,
	"country_code": true, "city": true, "website": true, "portfolio": true,
	"logo_url": true, "status": true, "first_saved_at": true, activeColumn: true,
}

func selectPublic(withActive bool) string {
	if withActive {
		return publicColumns + ", " + activeColumn
	}
	return publicColumns
}

func selectProfile(withActive bool) string {
	return selectPublic(withActive) + ", " + privateColumns
}

func visibleWhere(withActive bool) string {
	if withActive {
		return publishedClause + " AND " + activeClause
	}
	return publishedClause
}

// EntrepreneurRepository handles database operations for entrepreneur profiles
type EntrepreneurRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

// NewEntrepreneurRepository creates a new entrepreneur repository
func NewEntrepreneurRepository(db *pgxpool.Pool, log *zap.Logger) *EntrepreneurRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &EntrepreneurRepository{db: db, log: log}
}

func publicDest(p *models.EntrepreneurPublic, withActive bool) []any {
	dest := []any{
		&p.ID, &p.ProfileType, &p.FirstName, &p.LastName, &p.CompanyName, &p.ActivityName,
		&p.LogoURL, &p.Description, &p.Tags, &p.CountryCode, &p.City, &p.Website, &p.Portfolio,
		&p.Rating, &p.ReviewCount, &p.IsPremium, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	}
	if withActive {
		dest = append(dest, &p.IsActive)
	}
	return dest
}

func scanPublic(row pgx.Row, withActive bool) (*models.EntrepreneurPublic, error) {
	p := &models.EntrepreneurPublic{}
	if err := row.Scan(publicDest(p, withActive)...); err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func scanProfile(row pgx.Row, withActive bool) (*models.EntrepreneurProfile, error) {
	p := &models.EntrepreneurProfile{}
	dest := append(publicDest(&p.EntrepreneurPublic, withActive),
		&p.UserID, &p.Phone, &p.Whatsapp, &p.Email, &p.PremiumUntil, &p.FirstSavedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

// ExistsForUser reports whether userID already owns a profile.
func (r *EntrepreneurRepository) ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM entrepreneurs WHERE user_id = $1)`, userID,
	).Scan(&exists)
	return exists, err
}

// Create inserts a profile owned by userID. The is_active column is written
// only when the schema has it.
func (r *EntrepreneurRepository) Create(ctx context.Context, userID uuid.UUID, in *models.EntrepreneurCreate, status models.ProfileStatus, firstSavedAt time.Time) (*models.EntrepreneurProfile, error) {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	insert := func(withActive bool) func(context.Context) (*models.EntrepreneurProfile, error) {
		return func(ctx context.Context) (*models.EntrepreneurProfile, error) {
			columns := []string{
				"user_id", "profile_type", "first_name", "last_name", "company_name",
				"activity_name", "description", "tags", "phone", "whatsapp", "email",
				"country_code", "city", "website", "portfolio", "logo_url", "status", "first_saved_at",
			}
			args := []any{
				userID, string(in.ProfileType), in.FirstName, in.LastName, in.CompanyName,
				in.ActivityName, in.Description, tags, in.Phone, in.Whatsapp, in.Email,
				models.NormalizeCountryCode(in.CountryCode), in.City, in.Website,
				models.Portfolio(in.Portfolio), in.LogoURL, string(status), firstSavedAt,
			}
			if withActive {
				columns = append(columns, activeColumn)
				args = append(args, active)
			}

			query := fmt.Sprintf(
				`INSERT INTO entrepreneurs (%s) VALUES (%s) RETURNING %s`,
				strings.Join(columns, ", "), placeholders(len(args)), selectProfile(withActive),
			)

			p, err := scanProfile(r.db.QueryRow(ctx, query, args...), withActive)
			if err != nil && pgErrorCode(err) == codeUniqueViolation {
				return nil, ErrDuplicate
			}
			return p, err
		}
	}

	return withActiveFallback(ctx, r.log, "entrepreneur.create", insert(true), insert(false))
}

// GetByUserID returns the full profile owned by userID
func (r *EntrepreneurRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.EntrepreneurProfile, error) {
	get := func(withActive bool) func(context.Context) (*models.EntrepreneurProfile, error) {
		return func(ctx context.Context) (*models.EntrepreneurProfile, error) {
			query := `SELECT ` + selectProfile(withActive) + ` FROM entrepreneurs WHERE user_id = $1`
			return scanProfile(r.db.QueryRow(ctx, query, userID), withActive)
		}
	}
	return withActiveFallback(ctx, r.log, "entrepreneur.get_by_user", get(true), get(false))
}

// GetPublicByID returns a published, active profile without contact details
func (r *EntrepreneurRepository) GetPublicByID(ctx context.Context, id uuid.UUID) (*models.EntrepreneurPublic, error) {
	get := func(withActive bool) func(context.Context) (*models.EntrepreneurPublic, error) {
		return func(ctx context.Context) (*models.EntrepreneurPublic, error) {
			query := `SELECT ` + selectPublic(withActive) + ` FROM entrepreneurs WHERE id = $1 AND ` + visibleWhere(withActive)
			return scanPublic(r.db.QueryRow(ctx, query, id), withActive)
		}
	}
	return withActiveFallback(ctx, r.log, "entrepreneur.get_public", get(true), get(false))
}

// GetOwnerID returns the user that owns profile id
func (r *EntrepreneurRepository) GetOwnerID(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var owner uuid.UUID
	err := r.db.QueryRow(ctx, `SELECT user_id FROM entrepreneurs WHERE id = $1`, id).Scan(&owner)
	return owner, notFound(err)
}

// UpdateByUserID applies fields to the profile owned by userID
func (r *EntrepreneurRepository) UpdateByUserID(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) (*models.EntrepreneurProfile, error) {
	return r.update(ctx, "user_id", userID, fields)
}

// UpdateByID applies fields to profile id
func (r *EntrepreneurRepository) UpdateByID(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*models.EntrepreneurProfile, error) {
	return r.update(ctx, "id", id, fields)
}

func (r *EntrepreneurRepository) update(ctx context.Context, key string, value uuid.UUID, fields map[string]interface{}) (*models.EntrepreneurProfile, error) {
	run := func(withActive bool) func(context.Context) (*models.EntrepreneurProfile, error) {
		return func(ctx context.Context) (*models.EntrepreneurProfile, error) {
			set, args := buildUpdate(fields, withActive)
			args = append(args, value)
			query := fmt.Sprintf(
				`UPDATE entrepreneurs SET %s WHERE %s = $%d RETURNING %s`,
				set, key, len(args), selectProfile(withActive),
			)
			return scanProfile(r.db.QueryRow(ctx, query, args...), withActive)
		}
	}
	return withActiveFallback(ctx, r.log, "entrepreneur.update", run(true), run(false))
}

// buildUpdate renders a deterministic SET clause. Unknown columns are
// ignored and updated_at is always bumped, so an empty patch re-reads the row.
func buildUpdate(fields map[string]interface{}, withActive bool) (string, []any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !updatableColumns[k] || (k == activeColumn && !withActive) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sets := make([]string, 0, len(keys)+1)
	args := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		args = append(args, fields[k])
		sets = append(sets, fmt.Sprintf("%s = $%d", k, len(args)))
	}
	sets = append(sets, "updated_at = NOW()")
	return strings.Join(sets, ", "), args
}

// DeleteByUserID removes the profile owned by userID
func (r *EntrepreneurRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.delete(ctx, "user_id", userID)
}

// DeleteByID removes profile id
func (r *EntrepreneurRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, "id", id)
}

func (r *EntrepreneurRepository) delete(ctx context.Context, key string, value uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM entrepreneurs WHERE `+key+` = $1`, value)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchPublishedIDs returns the ids of visible profiles whose text fields
// contain term, case-insensitively.
func (r *EntrepreneurRepository) SearchPublishedIDs(ctx context.Context, term string) ([]uuid.UUID, error) {
	pattern := "%" + escapeLike(term) + "%"

	search := func(withActive bool) func(context.Context) ([]uuid.UUID, error) {
		return func(ctx context.Context) ([]uuid.UUID, error) {
			query := `SELECT id FROM entrepreneurs WHERE ` + visibleWhere(withActive) + `
				AND (first_name ILIKE $1 OR last_name ILIKE $1 OR company_name ILIKE $1
					OR activity_name ILIKE $1 OR description ILIKE $1)`

			rows, err := r.db.Query(ctx, query, pattern)
			if err != nil {
				return nil, err
			}
			return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
		}
	}
	return withActiveFallback(ctx, r.log, "entrepreneur.search", search(true), search(false))
}

// ListPublic returns one page of visible profiles matching filter
func (r *EntrepreneurRepository) ListPublic(ctx context.Context, filter models.ProfileFilter) ([]*models.EntrepreneurPublic, error) {
	list := func(withActive bool) func(context.Context) ([]*models.EntrepreneurPublic, error) {
		return func(ctx context.Context) ([]*models.EntrepreneurPublic, error) {
			query, args := buildListQuery(filter, withActive)
			rows, err := r.db.Query(ctx, query, args...)
			if err != nil {
				return nil, err
			}
			defer rows.Close()

			profiles := make([]*models.EntrepreneurPublic, 0)
			for rows.Next() {
				p, err := scanPublic(rows, withActive)
				if err != nil {
					return nil, err
				}
				profiles = append(profiles, p)
			}
			return profiles, rows.Err()
		}
	}
	return withActiveFallback(ctx, r.log, "entrepreneur.list", list(true), list(false))
}

// buildListQuery renders the listing statement and its arguments
func buildListQuery(f models.ProfileFilter, withActive bool) (string, []any) {
	var b strings.Builder
	args := make([]any, 0, 8)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	b.WriteString(`SELECT ` + selectPublic(withActive) + ` FROM entrepreneurs WHERE ` + visibleWhere(withActive))

	if f.CountryCode != "" {
		b.WriteString(" AND country_code = " + arg(models.NormalizeCountryCode(f.CountryCode)))
	}
	if f.City != "" {
		b.WriteString(" AND city ILIKE " + arg("%"+escapeLike(f.City)+"%"))
	}
	if f.ProfileType != "" {
		b.WriteString(" AND profile_type = " + arg(f.ProfileType))
	}
	if f.MinRating != nil {
		b.WriteString(" AND rating >= " + arg(*f.MinRating))
	}
	if len(f.Tags) > 0 {
		b.WriteString(" AND tags @> " + arg(f.Tags))
	}
	if f.IDs != nil {
		ids := make([]string, len(f.IDs))
		for i, id := range f.IDs {
			ids[i] = id.String()
		}
		b.WriteString(" AND id = ANY(" + arg(ids) + "::uuid[])")
	}

	order := "created_at"
	if f.SortBy == "rating" {
		order = "rating"
	}
	direction := "DESC"
	if f.Ascending {
		direction = "ASC"
	}
	fmt.Fprintf(&b, " ORDER BY %s %s, id %s", order, direction, direction)
	b.WriteString(" LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset))

	return b.String(), args
}

// GetContactInfo reveals the contact details of a published profile through
// the privileged get_entrepreneur_contacts function.
func (r *EntrepreneurRepository) GetContactInfo(ctx context.Context, id uuid.UUID) (*models.ContactInfo, error) {
	info := &models.ContactInfo{}
	var phone, whatsapp, email *string
	err := r.db.QueryRow(ctx,
		`SELECT phone, whatsapp, email FROM get_entrepreneur_contacts($1)`, id,
	).Scan(&phone, &whatsapp, &email)
	if err != nil {
		return nil, notFound(err)
	}
	info.Phone = deref(phone)
	info.Whatsapp = deref(whatsapp)
	info.Email = deref(email)
	return info, nil
}

// CountPublished counts visible profiles
func (r *EntrepreneurRepository) CountPublished(ctx context.Context) (int64, error) {
	return r.count(ctx, "entrepreneur.count", "COUNT(*)")
}

// CountPublishedCountries counts distinct countries among visible profiles
func (r *EntrepreneurRepository) CountPublishedCountries(ctx context.Context) (int64, error) {
	return r.count(ctx, "entrepreneur.count_countries", "COUNT(DISTINCT country_code)")
}

func (r *EntrepreneurRepository) count(ctx context.Context, op, expr string) (int64, error) {
	run := func(withActive bool) func(context.Context) (int64, error) {
		return func(ctx context.Context) (int64, error) {
			var n int64
			err := r.db.QueryRow(ctx, `SELECT `+expr+` FROM entrepreneurs WHERE `+visibleWhere(withActive)).Scan(&n)
			return n, err
		}
	}
	return withActiveFallback(ctx, r.log, op, run(true), run(false))
}

func placeholders(n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(p, ", ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input literal inside a LIKE pattern
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
