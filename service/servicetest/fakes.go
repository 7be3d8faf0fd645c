// Package servicetest provides in-memory stores for service and handler tests.
package servicetest

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"nexusconnect-backend/models"
	"nexusconnect-backend/repository"

	"github.com/google/uuid"
)

// Profiles is an in-memory ProfileStore. Calls records every method name.
type Profiles struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]*models.EntrepreneurProfile
	Calls []string
	// Err, when set, is returned by every call.
	Err error
}

func NewProfiles() *Profiles {
	return &Profiles{rows: make(map[uuid.UUID]*models.EntrepreneurProfile)}
}

func (p *Profiles) record(name string) error {
	p.Calls = append(p.Calls, name)
	return p.Err
}

// CallCount returns how many times name was invoked
func (p *Profiles) CallCount(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// Put stores a profile as-is, returning its id
func (p *Profiles) Put(profile *models.EntrepreneurProfile) uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	cp := *profile
	p.rows[profile.ID] = &cp
	return profile.ID
}

func (p *Profiles) byUser(userID uuid.UUID) *models.EntrepreneurProfile {
	for _, row := range p.rows {
		if row.UserID == userID {
			return row
		}
	}
	return nil
}

func (p *Profiles) ExistsForUser(_ context.Context, userID uuid.UUID) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("ExistsForUser"); err != nil {
		return false, err
	}
	return p.byUser(userID) != nil, nil
}

func (p *Profiles) Create(_ context.Context, userID uuid.UUID, in *models.EntrepreneurCreate, status models.ProfileStatus, firstSavedAt time.Time) (*models.EntrepreneurProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("Create"); err != nil {
		return nil, err
	}
	if p.byUser(userID) != nil {
		return nil, repository.ErrDuplicate
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now().UTC()
	row := &models.EntrepreneurProfile{
		EntrepreneurPublic: models.EntrepreneurPublic{
			ID:           uuid.New(),
			ProfileType:  in.ProfileType,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			CompanyName:  in.CompanyName,
			ActivityName: in.ActivityName,
			LogoURL:      in.LogoURL,
			Description:  in.Description,
			Tags:         in.Tags,
			CountryCode:  models.NormalizeCountryCode(in.CountryCode),
			City:         in.City,
			Website:      in.Website,
			Portfolio:    models.Portfolio(in.Portfolio),
			IsActive:     &active,
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		UserID:       userID,
		Phone:        in.Phone,
		Whatsapp:     in.Whatsapp,
		Email:        in.Email,
		FirstSavedAt: &firstSavedAt,
	}
	p.rows[row.ID] = row
	cp := *row
	return &cp, nil
}

func (p *Profiles) GetByUserID(_ context.Context, userID uuid.UUID) (*models.EntrepreneurProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("GetByUserID"); err != nil {
		return nil, err
	}
	row := p.byUser(userID)
	if row == nil {
		return nil, repository.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func visible(row *models.EntrepreneurProfile) bool {
	return row.Status == models.StatusPublished && (row.IsActive == nil || *row.IsActive)
}

func (p *Profiles) GetPublicByID(_ context.Context, id uuid.UUID) (*models.EntrepreneurPublic, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("GetPublicByID"); err != nil {
		return nil, err
	}
	row, ok := p.rows[id]
	if !ok || !visible(row) {
		return nil, repository.ErrNotFound
	}
	cp := row.EntrepreneurPublic
	return &cp, nil
}

func (p *Profiles) GetOwnerID(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("GetOwnerID"); err != nil {
		return uuid.Nil, err
	}
	row, ok := p.rows[id]
	if !ok {
		return uuid.Nil, repository.ErrNotFound
	}
	return row.UserID, nil
}

func (p *Profiles) UpdateByUserID(_ context.Context, userID uuid.UUID, fields map[string]interface{}) (*models.EntrepreneurProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("UpdateByUserID"); err != nil {
		return nil, err
	}
	return p.apply(p.byUser(userID), fields)
}

func (p *Profiles) UpdateByID(_ context.Context, id uuid.UUID, fields map[string]interface{}) (*models.EntrepreneurProfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("UpdateByID"); err != nil {
		return nil, err
	}
	return p.apply(p.rows[id], fields)
}

func (p *Profiles) apply(row *models.EntrepreneurProfile, fields map[string]interface{}) (*models.EntrepreneurProfile, error) {
	if row == nil {
		return nil, repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "status":
			row.Status = models.ProfileStatus(v.(string))
		case "is_active":
			b := v.(bool)
			row.IsActive = &b
		case "description":
			row.Description = v.(string)
		case "city":
			row.City = v.(string)
		case "country_code":
			row.CountryCode = v.(string)
		case "tags":
			row.Tags = v.([]string)
		case "website":
			s := v.(string)
			row.Website = &s
		case "logo_url":
			s := v.(string)
			row.LogoURL = &s
		case "activity_name":
			s := v.(string)
			row.ActivityName = &s
		case "whatsapp":
			row.Whatsapp = v.(string)
		case "profile_type":
			row.ProfileType = models.ProfileType(v.(string))
		case "portfolio":
			row.Portfolio = v.(models.Portfolio)
		}
	}
	row.UpdatedAt = time.Now().UTC()
	cp := *row
	return &cp, nil
}

func (p *Profiles) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("DeleteByUserID"); err != nil {
		return err
	}
	row := p.byUser(userID)
	if row == nil {
		return repository.ErrNotFound
	}
	delete(p.rows, row.ID)
	return nil
}

func (p *Profiles) DeleteByID(_ context.Context, id uuid.UUID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("DeleteByID"); err != nil {
		return err
	}
	if _, ok := p.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(p.rows, id)
	return nil
}

func (p *Profiles) SearchPublishedIDs(_ context.Context, term string) ([]uuid.UUID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("SearchPublishedIDs"); err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	var ids []uuid.UUID
	for _, row := range p.rows {
		if !visible(row) {
			continue
		}
		text := strings.ToLower(strings.Join([]string{
			row.FirstName, row.LastName, deref(row.CompanyName), deref(row.ActivityName), row.Description,
		}, " "))
		if strings.Contains(text, term) {
			ids = append(ids, row.ID)
		}
	}
	return ids, nil
}

func (p *Profiles) ListPublic(_ context.Context, f models.ProfileFilter) ([]*models.EntrepreneurPublic, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("ListPublic"); err != nil {
		return nil, err
	}

	var ids map[uuid.UUID]bool
	if f.IDs != nil {
		ids = make(map[uuid.UUID]bool, len(f.IDs))
		for _, id := range f.IDs {
			ids[id] = true
		}
	}

	out := make([]*models.EntrepreneurPublic, 0)
	for _, row := range p.rows {
		switch {
		case !visible(row),
			f.CountryCode != "" && row.CountryCode != f.CountryCode,
			f.City != "" && !strings.Contains(strings.ToLower(row.City), strings.ToLower(f.City)),
			f.ProfileType != "" && string(row.ProfileType) != f.ProfileType,
			f.MinRating != nil && row.Rating < *f.MinRating,
			!hasAll(row.Tags, f.Tags),
			ids != nil && !ids[row.ID]:
			continue
		}
		cp := row.EntrepreneurPublic
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		less := out[i].CreatedAt.Before(out[j].CreatedAt)
		if f.SortBy == "rating" {
			less = out[i].Rating < out[j].Rating
		}
		if f.Ascending {
			return less
		}
		return !less
	})

	if f.Offset >= len(out) {
		return out[:0], nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (p *Profiles) GetContactInfo(_ context.Context, id uuid.UUID) (*models.ContactInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("GetContactInfo"); err != nil {
		return nil, err
	}
	row, ok := p.rows[id]
	if !ok || !visible(row) {
		return nil, repository.ErrNotFound
	}
	return &models.ContactInfo{Phone: row.Phone, Whatsapp: row.Whatsapp, Email: row.Email}, nil
}

func (p *Profiles) CountPublished(_ context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("CountPublished"); err != nil {
		return 0, err
	}
	var n int64
	for _, row := range p.rows {
		if visible(row) {
			n++
		}
	}
	return n, nil
}

func (p *Profiles) CountPublishedCountries(_ context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.record("CountPublishedCountries"); err != nil {
		return 0, err
	}
	seen := make(map[string]bool)
	for _, row := range p.rows {
		if visible(row) {
			seen[row.CountryCode] = true
		}
	}
	return int64(len(seen)), nil
}

func hasAll(have, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, t := range have {
		set[t] = true
	}
	for _, t := range want {
		if !set[t] {
			return false
		}
	}
	return true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Users is an in-memory UserStore
type Users struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*models.Account
	users    map[string]*models.User
	Err      error
}

func NewUsers() *Users {
	return &Users{
		accounts: make(map[uuid.UUID]*models.Account),
		users:    make(map[string]*models.User),
	}
}

func (u *Users) Create(_ context.Context, email, passwordHash string, firstName, lastName *string) (*models.Account, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	email = strings.ToLower(email)
	if _, ok := u.users[email]; ok {
		return nil, repository.ErrDuplicate
	}
	id := uuid.New()
	now := time.Now().UTC()
	u.users[email] = &models.User{ID: id, Email: email, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	acc := &models.Account{ID: id, Email: email, FirstName: firstName, LastName: lastName}
	u.accounts[id] = acc
	cp := *acc
	return &cp, nil
}

func (u *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	user, ok := u.users[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (u *Users) GetAccount(_ context.Context, userID uuid.UUID) (*models.Account, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return nil, u.Err
	}
	acc, ok := u.accounts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *acc
	return &cp, nil
}

func (u *Users) SetHasProfile(_ context.Context, userID uuid.UUID, has bool) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return u.Err
	}
	acc, ok := u.accounts[userID]
	if !ok {
		acc = &models.Account{ID: userID}
		u.accounts[userID] = acc
	}
	acc.HasProfile = has
	return nil
}

func (u *Users) Count(_ context.Context) (int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.Err != nil {
		return 0, u.Err
	}
	return int64(len(u.users)), nil
}

// HasProfile reads the account flag directly
func (u *Users) HasProfile(userID uuid.UUID) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	acc, ok := u.accounts[userID]
	return ok && acc.HasProfile
}

// Drafts is an in-memory DraftStore
type Drafts struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]*models.EntrepreneurDraft
	Deletes int
}

func NewDrafts() *Drafts {
	return &Drafts{rows: make(map[uuid.UUID]*models.EntrepreneurDraft)}
}

func (d *Drafts) Get(_ context.Context, userID uuid.UUID) (*models.EntrepreneurDraft, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	row, ok := d.rows[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (d *Drafts) Upsert(_ context.Context, userID uuid.UUID, formData models.FormData, step int) (*models.EntrepreneurDraft, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now().UTC()
	row := &models.EntrepreneurDraft{UserID: userID, FormData: formData, CurrentStep: step, UpdatedAt: &now}
	d.rows[userID] = row
	cp := *row
	return &cp, nil
}

func (d *Drafts) Delete(_ context.Context, userID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Deletes++
	delete(d.rows, userID)
	return nil
}

// Contacts is an in-memory ContactStore
type Contacts struct {
	mu       sync.Mutex
	Messages []*models.ContactMessage
}

func (c *Contacts) Create(_ context.Context, in *models.ContactMessageCreate) (*models.ContactMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	msg := &models.ContactMessage{
		ID:        uuid.New(),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Status:    models.ContactStatusNew,
		CreatedAt: time.Now().UTC(),
	}
	c.Messages = append(c.Messages, msg)
	return msg, nil
}

// Storage is an in-memory object store
type Storage struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Uploads int
}

func NewStorage() *Storage {
	return &Storage{Objects: make(map[string][]byte)}
}

func (s *Storage) Upload(_ context.Context, key, _ string, data io.Reader, _ int64) error {
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Uploads++
	s.Objects[key] = b
	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Objects, key)
	return nil
}

func (s *Storage) PublicURL(key string) string {
	return "https://cdn.test/logos/" + key
}

// Event is one published message
type Event struct {
	Topic   string
	Key     string
	Payload interface{}
}

// Publisher records events
type Publisher struct {
	mu     sync.Mutex
	Events []Event
}

func (p *Publisher) Publish(_ context.Context, topic, key string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, Event{Topic: topic, Key: key, Payload: payload})
	return nil
}

func (p *Publisher) Close() error { return nil }
