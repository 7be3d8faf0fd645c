package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"nexusconnect-backend/auth"
	"nexusconnect-backend/metrics"
	"nexusconnect-backend/repository"
	"nexusconnect-backend/service"
	"nexusconnect-backend/service/servicetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type revocations struct {
	mu  sync.Mutex
	ids map[string]bool
}

func (r *revocations) Revoke(_ context.Context, jti string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids[jti] = true
	return nil
}

func (r *revocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ids[jti], nil
}

type fixedCounter struct {
	mu   sync.Mutex
	hits map[string]int64
}

func (f *fixedCounter) IncrWithExpire(_ context.Context, namespace, key string, _ time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits[namespace+":"+key]++
	return f.hits[namespace+":"+key], nil
}

type testApp struct {
	router   *gin.Engine
	profiles *servicetest.Profiles
	users    *servicetest.Users
	drafts   *servicetest.Drafts
	contacts *servicetest.Contacts
	storage  *servicetest.Storage
	events   *servicetest.Publisher
}

func newTestApp(t *testing.T, counter *fixedCounter) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := &testApp{
		profiles: servicetest.NewProfiles(),
		users:    servicetest.NewUsers(),
		drafts:   servicetest.NewDrafts(),
		contacts: &servicetest.Contacts{},
		storage:  servicetest.NewStorage(),
		events:   &servicetest.Publisher{},
	}
	log := zap.NewNop()
	tm := auth.NewTokenManager("test-secret", time.Hour, 24*time.Hour, &revocations{ids: make(map[string]bool)})

	profiles := service.NewEntrepreneurService(
		service.WithProfileStore(app.profiles),
		service.WithAccountFlagStore(app.users),
		service.WithDraftCleanup(app.drafts),
		service.WithEventPublisher(app.events),
	)
	drafts := service.NewDraftService(service.DraftWithStore(app.drafts))
	authSvc := service.NewAuthService(
		service.AuthWithUserStore(app.users),
		service.AuthWithTokenManager(tm),
		service.AuthWithBcryptCost(4),
	)
	contact := service.NewContactService(
		service.ContactWithStore(app.contacts),
		service.ContactWithPublisher(app.events),
	)
	logos := service.NewLogoService(service.LogoWithStorage(app.storage))

	cfg := RouterConfig{
		AppName:           "Nexus Connect API",
		AppVersion:        "test",
		Auth:              NewAuthHandler(authSvc, log),
		Entrepreneur:      NewEntrepreneurHandler(profiles, drafts, log),
		Contact:           NewContactHandler(contact, service.NewStatsService(app.users, app.profiles), log),
		Storage:           NewStorageHandler(logos, log),
		Tokens:            tm,
		Metrics:           metrics.New("test"),
		Log:               log,
		ContactRateLimit:  2,
		ContactRateWindow: time.Minute,
	}
	if counter != nil {
		cfg.RateCounter = counter
	}
	app.router = NewRouter(cfg)
	return app
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.send(t, req, token)
}

func (a *testApp) send(t *testing.T, req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (a *testApp) register(t *testing.T, email string) (token, userID string) {
	t.Helper()
	w, env := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "bearer", resp.TokenType)
	return resp.AccessToken, resp.User.ID
}

func profileBody() gin.H {
	return gin.H{
		"profile_type": "artisan",
		"first_name":   "Awa",
		"last_name":    "Diop",
		"description":  "Handmade leather goods",
		"tags":         []string{"leather", "craft"},
		"phone":        "+221700000000",
		"whatsapp":     "+221700000000",
		"email":        "awa@example.com",
		"country_code": "sn",
		"city":         "Dakar",
	}
}

func listedIDs(t *testing.T, app *testApp) []string {
	t.Helper()
	w, env := app.do(t, http.MethodGet, "/api/entrepreneurs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []struct {
		ID    string `json:"id"`
		Phone string `json:"phone"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		assert.Empty(t, r.Phone)
		ids = append(ids, r.ID)
	}
	return ids
}

func TestProfileVisibilityLifecycle(t *testing.T) {
	app := newTestApp(t, nil)
	token, userID := app.register(t, "awa@example.com")

	w, env := app.do(t, http.MethodPost, "/api/entrepreneurs/me", token, profileBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		CountryCode string `json:"country_code"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "draft", created.Status)
	assert.Equal(t, "SN", created.CountryCode)

	w, env = app.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"has_profile":true`)
	assert.Contains(t, string(env.Data), userID)

	assert.NotContains(t, listedIDs(t, app), created.ID)
	w, _ = app.do(t, http.MethodGet, "/api/entrepreneurs/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = app.do(t, http.MethodPatch, "/api/entrepreneurs/me/status", token, gin.H{"status": "published"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Profile published!")
	assert.Contains(t, listedIDs(t, app), created.ID)

	w, env = app.do(t, http.MethodGet, "/api/entrepreneurs/"+created.ID+"/contact", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "+221700000000")

	w, _ = app.do(t, http.MethodPatch, "/api/entrepreneurs/"+created.ID, token, gin.H{"is_active": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, listedIDs(t, app), created.ID)

	w, _ = app.do(t, http.MethodGet, "/api/entrepreneurs/"+created.ID+"/contact", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeactivatedProfileLeavesDirectory(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.register(t, "deactivate@example.com")

	w, env := app.do(t, http.MethodPost, "/api/entrepreneurs/me", token, profileBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, _ = app.do(t, http.MethodPatch, "/api/entrepreneurs/me/status", token, gin.H{"status": "published"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, listedIDs(t, app), created.ID)
	w, _ = app.do(t, http.MethodGet, "/api/entrepreneurs/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = app.do(t, http.MethodPatch, "/api/entrepreneurs/me/status", token, gin.H{"status": "deactivated"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Profile deactivated.")

	assert.NotContains(t, listedIDs(t, app), created.ID)
	w, _ = app.do(t, http.MethodGet, "/api/entrepreneurs/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = app.do(t, http.MethodGet, "/api/entrepreneurs/"+created.ID+"/contact", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = app.do(t, http.MethodGet, "/api/entrepreneurs?search=leather", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	w, env = app.do(t, http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"total_entrepreneurs":0`)
}

func TestCreateTwiceConflicts(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.register(t, "twice@example.com")

	w, _ := app.do(t, http.MethodPost, "/api/entrepreneurs", token, profileBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := app.do(t, http.MethodPost, "/api/entrepreneurs", token, profileBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "PROFILE_EXISTS", env.Error.Code)
}

func TestCreateValidationFailure(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.register(t, "invalid@example.com")

	body := profileBody()
	body["profile_type"] = "startup"
	body["tags"] = []string{"a", "b", "c", "d", "e", "f"}
	w, env := app.do(t, http.MethodPost, "/api/entrepreneurs/me", token, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Equal(t, 0, app.profiles.CallCount("Create"))
}

func TestUpdateMeRejectsLockedFields(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.register(t, "locked@example.com")
	w, _ := app.do(t, http.MethodPost, "/api/entrepreneurs/me", token, profileBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := app.do(t, http.MethodPut, "/api/entrepreneurs/me", token, gin.H{
		"phone":      "+1",
		"first_name": "X",
		"city":       "Thiès",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "LOCKED_FIELDS", env.Error.Code)
	assert.Equal(t, "Cannot modify locked fields: first_name, phone", env.Error.Message)
	assert.Equal(t, 0, app.profiles.CallCount("UpdateByUserID"))
}

func TestUpdateMeEmptyPatch(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.register(t, "empty@example.com")

	w, env := app.do(t, http.MethodPut, "/api/entrepreneurs/me", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_UPDATE", env.Error.Code)
}

func TestDeleteByIDRequiresOwner(t *testing.T) {
	app := newTestApp(t, nil)
	owner, _ := app.register(t, "owner@example.com")
	other, _ := app.register(t, "other@example.com")

	w, env := app.do(t, http.MethodPost, "/api/entrepreneurs/me", owner, profileBody())
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, env = app.do(t, http.MethodDelete, "/api/entrepreneurs/"+created.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	w, _ = app.do(t, http.MethodDelete, "/api/entrepreneurs/"+created.ID, owner, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = app.do(t, http.MethodDelete, "/api/entrepreneurs/"+created.ID, owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMalformedIDIsNotFound(t *testing.T) {
	app := newTestApp(t, nil)

	w, env := app.do(t, http.MethodGet, "/api/entrepreneurs/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestSetStatusRejectsUnknownValue(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.register(t, "status@example.com")

	w, env := app.do(t, http.MethodPatch, "/api/entrepreneurs/me/status", token, gin.H{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_STATUS", env.Error.Code)
}

func TestSchemaDriftIsConflict(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.register(t, "drift@example.com")
	app.profiles.Err = fmt.Errorf("list: %w", repository.ErrSchemaDrift)

	w, env := app.do(t, http.MethodGet, "/api/entrepreneurs/me", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SCHEMA_DRIFT", env.Error.Code)
}

func TestListRejectsBadQuery(t *testing.T) {
	app := newTestApp(t, nil)

	for _, q := range []string{"limit=abc", "limit=0", "limit=101", "offset=-1", "min_rating=6", "min_rating=x"} {
		w, env := app.do(t, http.MethodGet, "/api/entrepreneurs?"+q, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.False(t, env.Success, q)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.register(t, "draft@example.com")

	w, env := app.do(t, http.MethodGet, "/api/entrepreneurs/draft", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"form_data":{},"current_step":1,"updated_at":null}`, string(env.Data))

	w, env = app.do(t, http.MethodPut, "/api/entrepreneurs/draft", token, gin.H{
		"form_data":    gin.H{"city": "Dakar"},
		"current_step": 3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, string(env.Data), `"current_step":3`)

	w, _ = app.do(t, http.MethodDelete, "/api/entrepreneurs/draft", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = app.do(t, http.MethodDelete, "/api/entrepreneurs/draft", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	app := newTestApp(t, nil)

	for _, path := range []string{"/api/auth/me", "/api/entrepreneurs/me", "/api/entrepreneurs/draft"} {
		w, env := app.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code, path)
	}

	w, _ := app.do(t, http.MethodGet, "/api/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.register(t, "logout@example.com")

	w, _ := app.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = app.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t, nil)
	app.register(t, "login@example.com")

	w, env := app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "login@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	w, _ = app.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": "LOGIN@example.com", "password": "correct-horse"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t, nil)
	app.register(t, "dup@example.com")

	w, env := app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{"email": "dup@example.com", "password": "correct-horse"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", env.Error.Message)
}

func multipartLogo(t *testing.T, filename, contentType string, size int) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{0x89}, size))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/storage/upload-logo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadLogoLimits(t *testing.T) {
	app := newTestApp(t, nil)
	token, userID := app.register(t, "logo@example.com")

	w, env := app.send(t, multipartLogo(t, "big.png", "image/png", 6*1024*1024), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "File size exceeds 5 MB limit", env.Error.Message)
	assert.Equal(t, 0, app.storage.Uploads)

	w, env = app.send(t, multipartLogo(t, "doc.pdf", "application/pdf", 1024), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_FILE_TYPE", env.Error.Code)
	assert.Equal(t, 0, app.storage.Uploads)

	w, env = app.send(t, multipartLogo(t, "logo.png", "image/png", 4*1024*1024), token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, strings.HasPrefix(res.Filename, userID+"/"), res.Filename)
	assert.True(t, strings.HasSuffix(res.Filename, ".png"))
	assert.Equal(t, "https://cdn.test/logos/"+res.Filename, res.URL)
	assert.Equal(t, 1, app.storage.Uploads)

	w, _ = app.do(t, http.MethodDelete, "/api/storage/delete-logo/"+res.Filename, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, app.storage.Objects)
}

// countingReader hides its length from httptest so the request is sent
// without a Content-Length.
type countingReader struct {
	r    io.Reader
	read int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read += n
	return n, err
}

func TestUploadLogoStopsReadingOversizedBody(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.register(t, "stream@example.com")

	sized := multipartLogo(t, "huge.png", "image/png", 20*1024*1024)
	body := &countingReader{r: sized.Body}
	req := httptest.NewRequest(http.MethodPost, "/api/storage/upload-logo", body)
	req.Header.Set("Content-Type", sized.Header.Get("Content-Type"))
	require.EqualValues(t, -1, req.ContentLength)

	w, env := app.send(t, req, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "FILE_TOO_LARGE", env.Error.Code)
	assert.Less(t, body.read, 6*1024*1024)
	assert.Equal(t, 0, app.storage.Uploads)
}

func TestUploadLogoRejectsDeclaredOversize(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.register(t, "declared@example.com")

	req := multipartLogo(t, "big.png", "image/png", 6*1024*1024)
	require.Greater(t, req.ContentLength, int64(6*1024*1024))

	w, env := app.send(t, req, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "FILE_TOO_LARGE", env.Error.Code)
	assert.Equal(t, 0, app.storage.Uploads)
}

func TestDeleteLogoOfAnotherUser(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.register(t, "thief@example.com")

	w, env := app.do(t, http.MethodDelete, "/api/storage/delete-logo/"+"someone-else/logo.png", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
}

func TestContactSubmitAndRateLimit(t *testing.T) {
	app := newTestApp(t, &fixedCounter{hits: make(map[string]int64)})
	msg := gin.H{"name": "Moussa", "email": "m@example.com", "subject": "Hello", "message": "Question"}

	for i := 0; i < 2; i++ {
		w, env := app.do(t, http.MethodPost, "/api/contact", "", msg)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, string(env.Data), `"status":"new"`)
	}

	w, env := app.do(t, http.MethodPost, "/api/contact", "", msg)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", env.Error.Code)
	assert.Len(t, app.contacts.Messages, 2)
	assert.Len(t, app.events.Events, 2)
}

func TestStatsEndpoints(t *testing.T) {
	app := newTestApp(t, nil)
	token, _ := app.register(t, "stats@example.com")
	w, _ := app.do(t, http.MethodPost, "/api/entrepreneurs/me", token, profileBody())
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = app.do(t, http.MethodPatch, "/api/entrepreneurs/me/status", token, gin.H{"status": "published"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := app.do(t, http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_users":1,"total_entrepreneurs":1,"countries_covered":1}`, string(env.Data))

	w, env = app.do(t, http.MethodGet, "/api/contact/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_users":1,"total_profiles":1,"total_views":0,"total_problems":0}`, string(env.Data))
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t, nil)

	for _, path := range []string{"/health", "/api/health", "/api"} {
		w, _ := app.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
}
