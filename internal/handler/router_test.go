package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/funval/hs-dashboard/internal/funval"
	"github.com/funval/hs-dashboard/internal/models"
	"github.com/funval/hs-dashboard/internal/service"
	"github.com/funval/hs-dashboard/internal/session"
	"github.com/funval/hs-dashboard/pkg/config"
	"github.com/funval/hs-dashboard/pkg/export"
)

// fakeBackend is a minimal stand-in for the Funval REST API, just enough
// surface for the screen flows under test.
type fakeBackend struct {
	role     string
	users    []models.User
	services []models.Service
	// unauthorized makes every authenticated endpoint answer 401.
	unauthorized bool
}

func (f *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			var creds funval.LoginRequest
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds.Password != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
				return
			}
			_, _ = w.Write([]byte(`{"token":"backend-token"}`))
			return
		}

		if f.unauthorized || r.Header.Get("Authorization") != "Bearer backend-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch r.URL.Path {
		case "/auth/profile":
			_ = json.NewEncoder(w).Encode(models.User{
				ID: 1, FirstName: "Ana", LastName: "Perez",
				Email: "ana@funval.org", Role: models.Role{ID: 1, Name: f.role},
			})
		case "/users":
			_ = json.NewEncoder(w).Encode(f.users)
		case "/roles":
			_ = json.NewEncoder(w).Encode([]models.Role{{ID: 1, Name: "Admin"}, {ID: 2, Name: "Student"}})
		case "/services":
			_ = json.NewEncoder(w).Encode(f.services)
		case "/categories":
			_ = json.NewEncoder(w).Encode([]models.Category{{ID: 1, Name: "Tutoring"}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestApp(t *testing.T, backend *fakeBackend) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logr := zap.NewNop()
	store := session.NewStore(rdb, config.SessionConfig{CookieName: "funval_session", TTL: time.Hour})
	client := funval.NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, logr, nil)
	validate := validator.New()

	authSvc := service.NewAuthService(client, validate, logr)
	userSvc := service.NewUserService(client, validate, logr, 10)
	categorySvc := service.NewCategoryService(client, validate, logr, 10)
	schoolSvc := service.NewSchoolService(client, validate, logr, 10)
	studentSvc := service.NewStudentService(client, export.NewStudentReport(), logr, 10)
	recordSvc := service.NewRecordService(client, validate, logr, config.UploadConfig{}, 10)
	roleSvc := service.NewRoleService(client, logr, 10)

	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.tmpl")
	Register(r, Handlers{
		Auth:       NewAuthHandler(authSvc, store, logr),
		Users:      NewUserHandler(userSvc, roleSvc, store),
		Categories: NewCategoryHandler(categorySvc, store),
		Schools:    NewSchoolHandler(schoolSvc, store),
		Services:   NewServiceHandler(recordSvc, categorySvc, store),
		Students:   NewStudentHandler(studentSvc, store),
		Roles:      NewRoleHandler(roleSvc, store),
	}, RouterDeps{Store: store, Logger: logr})

	return r, store
}

func doLogin(t *testing.T, r *gin.Engine, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func appSessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	res := rec.Result()
	defer res.Body.Close()
	for _, ck := range res.Cookies() {
		if ck.Name == "funval_session" && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestLoginLandsOnRoleHome(t *testing.T) {
	r, _ := newTestApp(t, &fakeBackend{role: "Admin"})

	rec := doLogin(t, r, "ana@funval.org", "secret")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/users", rec.Header().Get("Location"))
	appSessionCookie(t, rec)
}

func TestLoginStudentLandsOnServices(t *testing.T) {
	r, _ := newTestApp(t, &fakeBackend{role: "Student"})

	rec := doLogin(t, r, "ana@funval.org", "secret")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/student/services", rec.Header().Get("Location"))
}

func TestLoginBadCredentialsRerenders(t *testing.T) {
	r, _ := newTestApp(t, &fakeBackend{role: "Admin"})

	rec := doLogin(t, r, "ana@funval.org", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
	assert.Contains(t, rec.Body.String(), "ana@funval.org")
}

func TestAdminUsersListRendersRecords(t *testing.T) {
	backend := &fakeBackend{role: "Admin", users: []models.User{
		{ID: 1, FirstName: "Ana", LastName: "Perez", Email: "ana@funval.org", Role: models.Role{Name: "Admin"}},
		{ID: 2, FirstName: "Luis", LastName: "Gomez", Email: "luis@funval.org", Role: models.Role{Name: "Student"}},
	}}
	r, _ := newTestApp(t, backend)
	cookie := appSessionCookie(t, doLogin(t, r, "ana@funval.org", "secret"))

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ana@funval.org")
	assert.Contains(t, rec.Body.String(), "Luis Gomez")
}

func TestAdminUsersListFilters(t *testing.T) {
	backend := &fakeBackend{role: "Admin", users: []models.User{
		{ID: 1, FirstName: "Ana", Email: "ana@funval.org", Role: models.Role{Name: "Admin"}},
		{ID: 2, FirstName: "Luis", Email: "luis@funval.org", Role: models.Role{Name: "Student"}},
	}}
	r, _ := newTestApp(t, backend)
	cookie := appSessionCookie(t, doLogin(t, r, "ana@funval.org", "secret"))

	req := httptest.NewRequest(http.MethodGet, "/admin/users?q=luis", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "luis@funval.org")
	assert.NotContains(t, rec.Body.String(), "ana@funval.org")
}

func TestBackendUnauthorizedClearsSession(t *testing.T) {
	backend := &fakeBackend{role: "Admin"}
	r, _ := newTestApp(t, backend)
	cookie := appSessionCookie(t, doLogin(t, r, "ana@funval.org", "secret"))

	// The backend token is revoked between navigations.
	backend.unauthorized = true

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// The follow-up navigation no longer carries a live session.
	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRootRedirectsByRole(t *testing.T) {
	r, _ := newTestApp(t, &fakeBackend{role: "Student"})
	cookie := appSessionCookie(t, doLogin(t, r, "ana@funval.org", "secret"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/student/services", rec.Header().Get("Location"))

	anon := httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, anon)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestStudentCannotOpenAdminScreens(t *testing.T) {
	r, _ := newTestApp(t, &fakeBackend{role: "Student"})
	cookie := appSessionCookie(t, doLogin(t, r, "ana@funval.org", "secret"))

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/student/services", rec.Header().Get("Location"))
}

func TestLogoutClearsSession(t *testing.T) {
	r, _ := newTestApp(t, &fakeBackend{role: "Admin"})
	cookie := appSessionCookie(t, doLogin(t, r, "ana@funval.org", "secret"))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	req = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestStudentServicesShowsTotals(t *testing.T) {
	approved := 6.0
	backend := &fakeBackend{role: "Student", services: []models.Service{
		{ID: 1, Status: models.StatusApproved, AmountReported: 8, AmountApproved: &approved},
		{ID: 2, Status: models.StatusPending, AmountReported: 3},
	}}
	r, _ := newTestApp(t, backend)
	cookie := appSessionCookie(t, doLogin(t, r, "ana@funval.org", "secret"))

	req := httptest.NewRequest(http.MethodGet, "/student/services", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>11</strong> hours reported")
	assert.Contains(t, rec.Body.String(), "<strong>6</strong> hours approved")
}

func TestStudentServicesEmptyState(t *testing.T) {
	r, _ := newTestApp(t, &fakeBackend{role: "Student"})
	cookie := appSessionCookie(t, doLogin(t, r, "ana@funval.org", "secret"))

	req := httptest.NewRequest(http.MethodGet, "/student/services", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No service hours have been reported yet.")
	assert.NotContains(t, rec.Body.String(), "No services match your search.")
}

func TestServicesListShowsStatusBadges(t *testing.T) {
	approved := 3.0
	backend := &fakeBackend{role: "Admin", services: []models.Service{
		{ID: 1, Status: models.StatusPending, AmountReported: 5, Category: &models.Category{Name: "Tutoring"}},
		{ID: 2, Status: models.StatusApproved, AmountReported: 4, AmountApproved: &approved},
	}}
	r, _ := newTestApp(t, backend)
	cookie := appSessionCookie(t, doLogin(t, r, "ana@funval.org", "secret"))

	req := httptest.NewRequest(http.MethodGet, "/admin/services", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pending")
	assert.Contains(t, rec.Body.String(), "Approved")
	assert.Contains(t, rec.Body.String(), "Tutoring")
}
