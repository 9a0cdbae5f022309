package funval

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/funval/hs-dashboard/pkg/config"
	appErrors "github.com/funval/hs-dashboard/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, zap.NewNop(), nil)
}

func TestClientAttachesBearerToken(t *testing.T) {
	var authorization string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		authorization = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.ListServices(context.Background(), Auth{Token: "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", authorization)
}

func TestClientUnauthorizedBecomesSessionExpired(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ListServices(context.Background(), Auth{Token: "stale"})
	require.ErrorIs(t, err, appErrors.ErrSessionExpired)
}

func TestClientCarriesServerMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"email already taken"}`))
	})

	err := client.CreateUser(context.Background(), Auth{Token: "tok"}, UserPayload{})
	require.ErrorIs(t, err, appErrors.ErrValidation)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "email already taken", appErr.Message)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
}

func TestClientBadRequestBecomesValidation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	err := client.CreateUser(context.Background(), Auth{Token: "tok"}, UserPayload{})
	require.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, appErrors.ErrValidation.Message, appErrors.FromError(err).Message)
}

func TestClientServerErrorStaysBackend(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.CreateUser(context.Background(), Auth{Token: "tok"}, UserPayload{})
	require.ErrorIs(t, err, appErrors.ErrBackend)
}

func TestClientNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetService(context.Background(), Auth{Token: "tok"}, 99)
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestLoginReadsTokenFromBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"body-token"}`))
	})

	resp, err := client.Login(context.Background(), LoginRequest{Email: "a@funval.org", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "body-token", resp.Token)
}

func TestLoginFallsBackToCookieToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "cookie-token"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})

	resp, err := client.Login(context.Background(), LoginRequest{Email: "a@funval.org", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "cookie-token", resp.Token)
}

func TestLoginWithoutAnyToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"ok"}`))
	})

	_, err := client.Login(context.Background(), LoginRequest{Email: "a@funval.org", Password: "pw"})
	require.Error(t, err)
}

func TestLoginBadCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"wrong password"}`))
	})

	_, err := client.Login(context.Background(), LoginRequest{Email: "a@funval.org", Password: "bad"})
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	assert.Equal(t, "wrong password", appErrors.FromError(err).Message)
}

type recordingObserver struct {
	method string
	path   string
	status int
}

func (o *recordingObserver) ObserveBackendRequest(method, path string, status int, _ time.Duration) {
	o.method, o.path, o.status = method, path, status
}

func TestObserverSeesRouteNotEntityID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"status":"Pending"}`))
	}))
	t.Cleanup(srv.Close)

	observer := &recordingObserver{}
	client := NewClient(config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, zap.NewNop(), observer)

	_, err := client.GetService(context.Background(), Auth{Token: "tok"}, 7)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, observer.method)
	assert.Equal(t, "services/:id", observer.path)
	assert.Equal(t, http.StatusOK, observer.status)
}

func TestMetricRoute(t *testing.T) {
	assert.Equal(t, "services", metricRoute("services"))
	assert.Equal(t, "services/:id", metricRoute("services/42"))
	assert.Equal(t, "review/:id", metricRoute("review/7"))
	assert.Equal(t, "evidence/:id", metricRoute("evidence/123"))
	assert.Equal(t, "auth/login", metricRoute("auth/login"))
}

func TestDownloadEvidenceDefaultsContentType(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/evidence/5", r.URL.Path)
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte("%PDF-1.4"))
	})

	evidence, err := client.DownloadEvidence(context.Background(), Auth{Token: "tok"}, 5)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", evidence.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), evidence.Body)
}
