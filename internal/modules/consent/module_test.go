package consent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/univ-lehavre/talent-finder-sub000/internal/domain"
	"github.com/univ-lehavre/talent-finder-sub000/internal/handlers"
	"github.com/univ-lehavre/talent-finder-sub000/internal/middleware"
	"github.com/univ-lehavre/talent-finder-sub000/internal/module"
	"github.com/univ-lehavre/talent-finder-sub000/internal/registry"
	"github.com/univ-lehavre/talent-finder-sub000/internal/testutils"
)

type memoryRepo struct {
	mu     sync.Mutex
	events []domain.ConsentEvent
	states map[domain.ConsentType]domain.ConsentState
}

func (m *memoryRepo) Record(ctx context.Context, event *domain.ConsentEvent) (*domain.ConsentState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := surrealmodels.CustomDateTime{Time: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	e := *event
	e.At = now
	m.events = append(m.events, e)
	state := domain.ConsentState{User: event.User, Type: event.Type, Granted: event.Action.Granted(), UpdatedAt: now}
	m.states[event.Type] = state
	return &state, nil
}

func (m *memoryRepo) States(ctx context.Context, userID *surrealmodels.RecordID) ([]domain.ConsentState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ConsentState
	for _, s := range m.states {
		out = append(out, s)
	}
	return out, nil
}

func (m *memoryRepo) Events(ctx context.Context, userID *surrealmodels.RecordID, limit int) ([]domain.ConsentEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ConsentEvent
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}

func setupModule(t *testing.T) (*echo.Echo, *registry.Registry) {
	t.Helper()
	user := &domain.User{ID: testutils.NewTestRecordID("user"), Email: "alice@example.org"}
	signIn := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.UserContextKey, user)
			return next(c)
		}
	}

	e := echo.New()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("a-very-secret-key-for-testing-!"))))
	e.Use(middleware.Preferences, signIn)
	routes := module.Routes{
		Public: e.Group(""),
		App:    e.Group("/app", middleware.RequireUser),
		API:    e.Group("/api"),
	}

	reg := registry.New(nil)
	m := New(Dependencies{Repository: &memoryRepo{states: map[domain.ConsentType]domain.ConsentState{}}})
	require.Equal(t, "consent", m.Name())
	require.NoError(t, m.Register(reg))
	require.NoError(t, m.Boot(context.Background(), routes, reg))
	return e, reg
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestModule_RegistersService(t *testing.T) {
	_, reg := setupModule(t)
	svc, ok := registry.Get(reg, ServiceKey)
	assert.True(t, ok)
	assert.NotNil(t, svc)
}

func TestHandler_HTMXToggleReturnsRow(t *testing.T) {
	e, _ := setupModule(t)

	req := httptest.NewRequest(http.MethodPost, "/app/consent/analytics/grant", nil)
	req.Header.Set("HX-Request", "true")
	rec := serve(e, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="consent-analytics"`)
	assert.Contains(t, body, `/app/consent/analytics/revoke`)
	assert.NotContains(t, body, "<html", "fragment only")
}

func TestHandler_FormPostRedirects(t *testing.T) {
	e, _ := setupModule(t)

	rec := serve(e, httptest.NewRequest(http.MethodPost, "/app/consent/contact/grant", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/app/consent", rec.Header().Get(echo.HeaderLocation))
}

func TestHandler_RejectsUnknownType(t *testing.T) {
	e, _ := setupModule(t)

	rec := serve(e, httptest.NewRequest(http.MethodPost, "/app/consent/telepathy/grant", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(e, httptest.NewRequest(http.MethodPost, "/app/consent/contact/maybe", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_PageAndAPI(t *testing.T) {
	e, _ := setupModule(t)
	serve(e, httptest.NewRequest(http.MethodPost, "/app/consent/contact/grant", nil))

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/app/consent", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	for _, t2 := range domain.ConsentTypes {
		assert.Contains(t, rec.Body.String(), `id="consent-`+string(t2)+`"`)
	}

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/api/consent", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"analytics":false,"profile_visibility":false,"contact":true,"openalex_matching":false}`, rec.Body.String())
}
