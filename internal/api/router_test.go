package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

const testSecret = "router-secret"

type fakeAuth struct{}

func (fakeAuth) Login(_ context.Context, username, password string) (string, *domain.User, error) {
	if username == "mmaya" && password == "secret" {
		return "tok", &domain.User{ID: 1, Username: username, Status: domain.StatusActive}, nil
	}
	return "", nil, domain.ErrInvalidCredentials
}

type fakeMenus struct {
	ports.MenuService
}

// Role 7 administers users and sectors; role 8 only sees reports.
func (fakeMenus) Resolve(_ context.Context, roleID int64) domain.VisibleMenu {
	switch roleID {
	case 7:
		return domain.VisibleMenu{{ID: 1, Label: "CONFIGURACION", Leaves: []domain.VisibleLeaf{
			{ID: 2, Label: "Usuarios", View: domain.ViewUsers},
			{ID: 3, Label: "Sector", View: domain.ViewSectors},
		}}}
	case 8:
		return domain.VisibleMenu{{ID: 1, Label: "OPS", Leaves: []domain.VisibleLeaf{
			{ID: 4, Label: "Reports", View: domain.ViewDashboard},
		}}}
	}
	return domain.VisibleMenu{}
}

type fakeUsers struct {
	ports.UserService
}

func (fakeUsers) List(context.Context) ([]*domain.User, error) {
	return []*domain.User{{ID: 1, Username: "mmaya"}}, nil
}

type fakeCatalogs struct {
	ports.CatalogService
	created string
}

func (f *fakeCatalogs) List(_ context.Context, kind string) ([]domain.CatalogEntry, error) {
	if _, err := domain.ParseCatalogKind(kind); err != nil {
		return nil, err
	}
	return []domain.CatalogEntry{}, nil
}

func (f *fakeCatalogs) Create(_ context.Context, kind string, in ports.CatalogEntryInput) (*domain.CatalogEntry, error) {
	f.created = kind
	return &domain.CatalogEntry{ID: 1, Name: in.Name, Status: domain.StatusActive}, nil
}

func newTestRouter(t *testing.T) (*echo.Echo, *fakeCatalogs) {
	t.Helper()
	catalogs := &fakeCatalogs{}
	e := NewRouter(Services{
		Auth:     fakeAuth{},
		Menus:    fakeMenus{},
		Users:    fakeUsers{},
		Catalogs: catalogs,
	}, Options{
		JWTSecret:  testSecret,
		LoginRate:  100,
		LoginBurst: 100,
		Registry:   prometheus.NewRegistry(),
		Logger:     zerolog.Nop(),
	})
	return e, catalogs
}

func bearer(t *testing.T, roleID int64) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id_usuario": 1,
		"username":   "mmaya",
		"id_rol":     roleID,
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + s
}

func do(e *echo.Echo, method, path, auth, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	e, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health/ready", "", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/metrics", "", "").Code)

	rec := do(e, http.MethodPost, "/api/sms/login", "", `{"username":"mmaya","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"tok"`)

	rec = do(e, http.MethodPost, "/api/sms/login", "", `{"username":"mmaya","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())
}

func TestRouter_RequiresToken(t *testing.T) {
	e, _ := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/api/sms/menu", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/api/sms/sectores", "Bearer junk", "").Code)
}

func TestRouter_MenuOfCaller(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/api/sms/menu", bearer(t, 8), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Reports"`)

	rec = do(e, http.MethodGet, "/api/sms/menu", bearer(t, 99), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_ViewGuards(t *testing.T) {
	e, catalogs := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/sms/usuarios", bearer(t, 7), "").Code)
	assert.Equal(t, http.StatusForbidden, do(e, http.MethodGet, "/api/sms/usuarios", bearer(t, 8), "").Code)

	rec := do(e, http.MethodPost, "/api/sms/sectores", bearer(t, 7), `{"nombre":"Salud"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "sectores", catalogs.created)

	assert.Equal(t, http.StatusForbidden, do(e, http.MethodPost, "/api/sms/pilares", bearer(t, 7), `{"nombre":"P"}`).Code)
}

func TestRouter_CatalogKinds(t *testing.T) {
	e, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/sms/ejes", bearer(t, 8), "").Code)
	assert.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/sms/planetas", bearer(t, 8), "").Code)
}
