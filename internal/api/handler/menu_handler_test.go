package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmaya/sms-monitoreo/internal/api/middleware"
	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

type stubMenuService struct {
	ports.MenuService
	resolved   map[int64]domain.VisibleMenu
	lastState  string
	lastEntry  int64
	created    ports.MenuItemInput
	accessErr  error
	resolveFor []int64
}

func (s *stubMenuService) Resolve(_ context.Context, roleID int64) domain.VisibleMenu {
	s.resolveFor = append(s.resolveFor, roleID)
	if m, ok := s.resolved[roleID]; ok {
		return m
	}
	return domain.VisibleMenu{}
}

func (s *stubMenuService) AccessEntries(_ context.Context, roleID int64) ([]domain.AccessEntry, error) {
	if s.accessErr != nil {
		return nil, s.accessErr
	}
	return []domain.AccessEntry{{ID: 1, RoleID: roleID, MenuItemID: 10, State: domain.StateEnabled, Label: "OPS"}}, nil
}

func (s *stubMenuService) SetAccessState(_ context.Context, id int64, state string) (*domain.AccessEntry, error) {
	s.lastEntry, s.lastState = id, state
	return &domain.AccessEntry{ID: id, RoleID: 7, MenuItemID: 10, State: domain.ParseAccessState(state)}, nil
}

func (s *stubMenuService) CreateItem(_ context.Context, in ports.MenuItemInput) (*domain.MenuItem, error) {
	s.created = in
	return &domain.MenuItem{ID: 30, Label: in.Label, Kind: domain.ParseMenuKind(in.Kind), ParentID: in.ParentID, LinkTarget: in.LinkTarget, Status: domain.StatusActive}, nil
}

func opsMenu() domain.VisibleMenu {
	return domain.VisibleMenu{{
		ID:     1,
		Label:  "OPS",
		Leaves: []domain.VisibleLeaf{{ID: 2, Label: "Reports", LinkTarget: "reports", View: domain.ViewUnknown}},
	}}
}

func TestMenuHandler_MyMenuUsesTokenRole(t *testing.T) {
	e := newTestEcho()
	svc := &stubMenuService{resolved: map[int64]domain.VisibleMenu{7: opsMenu()}}
	h := NewMenuHandler(svc)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/sms/menu", nil), rec)
	middleware.SetClaims(c, &domain.Claims{UserID: 1, Username: "u", RoleID: 7})
	run(e, c, h.MyMenu)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int64{7}, svc.resolveFor)

	var got domain.VisibleMenu
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Reports", got[0].Leaves[0].Label)
}

func TestMenuHandler_RoleMenuEmptyIsArray(t *testing.T) {
	e := newTestEcho()
	h := NewMenuHandler(&stubMenuService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("99")
	run(e, c, h.RoleMenu)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMenuHandler_RoleMenuBadID(t *testing.T) {
	e := newTestEcho()
	h := NewMenuHandler(&stubMenuService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	run(e, c, h.RoleMenu)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMenuHandler_AccessEntries(t *testing.T) {
	e := newTestEcho()
	h := NewMenuHandler(&stubMenuService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("7")
	run(e, c, h.AccessEntries)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []domain.AccessEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].RoleID)
	assert.Equal(t, domain.StateEnabled, got[0].State)
}

func TestMenuHandler_AccessEntriesUnknownRole(t *testing.T) {
	e := newTestEcho()
	h := NewMenuHandler(&stubMenuService{accessErr: domain.ErrRoleNotFound})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("7")

	assert.ErrorIs(t, h.AccessEntries(c), domain.ErrRoleNotFound)
}

func TestMenuHandler_SetAccessState(t *testing.T) {
	e := newTestEcho()
	svc := &stubMenuService{}
	h := NewMenuHandler(svc)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/", `{"state":"disabled"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("15")
	run(e, c, h.SetAccessState)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(15), svc.lastEntry)
	assert.Equal(t, "disabled", svc.lastState)
}

func TestMenuHandler_CreateItem(t *testing.T) {
	e := newTestEcho()
	svc := &stubMenuService{}
	h := NewMenuHandler(svc)

	rec := httptest.NewRecorder()
	body := `{"label":"Roles","kind":"leaf","link_target":"loadRolesView","parent_id":1}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/", body), rec)
	run(e, c, h.CreateItem)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created.ParentID)
	assert.Equal(t, int64(1), *svc.created.ParentID)
	require.NotNil(t, svc.created.LinkTarget)
	assert.Equal(t, "loadRolesView", *svc.created.LinkTarget)
}

func TestMenuHandler_CreateItemValidation(t *testing.T) {
	e := newTestEcho()
	h := NewMenuHandler(&stubMenuService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/", `{"kind":"leaf"}`), rec)
	run(e, c, h.CreateItem)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "label is required")
}
