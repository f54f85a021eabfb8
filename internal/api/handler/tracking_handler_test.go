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
)

type stubTrackingService struct {
	record   *domain.TrackingRecord
	patch    domain.TrackingPatch
	username string
}

func (s *stubTrackingService) Get(_ context.Context, indicatorID int64, year int) (*domain.TrackingRecord, error) {
	if s.record == nil || s.record.IndicatorID != indicatorID || s.record.Year != year {
		return nil, nil
	}
	return s.record, nil
}

func (s *stubTrackingService) Save(_ context.Context, patch domain.TrackingPatch, username string) (*domain.TrackingRecord, error) {
	s.patch, s.username = patch, username
	rec := &domain.TrackingRecord{ID: 1, IndicatorID: patch.IndicatorID, Year: patch.Year}
	if err := rec.Apply(patch); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *stubTrackingService) Columns() []domain.Column {
	return domain.TrackingColumns()
}

func TestParseTrackingPatch(t *testing.T) {
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(`{
		"id_indicador": "12",
		"gestion": 2025,
		"programado": "100.5",
		"ejecutado_ene": 10,
		"ejecutado_feb": "",
		"acumulado_feb": null,
		"descripcion_cualitativa": "avance normal",
		"modificaciones": null,
		"id_rendicion": 99,
		"fecha_actualizacion": "2025-01-01T00:00:00Z"
	}`), &body))

	p, err := parseTrackingPatch(body)
	require.NoError(t, err)

	assert.Equal(t, int64(12), p.IndicatorID)
	assert.Equal(t, 2025, p.Year)
	assert.True(t, p.SetProgrammed)
	require.NotNil(t, p.Programmed)
	assert.Equal(t, 100.5, *p.Programmed)
	require.Len(t, p.Values, 3)
	assert.Equal(t, 10.0, *p.Values["ejecutado_ene"])
	assert.Nil(t, p.Values["ejecutado_feb"])
	assert.Nil(t, p.Values["acumulado_feb"])
	require.NotNil(t, p.Qualitative)
	assert.Equal(t, "avance normal", *p.Qualitative)
	require.NotNil(t, p.Modifications)
	assert.Equal(t, "", *p.Modifications)
}

func TestParseTrackingPatch_Rejects(t *testing.T) {
	for _, raw := range []string{
		`{"id_indicador": "abc"}`,
		`{"gestion": null}`,
		`{"ejecutado_ene": "diez"}`,
		`{"programado": true}`,
		`{"descripcion_cualitativa": 5}`,
	} {
		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(raw), &body))
		_, err := parseTrackingPatch(body)
		assert.Error(t, err, raw)
	}
}

func TestTrackingHandler_GetMissingIsEmptyObject(t *testing.T) {
	e := newTestEcho()
	h := NewTrackingHandler(&stubTrackingService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id_indicador", "gestion")
	c.SetParamValues("3", "2025")
	run(e, c, h.Get)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

func TestTrackingHandler_GetFlatRecord(t *testing.T) {
	e := newTestEcho()
	stored := &domain.TrackingRecord{ID: 5, IndicatorID: 3, Year: 2025}
	v := 7.0
	require.NoError(t, stored.Apply(domain.TrackingPatch{Values: map[string]*float64{"ejecutado_ene": &v}}))
	h := NewTrackingHandler(&stubTrackingService{record: stored})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id_indicador", "gestion")
	c.SetParamValues("3", "2025")
	run(e, c, h.Get)

	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.EqualValues(t, 7, got["ejecutado_ene"])
	assert.EqualValues(t, 7, got["acumulado_ene"])
}

func TestTrackingHandler_Save(t *testing.T) {
	e := newTestEcho()
	svc := &stubTrackingService{}
	h := NewTrackingHandler(svc)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/sms/rendicion",
		`{"id_indicador":3,"gestion":2025,"ejecutado_mar":4}`), rec)
	middleware.SetClaims(c, &domain.Claims{UserID: 1, Username: "mmaya", RoleID: 7})
	run(e, c, h.Save)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "mmaya", svc.username)
	assert.Equal(t, int64(3), svc.patch.IndicatorID)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.EqualValues(t, 4, got["acumulado_mar"])
}

func TestTrackingHandler_SaveRejectsUnknownColumn(t *testing.T) {
	e := newTestEcho()
	h := NewTrackingHandler(&stubTrackingService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/sms/rendicion",
		`{"id_indicador":3,"gestion":2025,"estado":1}`), httptest.NewRecorder())
	middleware.SetClaims(c, &domain.Claims{UserID: 1, Username: "mmaya", RoleID: 7})

	assert.ErrorIs(t, h.Save(c), domain.ErrInvalidInput)
}

func TestTrackingHandler_Columns(t *testing.T) {
	e := newTestEcho()
	h := NewTrackingHandler(&stubTrackingService{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	run(e, c, h.Columns)

	var cols []domain.Column
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cols))
	assert.Len(t, cols, 36)
}
