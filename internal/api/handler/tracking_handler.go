package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

// TrackingHandler serves the yearly tracking grid (rendición).
type TrackingHandler struct {
	tracking ports.TrackingService
}

func NewTrackingHandler(tracking ports.TrackingService) *TrackingHandler {
	return &TrackingHandler{tracking: tracking}
}

// Get handles GET /rendicion/:id_indicador/:gestion. A missing record is
// rendered as an empty object.
//
// @Summary      Tracking record of an indicator for a year
// @Tags         tracking
// @Produce      json
// @Security     BearerAuth
// @Param        id_indicador  path      int  true  "Indicator id"
// @Param        gestion       path      int  true  "Year"
// @Success      200           {object}  map[string]any
// @Failure      400           {object}  errorResponse
// @Router       /rendicion/{id_indicador}/{gestion} [get]
func (h *TrackingHandler) Get(c echo.Context) error {
	indicatorID, err := idParam(c, "id_indicador")
	if err != nil {
		return err
	}
	year, err := yearParam(c, "gestion")
	if err != nil {
		return err
	}

	rec, err := h.tracking.Get(c.Request().Context(), indicatorID, year)
	if err != nil {
		return err
	}
	if rec == nil {
		return c.JSON(http.StatusOK, struct{}{})
	}
	return c.JSON(http.StatusOK, rec)
}

// Save handles POST /rendicion. The body uses the flat grid layout; only the
// keys present are written and null or empty values clear a cell.
//
// @Summary      Create or update a tracking record
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      map[string]any  true  "Flat record: id_indicador, gestion, programado, ejecutado_ene..."
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /rendicion [post]
func (h *TrackingHandler) Save(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	patch, err := parseTrackingPatch(body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.tracking.Save(c.Request().Context(), patch, claims.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

// Columns handles GET /rendicion/columns.
//
// @Summary      Tracking grid columns
// @Tags         tracking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Column
// @Router       /rendicion/columns [get]
func (h *TrackingHandler) Columns(c echo.Context) error {
	return c.JSON(http.StatusOK, h.tracking.Columns())
}

func parseTrackingPatch(body map[string]json.RawMessage) (domain.TrackingPatch, error) {
	var p domain.TrackingPatch
	for key, raw := range body {
		switch key {
		case "id_rendicion", "fecha_actualizacion":
		case "id_indicador":
			v, err := decodeNumber(raw)
			if err != nil || v == nil {
				return p, fmt.Errorf("id_indicador must be a number")
			}
			p.IndicatorID = int64(*v)
		case "gestion":
			v, err := decodeNumber(raw)
			if err != nil || v == nil {
				return p, fmt.Errorf("gestion must be a number")
			}
			p.Year = int(*v)
		case "programado":
			v, err := decodeNumber(raw)
			if err != nil {
				return p, fmt.Errorf("programado: %w", err)
			}
			p.SetProgrammed = true
			p.Programmed = v
		case "descripcion_cualitativa":
			s, err := decodeText(raw)
			if err != nil {
				return p, fmt.Errorf("%s: %w", key, err)
			}
			p.Qualitative = &s
		case "modificaciones":
			s, err := decodeText(raw)
			if err != nil {
				return p, fmt.Errorf("%s: %w", key, err)
			}
			p.Modifications = &s
		default:
			v, err := decodeNumber(raw)
			if err != nil {
				return p, fmt.Errorf("%s: %w", key, err)
			}
			if p.Values == nil {
				p.Values = make(map[string]*float64)
			}
			p.Values[key] = v
		}
	}
	return p, nil
}

// decodeNumber accepts a JSON number, a numeric string, null or "". The last
// two mean no value.
func decodeNumber(raw json.RawMessage) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", s)
		}
		return &f, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("not a number")
	}
	return &f, nil
}

func decodeText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("must be a string")
	}
	return s, nil
}
