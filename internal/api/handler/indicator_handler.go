package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

// IndicatorHandler serves the parameter matrix.
type IndicatorHandler struct {
	indicators ports.IndicatorService
}

func NewIndicatorHandler(indicators ports.IndicatorService) *IndicatorHandler {
	return &IndicatorHandler{indicators: indicators}
}

// List handles GET /matriz_parametros.
//
// @Summary      List indicators
// @Tags         indicators
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Indicator
// @Router       /matriz_parametros [get]
func (h *IndicatorHandler) List(c echo.Context) error {
	list, err := h.indicators.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// ListByArea handles GET /indicadores/area/:id_area.
//
// @Summary      Indicators of an area
// @Tags         indicators
// @Produce      json
// @Security     BearerAuth
// @Param        id_area  path     int  true  "Area id"
// @Success      200      {array}  domain.Indicator
// @Router       /indicadores/area/{id_area} [get]
func (h *IndicatorHandler) ListByArea(c echo.Context) error {
	areaID, err := idParam(c, "id_area")
	if err != nil {
		return err
	}
	list, err := h.indicators.ListByArea(c.Request().Context(), areaID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Create handles POST /matriz_parametros.
//
// @Summary      Create an indicator
// @Tags         indicators
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      indicatorRequest  true  "Indicator"
// @Success      201   {object}  domain.Indicator
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /matriz_parametros [post]
func (h *IndicatorHandler) Create(c echo.Context) error {
	var req indicatorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ind, err := h.indicators.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ind)
}

// Update handles PUT /matriz_parametros/:id.
//
// @Summary      Update an indicator
// @Tags         indicators
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Indicator id"
// @Param        body  body      indicatorRequest  true  "Indicator"
// @Success      200   {object}  domain.Indicator
// @Failure      404   {object}  errorResponse
// @Router       /matriz_parametros/{id} [put]
func (h *IndicatorHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req indicatorRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ind, err := h.indicators.Update(c.Request().Context(), id, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ind)
}
