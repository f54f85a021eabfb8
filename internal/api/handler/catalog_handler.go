package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

// CatalogHandler serves the reference tables, areas and the user context
// lookup.
type CatalogHandler struct {
	catalogs ports.CatalogService
}

func NewCatalogHandler(catalogs ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs}
}

// List handles GET /:kind.
//
// @Summary      List a reference catalog
// @Tags         catalogs
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string  true  "sectores, entidades, pilares, ejes, metas, resultados or acciones"
// @Success      200   {array}   domain.CatalogEntry
// @Failure      404   {object}  errorResponse
// @Router       /{kind} [get]
func (h *CatalogHandler) List(c echo.Context) error {
	entries, err := h.catalogs.List(c.Request().Context(), c.Param("kind"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Create handles POST /:kind.
//
// @Summary      Add a reference catalog entry
// @Tags         catalogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string               true  "Catalog kind"
// @Param        body  body      catalogEntryRequest  true  "Entry"
// @Success      201   {object}  domain.CatalogEntry
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /{kind} [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	var req catalogEntryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	entry, err := h.catalogs.Create(c.Request().Context(), c.Param("kind"), ports.CatalogEntryInput{
		Code:   req.Code,
		Name:   req.Name,
		Status: req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// Update handles PUT /:kind/:id.
//
// @Summary      Update a reference catalog entry
// @Tags         catalogs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string               true  "Catalog kind"
// @Param        id    path      int                  true  "Entry id"
// @Param        body  body      catalogEntryRequest  true  "Entry"
// @Success      200   {object}  domain.CatalogEntry
// @Failure      404   {object}  errorResponse
// @Router       /{kind}/{id} [put]
func (h *CatalogHandler) Update(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req catalogEntryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	entry, err := h.catalogs.Update(c.Request().Context(), c.Param("kind"), id, ports.CatalogEntryInput{
		Code:   req.Code,
		Name:   req.Name,
		Status: req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// Areas handles GET /areas.
//
// @Summary      List areas
// @Tags         areas
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Area
// @Router       /areas [get]
func (h *CatalogHandler) Areas(c echo.Context) error {
	areas, err := h.catalogs.Areas(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, areas)
}

// AreasByEntity handles GET /entidades/:id/areas.
//
// @Summary      Areas of an entity
// @Tags         areas
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Entity id"
// @Success      200  {array}   domain.Area
// @Router       /entidades/{id}/areas [get]
func (h *CatalogHandler) AreasByEntity(c echo.Context) error {
	entityID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	areas, err := h.catalogs.AreasByEntity(c.Request().Context(), entityID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, areas)
}

// CreateArea handles POST /areas.
//
// @Summary      Create an area
// @Tags         areas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      areaRequest  true  "Area"
// @Success      201   {object}  domain.Area
// @Failure      400   {object}  errorResponse
// @Router       /areas [post]
func (h *CatalogHandler) CreateArea(c echo.Context) error {
	var req areaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	area, err := h.catalogs.CreateArea(c.Request().Context(), ports.AreaInput{
		EntityID: req.EntityID,
		Name:     req.Name,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, area)
}

// UpdateArea handles PUT /areas/:id.
//
// @Summary      Update an area
// @Tags         areas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Area id"
// @Param        body  body      areaRequest  true  "Area"
// @Success      200   {object}  domain.Area
// @Failure      404   {object}  errorResponse
// @Router       /areas/{id} [put]
func (h *CatalogHandler) UpdateArea(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req areaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	area, err := h.catalogs.UpdateArea(c.Request().Context(), id, ports.AreaInput{
		EntityID: req.EntityID,
		Name:     req.Name,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, area)
}

// DeleteArea handles DELETE /areas/:id.
//
// @Summary      Delete an area
// @Tags         areas
// @Security     BearerAuth
// @Param        id   path  int  true  "Area id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /areas/{id} [delete]
func (h *CatalogHandler) DeleteArea(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalogs.DeleteArea(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UserContext handles GET /contexto_usuario/:id_area.
//
// @Summary      Area, entity and sector of an area
// @Tags         areas
// @Produce      json
// @Security     BearerAuth
// @Param        id_area  path      int  true  "Area id"
// @Success      200      {object}  domain.UserContext
// @Failure      404      {object}  errorResponse
// @Router       /contexto_usuario/{id_area} [get]
func (h *CatalogHandler) UserContext(c echo.Context) error {
	areaID, err := idParam(c, "id_area")
	if err != nil {
		return err
	}
	uc, err := h.catalogs.UserContext(c.Request().Context(), areaID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, uc)
}
