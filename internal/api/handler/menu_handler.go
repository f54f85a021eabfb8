package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

// MenuHandler serves the navigation catalog, access entries and resolved
// menus.
type MenuHandler struct {
	menus ports.MenuService
}

func NewMenuHandler(menus ports.MenuService) *MenuHandler {
	return &MenuHandler{menus: menus}
}

// Catalog handles GET /menu-catalog.
//
// @Summary      Full navigation catalog
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.MenuItem
// @Failure      401  {object}  errorResponse
// @Router       /menu-catalog [get]
func (h *MenuHandler) Catalog(c echo.Context) error {
	items, err := h.menus.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// AccessEntries handles GET /roles/:id/access-entries.
//
// @Summary      Access entries of a role
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Role id"
// @Success      200  {array}   domain.AccessEntry
// @Failure      404  {object}  errorResponse
// @Router       /roles/{id}/access-entries [get]
func (h *MenuHandler) AccessEntries(c echo.Context) error {
	roleID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	entries, err := h.menus.AccessEntries(c.Request().Context(), roleID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// RoleMenu handles GET /roles/:id/menu.
//
// @Summary      Menu visible to a role
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Role id"
// @Success      200  {array}   domain.Section
// @Router       /roles/{id}/menu [get]
func (h *MenuHandler) RoleMenu(c echo.Context) error {
	roleID, err := idParam(c, "id")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.menus.Resolve(c.Request().Context(), roleID))
}

// MyMenu handles GET /menu and resolves the caller's own role.
//
// @Summary      Menu of the authenticated user
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Section
// @Failure      401  {object}  errorResponse
// @Router       /menu [get]
func (h *MenuHandler) MyMenu(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.menus.Resolve(c.Request().Context(), claims.RoleID))
}

// SetAccessState handles PUT /access-entries/:id.
//
// @Summary      Enable or disable a menu item for a role
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Access entry id"
// @Param        body  body      accessStateRequest  true  "New state"
// @Success      200   {object}  domain.AccessEntry
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /access-entries/{id} [put]
func (h *MenuHandler) SetAccessState(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req accessStateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	entry, err := h.menus.SetAccessState(c.Request().Context(), id, req.State)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry)
}

// AdminItems handles GET /menu_admin.
//
// @Summary      Menu items with their parent label
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.MenuAdminItem
// @Router       /menu_admin [get]
func (h *MenuHandler) AdminItems(c echo.Context) error {
	items, err := h.menus.AdminItems(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// CreateItem handles POST /menu.
//
// @Summary      Create a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      menuItemRequest  true  "Menu item"
// @Success      201   {object}  domain.MenuItem
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /menu [post]
func (h *MenuHandler) CreateItem(c echo.Context) error {
	var req menuItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.menus.CreateItem(c.Request().Context(), toMenuItemInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /menu/:id.
//
// @Summary      Update a menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Menu item id"
// @Param        body  body      menuItemRequest  true  "Menu item"
// @Success      200   {object}  domain.MenuItem
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /menu/{id} [put]
func (h *MenuHandler) UpdateItem(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req menuItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	item, err := h.menus.UpdateItem(c.Request().Context(), id, toMenuItemInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func toMenuItemInput(req menuItemRequest) ports.MenuItemInput {
	return ports.MenuItemInput{
		Label:      req.Label,
		Kind:       req.Kind,
		Icon:       req.Icon,
		LinkTarget: req.LinkTarget,
		ParentID:   req.ParentID,
		Status:     req.Status,
	}
}
