package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

// MenuResolver returns the menu visible to a role.
type MenuResolver interface {
	Resolve(ctx context.Context, roleID int64) domain.VisibleMenu
}

// RequireView lets the request through when the caller's resolved menu links
// to at least one of the given views. Must run after Auth.
func RequireView(menus MenuResolver, views ...domain.View) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed(c, menus, views) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

// RequireCatalogView guards the generic catalog routes with the view of the
// catalog named by the :kind path parameter. Unknown kinds pass through so the
// handler can answer 404.
func RequireCatalogView(menus MenuResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			kind, err := domain.ParseCatalogKind(c.Param("kind"))
			if err != nil {
				return next(c)
			}
			if !allowed(c, menus, []domain.View{kind.View()}) {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

func allowed(c echo.Context, menus MenuResolver, views []domain.View) bool {
	claims, ok := ClaimsFrom(c)
	if !ok || claims.RoleID <= 0 {
		return false
	}
	menu := menus.Resolve(c.Request().Context(), claims.RoleID)
	for _, v := range views {
		if menu.Allows(v) {
			return true
		}
	}
	return false
}
