package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

const claimsKey = "claims"

// Auth validates the bearer token and stores its claims in the context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			mc := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], mc, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			claims := claimsFromMap(mc)
			if claims.UserID <= 0 || claims.Username == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth.
func ClaimsFrom(c echo.Context) (*domain.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*domain.Claims)
	return claims, ok && claims != nil
}

// SetClaims stores claims the way Auth does.
func SetClaims(c echo.Context, claims *domain.Claims) {
	c.Set(claimsKey, claims)
}

func claimsFromMap(mc jwt.MapClaims) *domain.Claims {
	return &domain.Claims{
		UserID:   numberClaim(mc["id_usuario"]),
		Username: stringClaim(mc["username"]),
		Name:     stringClaim(mc["nombre"]),
		AreaID:   numberClaim(mc["id_area"]),
		RoleID:   numberClaim(mc["id_rol"]),
		RoleName: stringClaim(mc["rol"]),
	}
}

// JSON numbers decode as float64.
func numberClaim(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

func stringClaim(v any) string {
	s, _ := v.(string)
	return s
}
