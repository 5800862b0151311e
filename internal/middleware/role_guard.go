package middleware

import (
	"net/http"

	"app/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// contextに入っているroleが許可リストに入っているか確認する。
func RoleGuard(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(model.Role)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			for _, a := range allowed {
				if role == a {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
		}
	}
}
