package middleware

import (
	"net/http"

	"github.com/shlankd/developEcommerce/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// 管理者だけ通すガード。AuthJWTの後ろに置く。
func AdminRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxUserRoleKey).(string)
			if !ok || role != string(model.RoleAdmin) {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}
			return next(c)
		}
	}
}
