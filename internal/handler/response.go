package handler

import (
	"net/http"
	"strconv"

	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// AuthJWTがcontextに入れたuser_id
func currentUserID(c echo.Context) int64 {
	id, _ := c.Get(middleware.CtxUserIDKey).(int64)
	return id
}

// AuthJWTがcontextに入れたrole
func currentRole(c echo.Context) model.Role {
	role, _ := c.Get(middleware.CtxUserRoleKey).(model.Role)
	return role
}
