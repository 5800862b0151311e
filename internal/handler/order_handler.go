package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/orders
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group, admin *echo.Group) {
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PATCH("/:id/status", h.updateStatus)

	admin.DELETE("/:id", h.remove)
}

type createOrderRequest struct {
	Items []usecase.OrderLineInput `json:"items"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) list(c echo.Context) error {
	orders, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	o, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	o, err := h.uc.Create(c.Request().Context(), currentUserID(c), req.Items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, o)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	o, err := h.uc.UpdateStatus(c.Request().Context(), id, req.Status, currentRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) remove(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	o, err := h.uc.Delete(c.Request().Context(), currentRole(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}
