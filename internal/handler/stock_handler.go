package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/stock と /api/stock-movements
type StockHandler struct {
	uc *usecase.StockUsecase
}

// DI
func NewStockHandler(uc *usecase.StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

func (h *StockHandler) RegisterRoutes(g *echo.Group, movements *echo.Group) {
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.PATCH("/:id/increase", h.increase)
	g.PATCH("/:id/decrease", h.decrease)
	g.PUT("/:id", h.set)
	g.DELETE("/:id", h.remove)

	movements.GET("", h.listMovements)
	movements.GET("/product/:id", h.listMovementsByProduct)
}

type createStockRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type amountRequest struct {
	Amount int64  `json:"amount"`
	Note   string `json:"note"`
}

type setQuantityRequest struct {
	Quantity int64  `json:"quantity"`
	Note     string `json:"note"`
}

func (h *StockHandler) list(c echo.Context) error {
	includeArchived := c.QueryParam("include_archived") == "true"

	rows, err := h.uc.List(c.Request().Context(), includeArchived)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *StockHandler) create(c echo.Context) error {
	var req createStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	s, err := h.uc.Create(c.Request().Context(), currentRole(c), usecase.CreateStockInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *StockHandler) detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	s, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *StockHandler) increase(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	s, err := h.uc.Increase(c.Request().Context(), currentRole(c), id, req.Amount, req.Note)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *StockHandler) decrease(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req amountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	s, err := h.uc.Decrease(c.Request().Context(), currentRole(c), id, req.Amount, req.Note)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *StockHandler) set(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	s, err := h.uc.SetQuantity(c.Request().Context(), currentRole(c), id, req.Quantity, req.Note)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *StockHandler) remove(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	s, err := h.uc.Delete(c.Request().Context(), currentRole(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *StockHandler) listMovements(c echo.Context) error {
	rows, err := h.uc.ListMovements(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *StockHandler) listMovementsByProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	movements, err := h.uc.ListMovementsByProduct(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, movements)
}
