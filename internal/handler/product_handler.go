package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/products
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(g *echo.Group, admin *echo.Group) {
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.PATCH("/:id/archive", h.archive)

	// 物理削除はadminだけ
	admin.DELETE("/:id", h.remove)
}

type createProductRequest struct {
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	CategoryID  *int64 `json:"category_id"`
	Quantity    int64  `json:"quantity"`
}

type updateProductRequest struct {
	Name        *string `json:"name"`
	SKU         *string `json:"sku"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	CategoryID  *int64  `json:"category_id"`
}

func (h *ProductHandler) list(c echo.Context) error {
	includeArchived := c.QueryParam("include_archived") == "true"

	products, err := h.uc.List(c.Request().Context(), includeArchived)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.Create(c.Request().Context(), usecase.CreateProductInput{
		Name:            req.Name,
		SKU:             req.SKU,
		Description:     req.Description,
		Price:           req.Price,
		CategoryID:      req.CategoryID,
		InitialQuantity: req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.Update(c.Request().Context(), id, usecase.UpdateProductInput{
		Name:          req.Name,
		SKU:           req.SKU,
		Description:   req.Description,
		Price:         req.Price,
		CategoryID:    req.CategoryID,
		SetCategoryID: req.CategoryID != nil,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) archive(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.Archive(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) remove(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.Delete(c.Request().Context(), currentRole(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
