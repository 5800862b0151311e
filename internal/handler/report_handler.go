package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/reports（読み出し専用の集計。JSONと?format=csvの両対応）
type ReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewReportHandler(uc *usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/stock-summary", h.stockSummary)
	g.GET("/low-stock", h.lowStock)
	g.GET("/stock", h.filteredStock)
}

func (h *ReportHandler) stockSummary(c echo.Context) error {
	rows, err := h.uc.StockSummary(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	if c.QueryParam("format") == "csv" {
		records := [][]string{{"product_name", "total_quantity"}}
		for _, r := range rows {
			records = append(records, []string{r.ProductName, strconv.FormatInt(r.TotalQuantity, 10)})
		}
		return writeCSV(c, "stock_summary_report.csv", records)
	}

	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) lowStock(c echo.Context) error {
	var threshold int64
	if v := c.QueryParam("threshold"); v != "" {
		t, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid threshold"})
		}
		threshold = t
	}

	from, err := parseDateParam(c.QueryParam("start_date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid start_date"})
	}
	to, err := parseDateParam(c.QueryParam("end_date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid end_date"})
	}

	rows, err := h.uc.LowStock(c.Request().Context(), usecase.LowStockInput{
		Threshold: threshold,
		From:      from,
		To:        to,
	})
	if err != nil {
		return writeError(c, err)
	}

	if c.QueryParam("format") == "csv" {
		records := [][]string{{"id", "product_name", "quantity", "updated_at"}}
		for _, r := range rows {
			records = append(records, []string{
				strconv.FormatInt(r.ID, 10),
				r.ProductName,
				strconv.FormatInt(r.Quantity, 10),
				r.UpdatedAt.Format(time.RFC3339),
			})
		}
		return writeCSV(c, "low_stock_report.csv", records)
	}

	return c.JSON(http.StatusOK, rows)
}

func (h *ReportHandler) filteredStock(c echo.Context) error {
	var filter repo.StockFilter

	if v := c.QueryParam("product_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
		}
		filter.ProductID = &id
	}
	if v := c.QueryParam("min_quantity"); v != "" {
		q, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_quantity"})
		}
		filter.MinQuantity = &q
	}

	rows, err := h.uc.FilteredStock(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, err)
	}

	if c.QueryParam("format") == "csv" {
		records := [][]string{{"id", "product_id", "product_name", "sku", "quantity", "updated_at"}}
		for _, r := range rows {
			records = append(records, []string{
				strconv.FormatInt(r.ID, 10),
				strconv.FormatInt(r.ProductID, 10),
				r.ProductName,
				r.SKU,
				strconv.FormatInt(r.Quantity, 10),
				r.UpdatedAt.Format(time.RFC3339),
			})
		}
		return writeCSV(c, "stock_report.csv", records)
	}

	return c.JSON(http.StatusOK, rows)
}

func writeCSV(c echo.Context, filename string, records [][]string) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv")
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// YYYY-MM-DD。空ならnil。
func parseDateParam(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
