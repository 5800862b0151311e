package server

import (
	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ルート登録に必要なhandler一式
type Handlers struct {
	Auth       *handler.AuthHandler
	Users      *handler.UserHandler
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler
	Stock      *handler.StockHandler
	Orders     *handler.OrderHandler
	Reports    *handler.ReportHandler
}

// New はechoインスタンスを組み立てて返す。
func New(cfg config.Config, log *zap.Logger, rdb *redis.Client, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	RegisterRoutes(e, cfg, log, rdb, h)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
