package server

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, log *zap.Logger, rdb *redis.Client, h Handlers) {
	e.Use(middleware.RequestLogger(log))

	api := e.Group("/api")

	// 認証なし（レートリミットだけ）
	auth := api.Group("/auth", middleware.RateLimiter(rdb))
	h.Auth.RegisterRoutes(auth)

	// 以降はJWT必須
	authed := api.Group("", middleware.AuthJWT(cfg))

	products := authed.Group("/products")
	productsAdmin := authed.Group("/products", middleware.RoleGuard(model.RoleAdmin))
	h.Products.RegisterRoutes(products, productsAdmin)

	categories := authed.Group("/categories")
	h.Categories.RegisterRoutes(categories)

	// 在庫の書き込みと履歴はadminだけ
	stock := authed.Group("/stock", middleware.RoleGuard(model.RoleAdmin))
	movements := authed.Group("/stock-movements", middleware.RoleGuard(model.RoleAdmin))
	h.Stock.RegisterRoutes(stock, movements)

	orders := authed.Group("/orders")
	ordersAdmin := authed.Group("/orders", middleware.RoleGuard(model.RoleAdmin))
	h.Orders.RegisterRoutes(orders, ordersAdmin)

	users := authed.Group("/users", middleware.RoleGuard(model.RoleAdmin))
	h.Users.RegisterRoutes(users)

	reports := authed.Group("/reports", middleware.RoleGuard(model.RoleAdmin))
	h.Reports.RegisterRoutes(reports)
}
