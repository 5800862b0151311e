package main

import (
	"context"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/redisdb"
	infraRepo "app/internal/infra/repository"
	"app/internal/logger"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 24 * time.Hour,
	}
}

func (i *jwtIssuer) Issue(user model.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envはなくてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Stock{},
		&model.StockMovement{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	//RedisはなくてもOK（レートリミットが無効になるだけ）
	rdb := redisdb.Connect(context.Background(), cfg)
	if rdb == nil {
		log.Warn("redis unavailable, rate limiting disabled")
	}

	//Repository（GORM実装）生成
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	stockRepo := infraRepo.NewStockGormRepository(gormDB)
	movementRepo := infraRepo.NewStockMovementGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	reportRepo := infraRepo.NewReportGormRepository(gormDB)

	//usecaseに渡す部品
	policy := usecase.NewPolicy()
	hasher := usecase.NewBcryptHasher(10)
	issuer := newJWTIssuer(cfg.JWTSecret)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, hasher, issuer)
	userUC := usecase.NewUserUsecase(userRepo, policy)
	productUC := usecase.NewProductUsecase(txManager, productRepo, policy)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	stockUC := usecase.NewStockUsecase(txManager, stockRepo, movementRepo, policy)
	orderUC := usecase.NewOrderUsecase(txManager, policy)
	reportUC := usecase.NewReportUsecase(reportRepo)

	//Handler生成
	h := server.Handlers{
		Auth:       handler.NewAuthHandler(authUC),
		Users:      handler.NewUserHandler(userUC),
		Products:   handler.NewProductHandler(productUC),
		Categories: handler.NewCategoryHandler(categoryUC),
		Stock:      handler.NewStockHandler(stockUC),
		Orders:     handler.NewOrderHandler(orderUC),
		Reports:    handler.NewReportHandler(reportUC),
	}

	//Server起動
	addr := ":" + cfg.Port
	e := server.New(cfg, log, rdb, h)

	log.Info("server starting", zap.String("addr", addr))
	if err := server.Start(e, addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
