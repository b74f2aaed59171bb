package main

import (
	"github.com/shlankd/developEcommerce/internal/config"
	"github.com/shlankd/developEcommerce/internal/domain/model"
	"github.com/shlankd/developEcommerce/internal/handler"
	"github.com/shlankd/developEcommerce/internal/infra/db"
	"github.com/shlankd/developEcommerce/internal/infra/logger"
	infraRepo "github.com/shlankd/developEcommerce/internal/infra/repository"
	"github.com/shlankd/developEcommerce/internal/server"
	"github.com/shlankd/developEcommerce/internal/usecase"
	"github.com/shlankd/developEcommerce/internal/validator"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	//.envはあれば読む（本番は環境変数で渡す）
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
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Address{},
	); err != nil {
		log.Fatal("auto migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, validator.NewAuthValidator())
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo)
	cartUC := usecase.NewCartUsecase(cartItemRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	addressUC := usecase.NewAddressUsecase(addressRepo)

	//Handler生成
	h := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC),
		Address:      handler.NewAddressHandler(addressUC),
	}

	//Server起動
	if err := server.Start(cfg, log, h); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
