package main

import (
	"marketplace/internal/config"
	"marketplace/internal/domain/model"
	"marketplace/internal/handler"
	"marketplace/internal/infra/db"
	infraRepo "marketplace/internal/infra/repository"
	"marketplace/internal/server"
	"marketplace/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.ProductType{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderProduct{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	cartRepo := infraRepo.NewCartItemGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	typeRepo := infraRepo.NewProductTypeGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(txManager, cartRepo, productRepo, typeRepo)
	orderUC := usecase.NewOrderUsecase(txManager, cfg.TaxRate)

	//Handler生成
	cartH := handler.NewCartHandler(cartUC)
	orderH := handler.NewOrderHandler(orderUC)
	productH := handler.NewProductHandler(typeRepo)

	//Server起動
	if err := server.Start(cfg, cartH, orderH, productH); err != nil {
		panic(err)
	}
}
