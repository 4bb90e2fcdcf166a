package main

import (
	"shop/internal/config"
	"shop/internal/domain/model"
	"shop/internal/handler"
	"shop/internal/infra/blacklist"
	"shop/internal/infra/db"
	infraRepo "shop/internal/infra/repository"
	"shop/internal/logger"
	"shop/internal/server"
	"shop/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envはローカル開発用。無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.GoEnv)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Cart{},
		&model.OrderItem{},
		&model.Order{},
		&model.Address{},
		&model.Payment{},
		&model.CreditCard{},
		&model.Review{},
		&model.ComparisonProduct{},
		&model.InventoryAdjustment{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	//Redis（トークン失効リスト）
	redisClient := blacklist.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	tokenBlacklist := blacklist.NewRedisTokenBlacklist(redisClient)

	//Repository（GORM実装）生成
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	comparisonRepo := infraRepo.NewComparisonGormRepository(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(txManager, userRepo, tokenBlacklist, cfg.JWTSecret)
	userUC := usecase.NewUserUsecase(userRepo)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	productUC := usecase.NewProductUsecase(txManager, productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	cartUC := usecase.NewCartUsecase(txManager)
	orderUC := usecase.NewOrderUsecase(txManager)
	paymentUC := usecase.NewPaymentUsecase(txManager)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, productRepo)
	comparisonUC := usecase.NewComparisonUsecase(comparisonRepo, productRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		User:         handler.NewUserHandler(userUC),
		Address:      handler.NewAddressHandler(addressUC),
		Product:      handler.NewProductHandler(productUC),
		Comparison:   handler.NewComparisonHandler(comparisonUC),
		Category:     handler.NewCategoryHandler(categoryUC),
		Cart:         handler.NewCartHandler(cartUC),
		Order:        handler.NewOrderHandler(orderUC),
		Payment:      handler.NewPaymentHandler(paymentUC),
		Review:       handler.NewReviewHandler(reviewUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
	}

	//Server起動
	e := server.New(cfg, log, tokenBlacklist, handlers)

	addr := ":" + cfg.Port
	if cfg.Port[0] == ':' {
		addr = cfg.Port
	}

	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
