package server

import (
	"shop/internal/config"
	"shop/internal/handler"
	"shop/internal/middleware"
	repo "shop/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handlersはルート登録に必要なハンドラ一式
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Address      *handler.AddressHandler
	Product      *handler.ProductHandler
	Category     *handler.CategoryHandler
	Comparison   *handler.ComparisonHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Payment      *handler.PaymentHandler
	Review       *handler.ReviewHandler
	AdminProduct *handler.AdminProductHandler
	AdminOrder   *handler.AdminOrderHandler
}

// Newはechoを組み立てて返す。Startは呼ばない
func New(cfg config.Config, logger zerolog.Logger, blacklist repo.TokenBlacklist, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLogger(logger))

	h.Auth.RegisterRoutes(e, cfg, blacklist)
	h.User.RegisterRoutes(e, cfg, blacklist)
	h.Address.RegisterRoutes(e, cfg, blacklist)
	h.Product.RegisterRoutes(e)
	h.Comparison.RegisterRoutes(e, cfg, blacklist)
	h.Category.RegisterRoutes(e, cfg, blacklist)
	h.Cart.RegisterRoutes(e, cfg, blacklist)
	h.Order.RegisterRoutes(e, cfg, blacklist)
	h.Payment.RegisterRoutes(e, cfg, blacklist)
	h.Review.RegisterRoutes(e, cfg, blacklist)
	h.AdminProduct.RegisterRoutes(e, cfg, blacklist)
	h.AdminOrder.RegisterRoutes(e, cfg, blacklist)

	return e
}
