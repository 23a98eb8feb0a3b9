package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// 全ハンドラの束
type Handlers struct {
	Auth       *handler.AuthHandler
	Product    *handler.ProductHandler
	Cart       *handler.CartHandler
	Order      *handler.OrderHandler
	AdminOrder *handler.AdminOrderHandler
	Profile    *handler.ProfileHandler
	Media      *handler.MediaHandler
	Contract   *handler.ContractHandler
	Queue      *handler.QueueHandler
}

func Start(addr string, cfg config.Config, customerRepo repository.CustomerRepository, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg, customerRepo)
	h.Order.RegisterRoutes(e, cfg, customerRepo)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.Profile.RegisterRoutes(e, cfg)
	h.Media.RegisterRoutes(e, cfg)
	h.Contract.RegisterRoutes(e, cfg)
	h.Queue.RegisterRoutes(e, cfg)

	return e.Start(addr)
}
