package server

import (
	"strings"

	"github.com/shlankd/developEcommerce/internal/config"
	"github.com/shlankd/developEcommerce/internal/handler"
	"github.com/shlankd/developEcommerce/internal/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handlersはルート登録に必要なハンドラ一式
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	AdminProduct *handler.AdminProductHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	Address      *handler.AddressHandler
}

func Start(cfg config.Config, log *zap.Logger, h Handlers) error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLogger(log))

	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.Address.RegisterRoutes(e, cfg)

	addr := listenAddr(cfg.Port)

	log.Info("server start", zap.String("addr", addr))
	return e.Start(addr)
}

// PORTは「8080」でも「:8080」でも受ける
func listenAddr(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
