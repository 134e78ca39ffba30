package server

import (
	"marketplace/internal/config"
	"marketplace/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, cartH *handler.CartHandler, orderH *handler.OrderHandler, productH *handler.ProductHandler) {
	cartH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)
	productH.RegisterRoutes(e)
}
