package server

import (
	"marketplace/internal/config"
	"marketplace/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func Start(cfg config.Config, cartH *handler.CartHandler, orderH *handler.OrderHandler, productH *handler.ProductHandler) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	RegisterRoutes(e, cfg, cartH, orderH, productH)

	return e.Start(":" + cfg.Port)
}
