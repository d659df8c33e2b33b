package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"agristat/pkg/middleware"
)

type registrar interface{ Register(g *echo.Group) }

type syncRegistrar interface {
	Register(g *echo.Group, guard ...echo.MiddlewareFunc)
}

func New(
	e *echo.Echo,
	healthCtrl interface{ Health(echo.Context) error },
	recordCtrl registrar,
	syncCtrl syncRegistrar,
	analysisCtrl registrar,
	exportCtrl registrar,
	syncToken string,
) *echo.Echo {
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(echoMiddleware.Logger())

	e.GET("/health", healthCtrl.Health)

	api := e.Group("/api/v1")
	recordCtrl.Register(api)
	syncCtrl.Register(api, middleware.RequireToken(syncToken))
	analysisCtrl.Register(api)
	exportCtrl.Register(api)
	return e
}
