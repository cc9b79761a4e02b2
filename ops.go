package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// newOpsServer exposes liveness and Prometheus metrics.
func newOpsServer(checks ...pinger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/healthz", healthz(checks))
	e.GET("/metrics", echoprometheus.NewHandler())
	return e
}

func healthz(checks []pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		for _, chk := range checks {
			if err := chk.Ping(ctx); err != nil {
				c.Logger().Error(err)
				return c.String(http.StatusServiceUnavailable, err.Error())
			}
		}
		return c.NoContent(http.StatusOK)
	}
}
