package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const EndpointPathMetrics = "/metrics"

func CreateWebserver() *echo.Echo {
	webserver := echo.New()
	webserver.HideBanner = true
	webserver.HidePort = true

	// Root level middleware
	webserver.Pre(middleware.AddTrailingSlash())

	webserver.Use(middleware.Secure())
	webserver.Use(middleware.Recover())

	return webserver
}

// CreateMetricsServer serves the metrics of the given gatherer in the prometheus text format
func CreateMetricsServer(gatherer prometheus.Gatherer) *echo.Echo {
	webserver := echo.New()
	webserver.HideBanner = true
	webserver.HidePort = true
	webserver.Use(middleware.Recover())

	webserver.GET(EndpointPathMetrics, echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return webserver
}
