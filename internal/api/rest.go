package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	urlParamId      = "id"
	indentationChar = "  "

	EndpointPathAlive = "/alive/"
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// CreateRestService creates the REST api. Request metrics are registered at the given registerer, if any.
func CreateRestService(registerer prometheus.Registerer) *echo.Echo {
	echoRest := CreateWebserver()

	echoRest.Use(middleware.Logger())
	if registerer != nil {
		echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "pidwin",
			Subsystem:  "api",
			Registerer: registerer,
			Skipper: func(c echo.Context) bool {
				return c.Path() == EndpointPathAlive
			},
		}))
	}

	echoRest.GET(EndpointPathAlive, isAlive)

	registerLoopEndpoints(echoRest)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}
