package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const Version = "1.0.0"

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "estateview",
		"version": Version,
	})
}
