package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func JSONError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// JSONUnavailable reports a failed read: an empty result plus a flag telling
// the client the request can be retried.
func JSONUnavailable(c echo.Context, message string) error {
	return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
		"error":     message,
		"retryable": true,
		"data":      []interface{}{},
	})
}
