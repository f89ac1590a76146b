package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"EstateView/favorites"
	"EstateView/utils"
)

// JWTIdentity attaches the token's actor to the request context. A request
// without an Authorization header passes through with no actor; a header
// that is malformed or carries an invalid token is rejected.
func JWTIdentity(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Invalid authorization header format",
				})
			}

			claims, err := utils.ValidateJWT(secret, tokenParts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "Invalid token",
				})
			}

			ctx := favorites.WithActor(c.Request().Context(), favorites.Actor{
				ID:    claims.UserID,
				Email: claims.Email,
			})
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
