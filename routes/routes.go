package routes

import (
	"EstateView/handlers"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, identity echo.MiddlewareFunc, pc *handlers.PropertyController, fc *handlers.FavoriteController) {
	e.GET("/health", handlers.HealthCheck)

	api := e.Group("/api")
	if identity != nil {
		api.Use(identity)
	}

	properties := api.Group("/properties")
	properties.GET("", pc.ListProperties)
	properties.GET("/featured", pc.FeaturedProperties)
	properties.GET("/search", pc.SearchProperties)
	properties.GET("/:id", pc.GetProperty)

	favorites := api.Group("/favorites")
	favorites.GET("", fc.GetFavorites)
	favorites.POST("", fc.CreateFavorite)
	favorites.GET("/properties", fc.GetFavoriteProperties)
	favorites.GET("/:propertyId", fc.GetFavoriteStatus)
	favorites.DELETE("/:propertyId", fc.DeleteFavorite)
	favorites.POST("/:propertyId/toggle", fc.ToggleFavorite)
}
