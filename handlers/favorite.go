package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"EstateView/favorites"
	"EstateView/listing"
	"EstateView/models"
	"EstateView/records"
	"EstateView/utils"
)

type FavoriteController struct {
	favorites *favorites.Manager
	listings  listing.Repository
	logger    *slog.Logger
}

func NewFavoriteController(manager *favorites.Manager, listings listing.Repository, logger *slog.Logger) *FavoriteController {
	if logger == nil {
		logger = slog.Default()
	}
	return &FavoriteController{favorites: manager, listings: listings, logger: logger}
}

type favoriteMutationResponse struct {
	models.FavoriteStatus
	Favorites models.FavoriteMembership `json:"favorites"`
	Error     string                    `json:"error,omitempty"`
}

func (fc *FavoriteController) GetFavorites(c echo.Context) error {
	store, err := fc.favorites.For(c.Request().Context())
	if err != nil {
		return utils.JSONUnavailable(c, "Failed to fetch favorites")
	}
	return c.JSON(http.StatusOK, membershipOf(store))
}

// GetFavoriteProperties returns the Property entities behind the current
// favorites, in listing order.
func (fc *FavoriteController) GetFavoriteProperties(c echo.Context) error {
	ctx := c.Request().Context()
	store, err := fc.favorites.For(ctx)
	if err != nil {
		return utils.JSONUnavailable(c, "Failed to fetch favorites")
	}

	ids := store.List()
	if len(ids) == 0 {
		return c.JSON(http.StatusOK, []models.Property{})
	}

	all, err := fc.listings.GetAll(ctx)
	if err != nil {
		return utils.JSONUnavailable(c, "Failed to load favorite properties")
	}
	out := make([]models.Property, 0, len(ids))
	for _, p := range all {
		if store.IsFavorite(p.ID) {
			out = append(out, p)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (fc *FavoriteController) GetFavoriteStatus(c echo.Context) error {
	id, ok := utils.ParsePropertyID(c.Param("propertyId"))
	if !ok {
		return utils.JSONError(c, http.StatusBadRequest, "Invalid property ID")
	}
	store, err := fc.favorites.For(c.Request().Context())
	if err != nil {
		return utils.JSONUnavailable(c, "Failed to fetch favorites")
	}
	return c.JSON(http.StatusOK, models.FavoriteStatus{PropertyID: id, IsFavorite: store.IsFavorite(id)})
}

func (fc *FavoriteController) CreateFavorite(c echo.Context) error {
	var req models.FavoriteRequest
	if err := c.Bind(&req); err != nil {
		return utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return utils.JSONError(c, http.StatusBadRequest, "Invalid property ID")
	}

	return fc.mutate(c, req.PropertyID, http.StatusCreated, func(store favorites.Store) error {
		return store.Add(c.Request().Context(), req.PropertyID)
	})
}

func (fc *FavoriteController) DeleteFavorite(c echo.Context) error {
	id, ok := utils.ParsePropertyID(c.Param("propertyId"))
	if !ok {
		return utils.JSONError(c, http.StatusBadRequest, "Invalid property ID")
	}

	return fc.mutate(c, id, http.StatusOK, func(store favorites.Store) error {
		return store.Remove(c.Request().Context(), id)
	})
}

func (fc *FavoriteController) ToggleFavorite(c echo.Context) error {
	id, ok := utils.ParsePropertyID(c.Param("propertyId"))
	if !ok {
		return utils.JSONError(c, http.StatusBadRequest, "Invalid property ID")
	}

	return fc.mutate(c, id, http.StatusOK, func(store favorites.Store) error {
		_, err := store.Toggle(c.Request().Context(), id)
		return err
	})
}

// mutate runs op against the caller's store and reports the resulting
// membership. A failed op reports the membership it left unchanged; when the
// store cannot be loaded no membership is known and an empty one is reported.
func (fc *FavoriteController) mutate(c echo.Context, id int64, okStatus int, op func(favorites.Store) error) error {
	store, err := fc.favorites.For(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, favoriteMutationResponse{
			FavoriteStatus: models.FavoriteStatus{PropertyID: id},
			Favorites:      models.FavoriteMembership{PropertyIDs: []int64{}},
			Error:          "Failed to update favorites",
		})
	}

	opErr := op(store)
	resp := favoriteMutationResponse{
		FavoriteStatus: models.FavoriteStatus{PropertyID: id, IsFavorite: store.IsFavorite(id)},
		Favorites:      membershipOf(store),
	}

	switch {
	case opErr == nil:
		return c.JSON(okStatus, resp)
	case errors.Is(opErr, favorites.ErrUnauthenticated):
		resp.Error = "Please login to manage favorites"
		return c.JSON(http.StatusUnauthorized, resp)
	case errors.Is(opErr, records.ErrBackingStore):
		fc.logger.Error("favorite mutation failed", "property", id, "err", opErr)
		resp.Error = "Failed to update favorites"
		return c.JSON(http.StatusBadGateway, resp)
	default:
		fc.logger.Error("favorite mutation failed", "property", id, "err", opErr)
		resp.Error = "Failed to update favorites"
		return c.JSON(http.StatusInternalServerError, resp)
	}
}

func membershipOf(store favorites.Store) models.FavoriteMembership {
	ids := store.List()
	return models.FavoriteMembership{PropertyIDs: ids, Count: len(ids)}
}
