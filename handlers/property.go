package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"EstateView/listing"
	"EstateView/models"
	"EstateView/utils"
)

type PropertyController struct {
	listings listing.Repository
}

func NewPropertyController(listings listing.Repository) *PropertyController {
	return &PropertyController{listings: listings}
}

// ListProperties answers GET /api/properties. Unparsable numeric parameters
// disable their bound; sortBy defaults to newest.
func (pc *PropertyController) ListProperties(c echo.Context) error {
	spec := filterSpecFromQuery(c)

	properties, err := pc.listings.GetByFilters(c.Request().Context(), spec)
	if err != nil {
		return utils.JSONUnavailable(c, "Failed to load properties. Please try again.")
	}

	c.Response().Header().Set("X-Total-Count", strconv.Itoa(len(properties)))
	return c.JSON(http.StatusOK, paginate(c, properties))
}

func (pc *PropertyController) GetProperty(c echo.Context) error {
	id, ok := utils.ParsePropertyID(c.Param("id"))
	if !ok {
		return utils.JSONError(c, http.StatusBadRequest, "Invalid property ID")
	}

	property, found, err := pc.listings.GetByID(c.Request().Context(), id)
	if err != nil {
		return utils.JSONUnavailable(c, "Failed to fetch property")
	}
	if !found {
		return utils.JSONError(c, http.StatusNotFound, "Property not found")
	}
	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) SearchProperties(c echo.Context) error {
	properties, err := pc.listings.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return utils.JSONUnavailable(c, "Failed to search properties")
	}
	return c.JSON(http.StatusOK, properties)
}

func (pc *PropertyController) FeaturedProperties(c echo.Context) error {
	properties, err := pc.listings.GetFeatured(c.Request().Context())
	if err != nil {
		return utils.JSONUnavailable(c, "Failed to load featured properties")
	}
	return c.JSON(http.StatusOK, properties)
}

func filterSpecFromQuery(c echo.Context) models.FilterSpec {
	params := c.QueryParams()
	return models.FilterSpec{
		PriceMin:      utils.ParseOptionalFloat(c.QueryParam("priceMin")),
		PriceMax:      utils.ParseOptionalFloat(c.QueryParam("priceMax")),
		PropertyTypes: utils.SplitList(params["propertyTypes"]),
		Bedrooms:      utils.ParseOptionalFloat(c.QueryParam("bedrooms")),
		Bathrooms:     utils.ParseOptionalFloat(c.QueryParam("bathrooms")),
		Location:      c.QueryParam("location"),
		SortBy:        sortKeyFromQuery(c.QueryParam("sortBy")),
	}
}

// sortKeyFromQuery defaults a missing key to newest but passes unknown keys
// through, which leaves the results in store order.
func sortKeyFromQuery(raw string) models.SortKey {
	if raw == "" {
		return models.SortNewest
	}
	return models.SortKey(raw)
}

// paginate applies page/limit after filtering and sorting. Without a limit
// every result is returned.
func paginate(c echo.Context, properties []models.Property) []models.Property {
	limit := 0
	if l := c.QueryParam("limit"); l != "" {
		if num, err := strconv.Atoi(l); err == nil && num > 0 {
			limit = num
		}
	}
	if limit == 0 {
		return properties
	}

	page := 1
	if p := c.QueryParam("page"); p != "" {
		if num, err := strconv.Atoi(p); err == nil && num > 0 {
			page = num
		}
	}

	skip := (page - 1) * limit
	if skip >= len(properties) {
		return []models.Property{}
	}
	end := skip + limit
	if end > len(properties) {
		end = len(properties)
	}
	return properties[skip:end]
}
