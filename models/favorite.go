package models

// FavoriteMembership is the response shape for the current actor's favorites.
type FavoriteMembership struct {
	PropertyIDs []int64 `json:"propertyIds"`
	Count       int     `json:"count"`
}

type FavoriteStatus struct {
	PropertyID int64 `json:"propertyId"`
	IsFavorite bool  `json:"isFavorite"`
}

type FavoriteRequest struct {
	PropertyID int64 `json:"propertyId" validate:"required,gt=0"`
}
