package models

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortSqft      SortKey = "sqft"
)

// FilterSpec is the declarative set of constraints applied to a property
// collection. A nil bound, an empty type set and an empty location are disabled.
type FilterSpec struct {
	PriceMin      *float64 `json:"priceMin"`
	PriceMax      *float64 `json:"priceMax"`
	PropertyTypes []string `json:"propertyTypes"`
	Bedrooms      *float64 `json:"bedrooms"`
	Bathrooms     *float64 `json:"bathrooms"`
	Location      string   `json:"location"`
	SortBy        SortKey  `json:"sortBy"`
}
