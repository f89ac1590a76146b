package models

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Property struct {
	ID             int64       `json:"Id"`
	Title          string      `json:"title"`
	Address        string      `json:"address"`
	City           string      `json:"city"`
	State          string      `json:"state"`
	ZipCode        string      `json:"zipCode"`
	Price          float64     `json:"price"`
	FormattedPrice string      `json:"formattedPrice"`
	Bedrooms       float64     `json:"bedrooms"`
	Bathrooms      float64     `json:"bathrooms"`
	SquareFeet     float64     `json:"squareFeet"`
	LotSize        float64     `json:"lotSize"`
	PropertyType   string      `json:"propertyType"`
	Status         string      `json:"status"`
	YearBuilt      int         `json:"yearBuilt"`
	ListingDate    string      `json:"listingDate"`
	Description    string      `json:"description"`
	Images         []string    `json:"images"`
	Features       []string    `json:"features"`
	Coordinates    Coordinates `json:"coordinates"`
}

const (
	StatusForSale = "For Sale"
	StatusForRent = "For Rent"
)

// HasFeature reports whether the amenity list contains feature exactly.
func (p Property) HasFeature(feature string) bool {
	for _, f := range p.Features {
		if f == feature {
			return true
		}
	}
	return false
}
