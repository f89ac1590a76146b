package listing

import (
	"strings"

	"EstateView/models"
)

const (
	FeaturedPriceThreshold = 1_000_000
	FeaturedLimit          = 6
)

// PremiumFeatures qualify a listing as featured regardless of price.
var PremiumFeatures = []string{"Ocean Views", "Mountain Views"}

// Featured selects listings priced above FeaturedPriceThreshold or carrying a
// premium feature, highest price first, at most FeaturedLimit of them.
func Featured(properties []models.Property) []models.Property {
	out := make([]models.Property, 0, FeaturedLimit)
	for _, p := range properties {
		if isFeatured(p) {
			out = append(out, p)
		}
	}
	Sort(out, models.SortPriceHigh)
	if len(out) > FeaturedLimit {
		out = out[:FeaturedLimit]
	}
	return out
}

func isFeatured(p models.Property) bool {
	if p.Price > FeaturedPriceThreshold {
		return true
	}
	for _, f := range PremiumFeatures {
		if p.HasFeature(f) {
			return true
		}
	}
	return false
}

// Search keeps properties whose title, address, city or description contains
// text, ignoring case. Input order is preserved.
func Search(properties []models.Property, text string) []models.Property {
	term := strings.ToLower(strings.TrimSpace(text))
	out := make([]models.Property, 0)
	for _, p := range properties {
		if containsFold(p.Title, term) ||
			containsFold(p.Address, term) ||
			containsFold(p.City, term) ||
			containsFold(p.Description, term) {
			out = append(out, p)
		}
	}
	return out
}
