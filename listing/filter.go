package listing

import (
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"EstateView/models"
)

// Filter returns the properties that satisfy every enabled predicate of spec,
// ordered by spec.SortBy. The input slice is never modified. Conflicting
// bounds are not rejected; they just match nothing.
func Filter(properties []models.Property, spec models.FilterSpec) []models.Property {
	location := strings.ToLower(spec.Location)

	out := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if Matches(p, spec, location) {
			out = append(out, p)
		}
	}
	Sort(out, spec.SortBy)
	return out
}

// Matches evaluates the conjunction of spec's predicates against p.
// location must already be lower-cased.
func Matches(p models.Property, spec models.FilterSpec, location string) bool {
	if spec.PriceMin != nil && p.Price < *spec.PriceMin {
		return false
	}
	if spec.PriceMax != nil && p.Price > *spec.PriceMax {
		return false
	}
	if len(spec.PropertyTypes) > 0 && !slices.Contains(spec.PropertyTypes, p.PropertyType) {
		return false
	}
	if spec.Bedrooms != nil && p.Bedrooms < *spec.Bedrooms {
		return false
	}
	if spec.Bathrooms != nil && p.Bathrooms < *spec.Bathrooms {
		return false
	}
	if location != "" &&
		!containsFold(p.City, location) &&
		!containsFold(p.State, location) &&
		!containsFold(p.Address, location) {
		return false
	}
	return true
}

// Sort orders properties in place. The sort is stable; an empty or unknown
// key leaves the order untouched.
func Sort(properties []models.Property, key models.SortKey) {
	if key == models.SortNewest {
		sortNewest(properties)
		return
	}

	var less func(a, b models.Property) bool
	switch key {
	case models.SortPriceLow:
		less = func(a, b models.Property) bool { return a.Price < b.Price }
	case models.SortPriceHigh:
		less = func(a, b models.Property) bool { return a.Price > b.Price }
	case models.SortSqft:
		less = func(a, b models.Property) bool { return a.SquareFeet > b.SquareFeet }
	default:
		return
	}
	sort.SliceStable(properties, func(i, j int) bool {
		return less(properties[i], properties[j])
	})
}

// sortNewest parses each listing date once, then sorts descending.
func sortNewest(properties []models.Property) {
	type stamped struct {
		at int64
		p  models.Property
	}
	tmp := make([]stamped, len(properties))
	for i, p := range properties {
		tmp[i] = stamped{at: listingTime(p.ListingDate), p: p}
	}
	sort.SliceStable(tmp, func(i, j int) bool { return tmp[i].at > tmp[j].at })
	for i := range tmp {
		properties[i] = tmp[i].p
	}
}

var listingDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// listingTime returns Unix nanoseconds; unparsable dates sort lowest.
func listingTime(raw string) int64 {
	raw = strings.TrimSpace(raw)
	for _, layout := range listingDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UnixNano()
		}
	}
	return math.MinInt64
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}
