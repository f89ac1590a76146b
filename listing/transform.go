// Package listing turns raw property records into Property entities and
// answers filtered, sorted and featured queries over them.
package listing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"EstateView/models"
	"EstateView/records"
)

// Raw field names of the property table.
const (
	FieldTitle        = "title_c"
	FieldAddress      = "address_c"
	FieldCity         = "city_c"
	FieldState        = "state_c"
	FieldZipCode      = "zip_code_c"
	FieldPrice        = "price_c"
	FieldBedrooms     = "bedrooms_c"
	FieldBathrooms    = "bathrooms_c"
	FieldSquareFeet   = "square_feet_c"
	FieldLotSize      = "lot_size_c"
	FieldPropertyType = "property_type_c"
	FieldStatus       = "status_c"
	FieldYearBuilt    = "year_built_c"
	FieldListingDate  = "listing_date_c"
	FieldDescription  = "description_c"
	FieldImages       = "images_c"
	FieldFeatures     = "features_c"
	FieldLatitude     = "latitude_c"
	FieldLongitude    = "longitude_c"
)

// FromRecord maps one raw record onto a Property. It never fails: absent or
// mistyped numbers become 0, strings become "" and lists become empty.
// Negative prices and counts are clamped to 0; coordinates keep their sign.
func FromRecord(r records.Record) models.Property {
	id, _ := r.ID()
	p := models.Property{
		ID:           id,
		Title:        str(r[FieldTitle]),
		Address:      str(r[FieldAddress]),
		City:         str(r[FieldCity]),
		State:        str(r[FieldState]),
		ZipCode:      str(r[FieldZipCode]),
		Price:        num(r[FieldPrice]),
		Bedrooms:     num(r[FieldBedrooms]),
		Bathrooms:    num(r[FieldBathrooms]),
		SquareFeet:   num(r[FieldSquareFeet]),
		LotSize:      num(r[FieldLotSize]),
		PropertyType: str(r[FieldPropertyType]),
		Status:       str(r[FieldStatus]),
		YearBuilt:    int(num(r[FieldYearBuilt])),
		ListingDate:  str(r[FieldListingDate]),
		Description:  str(r[FieldDescription]),
		Images:       lines(r[FieldImages]),
		Features:     lines(r[FieldFeatures]),
		Coordinates: models.Coordinates{
			Lat: coord(r[FieldLatitude]),
			Lng: coord(r[FieldLongitude]),
		},
	}
	p.FormattedPrice = FormatPrice(p.Price, p.Status)
	return p
}

// FromRecords applies FromRecord in order.
func FromRecords(recs []records.Record) []models.Property {
	out := make([]models.Property, 0, len(recs))
	for _, r := range recs {
		out = append(out, FromRecord(r))
	}
	return out
}

func str(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case time.Time:
		return s.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int, int32, int64:
		return fmt.Sprint(s)
	}
	return ""
}

func num(v any) float64 {
	f, ok := records.Float64(v)
	if !ok || f < 0 {
		return 0
	}
	return f
}

// coord keeps the sign; only absent or mistyped values become 0.
func coord(v any) float64 {
	f, ok := records.Float64(v)
	if !ok {
		return 0
	}
	return f
}

// lines splits a newline-joined value into trimmed, non-empty entries. Values
// already decoded as arrays are accepted too.
func lines(v any) []string {
	out := make([]string, 0)
	switch t := v.(type) {
	case string:
		for _, part := range strings.Split(t, "\n") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, part := range t {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, part := range t {
			if s := strings.TrimSpace(str(part)); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
