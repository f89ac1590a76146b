package listing_test

import (
	"reflect"
	"testing"

	"EstateView/listing"
	"EstateView/models"
)

func ptr(f float64) *float64 { return &f }

func ids(props []models.Property) []int64 {
	out := make([]int64, 0, len(props))
	for _, p := range props {
		out = append(out, p.ID)
	}
	return out
}

func sample() []models.Property {
	return []models.Property{
		{ID: 1, Price: 500000, Bedrooms: 2, Bathrooms: 1, SquareFeet: 1200, PropertyType: "Condo", City: "Denver", State: "CO", Address: "1 Main St", ListingDate: "2024-01-10"},
		{ID: 2, Price: 900000, Bedrooms: 3, Bathrooms: 2.5, SquareFeet: 2100, PropertyType: "House", City: "Portland", State: "OR", Address: "2 Oak Ave", ListingDate: "2024-03-01"},
		{ID: 3, Price: 1200000, Bedrooms: 4, Bathrooms: 3, SquareFeet: 3000, PropertyType: "House", City: "Austin", State: "TX", Address: "3 Congress Ave", ListingDate: "2024-02-15"},
		{ID: 4, Price: 2400, Bedrooms: 1, Bathrooms: 1, SquareFeet: 600, PropertyType: "Apartment", City: "Seattle", State: "WA", Address: "4 Pine St", ListingDate: "not a date"},
	}
}

// ── Predicates ─────────────────────────────────────────────────────────────

func TestFilter_DisabledSpecIsIdentity(t *testing.T) {
	in := sample()
	got := listing.Filter(in, models.FilterSpec{})
	if !reflect.DeepEqual(got, in) {
		t.Errorf("Filter with empty spec = %v, want input unchanged", ids(got))
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	got := listing.Filter(nil, models.FilterSpec{PriceMin: ptr(1), SortBy: models.SortPriceLow})
	if len(got) != 0 {
		t.Errorf("Filter(nil) = %v, want empty", ids(got))
	}
}

func TestFilter_PriceBoundsAreInclusive(t *testing.T) {
	got := listing.Filter(sample(), models.FilterSpec{PriceMin: ptr(500000), PriceMax: ptr(900000)})
	if want := []int64{1, 2}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("ids = %v, want %v", ids(got), want)
	}
}

func TestFilter_ConflictingBoundsYieldEmpty(t *testing.T) {
	got := listing.Filter(sample(), models.FilterSpec{PriceMin: ptr(1000000), PriceMax: ptr(10)})
	if len(got) != 0 {
		t.Errorf("ids = %v, want empty", ids(got))
	}
}

func TestFilter_PropertyTypes(t *testing.T) {
	got := listing.Filter(sample(), models.FilterSpec{PropertyTypes: []string{"House", "Apartment"}})
	if want := []int64{2, 3, 4}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("ids = %v, want %v", ids(got), want)
	}
}

func TestFilter_BedroomAndBathroomMinimums(t *testing.T) {
	got := listing.Filter(sample(), models.FilterSpec{Bedrooms: ptr(3), Bathrooms: ptr(2.5)})
	if want := []int64{2, 3}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("ids = %v, want %v", ids(got), want)
	}

	got = listing.Filter(sample(), models.FilterSpec{Bathrooms: ptr(3)})
	if want := []int64{3}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("ids = %v, want %v", ids(got), want)
	}
}

func TestFilter_LocationMatchesAnyOfCityStateAddress(t *testing.T) {
	cases := []struct {
		term string
		want []int64
	}{
		{"austin", []int64{3}},
		{"OR", []int64{2}},
		{"pine", []int64{4}},
		{"ave", []int64{2, 3}},
		{"nowhere", []int64{}},
	}
	for _, c := range cases {
		got := listing.Filter(sample(), models.FilterSpec{Location: c.term})
		if !reflect.DeepEqual(ids(got), c.want) {
			t.Errorf("Location %q: ids = %v, want %v", c.term, ids(got), c.want)
		}
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	in := sample()
	listing.Filter(in, models.FilterSpec{SortBy: models.SortPriceHigh})
	if want := []int64{1, 2, 3, 4}; !reflect.DeepEqual(ids(in), want) {
		t.Errorf("input reordered to %v", ids(in))
	}
}

// ── Sorting ────────────────────────────────────────────────────────────────

func TestFilter_SortKeys(t *testing.T) {
	cases := []struct {
		key  models.SortKey
		want []int64
	}{
		{models.SortPriceLow, []int64{4, 1, 2, 3}},
		{models.SortPriceHigh, []int64{3, 2, 1, 4}},
		{models.SortSqft, []int64{3, 2, 1, 4}},
		{models.SortNewest, []int64{2, 3, 1, 4}},
		{"", []int64{1, 2, 3, 4}},
		{"rating", []int64{1, 2, 3, 4}},
	}
	for _, c := range cases {
		got := listing.Filter(sample(), models.FilterSpec{SortBy: c.key})
		if !reflect.DeepEqual(ids(got), c.want) {
			t.Errorf("SortBy %q: ids = %v, want %v", c.key, ids(got), c.want)
		}
	}
}

func TestSort_NewestUnparsableDatesSortLast(t *testing.T) {
	props := []models.Property{
		{ID: 1, ListingDate: ""},
		{ID: 2, ListingDate: "2023-06-01T10:00:00Z"},
		{ID: 3, ListingDate: "garbage"},
		{ID: 4, ListingDate: "2024-06-01"},
	}
	listing.Sort(props, models.SortNewest)
	if want := []int64{4, 2, 1, 3}; !reflect.DeepEqual(ids(props), want) {
		t.Errorf("ids = %v, want %v", ids(props), want)
	}
}

// Equal prices keep their original relative order under both directions,
// while distinct prices reverse.
func TestSort_StabilityLaw(t *testing.T) {
	base := []models.Property{
		{ID: 1, Price: 100},
		{ID: 2, Price: 200},
		{ID: 3, Price: 100},
		{ID: 4, Price: 300},
		{ID: 5, Price: 200},
	}

	low := append([]models.Property(nil), base...)
	listing.Sort(low, models.SortPriceLow)
	if want := []int64{1, 3, 2, 5, 4}; !reflect.DeepEqual(ids(low), want) {
		t.Errorf("price-low ids = %v, want %v", ids(low), want)
	}

	high := append([]models.Property(nil), low...)
	listing.Sort(high, models.SortPriceHigh)
	if want := []int64{4, 2, 5, 1, 3}; !reflect.DeepEqual(ids(high), want) {
		t.Errorf("price-high ids = %v, want %v", ids(high), want)
	}
}

// ── Scenario ───────────────────────────────────────────────────────────────

func TestFilter_PriceMinWithPriceHigh(t *testing.T) {
	props := []models.Property{
		{ID: 1, Price: 500000},
		{ID: 2, Price: 900000},
		{ID: 3, Price: 1200000, City: "Austin"},
	}
	got := listing.Filter(props, models.FilterSpec{PriceMin: ptr(600000), SortBy: models.SortPriceHigh})
	if len(got) != 2 || got[0].Price != 1200000 || got[0].City != "Austin" || got[1].Price != 900000 {
		t.Errorf("got %+v", got)
	}
}
