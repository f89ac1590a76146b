package records_test

import (
	"encoding/json"
	"testing"

	"EstateView/records"
)

func TestInt64(t *testing.T) {
	cases := []struct {
		in   any
		want int64
		ok   bool
	}{
		{float64(12), 12, true},
		{int32(5), 5, true},
		{int64(9), 9, true},
		{json.Number("42"), 42, true},
		{" 7 ", 7, true},
		{map[string]any{"Id": float64(3), "Name": "x"}, 3, true},
		{records.Record{"Id": 8}, 8, true},
		{"abc", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, c := range cases {
		got, ok := records.Int64(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("Int64(%#v) = %d, %v; want %d, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestRecordClone_IsDeep(t *testing.T) {
	r := records.Record{"lookup": map[string]any{"Id": 1}, "tags": []any{"a"}}
	c := r.Clone()
	c["lookup"].(map[string]any)["Id"] = 2
	c["tags"].([]any)[0] = "b"
	if r["lookup"].(map[string]any)["Id"] != 1 || r["tags"].([]any)[0] != "a" {
		t.Errorf("Clone shares nested state: %v", r)
	}
}

func TestDecodeSeed(t *testing.T) {
	recs, err := records.DecodeSeed([]byte(`[{"Id": 1, "price_c": 1500.5, "features_c": "Pool\nGym"}]`))
	if err != nil {
		t.Fatalf("DecodeSeed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("len = %d", len(recs))
	}
	if id, ok := recs[0].ID(); !ok || id != 1 {
		t.Errorf("id = %d, %v", id, ok)
	}
	if recs[0]["price_c"] != 1500.5 {
		t.Errorf("price_c = %#v", recs[0]["price_c"])
	}

	if _, err := records.DecodeSeed([]byte(`{"not": "an array"}`)); err == nil {
		t.Error("DecodeSeed should reject a non-array document")
	}
}
