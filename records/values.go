package records

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Float64 converts the numeric representations produced by the JSON, BSON and
// jsonb decoders. Numeric strings are accepted; anything else reports false.
func Float64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

// Int64 is Float64 truncated toward zero. Lookup objects of the form
// {"Id": n} resolve to n.
func Int64(v any) (int64, bool) {
	if m, ok := v.(map[string]any); ok {
		return Int64(m[FieldID])
	}
	if r, ok := v.(Record); ok {
		return Int64(r[FieldID])
	}
	f, ok := Float64(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

// ID returns the record's integer identity.
func (r Record) ID() (int64, bool) {
	return Int64(r[FieldID])
}

func valuesEqual(a, b any) bool {
	if fa, ok := Float64(a); ok {
		if fb, ok := Float64(b); ok {
			return fa == fb
		}
	}
	if ia, ok := lookupID(a); ok {
		if ib, ok := Int64(b); ok {
			return ia == ib
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func lookupID(v any) (int64, bool) {
	switch v.(type) {
	case map[string]any, Record:
		return Int64(v)
	}
	return 0, false
}

func clone(v any) any {
	switch t := v.(type) {
	case Record:
		return t.Clone()
	case map[string]any:
		return map[string]any(Record(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = clone(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return v
}

// Clone deep-copies nested maps and slices.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = clone(v)
	}
	return out
}
