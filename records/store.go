// Package records is the narrow read/write contract with the backing data
// source: flat records fetched, created and deleted by table name.
package records

import (
	"context"
	"errors"
	"fmt"
)

const (
	TableProperties = "property_c"
	TableFavorites  = "favorite_c"

	// FieldID is the integer identity every table carries.
	FieldID = "Id"

	OperatorEqualTo = "EqualTo"
)

// ErrBackingStore marks any failure reported by the storage backend.
var ErrBackingStore = errors.New("backing store failure")

// Record is a raw row with flat field names.
type Record map[string]any

type Condition struct {
	FieldName string
	Operator  string
	Values    []any
}

// Query narrows a fetch. An empty Query returns every record of the table in
// insertion order.
type Query struct {
	Where []Condition
	Limit int
}

// Where returns a Query matching records whose field equals one of values.
func Where(field string, values ...any) Query {
	return Query{Where: []Condition{{FieldName: field, Operator: OperatorEqualTo, Values: values}}}
}

type Store interface {
	Fetch(ctx context.Context, table string, q Query) ([]Record, error)
	CreateRecord(ctx context.Context, table string, payloads ...Record) ([]int64, error)
	DeleteRecord(ctx context.Context, table string, ids ...int64) error
}

// Seeder loads initial records into an empty table, keeping their ids.
type Seeder interface {
	Seed(ctx context.Context, table string, recs []Record) error
}

func storeErr(op, table string, err error) error {
	return fmt.Errorf("%s %s: %w: %w", op, table, ErrBackingStore, err)
}

func checkOperator(c Condition) error {
	if c.Operator != "" && c.Operator != OperatorEqualTo {
		return fmt.Errorf("unsupported operator %q on %s", c.Operator, c.FieldName)
	}
	return nil
}
