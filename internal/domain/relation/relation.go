package relation

import (
	"fmt"

	"github.com/leengari/relprofile/internal/domain/errors"
)

// Relation is a read-only table: ordered attribute names plus one column of
// nullable values per attribute. All columns share one record count.
// Profilers never mutate a Relation; callers must not either once it is handed over.
type Relation struct {
	Name       string
	Attributes []string
	Columns    [][]Value
}

// New creates a relation and validates its shape
func New(name string, attributes []string, columns [][]Value) (*Relation, error) {
	r := &Relation{
		Name:       name,
		Attributes: attributes,
		Columns:    columns,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// FromRecords builds a relation from row-major records.
// Short records are padded with NULLs, long records are rejected.
func FromRecords(name string, attributes []string, records [][]Value) (*Relation, error) {
	columns := make([][]Value, len(attributes))
	for c := range columns {
		columns[c] = make([]Value, len(records))
	}

	for rowPos, record := range records {
		if len(record) > len(attributes) {
			return nil, &errors.InvalidInputError{
				Relation: name,
				Reason:   fmt.Sprintf("record %d has more values than attributes", rowPos),
				Expected: len(attributes),
				Actual:   len(record),
			}
		}
		for c, v := range record {
			columns[c][rowPos] = v
		}
	}

	return New(name, attributes, columns)
}

// Validate checks that there is one column per attribute and that every
// column has the same length.
func (r *Relation) Validate() error {
	if len(r.Attributes) != len(r.Columns) {
		return errors.NewColumnCountMismatch(r.Name, len(r.Attributes), len(r.Columns))
	}
	if len(r.Columns) == 0 {
		return nil
	}

	expected := len(r.Columns[0])
	for c, col := range r.Columns {
		if len(col) != expected {
			return errors.NewColumnLengthMismatch(r.Name, r.Attributes[c], expected, len(col))
		}
	}
	return nil
}

// RecordCount returns R, the number of records (0 for a relation without columns)
func (r *Relation) RecordCount() int {
	if len(r.Columns) == 0 {
		return 0
	}
	return len(r.Columns[0])
}

// ColumnCount returns C, the number of attributes
func (r *Relation) ColumnCount() int {
	return len(r.Attributes)
}

// Column returns the values of column c. The slice is shared, not copied.
func (r *Relation) Column(c int) ([]Value, error) {
	if c < 0 || c >= len(r.Columns) {
		return nil, errors.NewColumnOutOfRange(r.Name, c, len(r.Columns))
	}
	return r.Columns[c], nil
}

// AttributeIndex looks up a column index by attribute name
func (r *Relation) AttributeIndex(name string) (int, bool) {
	for i, a := range r.Attributes {
		if a == name {
			return i, true
		}
	}
	return -1, false
}

// Records returns a row-major copy of the relation
func (r *Relation) Records() [][]Value {
	n := r.RecordCount()
	records := make([][]Value, n)
	for rowPos := 0; rowPos < n; rowPos++ {
		record := make([]Value, len(r.Columns))
		for c, col := range r.Columns {
			record[c] = col[rowPos]
		}
		records[rowPos] = record
	}
	return records
}

func (r *Relation) String() string {
	return fmt.Sprintf("%s(%d attributes, %d records)", r.Name, r.ColumnCount(), r.RecordCount())
}
