// Package source loads relations from Go records, JSON documents, SQL result
// sets and Arrow record batches, and writes relations back out as JSON and
// Arrow.
//
// Every loader infers a column's kind from the first value in it which is
// not null, unless the kind is already known, and casts the rest of the
// column to that kind.  A column of integers which later holds a decimal is
// widened to decimal.  A column with no values at all is text.
package source

import (
	"fmt"
	"sort"

	"github.com/jonlawlor/relalg"
	"github.com/jonlawlor/relalg/att"
	"github.com/pkg/errors"
)

// Builder accumulates the rows of a table with a fixed schema.
type Builder struct {
	schema att.Schema
	rows   []att.Col
}

// NewBuilder returns a builder for rows of the schema.
func NewBuilder(s att.Schema) *Builder {
	return &Builder{schema: att.NewSchema(s...)}
}

// Add casts each value to the kind of its column and appends the row.
func (b *Builder) Add(row att.Col) error {
	if len(row) != len(b.schema) {
		return errors.Wrapf(&att.ShapeError{What: "row length", Expected: len(b.schema), Found: len(row)},
			"row %d", len(b.rows))
	}
	out := make(att.Col, len(row))
	for j, v := range row {
		c, err := att.Cast(v, b.schema[j].Kind)
		if err != nil {
			return errors.Wrapf(err, "row %d, column %s", len(b.rows), b.schema[j].Name)
		}
		out[j] = c
	}
	b.rows = append(b.rows, out)
	return nil
}

// AddNative converts Go values into scalars and appends them as a row.
func (b *Builder) AddNative(vals ...interface{}) error {
	row := make(att.Col, len(vals))
	for j, v := range vals {
		a, err := scalarOf(v)
		if err != nil {
			return errors.Wrapf(err, "row %d, column %d", len(b.rows), j)
		}
		row[j] = a
	}
	return b.Add(row)
}

// Len is the number of rows added so far.
func (b *Builder) Len() int { return len(b.rows) }

// Table returns the rows added so far as a table.
func (b *Builder) Table() *rel.Table {
	return rel.NewTable(b.schema, b.rows...)
}

// FromRecords builds a table out of records keyed by column name.  The
// columns are the given names, in order, or else every key of every record,
// sorted.  A key missing from a record is null.
func FromRecords(recs []map[string]interface{}, names ...string) (*rel.Table, error) {
	if len(names) == 0 {
		seen := make(map[string]bool)
		for _, rec := range recs {
			for k := range rec {
				if !seen[k] {
					seen[k] = true
					names = append(names, k)
				}
			}
		}
		sort.Strings(names)
	}
	rows := make([][]interface{}, len(recs))
	for i, rec := range recs {
		rows[i] = make([]interface{}, len(names))
		for j, n := range names {
			rows[i][j] = rec[n]
		}
	}
	return collect(names, nil, rows)
}

// collect converts rows of Go values into a table.  Kinds which are
// TypeNone, or missing, are inferred from the values.
func collect(names []string, known []att.DataType, rows [][]interface{}) (*rel.Table, error) {
	kinds := make([]att.DataType, len(names))
	copy(kinds, known)
	fixed := make([]bool, len(names))
	for j := range known {
		fixed[j] = known[j] != att.TypeNone
	}

	vals := make([]att.Col, len(rows))
	for i, row := range rows {
		if len(row) != len(names) {
			return nil, errors.Wrapf(&att.ShapeError{What: "row length", Expected: len(names), Found: len(row)},
				"row %d", i)
		}
		vals[i] = make(att.Col, len(row))
		for j, v := range row {
			a, err := scalarOf(v)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d, column %s", i, names[j])
			}
			vals[i][j] = a
			if !fixed[j] {
				kinds[j] = widen(kinds[j], a.Kind())
			}
		}
	}

	s := make(att.Schema, len(names))
	for j, n := range names {
		k := kinds[j]
		if k == att.TypeNone {
			k = att.TypeText
		}
		s[j] = att.Field{Name: n, Kind: k}
	}
	b := NewBuilder(s)
	for _, row := range vals {
		if err := b.Add(row); err != nil {
			return nil, err
		}
	}
	return b.Table(), nil
}

// widen returns the kind of a column which held values of kind k and now
// holds one of kind v.
func widen(k, v att.DataType) att.DataType {
	switch {
	case k == att.TypeNone:
		return v
	case k.IsInteger() && v == att.TypeDecimal:
		return att.TypeDecimal
	}
	return k
}

// scalarOf converts a decoded value into a scalar.  Lists of records become
// nested relations.
func scalarOf(v interface{}) (att.Scalar, error) {
	switch x := v.(type) {
	case []map[string]interface{}:
		return nest(x)
	case map[string]interface{}:
		return nest([]map[string]interface{}{x})
	case []interface{}:
		recs := make([]map[string]interface{}, len(x))
		for i, e := range x {
			m, ok := e.(map[string]interface{})
			if !ok {
				return att.None(), &att.TypeError{Op: "nest", Right: att.TypeRel, GoType: fmt.Sprintf("%T", e)}
			}
			recs[i] = m
		}
		return nest(recs)
	}
	if a, ok, err := jsonScalar(v); ok {
		return a, err
	}
	if a, ok, err := pgScalar(v); ok {
		return a, err
	}
	return att.FromNative(v)
}

func nest(recs []map[string]interface{}) (att.Scalar, error) {
	t, err := FromRecords(recs)
	if err != nil {
		return att.None(), err
	}
	return rel.Nest(t)
}
