// slice implements the table, a relation of heterogeneous rows held in a
// slice

package rel

import (
	"github.com/jonlawlor/relalg/att"
	"github.com/pkg/errors"
)

// Table is an eager, row oriented relation.  Every row has one value per
// field of the schema.
type Table struct {
	schema att.Schema
	rows   []att.Col

	err error
}

// NewTable returns a table holding copies of the rows.  A row whose length
// differs from the degree of the schema results in a table reporting a
// ShapeError.
func NewTable(s att.Schema, rows ...att.Col) *Table {
	r := &Table{schema: att.NewSchema(s...)}
	r.rows = make([]att.Col, len(rows))
	for i, row := range rows {
		if len(row) != len(s) {
			r.err = errors.Wrapf(&att.ShapeError{What: "row length", Expected: len(s), Found: len(row)}, "row %d", i)
			r.rows = nil
			return r
		}
		r.rows[i] = row.Clone()
	}
	return r
}

// TableOf returns a table holding the rows of a materialized relation.
func TableOf(t *att.Tuples) *Table {
	return NewTable(t.Schema, t.Rows...)
}

// Schema is the ordered list of fields of the relation.
func (r *Table) Schema() att.Schema { return r.schema }

// Shape of a table includes its dimensions.
func (r *Table) Shape() Shape { return Shape{Kind: TableShape, Rows: len(r.rows), Cols: len(r.schema)} }

// Deg is the degree of the relation.
func (r *Table) Deg() int { return len(r.schema) }

// Card is the cardinality of the relation.
func (r *Table) Card() int { return len(r.rows) }

// Row returns a copy of row i.
func (r *Table) Row(i int) att.Col { return r.rows[i].Clone() }

// Column returns a copy of column j.
func (r *Table) Column(j int) att.Col {
	_ = r.schema[j]
	c := make(att.Col, len(r.rows))
	for i, row := range r.rows {
		c[i] = row[j]
	}
	return c
}

// At returns the value at row i, column j.
func (r *Table) At(i, j int) att.Scalar { return r.rows[i][j] }

// Iter returns a cursor over the rows.
func (r *Table) Iter() Iter {
	if r.err != nil {
		return &errIter{err: r.err}
	}
	return newIndexIter(len(r.rows), r.Row)
}

// Filter keeps the rows which satisfy the predicate.
func (r1 *Table) Filter(p att.Predicate) Relation {
	return filterRows(r1, p, TableShape)
}

// Union appends the rows of r2.
func (r1 *Table) Union(r2 Relation) Relation {
	return unionRows(r1, r2, TableShape)
}

// Diff keeps the distinct rows which are not in r2.
func (r1 *Table) Diff(r2 Relation) Relation {
	return diffRows(r1, r2, TableShape)
}

// Intersect keeps the distinct rows which are also in r2.
func (r1 *Table) Intersect(r2 Relation) Relation {
	return intersectRows(r1, r2, TableShape)
}

// Cross pairs every row with every row of r2.
func (r1 *Table) Cross(r2 Relation) Relation {
	return crossRows(r1, r2)
}

// Join joins the table with r2.
func (r1 *Table) Join(r2 Relation, kind JoinKind, on JoinOn) Relation {
	return joinRows(r1, r2, kind, on)
}

// Project keeps the referenced columns.
func (r1 *Table) Project(cols ...att.ColRef) Relation {
	return projectRows(r1, cols, TableShape)
}

// Rename gives the columns new names.
func (r1 *Table) Rename(names ...string) Relation {
	return renameRows(r1, names, TableShape)
}

// Err returns an error encountered during construction.
func (r1 *Table) Err() error { return r1.err }

// GoString returns a text representation of the Relation
func (r *Table) GoString() string {
	return goStringTabTable("rel.NewTable("+schemaGoString(r.schema)+",", r.Iter(), false)
}

// String returns a text representation of the Relation
func (r *Table) String() string {
	if r.err != nil {
		return "error{" + r.err.Error() + "}"
	}
	return stringTabTable(r)
}
