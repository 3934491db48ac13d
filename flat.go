// flat implements a relation held in one flat buffer of scalars, in either
// row major or column major layout

package rel

import (
	"github.com/jonlawlor/relalg/att"
)

// Flat is an eager relation whose values are stored in a single buffer.
// Row, Column and At honor the layout.  Operators first copy the values into
// a table.
type Flat struct {
	schema     att.Schema
	layout     Layout
	rows, cols int
	data       []att.Scalar

	err error
}

// NewFlat returns a flat relation over a copy of data.  cols has to equal
// the degree of the schema and rows*cols the length of data, otherwise the
// relation reports a ShapeError.
func NewFlat(s att.Schema, layout Layout, rows, cols int, data []att.Scalar) *Flat {
	r := &Flat{schema: att.NewSchema(s...), layout: layout, rows: rows, cols: cols}
	switch {
	case cols != len(s):
		r.err = &att.ShapeError{What: "columns", Expected: len(s), Found: cols}
	case rows < 0 || rows*cols != len(data):
		r.err = &att.ShapeError{What: "buffer length", Expected: rows * cols, Found: len(data)}
	default:
		r.data = make([]att.Scalar, len(data))
		copy(r.data, data)
	}
	if r.err != nil {
		r.rows = 0
	}
	return r
}

// FlatOf copies any relation into a flat buffer with the given layout.
func FlatOf(r Relation, layout Layout) *Flat {
	rows, err := Rows(r)
	if err != nil {
		return &Flat{schema: r.Schema(), layout: layout, cols: r.Deg(), err: err}
	}
	n, m := len(rows), r.Deg()
	data := make([]att.Scalar, n*m)
	for i, row := range rows {
		for j, v := range row {
			data[layout.index(i, j, n, m)] = v
		}
	}
	return &Flat{schema: att.NewSchema(r.Schema()...), layout: layout, rows: n, cols: m, data: data}
}

// Layout is the physical layout of the buffer.
func (r *Flat) Layout() Layout { return r.layout }

// Data returns a copy of the buffer.
func (r *Flat) Data() []att.Scalar {
	d := make([]att.Scalar, len(r.data))
	copy(d, r.data)
	return d
}

// Transpose returns the same relation stored in the other layout.
func (r *Flat) Transpose() *Flat {
	to := RowMajor
	if r.layout == RowMajor {
		to = ColMajor
	}
	return FlatOf(r, to)
}

// Schema is the ordered list of fields of the relation.
func (r *Flat) Schema() att.Schema { return r.schema }

// Shape of a flat relation is a table.
func (r *Flat) Shape() Shape { return Shape{Kind: TableShape, Rows: r.rows, Cols: r.cols} }

// Deg is the degree of the relation.
func (r *Flat) Deg() int { return r.cols }

// Card is the cardinality of the relation.
func (r *Flat) Card() int { return r.rows }

// Row returns a copy of row i.
func (r *Flat) Row(i int) att.Col {
	if r.layout == RowMajor {
		return att.Col(r.data[i*r.cols : (i+1)*r.cols]).Clone()
	}
	c := make(att.Col, r.cols)
	for j := range c {
		c[j] = r.data[j*r.rows+i]
	}
	return c
}

// Column returns a copy of column j.
func (r *Flat) Column(j int) att.Col {
	if r.layout == ColMajor {
		return att.Col(r.data[j*r.rows : (j+1)*r.rows]).Clone()
	}
	c := make(att.Col, r.rows)
	for i := range c {
		c[i] = r.data[i*r.cols+j]
	}
	return c
}

// At returns the value at row i, column j.
func (r *Flat) At(i, j int) att.Scalar {
	return r.data[r.layout.index(i, j, r.rows, r.cols)]
}

// Iter returns a cursor over the rows.
func (r *Flat) Iter() Iter {
	if r.err != nil {
		return &errIter{err: r.err}
	}
	return newIndexIter(r.rows, r.Row)
}

// table copies the values into a table.
func (r *Flat) table() Relation {
	if r.err != nil {
		return newErrorRel(r.schema, r.err)
	}
	rows := make([]att.Col, r.rows)
	for i := range rows {
		rows[i] = r.Row(i)
	}
	return &Table{schema: r.schema, rows: rows}
}

// Filter keeps the rows which satisfy the predicate, giving a table.
func (r1 *Flat) Filter(p att.Predicate) Relation { return r1.table().Filter(p) }

// Union appends the rows of r2, giving a table.
func (r1 *Flat) Union(r2 Relation) Relation { return r1.table().Union(r2) }

// Diff keeps the distinct rows which are not in r2, giving a table.
func (r1 *Flat) Diff(r2 Relation) Relation { return r1.table().Diff(r2) }

// Intersect keeps the distinct rows which are also in r2, giving a table.
func (r1 *Flat) Intersect(r2 Relation) Relation { return r1.table().Intersect(r2) }

// Cross pairs every row with every row of r2, giving a table.
func (r1 *Flat) Cross(r2 Relation) Relation { return r1.table().Cross(r2) }

// Join joins the relation with r2, giving a table.
func (r1 *Flat) Join(r2 Relation, kind JoinKind, on JoinOn) Relation {
	return r1.table().Join(r2, kind, on)
}

// Project keeps the referenced columns, giving a table.
func (r1 *Flat) Project(cols ...att.ColRef) Relation { return r1.table().Project(cols...) }

// Rename gives the columns new names.  The buffer is shared.
func (r1 *Flat) Rename(names ...string) Relation {
	if r := guard(r1); r != nil {
		return r
	}
	count("rename", r1)
	s2, err := renamed(r1.schema, names)
	if err != nil {
		return fail(r1, "rename", err)
	}
	r2 := *r1
	r2.schema = s2
	return &r2
}

// Err returns an error encountered during construction.
func (r1 *Flat) Err() error { return r1.err }

// GoString returns a text representation of the Relation
func (r *Flat) GoString() string {
	layout := "rel.RowMajor"
	if r.layout == ColMajor {
		layout = "rel.ColMajor"
	}
	return "rel.FlatOf(" + r.table().GoString() + ", " + layout + ")"
}

// String returns a text representation of the Relation
func (r *Flat) String() string {
	if r.err != nil {
		return "error{" + r.err.Error() + "}"
	}
	return stringTabTable(r)
}
