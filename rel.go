package rel

// variable naming conventions
//
// r, r1, r2, r3, ... all represent relations.  If there is an operation which
// has an output relation, the output relation will have the highest number
// after the r.
//
// it, it1, it2, ... all represent cursors over the rows of a relation.
//
// row, row1, row2, ... all represent actual rows going through some
// relational transformation.
//
// s, s1, s2, ... all represent schemas.

import (
	"github.com/jonlawlor/relalg/att"
	"go.uber.org/zap"
)

// Relation is the interface every shape of relation implements: scalars,
// vectors, tables, ordered maps, flat buffers, lazy sequences and deferred
// queries.  Operators never modify the relation they are called on; they
// return a new one.  When an operator fails, the returned relation carries
// the error in Err and every further operator on it returns it unchanged.
type Relation interface {
	// Schema is the ordered list of fields of the relation.
	Schema() att.Schema

	// Shape classifies the relation.  It is used for dispatch, not storage.
	Shape() Shape

	// Deg is the degree of the relation, the number of columns.
	Deg() int

	// Iter returns a cursor over the rows of the relation.  Eager relations
	// return a fresh cursor each time; lazy relations return their one
	// shared cursor.
	Iter() Iter

	// Filter keeps the rows which satisfy the predicate.
	Filter(p att.Predicate) Relation

	// Union appends the rows of r2.  Duplicates are kept.
	Union(r2 Relation) Relation

	// Diff keeps the distinct rows which are not in r2.
	Diff(r2 Relation) Relation

	// Intersect keeps the distinct rows which are also in r2.
	Intersect(r2 Relation) Relation

	// Cross pairs every row with every row of r2.
	Cross(r2 Relation) Relation

	// Join pairs rows with the rows of r2 that match on the given columns,
	// padding with none where the kind of join allows it.
	Join(r2 Relation, kind JoinKind, on JoinOn) Relation

	// Project keeps the referenced columns, in the given order.
	Project(cols ...att.ColRef) Relation

	// Rename gives the columns new names, in order.
	Rename(names ...string) Relation

	// Err returns an error encountered during construction or computation.
	Err() error

	// these are not relational but they are sure nice to have
	GoString() string
	String() string
}

// Backing is implemented by the eager relations, which hold their rows in
// memory and can be indexed.
type Backing interface {
	Relation

	// Card is the cardinality of the relation, the number of rows.
	Card() int

	// Row returns a copy of row i.
	Row(i int) att.Col

	// Column returns a copy of column j.
	Column(j int) att.Col

	// At returns the value at row i, column j.
	At(i, j int) att.Scalar
}

// Card returns the cardinality of the relation.  For lazy relations this
// consumes the cursor.
func Card(r Relation) (i int) {
	if b, ok := r.(Backing); ok {
		return b.Card()
	}
	it := r.Iter()
	for it.Next() {
		i++
	}
	return
}

// Heading returns the names of the columns of a relation.
func Heading(r Relation) []string {
	return r.Schema().Names()
}

// Rows returns the rows of a relation.  Lazy relations are drained, subject
// to the configured materialization limit.
func Rows(r Relation) ([]att.Col, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}
	if b, ok := r.(Backing); ok {
		rows := make([]att.Col, 0, b.Card())
		it := b.Iter()
		for it.Next() {
			rows = append(rows, it.Row())
		}
		return rows, nil
	}
	if q, ok := r.(*Query); ok {
		r = q.Force()
		if b, ok := r.(Backing); ok {
			return Rows(b)
		}
	}
	return drain(r.Iter())
}

// drain reads every remaining row of a cursor.
func drain(it Iter) ([]att.Col, error) {
	var rows []att.Col
	limit := options().MaxMaterialize
	for it.Next() {
		if limit > 0 && len(rows) == limit {
			return nil, &att.ShapeError{What: "at most rows", Expected: limit, Found: limit + 1}
		}
		rows = append(rows, it.Row())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Materialize forces a lazy relation or a query into an eager one.  Eager
// relations are returned unchanged.
func Materialize(r Relation) Relation {
	switch r1 := r.(type) {
	case Backing:
		return r1
	case *Query:
		return Materialize(r1.Force())
	case *Seq:
		if err := r1.Err(); err != nil {
			return newErrorRel(r1.schema, err)
		}
		rows, err := drain(r1.cur)
		if err != nil {
			return newErrorRel(r1.schema, err)
		}
		r2 := build(r1.schema, r1.form, rows)
		rowsMaterialized.WithLabelValues(r2.Shape().Kind.String()).Add(float64(len(rows)))
		log().Debug("materialized sequence",
			zap.String("expr", r1.expr),
			zap.Int("rows", len(rows)))
		return r2
	}
	if err := r.Err(); err != nil {
		return newErrorRel(r.Schema(), err)
	}
	rows, err := drain(r.Iter())
	if err != nil {
		return newErrorRel(r.Schema(), err)
	}
	return NewTable(r.Schema(), rows...)
}

// Nest materializes a relation into a scalar which holds it.
func Nest(r Relation) (att.Scalar, error) {
	rows, err := Rows(r)
	if err != nil {
		return att.None(), err
	}
	return att.Nest(&att.Tuples{Schema: att.NewSchema(r.Schema()...), Rows: rows}), nil
}

// Equal reports whether two relations have the same schema, positionally,
// and the same rows in the same order.  Lazy relations are consumed.
func Equal(r1, r2 Relation) bool {
	s1, s2 := r1.Schema(), r2.Schema()
	if len(s1) != len(s2) {
		return false
	}
	for i := range s1 {
		if s1[i] != s2[i] {
			return false
		}
	}
	rows1, err1 := Rows(r1)
	rows2, err2 := Rows(r2)
	if err1 != nil || err2 != nil || len(rows1) != len(rows2) {
		return false
	}
	for i := range rows1 {
		if !rows1[i].Equal(rows2[i]) {
			return false
		}
	}
	return true
}
