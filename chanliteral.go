// chanliteral implements the lazy relation, whose rows come from a cursor
// and are only computed when a consumer pulls them

package rel

import (
	"strings"

	"github.com/jonlawlor/relalg/att"
)

// Seq is a lazy relation.  It holds one shared cursor; copies of a Seq, and
// relations built from it, advance the same cursor, so a Seq can be
// meaningfully consumed only once.  Nothing is read from the source until a
// consumer calls Next, except for the set operand of Diff and Intersect
// which is drained when the operator is applied.
type Seq struct {
	schema att.Schema

	// form is the shape the sequence materializes into.
	form ShapeKind

	// expr is the text of the expression that produced the sequence.
	expr string

	cur *SharedIter

	err error
}

// NewSeq returns a lazy relation over the rows of a cursor.  The cursor may
// be unbounded, as long as only operators which consume it lazily are
// applied.
func NewSeq(s att.Schema, it Iter) *Seq {
	return newSeq(s, TableShape, "Seq("+headingString(s)+")", it)
}

func newSeq(s att.Schema, form ShapeKind, expr string, it Iter) *Seq {
	return &Seq{schema: s, form: form, expr: expr, cur: Share(it)}
}

// AsLazy returns a lazy relation over the rows of r.  Forcing the result
// with Materialize gives back a relation structurally equal to r.
func AsLazy(r Relation) *Seq {
	switch r1 := r.(type) {
	case *Seq:
		return r1
	case *Query:
		return AsLazy(r1.Force())
	}
	form := r.Shape().Kind
	if err := r.Err(); err != nil {
		s := newSeq(r.Schema(), form, exprString(r), &errIter{err: err})
		s.err = err
		return s
	}
	return newSeq(r.Schema(), form, exprString(r), r.Iter())
}

// Clone returns a copy of the sequence which shares its cursor.
func (r *Seq) Clone() *Seq {
	r2 := *r
	return &r2
}

// Schema is the ordered list of fields of the relation.
func (r *Seq) Schema() att.Schema { return r.schema }

// Shape of a sequence does not know its number of rows.
func (r *Seq) Shape() Shape { return Shape{Kind: SeqShape, Cols: len(r.schema)} }

// Deg is the degree of the relation.
func (r *Seq) Deg() int { return len(r.schema) }

// Iter returns the shared cursor.
func (r *Seq) Iter() Iter { return r.cur }

// Err returns an error encountered during construction or computation.
func (r *Seq) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.cur.Err()
}

// Filter creates a new sequence with the rows which satisfy the predicate.
func (r1 *Seq) Filter(p att.Predicate) Relation {
	if r := guard(r1); r != nil {
		return r
	}
	count("filter", r1)
	pred, err := p.Bind(r1.schema)
	if err != nil {
		return fail(r1, "filter", err)
	}
	return newSeq(r1.schema, r1.form, "σ{"+p.String()+"}("+r1.expr+")",
		&filterIter{it: r1.cur, pred: pred})
}

// Union creates a new sequence with the rows of r1 followed by those of r2.
func (r1 *Seq) Union(r2 Relation) Relation {
	if r := guard(r1, r2); r != nil {
		return r
	}
	count("union", r1)
	if err := sameHeading("union", r1, r2); err != nil {
		return fail(r1, "union", err)
	}
	return newSeq(r1.schema, r1.form, "("+r1.expr+" ∪ "+exprString(r2)+")",
		&unionIter{it1: r1.cur, it2: r2.Iter()})
}

// Diff creates a new sequence with the distinct rows of r1 which are not in
// r2.  r2 is drained immediately, so it has to be finite.
func (r1 *Seq) Diff(r2 Relation) Relation {
	return r1.setOp("diff", " − ", r2, false)
}

// Intersect creates a new sequence with the distinct rows of r1 which are
// also in r2.  r2 is drained immediately, so it has to be finite.
func (r1 *Seq) Intersect(r2 Relation) Relation {
	return r1.setOp("intersect", " ∩ ", r2, true)
}

// setOp drains r2 into a set of rows when it is called, and scans r1 as
// rows are pulled.  r2 has to be finite; r1 may be unbounded.
func (r1 *Seq) setOp(op, sym string, r2 Relation, keep bool) Relation {
	if r := guard(r1, r2); r != nil {
		return r
	}
	count(op, r1)
	if err := sameHeading(op, r1, r2); err != nil {
		return fail(r1, op, err)
	}
	it, err := newSetIter(r1.cur, r2.Iter(), keep)
	if err != nil {
		return fail(r1, op, err)
	}
	return newSeq(r1.schema, r1.form, "("+r1.expr+sym+exprString(r2)+")", it)
}

// Cross creates a new sequence pairing every row of r1 with every row of r2.
// The rows of r2 are remembered as they are read, so r2 has to be finite.
func (r1 *Seq) Cross(r2 Relation) Relation {
	if r := guard(r1, r2); r != nil {
		return r
	}
	count("cross", r1)
	return newSeq(r1.schema.Extend(r2.Schema()), TableShape, "("+r1.expr+" × "+exprString(r2)+")",
		&crossIter{left: r1.cur, right: newMemory(r2.Iter())})
}

// Join creates a new sequence joining r1 and r2.  The join is computed when
// the first row is pulled.
func (r1 *Seq) Join(r2 Relation, kind JoinKind, on JoinOn) Relation {
	if r := guard(r1, r2); r != nil {
		return r
	}
	if kind == CrossJoin {
		return r1.Cross(r2)
	}
	count("join", r1)
	if err := on.validate(r1.schema, r2.Schema()); err != nil {
		return fail(r1, "join", err)
	}
	expr := "(" + r1.expr + " ⋈" + kind.String() + " " + exprString(r2) + ")"
	return newSeq(r1.schema.Extend(r2.Schema()), TableShape, expr,
		&joinIter{left: r1.cur, right: r2.Iter(), kind: kind, on: on, ls: r1.schema, rs: r2.Schema()})
}

// Project creates a new sequence with the referenced columns.
func (r1 *Seq) Project(cols ...att.ColRef) Relation {
	if r := guard(r1); r != nil {
		return r
	}
	count("project", r1)
	pos, s2, err := projection(r1.schema, cols)
	if err != nil {
		return fail(r1, "project", err)
	}
	form := r1.form
	if len(s2) != 1 {
		form = TableShape
	}
	return newSeq(s2, form, "π{"+refString(cols)+"}("+r1.expr+")",
		&mapIter{it: r1.cur, fn: func(row att.Col) att.Col { return pick(row, pos) }})
}

// Rename creates a new sequence with new column names.  It shares the
// cursor of r1.
func (r1 *Seq) Rename(names ...string) Relation {
	if r := guard(r1); r != nil {
		return r
	}
	count("rename", r1)
	s2, err := renamed(r1.schema, names)
	if err != nil {
		return fail(r1, "rename", err)
	}
	r2 := r1.Clone()
	r2.schema = s2
	r2.expr = "ρ{" + strings.Join(names, ", ") + "}(" + r1.expr + ")"
	return r2
}

// GoString returns a text representation of the Relation
func (r *Seq) GoString() string {
	return "rel.AsLazy(" + r.expr + ")"
}

// String returns the expression which produced the sequence.  It does not
// consume the cursor.
func (r *Seq) String() string {
	return r.expr
}
