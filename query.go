// query implements the deferred pipeline: a relation and a list of pending
// operations, which are only applied when the query is forced

package rel

import (
	"strings"

	"github.com/jonlawlor/relalg/att"
	"go.uber.org/zap"
)

// Op is a pending operation of a query.  The set of operations is closed:
// SelectOp, SetOp, JoinOp, ProjectOp and RenameOp.
type Op interface {
	// Apply performs the operation on a relation.
	Apply(r Relation) Relation

	String() string

	// result is the schema the operation produces from s.
	result(s att.Schema) att.Schema

	// expr wraps the text of the operation's input.
	expr(in string) string
}

// SelectOp filters with a predicate.
type SelectOp struct {
	Pred att.Predicate
}

func (o SelectOp) Apply(r Relation) Relation      { return r.Filter(o.Pred) }
func (o SelectOp) String() string                 { return "σ{" + o.Pred.String() + "}" }
func (o SelectOp) result(s att.Schema) att.Schema { return s }
func (o SelectOp) expr(in string) string          { return o.String() + "(" + in + ")" }

// SetKind is the kind of a set operation.
type SetKind int

const (
	SetUnion SetKind = iota
	SetDiff
	SetIntersect
)

var setSymbols = [...]string{"∪", "−", "∩"}

func (k SetKind) String() string {
	if k >= 0 && int(k) < len(setSymbols) {
		return setSymbols[k]
	}
	return "?"
}

// SetOp combines with an operand relation.
type SetOp struct {
	Kind    SetKind
	Operand Relation
}

func (o SetOp) Apply(r Relation) Relation {
	switch o.Kind {
	case SetDiff:
		return r.Diff(o.Operand)
	case SetIntersect:
		return r.Intersect(o.Operand)
	}
	return r.Union(o.Operand)
}

func (o SetOp) String() string                 { return o.Kind.String() + " " + exprString(o.Operand) }
func (o SetOp) result(s att.Schema) att.Schema { return s }
func (o SetOp) expr(in string) string          { return "(" + in + " " + o.String() + ")" }

// JoinOp joins with an operand relation.  A CrossJoin ignores On.
type JoinOp struct {
	Kind    JoinKind
	On      JoinOn
	Operand Relation
}

func (o JoinOp) Apply(r Relation) Relation {
	if o.Kind == CrossJoin {
		return r.Cross(o.Operand)
	}
	return r.Join(o.Operand, o.Kind, o.On)
}

func (o JoinOp) String() string {
	if o.Kind == CrossJoin {
		return "× " + exprString(o.Operand)
	}
	return "⋈" + o.Kind.String() + "{" + o.On.String() + "} " + exprString(o.Operand)
}

func (o JoinOp) result(s att.Schema) att.Schema { return s.Extend(o.Operand.Schema()) }
func (o JoinOp) expr(in string) string          { return "(" + in + " " + o.String() + ")" }

// ProjectOp keeps the referenced columns.
type ProjectOp struct {
	Cols []att.ColRef
}

func (o ProjectOp) Apply(r Relation) Relation { return r.Project(o.Cols...) }
func (o ProjectOp) String() string            { return "π{" + refString(o.Cols) + "}" }
func (o ProjectOp) expr(in string) string     { return o.String() + "(" + in + ")" }

func (o ProjectOp) result(s att.Schema) att.Schema {
	if _, s2, err := projection(s, o.Cols); err == nil {
		return s2
	}
	return s
}

// RenameOp gives the columns new names.
type RenameOp struct {
	Names []string
}

func (o RenameOp) Apply(r Relation) Relation { return r.Rename(o.Names...) }
func (o RenameOp) String() string            { return "ρ{" + strings.Join(o.Names, ", ") + "}" }
func (o RenameOp) expr(in string) string     { return o.String() + "(" + in + ")" }

func (o RenameOp) result(s att.Schema) att.Schema {
	if s2, err := renamed(s, o.Names); err == nil {
		return s2
	}
	return s
}

// Query is a relation with a list of pending operations.  Pushing an
// operation returns a new query and never changes the original.  Forcing a
// query applies the operations in the order they were pushed; they are never
// reordered.
type Query struct {
	src Relation
	ops []Op
}

// Defer returns a query over r with no pending operations.
func Defer(r Relation) *Query {
	return &Query{src: r}
}

// Push returns a new query with op appended.
func (q *Query) Push(op Op) *Query {
	ops := make([]Op, len(q.ops), len(q.ops)+1)
	copy(ops, q.ops)
	return &Query{src: q.src, ops: append(ops, op)}
}

// Source is the relation the query starts from.
func (q *Query) Source() Relation { return q.src }

// Ops returns a copy of the pending operations.
func (q *Query) Ops() []Op {
	ops := make([]Op, len(q.ops))
	copy(ops, q.ops)
	return ops
}

// Force applies the pending operations.  A query over a query forces the
// inner one first.
func (q *Query) Force() Relation {
	r := q.src
	if q2, ok := r.(*Query); ok {
		r = q2.Force()
	}
	count("force", q)
	log().Debug("forcing query",
		zap.String("expr", q.String()),
		zap.Int("ops", len(q.ops)))
	for _, op := range q.ops {
		if r.Err() != nil {
			break
		}
		r = op.Apply(r)
	}
	return r
}

// Schema is derived from the pending operations without forcing them.
func (q *Query) Schema() att.Schema {
	s := q.src.Schema()
	for _, op := range q.ops {
		s = op.result(s)
	}
	return s
}

// Shape of a query does not know its number of rows.
func (q *Query) Shape() Shape { return Shape{Kind: QueryShape, Cols: len(q.Schema())} }

// Deg is the degree of the relation.
func (q *Query) Deg() int { return len(q.Schema()) }

// Iter forces the query and returns a cursor over the result.
func (q *Query) Iter() Iter { return q.Force().Iter() }

// Filter pushes a selection.
func (q *Query) Filter(p att.Predicate) Relation { return q.Push(SelectOp{p}) }

// Union pushes a union with r2.
func (q *Query) Union(r2 Relation) Relation { return q.Push(SetOp{SetUnion, r2}) }

// Diff pushes a difference with r2.
func (q *Query) Diff(r2 Relation) Relation { return q.Push(SetOp{SetDiff, r2}) }

// Intersect pushes an intersection with r2.
func (q *Query) Intersect(r2 Relation) Relation { return q.Push(SetOp{SetIntersect, r2}) }

// Cross pushes a cross product with r2.
func (q *Query) Cross(r2 Relation) Relation { return q.Push(JoinOp{Kind: CrossJoin, Operand: r2}) }

// Join pushes a join with r2.
func (q *Query) Join(r2 Relation, kind JoinKind, on JoinOn) Relation {
	return q.Push(JoinOp{Kind: kind, On: on, Operand: r2})
}

// Project pushes a projection.
func (q *Query) Project(cols ...att.ColRef) Relation { return q.Push(ProjectOp{cols}) }

// Rename pushes a rename.
func (q *Query) Rename(names ...string) Relation { return q.Push(RenameOp{names}) }

// Err reports an error already carried by the source or an operand.  Errors
// raised by the operations themselves are only known after Force.
func (q *Query) Err() error {
	if err := q.src.Err(); err != nil {
		return err
	}
	for _, op := range q.ops {
		var r Relation
		switch o := op.(type) {
		case SetOp:
			r = o.Operand
		case JoinOp:
			r = o.Operand
		}
		if r != nil && r.Err() != nil {
			return r.Err()
		}
	}
	return nil
}

// GoString returns a text representation of the Relation
func (q *Query) GoString() string {
	return "rel.Defer(" + q.String() + ")"
}

// String returns the expression of the query without forcing it.
func (q *Query) String() string {
	s := exprString(q.src)
	for _, op := range q.ops {
		s = op.expr(s)
	}
	return s
}
