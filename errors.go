// errors deals with relations that failed to be built.  Instead of
// panicking, an operator which fails returns an errorRel, and every operator
// applied to an errorRel returns it unchanged, so the first error in an
// expression is the one reported.

package rel

import (
	"github.com/jonlawlor/relalg/att"
	"github.com/pkg/errors"
)

// errorRel is a relation with no rows that reports an error.
type errorRel struct {
	schema att.Schema
	err    error
}

func newErrorRel(s att.Schema, err error) *errorRel {
	return &errorRel{schema: s, err: err}
}

// fail wraps err with the name of the operator that failed.
func fail(r Relation, op string, err error) *errorRel {
	return newErrorRel(r.Schema(), errors.WithMessage(err, op))
}

// guard returns the first relation among r1 and rs which carries an error,
// or nil when none of them do.
func guard(r1 Relation, rs ...Relation) Relation {
	if r1.Err() != nil {
		return r1
	}
	for _, r := range rs {
		if r.Err() != nil {
			return r
		}
	}
	return nil
}

// Schema is the ordered list of fields of the relation.
func (r *errorRel) Schema() att.Schema { return r.schema }

// Shape of an error is an empty table.
func (r *errorRel) Shape() Shape { return Shape{Kind: TableShape, Cols: len(r.schema)} }

// Deg is the degree of the relation.
func (r *errorRel) Deg() int { return len(r.schema) }

// Iter returns a cursor with no rows which reports the error.
func (r *errorRel) Iter() Iter { return &errIter{err: r.err} }

func (r *errorRel) Filter(p att.Predicate) Relation                     { return r }
func (r *errorRel) Union(r2 Relation) Relation                          { return r }
func (r *errorRel) Diff(r2 Relation) Relation                           { return r }
func (r *errorRel) Intersect(r2 Relation) Relation                      { return r }
func (r *errorRel) Cross(r2 Relation) Relation                          { return r }
func (r *errorRel) Join(r2 Relation, kind JoinKind, on JoinOn) Relation { return r }
func (r *errorRel) Project(cols ...att.ColRef) Relation                 { return r }
func (r *errorRel) Rename(names ...string) Relation                     { return r }

// Err returns the error the relation was built with.
func (r *errorRel) Err() error { return r.err }

// GoString returns a text representation of the Relation
func (r *errorRel) GoString() string { return "error{" + r.schema.String() + "}" }

// String returns a text representation of the Relation
func (r *errorRel) String() string { return "error{" + r.err.Error() + "}" }
