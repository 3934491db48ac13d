// simple implements the smallest relation, a single value.  It is mostly a
// convenience for callers that produce one scalar and want to combine it
// with other relations; every operator first promotes it to a vector.

package rel

import (
	"github.com/jonlawlor/relalg/att"
)

// ScalarRel is a relation with one row and one column.
type ScalarRel struct {
	field att.Field
	v     att.Scalar
}

// NewScalar returns a relation holding a single value.
func NewScalar(f att.Field, v att.Scalar) *ScalarRel {
	return &ScalarRel{field: f, v: v}
}

// Value is the value held.
func (r *ScalarRel) Value() att.Scalar { return r.v }

func (r *ScalarRel) vector() *Vector { return NewVector(r.field, r.v) }

// Schema is the ordered list of fields of the relation.
func (r *ScalarRel) Schema() att.Schema { return att.Schema{r.field} }

// Shape of a scalar is always one by one.
func (r *ScalarRel) Shape() Shape { return Shape{Kind: ScalarShape, Rows: 1, Cols: 1} }

// Deg is the degree of the relation.
func (r *ScalarRel) Deg() int { return 1 }

// Card is the cardinality of the relation.
func (r *ScalarRel) Card() int { return 1 }

// Row returns the only row.
func (r *ScalarRel) Row(i int) att.Col { return att.Col{r.v} }

// Column returns the only column.
func (r *ScalarRel) Column(j int) att.Col { return att.Col{r.v} }

// At returns the value held.
func (r *ScalarRel) At(i, j int) att.Scalar { return r.v }

// Iter returns a cursor over the single row.
func (r *ScalarRel) Iter() Iter { return newIndexIter(1, r.Row) }

// Filter promotes the scalar to a vector and filters it.
func (r1 *ScalarRel) Filter(p att.Predicate) Relation { return r1.vector().Filter(p) }

// Union promotes the scalar to a vector and appends r2.
func (r1 *ScalarRel) Union(r2 Relation) Relation { return r1.vector().Union(r2) }

// Diff promotes the scalar to a vector and removes the rows of r2.
func (r1 *ScalarRel) Diff(r2 Relation) Relation { return r1.vector().Diff(r2) }

// Intersect promotes the scalar to a vector and intersects it with r2.
func (r1 *ScalarRel) Intersect(r2 Relation) Relation { return r1.vector().Intersect(r2) }

// Cross pairs the value with every row of r2.
func (r1 *ScalarRel) Cross(r2 Relation) Relation { return r1.vector().Cross(r2) }

// Join promotes the scalar to a vector and joins it with r2.
func (r1 *ScalarRel) Join(r2 Relation, kind JoinKind, on JoinOn) Relation {
	return r1.vector().Join(r2, kind, on)
}

// Project promotes the scalar to a vector and projects it.
func (r1 *ScalarRel) Project(cols ...att.ColRef) Relation { return r1.vector().Project(cols...) }

// Rename gives the value a new name.
func (r1 *ScalarRel) Rename(names ...string) Relation {
	if len(names) != 1 {
		return r1.vector().Rename(names...)
	}
	count("rename", r1)
	return NewScalar(att.Field{Name: names[0], Kind: r1.field.Kind}, r1.v)
}

// Err is always nil, a scalar can't fail to be built.
func (r1 *ScalarRel) Err() error { return nil }

// GoString returns a text representation of the Relation
func (r *ScalarRel) GoString() string {
	return "rel.NewScalar(" + fieldGoString(r.field) + ", " + r.v.GoString() + ")"
}

// String returns a text representation of the Relation
func (r *ScalarRel) String() string {
	return stringTabTable(r)
}
