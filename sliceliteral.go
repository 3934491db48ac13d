// sliceliteral implements the vector, a relation with a single column held
// in a slice of scalars

package rel

import (
	"github.com/jonlawlor/relalg/att"
)

// Vector is a relation with one column.  The values are expected, but not
// required, to share the kind of the field.
type Vector struct {
	field att.Field
	vals  []att.Scalar
}

// NewVector returns a vector holding a copy of the values.
func NewVector(f att.Field, vals ...att.Scalar) *Vector {
	v := make([]att.Scalar, len(vals))
	copy(v, vals)
	return &Vector{field: f, vals: v}
}

// Values returns a copy of the values of the vector.
func (r *Vector) Values() []att.Scalar {
	v := make([]att.Scalar, len(r.vals))
	copy(v, r.vals)
	return v
}

// Schema is the ordered list of fields of the relation.
func (r *Vector) Schema() att.Schema { return att.Schema{r.field} }

// Shape of a vector includes its length.
func (r *Vector) Shape() Shape { return Shape{Kind: VectorShape, Rows: len(r.vals), Cols: 1} }

// Deg is the degree of the relation.
func (r *Vector) Deg() int { return 1 }

// Card is the cardinality of the relation.
func (r *Vector) Card() int { return len(r.vals) }

// Row returns element i as a row.
func (r *Vector) Row(i int) att.Col { return att.Col{r.vals[i]} }

// Column returns a copy of the values.  j has to be 0.
func (r *Vector) Column(j int) att.Col {
	_ = r.Schema()[j]
	return att.Col(r.Values())
}

// At returns element i.
func (r *Vector) At(i, j int) att.Scalar {
	_ = r.Schema()[j]
	return r.vals[i]
}

// Iter returns a cursor over the elements.
func (r *Vector) Iter() Iter { return newIndexIter(len(r.vals), r.Row) }

// Filter keeps the elements which satisfy the predicate.
func (r1 *Vector) Filter(p att.Predicate) Relation {
	return filterRows(r1, p, VectorShape)
}

// Union appends the rows of r2.
func (r1 *Vector) Union(r2 Relation) Relation {
	return unionRows(r1, r2, VectorShape)
}

// Diff keeps the distinct elements which are not in r2.
func (r1 *Vector) Diff(r2 Relation) Relation {
	return diffRows(r1, r2, VectorShape)
}

// Intersect keeps the distinct elements which are also in r2.
func (r1 *Vector) Intersect(r2 Relation) Relation {
	return intersectRows(r1, r2, VectorShape)
}

// Cross pairs every element with every row of r2, giving a table.
func (r1 *Vector) Cross(r2 Relation) Relation {
	return crossRows(r1, r2)
}

// Join joins the vector with r2, giving a table.
func (r1 *Vector) Join(r2 Relation, kind JoinKind, on JoinOn) Relation {
	return joinRows(r1, r2, kind, on)
}

// Project keeps the referenced columns.
func (r1 *Vector) Project(cols ...att.ColRef) Relation {
	return projectRows(r1, cols, VectorShape)
}

// Rename gives the column a new name.
func (r1 *Vector) Rename(names ...string) Relation {
	return renameRows(r1, names, VectorShape)
}

// Err is always nil, a vector can't fail to be built.
func (r1 *Vector) Err() error { return nil }

// GoString returns a text representation of the Relation
func (r *Vector) GoString() string {
	return goStringTabTable("rel.NewVector("+fieldGoString(r.field)+",", r.Iter(), true)
}

// String returns a text representation of the Relation
func (r *Vector) String() string {
	return stringTabTable(r)
}
