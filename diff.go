// diff implements set difference and intersection of eager relations.  Both
// results are distinct, and keep the order of the first operand.

package rel

import (
	"github.com/jonlawlor/relalg/att"
)

// diffRows keeps the distinct rows of r1 which are not in r2.
func diffRows(r1 Backing, r2 Relation, form ShapeKind) Relation {
	return setRows("diff", r1, r2, form, false)
}

// intersectRows keeps the distinct rows of r1 which are also in r2.
func intersectRows(r1 Backing, r2 Relation, form ShapeKind) Relation {
	return setRows("intersect", r1, r2, form, true)
}

func setRows(op string, r1 Backing, r2 Relation, form ShapeKind, keep bool) Relation {
	if r := guard(r1, r2); r != nil {
		return r
	}
	count(op, r1)
	if err := sameHeading(op, r1, r2); err != nil {
		return fail(r1, op, err)
	}
	rows2, err := Rows(r2)
	if err != nil {
		return fail(r1, op, err)
	}
	set := newRowSet()
	for _, row := range rows2 {
		set.add(row)
	}
	seen := newRowSet()
	rows := []att.Col{}
	rows1, _ := Rows(r1)
	for _, row := range rows1 {
		if set.has(row) == keep && seen.add(row) {
			rows = append(rows, row)
		}
	}
	return build(r1.Schema(), form, rows)
}
