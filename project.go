// project implements projection in relational algebra.  Rows are not
// deduplicated after the projection; use Intersect with the result itself to
// get the distinct rows.

package rel

import (
	"github.com/jonlawlor/relalg/att"
)

// projectRows projects an eager relation.  A projection onto one column of
// a vector shaped relation stays a vector.
func projectRows(r1 Backing, cols []att.ColRef, form ShapeKind) Relation {
	if r := guard(r1); r != nil {
		return r
	}
	count("project", r1)
	pos, s2, err := projection(r1.Schema(), cols)
	if err != nil {
		return fail(r1, "project", err)
	}
	rows, _ := Rows(r1)
	for i, row := range rows {
		rows[i] = pick(row, pos)
	}
	return build(s2, form, rows)
}
