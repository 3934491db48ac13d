// union implements a union expression in relational algebra.  Unlike a set
// union, duplicate rows are kept.

package rel

import (
	"github.com/jonlawlor/relalg/att"
)

// unionIter drains the first cursor, then the second.  It never rewinds.
type unionIter struct {
	it1, it2 Iter
	second   bool
	pos      int
}

func (it *unionIter) Pos() int { return it.pos }

func (it *unionIter) Next() bool {
	if !it.second {
		if it.it1.Next() {
			it.pos++
			return true
		}
		if it.it1.Err() != nil {
			return false
		}
		it.second = true
	}
	if it.it2.Next() {
		it.pos++
		return true
	}
	return false
}

func (it *unionIter) Row() att.Col {
	if it.second {
		return it.it2.Row()
	}
	return it.it1.Row()
}

func (it *unionIter) Err() error {
	if err := it.it1.Err(); err != nil {
		return err
	}
	return it.it2.Err()
}

// unionRows appends the rows of r2 to those of an eager relation.
func unionRows(r1 Backing, r2 Relation, form ShapeKind) Relation {
	if r := guard(r1, r2); r != nil {
		return r
	}
	count("union", r1)
	if err := sameHeading("union", r1, r2); err != nil {
		return fail(r1, "union", err)
	}
	rows2, err := Rows(r2)
	if err != nil {
		return fail(r1, "union", err)
	}
	rows1, _ := Rows(r1)
	rows := make([]att.Col, 0, len(rows1)+len(rows2))
	rows = append(rows, rows1...)
	rows = append(rows, rows2...)
	return build(r1.Schema(), form, rows)
}
