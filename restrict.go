// restrict implements selection in relational algebra

package rel

import (
	"github.com/jonlawlor/relalg/att"
)

// filterIter skips the rows of a cursor which do not satisfy a predicate.
type filterIter struct {
	it   Iter
	pred func(att.Col) (bool, error)
	pos  int
	err  error
}

func (it *filterIter) Pos() int { return it.pos }

func (it *filterIter) Next() bool {
	if it.err != nil {
		return false
	}
	for it.it.Next() {
		ok, err := it.pred(it.it.Row())
		if err != nil {
			it.err = err
			return false
		}
		if ok {
			it.pos++
			return true
		}
	}
	return false
}

func (it *filterIter) Row() att.Col { return it.it.Row() }

func (it *filterIter) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.it.Err()
}

// filterRows keeps the rows of an eager relation which satisfy a predicate.
// The result has the same schema, and is a vector if form asks for one.
func filterRows(r1 Backing, p att.Predicate, form ShapeKind) Relation {
	if r := guard(r1); r != nil {
		return r
	}
	count("filter", r1)
	pred, err := p.Bind(r1.Schema())
	if err != nil {
		return fail(r1, "filter", err)
	}
	rows1, _ := Rows(r1)
	var rows []att.Col
	for _, row := range rows1 {
		ok, err := pred(row)
		if err != nil {
			return fail(r1, "filter", err)
		}
		if ok {
			rows = append(rows, row)
		}
	}
	return build(r1.Schema(), form, rows)
}
