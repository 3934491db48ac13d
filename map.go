// map implements a cursor which transforms every row it passes on

package rel

import (
	"github.com/jonlawlor/relalg/att"
)

// mapIter applies a function to each row of a cursor.
type mapIter struct {
	it  Iter
	fn  func(att.Col) att.Col
	row att.Col
}

func (it *mapIter) Pos() int { return it.it.Pos() }

func (it *mapIter) Next() bool {
	if !it.it.Next() {
		return false
	}
	it.row = it.fn(it.it.Row())
	return true
}

func (it *mapIter) Row() att.Col { return it.row }

func (it *mapIter) Err() error { return it.it.Err() }

// Map returns a lazy relation whose rows are the rows of r transformed by
// fn.  s is the schema of the transformed rows, and fn has to return rows of
// that length.  Nothing is computed until rows are pulled.
func Map(r Relation, s att.Schema, fn func(att.Col) att.Col) Relation {
	if r1 := guard(r); r1 != nil {
		return r1
	}
	count("map", r)
	return newSeq(s, TableShape, "map("+exprString(r)+")", &mapIter{it: r.Iter(), fn: fn})
}
