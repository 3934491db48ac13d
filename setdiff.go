// setdiff implements the "half lazy" set difference and intersection
// cursors.  One operand is drained into a hashed set of rows when the cursor
// is built; the other is then scanned one row at a time.

package rel

import (
	"github.com/jonlawlor/relalg/att"
	"go.uber.org/zap"
)

// rowSet is a set of rows, hashed with Col.Hash and compared structurally.
type rowSet struct {
	m map[uint64][]att.Col
	n int
}

func newRowSet() *rowSet {
	return &rowSet{m: make(map[uint64][]att.Col)}
}

func (s *rowSet) has(row att.Col) bool {
	for _, r := range s.m[row.Hash()] {
		if r.Equal(row) {
			return true
		}
	}
	return false
}

// add inserts a row, and reports whether it was not already in the set.
func (s *rowSet) add(row att.Col) bool {
	h := row.Hash()
	for _, r := range s.m[h] {
		if r.Equal(row) {
			return false
		}
	}
	s.m[h] = append(s.m[h], row)
	s.n++
	return true
}

// setIter yields the distinct rows of scan which are in the set (when keep
// is true) or not in it (when keep is false).
type setIter struct {
	scan Iter
	set  *rowSet
	seen *rowSet
	keep bool
	pos  int
}

// newSetIter drains set into memory, so it has to be finite.  scan is not
// touched until Next is called.
func newSetIter(scan, set Iter, keep bool) (*setIter, error) {
	s := newRowSet()
	for set.Next() {
		s.add(set.Row())
	}
	if err := set.Err(); err != nil {
		return nil, err
	}
	log().Debug("drained set operand",
		zap.Bool("intersect", keep),
		zap.Int("rows", s.n))
	return &setIter{scan: scan, set: s, seen: newRowSet(), keep: keep}, nil
}

func (it *setIter) Pos() int { return it.pos }

func (it *setIter) Next() bool {
	for it.scan.Next() {
		row := it.scan.Row()
		if it.set.has(row) == it.keep && it.seen.add(row) {
			it.pos++
			return true
		}
	}
	return false
}

func (it *setIter) Row() att.Col { return it.scan.Row() }

func (it *setIter) Err() error { return it.scan.Err() }
