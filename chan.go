// chan defines the cursors which rows are pulled through

package rel

import (
	"sync"
	"sync/atomic"

	"github.com/jonlawlor/relalg/att"
)

// Iter is a stateful, single pass cursor over the rows of a relation.
// Next has to be called before the first Row, and Row is only valid after a
// Next which returned true.
type Iter interface {
	// Pos is the number of rows consumed so far.
	Pos() int

	// Next advances to the next row, and reports whether there is one.
	Next() bool

	// Row returns the current row.
	Row() att.Col

	// Err returns an error encountered while advancing.
	Err() error
}

// indexIter adapts an eager relation to a cursor by tracking a position.
type indexIter struct {
	n   int
	row func(i int) att.Col
	pos int
	cur att.Col
}

func newIndexIter(n int, row func(i int) att.Col) *indexIter {
	return &indexIter{n: n, row: row}
}

// rowsIter returns a cursor over a slice of rows.
func rowsIter(rows []att.Col) *indexIter {
	return newIndexIter(len(rows), func(i int) att.Col { return rows[i] })
}

func (it *indexIter) Pos() int { return it.pos }

func (it *indexIter) Next() bool {
	if it.pos >= it.n {
		return false
	}
	it.cur = it.row(it.pos)
	it.pos++
	return true
}

func (it *indexIter) Row() att.Col { return it.cur }

func (it *indexIter) Err() error { return nil }

// errIter is a cursor with no rows which reports an error.
type errIter struct {
	err error
}

func (it *errIter) Pos() int     { return 0 }
func (it *errIter) Next() bool   { return false }
func (it *errIter) Row() att.Col { return nil }
func (it *errIter) Err() error   { return it.err }

// SharedIter is a cursor that can be held by more than one relation, but
// advanced by only one consumer at a time.  A Next which starts while
// another is in progress, either reentrantly or from another goroutine,
// fails and records a ConcurrentAccessError; the cursor yields no more rows
// after that.
type SharedIter struct {
	it   Iter
	busy atomic.Bool
	pos  atomic.Int64

	mu  sync.Mutex
	err error
}

// Share wraps a cursor for shared ownership.  Wrapping a SharedIter returns
// it unchanged.
func Share(it Iter) *SharedIter {
	if s, ok := it.(*SharedIter); ok {
		return s
	}
	return &SharedIter{it: it}
}

func (s *SharedIter) Pos() int { return int(s.pos.Load()) }

func (s *SharedIter) Next() bool {
	if !s.busy.CompareAndSwap(false, true) {
		s.setErr(&att.ConcurrentAccessError{Pos: s.Pos()})
		return false
	}
	defer s.busy.Store(false)
	if s.failed() {
		return false
	}
	ok := s.it.Next()
	s.pos.Store(int64(s.it.Pos()))
	// a consumer may have collided with this one while it was advancing
	return ok && !s.failed()
}

func (s *SharedIter) Row() att.Col { return s.it.Row() }

func (s *SharedIter) Err() error {
	s.mu.Lock()
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.it.Err()
}

func (s *SharedIter) setErr(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

func (s *SharedIter) failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err != nil
}
