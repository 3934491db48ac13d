package rel

import "github.com/jonlawlor/relalg/att"

// memory records the rows pulled from a cursor so that they can be read
// again.  Rows are only pulled from the source when they are first asked
// for, so the source may be longer than what is ever read.
type memory struct {
	src  Iter
	rows []att.Col
	done bool
}

func newMemory(src Iter) *memory {
	return &memory{src: src}
}

// at returns row i, pulling from the source as needed.
func (m *memory) at(i int) (att.Col, bool) {
	for !m.done && i >= len(m.rows) {
		if m.src.Next() {
			m.rows = append(m.rows, m.src.Row())
		} else {
			m.done = true
		}
	}
	if i < len(m.rows) {
		return m.rows[i], true
	}
	return nil, false
}

// all pulls every remaining row from the source.
func (m *memory) all() ([]att.Col, error) {
	for !m.done {
		m.at(len(m.rows))
	}
	return m.rows, m.err()
}

func (m *memory) err() error {
	return m.src.Err()
}

// rewinder navigates a memory with first / next / eof, the way the nested
// loops of a join need it.
type rewinder struct {
	m *memory
	i int
}

func (r *rewinder) First() { r.i = 0 }

func (r *rewinder) Next() { r.i++ }

func (r *rewinder) EOF() bool {
	_, ok := r.m.at(r.i)
	return !ok
}

func (r *rewinder) Pos() int { return r.i }

func (r *rewinder) Row() att.Col {
	row, _ := r.m.at(r.i)
	return row
}
