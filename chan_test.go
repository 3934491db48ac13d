package rel

import (
	"sync"
	"testing"

	"github.com/jonlawlor/relalg/att"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tests for the cursors

func TestIndexIter(t *testing.T) {
	it := rowsIter([]att.Col{intCol(1), intCol(2)})
	assert.Equal(t, 0, it.Pos())
	require.True(t, it.Next())
	assert.Equal(t, intCol(1), it.Row())
	assert.Equal(t, 1, it.Pos())
	require.True(t, it.Next())
	assert.Equal(t, intCol(2), it.Row())
	assert.False(t, it.Next())
	assert.False(t, it.Next())
	assert.Equal(t, 2, it.Pos())
	assert.NoError(t, it.Err())
}

func TestShare(t *testing.T) {
	s := Share(rowsIter(nil))
	assert.Same(t, s, Share(s))
}

func TestSharedIterReentrant(t *testing.T) {
	s := counter(10)

	// a predicate which pulls from the cursor it is filtering
	var f Relation
	f = s.Filter(att.AdHoc{Fn: func(att.Col) bool {
		f.Iter().Next()
		return true
	}})
	it := f.Iter()
	assert.False(t, it.Next())
	assert.Equal(t, att.ConcurrentAccessKind, att.KindOf(it.Err()))

	// the failure is sticky
	assert.False(t, it.Next())
	assert.Equal(t, att.ConcurrentAccessKind, att.KindOf(f.Err()))
}

// blockIter hands out rows only when told to.
type blockIter struct {
	entered chan struct{}
	release chan struct{}
	n       int
}

func (b *blockIter) Pos() int { return b.n }

func (b *blockIter) Next() bool {
	b.entered <- struct{}{}
	<-b.release
	b.n++
	return true
}

func (b *blockIter) Row() att.Col { return intCol(int64(b.n)) }

func (b *blockIter) Err() error { return nil }

func TestSharedIterConcurrent(t *testing.T) {
	b := &blockIter{entered: make(chan struct{}), release: make(chan struct{})}
	s := NewSeq(att.Schema{itField}, b)
	c := s.Clone()

	var wg sync.WaitGroup
	wg.Add(1)
	var first bool
	go func() {
		defer wg.Done()
		first = s.Iter().Next()
	}()

	// wait until the first consumer holds the cursor
	<-b.entered
	second := c.Iter().Next()
	close(b.release)
	wg.Wait()

	// neither consumer gets a row once they collided
	assert.False(t, first)
	assert.False(t, second)
	assert.Equal(t, att.ConcurrentAccessKind, att.KindOf(s.Err()))
	assert.Equal(t, att.ConcurrentAccessKind, att.KindOf(c.Err()))
}

func TestSharedIterSequential(t *testing.T) {
	// consumers taking turns is fine
	s := counter(4)
	c := s.Clone()
	require.True(t, s.Iter().Next())
	require.True(t, c.Iter().Next())
	assert.Equal(t, intCol(1), s.Iter().Row())
	assert.Equal(t, 2, c.Iter().Pos())
	assert.NoError(t, s.Err())
}

func TestMemory(t *testing.T) {
	src := &rangeIter{n: 5}
	m := newMemory(src)

	row, ok := m.at(2)
	require.True(t, ok)
	assert.Equal(t, intCol(2), row)
	// only what was asked for has been pulled
	assert.Equal(t, 3, src.Pos())

	row, ok = m.at(0)
	require.True(t, ok)
	assert.Equal(t, intCol(0), row)

	_, ok = m.at(5)
	assert.False(t, ok)

	rows, err := m.all()
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestRewinder(t *testing.T) {
	r := &rewinder{m: newMemory(ints(7, 8).Iter())}
	var got []att.Col
	for pass := 0; pass < 2; pass++ {
		for r.First(); !r.EOF(); r.Next() {
			got = append(got, r.Row())
		}
	}
	assert.Equal(t, []att.Col{intCol(7), intCol(8), intCol(7), intCol(8)}, got)
	assert.Equal(t, 2, r.Pos())
}
