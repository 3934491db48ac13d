package rel

import (
	"testing"

	"github.com/jonlawlor/relalg/att"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tests for union op

func TestUnion(t *testing.T) {
	extra := NewTable(kv, kvRow(3, "c"), kvRow(9, "z"))
	var unionTest = []struct {
		name string
		card int
	}{
		// duplicates are kept, except by the map which is keyed
		{"table", 5},
		{"flat", 5},
		{"seq", 5},
		{"query", 5},
		{"map", 4},
	}
	for _, tt := range unionTest {
		r := shapes()[tt.name].Union(extra)
		require.NoError(t, r.Err(), tt.name)
		if c := Card(r); c != tt.card {
			t.Errorf("%s union has card = %d, want %d", tt.name, c, tt.card)
		}
	}
}

func TestUnionOrder(t *testing.T) {
	r := ints(3, 1).Union(AsLazy(ints(2, 1)))
	assert.Equal(t, intCol(3, 1, 2, 1), r.(Backing).Column(0))

	// a lazy union reads the left side before it touches the right
	right := &rangeIter{n: 2}
	u := AsLazy(ints(7)).Union(NewSeq(att.Schema{itField}, right))
	it := u.Iter()
	require.True(t, it.Next())
	assert.Equal(t, intCol(7), it.Row())
	assert.Equal(t, 0, right.Pos())
	// the rest comes from the right side
	assert.Equal(t, 2, Card(u))
}
