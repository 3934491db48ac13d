package rel

import (
	"testing"

	"github.com/jonlawlor/relalg/att"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tests for join

var abc = att.NewSchema(
	att.Field{Name: "a", Kind: att.TypeInt64},
	att.Field{Name: "b", Kind: att.TypeInt64},
	att.Field{Name: "c", Kind: att.TypeInt64},
)

func TestJoinFull(t *testing.T) {
	left := NewTable(abc, intCol(1, 10, 100), intCol(2, 20, 200), intCol(3, 30, 300))
	right := NewTable(abc, intCol(2, 21, 201), intCol(4, 41, 401), intCol(3, 31, 301))

	r := left.Join(right, FullJoin, On([]int{0}, []int{0}))
	require.NoError(t, r.Err())
	assert.Equal(t, 6, r.Deg())
	assert.Equal(t, []string{"a", "b", "c", "a1", "b2", "c3"}, Heading(r))

	// two matches, one unmatched left row, one unmatched right row
	none := att.None()
	want := []att.Col{
		{att.I64(1), att.I64(10), att.I64(100), none, none, none},
		{att.I64(2), att.I64(20), att.I64(200), att.I64(2), att.I64(21), att.I64(201)},
		{att.I64(3), att.I64(30), att.I64(300), att.I64(3), att.I64(31), att.I64(301)},
		{none, none, none, att.I64(4), att.I64(41), att.I64(401)},
	}
	assert.Equal(t, want, mustRows(t, r))
}

func TestJoinCounts(t *testing.T) {
	on := On([]int{1}, []int{0})
	var joinTests = []struct {
		kind JoinKind
		card int
	}{
		// orders has one order from supplier 6, who does not exist, and every
		// supplier has at least one order.
		{InnerJoin, 11},
		{LeftJoin, 12},
		{RightJoin, 11},
		{FullJoin, 12},
	}
	for _, tt := range joinTests {
		r := orders.Join(suppliers, tt.kind, on)
		require.NoError(t, r.Err(), tt.kind.String())
		if c := Card(r); c != tt.card {
			t.Errorf("%v join => %d rows, want %d", tt.kind, c, tt.card)
		}
	}

	// full join: matched pairs plus unmatched rows from either side
	pos, err := matchRows(
		&rewinder{m: newMemory(orders.Iter())},
		&rewinder{m: newMemory(suppliers.Iter())},
		on, false)
	require.NoError(t, err)
	matched, l, rr := pos.Count()
	assert.Equal(t, 11, matched)
	assert.Equal(t, 1, l)
	assert.Equal(t, 0, rr)
	assert.Equal(t, matched+l+rr, Card(orders.Join(suppliers, FullJoin, on)))
}

func TestJoinInnerHasNoNone(t *testing.T) {
	r := orders.Join(suppliers, InnerJoin, On([]int{1}, []int{0}))
	for _, row := range mustRows(t, r) {
		for _, v := range row {
			if v.IsNone() {
				t.Fatalf("inner join produced a padded row %v", row)
			}
		}
	}
}

func TestMatchRowsOrder(t *testing.T) {
	left := ints(1, 2)
	right := ints(5, 2, 4, 3)
	pos, err := matchRows(
		&rewinder{m: newMemory(left.Iter())},
		&rewinder{m: newMemory(right.Iter())},
		On([]int{0}, []int{0}), false)
	require.NoError(t, err)
	// unmatched right rows are appended in ascending order
	assert.Equal(t, JoinPos{{0, -1}, {1, 1}, {-1, 0}, {-1, 2}, {-1, 3}}, pos)
	assert.Equal(t, JoinPos{{1, 1}}, pos.Inner())
	assert.Equal(t, JoinPos{{0, -1}, {1, 1}}, pos.ForKind(LeftJoin))
	assert.Equal(t, JoinPos{{1, 1}, {-1, 0}, {-1, 2}, {-1, 3}}, pos.ForKind(RightJoin))
}

func TestMaterializeInnerSentinel(t *testing.T) {
	s := att.Schema{itField}
	_, err := materialize(JoinPos{{0, -1}}, InnerJoin, s, s, []att.Col{intCol(1)}, nil)
	assert.Equal(t, att.ShapeKind, att.KindOf(err))

	_, err = materialize(JoinPos{{-1, 0}}, LeftJoin, s, s, nil, []att.Col{intCol(1)})
	assert.Equal(t, att.ShapeKind, att.KindOf(err))

	tab, err := materialize(JoinPos{{-1, 0}}, RightJoin, s, s, nil, []att.Col{intCol(1)})
	require.NoError(t, err)
	assert.Equal(t, att.Col{att.None(), att.I64(1)}, tab.Row(0))
}

func TestJoinErrors(t *testing.T) {
	var errTests = []struct {
		name string
		on   JoinOn
		kind att.Kind
	}{
		{"arity", On([]int{0, 1}, []int{0}), att.ShapeKind},
		{"left range", On([]int{7}, []int{0}), att.SchemaKind},
		{"right range", On([]int{0}, []int{9}), att.SchemaKind},
	}
	for _, tt := range errTests {
		r := orders.Join(suppliers, InnerJoin, tt.on)
		if k := att.KindOf(r.Err()); k != tt.kind {
			t.Errorf("%s => %v (%v), want %v", tt.name, k, r.Err(), tt.kind)
		}
	}
}

func TestJoinMixedWidths(t *testing.T) {
	left := NewVector(att.Field{Name: "n", Kind: att.TypeInt32}, att.I32(1), att.I32(2))
	right := NewVector(att.Field{Name: "n", Kind: att.TypeUint64}, att.U64(2))
	r := left.Join(right, InnerJoin, On([]int{0}, []int{0}))
	require.NoError(t, r.Err())
	assert.Equal(t, []att.Col{{att.I32(2), att.U64(2)}}, mustRows(t, r))
}

func TestJoinUsing(t *testing.T) {
	// pair each supplier with the parts stored in the same city
	r := suppliers.Join(parts, InnerJoin, Using(func(l, r att.Col) bool {
		return l[3].Equal(r[4])
	}))
	require.NoError(t, r.Err())
	// London has 2 suppliers and 3 parts, Paris 2 and 2, Athens 1 and 0.
	assert.Equal(t, 10, Card(r))
	assert.Equal(t, "func", Using(func(l, r att.Col) bool { return true }).String())
}

func TestJoinCross(t *testing.T) {
	r := ints(1, 2).Join(ints(3), CrossJoin, JoinOn{})
	require.NoError(t, r.Err())
	assert.Equal(t, []att.Col{intCol(1, 3), intCol(2, 3)}, mustRows(t, r))

	// a cross product with an empty relation is empty
	assert.Equal(t, 0, Card(ints(1, 2).Cross(ints())))
	assert.Equal(t, 0, Card(ints().Cross(ints(1, 2))))
}

func TestJoinKindNames(t *testing.T) {
	for k := LeftJoin; k <= CrossJoin; k++ {
		k2, ok := ParseJoinKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, k2)
	}
	k, ok := ParseJoinKind("FULL")
	assert.True(t, ok)
	assert.Equal(t, FullJoin, k)
	_, ok = ParseJoinKind("outer")
	assert.False(t, ok)
	assert.Equal(t, "unknown", JoinKind(9).String())
	assert.Equal(t, "#1 = #0, #2 = #3", On([]int{1, 2}, []int{0, 3}).String())
}
