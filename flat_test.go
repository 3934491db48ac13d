package rel

import (
	"testing"

	"github.com/jonlawlor/relalg/att"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tests for the flat buffer relation

func flatData(vs ...int64) []att.Scalar {
	return []att.Scalar(intCol(vs...))
}

func TestFlatLayouts(t *testing.T) {
	// the same 2 x 3 relation in both layouts
	rowMajor := NewFlat(abc, RowMajor, 2, 3, flatData(1, 2, 3, 4, 5, 6))
	colMajor := NewFlat(abc, ColMajor, 2, 3, flatData(1, 4, 2, 5, 3, 6))
	for _, r := range []*Flat{rowMajor, colMajor} {
		require.NoError(t, r.Err())
		assert.Equal(t, intCol(1, 2, 3), r.Row(0), r.Layout().String())
		assert.Equal(t, intCol(4, 5, 6), r.Row(1), r.Layout().String())
		assert.Equal(t, intCol(2, 5), r.Column(1), r.Layout().String())
		assert.Equal(t, att.I64(6), r.At(1, 2), r.Layout().String())
		assert.Equal(t, "Table(3, 2)", r.Shape().String())
	}
	assert.True(t, Equal(rowMajor, colMajor))
}

func TestFlatTranspose(t *testing.T) {
	r := NewFlat(abc, RowMajor, 2, 3, flatData(1, 2, 3, 4, 5, 6))
	c := r.Transpose()
	assert.Equal(t, ColMajor, c.Layout())
	assert.Equal(t, flatData(1, 4, 2, 5, 3, 6), c.Data())
	assert.Equal(t, r.Data(), c.Transpose().Data())

	f := FlatOf(orders, ColMajor)
	require.NoError(t, f.Err())
	assert.True(t, Equal(f, orders))
	assert.Equal(t, orders.Column(2), f.Column(2))
}

func TestFlatErrors(t *testing.T) {
	r := NewFlat(abc, RowMajor, 2, 3, flatData(1, 2, 3))
	assert.Equal(t, att.ShapeKind, att.KindOf(r.Err()))
	assert.Equal(t, 0, r.Card())
	assert.Equal(t, r.Err(), r.Filter(att.Name("a").EQ(1)).Err())
	assert.Equal(t, r.Err(), r.Rename("x", "y", "z").Err())

	r = NewFlat(abc, RowMajor, 3, 2, flatData(1, 2, 3, 4, 5, 6))
	assert.Equal(t, att.ShapeKind, att.KindOf(r.Err()))

	f := FlatOf(NewTable(abc, intCol(1)), RowMajor)
	assert.Error(t, f.Err())
}

func TestFlatOperators(t *testing.T) {
	r := NewFlat(abc, ColMajor, 2, 3, flatData(1, 4, 2, 5, 3, 6))

	f := r.Filter(att.Name("a").GT(1))
	assert.Equal(t, []att.Col{intCol(4, 5, 6)}, mustRows(t, f))

	assert.Equal(t, 4, Card(r.Union(r)))
	assert.Equal(t, 2, Card(r.Intersect(r)))
	assert.Equal(t, 0, Card(r.Diff(r)))
	assert.Equal(t, 4, Card(r.Cross(r)))
	assert.Equal(t, 2, Card(r.Join(r, InnerJoin, On([]int{0}, []int{0}))))
	assert.Equal(t, []att.Col{intCol(3, 1), intCol(6, 4)}, mustRows(t, r.Project(att.Pos(2), att.Pos(0))))

	n := r.Rename("x", "y", "z")
	require.NoError(t, n.Err())
	assert.IsType(t, &Flat{}, n)
	assert.Equal(t, []string{"x", "y", "z"}, Heading(n))
	assert.Equal(t, r.Data(), n.(*Flat).Data())
}

func TestFlatString(t *testing.T) {
	r := NewFlat(abc, RowMajor, 1, 3, flatData(1, 2, 3))
	want := `+---+---+---+
| a | b | c |
+---+---+---+
| 1 | 2 | 3 |
+---+---+---+`
	assert.Equal(t, want, r.String())
	assert.Contains(t, r.GoString(), "rel.FlatOf(rel.NewTable(")
	assert.Contains(t, r.GoString(), ", rel.RowMajor)")
}
