package rel

import (
	"testing"

	"github.com/jonlawlor/relalg/att"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tests for the Table type

func TestTable(t *testing.T) {
	var relTest = []struct {
		rel        Relation
		expectDeg  int
		expectCard int
	}{
		{orders, 3, 12},
		{orders.Filter(att.Name("PNO").EQ(1)), 3, 6},
		{orders.Filter(att.Name("PNO").EQ(1).And(att.Name("SNO").GT(3))), 3, 3},
		{orders.Project(att.Name("PNO"), att.Name("SNO")), 2, 12},
		{orders.Project(att.Name("PNO")), 1, 12},
		{orders.Rename("Pno", "Sno", "Qty"), 3, 12},
		{orders.Union(orders), 3, 24},
		{orders.Diff(orders.Filter(att.Name("Qty").GE(300))), 3, 6},
		{orders.Intersect(orders.Filter(att.Name("Qty").GE(300))), 3, 6},
		{suppliers.Cross(parts), 9, 30},
		{orders.Join(suppliers, InnerJoin, On([]int{1}, []int{0})), 7, 11},
		{orders.Join(suppliers, LeftJoin, On([]int{1}, []int{0})), 7, 12},
	}
	for i, tt := range relTest {
		if err := tt.rel.Err(); err != nil {
			t.Errorf("%d %v has error %v", i, tt.rel.GoString(), err)
			continue
		}
		if d := tt.rel.Deg(); d != tt.expectDeg {
			t.Errorf("%d has Deg() => %v, want %v", i, d, tt.expectDeg)
		}
		if c := Card(tt.rel); c != tt.expectCard {
			t.Errorf("%d has Card() => %v, want %v", i, c, tt.expectCard)
		}
	}
}

func TestNewTableRowLength(t *testing.T) {
	r := NewTable(att.NewSchema(
		att.Field{Name: "a", Kind: att.TypeInt64},
		att.Field{Name: "b", Kind: att.TypeInt64},
	), intCol(1, 2), intCol(3))
	require.Error(t, r.Err())
	assert.Equal(t, att.ShapeKind, att.KindOf(r.Err()))
	assert.Contains(t, r.Err().Error(), "row 1")

	// every operator passes the error on
	r2 := r.Filter(att.Name("a").EQ(1)).Union(orders).Project(att.Pos(0))
	assert.Equal(t, r.Err(), r2.Err())
	assert.Equal(t, 0, Card(r))
}

func TestTableCopiesRows(t *testing.T) {
	row := intCol(1, 2)
	s := att.NewSchema(att.Field{Name: "a", Kind: att.TypeInt64}, att.Field{Name: "b", Kind: att.TypeInt64})
	r := NewTable(s, row)
	row[0] = att.I64(9)
	assert.Equal(t, att.I64(1), r.At(0, 0))

	out := r.Row(0)
	out[0] = att.I64(9)
	assert.Equal(t, att.I64(1), r.At(0, 0))
}

func TestTableAccess(t *testing.T) {
	assert.Equal(t, "Table(4, 5)", suppliers.Shape().String())
	assert.Equal(t, att.Text("Blake"), suppliers.At(2, 1))
	assert.Equal(t, intCol(3), suppliers.Row(2)[:1])
	assert.Equal(t, att.Col{att.Text("London"), att.Text("Paris"), att.Text("Paris"), att.Text("London"), att.Text("Athens")},
		suppliers.Column(3))
}

func TestTableFilterSchema(t *testing.T) {
	preds := []att.Predicate{
		att.Name("City").EQ("Paris"),
		att.Name("Status").GT(10).Or(att.Name("City").EQ("Athens")),
		att.Not(att.Name("SNO").LE(2)),
		att.Name("SNO").EQ(att.Name("Status")),
	}
	for _, p := range preds {
		r := suppliers.Filter(p)
		require.NoError(t, r.Err(), p.String())
		assert.Equal(t, suppliers.Schema(), r.Schema(), p.String())
	}
}

func TestTableProjectOrder(t *testing.T) {
	r := suppliers.Project(att.Name("City"), att.Pos(0))
	require.NoError(t, r.Err())
	assert.Equal(t, []string{"City", "SNO"}, Heading(r))
	assert.Equal(t, att.Col{att.Text("London"), att.I64(1)}, r.(Backing).Row(0))

	// rows are not deduplicated
	assert.Equal(t, 5, Card(suppliers.Project(att.Name("City"))))
}

func TestTableSetProperties(t *testing.T) {
	dup := orders.Union(orders)
	assert.Equal(t, 2*orders.Card(), Card(dup))
	assert.True(t, Equal(dup.Intersect(dup), orders))
	assert.Equal(t, 0, Card(orders.Diff(dup)))
}

func TestTableRename(t *testing.T) {
	r := suppliers.Rename("a", "b", "c", "d")
	require.NoError(t, r.Err())
	assert.Equal(t, []string{"a", "b", "c", "d"}, Heading(r))
	assert.Equal(t, suppliers.Schema().Kinds(), r.Schema().Kinds())
	assert.Equal(t, att.ShapeKind, att.KindOf(suppliers.Rename("a").Err()))
}

func TestTableOf(t *testing.T) {
	v, err := Nest(orders)
	require.NoError(t, err)
	tup, ok := v.AsTuples()
	require.True(t, ok)
	assert.True(t, Equal(TableOf(tup), orders))
}
