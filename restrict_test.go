package rel

import (
	"testing"

	"github.com/jonlawlor/relalg/att"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tests for restrict op

// shapes returns the same three rows of (k, v) in every shape of relation.
func shapes() map[string]Relation {
	rows := []att.Col{kvRow(1, "a"), kvRow(2, "b"), kvRow(3, "c")}
	data := make([]att.Scalar, 0, 6)
	for _, row := range rows {
		data = append(data, row...)
	}
	return map[string]Relation{
		"table": NewTable(kv, rows...),
		"map":   NewMap(kv, rows...),
		"flat":  NewFlat(kv, RowMajor, 3, 2, data),
		"seq":   AsLazy(NewTable(kv, rows...)),
		"query": Defer(NewTable(kv, rows...)),
	}
}

func TestRestrict(t *testing.T) {
	preds := []struct {
		p    att.Predicate
		card int
	}{
		{att.AdHoc{Fn: func(att.Col) bool { return true }}, 3},
		{att.AdHoc{Fn: func(att.Col) bool { return false }}, 0},
		{att.Name("k").GT(1), 2},
		{att.Name("k").EQ(2).Or(att.Name("v").EQ("c")), 2},
		{att.Not(att.Name("v").EQ("a")), 2},
	}
	for _, tt := range preds {
		for name, r := range shapes() {
			r2 := r.Filter(tt.p)
			require.NoError(t, r2.Err(), name)
			assert.Equal(t, r.Schema(), r2.Schema(), "%s %v", name, tt.p)
			if c := Card(r2); c != tt.card {
				t.Errorf("%s filtered by %v has card = %d, want %d", name, tt.p, c, tt.card)
			}
		}
	}
}

func TestRestrictKeepsOrder(t *testing.T) {
	r := orders.Filter(att.Name("Qty").EQ(200))
	assert.Equal(t, intCol(1, 1, 3, 4), r.(Backing).Column(0))
	assert.Equal(t, intCol(2, 4, 2, 2), r.(Backing).Column(1))
}

func BenchmarkRestrict(b *testing.B) {
	r := counterTable(1000)
	p := att.Name("it").LT(500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Filter(p)
	}
}
