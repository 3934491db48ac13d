package rel

import (
	"testing"

	"github.com/jonlawlor/relalg/att"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tests for rename

func TestRename(t *testing.T) {
	for name, r := range shapes() {
		r2 := r.Rename("key", "value")
		require.NoError(t, r2.Err(), name)
		assert.Equal(t, []string{"key", "value"}, Heading(r2), name)
		assert.Equal(t, r.Schema().Kinds(), r2.Schema().Kinds(), name)
		assert.Equal(t, 3, Card(r2), name)

		assert.Equal(t, att.ShapeKind, att.KindOf(Materialize(r.Rename("key")).Err()), name)
	}
}

func TestRenameThenJoin(t *testing.T) {
	// renaming avoids the numeric suffixes of a join
	r := orders.Join(suppliers.Rename("SNO2", "SName", "Status", "City"), InnerJoin, On([]int{1}, []int{0}))
	assert.Equal(t, []string{"PNO", "SNO", "Qty", "SNO2", "SName", "Status", "City"}, Heading(r))
}

func TestRenameOriginalUnchanged(t *testing.T) {
	r := ints(1)
	r.Rename("x")
	assert.Equal(t, []string{"it"}, Heading(r))
}
