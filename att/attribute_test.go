package att

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	var resolveTests = []struct {
		in  ColRef
		out int
	}{
		{Name("Foo"), 0},
		{Name("Baz"), 2},
		{Pos(1), 1},
	}
	for _, tt := range resolveTests {
		i, err := exSchema.Resolve(tt.in)
		require.NoError(t, err)
		if i != tt.out {
			t.Errorf("Resolve(%v) => %v, want %v", tt.in, i, tt.out)
		}
	}

	_, err := exSchema.Resolve(Name("Qux"))
	assert.Equal(t, SchemaKind, KindOf(err))
	assert.Contains(t, err.Error(), "Qux")

	_, err = exSchema.Resolve(Pos(-1))
	assert.Equal(t, SchemaKind, KindOf(err))

	pos, err := exSchema.ResolveAll(Name("Baz"), Pos(0))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, pos)
}

func TestDuplicateNames(t *testing.T) {
	s := NewSchema(Field{"a", TypeInt64}, Field{"a", TypeText})
	i, ok := s.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestExtend(t *testing.T) {
	s := NewSchema(Field{"a", TypeInt64}, Field{"b", TypeText})

	ext := s.Extend(s)
	assert.Equal(t, []string{"a", "b", "a1", "b2"}, ext.Names())
	assert.Equal(t, []DataType{TypeInt64, TypeText, TypeInt64, TypeText}, ext.Kinds())

	ext = s.Extend(NewSchema(Field{"c", TypeBool}))
	assert.Equal(t, []string{"a", "b", "c"}, ext.Names())

	// the original is not changed
	assert.Equal(t, 2, s.Len())
}

func TestSchemaEqual(t *testing.T) {
	s1 := NewSchema(Field{"a", TypeInt64}, Field{"b", TypeText})
	s2 := NewSchema(Field{"b", TypeText}, Field{"a", TypeInt64})
	s3 := NewSchema(Field{"a", TypeInt64}, Field{"b", TypeInt64})

	assert.True(t, s1.Equal(s2))
	assert.False(t, s1.Equal(s3))
	assert.False(t, s1.Equal(s1[:1]))
}

func TestOnlyExcept(t *testing.T) {
	s, err := exSchema.Only("Baz", "Foo")
	require.NoError(t, err)
	assert.Equal(t, []string{"Baz", "Foo"}, s.Names())

	_, err = exSchema.Only("Qux")
	assert.Equal(t, SchemaKind, KindOf(err))

	s, err = exSchema.OnlyPos(1)
	require.NoError(t, err)
	assert.Equal(t, Single("Bar", TypeText), s)

	_, err = exSchema.OnlyPos(5)
	assert.Error(t, err)

	assert.Equal(t, []string{"Bar"}, exSchema.Except("Foo", "Baz").Names())
}

func TestSchemaString(t *testing.T) {
	assert.Equal(t, "(Foo Int64, Bar Text, Baz Int64)", exSchema.String())
	assert.Equal(t, "Foo", Name("Foo").String())
	assert.Equal(t, "#2", Pos(2).String())
	assert.True(t, Name("Foo").IsName())
	assert.False(t, Pos(0).IsName())
}

func TestParseDataType(t *testing.T) {
	for i := TypeNone; i <= TypeRel; i++ {
		k, ok := ParseDataType(i.String())
		assert.True(t, ok)
		assert.Equal(t, i, k)
	}
	_, ok := ParseDataType("Float")
	assert.False(t, ok)
	assert.Equal(t, "DataType(42)", DataType(42).String())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, NoKind, KindOf(nil))
	assert.Equal(t, ShapeKind, KindOf(&ShapeError{What: "row length", Expected: 2, Found: 3}))
	assert.Equal(t, ConcurrentAccessKind, KindOf(&ConcurrentAccessError{Pos: 1}))
	assert.Equal(t, "concurrent access", ConcurrentAccessKind.String())
	assert.Equal(t, "rel: expected row length 2, found 3",
		(&ShapeError{What: "row length", Expected: 2, Found: 3}).Error())
}
