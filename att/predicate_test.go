package att

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tests for Predicates

var exSchema = NewSchema(
	Field{Name: "Foo", Kind: TypeInt64},
	Field{Name: "Bar", Kind: TypeText},
	Field{Name: "Baz", Kind: TypeInt64},
)

func TestStringer(t *testing.T) {

	Foo := Name("Foo")
	Bar := Name("Bar")
	var predTests = []struct {
		in  fmt.Stringer
		out string
	}{
		{Foo.EQ(Bar), "Foo == Bar"},
		{Foo.EQ("Bar"), "Foo == Bar"},
		{Foo.NE(Bar), "Foo != Bar"},
		{Foo.NE("Bar"), "Foo != Bar"},
		{Foo.LT(Bar), "Foo < Bar"},
		{Foo.LT("Bar"), "Foo < Bar"},
		{Foo.LE(Bar), "Foo <= Bar"},
		{Foo.LE("Bar"), "Foo <= Bar"},
		{Foo.GT(Bar), "Foo > Bar"},
		{Foo.GT("Bar"), "Foo > Bar"},
		{Foo.GE(Bar), "Foo >= Bar"},
		{Foo.GE("Bar"), "Foo >= Bar"},
		{Pos(0).EQ(3), "#0 == 3"},
		{AdHoc{Cols: []ColRef{Foo, Bar}, Fn: func(Col) bool { return true }}, "func({Foo, Bar})"},
		{AdHoc{Fn: func(Col) bool { return true }}, "func({})"},

		{Not(Foo.EQ(Bar)), "!(Foo == Bar)"},
		{Foo.EQ(Bar).And(Foo.NE(Bar)), "(Foo == Bar) && (Foo != Bar)"},
		{Foo.EQ(Bar).Or(Foo.NE(Bar)), "(Foo == Bar) || (Foo != Bar)"},
		{Foo.EQ(Bar).Xor(Foo.NE(Bar)), "(Foo == Bar) != (Foo != Bar)"},
	}
	for _, tt := range predTests {
		s := tt.in.String()
		if s != tt.out {
			t.Errorf("String() => %v, want %v", s, tt.out)
		}
	}

}

// tests Bind and predicate composition
func TestBindComposition(t *testing.T) {
	True := AdHoc{Fn: func(Col) bool {
		return true
	}}
	False := AdHoc{Fn: func(Col) bool {
		return false
	}}
	var predTests = []struct {
		name string
		in   Predicate
		out  bool
	}{
		{"True", True, true},
		{"False", False, false},

		{"Not(True)", Not(True), false},
		{"Not(False)", Not(False), true},

		{"True.And(True)", True.And(True), true},
		{"False.And(True)", False.And(True), false},
		{"True.And(False)", True.And(False), false},
		{"False.And(False)", False.And(False), false},

		{"True.Or(True)", True.Or(True), true},
		{"False.Or(True)", False.Or(True), true},
		{"True.Or(False)", True.Or(False), true},
		{"False.Or(False)", False.Or(False), false},

		{"True.Xor(True)", True.Xor(True), false},
		{"False.Xor(True)", False.Xor(True), true},
		{"True.Xor(False)", True.Xor(False), true},
		{"False.Xor(False)", False.Xor(False), false},
	}

	row := Col{I64(1), Text("foo"), I64(2)}

	for _, tt := range predTests {
		f, err := tt.in.Bind(exSchema)
		if err != nil {
			t.Errorf("%s bind => %v", tt.name, err)
			continue
		}
		b, err := f(row)
		if err != nil || b != tt.out {
			t.Errorf("%s => %v (%v), want %v", tt.name, b, err, tt.out)
		}
	}
}

func TestCompare(t *testing.T) {
	Foo := Name("Foo")
	Baz := Name("Baz")

	var predTests = []struct {
		name string
		in   Predicate
		row  Col
		out  bool
	}{
		{"EQ col", Foo.EQ(Baz), Col{I64(1), Text("a"), I64(1)}, true},
		{"EQ col", Foo.EQ(Baz), Col{I64(1), Text("a"), I64(2)}, false},
		{"NE col", Foo.NE(Baz), Col{I64(1), Text("a"), I64(2)}, true},
		{"LT col", Foo.LT(Baz), Col{I64(1), Text("a"), I64(2)}, true},
		{"LE col", Foo.LE(Baz), Col{I64(2), Text("a"), I64(2)}, true},
		{"GT col", Foo.GT(Baz), Col{I64(2), Text("a"), I64(2)}, false},
		{"GE col", Foo.GE(Baz), Col{I64(2), Text("a"), I64(2)}, true},

		{"EQ lit", Foo.EQ(1), Col{I64(1), Text("a"), I64(2)}, true},
		{"EQ lit", Foo.EQ(2), Col{I64(1), Text("a"), I64(2)}, false},
		{"EQ text", Name("Bar").EQ("a"), Col{I64(1), Text("a"), I64(2)}, true},
		{"LT text", Name("Bar").LT("b"), Col{I64(1), Text("a"), I64(2)}, true},
		{"GT mixed width", Foo.GT(int32(0)), Col{I64(1), Text("a"), I64(2)}, true},
		{"EQ uint", Foo.EQ(uint64(1)), Col{I64(1), Text("a"), I64(2)}, true},
		{"LT decimal", Foo.LT(1.5), Col{I64(1), Text("a"), I64(2)}, true},
		{"EQ none", Foo.EQ(nil), Col{None(), Text("a"), I64(2)}, true},
		{"NE none", Foo.NE(nil), Col{I64(1), Text("a"), I64(2)}, true},
		{"by position", Pos(2).GE(2), Col{I64(1), Text("a"), I64(2)}, true},
	}

	for _, tt := range predTests {
		f, err := tt.in.Bind(exSchema)
		require.NoError(t, err, tt.name)
		b, err := f(tt.row)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.out, b, "%s %v on %v", tt.name, tt.in, tt.row)
	}
}

func TestCompareErrors(t *testing.T) {
	// unknown column
	_, err := Name("Qux").EQ(1).Bind(exSchema)
	assert.Equal(t, SchemaKind, KindOf(err))

	_, err = Pos(3).EQ(1).Bind(exSchema)
	assert.Equal(t, SchemaKind, KindOf(err))

	_, err = Name("Foo").EQ(Name("Qux")).Bind(exSchema)
	assert.Equal(t, SchemaKind, KindOf(err))

	// a literal that cannot be converted is reported when binding
	_, err = Name("Foo").EQ(struct{}{}).Bind(exSchema)
	assert.Equal(t, TypeKind, KindOf(err))

	// ordering text against an integer fails when evaluated
	f, err := Name("Bar").LT(1).Bind(exSchema)
	require.NoError(t, err)
	_, err = f(Col{I64(1), Text("a"), I64(2)})
	assert.Equal(t, TypeKind, KindOf(err))

	// so does ordering against none
	f, err = Name("Foo").LT(nil).Bind(exSchema)
	require.NoError(t, err)
	_, err = f(Col{I64(1), Text("a"), I64(2)})
	assert.Equal(t, TypeKind, KindOf(err))

	// errors stop the composite predicates
	f, err = Name("Bar").LT(1).And(Name("Foo").EQ(1)).Bind(exSchema)
	require.NoError(t, err)
	_, err = f(Col{I64(1), Text("a"), I64(2)})
	assert.Error(t, err)

	_, err = Not(Name("Qux").EQ(1)).Bind(exSchema)
	assert.Error(t, err)
}

func TestAndShortCircuits(t *testing.T) {
	called := false
	p := Name("Foo").EQ(2).And(AdHoc{Fn: func(Col) bool {
		called = true
		return true
	}})
	f, err := p.Bind(exSchema)
	require.NoError(t, err)
	b, err := f(Col{I64(1), Text("a"), I64(2)})
	require.NoError(t, err)
	assert.False(t, b)
	assert.False(t, called)
}

func TestAdHocCols(t *testing.T) {
	var got Col
	p := AdHoc{Cols: []ColRef{Name("Baz"), Name("Foo")}, Fn: func(c Col) bool {
		got = c
		return true
	}}
	f, err := p.Bind(exSchema)
	require.NoError(t, err)
	_, err = f(Col{I64(1), Text("a"), I64(2)})
	require.NoError(t, err)
	assert.Equal(t, Col{I64(2), I64(1)}, got)
}

func TestDomain(t *testing.T) {
	Foo := Name("Foo")
	Bar := Name("Bar")
	Baz := Name("Baz")
	var domainTests = []struct {
		in  Predicate
		out []ColRef
	}{
		{Foo.EQ(1), []ColRef{Foo}},
		{Foo.EQ(Bar), []ColRef{Foo, Bar}},
		{Not(Foo.EQ(Bar)), []ColRef{Foo, Bar}},
		{Foo.EQ(Bar).And(Bar.EQ(Baz)), []ColRef{Foo, Bar, Baz}},
		{Foo.EQ(1).Or(Foo.EQ(2)), []ColRef{Foo}},
		{Foo.EQ(1).Xor(Baz.EQ(2)), []ColRef{Foo, Baz}},
		{AdHoc{Cols: []ColRef{Baz}}, []ColRef{Baz}},
	}
	for _, tt := range domainTests {
		assert.Equal(t, tt.out, tt.in.Domain(), tt.in.String())
	}
}

func TestOpApply(t *testing.T) {
	ok, err := LE.Apply(Dec(mustDec(t, "1.0")), U32(1))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = EQ.Apply(None(), None())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = NE.Apply(None(), I64(0))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = GT.Apply(Bool(true), I64(0))
	assert.Equal(t, TypeKind, KindOf(err))

	assert.Equal(t, "Op(9)", Op(9).String())
	assert.False(t, Op(9).Holds(0))
}
