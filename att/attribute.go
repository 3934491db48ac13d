// Package att represents attributes: the typed fields and schemas that every
// relation is built from, the scalar values that fill them, and the column
// references and predicates constructed from attributes.
package att

import (
	"sort"
	"strconv"
	"strings"
)

// Field is a named, typed column of a relation.
type Field struct {
	Name string
	Kind DataType
}

func (f Field) String() string {
	return f.Name + " " + f.Kind.String()
}

// Schema is an ordered list of fields.  Names are not required to be unique;
// lookups by name return the first match.
type Schema []Field

// NewSchema returns a schema with the given fields, in order.
func NewSchema(fields ...Field) Schema {
	s := make(Schema, len(fields))
	copy(s, fields)
	return s
}

// Single returns a schema with one field.
func Single(name string, kind DataType) Schema {
	return Schema{{name, kind}}
}

// Len is the number of fields, which is also the degree of any relation
// with the schema.
func (s Schema) Len() int { return len(s) }

// Field returns the field at position i.
func (s Schema) Field(i int) Field { return s[i] }

// Names returns the field names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}

// Kinds returns the field types in order.
func (s Schema) Kinds() []DataType {
	kinds := make([]DataType, len(s))
	for i, f := range s {
		kinds[i] = f.Kind
	}
	return kinds
}

// Lookup returns the position of the first field with the given name.
func (s Schema) Lookup(name string) (int, bool) {
	for i, f := range s {
		if f.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Has reports whether a field with the given name exists.
func (s Schema) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Resolve returns the position a column reference points at.
func (s Schema) Resolve(ref ColRef) (int, error) {
	if ref.named {
		if i, ok := s.Lookup(ref.name); ok {
			return i, nil
		}
		return -1, &SchemaError{Ref: ref, Schema: s.Names()}
	}
	if ref.pos < 0 || ref.pos >= len(s) {
		return -1, &SchemaError{Ref: ref, Schema: s.Names()}
	}
	return ref.pos, nil
}

// ResolveAll resolves each reference in turn.
func (s Schema) ResolveAll(refs ...ColRef) ([]int, error) {
	pos := make([]int, len(refs))
	for i, ref := range refs {
		p, err := s.Resolve(ref)
		if err != nil {
			return nil, err
		}
		pos[i] = p
	}
	return pos, nil
}

// Only projects the schema onto the named fields, in the given order.
func (s Schema) Only(names ...string) (Schema, error) {
	s2 := make(Schema, len(names))
	for i, name := range names {
		j, ok := s.Lookup(name)
		if !ok {
			return nil, &SchemaError{Ref: Name(name), Schema: s.Names()}
		}
		s2[i] = s[j]
	}
	return s2, nil
}

// OnlyPos projects the schema onto the given positions, in the given order.
func (s Schema) OnlyPos(pos ...int) (Schema, error) {
	s2 := make(Schema, len(pos))
	for i, p := range pos {
		if p < 0 || p >= len(s) {
			return nil, &SchemaError{Ref: Pos(p), Schema: s.Names()}
		}
		s2[i] = s[p]
	}
	return s2, nil
}

// Except removes the named fields, keeping the original order of the rest.
func (s Schema) Except(names ...string) Schema {
	s2 := make(Schema, 0, len(s))
Loop:
	for _, f := range s {
		for _, name := range names {
			if f.Name == name {
				continue Loop
			}
		}
		s2 = append(s2, f)
	}
	return s2
}

// Extend concatenates two schemas.  A field of s2 whose name is already
// taken gets a numeric suffix from a counter that advances on every
// collision, so extending (a, b) with (a, b) gives (a, b, a1, b2).
func (s Schema) Extend(s2 Schema) Schema {
	s3 := make(Schema, 0, len(s)+len(s2))
	s3 = append(s3, s...)
	n := 0
	for _, f := range s2 {
		name := f.Name
		for s3.Has(name) {
			n++
			name = f.Name + strconv.Itoa(n)
		}
		s3 = append(s3, Field{name, f.Kind})
	}
	return s3
}

// Equal reports whether the schemas hold the same fields, ignoring order.
func (s Schema) Equal(s2 Schema) bool {
	if len(s) != len(s2) {
		return false
	}
	a, b := s.sorted(), s2.sorted()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sorted returns a copy sorted by name descending, then by kind.
func (s Schema) sorted() Schema {
	s2 := NewSchema(s...)
	sort.SliceStable(s2, func(i, j int) bool {
		if s2[i].Name != s2[j].Name {
			return s2[i].Name > s2[j].Name
		}
		return s2[i].Kind > s2[j].Kind
	})
	return s2
}

// order compares schemas positionally, by name and then kind.
func (s Schema) order(s2 Schema) int {
	for i := 0; i < len(s) && i < len(s2); i++ {
		if c := strings.Compare(s[i].Name, s2[i].Name); c != 0 {
			return c
		}
		if s[i].Kind != s2[i].Kind {
			return cmpInt(int64(s[i].Kind), int64(s2[i].Kind))
		}
	}
	return cmpInt(int64(len(s)), int64(len(s2)))
}

func (s Schema) String() string {
	str := make([]string, len(s))
	for i, f := range s {
		str[i] = f.String()
	}
	return "(" + strings.Join(str, ", ") + ")"
}

// ColRef refers to a column either by position or by name.
type ColRef struct {
	pos   int
	name  string
	named bool
}

// Pos refers to the column at position i.
func Pos(i int) ColRef { return ColRef{pos: i} }

// Name refers to the first column with the given name.
func Name(name string) ColRef { return ColRef{name: name, named: true} }

// IsName reports whether the reference is by name.
func (r ColRef) IsName() bool { return r.named }

func (r ColRef) String() string {
	if r.named {
		return r.name
	}
	return "#" + strconv.Itoa(r.pos)
}
