// util holds the helpers shared by the operators of every shape

package rel

import (
	"strings"

	"github.com/jonlawlor/relalg/att"
)

// build returns a vector when the form asks for one and the schema allows
// it, and a table otherwise.
func build(s att.Schema, form ShapeKind, rows []att.Col) Relation {
	if (form == VectorShape || form == ScalarShape) && s.Len() == 1 {
		vals := make([]att.Scalar, len(rows))
		for i, row := range rows {
			vals[i] = row[0]
		}
		return NewVector(s[0], vals...)
	}
	return &Table{schema: s, rows: rows}
}

// sameHeading returns a ShapeError if two relations have different degrees,
// and a TypeError for the first column whose kinds differ.  A column of kind
// None matches any kind.
func sameHeading(op string, r1, r2 Relation) error {
	if d1, d2 := r1.Deg(), r2.Deg(); d1 != d2 {
		return &att.ShapeError{What: "degree", Expected: d1, Found: d2}
	}
	s2 := r2.Schema()
	for j, f := range r1.Schema() {
		k1, k2 := f.Kind, s2[j].Kind
		if k1 != k2 && k1 != att.TypeNone && k2 != att.TypeNone {
			return &att.TypeError{Op: op, Left: k1, Right: k2}
		}
	}
	return nil
}

// projection resolves column references against a schema, and returns their
// positions with the projected schema.
func projection(s att.Schema, cols []att.ColRef) ([]int, att.Schema, error) {
	pos, err := s.ResolveAll(cols...)
	if err != nil {
		return nil, nil, err
	}
	s2, err := s.OnlyPos(pos...)
	if err != nil {
		return nil, nil, err
	}
	return pos, s2, nil
}

// pick returns a new row with the values at the given positions.
func pick(row att.Col, pos []int) att.Col {
	row2 := make(att.Col, len(pos))
	for i, p := range pos {
		row2[i] = row[p]
	}
	return row2
}

func refString(cols []att.ColRef) string {
	s := make([]string, len(cols))
	for i, c := range cols {
		s[i] = c.String()
	}
	return strings.Join(s, ", ")
}

// renamed returns a copy of a schema with new names, in order.  The number
// of names has to match the degree.
func renamed(s att.Schema, names []string) (att.Schema, error) {
	if len(names) != len(s) {
		return nil, &att.ShapeError{What: "names", Expected: len(s), Found: len(names)}
	}
	s2 := make(att.Schema, len(s))
	for i, f := range s {
		s2[i] = att.Field{Name: names[i], Kind: f.Kind}
	}
	return s2, nil
}
