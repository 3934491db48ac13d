// predicate defines logical predicates used in a relation's filter

package att

import (
	"fmt"
	"strings"
)

// Predicate is a condition on the rows of a relation.  Predicates refer to
// columns through ColRefs, so they have to be bound to a schema before they
// can be evaluated.
type Predicate interface {
	// Bind resolves the predicate's columns against s and returns a function
	// which evaluates the predicate on rows with that schema.
	Bind(s Schema) (func(Col) (bool, error), error)

	// Domain is the set of columns the predicate reads.
	Domain() []ColRef

	String() string

	// infix boolean expressions
	And(p2 Predicate) AndPred
	Or(p2 Predicate) OrPred
	Xor(p2 Predicate) XorPred
}

// Op is a comparison operator.
type Op int

const (
	EQ Op = iota
	NE
	LT
	LE
	GT
	GE
)

var opNames = [...]string{EQ: "==", NE: "!=", LT: "<", LE: "<=", GT: ">", GE: ">="}

func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Holds reports whether the result of a three way comparison satisfies the
// operator.
func (o Op) Holds(c int) bool {
	switch o {
	case EQ:
		return c == 0
	case NE:
		return c != 0
	case LT:
		return c < 0
	case LE:
		return c <= 0
	case GT:
		return c > 0
	case GE:
		return c >= 0
	}
	return false
}

// Apply compares two scalars with the operator.  Equality against none is
// structural; ordering against none is a TypeError.
func (o Op) Apply(a, b Scalar) (bool, error) {
	if (o == EQ || o == NE) && (a.IsNone() || b.IsNone()) {
		return a.Equal(b) == (o == EQ), nil
	}
	c, err := a.Compare(b)
	if err != nil {
		return false, &TypeError{Op: o.String(), Left: a.Kind(), Right: b.Kind()}
	}
	return o.Holds(c), nil
}

// Cmp compares a column with either a literal operand or another column.
// It is the comparison descriptor handed to a relation's Filter.
type Cmp struct {
	Col     ColRef
	Op      Op
	Operand Scalar

	// Other is used instead of Operand when ByCol is set.
	Other ColRef
	ByCol bool

	// err holds a failed literal conversion, reported when binding.
	err error
}

// NewCmp returns a comparison of a column against a literal scalar.
func NewCmp(col ColRef, op Op, operand Scalar) Cmp {
	return Cmp{Col: col, Op: op, Operand: operand}
}

func (r ColRef) cmp(op Op, v interface{}) Cmp {
	if r2, ok := v.(ColRef); ok {
		return Cmp{Col: r, Op: op, Other: r2, ByCol: true}
	}
	lit, err := FromNative(v)
	return Cmp{Col: r, Op: op, Operand: lit, err: err}
}

// Normal go style does not use all caps for method names, but the shortness
// of these is what makes predicates readable.  v is either another ColRef or
// a literal: a Scalar or any Go value FromNative accepts.

// EQ is equal to (==)
func (r ColRef) EQ(v interface{}) Cmp { return r.cmp(EQ, v) }

// NE is not equal to (!=)
func (r ColRef) NE(v interface{}) Cmp { return r.cmp(NE, v) }

// LT is less than (<)
func (r ColRef) LT(v interface{}) Cmp { return r.cmp(LT, v) }

// LE is less than or equal to (<=)
func (r ColRef) LE(v interface{}) Cmp { return r.cmp(LE, v) }

// GT is greater than (>)
func (r ColRef) GT(v interface{}) Cmp { return r.cmp(GT, v) }

// GE is greater than or equal to (>=)
func (r ColRef) GE(v interface{}) Cmp { return r.cmp(GE, v) }

// String representation of a comparison
func (p Cmp) String() string {
	if p.ByCol {
		return fmt.Sprintf("%v %v %v", p.Col, p.Op, p.Other)
	}
	return fmt.Sprintf("%v %v %v", p.Col, p.Op, p.Operand)
}

// Domain is the set of columns the comparison reads.
func (p Cmp) Domain() []ColRef {
	if p.ByCol {
		return []ColRef{p.Col, p.Other}
	}
	return []ColRef{p.Col}
}

// Bind resolves the comparison against a schema.
func (p Cmp) Bind(s Schema) (func(Col) (bool, error), error) {
	if p.err != nil {
		return nil, p.err
	}
	i, err := s.Resolve(p.Col)
	if err != nil {
		return nil, err
	}
	if p.ByCol {
		j, err := s.Resolve(p.Other)
		if err != nil {
			return nil, err
		}
		return func(c Col) (bool, error) { return p.Op.Apply(c[i], c[j]) }, nil
	}
	return func(c Col) (bool, error) { return p.Op.Apply(c[i], p.Operand) }, nil
}

// And predicate
func (p1 Cmp) And(p2 Predicate) AndPred { return AndPred{p1, p2} }

// Or predicate
func (p1 Cmp) Or(p2 Predicate) OrPred { return OrPred{p1, p2} }

// Xor predicate
func (p1 Cmp) Xor(p2 Predicate) XorPred { return XorPred{p1, p2} }

// unionDomain produces a union of two sets of column references, without
// dups.  This returns a copy and does not modify the inputs.
func unionDomain(d1, d2 []ColRef) []ColRef {
	d := make([]ColRef, len(d1))
	copy(d, d1)
Found:
	for _, v2 := range d2 {
		for _, v1 := range d1 {
			if v1 == v2 {
				continue Found
			}
		}
		d = append(d, v2)
	}
	return d
}

// Not predicate
func Not(p Predicate) NotPred {
	// Prefix not is a lot more comprehensible than postfix!  To that end, it
	// is not a part of the interface.
	return NotPred{p}
}

// NotPred represents a logical not of a predicate
type NotPred struct {
	P Predicate
}

// String representation of Not
func (p NotPred) String() string { return fmt.Sprintf("!(%v)", p.P) }

// Domain is the set of columns the predicate reads.
func (p NotPred) Domain() []ColRef { return p.P.Domain() }

// Bind resolves the predicate against a schema.
func (p NotPred) Bind(s Schema) (func(Col) (bool, error), error) {
	f, err := p.P.Bind(s)
	if err != nil {
		return nil, err
	}
	return func(c Col) (bool, error) {
		b, err := f(c)
		return !b, err
	}, nil
}

// And predicate
func (p1 NotPred) And(p2 Predicate) AndPred { return AndPred{p1, p2} }

// Or predicate
func (p1 NotPred) Or(p2 Predicate) OrPred { return OrPred{p1, p2} }

// Xor predicate
func (p1 NotPred) Xor(p2 Predicate) XorPred { return XorPred{p1, p2} }

// AndPred represents a logical and predicate
type AndPred struct {
	P1 Predicate
	P2 Predicate
}

// String representation of And
func (p AndPred) String() string { return fmt.Sprintf("(%v) && (%v)", p.P1, p.P2) }

// Domain is the set of columns the predicate reads.
func (p AndPred) Domain() []ColRef { return unionDomain(p.P1.Domain(), p.P2.Domain()) }

// Bind resolves the predicate against a schema.
func (p AndPred) Bind(s Schema) (func(Col) (bool, error), error) {
	f1, f2, err := bind2(s, p.P1, p.P2)
	if err != nil {
		return nil, err
	}
	return func(c Col) (bool, error) {
		b, err := f1(c)
		if err != nil || !b {
			return false, err
		}
		return f2(c)
	}, nil
}

// And predicate
func (p1 AndPred) And(p2 Predicate) AndPred { return AndPred{p1, p2} }

// Or predicate
func (p1 AndPred) Or(p2 Predicate) OrPred { return OrPred{p1, p2} }

// Xor predicate
func (p1 AndPred) Xor(p2 Predicate) XorPred { return XorPred{p1, p2} }

// OrPred represents a logical or predicate
type OrPred struct {
	P1 Predicate
	P2 Predicate
}

// String representation of Or
func (p OrPred) String() string { return fmt.Sprintf("(%v) || (%v)", p.P1, p.P2) }

// Domain is the set of columns the predicate reads.
func (p OrPred) Domain() []ColRef { return unionDomain(p.P1.Domain(), p.P2.Domain()) }

// Bind resolves the predicate against a schema.
func (p OrPred) Bind(s Schema) (func(Col) (bool, error), error) {
	f1, f2, err := bind2(s, p.P1, p.P2)
	if err != nil {
		return nil, err
	}
	return func(c Col) (bool, error) {
		b, err := f1(c)
		if err != nil || b {
			return b, err
		}
		return f2(c)
	}, nil
}

// And predicate
func (p1 OrPred) And(p2 Predicate) AndPred { return AndPred{p1, p2} }

// Or predicate
func (p1 OrPred) Or(p2 Predicate) OrPred { return OrPred{p1, p2} }

// Xor predicate
func (p1 OrPred) Xor(p2 Predicate) XorPred { return XorPred{p1, p2} }

// XorPred represents a logical xor predicate
type XorPred struct {
	P1 Predicate
	P2 Predicate
}

// String representation of Xor
func (p XorPred) String() string { return fmt.Sprintf("(%v) != (%v)", p.P1, p.P2) }

// Domain is the set of columns the predicate reads.
func (p XorPred) Domain() []ColRef { return unionDomain(p.P1.Domain(), p.P2.Domain()) }

// Bind resolves the predicate against a schema.
func (p XorPred) Bind(s Schema) (func(Col) (bool, error), error) {
	f1, f2, err := bind2(s, p.P1, p.P2)
	if err != nil {
		return nil, err
	}
	return func(c Col) (bool, error) {
		b1, err := f1(c)
		if err != nil {
			return false, err
		}
		b2, err := f2(c)
		return b1 != b2, err
	}, nil
}

// And predicate
func (p1 XorPred) And(p2 Predicate) AndPred { return AndPred{p1, p2} }

// Or predicate
func (p1 XorPred) Or(p2 Predicate) OrPred { return OrPred{p1, p2} }

// Xor predicate
func (p1 XorPred) Xor(p2 Predicate) XorPred { return XorPred{p1, p2} }

func bind2(s Schema, p1, p2 Predicate) (f1, f2 func(Col) (bool, error), err error) {
	if f1, err = p1.Bind(s); err != nil {
		return
	}
	f2, err = p2.Bind(s)
	return
}

// AdHoc is a Predicate that can implement any function on a row.  Fn is
// handed the values of Cols, in order; with no Cols it gets the whole row.
// I expect that this will typically be constructed with anonymous functions.
type AdHoc struct {
	Cols []ColRef
	Fn   func(Col) bool
}

// String representation of AdHoc
func (p AdHoc) String() string {
	s := make([]string, len(p.Cols))
	for i, c := range p.Cols {
		s[i] = c.String()
	}
	return fmt.Sprintf("func({%s})", strings.Join(s, ", "))
}

// Domain is the set of columns the predicate reads.
func (p AdHoc) Domain() []ColRef { return p.Cols }

// Bind resolves the predicate against a schema.
func (p AdHoc) Bind(s Schema) (func(Col) (bool, error), error) {
	if len(p.Cols) == 0 {
		return func(c Col) (bool, error) { return p.Fn(c), nil }, nil
	}
	pos, err := s.ResolveAll(p.Cols...)
	if err != nil {
		return nil, err
	}
	return func(c Col) (bool, error) {
		sub := make(Col, len(pos))
		for i, j := range pos {
			sub[i] = c[j]
		}
		return p.Fn(sub), nil
	}, nil
}

// And predicate
func (p1 AdHoc) And(p2 Predicate) AndPred { return AndPred{p1, p2} }

// Or predicate
func (p1 AdHoc) Or(p2 Predicate) OrPred { return OrPred{p1, p2} }

// Xor predicate
func (p1 AdHoc) Xor(p2 Predicate) XorPred { return XorPred{p1, p2} }
