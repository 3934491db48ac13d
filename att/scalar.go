package att

import (
	"encoding/binary"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

// Scalar holds exactly one value of one DataType.  The zero Scalar is the
// none value.  Scalars are immutable and may be copied freely.
type Scalar struct {
	kind DataType

	i int64  // TypeBool (0 or 1), TypeInt32, TypeInt64
	u uint64 // TypeUint32, TypeUint64
	d decimal.Decimal
	t time.Time
	s string
	r *Tuples
}

// None returns the none scalar.
func None() Scalar { return Scalar{} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar {
	if b {
		return Scalar{kind: TypeBool, i: 1}
	}
	return Scalar{kind: TypeBool}
}

// I32 returns a 32 bit signed integer scalar.
func I32(i int32) Scalar { return Scalar{kind: TypeInt32, i: int64(i)} }

// I64 returns a 64 bit signed integer scalar.
func I64(i int64) Scalar { return Scalar{kind: TypeInt64, i: i} }

// U32 returns a 32 bit unsigned integer scalar.
func U32(u uint32) Scalar { return Scalar{kind: TypeUint32, u: uint64(u)} }

// U64 returns a 64 bit unsigned integer scalar.
func U64(u uint64) Scalar { return Scalar{kind: TypeUint64, u: u} }

// Dec returns a decimal scalar.
func Dec(d decimal.Decimal) Scalar { return Scalar{kind: TypeDecimal, d: d} }

// DecString parses a decimal scalar.
func DecString(s string) (Scalar, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Scalar{}, &TypeError{Op: "parse " + strconv.Quote(s), Left: TypeText, Right: TypeDecimal}
	}
	return Dec(d), nil
}

// Time returns a datetime scalar.
func Time(t time.Time) Scalar { return Scalar{kind: TypeDateTime, t: t} }

// Text returns a UTF-8 text scalar.
func Text(s string) Scalar { return Scalar{kind: TypeText, s: s} }

// Nest returns a scalar holding a materialized relation.
func Nest(t *Tuples) Scalar { return Scalar{kind: TypeRel, r: t} }

// Kind returns the DataType of the value held.
func (a Scalar) Kind() DataType { return a.kind }

// IsNone reports whether a is the none scalar.
func (a Scalar) IsNone() bool { return a.kind == TypeNone }

// AsBool returns the value of a boolean scalar.
func (a Scalar) AsBool() (bool, bool) {
	return a.i != 0, a.kind == TypeBool
}

// AsInt64 returns the value of an integer scalar of any width, provided it
// fits in an int64.
func (a Scalar) AsInt64() (int64, bool) {
	switch a.kind {
	case TypeInt32, TypeInt64:
		return a.i, true
	case TypeUint32, TypeUint64:
		if a.u > math.MaxInt64 {
			return 0, false
		}
		return int64(a.u), true
	}
	return 0, false
}

// AsUint64 returns the value of a non negative integer scalar.
func (a Scalar) AsUint64() (uint64, bool) {
	switch a.kind {
	case TypeInt32, TypeInt64:
		if a.i < 0 {
			return 0, false
		}
		return uint64(a.i), true
	case TypeUint32, TypeUint64:
		return a.u, true
	}
	return 0, false
}

// AsDecimal returns the value of a numeric scalar as a decimal.
func (a Scalar) AsDecimal() (decimal.Decimal, bool) {
	switch a.kind {
	case TypeInt32, TypeInt64:
		return decimal.NewFromInt(a.i), true
	case TypeUint32, TypeUint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(a.u), 0), true
	case TypeDecimal:
		return a.d, true
	}
	return decimal.Zero, false
}

// AsTime returns the value of a datetime scalar.
func (a Scalar) AsTime() (time.Time, bool) { return a.t, a.kind == TypeDateTime }

// AsText returns the value of a text scalar.
func (a Scalar) AsText() (string, bool) { return a.s, a.kind == TypeText }

// AsTuples returns the relation held by a nested scalar.
func (a Scalar) AsTuples() (*Tuples, bool) { return a.r, a.kind == TypeRel }

// Equal reports structural equality: same kind and equal payload.
func (a Scalar) Equal(b Scalar) bool {
	return a.kind == b.kind && a.Order(b) == 0
}

// Less reports whether a sorts before b in the structural order.
func (a Scalar) Less(b Scalar) bool {
	return a.Order(b) < 0
}

// Order is the structural total order on scalars: by kind first, then by
// payload.  It returns -1, 0 or +1.
func (a Scalar) Order(b Scalar) int {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return -1
		}
		return 1
	}
	switch a.kind {
	case TypeNone:
		return 0
	case TypeBool, TypeInt32, TypeInt64:
		return cmpInt(a.i, b.i)
	case TypeUint32, TypeUint64:
		return cmpUint(a.u, b.u)
	case TypeDecimal:
		return a.d.Cmp(b.d)
	case TypeDateTime:
		return a.t.Compare(b.t)
	case TypeText:
		return strings.Compare(a.s, b.s)
	case TypeRel:
		return a.r.order(b.r)
	}
	return 0
}

// Compare is the comparison used by predicates.  Integers of every width and
// decimals compare numerically with one another; every other kind only
// compares with itself.  Incompatible kinds, or an ordering of none, are a
// TypeError.
func (a Scalar) Compare(b Scalar) (int, error) {
	switch {
	case a.kind == b.kind && a.kind != TypeNone:
		return a.Order(b), nil
	case a.kind.IsInteger() && b.kind.IsInteger():
		return cmpMixed(a, b), nil
	case a.kind.IsNumeric() && b.kind.IsNumeric():
		da, _ := a.AsDecimal()
		db, _ := b.AsDecimal()
		return da.Cmp(db), nil
	}
	return 0, &TypeError{Op: "compare", Left: a.kind, Right: b.kind}
}

// cmpMixed compares a signed integer with an unsigned one.
func cmpMixed(a, b Scalar) int {
	aSigned := a.kind == TypeInt32 || a.kind == TypeInt64
	bSigned := b.kind == TypeInt32 || b.kind == TypeInt64
	switch {
	case aSigned && bSigned:
		return cmpInt(a.i, b.i)
	case !aSigned && !bSigned:
		return cmpUint(a.u, b.u)
	case aSigned:
		if a.i < 0 {
			return -1
		}
		return cmpUint(uint64(a.i), b.u)
	default:
		if b.i < 0 {
			return 1
		}
		return cmpUint(a.u, uint64(b.i))
	}
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Hash writes a canonical encoding of the scalar to h.  Scalars that are
// Equal write identical bytes.
func (a Scalar) Hash(h *xxhash.Digest) {
	var buf [9]byte
	buf[0] = byte(a.kind)
	switch a.kind {
	case TypeNone:
		h.Write(buf[:1])
	case TypeBool, TypeInt32, TypeInt64:
		binary.LittleEndian.PutUint64(buf[1:], uint64(a.i))
		h.Write(buf[:])
	case TypeUint32, TypeUint64:
		binary.LittleEndian.PutUint64(buf[1:], a.u)
		h.Write(buf[:])
	case TypeDecimal:
		h.Write(buf[:1])
		writeString(h, a.d.String())
	case TypeDateTime:
		binary.LittleEndian.PutUint64(buf[1:], uint64(a.t.Unix()))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[1:], uint64(a.t.Nanosecond()))
		h.Write(buf[1:])
	case TypeText:
		h.Write(buf[:1])
		writeString(h, a.s)
	case TypeRel:
		h.Write(buf[:1])
		a.r.hash(h)
	}
}

func writeString(h *xxhash.Digest, s string) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
	h.Write(n[:])
	h.WriteString(s)
}

// String returns a display form of the value.
func (a Scalar) String() string {
	switch a.kind {
	case TypeNone:
		return "None"
	case TypeBool:
		return strconv.FormatBool(a.i != 0)
	case TypeInt32, TypeInt64:
		return strconv.FormatInt(a.i, 10)
	case TypeUint32, TypeUint64:
		return strconv.FormatUint(a.u, 10)
	case TypeDecimal:
		return a.d.String()
	case TypeDateTime:
		return a.t.Format(time.RFC3339Nano)
	case TypeText:
		return a.s
	case TypeRel:
		return a.r.String()
	}
	return "?"
}

// GoString returns the scalar as a constructor call.
func (a Scalar) GoString() string {
	switch a.kind {
	case TypeNone:
		return "att.None()"
	case TypeBool:
		return "att.Bool(" + a.String() + ")"
	case TypeInt32:
		return "att.I32(" + a.String() + ")"
	case TypeInt64:
		return "att.I64(" + a.String() + ")"
	case TypeUint32:
		return "att.U32(" + a.String() + ")"
	case TypeUint64:
		return "att.U64(" + a.String() + ")"
	case TypeDecimal:
		return "att.DecString(" + strconv.Quote(a.String()) + ")"
	case TypeDateTime:
		return "att.Time(" + strconv.Quote(a.String()) + ")"
	case TypeText:
		return "att.Text(" + strconv.Quote(a.s) + ")"
	}
	return "att.Nest(" + a.r.String() + ")"
}
