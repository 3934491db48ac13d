package att

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// FromNative converts a Go value into a Scalar.  The accepted types are the
// ones drivers hand back from a row scan.
func FromNative(v interface{}) (Scalar, error) {
	switch x := v.(type) {
	case nil:
		return None(), nil
	case Scalar:
		return x, nil
	case *Tuples:
		return Nest(x), nil
	case bool:
		return Bool(x), nil
	case int8:
		return I32(int32(x)), nil
	case int16:
		return I32(int32(x)), nil
	case int32:
		return I32(x), nil
	case int:
		return I64(int64(x)), nil
	case int64:
		return I64(x), nil
	case uint8:
		return U32(uint32(x)), nil
	case uint16:
		return U32(uint32(x)), nil
	case uint32:
		return U32(x), nil
	case uint:
		return U64(uint64(x)), nil
	case uint64:
		return U64(x), nil
	case float32:
		return Dec(decimal.NewFromFloat32(x)), nil
	case float64:
		return Dec(decimal.NewFromFloat(x)), nil
	case decimal.Decimal:
		return Dec(x), nil
	case string:
		return Text(x), nil
	case []byte:
		return Text(string(x)), nil
	case time.Time:
		return Time(x), nil
	}
	return Scalar{}, &TypeError{GoType: fmt.Sprintf("%T", v)}
}

// Native returns the value held by the scalar as a Go value: nil, bool,
// int32, int64, uint32, uint64, decimal.Decimal, time.Time, string or
// *Tuples.
func (a Scalar) Native() interface{} {
	switch a.kind {
	case TypeBool:
		return a.i != 0
	case TypeInt32:
		return int32(a.i)
	case TypeInt64:
		return a.i
	case TypeUint32:
		return uint32(a.u)
	case TypeUint64:
		return a.u
	case TypeDecimal:
		return a.d
	case TypeDateTime:
		return a.t
	case TypeText:
		return a.s
	case TypeRel:
		return a.r
	}
	return nil
}

// Cast converts a to the given kind.  None casts to none of every kind.
func Cast(a Scalar, to DataType) (Scalar, error) {
	if a.kind == to || a.kind == TypeNone {
		return a, nil
	}
	bad := &TypeError{Op: "cast", Left: a.kind, Right: to}
	switch to {
	case TypeNone:
		return None(), nil
	case TypeText:
		return Text(a.String()), nil
	case TypeBool:
		switch {
		case a.kind == TypeText:
			b, err := strconv.ParseBool(a.s)
			if err != nil {
				return Scalar{}, bad
			}
			return Bool(b), nil
		case a.kind.IsInteger():
			d, _ := a.AsDecimal()
			return Bool(!d.IsZero()), nil
		}
	case TypeDecimal:
		if d, ok := a.AsDecimal(); ok {
			return Dec(d), nil
		}
		if a.kind == TypeText {
			return DecString(a.s)
		}
	case TypeDateTime:
		switch {
		case a.kind == TypeText:
			t, err := time.Parse(time.RFC3339Nano, a.s)
			if err != nil {
				return Scalar{}, bad
			}
			return Time(t), nil
		case a.kind.IsInteger():
			if i, ok := a.AsInt64(); ok {
				return Time(time.Unix(i, 0).UTC()), nil
			}
		}
	case TypeInt32, TypeInt64, TypeUint32, TypeUint64:
		return castInteger(a, to, bad)
	}
	return Scalar{}, bad
}

func castInteger(a Scalar, to DataType, bad error) (Scalar, error) {
	var d decimal.Decimal
	switch {
	case a.kind.IsNumeric():
		d, _ = a.AsDecimal()
	case a.kind == TypeText:
		var err error
		if d, err = decimal.NewFromString(a.s); err != nil {
			return Scalar{}, bad
		}
	case a.kind == TypeBool:
		d = decimal.NewFromInt(a.i)
	default:
		return Scalar{}, bad
	}
	if !d.Equal(d.Truncate(0)) {
		return Scalar{}, bad
	}
	b := d.BigInt()
	switch to {
	case TypeInt32:
		if !b.IsInt64() || b.Int64() < math.MinInt32 || b.Int64() > math.MaxInt32 {
			return Scalar{}, bad
		}
		return I32(int32(b.Int64())), nil
	case TypeInt64:
		if !b.IsInt64() {
			return Scalar{}, bad
		}
		return I64(b.Int64()), nil
	case TypeUint32:
		if !b.IsUint64() || b.Uint64() > math.MaxUint32 {
			return Scalar{}, bad
		}
		return U32(uint32(b.Uint64())), nil
	default:
		if !b.IsUint64() {
			return Scalar{}, bad
		}
		return U64(b.Uint64()), nil
	}
}
