package att

import "strconv"

// DataType is the kind of value a Scalar holds.  The declaration order is
// significant: it is the order used when schemas and scalars of different
// kinds are compared.
type DataType uint8

const (
	TypeNone DataType = iota
	TypeBool
	TypeInt32
	TypeInt64
	TypeUint32
	TypeUint64
	TypeDecimal
	TypeDateTime
	TypeText
	TypeRel
)

var typeNames = [...]string{
	TypeNone:     "None",
	TypeBool:     "Bool",
	TypeInt32:    "Int32",
	TypeInt64:    "Int64",
	TypeUint32:   "Uint32",
	TypeUint64:   "Uint64",
	TypeDecimal:  "Decimal",
	TypeDateTime: "DateTime",
	TypeText:     "Text",
	TypeRel:      "Rel",
}

func (t DataType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "DataType(" + strconv.Itoa(int(t)) + ")"
}

// IsInteger reports whether values of the type are integers of any width.
func (t DataType) IsInteger() bool {
	switch t {
	case TypeInt32, TypeInt64, TypeUint32, TypeUint64:
		return true
	}
	return false
}

// IsNumeric reports whether values of the type can be compared numerically.
func (t DataType) IsNumeric() bool {
	return t.IsInteger() || t == TypeDecimal
}

// ParseDataType returns the DataType with the given name.
func ParseDataType(name string) (DataType, bool) {
	for i, n := range typeNames {
		if n == name {
			return DataType(i), true
		}
	}
	return TypeNone, false
}
