package rel

import "strconv"

// ShapeKind is the kind of a relation's shape.
type ShapeKind int

const (
	ScalarShape ShapeKind = iota
	VectorShape
	TableShape
	SeqShape
	QueryShape
)

func (k ShapeKind) String() string {
	switch k {
	case ScalarShape:
		return "scalar"
	case VectorShape:
		return "vector"
	case TableShape:
		return "table"
	case SeqShape:
		return "seq"
	case QueryShape:
		return "query"
	}
	return "ShapeKind(" + strconv.Itoa(int(k)) + ")"
}

// Shape is the semantic classification of a relation.  Rows is only known
// for eager shapes.
type Shape struct {
	Kind ShapeKind
	Rows int
	Cols int
}

func (s Shape) String() string {
	switch s.Kind {
	case ScalarShape:
		return "Scalar"
	case VectorShape:
		return "Vector(" + strconv.Itoa(s.Rows) + ")"
	case TableShape:
		return "Table(" + strconv.Itoa(s.Cols) + ", " + strconv.Itoa(s.Rows) + ")"
	case SeqShape:
		return "Seq"
	case QueryShape:
		return "Query"
	}
	return s.Kind.String()
}

// Layout is the physical ordering of a flat buffer of scalars.
type Layout int

const (
	// RowMajor stores row i, column j at i*cols+j.
	RowMajor Layout = iota
	// ColMajor stores row i, column j at j*rows+i.
	ColMajor
)

func (l Layout) String() string {
	if l == ColMajor {
		return "col"
	}
	return "row"
}

// index of row i, column j in a buffer of the given dimensions.
func (l Layout) index(i, j, rows, cols int) int {
	if l == ColMajor {
		return j*rows + i
	}
	return i*cols + j
}
