// errors are the failure kinds reported by the algebra.  None of them are
// recoverable by the engine; they are returned to the caller, which is
// expected to validate schemas, types and arities when it needs to degrade
// gracefully.

package att

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind classifies an error produced by the algebra.
type Kind int

const (
	// NoKind is reported for nil errors and for errors not produced here.
	NoKind Kind = iota
	SchemaKind
	TypeKind
	ShapeKind
	ConcurrentAccessKind
)

func (k Kind) String() string {
	switch k {
	case SchemaKind:
		return "schema"
	case TypeKind:
		return "type"
	case ShapeKind:
		return "shape"
	case ConcurrentAccessKind:
		return "concurrent access"
	}
	return "unknown"
}

// SchemaError represents a column reference that could not be resolved
// against a schema.
type SchemaError struct {
	Ref    ColRef
	Schema []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("rel: column %v not found in (%s)", e.Ref, strings.Join(e.Schema, ", "))
}

// TypeError represents an operator applied to scalars of incompatible kinds.
type TypeError struct {
	Op    string
	Left  DataType
	Right DataType

	// GoType is set when a native Go value could not be converted.
	GoType string
}

func (e *TypeError) Error() string {
	if e.GoType != "" {
		return fmt.Sprintf("rel: cannot convert %s to %v", e.GoType, e.Right)
	}
	if e.Right == e.Left && e.Op != "" {
		return fmt.Sprintf("rel: operator %s not defined on %v", e.Op, e.Left)
	}
	return fmt.Sprintf("rel: mismatched types %v and %v in %s", e.Left, e.Right, e.Op)
}

// ShapeError represents a dimension mismatch, such as rows of the wrong
// length, or joins on column lists of different arity.
type ShapeError struct {
	What     string
	Expected int
	Found    int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("rel: expected %s %d, found %d", e.What, e.Expected, e.Found)
}

// ConcurrentAccessError represents a second consumer advancing a shared
// cursor while another advance on it is still in progress.
type ConcurrentAccessError struct {
	Pos int
}

func (e *ConcurrentAccessError) Error() string {
	return fmt.Sprintf("rel: cursor already borrowed at position %d", e.Pos)
}

// KindOf reports the kind of err, looking through any wrapping.
func KindOf(err error) Kind {
	if err == nil {
		return NoKind
	}
	var se *SchemaError
	var te *TypeError
	var sh *ShapeError
	var ca *ConcurrentAccessError
	switch {
	case stderrors.As(err, &se):
		return SchemaKind
	case stderrors.As(err, &te):
		return TypeKind
	case stderrors.As(err, &sh):
		return ShapeKind
	case stderrors.As(err, &ca):
		return ConcurrentAccessKind
	}
	return NoKind
}
