// Package rel implements relational algebra, a set of operations on
// relations which result in relations, over data held in memory.
//
// # Basics
//
// Relations are collections of rows with identical, named and typed
// columns.  The columns are described by a schema, and the values by
// scalars, both defined in the subpackage github.com/jonlawlor/relalg/att.
// The operations which define the algebra here are:
//
// Filter, which removes the rows of a relation that do not satisfy a
// predicate.  Predicates are built from column references, for example
// att.Name("City").EQ("Paris").
//
// Union, which appends the rows of one relation to another.  Unlike a set
// union, duplicates are kept.
//
// Diff and Intersect, which keep the distinct rows of one relation that
// are, or are not, in another.
//
// Cross, which pairs every row of one relation with every row of another.
//
// Join, which pairs the rows that match on a list of columns, and pads the
// unmatched rows with none according to the kind of join: left, right,
// inner or full.
//
// Project and Rename, which keep some of the columns, or give them new
// names.
//
// # Shapes
//
// The same algebra is implemented by relations of different shapes:
//
// ScalarRel, a single value.
//
// Vector, a single column.
//
// Table, rows of any degree.
//
// MapRel, an ordered map of at most two columns, key and value.
//
// Flat, a single buffer of values in row major or column major layout.
//
// Seq, a lazy relation whose rows come from a cursor and are computed when
// they are pulled.  Copies of a Seq share the cursor.
//
// Query, a relation with a list of pending operations which are applied, in
// order, when the query is forced.
//
// # Errors
//
// Operators do not panic.  An operator that fails returns a relation whose
// Err method reports the failure, and every operator applied to it returns
// it unchanged.  The kind of an error is one of att.SchemaKind,
// att.TypeKind, att.ShapeKind or att.ConcurrentAccessKind, as reported by
// att.KindOf.
package rel
