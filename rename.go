// rename implements a rename expression in relational algebra

package rel

// renameRows renames the columns of an eager relation.  The rows are
// shared, since relations are never modified.
func renameRows(r1 Backing, names []string, form ShapeKind) Relation {
	if r := guard(r1); r != nil {
		return r
	}
	count("rename", r1)
	s2, err := renamed(r1.Schema(), names)
	if err != nil {
		return fail(r1, "rename", err)
	}
	rows, _ := Rows(r1)
	return build(s2, form, rows)
}
