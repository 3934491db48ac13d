// mapliteral implements the ordered map relation, which holds at most two
// columns: a key and a value, kept sorted by key in a btree

package rel

import (
	"github.com/google/btree"
	"github.com/jonlawlor/relalg/att"
	"github.com/pkg/errors"
)

const mapDegree = 16

// entry is one key and value of an ordered map.
type entry struct {
	key att.Scalar
	val att.Scalar
}

func lessEntry(a, b entry) bool { return a.key.Less(b.key) }

// MapRel is an ordered map relation.  With one field it is an ordered set,
// and every value is none; with two it maps the first column to the second.
// Keys are unique, so a later row with the same key replaces an earlier one.
type MapRel struct {
	schema att.Schema
	tree   *btree.BTreeG[entry]

	err error
}

// NewMap returns an ordered map relation holding the rows.  A schema with
// more than two fields, or a row whose length differs from it, results in a
// relation reporting a ShapeError.
func NewMap(s att.Schema, rows ...att.Col) *MapRel {
	r := &MapRel{schema: att.NewSchema(s...), tree: btree.NewG(mapDegree, lessEntry)}
	if len(s) > 2 {
		r.err = &att.ShapeError{What: "map columns at most", Expected: 2, Found: len(s)}
		return r
	}
	for i, row := range rows {
		if len(row) != len(s) {
			r.err = errors.Wrapf(&att.ShapeError{What: "row length", Expected: len(s), Found: len(row)}, "row %d", i)
			r.tree.Clear(false)
			return r
		}
		r.insert(row)
	}
	return r
}

func (r *MapRel) insert(row att.Col) {
	switch len(row) {
	case 1:
		r.tree.ReplaceOrInsert(entry{key: row[0]})
	case 2:
		r.tree.ReplaceOrInsert(entry{key: row[0], val: row[1]})
	}
}

func (r *MapRel) row(e entry) att.Col {
	switch len(r.schema) {
	case 1:
		return att.Col{e.key}
	case 2:
		return att.Col{e.key, e.val}
	}
	return att.Col{}
}

// entries returns the entries in key order.
func (r *MapRel) entries() []entry {
	es := make([]entry, 0, r.tree.Len())
	r.tree.Ascend(func(e entry) bool {
		es = append(es, e)
		return true
	})
	return es
}

// Get returns the value stored under a key.
func (r *MapRel) Get(key att.Scalar) (att.Scalar, bool) {
	e, ok := r.tree.Get(entry{key: key})
	return e.val, ok
}

// Schema is the ordered list of fields of the relation.
func (r *MapRel) Schema() att.Schema { return r.schema }

// Shape of a map is a table of at most two columns.
func (r *MapRel) Shape() Shape {
	return Shape{Kind: TableShape, Rows: r.tree.Len(), Cols: len(r.schema)}
}

// Deg is the degree of the relation.
func (r *MapRel) Deg() int { return len(r.schema) }

// Card is the cardinality of the relation.
func (r *MapRel) Card() int { return r.tree.Len() }

// Row returns row i in key order.
func (r *MapRel) Row(i int) att.Col { return r.row(r.entries()[i]) }

// Column returns the keys, for j = 0, or the values, for j = 1.
func (r *MapRel) Column(j int) att.Col {
	_ = r.schema[j]
	c := make(att.Col, 0, r.tree.Len())
	r.tree.Ascend(func(e entry) bool {
		if j == 0 {
			c = append(c, e.key)
		} else {
			c = append(c, e.val)
		}
		return true
	})
	return c
}

// At returns the value at row i, column j.
func (r *MapRel) At(i, j int) att.Scalar { return r.Row(i)[j] }

// Iter returns a cursor over a snapshot of the rows, in key order.
func (r *MapRel) Iter() Iter {
	if r.err != nil {
		return &errIter{err: r.err}
	}
	es := r.entries()
	return newIndexIter(len(es), func(i int) att.Col { return r.row(es[i]) })
}

func (r *MapRel) with(tree *btree.BTreeG[entry]) *MapRel {
	return &MapRel{schema: r.schema, tree: tree}
}

// Filter keeps the rows which satisfy the predicate.  A comparison on the
// key column is answered from the btree: a direct lookup for EQ and a range
// scan for the ordering operators.  A comparison on the value column is a
// linear scan which stops at the first match, so it gives at most one row.
// Anything else is a full scan.
func (r1 *MapRel) Filter(p att.Predicate) Relation {
	if r := guard(r1); r != nil {
		return r
	}
	c, ok := p.(att.Cmp)
	if !ok || c.ByCol {
		return r1.scan(p)
	}
	if _, err := c.Bind(r1.schema); err != nil {
		count("filter", r1)
		return fail(r1, "filter", err)
	}
	j, _ := r1.schema.Resolve(c.Col)
	if j == 1 {
		count("filter", r1)
		return r1.firstValue(c)
	}
	if c.Op == att.NE || !r1.keysOfKind(c.Operand.Kind()) {
		return r1.scan(p)
	}
	count("filter", r1)
	tree := btree.NewG(mapDegree, lessEntry)
	pivot := entry{key: c.Operand}
	add := func(e entry) bool {
		tree.ReplaceOrInsert(e)
		return true
	}
	switch c.Op {
	case att.EQ:
		if e, ok := r1.tree.Get(pivot); ok {
			tree.ReplaceOrInsert(e)
		}
	case att.LT:
		r1.tree.AscendLessThan(pivot, add)
	case att.LE:
		r1.tree.AscendLessThan(pivot, add)
		if e, ok := r1.tree.Get(pivot); ok {
			tree.ReplaceOrInsert(e)
		}
	case att.GT:
		r1.tree.AscendGreaterOrEqual(pivot, func(e entry) bool {
			if e.key.Equal(c.Operand) {
				return true
			}
			return add(e)
		})
	case att.GE:
		r1.tree.AscendGreaterOrEqual(pivot, add)
	}
	return r1.with(tree)
}

// keysOfKind reports whether every key has kind k.  Keys are ordered by
// kind first, so the smallest and largest keys decide.
func (r1 *MapRel) keysOfKind(k att.DataType) bool {
	lo, ok := r1.tree.Min()
	if !ok {
		return true
	}
	hi, _ := r1.tree.Max()
	return lo.key.Kind() == k && hi.key.Kind() == k
}

// firstValue scans the values in key order and keeps the first match.
func (r1 *MapRel) firstValue(c att.Cmp) Relation {
	tree := btree.NewG(mapDegree, lessEntry)
	var err error
	r1.tree.Ascend(func(e entry) bool {
		var ok bool
		if ok, err = c.Op.Apply(e.val, c.Operand); err != nil {
			return false
		}
		if ok {
			tree.ReplaceOrInsert(e)
			return false
		}
		return true
	})
	if err != nil {
		return fail(r1, "filter", err)
	}
	return r1.with(tree)
}

// scan evaluates the predicate on every row.
func (r1 *MapRel) scan(p att.Predicate) Relation {
	count("filter", r1)
	pred, err := p.Bind(r1.schema)
	if err != nil {
		return fail(r1, "filter", err)
	}
	tree := btree.NewG(mapDegree, lessEntry)
	r1.tree.Ascend(func(e entry) bool {
		var ok bool
		if ok, err = pred(r1.row(e)); err != nil {
			return false
		}
		if ok {
			tree.ReplaceOrInsert(e)
		}
		return true
	})
	if err != nil {
		return fail(r1, "filter", err)
	}
	return r1.with(tree)
}

// Union inserts the rows of r2 into a copy of the map.  Rows of r2 replace
// rows with the same key.
func (r1 *MapRel) Union(r2 Relation) Relation {
	if r := guard(r1, r2); r != nil {
		return r
	}
	count("union", r1)
	if err := sameHeading("union", r1, r2); err != nil {
		return fail(r1, "union", err)
	}
	rows2, err := Rows(r2)
	if err != nil {
		return fail(r1, "union", err)
	}
	r3 := r1.with(r1.tree.Clone())
	for _, row := range rows2 {
		r3.insert(row)
	}
	return r3
}

// Diff keeps the entries whose key is not a key of r2.
func (r1 *MapRel) Diff(r2 Relation) Relation {
	return r1.byKey("diff", r2, false)
}

// Intersect keeps the entries whose key is also a key of r2.  The values
// are the ones of r1.
func (r1 *MapRel) Intersect(r2 Relation) Relation {
	return r1.byKey("intersect", r2, true)
}

func (r1 *MapRel) byKey(op string, r2 Relation, keep bool) Relation {
	if r := guard(r1, r2); r != nil {
		return r
	}
	count(op, r1)
	if err := sameHeading(op, r1, r2); err != nil {
		return fail(r1, op, err)
	}
	rows2, err := Rows(r2)
	if err != nil {
		return fail(r1, op, err)
	}
	keys := newRowSet()
	for _, row := range rows2 {
		if len(row) > 0 {
			keys.add(row[:1])
		}
	}
	tree := btree.NewG(mapDegree, lessEntry)
	r1.tree.Ascend(func(e entry) bool {
		if keys.has(att.Col{e.key}) == keep {
			tree.ReplaceOrInsert(e)
		}
		return true
	})
	return r1.with(tree)
}

// Cross pairs every row with every row of r2, giving a table.
func (r1 *MapRel) Cross(r2 Relation) Relation {
	return crossRows(r1, r2)
}

// Join joins the map with r2, giving a table.
func (r1 *MapRel) Join(r2 Relation, kind JoinKind, on JoinOn) Relation {
	return joinRows(r1, r2, kind, on)
}

// Project keeps the referenced columns, giving a table.
func (r1 *MapRel) Project(cols ...att.ColRef) Relation {
	return projectRows(r1, cols, TableShape)
}

// Rename gives the columns new names.  The result is still a map.
func (r1 *MapRel) Rename(names ...string) Relation {
	if r := guard(r1); r != nil {
		return r
	}
	count("rename", r1)
	s2, err := renamed(r1.schema, names)
	if err != nil {
		return fail(r1, "rename", err)
	}
	return &MapRel{schema: s2, tree: r1.tree}
}

// Err returns an error encountered during construction.
func (r1 *MapRel) Err() error { return r1.err }

// GoString returns a text representation of the Relation
func (r *MapRel) GoString() string {
	return goStringTabTable("rel.NewMap("+schemaGoString(r.schema)+",", r.Iter(), false)
}

// String returns a text representation of the Relation
func (r *MapRel) String() string {
	if r.err != nil {
		return "error{" + r.err.Error() + "}"
	}
	return stringTabTable(r)
}
