// join implements joins and the cross product in relational algebra.  Both
// go through the same engine: a nested loop over two rewindable cursors
// records the positions of matched and unmatched rows, and the positions are
// then materialized into a table according to the kind of join.

package rel

import (
	"strings"

	"github.com/jonlawlor/relalg/att"
	"go.uber.org/zap"
)

// JoinKind determines which sides of a join may be padded with none.
type JoinKind int

const (
	// LeftJoin keeps unmatched left rows, padding the right side.
	LeftJoin JoinKind = iota
	// RightJoin keeps unmatched right rows, padding the left side.
	RightJoin
	// InnerJoin keeps only matched pairs.
	InnerJoin
	// FullJoin keeps unmatched rows from both sides.
	FullJoin
	// CrossJoin pairs every row with every row.
	CrossJoin
)

var joinNames = [...]string{"left", "right", "inner", "full", "cross"}

func (k JoinKind) String() string {
	if k >= 0 && int(k) < len(joinNames) {
		return joinNames[k]
	}
	return "unknown"
}

// ParseJoinKind returns the join kind with the given name.
func ParseJoinKind(name string) (JoinKind, bool) {
	for i, n := range joinNames {
		if strings.EqualFold(n, name) {
			return JoinKind(i), true
		}
	}
	return 0, false
}

// nulls reports which sides of a pair may be missing.
func (k JoinKind) nulls() (left, right bool) {
	switch k {
	case LeftJoin:
		return false, true
	case RightJoin:
		return true, false
	case FullJoin:
		return true, true
	}
	return false, false
}

// JoinOn describes how rows are matched in a join.  When Pred is nil, a left
// row matches a right row when the values in the Left columns equal the
// values in the Right columns, pairwise.
type JoinOn struct {
	Left  []int
	Right []int
	Pred  func(left, right att.Col) bool
}

// On matches the left columns with the right columns, pairwise, on
// equality.
func On(left, right []int) JoinOn {
	return JoinOn{Left: left, Right: right}
}

// Using matches rows with a custom predicate on a left and a right row.
func Using(pred func(left, right att.Col) bool) JoinOn {
	return JoinOn{Pred: pred}
}

func (on JoinOn) String() string {
	if on.Pred != nil {
		return "func"
	}
	s := make([]string, len(on.Left))
	for i := range on.Left {
		r := -1
		if i < len(on.Right) {
			r = on.Right[i]
		}
		s[i] = att.Pos(on.Left[i]).String() + " = " + att.Pos(r).String()
	}
	return strings.Join(s, ", ")
}

// validate checks the column lists against the schemas of both sides.
func (on JoinOn) validate(ls, rs att.Schema) error {
	if len(on.Left) != len(on.Right) {
		return &att.ShapeError{What: "join columns", Expected: len(on.Left), Found: len(on.Right)}
	}
	for _, p := range on.Left {
		if _, err := ls.Resolve(att.Pos(p)); err != nil {
			return err
		}
	}
	for _, p := range on.Right {
		if _, err := rs.Resolve(att.Pos(p)); err != nil {
			return err
		}
	}
	return nil
}

func (on JoinOn) matcher() func(l, r att.Col) bool {
	if on.Pred != nil {
		return on.Pred
	}
	return func(l, r att.Col) bool {
		for i := range on.Left {
			if !equalValues(l[on.Left[i]], r[on.Right[i]]) {
				return false
			}
		}
		return true
	}
}

// equalValues is structural equality, extended to numbers of different
// kinds which compare equal.
func equalValues(a, b att.Scalar) bool {
	if a.Equal(b) {
		return true
	}
	c, err := a.Compare(b)
	return err == nil && c == 0
}

var always = JoinOn{Pred: func(l, r att.Col) bool { return true }}

// Pair is the position of a left row and a right row in a join.  -1 means
// there is no partner on that side.
type Pair struct {
	Left  int
	Right int
}

// JoinPos is the list of pairs produced by matching two relations.
type JoinPos []Pair

// ForKind keeps the pairs a kind of join produces.
func (pos JoinPos) ForKind(kind JoinKind) JoinPos {
	nl, nr := kind.nulls()
	if kind == CrossJoin {
		nl, nr = true, true
	}
	pos2 := make(JoinPos, 0, len(pos))
	for _, p := range pos {
		if (p.Left == -1 && !nl) || (p.Right == -1 && !nr) {
			continue
		}
		pos2 = append(pos2, p)
	}
	return pos2
}

// Inner drops the pairs without a partner.
func (pos JoinPos) Inner() JoinPos {
	return pos.ForKind(InnerJoin)
}

// Count returns the number of matched pairs, unmatched left rows and
// unmatched right rows.
func (pos JoinPos) Count() (matched, left, right int) {
	for _, p := range pos {
		switch {
		case p.Right == -1:
			left++
		case p.Left == -1:
			right++
		default:
			matched++
		}
	}
	return
}

// matchRows runs the nested loop.  Every match records (i, j), a left row
// without matches records (i, -1), and afterwards the right rows which never
// matched are appended as (-1, j) in ascending order.  With cross set no
// unmatched rows are recorded.
func matchRows(l, r *rewinder, on JoinOn, cross bool) (JoinPos, error) {
	match := on.matcher()
	var pos JoinPos
	var matched []bool
	for l.First(); !l.EOF(); l.Next() {
		found := false
		for r.First(); !r.EOF(); r.Next() {
			if !match(l.Row(), r.Row()) {
				continue
			}
			pos = append(pos, Pair{l.Pos(), r.Pos()})
			found = true
			for len(matched) <= r.Pos() {
				matched = append(matched, false)
			}
			matched[r.Pos()] = true
		}
		if !found && !cross {
			pos = append(pos, Pair{l.Pos(), -1})
		}
	}
	if err := l.m.err(); err != nil {
		return nil, err
	}
	if cross {
		return pos, r.m.err()
	}
	rrows, err := r.m.all()
	if err != nil {
		return nil, err
	}
	for j := range rrows {
		if j >= len(matched) || !matched[j] {
			pos = append(pos, Pair{-1, j})
		}
	}
	return pos, nil
}

// materialize turns pairs into rows of left ++ right.  Missing partners are
// padded with none where the kind of join allows it; anywhere else they are
// a ShapeError.
func materialize(pos JoinPos, kind JoinKind, ls, rs att.Schema, lrows, rrows []att.Col) (*Table, error) {
	nl, nr := kind.nulls()
	rows := make([]att.Col, len(pos))
	for k, p := range pos {
		row := make(att.Col, 0, len(ls)+len(rs))
		switch {
		case p.Left >= 0:
			row = append(row, lrows[p.Left]...)
		case nl:
			row = append(row, make(att.Col, len(ls))...)
		default:
			return nil, &att.ShapeError{What: "left partner in " + kind.String() + " join at pair", Expected: k, Found: -1}
		}
		switch {
		case p.Right >= 0:
			row = append(row, rrows[p.Right]...)
		case nr:
			row = append(row, make(att.Col, len(rs))...)
		default:
			return nil, &att.ShapeError{What: "right partner in " + kind.String() + " join at pair", Expected: k, Found: -1}
		}
		rows[k] = row
	}
	return &Table{schema: ls.Extend(rs), rows: rows}, nil
}

// join matches two cursors and materializes the result.
func join(left, right Iter, ls, rs att.Schema, kind JoinKind, on JoinOn) (*Table, error) {
	lm, rm := newMemory(left), newMemory(right)
	cross := kind == CrossJoin
	if cross {
		on = always
	}
	pos, err := matchRows(&rewinder{m: lm}, &rewinder{m: rm}, on, cross)
	if err != nil {
		return nil, err
	}
	t, err := materialize(pos.ForKind(kind), kind, ls, rs, lm.rows, rm.rows)
	if err != nil {
		return nil, err
	}
	log().Debug("materialized join",
		zap.Stringer("kind", kind),
		zap.Int("pairs", len(pos)),
		zap.Int("rows", len(t.rows)))
	return t, nil
}

// joinRows joins an eager relation with r2.
func joinRows(r1 Backing, r2 Relation, kind JoinKind, on JoinOn) Relation {
	if r := guard(r1, r2); r != nil {
		return r
	}
	op := "join"
	if kind == CrossJoin {
		op = "cross"
	} else if err := on.validate(r1.Schema(), r2.Schema()); err != nil {
		return fail(r1, op, err)
	}
	count(op, r1)
	t, err := join(r1.Iter(), r2.Iter(), r1.Schema(), r2.Schema(), kind, on)
	if err != nil {
		return fail(r1, op, err)
	}
	return t
}

// crossRows is the cross product of an eager relation with r2.
func crossRows(r1 Backing, r2 Relation) Relation {
	return joinRows(r1, r2, CrossJoin, always)
}

// crossIter enumerates the cross product lazily: for each left row in
// order, every right row in order.  Right rows are remembered on the first
// pass and replayed for the following left rows.
type crossIter struct {
	left  Iter
	right *memory
	lrow  att.Col
	has   bool
	j     int
	row   att.Col
	pos   int
}

func (it *crossIter) Pos() int { return it.pos }

func (it *crossIter) Next() bool {
	for {
		if !it.has {
			if !it.left.Next() {
				return false
			}
			it.lrow, it.has, it.j = it.left.Row(), true, 0
		}
		rrow, ok := it.right.at(it.j)
		if !ok {
			if it.j == 0 {
				// nothing on the right, so nothing to pair with
				return false
			}
			it.has = false
			continue
		}
		it.j++
		it.row = it.lrow.Concat(rrow)
		it.pos++
		return true
	}
}

func (it *crossIter) Row() att.Col { return it.row }

func (it *crossIter) Err() error {
	if err := it.left.Err(); err != nil {
		return err
	}
	return it.right.err()
}

// joinIter computes the join when the first row is pulled, then replays the
// result.
type joinIter struct {
	left, right Iter
	kind        JoinKind
	on          JoinOn
	ls, rs      att.Schema

	t   Iter
	err error
}

func (it *joinIter) Pos() int {
	if it.t == nil {
		return 0
	}
	return it.t.Pos()
}

func (it *joinIter) Next() bool {
	if it.err != nil {
		return false
	}
	if it.t == nil {
		t, err := join(it.left, it.right, it.ls, it.rs, it.kind, it.on)
		if err != nil {
			it.err = err
			return false
		}
		it.t = t.Iter()
	}
	return it.t.Next()
}

func (it *joinIter) Row() att.Col { return it.t.Row() }

func (it *joinIter) Err() error { return it.err }
