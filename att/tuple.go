package att

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Col is an ordered sequence of scalars.  Whether it is a row or a column is
// decided by the relation it came from.
type Col []Scalar

// Equal reports element-wise structural equality.
func (c Col) Equal(c2 Col) bool {
	if len(c) != len(c2) {
		return false
	}
	for i := range c {
		if !c[i].Equal(c2[i]) {
			return false
		}
	}
	return true
}

// Order compares two cols lexicographically in the structural order.
func (c Col) Order(c2 Col) int {
	for i := 0; i < len(c) && i < len(c2); i++ {
		if o := c[i].Order(c2[i]); o != 0 {
			return o
		}
	}
	return cmpInt(int64(len(c)), int64(len(c2)))
}

// Less reports whether c sorts before c2.
func (c Col) Less(c2 Col) bool {
	return c.Order(c2) < 0
}

// Hash returns a hash of the col consistent with Equal.
func (c Col) Hash() uint64 {
	h := xxhash.New()
	for _, v := range c {
		v.Hash(h)
	}
	return h.Sum64()
}

// Clone returns a copy of the col.
func (c Col) Clone() Col {
	if c == nil {
		return nil
	}
	c2 := make(Col, len(c))
	copy(c2, c)
	return c2
}

// Concat returns a new col holding c followed by c2.
func (c Col) Concat(c2 Col) Col {
	c3 := make(Col, 0, len(c)+len(c2))
	c3 = append(c3, c...)
	return append(c3, c2...)
}

func (c Col) String() string {
	s := make([]string, len(c))
	for i, v := range c {
		s[i] = v.String()
	}
	return "[" + strings.Join(s, ", ") + "]"
}

// Tuples is a materialized relation: a schema and its rows.  It is the
// payload of nested relation scalars.
type Tuples struct {
	Schema Schema
	Rows   []Col
}

func (t *Tuples) order(t2 *Tuples) int {
	switch {
	case t == nil && t2 == nil:
		return 0
	case t == nil:
		return -1
	case t2 == nil:
		return 1
	}
	if o := t.Schema.order(t2.Schema); o != 0 {
		return o
	}
	for i := 0; i < len(t.Rows) && i < len(t2.Rows); i++ {
		if o := t.Rows[i].Order(t2.Rows[i]); o != 0 {
			return o
		}
	}
	return cmpInt(int64(len(t.Rows)), int64(len(t2.Rows)))
}

func (t *Tuples) hash(h *xxhash.Digest) {
	if t == nil {
		return
	}
	for _, f := range t.Schema {
		writeString(h, f.Name)
		h.Write([]byte{byte(f.Kind)})
	}
	for _, row := range t.Rows {
		for _, v := range row {
			v.Hash(h)
		}
	}
}

func (t *Tuples) String() string {
	if t == nil {
		return "{}"
	}
	rows := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r.String()
	}
	return "{" + t.Schema.String() + ": " + strings.Join(rows, ", ") + "}"
}
