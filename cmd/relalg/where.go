package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonlawlor/relalg"
	"github.com/jonlawlor/relalg/att"
	"github.com/shopspring/decimal"
)

// operators in the order they are looked for, longest first.
var operators = []struct {
	tok string
	op  att.Op
}{
	{"==", att.EQ},
	{"!=", att.NE},
	{"<=", att.LE},
	{">=", att.GE},
	{"=", att.EQ},
	{"<", att.LT},
	{">", att.GT},
}

// parseWhere parses a comparison of a column with a literal, such as
// "City == 'Paris'" or "Qty>=300".  A column is named, or given by position
// as #0, #1 and so on.
func parseWhere(s string) (att.Predicate, error) {
	for _, o := range operators {
		i := strings.Index(s, o.tok)
		if i < 0 {
			continue
		}
		col, err := parseColRef(strings.TrimSpace(s[:i]))
		if err != nil {
			return nil, fmt.Errorf("where %q: %w", s, err)
		}
		lit := parseLiteral(strings.TrimSpace(s[i+len(o.tok):]))
		return att.NewCmp(col, o.op, lit), nil
	}
	return nil, fmt.Errorf("where %q: no comparison operator", s)
}

func parseColRef(s string) (att.ColRef, error) {
	if s == "" {
		return att.ColRef{}, fmt.Errorf("missing column")
	}
	if strings.HasPrefix(s, "#") {
		i, err := strconv.Atoi(s[1:])
		if err != nil || i < 0 {
			return att.ColRef{}, fmt.Errorf("bad column position %q", s)
		}
		return att.Pos(i), nil
	}
	return att.Name(s), nil
}

func parseColRefs(names []string) ([]att.ColRef, error) {
	refs := make([]att.ColRef, len(names))
	for i, n := range names {
		r, err := parseColRef(strings.TrimSpace(n))
		if err != nil {
			return nil, err
		}
		refs[i] = r
	}
	return refs, nil
}

// parseLiteral reads a quoted string, a boolean, an integer or a decimal,
// and takes anything else as an unquoted string.
func parseLiteral(s string) att.Scalar {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return att.Text(s[1 : len(s)-1])
	}
	switch s {
	case "true":
		return att.Bool(true)
	case "false":
		return att.Bool(false)
	case "null":
		return att.None()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return att.I64(i)
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return att.Dec(d)
	}
	return att.Text(s)
}

// parseOn reads the equated columns of a join, such as "SNO=SNO" or
// "#1=#0,PNO=PNO", and resolves them against both schemas.
func parseOn(s string, left, right att.Schema) (rel.JoinOn, error) {
	var l, r []int
	for _, pair := range strings.Split(s, ",") {
		parts := strings.Split(pair, "=")
		if len(parts) != 2 {
			return rel.JoinOn{}, fmt.Errorf("on %q: want left=right", pair)
		}
		lref, err := parseColRef(strings.TrimSpace(parts[0]))
		if err != nil {
			return rel.JoinOn{}, err
		}
		rref, err := parseColRef(strings.TrimSpace(parts[1]))
		if err != nil {
			return rel.JoinOn{}, err
		}
		i, err := left.Resolve(lref)
		if err != nil {
			return rel.JoinOn{}, err
		}
		j, err := right.Resolve(rref)
		if err != nil {
			return rel.JoinOn{}, err
		}
		l, r = append(l, i), append(r, j)
	}
	return rel.On(l, r), nil
}
