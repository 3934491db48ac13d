// strings deals with string representation of relations

package rel

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jonlawlor/relalg/att"
)

// stringTabTable makes a boxed table out of an eager relation
func stringTabTable(r Backing) string {
	// use a buffer to write to and later turn into a string
	s := new(bytes.Buffer)

	w := new(tabwriter.Writer)
	// \xff is used as an escape delim; see the tabwriter docs
	w.Init(s, 0, 1, 1, ' ', tabwriter.StripEscape)

	// heading
	for _, name := range Heading(r) {
		fmt.Fprintf(w, "| \xff%s\xff\t", name)
	}
	fmt.Fprintf(w, "|\n")

	// write the body
	it := r.Iter()
	for it.Next() {
		for _, v := range it.Row() {
			fmt.Fprintf(w, "| \xff%s\xff\t", v)
		}
		fmt.Fprintf(w, "|\n")
	}
	w.Flush()

	lines := strings.Split(strings.TrimSuffix(s.String(), "\n"), "\n")

	// the separator follows the column boundaries of the heading
	sep := []rune(lines[0])
	for i, c := range sep {
		if c == '|' {
			sep[i] = '+'
		} else {
			sep[i] = '-'
		}
	}
	out := make([]string, 0, len(lines)+3)
	out = append(out, string(sep), lines[0], string(sep))
	out = append(out, lines[1:]...)
	out = append(out, string(sep))
	return strings.Join(out, "\n")
}

// goStringTabTable makes a gostring out of the rows of a cursor, following a
// constructor prefix.  Vector rows are written as bare values.
func goStringTabTable(prefix string, it Iter, vector bool) string {
	s := bytes.NewBufferString(prefix + "\n")

	w := new(tabwriter.Writer)
	w.Init(s, 1, 1, 1, ' ', tabwriter.StripEscape)
	for it.Next() {
		row := it.Row()
		if vector {
			fmt.Fprintf(w, "\t\xff%#v\xff,\n", row[0])
			continue
		}
		fmt.Fprintf(w, "\tatt.Col{")
		for j, v := range row {
			if j > 0 {
				fmt.Fprintf(w, "\t")
			}
			fmt.Fprintf(w, "\xff%#v\xff,", v)
		}
		fmt.Fprintf(w, "},\n")
	}
	w.Flush()
	s.WriteString(")")
	return s.String()
}

func kindGoString(k att.DataType) string {
	return "att.Type" + k.String()
}

func fieldGoString(f att.Field) string {
	return fmt.Sprintf("att.Field{Name: %q, Kind: %s}", f.Name, kindGoString(f.Kind))
}

func schemaGoString(s att.Schema) string {
	fs := make([]string, len(s))
	for i, f := range s {
		fs[i] = fieldGoString(f)
	}
	return "att.NewSchema(" + strings.Join(fs, ", ") + ")"
}

// headingString returns the names of the fields, separated by commas.
func headingString(s att.Schema) string {
	return strings.Join(s.Names(), ", ")
}

// exprString is the text of a relation when it appears inside an
// expression.  Eager relations are written by their heading, so that
// showing an expression never reads or consumes rows.
func exprString(r Relation) string {
	switch r1 := r.(type) {
	case *Seq:
		return r1.expr
	case *Query:
		return r1.String()
	case *errorRel:
		return r1.String()
	}
	return "Relation(" + headingString(r.Schema()) + ")"
}
