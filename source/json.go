package source

import (
	"bytes"
	"io"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/jonlawlor/relalg"
	"github.com/jonlawlor/relalg/att"
	"github.com/pkg/errors"
)

// DecodeJSON reads a JSON array of objects into a table, with a column for
// every key.  Integral numbers are Int64 and the rest Decimal; arrays of
// objects become nested relations.
func DecodeJSON(r io.Reader) (*rel.Table, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	var recs []map[string]interface{}
	if err := dec.Decode(&recs); err != nil {
		return nil, errors.Wrap(err, "decode json")
	}
	return FromRecords(recs)
}

// jsonScalar converts the numbers left by a decoder using UseNumber.
func jsonScalar(v interface{}) (att.Scalar, bool, error) {
	n, ok := v.(gojson.Number)
	if !ok {
		return att.None(), false, nil
	}
	if i, err := n.Int64(); err == nil {
		return att.I64(i), true, nil
	}
	a, err := att.DecString(string(n))
	return a, true, err
}

// EncodeJSON writes the relation as a JSON array of objects, with keys in
// column order.  Lazy relations are consumed.
func EncodeJSON(w io.Writer, r rel.Relation) error {
	rows, err := rel.Rows(r)
	if err != nil {
		return err
	}
	out := make([]object, len(rows))
	for i, row := range rows {
		out[i] = object{names: r.Schema().Names(), vals: row}
	}
	return gojson.NewEncoder(w).Encode(out)
}

// object is a row which marshals with its keys in column order.
type object struct {
	names []string
	vals  att.Col
}

func (o object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for j, n := range o.names {
		if j > 0 {
			buf.WriteByte(',')
		}
		k, err := gojson.Marshal(n)
		if err != nil {
			return nil, err
		}
		v, err := gojson.Marshal(jsonValue(o.vals[j]))
		if err != nil {
			return nil, errors.Wrapf(err, "column %s", n)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func jsonValue(a att.Scalar) interface{} {
	switch a.Kind() {
	case att.TypeDecimal:
		d, _ := a.AsDecimal()
		return gojson.Number(d.String())
	case att.TypeDateTime:
		t, _ := a.AsTime()
		return t.Format(time.RFC3339Nano)
	case att.TypeRel:
		t, _ := a.AsTuples()
		names := t.Schema.Names()
		out := make([]object, len(t.Rows))
		for i, row := range t.Rows {
			out[i] = object{names: names, vals: row}
		}
		return out
	}
	return a.Native()
}
