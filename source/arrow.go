package source

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/jonlawlor/relalg"
	"github.com/jonlawlor/relalg/att"
	"github.com/pkg/errors"
)

// kindKey is the field metadata key holding the kind of a column whose
// arrow type does not determine it.
const kindKey = "relalg.kind"

// ArrowSchema converts a schema into an arrow schema.  Decimal columns are
// stored as strings and tagged with their kind; nested relations have no
// arrow form.
func ArrowSchema(s att.Schema) (*arrow.Schema, error) {
	fields := make([]arrow.Field, len(s))
	for j, f := range s {
		var dt arrow.DataType
		switch f.Kind {
		case att.TypeBool:
			dt = arrow.FixedWidthTypes.Boolean
		case att.TypeInt32:
			dt = arrow.PrimitiveTypes.Int32
		case att.TypeInt64:
			dt = arrow.PrimitiveTypes.Int64
		case att.TypeUint32:
			dt = arrow.PrimitiveTypes.Uint32
		case att.TypeUint64:
			dt = arrow.PrimitiveTypes.Uint64
		case att.TypeDateTime:
			dt = arrow.FixedWidthTypes.Timestamp_ns
		case att.TypeDecimal, att.TypeText, att.TypeNone:
			dt = arrow.BinaryTypes.String
		default:
			return nil, &att.TypeError{Op: "arrow", Left: f.Kind, Right: f.Kind}
		}
		fields[j] = arrow.Field{
			Name:     f.Name,
			Type:     dt,
			Nullable: true,
			Metadata: arrow.NewMetadata([]string{kindKey}, []string{f.Kind.String()}),
		}
	}
	return arrow.NewSchema(fields, nil), nil
}

// ToArrow copies a relation into an arrow record.  Lazy relations are
// consumed.  The caller releases the record.
func ToArrow(mem memory.Allocator, r rel.Relation) (arrow.Record, error) {
	schema, err := ArrowSchema(r.Schema())
	if err != nil {
		return nil, err
	}
	rows, err := rel.Rows(r)
	if err != nil {
		return nil, err
	}
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	for _, row := range rows {
		for j, v := range row {
			appendArrowValue(b.Field(j), v)
		}
	}
	return b.NewRecord(), nil
}

func appendArrowValue(b array.Builder, v att.Scalar) {
	if v.IsNone() {
		b.AppendNull()
		return
	}
	switch b := b.(type) {
	case *array.BooleanBuilder:
		x, _ := v.AsBool()
		b.Append(x)
	case *array.Int32Builder:
		x, _ := v.AsInt64()
		b.Append(int32(x))
	case *array.Int64Builder:
		x, _ := v.AsInt64()
		b.Append(x)
	case *array.Uint32Builder:
		x, _ := v.AsUint64()
		b.Append(uint32(x))
	case *array.Uint64Builder:
		x, _ := v.AsUint64()
		b.Append(x)
	case *array.TimestampBuilder:
		x, _ := v.AsTime()
		b.Append(arrow.Timestamp(x.UnixNano()))
	case *array.StringBuilder:
		b.Append(v.String())
	}
}

// SchemaOf converts an arrow schema into a schema.
func SchemaOf(schema *arrow.Schema) (att.Schema, error) {
	s := make(att.Schema, schema.NumFields())
	for j, f := range schema.Fields() {
		k, err := arrowKind(f)
		if err != nil {
			return nil, errors.Wrapf(err, "column %s", f.Name)
		}
		s[j] = att.Field{Name: f.Name, Kind: k}
	}
	return s, nil
}

// FromArrow copies an arrow record into a table.
func FromArrow(rec arrow.Record) (*rel.Table, error) {
	s, err := SchemaOf(rec.Schema())
	if err != nil {
		return nil, err
	}
	b := NewBuilder(s)
	n := int(rec.NumRows())
	for i := 0; i < n; i++ {
		row := make(att.Col, len(s))
		for j := range s {
			row[j] = arrowValue(rec.Column(j), i)
		}
		if err := b.Add(row); err != nil {
			return nil, err
		}
	}
	return b.Table(), nil
}

func arrowKind(f arrow.Field) (att.DataType, error) {
	if i := f.Metadata.FindKey(kindKey); i >= 0 {
		if k, ok := att.ParseDataType(f.Metadata.Values()[i]); ok {
			return k, nil
		}
	}
	switch f.Type.ID() {
	case arrow.BOOL:
		return att.TypeBool, nil
	case arrow.INT8, arrow.INT16, arrow.INT32:
		return att.TypeInt32, nil
	case arrow.INT64:
		return att.TypeInt64, nil
	case arrow.UINT8, arrow.UINT16, arrow.UINT32:
		return att.TypeUint32, nil
	case arrow.UINT64:
		return att.TypeUint64, nil
	case arrow.FLOAT32, arrow.FLOAT64:
		return att.TypeDecimal, nil
	case arrow.TIMESTAMP:
		return att.TypeDateTime, nil
	case arrow.STRING, arrow.LARGE_STRING:
		return att.TypeText, nil
	}
	return att.TypeNone, &att.TypeError{GoType: "arrow " + f.Type.String()}
}

// arrowValue reads row i of a column.  Strings are left as text for the
// builder to cast to the column kind.
func arrowValue(col arrow.Array, i int) att.Scalar {
	if col.IsNull(i) {
		return att.None()
	}
	switch c := col.(type) {
	case *array.Boolean:
		return att.Bool(c.Value(i))
	case *array.Int8:
		return att.I32(int32(c.Value(i)))
	case *array.Int16:
		return att.I32(int32(c.Value(i)))
	case *array.Int32:
		return att.I32(c.Value(i))
	case *array.Int64:
		return att.I64(c.Value(i))
	case *array.Uint8:
		return att.U32(uint32(c.Value(i)))
	case *array.Uint16:
		return att.U32(uint32(c.Value(i)))
	case *array.Uint32:
		return att.U32(c.Value(i))
	case *array.Uint64:
		return att.U64(c.Value(i))
	case *array.Float32:
		a, _ := att.FromNative(c.Value(i))
		return a
	case *array.Float64:
		a, _ := att.FromNative(c.Value(i))
		return a
	case *array.Timestamp:
		unit := c.DataType().(*arrow.TimestampType).Unit
		return att.Time(c.Value(i).ToTime(unit).UTC())
	case *array.String:
		return att.Text(c.Value(i))
	case *array.LargeString:
		return att.Text(c.Value(i))
	}
	return att.None()
}

// WriteArrow writes the relation to w in the arrow IPC file format, as a
// single record batch.
func WriteArrow(w io.Writer, r rel.Relation) error {
	mem := memory.NewGoAllocator()
	rec, err := ToArrow(mem, r)
	if err != nil {
		return err
	}
	defer rec.Release()

	fw, err := ipc.NewFileWriter(w, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err != nil {
		return errors.Wrap(err, "create arrow writer")
	}
	if err := fw.Write(rec); err != nil {
		return errors.Wrap(err, "write record batch")
	}
	return errors.Wrap(fw.Close(), "close arrow writer")
}

// ReadArrow reads every record batch of an arrow IPC file into one table.
func ReadArrow(r ipc.ReadAtSeeker) (*rel.Table, error) {
	fr, err := ipc.NewFileReader(r, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, errors.Wrap(err, "create arrow reader")
	}
	defer fr.Close()

	s, err := SchemaOf(fr.Schema())
	if err != nil {
		return nil, err
	}
	var rows []att.Col
	for i := 0; i < fr.NumRecords(); i++ {
		rec, err := fr.Record(i)
		if err != nil {
			return nil, errors.Wrapf(err, "record batch %d", i)
		}
		t, err := FromArrow(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "record batch %d", i)
		}
		for j := 0; j < t.Card(); j++ {
			rows = append(rows, t.Row(j))
		}
	}
	return rel.NewTable(s, rows...), nil
}
