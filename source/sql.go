package source

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jonlawlor/relalg"
	"github.com/jonlawlor/relalg/att"
	"github.com/pkg/errors"
)

// Query runs a query through database/sql and reads the whole result into a
// table.
func Query(ctx context.Context, db *sql.DB, query string, args ...interface{}) (*rel.Table, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query")
	}
	defer rows.Close() // Ignore close error
	return FromSQL(rows)
}

// FromSQL reads the remaining rows of a result set into a table.  Column
// kinds come from the database type names when the driver reports them,
// and otherwise from the values.
func FromSQL(rows *sql.Rows) (*rel.Table, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "columns")
	}
	kinds := make([]att.DataType, len(names))
	if types, err := rows.ColumnTypes(); err == nil {
		for j, ct := range types {
			kinds[j] = sqlKind(ct.DatabaseTypeName())
		}
	}

	var raw [][]interface{}
	for rows.Next() {
		vals := make([]interface{}, len(names))
		ptrs := make([]interface{}, len(names))
		for j := range vals {
			ptrs[j] = &vals[j]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.Wrapf(err, "scan row %d", len(raw))
		}
		for j, v := range vals {
			vals[j] = sqlValue(v, kinds[j])
		}
		raw = append(raw, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows")
	}
	return collect(names, kinds, raw)
}

// sqlKind maps a database type name onto a kind.  Unknown names give
// TypeNone so the kind is taken from the values.
func sqlKind(name string) att.DataType {
	name = strings.ToUpper(name)
	switch name {
	case "BOOL", "BOOLEAN", "BIT":
		return att.TypeBool
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INT2", "INT4", "INTEGER", "YEAR":
		return att.TypeInt32
	case "BIGINT", "INT8":
		return att.TypeInt64
	case "UNSIGNED TINYINT", "UNSIGNED SMALLINT", "UNSIGNED MEDIUMINT", "UNSIGNED INT":
		return att.TypeUint32
	case "UNSIGNED BIGINT":
		return att.TypeUint64
	case "DECIMAL", "NUMERIC", "FLOAT", "FLOAT4", "FLOAT8", "DOUBLE", "REAL":
		return att.TypeDecimal
	case "DATE", "DATETIME", "TIMESTAMP", "TIMESTAMPTZ":
		return att.TypeDateTime
	case "CHAR", "VARCHAR", "TEXT", "TINYTEXT", "MEDIUMTEXT", "LONGTEXT", "BPCHAR", "NAME", "JSON", "ENUM":
		return att.TypeText
	}
	return att.TypeNone
}

// sqlLayouts are the text forms of dates and times sent by drivers which
// do not parse them.
var sqlLayouts = []string{"2006-01-02 15:04:05.999999999", "2006-01-02"}

// sqlValue normalizes what a driver scanned into an interface{}.
func sqlValue(v interface{}, kind att.DataType) interface{} {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	s := string(b)
	if kind == att.TypeDateTime {
		for _, layout := range sqlLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
		}
	}
	return s
}
