package source

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jonlawlor/relalg"
	"github.com/jonlawlor/relalg/att"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Querier is satisfied by *pgx.Conn, *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// QueryPgx runs a query on a postgres connection and reads the whole result
// into a table.
func QueryPgx(ctx context.Context, q Querier, sql string, args ...any) (*rel.Table, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query")
	}
	defer rows.Close()
	return FromPgx(rows)
}

// FromPgx reads the remaining rows of a pgx result into a table, taking the
// column kinds from the type OIDs of the fields.
func FromPgx(rows pgx.Rows) (*rel.Table, error) {
	fds := rows.FieldDescriptions()
	names := make([]string, len(fds))
	kinds := make([]att.DataType, len(fds))
	for j, fd := range fds {
		names[j] = fd.Name
		kinds[j] = pgKind(fd.DataTypeOID)
	}

	var raw [][]interface{}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, errors.Wrapf(err, "row %d values", len(raw))
		}
		raw = append(raw, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows")
	}
	return collect(names, kinds, raw)
}

func pgKind(oid uint32) att.DataType {
	switch oid {
	case pgtype.BoolOID:
		return att.TypeBool
	case pgtype.Int2OID, pgtype.Int4OID:
		return att.TypeInt32
	case pgtype.Int8OID:
		return att.TypeInt64
	case pgtype.NumericOID, pgtype.Float4OID, pgtype.Float8OID:
		return att.TypeDecimal
	case pgtype.DateOID, pgtype.TimestampOID, pgtype.TimestamptzOID:
		return att.TypeDateTime
	case pgtype.TextOID, pgtype.VarcharOID, pgtype.BPCharOID, pgtype.NameOID, pgtype.UUIDOID:
		return att.TypeText
	}
	return att.TypeNone
}

// pgScalar converts the pgtype values which Values returns for numerics and
// uuids.
func pgScalar(v interface{}) (att.Scalar, bool, error) {
	switch x := v.(type) {
	case pgtype.Numeric:
		if !x.Valid {
			return att.None(), true, nil
		}
		if x.NaN || x.InfinityModifier != pgtype.Finite {
			return att.None(), true, &att.TypeError{Right: att.TypeDecimal, GoType: "non-finite numeric"}
		}
		if x.Int == nil {
			return att.Dec(decimal.Zero), true, nil
		}
		return att.Dec(decimal.NewFromBigInt(x.Int, x.Exp)), true, nil
	case [16]byte:
		return att.Text(fmt.Sprintf("%x-%x-%x-%x-%x", x[0:4], x[4:6], x[6:8], x[8:10], x[10:16])), true, nil
	}
	return att.None(), false, nil
}
