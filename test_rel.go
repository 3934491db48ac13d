package rel

import (
	"github.com/jonlawlor/relalg/att"
	"github.com/shopspring/decimal"
)

// data for a Suppliers, Parts & orders database, using the example provided
// by C. J. Date in his book "Database in Depth" in Figure 1-3.

// Suppliers relation, with candidate keys {SNO}, {SName}
func Suppliers() *Table {
	return NewTable(att.NewSchema(
		att.Field{Name: "SNO", Kind: att.TypeInt64},
		att.Field{Name: "SName", Kind: att.TypeText},
		att.Field{Name: "Status", Kind: att.TypeInt64},
		att.Field{Name: "City", Kind: att.TypeText},
	),
		att.Col{att.I64(1), att.Text("Smith"), att.I64(20), att.Text("London")},
		att.Col{att.I64(2), att.Text("Jones"), att.I64(10), att.Text("Paris")},
		att.Col{att.I64(3), att.Text("Blake"), att.I64(30), att.Text("Paris")},
		att.Col{att.I64(4), att.Text("Clark"), att.I64(20), att.Text("London")},
		att.Col{att.I64(5), att.Text("Adams"), att.I64(30), att.Text("Athens")},
	)
}

// Parts relation, with candidate keys {PNO}
func Parts() *Table {
	w := func(f float64) att.Scalar { return att.Dec(decimal.NewFromFloat(f)) }
	return NewTable(att.NewSchema(
		att.Field{Name: "PNO", Kind: att.TypeInt64},
		att.Field{Name: "PName", Kind: att.TypeText},
		att.Field{Name: "Color", Kind: att.TypeText},
		att.Field{Name: "Weight", Kind: att.TypeDecimal},
		att.Field{Name: "City", Kind: att.TypeText},
	),
		att.Col{att.I64(1), att.Text("Nut"), att.Text("Red"), w(12.0), att.Text("London")},
		att.Col{att.I64(2), att.Text("Bolt"), att.Text("Green"), w(17.0), att.Text("Paris")},
		att.Col{att.I64(3), att.Text("Screw"), att.Text("Blue"), w(17.0), att.Text("Oslo")},
		att.Col{att.I64(4), att.Text("Screw"), att.Text("Red"), w(14.0), att.Text("London")},
		att.Col{att.I64(5), att.Text("Cam"), att.Text("Blue"), w(12.0), att.Text("Paris")},
		att.Col{att.I64(6), att.Text("Cog"), att.Text("Red"), w(19.0), att.Text("London")},
	)
}

// Orders relation, with candidate keys {PNO, SNO}
func Orders() *Table {
	o := func(pno, sno, qty int64) att.Col { return att.Col{att.I64(pno), att.I64(sno), att.I64(qty)} }
	return NewTable(att.NewSchema(
		att.Field{Name: "PNO", Kind: att.TypeInt64},
		att.Field{Name: "SNO", Kind: att.TypeInt64},
		att.Field{Name: "Qty", Kind: att.TypeInt64},
	),
		o(1, 1, 300),
		o(1, 2, 200),
		o(1, 3, 400),
		o(1, 4, 200),
		o(1, 5, 100),
		o(1, 6, 100),
		o(2, 1, 300),
		o(2, 2, 400),
		o(3, 2, 200),
		o(4, 2, 200),
		o(4, 4, 300),
		o(4, 5, 400),
	)
}

// Sample returns one of the sample relations by name: "suppliers", "parts"
// or "orders".
func Sample(name string) (*Table, bool) {
	switch name {
	case "suppliers":
		return Suppliers(), true
	case "parts":
		return Parts(), true
	case "orders":
		return Orders(), true
	}
	return nil, false
}
