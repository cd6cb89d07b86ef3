package transform

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/objmap/coerce"
	"github.com/signadot/objmap/ir"
)

func TestDate(t *testing.T) {
	d := Date("date")
	v, err := d.FromValue(ir.FromString("2024-02-29"))
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	if !v.(time.Time).Equal(want) {
		t.Errorf("got %v, want %v", v, want)
	}
	y, err := d.ToValue(want)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(y, ir.FromString("2024-02-29")) {
		t.Errorf("ToValue = %s", ir.Format(y))
	}
	if d.SchemaFormat() != "date" {
		t.Errorf("SchemaFormat() = %q", d.SchemaFormat())
	}
}

func TestDateErrors(t *testing.T) {
	d := Date("")
	_, err := d.FromValue(ir.FromInt(3))
	var kerr *coerce.KindMismatchError
	if !errors.As(err, &kerr) {
		t.Errorf("number: error = %v, want KindMismatchError", err)
	}
	_, err = d.FromValue(ir.FromString("yesterday"))
	var cerr *coerce.CoercionError
	if !errors.As(err, &cerr) {
		t.Errorf("bad date: error = %v, want CoercionError", err)
	}
	if _, err := d.ToValue("2024"); err == nil {
		t.Error("ToValue(string): expected error")
	}
}

func TestUnix(t *testing.T) {
	u := Unix()
	v, err := u.FromValue(ir.FromInt(86400))
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC)
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("FromValue mismatch (-want +got):\n%s", diff)
	}
	y, err := u.ToValue(want)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(y, ir.FromInt(86400)) {
		t.Errorf("ToValue = %s", ir.Format(y))
	}
	y, err = u.ToValue(want.Add(500 * time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(y, ir.FromFloat(86400.5)) {
		t.Errorf("ToValue = %s", ir.Format(y))
	}
}

func TestUnixOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		in   *ir.Node
	}{
		{"above int64", ir.FromFloat(1e20)},
		{"below int64", ir.FromFloat(-1e20)},
		{"two to the 63", ir.FromFloat(1 << 63)},
		{"overflowing string", ir.FromString("9.3e18")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Unix().FromValue(tt.in)
			var cerr *coerce.CoercionError
			if !errors.As(err, &cerr) {
				t.Fatalf("FromValue(%s) = %v, %v, want CoercionError", ir.Format(tt.in), v, err)
			}
		})
	}
}

func TestExpr(t *testing.T) {
	cents, err := Expr("value * 100", "value / 100")
	if err != nil {
		t.Fatal(err)
	}
	v, err := cents.FromValue(ir.FromFloat(1.5))
	if err != nil {
		t.Fatal(err)
	}
	if v != 150.0 {
		t.Errorf("FromValue = %v (%T)", v, v)
	}
	y, err := cents.ToValue(150.0)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(y, ir.FromFloat(1.5)) {
		t.Errorf("ToValue = %s", ir.Format(y))
	}
}

func TestExprPassThrough(t *testing.T) {
	up, err := Expr("upper(value)", "")
	if err != nil {
		t.Fatal(err)
	}
	v, err := up.FromValue(ir.FromString("ana"))
	if err != nil || v != "ANA" {
		t.Errorf("FromValue = %v, %v", v, err)
	}
	y, err := up.ToValue("ANA")
	if err != nil || !ir.Equal(y, ir.FromString("ANA")) {
		t.Errorf("ToValue = %s, %v", ir.Format(y), err)
	}
}

func TestExprCompileError(t *testing.T) {
	if _, err := Expr("value +", ""); err == nil {
		t.Error("expected compile error")
	}
	if _, err := Expr("", "missing"); err == nil {
		t.Error("expected unknown variable error")
	}
}

func TestLookup(t *testing.T) {
	tr, err := Lookup(Spec{Name: "date", Arg: "datetime"})
	if err != nil {
		t.Fatal(err)
	}
	if d, ok := tr.(*DateTransformer); !ok || d.Layout != time.DateTime {
		t.Errorf("Lookup(date:datetime) = %#v", tr)
	}
	if _, err := Lookup(Spec{Name: "nope"}); err == nil {
		t.Error("expected unknown transformer error")
	}
	Register("upper", func(s Spec) (Transformer, error) {
		return Expr("upper(value)", "lower(value)")
	})
	if _, err := Lookup(Spec{Name: "upper"}); err != nil {
		t.Error(err)
	}
}
