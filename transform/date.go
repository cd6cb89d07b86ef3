package transform

import (
	"fmt"
	"math"
	"time"

	"github.com/signadot/objmap/coerce"
	"github.com/signadot/objmap/ir"
)

var layouts = map[string]string{
	"":         time.RFC3339Nano,
	"rfc3339":  time.RFC3339Nano,
	"date":     time.DateOnly,
	"datetime": time.DateTime,
	"time":     time.TimeOnly,
}

// DateTransformer converts between formatted strings and time.Time.
type DateTransformer struct {
	Layout string
}

// Date returns a transformer for strings in the given time layout. The
// layout may also be one of the presets "rfc3339" (the default), "date",
// "datetime" and "time".
func Date(layout string) *DateTransformer {
	if l, ok := layouts[layout]; ok {
		layout = l
	}
	return &DateTransformer{Layout: layout}
}

func (d *DateTransformer) FromValue(y *ir.Node) (any, error) {
	if y.IsNull() {
		return nil, coerce.ErrNull
	}
	if y.Type != ir.StringType {
		return nil, &coerce.KindMismatchError{Expected: coerce.String, Actual: y.Type}
	}
	t, err := time.Parse(d.Layout, y.String)
	if err != nil {
		return nil, &coerce.CoercionError{
			Target: coerce.String,
			Reason: fmt.Sprintf("%q is not a date in layout %q", y.String, d.Layout),
			Err:    err,
		}
	}
	return t, nil
}

func (d *DateTransformer) ToValue(v any) (*ir.Node, error) {
	t, err := asTime(v)
	if err != nil || t == nil {
		return ir.Null(), err
	}
	return ir.FromString(t.Format(d.Layout)), nil
}

func (d *DateTransformer) NodeType() ir.Type {
	return ir.StringType
}

func (d *DateTransformer) SchemaFormat() string {
	switch d.Layout {
	case time.RFC3339, time.RFC3339Nano:
		return "date-time"
	case time.DateOnly:
		return "date"
	case time.TimeOnly:
		return "time"
	}
	return ""
}

// UnixTransformer converts between seconds since the Unix epoch and
// time.Time values in UTC.
type UnixTransformer struct{}

func Unix() UnixTransformer {
	return UnixTransformer{}
}

func (UnixTransformer) FromValue(y *ir.Node) (any, error) {
	f, err := coerce.ToFloat64(y)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < -(1<<63) || f >= 1<<63 {
		return nil, &coerce.CoercionError{
			Target: coerce.Float,
			Reason: fmt.Sprintf("%s seconds is out of range", ir.FormatNumber(f)),
		}
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC(), nil
}

func (UnixTransformer) ToValue(v any) (*ir.Node, error) {
	t, err := asTime(v)
	if err != nil || t == nil {
		return ir.Null(), err
	}
	if t.Nanosecond() == 0 {
		return ir.FromInt(t.Unix()), nil
	}
	return ir.FromFloat(float64(t.Unix()) + float64(t.Nanosecond())/1e9), nil
}

func (UnixTransformer) NodeType() ir.Type {
	return ir.NumberType
}

func asTime(v any) (*time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return &x, nil
	case *time.Time:
		return x, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("expected time.Time, got %T", v)
}
