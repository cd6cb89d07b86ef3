package gomap

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/objmap/ir"
	"github.com/signadot/objmap/schema"
)

const dynamicTypes = `
types:
- id: Person
  naming: snake
  fields:
  - {name: FullName, type: string}
  - {name: age, type: int, default: 18}
  - {name: born, type: any, optional: true, transform: {name: date, arg: date}}
  - {name: tags, path: meta.tags, type: "[]string"}
  - {name: home, type: Place}
  - {name: visited, type: "[]Place", optional: true}
- id: Place
  fields:
  - {name: city, type: string}
`

func TestDynamicRecords(t *testing.T) {
	descs, err := schema.Load([]byte(dynamicTypes))
	if err != nil {
		t.Fatal(err)
	}
	reg := schema.NewRegistry()
	if err := reg.Register(descs...); err != nil {
		t.Fatal(err)
	}
	m := NewMapper(reg)
	in := node(t, `{
		"full_name": "Ana Lima",
		"born": "1990-04-01",
		"meta": {"tags": ["a", 2]},
		"home": {"city": "Porto"},
		"visited": [{"city": "Lyon"}, {"city": "Nice"}]
	}`)
	res, err := DecodeAs[schema.Record](m, "Person", in)
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK() {
		t.Fatalf("errors: %v", res.Err())
	}
	rec := res.Value
	if v, _ := rec.Get("FullName"); v != "Ana Lima" {
		t.Errorf("FullName = %v", v)
	}
	if v, _ := rec.Get("age"); v != int64(18) {
		t.Errorf("age = %v (%T)", v, v)
	}
	born, _ := rec.Get("born")
	if !born.(time.Time).Equal(time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("born = %v", born)
	}
	tags, _ := rec.Get("tags")
	if diff := cmp.Diff([]any{"a", "2"}, tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	home, _ := rec.Get("home")
	if city, _ := home.(*schema.Record).Get("city"); city != "Porto" {
		t.Errorf("home.city = %v", city)
	}

	enc, err := m.Encode("Person", rec)
	if err != nil {
		t.Fatal(err)
	}
	if !enc.OK() {
		t.Fatalf("encode errors: %v", enc.Err())
	}
	want := node(t, `{
		"full_name": "Ana Lima",
		"age": 18,
		"born": "1990-04-01",
		"meta": {"tags": ["a", "2"]},
		"home": {"city": "Porto"},
		"visited": [{"city": "Lyon"}, {"city": "Nice"}]
	}`)
	if !ir.Equal(want, enc.Value) {
		t.Errorf("encoded %s, want %s", ir.Format(enc.Value), ir.Format(want))
	}
}

func TestDynamicRecordWrongNested(t *testing.T) {
	descs, err := schema.Load([]byte(dynamicTypes))
	if err != nil {
		t.Fatal(err)
	}
	reg := schema.NewRegistry()
	if err := reg.Register(descs...); err != nil {
		t.Fatal(err)
	}
	rec := schema.NewRecord("Person")
	rec.Set("FullName", "x")
	rec.Set("home", "not a record")
	res, err := NewMapper(reg).Encode("Person", rec)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	Walk(res.Errors, func(path string, e *FieldError) {
		got = append(got, path+" "+e.Kind.String())
	})
	if diff := cmp.Diff([]string{"home CoercionFailed"}, got); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if h := ir.Get(res.Value, "home"); h == nil || h.Type != ir.NullType {
		t.Errorf("home = %s", ir.Format(h))
	}
}

func TestDynamicRecordFractionalInt(t *testing.T) {
	descs, err := schema.Load([]byte(dynamicTypes))
	if err != nil {
		t.Fatal(err)
	}
	reg := schema.NewRegistry()
	if err := reg.Register(descs...); err != nil {
		t.Fatal(err)
	}
	home := schema.NewRecord("Place")
	home.Set("city", "Porto")
	rec := schema.NewRecord("Person")
	rec.Set("FullName", "x")
	rec.Set("age", 1.5)
	rec.Set("home", home)
	res, err := NewMapper(reg).Encode("Person", rec)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	Walk(res.Errors, func(path string, e *FieldError) {
		got = append(got, path+" "+e.Kind.String())
	})
	if diff := cmp.Diff([]string{"age CoercionFailed"}, got); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
	if a := ir.Get(res.Value, "age"); a == nil || a.Type != ir.NullType {
		t.Errorf("age = %s", ir.Format(a))
	}
}
