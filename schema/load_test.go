package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/objmap/coerce"
)

const typesDoc = `
types:
- id: User
  doc: a person
  root: response.user
  naming: snake
  fields:
  - {name: FullName, type: string}
  - {name: age, type: int, default: 18}
  - {name: born, type: string, optional: true, transform: {name: date, arg: date}}
  - {name: tags, path: meta.tags, type: "[]string", default: [a, b]}
  - {name: home, type: Address}
- id: Address
  fields:
  - {name: city, type: string}
  - {name: zip, path: '"postal code"', type: string, optional: true}
`

func TestLoad(t *testing.T) {
	descs, err := Load([]byte(typesDoc))
	if err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry()
	if err := reg.Register(descs...); err != nil {
		t.Fatal(err)
	}
	u, err := reg.Lookup("User")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"response", "user"}, u.Root); diff != "" {
		t.Errorf("root mismatch (-want +got):\n%s", diff)
	}
	var got []string
	for _, f := range u.Fields {
		got = append(got, f.Name+" "+f.Expected.String())
	}
	want := []string{"FullName string", "age int", "born string", "tags []string", "home Address"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"full_name"}, u.Field("FullName").KeyPath); diff != "" {
		t.Errorf("FullName key path mismatch (-want +got):\n%s", diff)
	}
	age := u.Field("age")
	if !age.HasDefault || age.Default != int64(18) {
		t.Errorf("age default = %v (%T)", age.Default, age.Default)
	}
	if diff := cmp.Diff([]any{"a", "b"}, u.Field("tags").Default); diff != "" {
		t.Errorf("tags default mismatch (-want +got):\n%s", diff)
	}
	if u.Field("born").Transformer == nil || !u.Field("born").Optional {
		t.Error("born should be an optional transformed field")
	}
	a, _ := reg.Lookup("Address")
	if diff := cmp.Diff([]string{"postal code"}, a.Field("zip").KeyPath); diff != "" {
		t.Errorf("zip key path mismatch (-want +got):\n%s", diff)
	}
	if a.Field("city").Expected.Primitive != coerce.String {
		t.Error("city should be a string")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":      "types:\n- id: A\n  fieldz: []\n",
		"missing type":     "types:\n- id: A\n  fields:\n  - {name: a}\n",
		"bad root":         "types:\n- id: A\n  root: 'a..b'\n  fields: []\n",
		"bad transform":    "types:\n- id: A\n  fields:\n  - {name: a, type: string, transform: {name: nope}}\n",
		"bad default":      "types:\n- id: A\n  fields:\n  - {name: a, type: int, default: x}\n",
		"object default":   "types:\n- id: A\n  fields:\n  - {name: a, type: B, default: {x: 1}}\n",
		"object transform": "types:\n- id: A\n  fields:\n  - {name: a, type: B, transform: {name: unix}}\n",
		"not yaml":         "types: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load([]byte(doc)); err == nil {
				t.Errorf("Load(%q): expected error", doc)
			}
		})
	}
}

func TestJSONSchema(t *testing.T) {
	descs, err := Load([]byte(typesDoc))
	if err != nil {
		t.Fatal(err)
	}
	reg := NewRegistry()
	if err := reg.Register(descs...); err != nil {
		t.Fatal(err)
	}
	s, err := JSONSchema(reg.Snapshot(), "User")
	if err != nil {
		t.Fatal(err)
	}
	d, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(d, &got); err != nil {
		t.Fatal(err)
	}
	user := got["$defs"].(map[string]any)["User"].(map[string]any)
	if diff := cmp.Diff([]any{"full_name", "home"}, user["required"]); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
	props := user["properties"].(map[string]any)
	born := props["born"].(map[string]any)
	if born["type"] != "string" || born["format"] != "date" {
		t.Errorf("born = %v", born)
	}
	if props["home"].(map[string]any)["$ref"] != "#/$defs/Address" {
		t.Errorf("home = %v", props["home"])
	}
	if props["age"].(map[string]any)["default"] != 18.0 {
		t.Errorf("age = %v", props["age"])
	}
	envelope := got["properties"].(map[string]any)["response"].(map[string]any)
	if envelope["properties"].(map[string]any)["user"].(map[string]any)["$ref"] != "#/$defs/User" {
		t.Errorf("envelope = %v", envelope)
	}
	if _, err := JSONSchema(reg.Snapshot(), "Ghost"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("JSONSchema(Ghost) error = %v", err)
	}
}
