package codec

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/objmap/ir"
)

func obj(kvs ...any) *ir.Node {
	res := make([]ir.KeyVal, 0, len(kvs)/2)
	for i := 0; i < len(kvs); i += 2 {
		res = append(res, ir.KeyVal{Key: kvs[i].(string), Val: kvs[i+1].(*ir.Node)})
	}
	return ir.FromKeyVals(res)
}

func sample() *ir.Node {
	return obj(
		"zeta", ir.FromString("last <first>"),
		"alpha", ir.FromInt(-3),
		"ratio", ir.FromFloat(0.25),
		"ok", ir.FromBool(true),
		"none", ir.Null(),
		"list", ir.FromSlice([]*ir.Node{ir.FromInt(1), obj("b", ir.FromString("x"), "a", ir.FromSlice(nil))}),
	)
}

func TestJSONKeyOrder(t *testing.T) {
	in := `{"zeta":"last <first>","alpha":-3,"ratio":0.25,"ok":true,"none":null,"list":[1,{"b":"x","a":[]}]}`
	y, err := DecodeJSON([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(sample(), y) {
		t.Errorf("decoded %s", ir.Format(y))
	}
	if diff := cmp.Diff([]string{"zeta", "alpha", "ratio", "ok", "none", "list"}, y.Fields); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
	out, err := EncodeJSON(y)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, string(out)); diff != "" {
		t.Errorf("encode mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONErrors(t *testing.T) {
	for _, in := range []string{``, `{"a":`, `[1,2`, `{} {}`, `{"a":1e999}`} {
		if y, err := DecodeJSON([]byte(in)); err == nil {
			t.Errorf("DecodeJSON(%q) = %s, want error", in, ir.Format(y))
		}
	}
	if _, err := EncodeJSON(ir.FromFloat(math.NaN())); err == nil {
		t.Error("NaN encoded as JSON")
	}
}

func TestJSONDuplicateKeys(t *testing.T) {
	y, err := DecodeJSON([]byte(`{"a":1,"b":2,"a":3}`))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(obj("a", ir.FromInt(3), "b", ir.FromInt(2)), y) {
		t.Errorf("got %s", ir.Format(y))
	}
}

func TestJSONC(t *testing.T) {
	in := `{
	// the name
	"name": "a", /* inline */
	"tags": ["x", "y",],
}`
	y, err := Decode(JSONCFormat, []byte(in))
	if err != nil {
		t.Fatal(err)
	}
	want := obj("name", ir.FromString("a"), "tags", ir.FromSlice([]*ir.Node{ir.FromString("x"), ir.FromString("y")}))
	if !ir.Equal(want, y) {
		t.Errorf("got %s", ir.Format(y))
	}
}

func TestYAML(t *testing.T) {
	in := `
zeta: last <first>
alpha: -3
ratio: 0.25
ok: true
none: null
list:
- 1
- b: x
  a: []
`
	y, err := DecodeYAML([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(sample(), y) {
		t.Errorf("decoded %s", ir.Format(y))
	}
	if diff := cmp.Diff([]string{"zeta", "alpha", "ratio", "ok", "none", "list"}, y.Fields); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}
	out, err := EncodeYAML(y)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "alpha: -3\n") {
		t.Errorf("integers should not be written as floats:\n%s", out)
	}
	back, err := DecodeYAML(out)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(y, back) || !cmp.Equal(y.Fields, back.Fields) {
		t.Errorf("round trip changed the document:\n%s", out)
	}
}

func TestYAMLScalarKeys(t *testing.T) {
	y, err := DecodeYAML([]byte("1: one\ntrue: yes\n"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"1", "true"}, y.Fields); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestCBOR(t *testing.T) {
	d, err := Encode(CBORFormat, sample())
	if err != nil {
		t.Fatal(err)
	}
	again, err := EncodeCBOR(sample())
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != string(again) {
		t.Error("CBOR encoding is not deterministic")
	}
	y, err := Decode(CBORFormat, d)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(sample(), y) {
		t.Errorf("decoded %s", ir.Format(y))
	}
	if diff := cmp.Diff([]string{"alpha", "list", "none", "ok", "ratio", "zeta"}, y.Fields); diff != "" {
		t.Errorf("CBOR keys should be sorted (-want +got):\n%s", diff)
	}
}

func TestPatch(t *testing.T) {
	doc := obj("name", ir.FromString("a"), "age", ir.FromInt(3))
	p, err := DecodeYAML([]byte(`
- {op: replace, path: /name, value: b}
- {op: add, path: /tags, value: [x]}
- {op: remove, path: /age}
`))
	if err != nil {
		t.Fatal(err)
	}
	got, err := Patch(doc, p)
	if err != nil {
		t.Fatal(err)
	}
	want := obj("name", ir.FromString("b"), "tags", ir.FromSlice([]*ir.Node{ir.FromString("x")}))
	if !ir.Equal(want, got) {
		t.Errorf("Patch = %s", ir.Format(got))
	}
	if _, err := Patch(doc, obj("op", ir.FromString("add"))); err == nil {
		t.Error("patch that is not an array should fail")
	}
}

func TestMergePatch(t *testing.T) {
	doc := obj("name", ir.FromString("a"), "meta", obj("x", ir.FromInt(1), "y", ir.FromInt(2)))
	got, err := MergePatch(doc, obj("meta", obj("y", ir.Null(), "z", ir.FromInt(3))))
	if err != nil {
		t.Fatal(err)
	}
	want := obj("name", ir.FromString("a"), "meta", obj("x", ir.FromInt(1), "z", ir.FromInt(3)))
	if !ir.Equal(want, got) {
		t.Errorf("MergePatch = %s", ir.Format(got))
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"j": JSONFormat, "jsonc": JSONCFormat, "yml": YAMLFormat, "cbor": CBORFormat} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("tony"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("ParseFormat(tony) error = %v", err)
	}
	if f, ok := FormatOf("dir/in.YAML"); !ok || f != YAMLFormat {
		t.Errorf("FormatOf = %v, %v", f, ok)
	}
	if _, ok := FormatOf("README"); ok {
		t.Error("FormatOf without extension")
	}
	var f Format
	if err := f.UnmarshalText([]byte("json")); err != nil || f.String() != "json" {
		t.Errorf("UnmarshalText = %v, %v", f, err)
	}
}
