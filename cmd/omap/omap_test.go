package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/objmap/codec"
	"github.com/signadot/objmap/coerce"
	"github.com/signadot/objmap/gomap"
	"github.com/signadot/objmap/ir"
	"github.com/signadot/objmap/libdiff"
	"github.com/signadot/objmap/schema"
)

const types = `
types:
- id: User
  naming: snake
  fields:
  - {name: Name, type: string}
  - {name: Age, type: int, default: 0}
  - {name: Tags, type: "[]string", optional: true}
`

func testMapper(t *testing.T) *gomap.Mapper {
	t.Helper()
	path := filepath.Join(t.TempDir(), "types.yaml")
	if err := os.WriteFile(path, []byte(types), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := loadMapper(path, "User")
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestLoadMapperErrors(t *testing.T) {
	if _, err := loadMapper("", "User"); err == nil {
		t.Error("missing -s accepted")
	}
	path := filepath.Join(t.TempDir(), "types.yaml")
	if err := os.WriteFile(path, []byte(types), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadMapper(path, "Ghost"); err == nil {
		t.Error("unknown type accepted")
	}
}

func TestDecodeDoc(t *testing.T) {
	m := testMapper(t)
	y, err := codec.DecodeJSON([]byte(`[{"name":"a","age":"7"},{"age":{}}]`))
	if err != nil {
		t.Fatal(err)
	}
	out, groups, err := decodeDoc(m, "User", y)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := codec.DecodeJSON([]byte(`[{"Name":"a","Age":7},{}]`))
	if !ir.Equal(want, out) {
		t.Errorf("decoded %s", ir.Format(out))
	}

	var buf bytes.Buffer
	n := reportErrors(&MainConfig{NoColor: true}, &buf, "in.json", groups)
	if n != 2 {
		t.Errorf("reported %d errors", n)
	}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	wantLines := []string{
		"in.json: [1].Name MissingKey: missing key name",
		"in.json: [1].Age KindMismatch: expected int, got Object",
	}
	if diff := cmp.Diff(wantLines, got); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestReportChanges(t *testing.T) {
	from, _ := codec.DecodeJSON([]byte(`{"a":1,"b":2}`))
	to, _ := codec.DecodeJSON([]byte(`{"a":1,"b":3,"c":true}`))
	var buf bytes.Buffer
	reportChanges(&MainConfig{NoColor: true}, &buf, libdiff.Diff(from, to))
	if diff := cmp.Diff("~ b: 2 -> 3\n+ c: true\n", buf.String()); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestFormats(t *testing.T) {
	cfg := &MainConfig{}
	if f := cfg.inFormat("x.yml"); f != codec.YAMLFormat {
		t.Errorf("inFormat(x.yml) = %v", f)
	}
	if f := cfg.inFormat("-"); f != codec.JSONFormat {
		t.Errorf("inFormat(-) = %v", f)
	}
	c := codec.CBORFormat
	cfg.InFormat = &c
	if f := cfg.inFormat("x.yml"); f != codec.CBORFormat {
		t.Errorf("-I should win over the extension, got %v", f)
	}
	if cfg.colorize(&bytes.Buffer{}) {
		t.Error("buffers are not terminals")
	}
}

func TestFieldFlags(t *testing.T) {
	f := schema.Dynamic("n", schema.ScalarOf(coerce.Any)).AsOptional().WithDefault(int64(3))
	if got := fieldFlags(f); got != "optional default=3" {
		t.Errorf("fieldFlags = %q", got)
	}
}

func TestRoundtripDoc(t *testing.T) {
	m := testMapper(t)
	y, err := codec.DecodeJSON([]byte(`{"name":"a","age":"7","extra":1}`))
	if err != nil {
		t.Fatal(err)
	}
	var errw bytes.Buffer
	cfg := &RoundtripConfig{MainConfig: &MainConfig{NoColor: true}}
	changes, err := roundtripDoc(cfg, m, "User", "in.json", y, &errw)
	if err != nil {
		t.Fatal(err)
	}
	if errw.Len() != 0 {
		t.Errorf("unexpected field errors: %s", errw.String())
	}
	var buf bytes.Buffer
	reportChanges(cfg.MainConfig, &buf, changes)
	if diff := cmp.Diff("~ age: \"7\" -> 7\n", buf.String()); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}

	cfg.All = true
	changes, err = roundtripDoc(cfg, m, "User", "in.json", y, &errw)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 2 {
		t.Errorf("-all: got %d changes, want 2", len(changes))
	}
}

func TestSummarize(t *testing.T) {
	var buf bytes.Buffer
	saved := theLog
	defer func() { theLog = saved }()
	theLog = newLog(&buf)
	summarize("User", 1, 3)
	theLog.Info("done")
	want := "level=WARN msg=\"round trip changed documents\" type=User changed=1 total=3\nmsg=done\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
}
