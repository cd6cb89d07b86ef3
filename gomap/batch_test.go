package gomap

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/objmap/ir"
	"github.com/signadot/objmap/schema"
)

func TestDecodeAll(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			m := NewMapper(newRegistry(t), Workers(workers))
			in := node(t, `[{"city":"a","zip":"1"},{"city":"b"},{"city":"c","zip":"3"}]`)
			res, err := m.DecodeAll("Address", in)
			if err != nil {
				t.Fatal(err)
			}
			var got []address
			for _, r := range res {
				got = append(got, *r.Value.(*address))
			}
			want := []address{{"a", "1"}, {City: "b"}, {"c", "3"}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
			if !res[0].OK() || res[1].OK() || !res[2].OK() {
				t.Errorf("unexpected error isolation: %v %v %v", res[0].Err(), res[1].Err(), res[2].Err())
			}

			enc, err := m.EncodeAll("Address", []any{&got[0], &got[1], &got[2]})
			if err != nil {
				t.Fatal(err)
			}
			all := Values(enc)
			if all.Len() != 3 || ir.Get(all.Values[1], "zip").String != "" {
				t.Errorf("EncodeAll = %s", ir.Format(all))
			}
		})
	}
}

func TestDecodeAllErrors(t *testing.T) {
	m := NewMapper(newRegistry(t))
	if _, err := m.DecodeAll("Address", node(t, `{"city":"a"}`)); !errors.Is(err, ErrNotSequence) {
		t.Errorf("object input error = %v", err)
	}
	if _, err := m.DecodeAll("Ghost", node(t, `[]`)); !errors.Is(err, ErrUnknownType) {
		t.Errorf("unknown type error = %v", err)
	}
	_, err := m.EncodeAll("Address", []any{&address{}, &profile{}})
	if !errors.Is(err, ErrInstanceType) || !strings.HasPrefix(err.Error(), "[1]") {
		t.Errorf("EncodeAll error = %v", err)
	}
}

func TestConcurrentConversions(t *testing.T) {
	reg := newRegistry(t)
	m := NewMapper(reg)
	in := node(t, `{"name":"Ana","email":"a@b.c","age":41,"active":true,"score":1}`)
	want := &profile{Name: "Ana", Email: "a@b.c", Age: 41, Active: true, Score: 1}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				res, err := DecodeAs[profile](m, "Profile", in)
				if err != nil {
					t.Error(err)
					return
				}
				if diff := cmp.Diff(want, res.Value); diff != "" || !res.OK() {
					t.Errorf("decode mismatch (-want +got):\n%s", diff)
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 50; j++ {
			if err := reg.Register(profileType()); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	wg.Wait()
}

type chain struct {
	Name string
	Next *chain
}

func chainRegistry(t *testing.T) *schema.Registry {
	t.Helper()
	reg := schema.NewRegistry()
	err := reg.Register(schema.Describe[chain]("Chain",
		schema.String("name", func(c *chain) *string { return &c.Name }),
		schema.ObjectPtr("next", "Chain", func(c *chain) **chain { return &c.Next }).AsOptional(),
	))
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestMaxDepthEncodeCycle(t *testing.T) {
	c := &chain{Name: "loop"}
	c.Next = c
	res, err := NewMapper(chainRegistry(t), MaxDepth(5)).Encode("Chain", c)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	Walk(res.Errors, func(path string, e *FieldError) {
		got = append(got, path+" "+e.Kind.String())
	})
	if diff := cmp.Diff([]string{"next.next.next.next.next CoercionFailed"}, got); diff != "" {
		t.Errorf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMaxDepthDecode(t *testing.T) {
	in := node(t, `{"name":"a","next":{"name":"b","next":{"name":"c"}}}`)
	res, err := DecodeAs[chain](NewMapper(chainRegistry(t), MaxDepth(2)), "Chain", in)
	if err != nil {
		t.Fatal(err)
	}
	want := &chain{Name: "a", Next: &chain{Name: "b"}}
	if diff := cmp.Diff(want, res.Value); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
	if len(res.Errors) != 1 || !errors.Is(res.Err(), ErrCoercionFailed) {
		t.Errorf("errors = %v", res.Err())
	}
	full, err := DecodeAs[chain](NewMapper(chainRegistry(t)), "Chain", in)
	if err != nil || !full.OK() || full.Value.Next.Next.Name != "c" {
		t.Errorf("default depth: %+v, %v", full, err)
	}
}

func TestDefaultRegistry(t *testing.T) {
	reg := newRegistry(t)
	SetDefaultRegistry(reg)
	defer SetDefaultRegistry(nil)
	if DefaultMapper().Registry() != reg {
		t.Fatal("default mapper does not use the installed registry")
	}
	res, err := Decode("Address", node(t, `{"city":"x","zip":"y"}`))
	if err != nil || !res.OK() {
		t.Fatalf("Decode = %v, %v", res, err)
	}
	enc, err := Encode("Address", res.Value)
	if err != nil || !ir.Equal(enc.Value, node(t, `{"city":"x","zip":"y"}`)) {
		t.Errorf("Encode = %v, %v", enc, err)
	}
	SetDefaultRegistry(nil)
	if DefaultRegistry() != schema.DefaultRegistry() {
		t.Error("nil should restore the schema default registry")
	}
}
