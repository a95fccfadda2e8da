package object

import (
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

type point struct {
	X, Y int
}

func TestFromGo(t *testing.T) {
	tests := map[string]struct {
		v      any
		expect Value
	}{
		"nil":    {v: nil, expect: Null},
		"bool":   {v: true, expect: Bool(true)},
		"int":    {v: 3, expect: Number(3)},
		"uint8":  {v: uint8(7), expect: Number(7)},
		"float":  {v: 1.5, expect: Number(1.5)},
		"string": {v: "foo", expect: String("foo")},
		"value":  {v: String("bar"), expect: String("bar")},
		"nil map": {
			v:      map[string]any(nil),
			expect: Null,
		},
		"struct": {
			v:      point{X: 1, Y: 2},
			expect: Native{Payload: point{X: 1, Y: 2}},
		},
		"bytes": {
			v:      []byte("x"),
			expect: Native{Payload: []byte("x")},
		},
		"time": {
			v:      time.Unix(0, 0).UTC(),
			expect: Native{Payload: time.Unix(0, 0).UTC()},
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := FromGo(test.v)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if diff := cmp.Diff(test.expect, got); diff != "" {
				t.Errorf("differs: (-want +got)\n%s", diff)
			}
		})
	}
}

func TestFromGoContainers(t *testing.T) {
	v, err := FromGo(map[string]any{
		"b":    []any{1, "two"},
		"a":    map[string]int{"x": 1},
		"bin":  []byte("raw"),
		"fn":   CallFunc(func(Value, ...Value) Value { return Null }),
		"list": yaml.MapSlice{{Key: "z", Value: 1}, {Key: "y", Value: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	o, ok := v.(*Object)
	if !ok {
		t.Fatalf("expect object but got %T", v)
	}
	if diff := cmp.Diff([]string{"a", "b", "bin", "fn", "list"}, o.OwnKeys()); diff != "" {
		t.Errorf("keys differ: (-want +got)\n%s", diff)
	}
	arr, ok := o.Get("b").(*Object)
	if !ok || !arr.IsArray() || arr.Index(1) != String("two") {
		t.Errorf("unexpected array %v", o.Get("b"))
	}
	if _, ok := o.Get("bin").(Native); !ok {
		t.Errorf("expect native bytes but got %T", o.Get("bin"))
	}
	if _, ok := o.Get("fn").(*Function); !ok {
		t.Errorf("expect function but got %T", o.Get("fn"))
	}
	ordered, ok := o.Get("list").(*Object)
	if !ok {
		t.Fatalf("expect object but got %T", o.Get("list"))
	}
	if diff := cmp.Diff([]string{"z", "y"}, ordered.OwnKeys()); diff != "" {
		t.Errorf("MapSlice order lost: (-want +got)\n%s", diff)
	}
}

func TestFromGoCycle(t *testing.T) {
	m := map[string]any{}
	m["self"] = m
	v, err := FromGo(m)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	o := v.(*Object)
	if o.Get("self") != o {
		t.Error("cycle not preserved")
	}
}

func TestFromGoDetachesNative(t *testing.T) {
	type payload struct{ Tags []string }
	p := &payload{Tags: []string{"a"}}
	v, err := FromGo(p)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	n, ok := v.(Native)
	if !ok {
		t.Fatalf("expect native but got %T", v)
	}
	p.Tags[0] = "changed"
	if got := n.Payload.(*payload).Tags[0]; got != "a" {
		t.Errorf("payload shares memory with the input: %q", got)
	}
}
