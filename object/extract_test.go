package object

import (
	"testing"

	"github.com/zoncoen/query-go"
)

func TestLookup(t *testing.T) {
	proto := New()
	proto.Set("inherited", String("yes"))
	root := Create(proto)
	deep := New()
	deep.Set("circular", root)
	root.Set("deep", deep)
	root.Set("items", NewArray(String("first"), New()))
	root.Define("hidden", Number(1), false)

	tests := map[string]struct {
		path   string
		expect Value
	}{
		"empty": {
			path:   "",
			expect: root,
		},
		"nested": {
			path:   ".deep.circular",
			expect: root,
		},
		"without leading dot": {
			path:   "deep",
			expect: deep,
		},
		"index": {
			path:   ".items[0]",
			expect: String("first"),
		},
		"length": {
			path:   ".items.length",
			expect: Number(2),
		},
		"inherited": {
			path:   ".inherited",
			expect: String("yes"),
		},
		"non-enumerable": {
			path:   ".hidden",
			expect: Number(1),
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Lookup(root, test.path)
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if got != test.expect {
				t.Errorf("expect %v but got %v", test.expect, got)
			}
		})
	}

	t.Run("case insensitive", func(t *testing.T) {
		got, err := Lookup(root, ".DEEP.Circular", query.CaseInsensitive())
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if got != root {
			t.Errorf("expect %v but got %v", root, got)
		}
		if _, err := Lookup(root, ".DEEP"); err == nil {
			t.Fatal("case sensitive lookup ignored case")
		}
	})
	t.Run("not found", func(t *testing.T) {
		if _, err := Lookup(root, ".missing"); err == nil {
			t.Fatal("no error")
		}
	})
	t.Run("out of range", func(t *testing.T) {
		if _, err := Lookup(root, ".items[5]"); err == nil {
			t.Fatal("no error")
		}
	})
}
