package smartclone

import (
	"testing"

	"github.com/scenarigo/smartclone/object"
)

func TestFrame(t *testing.T) {
	a, b, c := object.New(), object.New(), object.New()
	ca, cb, cc := object.New(), object.New(), object.New()

	var root *frame
	if _, ok := root.lookup(a); ok {
		t.Fatal("empty stack found an entry")
	}

	withA := root.push(a, ca)
	left := withA.push(b, cb)
	right := withA.push(c, cc)

	if got, ok := left.lookup(a); !ok || got != ca {
		t.Error("ancestor not found from the left branch")
	}
	if got, ok := right.lookup(c); !ok || got != cc {
		t.Error("own entry not found from the right branch")
	}
	if _, ok := right.lookup(b); ok {
		t.Error("sibling entry visible from the right branch")
	}
	if _, ok := withA.lookup(b); ok {
		t.Error("child entry visible from the parent")
	}
}

func TestFields(t *testing.T) {
	parent := object.New()
	parent.Set("shared", object.String("parent"))
	parent.Set("inherited", object.String("parent"))
	parent.Define("hidden", object.String("parent"), false)
	src := object.Create(parent)
	src.Set("own", object.String("src"))
	src.Set("shared", object.String("src"))

	tests := map[string]struct {
		delegated bool
		expect    []field
	}{
		"own only": {
			expect: []field{
				{key: "own", value: object.String("src")},
				{key: "shared", value: object.String("src")},
			},
		},
		"with parent": {
			delegated: true,
			expect: []field{
				{key: "own", value: object.String("src")},
				{key: "shared", value: object.String("src")},
				{key: "inherited", value: object.String("parent")},
			},
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := fields(src, parent, test.delegated)
			if len(got) != len(test.expect) {
				t.Fatalf("expect %d fields but got %d: %v", len(test.expect), len(got), got)
			}
			for i, f := range got {
				if f != test.expect[i] {
					t.Errorf("field %d: expect %v but got %v", i, test.expect[i], f)
				}
			}
		})
	}
}
