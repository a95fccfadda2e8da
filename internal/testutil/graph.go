// Package testutil provides helpers for tests of object graphs.
package testutil

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/scenarigo/smartclone/codec"
	"github.com/scenarigo/smartclone/object"
)

// Snapshot converts an acyclic graph to Go data comparable with cmp.Diff.
// Functions become "func <name>".
func Snapshot(t *testing.T, v object.Value) any {
	t.Helper()
	switch v := v.(type) {
	case *object.Object:
		if v.IsArray() {
			elems := make([]any, v.Len())
			for i := range elems {
				elems[i] = Snapshot(t, v.Index(i))
			}
			return elems
		}
		m := map[string]any{}
		for _, key := range v.OwnKeys() {
			fv, _ := v.GetOwn(key)
			m[key] = Snapshot(t, fv)
		}
		return m
	case *object.Function:
		return "func " + v.Name()
	case nil:
		return nil
	}
	return v
}

// YAML renders a graph, cycles included, in the default realm.
func YAML(t *testing.T, v object.Value) string {
	t.Helper()
	b, err := codec.Encode(nil, v)
	if err != nil {
		t.Fatalf("failed to encode: %s", err)
	}
	return string(b)
}

// AssertText fails t with a character diff when got differs from expect.
func AssertText(t *testing.T, expect, got string) {
	t.Helper()
	if got != expect {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(expect, got, false)
		t.Errorf("output differs:\n%s", dmp.DiffPrettyText(diffs))
	}
}
