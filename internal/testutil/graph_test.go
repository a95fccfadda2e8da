package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/scenarigo/smartclone/object"
)

func TestSnapshot(t *testing.T) {
	o := object.New()
	o.Set("name", object.String("a"))
	o.Set("list", object.NewArray(object.Number(1), object.Null))
	o.Set("fn", object.NewFunction("greet", nil))
	expect := map[string]any{
		"name": object.String("a"),
		"list": []any{object.Number(1), object.Null},
		"fn":   "func greet",
	}
	if diff := cmp.Diff(expect, Snapshot(t, o)); diff != "" {
		t.Errorf("differs (-want +got):\n%s", diff)
	}
}

func TestYAML(t *testing.T) {
	o := object.New()
	o.Set("self", o)
	AssertText(t, "&a1\nself: *a1\n", YAML(t, o))
}
