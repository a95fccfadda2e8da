package object

import (
	"slices"
	"testing"
)

func TestRealmRoot(t *testing.T) {
	r := NewRealm()
	tests := map[string]struct {
		name   string
		expect func(*Object) bool
	}{
		"Object": {
			name:   "Object",
			expect: func(o *Object) bool { return o == r.ObjectPrototype() },
		},
		"Array": {
			name:   "Array",
			expect: func(o *Object) bool { return o == r.ArrayPrototype() },
		},
		"TypeError delegates to Error": {
			name:   "TypeError",
			expect: func(o *Object) bool { return o.Proto() == r.ErrorPrototype() },
		},
		"JSON namespace": {
			name: "JSON",
			expect: func(o *Object) bool {
				v, _ := r.Lookup("JSON")
				return o == v
			},
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			root, ok := r.Root(test.name)
			if !ok {
				t.Fatalf("%s not found", test.name)
			}
			if !test.expect(root) {
				t.Errorf("unexpected root for %s", test.name)
			}
		})
	}
}

func TestRealmWithoutIntrinsics(t *testing.T) {
	r := NewRealm(WithoutIntrinsics("WeakRef", "DataView"))
	for _, name := range []string{"WeakRef", "DataView"} {
		if _, ok := r.Root(name); ok {
			t.Errorf("%s is bound", name)
		}
		if slices.Contains(r.Names(), name) {
			t.Errorf("%s is listed", name)
		}
	}
	if _, ok := r.Root("Map"); !ok {
		t.Error("Map is not bound")
	}

	r = NewRealm(WithoutIntrinsics("Object"))
	if _, ok := r.Root("Object"); ok {
		t.Error("Object is bound")
	}
	if r.NewObject().Proto() != r.ObjectPrototype() {
		t.Error("plain objects lost their root")
	}
}

func TestRealmGlobalBindingsHidden(t *testing.T) {
	r := NewRealm()
	if keys := r.Global().OwnKeys(); len(keys) != 0 {
		t.Errorf("global bindings are enumerable: %v", keys)
	}
	if keys := r.ArrayPrototype().OwnKeys(); len(keys) != 0 {
		t.Errorf("prototype members are enumerable: %v", keys)
	}
}

func TestRealmConstructors(t *testing.T) {
	r := NewRealm()
	ctor, ok := r.Lookup("Array")
	if !ok {
		t.Fatal("Array not found")
	}
	arr, ok := ctor.(*Function).Call(Undefined, Number(1), Number(2)).(*Object)
	if !ok || !arr.IsArray() || arr.Len() != 2 {
		t.Fatalf("unexpected array %v", arr)
	}
	if arr.Get("constructor") != ctor {
		t.Error("constructor is not reachable through the prototype")
	}

	e := r.NewError("boom")
	if e.Class() != ClassError || e.Get("message") != String("boom") {
		t.Errorf("unexpected error object: %v", e.Get("message"))
	}
	if len(e.OwnKeys()) != 0 {
		t.Error("message is enumerable")
	}

	if r.NewObject().Proto() == DefaultRealm().ObjectPrototype() {
		t.Error("realms share their roots")
	}
}
