package object

import (
	"fmt"
	"slices"
	"sync"
)

type intrinsic struct {
	name string
	// namespace intrinsics are bound as plain objects instead of constructors.
	namespace bool
	// parent names the intrinsic whose prototype the new prototype delegates
	// to. Empty means the Object prototype.
	parent string
	class  Class
}

var intrinsics = []intrinsic{
	{name: "Object"},
	{name: "Function"},
	{name: "Boolean"},
	{name: "Symbol"},
	{name: "Error", class: ClassError},
	{name: "EvalError", parent: "Error", class: ClassError},
	{name: "RangeError", parent: "Error", class: ClassError},
	{name: "ReferenceError", parent: "Error", class: ClassError},
	{name: "SyntaxError", parent: "Error", class: ClassError},
	{name: "TypeError", parent: "Error", class: ClassError},
	{name: "URIError", parent: "Error", class: ClassError},
	{name: "AggregateError", parent: "Error", class: ClassError},
	{name: "Number"},
	{name: "BigInt"},
	{name: "Math", namespace: true},
	{name: "Date"},
	{name: "String"},
	{name: "RegExp"},
	{name: "Array", class: ClassArray},
	{name: "Int8Array"},
	{name: "Uint8Array"},
	{name: "Uint8ClampedArray"},
	{name: "Int16Array"},
	{name: "Uint16Array"},
	{name: "Int32Array"},
	{name: "Uint32Array"},
	{name: "Float32Array"},
	{name: "Float64Array"},
	{name: "Map"},
	{name: "Set"},
	{name: "WeakMap"},
	{name: "WeakSet"},
	{name: "WeakRef"},
	{name: "ArrayBuffer"},
	{name: "DataView"},
	{name: "Promise"},
	{name: "JSON", namespace: true},
	{name: "Reflect", namespace: true},
}

// Realm is a host environment: a global object and the built-in roots
// every object of a given kind delegates to.
type Realm struct {
	global      *Object
	objectProto *Object
	arrayProto  *Object
	errorProto  *Object
	names       []string
}

// RealmOption configures a Realm.
type RealmOption func(*realmConfig)

type realmConfig struct {
	omit map[string]bool
}

// WithoutIntrinsics leaves the named built-ins unbound in the global object,
// as in an environment that predates them.
func WithoutIntrinsics(names ...string) RealmOption {
	return func(c *realmConfig) {
		for _, name := range names {
			c.omit[name] = true
		}
	}
}

// NewRealm creates a realm with its built-ins.
// The Object, Array and Error prototypes always exist internally even when
// their global bindings are omitted.
func NewRealm(opts ...RealmOption) *Realm {
	cfg := &realmConfig{omit: map[string]bool{}}
	for _, opt := range opts {
		opt(cfg)
	}

	r := &Realm{objectProto: Create(nil)}
	r.global = Create(r.objectProto)
	protos := map[string]*Object{}
	for _, in := range intrinsics {
		root := r.objectProto
		if in.name != "Object" {
			parent := r.objectProto
			if in.parent != "" {
				parent = protos[in.parent]
			}
			root = Create(parent)
		}
		protos[in.name] = root
		if cfg.omit[in.name] {
			continue
		}
		var binding Value = root
		if !in.namespace {
			ctor := newConstructor(in, root)
			root.Define("constructor", ctor, false)
			binding = ctor
		}
		r.global.Define(in.name, binding, false)
		r.names = append(r.names, in.name)
	}
	r.arrayProto = protos["Array"]
	r.errorProto = protos["Error"]
	return r
}

func newConstructor(in intrinsic, proto *Object) *Function {
	return &Function{
		name:      in.name,
		prototype: proto,
		call: func(_ Value, args ...Value) Value {
			switch in.class {
			case ClassArray:
				a := newObject(ClassArray, proto)
				a.Append(args...)
				return a
			case ClassError:
				e := newObject(ClassError, proto)
				if len(args) > 0 {
					e.Define("message", String(toString(args[0])), false)
				}
				return e
			}
			if in.name == "Object" && len(args) > 0 {
				if o, ok := args[0].(*Object); ok {
					return o
				}
			}
			return newObject(ClassObject, proto)
		},
	}
}

func toString(v Value) string {
	switch v := v.(type) {
	case String:
		return string(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

var defaultRealm = sync.OnceValue(func() *Realm { return NewRealm() })

// DefaultRealm returns the process-wide realm.
func DefaultRealm() *Realm { return defaultRealm() }

// Global returns the global object of r.
func (r *Realm) Global() *Object { return r.global }

// ObjectPrototype returns the root of plain objects.
func (r *Realm) ObjectPrototype() *Object { return r.objectProto }

// ArrayPrototype returns the root of arrays.
func (r *Realm) ArrayPrototype() *Object { return r.arrayProto }

// ErrorPrototype returns the root of errors.
func (r *Realm) ErrorPrototype() *Object { return r.errorProto }

// Names returns the names of the built-ins bound when r was created.
func (r *Realm) Names() []string { return slices.Clone(r.names) }

// Lookup returns the global binding called name.
func (r *Realm) Lookup(name string) (Value, bool) {
	return r.global.GetOwn(name)
}

// Root returns the delegation root the global binding called name stands
// for: the prototype of a constructor or a namespace object itself.
// It reports false when the binding is absent or has no such root.
func (r *Realm) Root(name string) (*Object, bool) {
	v, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	switch v := v.(type) {
	case *Function:
		if p := v.Prototype(); p != nil {
			return p, true
		}
	case *Object:
		return v, true
	}
	return nil, false
}

// NewObject returns an empty plain object.
func (r *Realm) NewObject() *Object {
	return Create(r.objectProto)
}

// NewArray returns an array holding elems.
func (r *Realm) NewArray(elems ...Value) *Object {
	a := newObject(ClassArray, r.arrayProto)
	a.Append(elems...)
	return a
}

// NewError returns an error object with a non-enumerable message.
func (r *Realm) NewError(message string) *Object {
	e := newObject(ClassError, r.errorProto)
	e.Define("message", String(message), false)
	return e
}

// New returns an empty plain object of the default realm.
func New() *Object { return DefaultRealm().NewObject() }

// NewArray returns an array of the default realm.
func NewArray(elems ...Value) *Object { return DefaultRealm().NewArray(elems...) }
