// Package smartclone deep-copies object graphs.
//
// A clone is structurally equivalent to its input but shares no object with
// it. Cycles through ancestors are preserved, fields the input inherits from
// its immediate parent are copied onto the clone unless that parent is a
// built-in root of the realm, and primitives and functions are returned as
// they are.
package smartclone

import (
	"sync"

	"github.com/scenarigo/smartclone/object"
)

// Cloner clones values into a realm. A Cloner is immutable and safe for
// concurrent use, provided the graphs being cloned are not mutated meanwhile.
type Cloner struct {
	realm *object.Realm
	roots rootSet
}

// New returns a Cloner for realm. The built-in roots of realm are probed
// once, here. A nil realm means object.DefaultRealm().
func New(realm *object.Realm) *Cloner {
	if realm == nil {
		realm = object.DefaultRealm()
	}
	return &Cloner{
		realm: realm,
		roots: probeRoots(realm),
	}
}

var defaultCloner = sync.OnceValue(func() *Cloner { return New(object.DefaultRealm()) })

// Default returns the Cloner of the default realm.
func Default() *Cloner { return defaultCloner() }

// Clone returns a deep copy of v using the default Cloner.
func Clone(v object.Value) object.Value {
	return Default().Clone(v)
}

// Realm returns the realm clones are created in.
func (c *Cloner) Realm() *object.Realm { return c.realm }

// Excluded reports whether o is a built-in root whose fields are never
// copied onto clones of the objects delegating to it.
func (c *Cloner) Excluded(o *object.Object) bool {
	return c.roots.contains(o)
}

// Clone returns a deep copy of v.
//
// Sibling fields referring to the same object that is not an ancestor are
// copied independently; only references back to an ancestor share the clone.
func (c *Cloner) Clone(v object.Value) object.Value {
	return c.clone(v, nil)
}

func (c *Cloner) clone(v object.Value, visited *frame) object.Value {
	src, ok := v.(*object.Object)
	if !ok || src == nil {
		return v
	}

	parent := src.Proto()
	delegated := parent != nil && !c.roots.contains(parent)

	if dst, ok := visited.lookup(src); ok {
		return dst
	}

	var dst *object.Object
	if src.IsArray() {
		dst = c.realm.NewArray()
	} else {
		dst = c.realm.NewObject()
	}
	visited = visited.push(src, dst)

	for _, f := range fields(src, parent, delegated) {
		switch fv := f.value.(type) {
		case *object.Object:
			if fv == src {
				dst.Set(f.key, dst)
				continue
			}
			dst.Set(f.key, c.clone(fv, visited))
		default:
			dst.Set(f.key, fv)
		}
	}
	return dst
}

type field struct {
	key   string
	value object.Value
}

// fields lists the enumerable own fields of src followed, if delegated is
// true, by the enumerable own fields of parent that src does not own.
// Ancestors beyond parent are never consulted.
func fields(src, parent *object.Object, delegated bool) []field {
	keys := src.OwnKeys()
	fs := make([]field, 0, len(keys))
	for _, key := range keys {
		v, _ := src.GetOwn(key)
		fs = append(fs, field{key: key, value: v})
	}
	if !delegated {
		return fs
	}
	for _, key := range parent.OwnKeys() {
		if src.HasOwn(key) {
			continue
		}
		v, _ := parent.GetOwn(key)
		fs = append(fs, field{key: key, value: v})
	}
	return fs
}
