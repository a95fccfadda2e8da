package object

import (
	"math"
	"sort"
	"strconv"

	"github.com/scenarigo/smartclone/errors"
)

// Class distinguishes objects with special storage.
type Class int

// Object classes.
const (
	ClassObject Class = iota
	ClassArray
	ClassError
)

func (c Class) String() string {
	switch c {
	case ClassArray:
		return "Array"
	case ClassError:
		return "Error"
	}
	return "Object"
}

// lengthKey is the non-enumerable own property every array has.
const lengthKey = "length"

// maxArrayIndex is the largest key treated as an array index.
const maxArrayIndex = 1<<32 - 2

// maxDenseGap bounds how far past its end an array grows to store an
// element. Farther indexes are kept as ordinary properties.
const maxDenseGap = 1 << 16

type property struct {
	value      Value
	enumerable bool
}

// Object is a key-value record that delegates lookups of missing keys to
// its parent. Arrays are objects of ClassArray whose index keys live in a
// dense element list; a nil element is a hole.
//
// Objects are not safe for concurrent mutation.
type Object struct {
	class Class
	proto *Object
	elems []Value
	keys  []string
	props map[string]*property
}

// Create returns a new plain object whose parent is proto.
// A nil proto creates an object without a parent.
func Create(proto *Object) *Object {
	return newObject(ClassObject, proto)
}

func newObject(class Class, proto *Object) *Object {
	return &Object{
		class: class,
		proto: proto,
		props: map[string]*property{},
	}
}

// Kind implements Value.
func (*Object) Kind() Kind { return KindObject }
func (*Object) isValue()   {}

// Class returns the class of the object.
func (o *Object) Class() Class { return o.class }

// IsArray reports whether o is an array.
func (o *Object) IsArray() bool { return o.class == ClassArray }

// Proto returns the immediate parent of o, or nil.
func (o *Object) Proto() *Object { return o.proto }

// SetProto replaces the parent of o.
// It fails when the new parent would make the delegation chain cyclic.
func (o *Object) SetProto(proto *Object) error {
	for p := proto; p != nil; p = p.proto {
		if p == o {
			return errors.New("cyclic delegation chain")
		}
	}
	o.proto = proto
	return nil
}

// Len returns the number of elements of an array, holes included.
func (o *Object) Len() int { return len(o.elems) }

// Index returns the i-th element of an array.
// Holes and out of range indexes yield Undefined.
func (o *Object) Index(i int) Value {
	if i < 0 || i >= len(o.elems) || o.elems[i] == nil {
		return Undefined
	}
	return o.elems[i]
}

// Append appends elements to an array.
func (o *Object) Append(vs ...Value) {
	if !o.IsArray() {
		return
	}
	for _, v := range vs {
		if v == nil {
			v = Undefined
		}
		o.elems = append(o.elems, v)
	}
}

// HasOwn reports whether o owns key, enumerable or not.
func (o *Object) HasOwn(key string) bool {
	_, ok := o.GetOwn(key)
	return ok
}

// GetOwn returns the own property key of o.
func (o *Object) GetOwn(key string) (Value, bool) {
	if o.IsArray() {
		if key == lengthKey {
			return Number(len(o.elems)), true
		}
		if i, ok := arrayIndex(key); ok && i < len(o.elems) && o.elems[i] != nil {
			return o.elems[i], true
		}
	}
	p, ok := o.props[key]
	if !ok {
		return nil, false
	}
	return p.value, true
}

// Get returns the value of key, following the delegation chain.
// Absent keys yield Undefined.
func (o *Object) Get(key string) Value {
	for cur := o; cur != nil; cur = cur.proto {
		if v, ok := cur.GetOwn(key); ok {
			return v
		}
	}
	return Undefined
}

// Set assigns an own property. New properties are enumerable; existing ones
// keep their attributes.
func (o *Object) Set(key string, v Value) {
	enumerable := true
	if p, ok := o.props[key]; ok {
		enumerable = p.enumerable
	}
	o.Define(key, v, enumerable)
}

// Define assigns an own property with an explicit enumerable attribute.
// Array elements and the length of an array are always stored as such.
func (o *Object) Define(key string, v Value, enumerable bool) {
	if v == nil {
		v = Undefined
	}
	if o.IsArray() {
		if key == lengthKey {
			o.setLength(v)
			return
		}
		if i, ok := arrayIndex(key); ok && i < len(o.elems)+maxDenseGap {
			o.removeProp(key)
			for len(o.elems) <= i {
				o.elems = append(o.elems, nil)
			}
			o.elems[i] = v
			return
		}
	}
	if p, ok := o.props[key]; ok {
		p.value = v
		p.enumerable = enumerable
		return
	}
	o.keys = append(o.keys, key)
	o.props[key] = &property{value: v, enumerable: enumerable}
}

// setLength truncates or extends an array. Lengths that are not valid
// array lengths, or that would grow the array past maxDenseGap, are ignored.
func (o *Object) setLength(v Value) {
	n, ok := v.(Number)
	if !ok {
		return
	}
	f := float64(n)
	if math.IsNaN(f) || f < 0 || f != math.Trunc(f) || f > maxArrayIndex+1 || f > float64(len(o.elems)+maxDenseGap) {
		return
	}
	l := int(f)
	if l < len(o.elems) {
		o.elems = o.elems[:l]
		return
	}
	for len(o.elems) < l {
		o.elems = append(o.elems, nil)
	}
}

// Delete removes an own property and reports whether it existed.
// Deleting an array element leaves a hole.
func (o *Object) Delete(key string) bool {
	if o.IsArray() {
		if key == lengthKey {
			return false
		}
		if i, ok := arrayIndex(key); ok && i < len(o.elems) && o.elems[i] != nil {
			o.elems[i] = nil
			return true
		}
	}
	return o.removeProp(key)
}

func (o *Object) removeProp(key string) bool {
	if _, ok := o.props[key]; !ok {
		return false
	}
	delete(o.props, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// OwnKeys returns the enumerable own keys of o in enumeration order:
// array indexes ascending, then the remaining keys in insertion order.
func (o *Object) OwnKeys() []string {
	var indexes []int
	for i, v := range o.elems {
		if v != nil {
			indexes = append(indexes, i)
		}
	}
	var named []string
	for _, k := range o.keys {
		if !o.props[k].enumerable {
			continue
		}
		if i, ok := arrayIndex(k); ok {
			indexes = append(indexes, i)
			continue
		}
		named = append(named, k)
	}
	sort.Ints(indexes)
	keys := make([]string, 0, len(indexes)+len(named))
	for n, i := range indexes {
		if n > 0 && indexes[n-1] == i {
			continue
		}
		keys = append(keys, strconv.Itoa(i))
	}
	return append(keys, named...)
}

// arrayIndex parses key as a canonical array index.
func arrayIndex(key string) (int, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 64)
	if err != nil || n > maxArrayIndex {
		return 0, false
	}
	return int(n), true
}
