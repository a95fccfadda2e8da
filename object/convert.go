package object

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/scenarigo/smartclone/errors"
	"github.com/scenarigo/smartclone/internal/deepcopy"
)

// FromGo converts Go data into a value of the default realm.
func FromGo(v any) (Value, error) {
	return DefaultRealm().FromGo(v)
}

// FromGo converts Go data into a value of r.
//
// Maps with string keys and yaml.MapSlice become plain objects, slices and
// arrays become arrays, and CallFunc values become functions. Aliased maps
// and slices convert to one shared object, so cyclic Go data converts to a
// cyclic graph. Any other Go value is wrapped in a Native holding a deep copy.
func (r *Realm) FromGo(v any) (Value, error) {
	c := &converter{
		realm: r,
		seen:  map[sliceKey]*Object{},
	}
	return c.convert(v, "")
}

type sliceKey struct {
	ptr uintptr
	len int
}

type converter struct {
	realm *Realm
	seen  map[sliceKey]*Object
}

func (c *converter) convert(v any, path string) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Null, nil
	case Value:
		return v, nil
	case CallFunc:
		return NewFunction("", v), nil
	case func(Value, ...Value) Value:
		return NewFunction("", v), nil
	case yaml.MapSlice:
		o := c.realm.NewObject()
		for _, item := range v {
			key := fmt.Sprint(item.Key)
			elem, err := c.convert(item.Value, childPath(path, key))
			if err != nil {
				return nil, err
			}
			o.Set(key, elem)
		}
		return o, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null, nil
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return c.convertMap(rv, path)
		}
	case reflect.Slice:
		if rv.IsNil() {
			return Null, nil
		}
		if rv.Type().Elem().Kind() != reflect.Uint8 {
			return c.convertSlice(rv, path)
		}
	case reflect.Array:
		return c.convertSlice(rv, path)
	}

	payload, err := deepcopy.Copy(v)
	if err != nil {
		return nil, errors.ErrorPathf(path, "failed to detach %T: %s", v, err)
	}
	return Native{Payload: payload}, nil
}

func (c *converter) convertMap(rv reflect.Value, path string) (Value, error) {
	if rv.IsNil() {
		return Null, nil
	}
	id := sliceKey{ptr: rv.Pointer(), len: -1}
	if o, ok := c.seen[id]; ok {
		return o, nil
	}
	o := c.realm.NewObject()
	c.seen[id] = o

	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	for _, key := range keys {
		elem := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		v, err := c.convert(elem.Interface(), childPath(path, key))
		if err != nil {
			return nil, err
		}
		o.Set(key, v)
	}
	return o, nil
}

func (c *converter) convertSlice(rv reflect.Value, path string) (Value, error) {
	if rv.Kind() == reflect.Slice && rv.Len() > 0 {
		id := sliceKey{ptr: rv.Pointer(), len: rv.Len()}
		if o, ok := c.seen[id]; ok {
			return o, nil
		}
		a := c.realm.NewArray()
		c.seen[id] = a
		return a, c.fillArray(a, rv, path)
	}
	a := c.realm.NewArray()
	return a, c.fillArray(a, rv, path)
}

func (c *converter) fillArray(a *Object, rv reflect.Value, path string) error {
	for i := range rv.Len() {
		v, err := c.convert(rv.Index(i).Interface(), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return err
		}
		a.Append(v)
	}
	return nil
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
