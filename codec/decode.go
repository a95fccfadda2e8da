// Package codec reads and writes object graphs as YAML.
//
// Anchors and aliases express identity, so shared and cyclic references
// survive a round trip. The special key "$proto" sets the parent of a
// mapping, and the tags !func, !undefined, !intrinsic and !native denote
// values YAML has no syntax for. An array with a parent other than the
// Array root is a !array mapping of "$proto" and "items".
package codec

import (
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/scenarigo/smartclone/errors"
	"github.com/scenarigo/smartclone/object"
)

const (
	protoKey = "$proto"
	itemsKey = "items"

	tagFunc      = "!func"
	tagUndefined = "!undefined"
	tagIntrinsic = "!intrinsic"
	tagNative    = "!native"
	tagArray     = "!array"
)

// Option configures Decode.
type Option func(*decoder)

// WithFunctions resolves !func tags to the given functions by name.
// Unknown names decode to functions returning undefined.
func WithFunctions(fns ...*object.Function) Option {
	return func(d *decoder) {
		for _, fn := range fns {
			d.funcs[fn.Name()] = fn
		}
	}
}

type decoder struct {
	realm   *object.Realm
	funcs   map[string]*object.Function
	anchors map[string]object.Value
}

// Decode parses every YAML document of data into a value of realm.
func Decode(realm *object.Realm, data []byte, opts ...Option) ([]object.Value, error) {
	if realm == nil {
		realm = object.DefaultRealm()
	}
	d := &decoder{
		realm: realm,
		funcs: map[string]*object.Function{},
	}
	for _, opt := range opts {
		opt(d)
	}

	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	values := make([]object.Value, 0, len(file.Docs))
	for i, doc := range file.Docs {
		d.anchors = map[string]object.Value{}
		v, err := d.decode(doc.Body, "", "")
		if err != nil {
			return nil, errors.Wrapf(errors.WithNode(err, doc.Body), "document %d", i)
		}
		values = append(values, v)
	}
	return values, nil
}

// decode converts node. A non-empty anchor names the resulting value;
// containers are registered before their children so aliases inside them
// refer back to them.
func (d *decoder) decode(node ast.Node, path, anchor string) (object.Value, error) {
	register := func(v object.Value) {
		if anchor != "" {
			d.anchors[anchor] = v
		}
	}

	switch n := node.(type) {
	case nil:
		register(object.Null)
		return object.Null, nil
	case *ast.AnchorNode:
		if anchor != "" {
			return nil, errors.ErrorPathf(path, "multiple anchors on one node")
		}
		return d.decode(n.Value, path, n.Name.GetToken().Value)
	case *ast.AliasNode:
		name := n.Value.GetToken().Value
		v, ok := d.anchors[name]
		if !ok {
			return nil, errors.ErrorPathf(path, "undefined anchor %q", name)
		}
		register(v)
		return v, nil
	case *ast.MappingNode:
		o := d.realm.NewObject()
		register(o)
		return o, d.fillObject(o, n.Values, path)
	case *ast.MappingValueNode:
		o := d.realm.NewObject()
		register(o)
		return o, d.fillObject(o, []*ast.MappingValueNode{n}, path)
	case *ast.SequenceNode:
		a := d.realm.NewArray()
		register(a)
		for i, elem := range n.Values {
			v, err := d.decode(elem, fmt.Sprintf("%s[%d]", path, i), "")
			if err != nil {
				return nil, err
			}
			a.Append(v)
		}
		return a, nil
	case *ast.CommentGroupNode:
		register(object.Null)
		return object.Null, nil
	case *ast.TagNode:
		v, err := d.decodeTag(n, path, anchor)
		if err != nil {
			return nil, err
		}
		register(v)
		return v, nil
	}

	v, err := scalar(node)
	if err != nil {
		return nil, errors.WithPath(err, path)
	}
	register(v)
	return v, nil
}

func (d *decoder) fillObject(o *object.Object, entries []*ast.MappingValueNode, path string) error {
	var merged []*object.Object
	for _, entry := range entries {
		if _, ok := entry.Key.(*ast.MergeKeyNode); ok {
			v, err := d.decode(entry.Value, path, "")
			if err != nil {
				return err
			}
			src, ok := v.(*object.Object)
			if !ok {
				return errors.ErrorPathf(path, "merge value must be a mapping")
			}
			merged = append(merged, src)
			continue
		}

		key := keyString(entry.Key)
		child := childPath(path, key)
		v, err := d.decode(entry.Value, child, "")
		if err != nil {
			return err
		}
		if key == protoKey {
			if err := setProto(o, v); err != nil {
				return errors.WithPath(err, child)
			}
			continue
		}
		o.Set(key, v)
	}

	for _, src := range merged {
		for _, key := range src.OwnKeys() {
			if o.HasOwn(key) {
				continue
			}
			v, _ := src.GetOwn(key)
			o.Set(key, v)
		}
	}
	return nil
}

func setProto(o *object.Object, v object.Value) error {
	switch p := v.(type) {
	case *object.Object:
		return o.SetProto(p)
	default:
		if v.Kind() == object.KindNull {
			return o.SetProto(nil)
		}
	}
	return errors.Errorf("%s must be a mapping or null but got %s", protoKey, v.Kind())
}

func (d *decoder) decodeTag(n *ast.TagNode, path, anchor string) (object.Value, error) {
	switch tag := n.Start.Value; tag {
	case tagUndefined:
		return object.Undefined, nil
	case tagFunc:
		name, err := tagArgument(n)
		if err != nil {
			return nil, errors.WithPath(err, path)
		}
		fn, ok := d.funcs[name]
		if !ok {
			fn = object.NewFunction(name, nil)
			d.funcs[name] = fn
		}
		return fn, nil
	case tagIntrinsic:
		name, err := tagArgument(n)
		if err != nil {
			return nil, errors.WithPath(err, path)
		}
		root, ok := d.realm.Root(name)
		if !ok {
			return nil, errors.ErrorPathf(path, "unknown intrinsic %q", name)
		}
		return root, nil
	case tagArray:
		return d.decodeArray(n.Value, path, anchor)
	case tagNative:
		var payload any
		if err := yaml.NodeToValue(n.Value, &payload); err != nil {
			return nil, errors.WithPath(errors.Wrap(err, "invalid native value"), path)
		}
		return object.Native{Payload: payload}, nil
	default:
		return d.decode(n.Value, path, anchor)
	}
}

// decodeArray reads a !array mapping: an array with an explicit parent and
// its elements under items.
func (d *decoder) decodeArray(node ast.Node, path, anchor string) (object.Value, error) {
	var entries []*ast.MappingValueNode
	switch n := node.(type) {
	case *ast.MappingNode:
		entries = n.Values
	case *ast.MappingValueNode:
		entries = []*ast.MappingValueNode{n}
	default:
		return nil, errors.ErrorPathf(path, "%s requires a mapping", tagArray)
	}

	a := d.realm.NewArray()
	if anchor != "" {
		d.anchors[anchor] = a
	}
	for _, entry := range entries {
		key := keyString(entry.Key)
		child := childPath(path, key)
		switch key {
		case protoKey:
			v, err := d.decode(entry.Value, child, "")
			if err != nil {
				return nil, err
			}
			if err := setProto(a, v); err != nil {
				return nil, errors.WithPath(err, child)
			}
		case itemsKey:
			seq, ok := entry.Value.(*ast.SequenceNode)
			if !ok {
				return nil, errors.ErrorPathf(child, "%s must be a sequence", itemsKey)
			}
			for i, elem := range seq.Values {
				v, err := d.decode(elem, fmt.Sprintf("%s[%d]", child, i), "")
				if err != nil {
					return nil, err
				}
				a.Append(v)
			}
		default:
			return nil, errors.ErrorPathf(child, "unknown %s key %q", tagArray, key)
		}
	}
	return a, nil
}

func tagArgument(n *ast.TagNode) (string, error) {
	switch v := n.Value.(type) {
	case *ast.StringNode:
		return v.Value, nil
	case nil, *ast.NullNode:
		return "", errors.Errorf("%s requires an argument", n.Start.Value)
	}
	return n.Value.GetToken().Value, nil
}

func keyString(key ast.MapKeyNode) string {
	switch k := key.(type) {
	case *ast.StringNode:
		return k.Value
	case ast.ScalarNode:
		return fmt.Sprint(k.GetValue())
	}
	return key.String()
}

func scalar(node ast.Node) (object.Value, error) {
	switch n := node.(type) {
	case *ast.NullNode:
		return object.Null, nil
	case *ast.BoolNode:
		return object.Bool(n.Value), nil
	case *ast.IntegerNode:
		return integer(n.Value)
	case *ast.FloatNode:
		return object.Number(n.Value), nil
	case *ast.InfinityNode:
		return object.Number(n.Value), nil
	case *ast.NanNode:
		return object.Number(math.NaN()), nil
	case *ast.StringNode:
		return object.String(n.Value), nil
	case *ast.LiteralNode:
		return object.String(n.Value.Value), nil
	}
	return nil, errors.Errorf("unsupported node %s", node.Type())
}

func integer(v any) (object.Value, error) {
	switch v := v.(type) {
	case int:
		return object.Number(v), nil
	case int64:
		return object.Number(v), nil
	case uint64:
		return object.Number(v), nil
	}
	f, err := strconv.ParseFloat(fmt.Sprint(v), 64)
	if err != nil {
		return nil, errors.Errorf("invalid integer %v", v)
	}
	return object.Number(f), nil
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
