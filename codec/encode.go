package codec

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"

	"github.com/scenarigo/smartclone/errors"
	"github.com/scenarigo/smartclone/object"
)

const indentWidth = 2

// Encode writes v as a YAML document Decode reads back into an equivalent
// graph. Objects referred to more than once are anchored. Holes of arrays
// are written as undefined, and non-enumerable properties are omitted.
func Encode(realm *object.Realm, v object.Value) ([]byte, error) {
	if realm == nil {
		realm = object.DefaultRealm()
	}
	e := &encoder{
		realm:   realm,
		refs:    map[*object.Object]int{},
		anchors: map[*object.Object]string{},
		roots:   map[*object.Object]string{},
	}
	for _, name := range realm.Names() {
		if root, ok := realm.Root(name); ok {
			if _, ok := e.roots[root]; !ok {
				e.roots[root] = name
			}
		}
	}
	e.count(v)
	if err := e.document(v); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type encoder struct {
	realm   *object.Realm
	refs    map[*object.Object]int
	anchors map[*object.Object]string
	roots   map[*object.Object]string
	buf     bytes.Buffer
}

// count records how many edges reach each object.
func (e *encoder) count(v object.Value) {
	o, ok := v.(*object.Object)
	if !ok || o == nil {
		return
	}
	if _, ok := e.roots[o]; ok {
		return
	}
	e.refs[o]++
	if e.refs[o] > 1 {
		return
	}
	if p, ok := e.proto(o); ok && p != nil {
		e.count(p)
	}
	for _, entry := range e.entries(o) {
		e.count(entry.value)
	}
}

// proto returns the parent of o and whether it differs from the parent
// Decode gives a mapping or sequence.
func (e *encoder) proto(o *object.Object) (*object.Object, bool) {
	p := o.Proto()
	if o.IsArray() {
		return p, p != e.realm.ArrayPrototype()
	}
	return p, p != e.realm.ObjectPrototype()
}

type entry struct {
	key   string
	value object.Value
}

func (e *encoder) entries(o *object.Object) []entry {
	if o.IsArray() {
		entries := make([]entry, o.Len())
		for i := range entries {
			entries[i] = entry{value: o.Index(i)}
		}
		return entries
	}
	keys := o.OwnKeys()
	entries := make([]entry, 0, len(keys))
	for _, key := range keys {
		v, _ := o.GetOwn(key)
		entries = append(entries, entry{key: key, value: v})
	}
	return entries
}

func (e *encoder) document(v object.Value) error {
	o, ok := v.(*object.Object)
	if !ok || o == nil {
		s, err := e.scalar(v)
		if err != nil {
			return err
		}
		e.buf.WriteString(s)
		e.buf.WriteByte('\n')
		return nil
	}
	if name, ok := e.roots[o]; ok {
		fmt.Fprintf(&e.buf, "%s %s\n", tagIntrinsic, name)
		return nil
	}
	var props []string
	if e.refs[o] > 1 {
		props = append(props, "&"+e.anchor(o))
	}
	if e.taggedArray(o) {
		props = append(props, tagArray)
	}
	if len(props) > 0 {
		e.buf.WriteString(strings.Join(props, " "))
		e.buf.WriteByte('\n')
	}
	if e.taggedArray(o) {
		return e.arrayMapping(o, 0)
	}
	if e.empty(o) {
		e.buf.WriteString(emptyCollection(o))
		e.buf.WriteByte('\n')
		return nil
	}
	return e.collection(o, 0, false)
}

// node writes v after a "key:" or "-" indicator. indent is the column of
// the entries of v when v is a non-empty collection.
func (e *encoder) node(v object.Value, indent int, inSequence bool) error {
	o, ok := v.(*object.Object)
	if !ok || o == nil {
		s, err := e.scalar(v)
		if err != nil {
			return err
		}
		fmt.Fprintf(&e.buf, " %s\n", s)
		return nil
	}
	if name, ok := e.roots[o]; ok {
		fmt.Fprintf(&e.buf, " %s %s\n", tagIntrinsic, name)
		return nil
	}
	if anchor, ok := e.anchors[o]; ok {
		fmt.Fprintf(&e.buf, " *%s\n", anchor)
		return nil
	}

	anchored := e.refs[o] > 1
	if anchored {
		fmt.Fprintf(&e.buf, " &%s", e.anchor(o))
	}
	if e.taggedArray(o) {
		fmt.Fprintf(&e.buf, " %s\n", tagArray)
		return e.arrayMapping(o, indent)
	}
	if e.empty(o) {
		fmt.Fprintf(&e.buf, " %s\n", emptyCollection(o))
		return nil
	}
	if inSequence && !anchored {
		e.buf.WriteByte(' ')
		return e.collection(o, indent, true)
	}
	e.buf.WriteByte('\n')
	return e.collection(o, indent, false)
}

// collection writes the entries of o at indent. When inline is true the
// first entry continues the current line.
func (e *encoder) collection(o *object.Object, indent int, inline bool) error {
	prefix := strings.Repeat(" ", indent)
	line := func() {
		if inline {
			inline = false
			return
		}
		e.buf.WriteString(prefix)
	}

	if p, ok := e.proto(o); ok && !o.IsArray() {
		line()
		e.buf.WriteString(protoKey + ":")
		if p == nil {
			e.buf.WriteString(" null\n")
		} else if err := e.node(p, indent+indentWidth, false); err != nil {
			return err
		}
	}

	for _, entry := range e.entries(o) {
		line()
		if o.IsArray() {
			e.buf.WriteString("-")
			if err := e.node(entry.value, indent+indentWidth, true); err != nil {
				return err
			}
			continue
		}
		e.buf.WriteString(quote(entry.key) + ":")
		if err := e.node(entry.value, indent+indentWidth, false); err != nil {
			return errors.WithPath(err, entry.key)
		}
	}
	return nil
}

// taggedArray reports whether o is an array with a parent other than the
// Array root. Such arrays are written as a !array mapping holding $proto
// and items.
func (e *encoder) taggedArray(o *object.Object) bool {
	if !o.IsArray() {
		return false
	}
	_, ok := e.proto(o)
	return ok
}

func (e *encoder) arrayMapping(o *object.Object, indent int) error {
	prefix := strings.Repeat(" ", indent)
	e.buf.WriteString(prefix + protoKey + ":")
	if p, _ := e.proto(o); p == nil {
		e.buf.WriteString(" null\n")
	} else if err := e.node(p, indent+indentWidth, false); err != nil {
		return err
	}
	if o.Len() == 0 {
		return nil
	}
	e.buf.WriteString(prefix + itemsKey + ":\n")
	return e.collection(o, indent+indentWidth, false)
}

func (e *encoder) empty(o *object.Object) bool {
	if o.IsArray() {
		return o.Len() == 0
	}
	if _, ok := e.proto(o); ok {
		return false
	}
	return len(o.OwnKeys()) == 0
}

func emptyCollection(o *object.Object) string {
	if o.IsArray() {
		return "[]"
	}
	return "{}"
}

// anchor names o, numbering anchors in order of first emission.
func (e *encoder) anchor(o *object.Object) string {
	if a, ok := e.anchors[o]; ok {
		return a
	}
	a := fmt.Sprintf("a%d", len(e.anchors)+1)
	e.anchors[o] = a
	return a
}

func (e *encoder) scalar(v object.Value) (string, error) {
	switch v := v.(type) {
	case nil:
		return tagUndefined + " null", nil
	case object.Bool:
		return strconv.FormatBool(bool(v)), nil
	case object.Number:
		return number(float64(v)), nil
	case object.String:
		return quote(string(v)), nil
	case *object.Function:
		name := v.Name()
		if name == "" {
			name = "anonymous"
		}
		return tagFunc + " " + quote(name), nil
	case object.Native:
		b, err := yaml.MarshalWithOptions(v.Payload, yaml.Flow(true))
		if err != nil {
			return "", errors.Wrapf(err, "failed to encode %T", v.Payload)
		}
		return tagNative + " " + strings.TrimSpace(string(b)), nil
	case *object.Object:
		return "null", nil
	}
	switch v.Kind() {
	case object.KindUndefined:
		return tagUndefined + " null", nil
	case object.KindNull:
		return "null", nil
	}
	return "", errors.Errorf("unsupported value %s", v.Kind())
}

func number(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func quote(s string) string {
	if needsQuote(s) {
		return strconv.Quote(s)
	}
	return s
}

// needsQuote reports whether s written as a plain scalar would fail to read
// back as the same string.
func needsQuote(s string) bool {
	if s == "" || strings.HasPrefix(s, "<<") || !utf8.ValidString(s) || token.IsNeedQuoted(s) {
		return true
	}
	for _, r := range s {
		if unicode.IsControl(r) || r == '\u2028' || r == '\u2029' || r == '\ufeff' {
			return true
		}
	}
	file, err := parser.ParseBytes([]byte(s), 0)
	if err != nil || len(file.Docs) != 1 || file.Docs[0].Body == nil {
		return true
	}
	v, err := scalar(file.Docs[0].Body)
	return err != nil || v != object.Value(object.String(s))
}
