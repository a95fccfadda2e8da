package object

import (
	"context"
	"strconv"
	"strings"

	"github.com/zoncoen/query-go"

	"github.com/scenarigo/smartclone/errors"
	"github.com/scenarigo/smartclone/internal/queryutil"
)

// ExtractByKey implements the query.KeyExtractorContext interface.
// Keys resolve through the delegation chain like Get.
func (o *Object) ExtractByKey(ctx context.Context, key string) (any, bool) {
	if query.IsCaseInsensitive(ctx) {
		for cur := o; cur != nil; cur = cur.proto {
			for _, k := range cur.ownKeysAll() {
				if strings.EqualFold(k, key) {
					v, _ := cur.GetOwn(k)
					return v, true
				}
			}
		}
		return nil, false
	}
	for cur := o; cur != nil; cur = cur.proto {
		if v, ok := cur.GetOwn(key); ok {
			return v, true
		}
	}
	return nil, false
}

// ExtractByIndex implements the query.IndexExtractor interface.
func (o *Object) ExtractByIndex(i int) (any, bool) {
	if !o.IsArray() {
		return o.ExtractByKey(context.Background(), strconv.Itoa(i))
	}
	if i < 0 || i >= len(o.elems) || o.elems[i] == nil {
		return nil, false
	}
	return o.elems[i], true
}

// ownKeysAll returns every own key, enumerable or not.
func (o *Object) ownKeysAll() []string {
	keys := make([]string, 0, len(o.elems)+len(o.keys)+1)
	for i, v := range o.elems {
		if v != nil {
			keys = append(keys, strconv.Itoa(i))
		}
	}
	if o.IsArray() {
		keys = append(keys, lengthKey)
	}
	return append(keys, o.keys...)
}

// Lookup extracts the value at path from v, e.g. ".deep.circular" or
// ".items[0]". An empty path returns v itself.
func Lookup(v Value, path string, opts ...query.Option) (Value, error) {
	if path == "" {
		return v, nil
	}
	q, err := queryutil.Parse(path, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid query %q", path)
	}
	got, err := q.Extract(v)
	if err != nil {
		return nil, errors.ErrorQueryf(q, "%s not found", path)
	}
	res, ok := got.(Value)
	if !ok {
		return nil, errors.ErrorQueryf(q, "unexpected %T", got)
	}
	return res, nil
}
