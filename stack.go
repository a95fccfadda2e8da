package smartclone

import "github.com/scenarigo/smartclone/object"

// frame is an entry of the visited stack: an object being cloned and its
// clone. Frames are never modified after push, so a recursive call extends
// the chain of its ancestors without affecting its siblings.
type frame struct {
	original *object.Object
	clone    *object.Object
	next     *frame
}

func (f *frame) push(original, clone *object.Object) *frame {
	return &frame{original: original, clone: clone, next: f}
}

// lookup searches from the most recent frame to the oldest.
func (f *frame) lookup(original *object.Object) (*object.Object, bool) {
	for cur := f; cur != nil; cur = cur.next {
		if cur.original == original {
			return cur.clone, true
		}
	}
	return nil, false
}

