package smartclone

import "github.com/scenarigo/smartclone/object"

// rootNames are the built-ins whose roots are shared by every value of a
// kind. Names missing from a realm are skipped.
var rootNames = []string{
	"Object",
	"Function",
	"Boolean",
	"Symbol",
	"Error",
	"EvalError",
	"RangeError",
	"ReferenceError",
	"SyntaxError",
	"TypeError",
	"URIError",
	"Number",
	"Math",
	"Date",
	"String",
	"RegExp",
	"Array",
	"Int8Array",
	"Uint8Array",
	"Uint8ClampedArray",
	"Int16Array",
	"Uint16Array",
	"Int32Array",
	"Uint32Array",
	"Float32Array",
	"Float64Array",
	"Map",
	"Set",
	"WeakMap",
	"WeakSet",
	"ArrayBuffer",
	"DataView",
	"JSON",
}

// rootSet holds root identities. It is never modified after probeRoots.
type rootSet map[*object.Object]struct{}

func probeRoots(realm *object.Realm) rootSet {
	set := rootSet{}
	for _, name := range rootNames {
		if root, ok := realm.Root(name); ok {
			set[root] = struct{}{}
		}
	}
	return set
}

func (s rootSet) contains(o *object.Object) bool {
	_, ok := s[o]
	return ok
}
