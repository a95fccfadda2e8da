package object

// CallFunc is the Go implementation of a Function.
type CallFunc func(this Value, args ...Value) Value

// Function is a callable value. Functions are shared, never copied.
type Function struct {
	name      string
	call      CallFunc
	prototype *Object
}

// NewFunction returns a function named name.
// A nil fn makes a function that returns Undefined.
func NewFunction(name string, fn CallFunc) *Function {
	return &Function{name: name, call: fn}
}

// Kind implements Value.
func (*Function) Kind() Kind { return KindFunction }
func (*Function) isValue()   {}

// Name returns the name of f.
func (f *Function) Name() string { return f.name }

// Prototype returns the object given as parent to the instances f
// constructs, or nil if f is not a constructor.
func (f *Function) Prototype() *Object { return f.prototype }

// Call invokes f.
func (f *Function) Call(this Value, args ...Value) Value {
	if f.call == nil {
		return Undefined
	}
	if v := f.call(this, args...); v != nil {
		return v
	}
	return Undefined
}
