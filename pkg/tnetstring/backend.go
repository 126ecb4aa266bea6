package tnetstring

// Pair is one key/value entry of a dict.
type Pair[V any] struct {
	Key   V
	Value V
}

// Backend maps between tnetstrings and a host representation V.
//
// The decoder calls the constructors as it parses; containers are built
// by threading the value returned from AppendList and SetDict, so a
// backend may return a new container (a grown slice, a promoted map) on
// each call. The encoder classifies each value and reads it back through
// the accessors; it never modifies the values it is given.
//
// A constructor that returns an error fails the decode. The accessors are
// only called with values whose Classify result matches them.
type Backend[V any] interface {
	// Classify returns the tag v encodes as, or false if v cannot be
	// encoded.
	Classify(v V) (Tag, bool)

	NewNull() V
	NewBool(b bool) V
	NewInteger(n Integer) V
	NewFloat(f float64) V
	// NewString builds a string from a payload. p is only valid for the
	// duration of the call.
	NewString(p []byte) (V, error)
	NewList() V
	AppendList(list, item V) (V, error)
	NewDict() V
	SetDict(dict, key, value V) (V, error)

	BoolOf(v V) bool
	IntegerOf(v V) Integer
	FloatOf(v V) float64
	StringOf(v V) ([]byte, error)
	Items(v V) []V
	Entries(v V) []Pair[V]
}

// Releaser is implemented by backends that want partially decoded values
// back when a decode fails. Release is called at most once for each value
// that was built but will never be returned.
type Releaser[V any] interface {
	Release(v V)
}
