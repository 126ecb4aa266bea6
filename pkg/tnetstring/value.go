package tnetstring

import (
	"bytes"
	"math"
	"math/big"
	"strconv"
)

// Value is a decoded tnetstring, or a value to encode with the Values
// backends. It is implemented by Null, Bool, Integer, Float, String, Text,
// List and Dict. A nil Value encodes as null.
type Value interface {
	Tag() Tag
	isValue()
}

// Null is the null value.
type Null struct{}

// Bool is a boolean.
type Bool bool

// Float is a float64.
type Float float64

// String is a raw byte string.
type String []byte

// Text is a decoded character string, produced by TextValues backends.
type Text string

// List is an ordered sequence of values.
type List []Value

// Entry is one key/value pair of a Dict.
type Entry = Pair[Value]

// Dict is a sequence of key/value pairs in decoded order. Keys may be any
// Value; duplicate keys are kept.
type Dict []Entry

func (Null) Tag() Tag    { return TagNull }
func (Bool) Tag() Tag    { return TagBool }
func (Integer) Tag() Tag { return TagInteger }
func (Float) Tag() Tag   { return TagFloat }
func (String) Tag() Tag  { return TagString }
func (Text) Tag() Tag    { return TagString }
func (List) Tag() Tag    { return TagList }
func (Dict) Tag() Tag    { return TagDict }

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (Integer) isValue() {}
func (Float) isValue()   {}
func (String) isValue()  {}
func (Text) isValue()    {}
func (List) isValue()    {}
func (Dict) isValue()    {}

// Integer is an arbitrary precision integer. Values that fit in an int64
// are held without allocating; the zero Integer is 0.
type Integer struct {
	small int64
	big   *big.Int // nil unless the value does not fit in an int64
}

// Int returns the Integer n.
func Int(n int64) Integer {
	return Integer{small: n}
}

// BigInt returns an Integer holding a copy of n. A nil n is 0.
func BigInt(n *big.Int) Integer {
	if n == nil {
		return Integer{}
	}
	if n.IsInt64() {
		return Integer{small: n.Int64()}
	}
	return Integer{big: new(big.Int).Set(n)}
}

// Uint returns the Integer n.
func Uint(n uint64) Integer {
	if n <= math.MaxInt64 {
		return Integer{small: int64(n)}
	}
	return Integer{big: new(big.Int).SetUint64(n)}
}

// Int64 returns the value and whether it fits in an int64.
func (i Integer) Int64() (int64, bool) {
	if i.big != nil {
		return 0, false
	}
	return i.small, true
}

// Big returns the value as a newly allocated *big.Int.
func (i Integer) Big() *big.Int {
	if i.big != nil {
		return new(big.Int).Set(i.big)
	}
	return big.NewInt(i.small)
}

// Cmp compares i and j and returns -1, 0 or +1.
func (i Integer) Cmp(j Integer) int {
	if i.big == nil && j.big == nil {
		switch {
		case i.small < j.small:
			return -1
		case i.small > j.small:
			return 1
		}
		return 0
	}
	return i.Big().Cmp(j.Big())
}

func (i Integer) String() string {
	if i.big != nil {
		return i.big.String()
	}
	return strconv.FormatInt(i.small, 10)
}

// Get returns the value of the first entry whose key is a String or Text
// equal to key.
func (d Dict) Get(key string) (Value, bool) {
	for _, e := range d {
		switch k := e.Key.(type) {
		case String:
			if string(k) == key {
				return e.Value, true
			}
		case Text:
			if string(k) == key {
				return e.Value, true
			}
		}
	}
	return nil, false
}

// Lookup returns the value of the first entry whose key is Equal to key.
func (d Dict) Lookup(key Value) (Value, bool) {
	for _, e := range d {
		if Equal(e.Key, key) {
			return e.Value, true
		}
	}
	return nil, false
}

// Equal reports whether a and b are the same value. A nil Value equals
// Null. Dicts are equal when they hold the same entries in any order.
// NaN floats are equal to each other.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}

	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case Integer:
		y, ok := b.(Integer)
		return ok && x.Cmp(y) == 0
	case Float:
		y, ok := b.(Float)
		if !ok {
			return false
		}
		if math.IsNaN(float64(x)) {
			return math.IsNaN(float64(y))
		}
		return x == y
	case String:
		y, ok := b.(String)
		return ok && bytes.Equal(x, y)
	case Text:
		y, ok := b.(Text)
		return ok && x == y
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Dict:
		y, ok := b.(Dict)
		return ok && equalDicts(x, y)
	}
	return false
}

func equalDicts(x, y Dict) bool {
	if len(x) != len(y) {
		return false
	}
	used := make([]bool, len(y))
next:
	for _, e := range x {
		for j, f := range y {
			if !used[j] && Equal(e.Key, f.Key) && Equal(e.Value, f.Value) {
				used[j] = true
				continue next
			}
		}
		return false
	}
	return true
}
