package tnetstring

import (
	"bytes"
	"cmp"
	"fmt"
	"maps"
	"math/big"
	"reflect"
	"slices"
)

// Native is a backend over plain Go values.
//
// Decoding yields nil, bool, int64 (or *big.Int when the value does not
// fit), float64, string, []any and map[string]any. A dict with a key that
// is not a string decodes to map[any]any instead; a key that cannot be a
// map key (a list or dict) fails the decode with ErrBrokenDictItems.
//
// Encoding accepts those types plus every sized int, uint and float type,
// []byte, *big.Int, Value, and through reflection any pointer, slice,
// array or map built from them, including named types. Map entries are
// written in a deterministic key order.
var Native Backend[any] = nativeBackend{}

var bigIntType = reflect.TypeFor[*big.Int]()

// maxIndirections bounds pointer chasing, which would otherwise not
// terminate on a pointer that refers to itself.
const maxIndirections = 64

type nativeBackend struct{}

// deref follows pointers (other than *big.Int) to the value they hold.
func deref(v any) any {
	for range maxIndirections {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.Type() == bigIntType {
			return v
		}
		if rv.IsNil() {
			return nil
		}
		v = rv.Elem().Interface()
	}
	return v
}

func (n nativeBackend) Classify(v any) (Tag, bool) {
	v = deref(v)
	switch x := v.(type) {
	case nil:
		return TagNull, true
	case bool:
		return TagBool, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr:
		return TagInteger, true
	case *big.Int:
		if x == nil {
			return TagNull, true
		}
		return TagInteger, true
	case float32, float64:
		return TagFloat, true
	case string, []byte:
		return TagString, true
	case []any:
		return TagList, true
	case map[string]any, map[any]any:
		return TagDict, true
	case Value:
		return x.Tag(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return TagBool, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return TagInteger, true
	case reflect.Float32, reflect.Float64:
		return TagFloat, true
	case reflect.String:
		return TagString, true
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return TagString, true
		}
		return TagList, true
	case reflect.Map:
		return TagDict, true
	}
	return 0, false
}

func (nativeBackend) NewNull() any           { return nil }
func (nativeBackend) NewBool(b bool) any     { return b }
func (nativeBackend) NewFloat(f float64) any { return f }
func (nativeBackend) NewList() any           { return []any{} }
func (nativeBackend) NewDict() any           { return map[string]any{} }

func (nativeBackend) NewInteger(n Integer) any {
	if i, ok := n.Int64(); ok {
		return i
	}
	return n.Big()
}

func (nativeBackend) NewString(p []byte) (any, error) {
	return string(p), nil
}

func (nativeBackend) AppendList(list, item any) (any, error) {
	return append(list.([]any), item), nil
}

func (nativeBackend) SetDict(dict, key, value any) (any, error) {
	switch d := dict.(type) {
	case map[string]any:
		if k, ok := key.(string); ok {
			d[k] = value
			return d, nil
		}
		if !hashable(key) {
			return nil, fmt.Errorf("dict key of type %T cannot be a map key", key)
		}
		promoted := make(map[any]any, len(d)+1)
		for k, v := range d {
			promoted[k] = v
		}
		promoted[key] = value
		return promoted, nil
	case map[any]any:
		if !hashable(key) {
			return nil, fmt.Errorf("dict key of type %T cannot be a map key", key)
		}
		d[key] = value
		return d, nil
	}
	return nil, fmt.Errorf("unexpected dict type %T", dict)
}

func hashable(v any) bool {
	return v == nil || reflect.TypeOf(v).Comparable()
}

func (nativeBackend) BoolOf(v any) bool {
	switch x := deref(v).(type) {
	case bool:
		return x
	case Bool:
		return bool(x)
	}
	return reflect.ValueOf(deref(v)).Bool()
}

func (nativeBackend) IntegerOf(v any) Integer {
	switch x := deref(v).(type) {
	case int:
		return Int(int64(x))
	case int64:
		return Int(x)
	case *big.Int:
		return BigInt(x)
	case Integer:
		return x
	}

	rv := reflect.ValueOf(deref(v))
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint())
	}
	return Int(rv.Int())
}

func (nativeBackend) FloatOf(v any) float64 {
	switch x := deref(v).(type) {
	case float64:
		return x
	case Float:
		return float64(x)
	}
	return reflect.ValueOf(deref(v)).Float()
}

func (nativeBackend) StringOf(v any) ([]byte, error) {
	switch x := deref(v).(type) {
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case String:
		return x, nil
	case Text:
		return []byte(x), nil
	}

	rv := reflect.ValueOf(deref(v))
	switch rv.Kind() {
	case reflect.String:
		return []byte(rv.String()), nil
	case reflect.Slice:
		return rv.Bytes(), nil
	case reflect.Array:
		p := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(p), rv)
		return p, nil
	}
	return nil, fmt.Errorf("unexpected string value %T", v)
}

func (nativeBackend) Items(v any) []any {
	switch x := deref(v).(type) {
	case []any:
		return x
	case List:
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = item
		}
		return items
	}

	rv := reflect.ValueOf(deref(v))
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items
}

func (n nativeBackend) Entries(v any) []Pair[any] {
	switch x := deref(v).(type) {
	case map[string]any:
		entries := make([]Pair[any], 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			entries = append(entries, Pair[any]{Key: k, Value: x[k]})
		}
		return entries
	case Dict:
		entries := make([]Pair[any], len(x))
		for i, e := range x {
			entries[i] = Pair[any]{Key: e.Key, Value: e.Value}
		}
		return entries
	}

	rv := reflect.ValueOf(deref(v))
	entries := make([]Pair[any], 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, Pair[any]{Key: iter.Key().Interface(), Value: iter.Value().Interface()})
	}
	slices.SortFunc(entries, func(a, b Pair[any]) int {
		return n.compareKeys(a.Key, b.Key)
	})
	return entries
}

// compareKeys orders map keys by tag, then by value within a tag.
func (n nativeBackend) compareKeys(a, b any) int {
	ta, _ := n.Classify(a)
	tb, _ := n.Classify(b)
	if ta != tb {
		return cmp.Compare(ta, tb)
	}

	switch ta {
	case TagBool:
		x, y := n.BoolOf(a), n.BoolOf(b)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	case TagInteger:
		return n.IntegerOf(a).Cmp(n.IntegerOf(b))
	case TagFloat:
		return cmp.Compare(n.FloatOf(a), n.FloatOf(b))
	case TagString:
		x, _ := n.StringOf(a)
		y, _ := n.StringOf(b)
		return bytes.Compare(x, y)
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
