// Package document converts between tnetstring values and structured
// documents (YAML, JSON and CUE).
//
// Documents are read through package config, so anything that can be a
// configuration file can also be encoded. Output goes through CUE for
// YAML and CUE syntax, and encoding/json for JSON.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"unicode/utf8"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/format"
	"cuelang.org/go/encoding/yaml"
	"github.com/epithet-ssh/tnetstring/pkg/config"
	"github.com/epithet-ssh/tnetstring/pkg/tnetstring"
)

// Format names an output syntax.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	CUE  Format = "cue"
)

// Formats lists the supported output formats.
var Formats = []Format{JSON, YAML, CUE}

// Load reads a document file, or a directory of CUE files, and converts
// it to a Value.
func Load(path string) (tnetstring.Value, error) {
	val, err := config.LoadValue(path)
	if err != nil {
		return nil, err
	}
	return FromCUE(val)
}

// Merge loads every file matching patterns, unifies them and converts the
// result to a Value.
func Merge(patterns ...string) (tnetstring.Value, error) {
	val, err := config.LoadAndUnifyPaths(patterns)
	if err != nil {
		return nil, err
	}
	return FromCUE(val)
}

// Read parses a YAML, JSON or CUE document from r.
func Read(r io.Reader) (tnetstring.Value, error) {
	val, err := config.ReadValue(r)
	if err != nil {
		return nil, err
	}
	return FromCUE(val)
}

// FromCUE converts a concrete CUE value. Struct fields keep their
// declaration order. Strings and bytes both become tnetstring.String.
func FromCUE(v cue.Value) (tnetstring.Value, error) {
	if err := v.Err(); err != nil {
		return nil, err
	}

	switch v.Kind() {
	case cue.NullKind:
		return tnetstring.Null{}, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, err
		}
		return tnetstring.Bool(b), nil
	case cue.IntKind:
		n, err := v.Int(nil)
		if err != nil {
			return nil, err
		}
		return tnetstring.BigInt(n), nil
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return tnetstring.Float(f), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, err
		}
		return tnetstring.String(s), nil
	case cue.BytesKind:
		p, err := v.Bytes()
		if err != nil {
			return nil, err
		}
		return tnetstring.String(p), nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, err
		}
		list := tnetstring.List{}
		for iter.Next() {
			item, err := FromCUE(iter.Value())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", iter.Value().Path(), err)
			}
			list = append(list, item)
		}
		return list, nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, err
		}
		dict := tnetstring.Dict{}
		for iter.Next() {
			value, err := FromCUE(iter.Value())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", iter.Value().Path(), err)
			}
			key := tnetstring.String(iter.Selector().Unquoted())
			dict = append(dict, tnetstring.Entry{Key: key, Value: value})
		}
		return dict, nil
	}
	return nil, fmt.Errorf("%s: value is not concrete (kind %v)", v.Path(), v.IncompleteKind())
}

// Export converts v to plain Go data suitable for printing.
//
// Integers that fit become int64, others *big.Int. Strings that are
// valid UTF-8 become string, others []byte. A dict whose keys are all
// such strings becomes map[string]any; any other dict becomes a list of
// [key, value] pairs in entry order.
func Export(v tnetstring.Value) any {
	switch x := v.(type) {
	case nil, tnetstring.Null:
		return nil
	case tnetstring.Bool:
		return bool(x)
	case tnetstring.Integer:
		if n, ok := x.Int64(); ok {
			return n
		}
		return x.Big()
	case tnetstring.Float:
		return float64(x)
	case tnetstring.String:
		if utf8.Valid(x) {
			return string(x)
		}
		return slices.Clone([]byte(x))
	case tnetstring.Text:
		return string(x)
	case tnetstring.List:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = Export(item)
		}
		return out
	case tnetstring.Dict:
		if m, ok := exportMap(x); ok {
			return m
		}
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = []any{Export(e.Key), Export(e.Value)}
		}
		return out
	}
	panic(fmt.Sprintf("document: unknown value type %T", v))
}

func exportMap(d tnetstring.Dict) (map[string]any, bool) {
	m := make(map[string]any, len(d))
	for _, e := range d {
		var key string
		switch k := e.Key.(type) {
		case tnetstring.String:
			if !utf8.Valid(k) {
				return nil, false
			}
			key = string(k)
		case tnetstring.Text:
			key = string(k)
		default:
			return nil, false
		}
		if _, dup := m[key]; dup {
			return nil, false
		}
		m[key] = Export(e.Value)
	}
	return m, true
}

// Render writes v in the named format.
func Render(v tnetstring.Value, f Format) ([]byte, error) {
	data := Export(v)

	switch f {
	case JSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(data); err != nil {
			return nil, fmt.Errorf("failed to render JSON: %w", err)
		}
		return buf.Bytes(), nil
	case YAML, CUE:
		val := cuecontext.New().Encode(data)
		if err := val.Err(); err != nil {
			return nil, fmt.Errorf("failed to convert to CUE: %w", err)
		}
		if f == YAML {
			return yaml.Encode(val)
		}
		out, err := format.Node(val.Syntax())
		if err != nil {
			return nil, fmt.Errorf("failed to format CUE: %w", err)
		}
		return append(out, '\n'), nil
	}
	return nil, fmt.Errorf("unknown format %q", f)
}
