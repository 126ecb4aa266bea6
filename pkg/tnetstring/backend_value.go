package tnetstring

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Values is the bytes-mode backend over Value. Strings decode to String;
// Text values cannot be encoded.
var Values Backend[Value] = valueBackend{}

var (
	errTextInBytesMode = errors.New("text value needs a text-mode codec")
	errIllFormedText   = errors.New("ill-formed input for text encoding")
)

type valueBackend struct{}

func (valueBackend) Classify(v Value) (Tag, bool) {
	if v == nil {
		return TagNull, true
	}
	return v.Tag(), true
}

func (valueBackend) NewNull() Value             { return Null{} }
func (valueBackend) NewBool(b bool) Value       { return Bool(b) }
func (valueBackend) NewInteger(n Integer) Value { return n }
func (valueBackend) NewFloat(f float64) Value   { return Float(f) }
func (valueBackend) NewList() Value             { return List{} }
func (valueBackend) NewDict() Value             { return Dict{} }

func (valueBackend) NewString(p []byte) (Value, error) {
	return String(bytes.Clone(p)), nil
}

func (valueBackend) AppendList(list, item Value) (Value, error) {
	return append(list.(List), item), nil
}

func (valueBackend) SetDict(dict, key, value Value) (Value, error) {
	return append(dict.(Dict), Entry{Key: key, Value: value}), nil
}

func (valueBackend) BoolOf(v Value) bool       { return bool(v.(Bool)) }
func (valueBackend) IntegerOf(v Value) Integer { return v.(Integer) }
func (valueBackend) FloatOf(v Value) float64   { return float64(v.(Float)) }
func (valueBackend) Items(v Value) []Value     { return v.(List) }
func (valueBackend) Entries(v Value) []Entry   { return v.(Dict) }

func (valueBackend) StringOf(v Value) ([]byte, error) {
	if s, ok := v.(String); ok {
		return s, nil
	}
	return nil, errTextInBytesMode
}

// TextValues returns a text-mode backend over Value. Strings decode to
// Text through enc; both Text and String values encode, Text through enc
// and String verbatim.
//
// Decoding is strict for every encoding: ill-formed input fails instead
// of being replaced with U+FFFD.
func TextValues(enc encoding.Encoding) Backend[Value] {
	return textBackend{enc: enc}
}

type textBackend struct {
	valueBackend
	enc encoding.Encoding
}

func (t textBackend) NewString(p []byte) (Value, error) {
	if t.enc == unicode.UTF8 {
		if _, _, err := transform.Bytes(encoding.UTF8Validator, p); err != nil {
			return nil, err
		}
		return Text(p), nil
	}
	out, err := t.enc.NewDecoder().Bytes(p)
	if err != nil {
		return nil, err
	}
	// Decoders substitute U+FFFD for ill-formed input. A replacement
	// character is only accepted if it was really encoded in p.
	if bytes.ContainsRune(out, utf8.RuneError) {
		again, err := t.enc.NewEncoder().Bytes(out)
		if err != nil || !bytes.Equal(trimBOM(again), trimBOM(p)) {
			return nil, errIllFormedText
		}
	}
	return Text(out), nil
}

// trimBOM drops a leading UTF-16 or UTF-8 byte order mark.
func trimBOM(p []byte) []byte {
	for _, bom := range [][]byte{{0xef, 0xbb, 0xbf}, {0xff, 0xfe}, {0xfe, 0xff}} {
		if bytes.HasPrefix(p, bom) {
			return p[len(bom):]
		}
	}
	return p
}

func (t textBackend) StringOf(v Value) ([]byte, error) {
	switch s := v.(type) {
	case String:
		return s, nil
	case Text:
		if t.enc == unicode.UTF8 {
			out, _, err := transform.Bytes(encoding.UTF8Validator, []byte(s))
			return out, err
		}
		return t.enc.NewEncoder().Bytes([]byte(s))
	}
	return nil, fmt.Errorf("unexpected string value %T", v)
}

// LookupEncoding resolves an encoding name. "utf16" and "utf-16" name
// little-endian UTF-16 that writes and honors a byte order mark; every
// other name is resolved through the WHATWG encoding index.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf16", "utf-16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}
