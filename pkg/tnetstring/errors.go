package tnetstring

import (
	"errors"
	"strconv"
	"strings"
)

// Sentinel errors. Decode and encode failures are *Error values whose Kind
// is one of these, so errors.Is can be used to classify a failure. The
// exceptions are io.EOF from Decoder.Decode at a clean end of stream and
// writer errors from Encoder.Encode, which are returned unchanged.
var (
	// ErrInvalidLengthPrefix indicates a missing, malformed or oversized
	// length prefix, or a missing ':' after it.
	ErrInvalidLengthPrefix = errors.New("tnetstring: invalid length prefix")

	// ErrTruncatedInput indicates fewer bytes than the length prefix promised.
	ErrTruncatedInput = errors.New("tnetstring: truncated input")

	// ErrInvalidTypeTag indicates an unknown type tag.
	ErrInvalidTypeTag = errors.New("tnetstring: invalid type tag")

	ErrInvalidStringLiteral  = errors.New("tnetstring: invalid string literal")
	ErrInvalidIntegerLiteral = errors.New("tnetstring: invalid integer literal")
	ErrInvalidFloatLiteral   = errors.New("tnetstring: invalid float literal")
	ErrInvalidBooleanLiteral = errors.New("tnetstring: invalid boolean literal")
	ErrInvalidNullLiteral    = errors.New("tnetstring: invalid null literal")

	// ErrBrokenDictItems indicates a dict payload that could not be parsed
	// into key/value pairs.
	ErrBrokenDictItems = errors.New("tnetstring: broken dict items")

	// ErrBrokenListItems indicates a list payload that could not be parsed
	// into items.
	ErrBrokenListItems = errors.New("tnetstring: broken list items")

	// ErrNestingTooDeep indicates containers nested past MaxDepth.
	ErrNestingTooDeep = errors.New("tnetstring: nesting too deep")

	// ErrTrailingData indicates bytes left over after a strict decode.
	ErrTrailingData = errors.New("tnetstring: trailing data")

	// ErrNotSerializable indicates a value the backend cannot classify or
	// render.
	ErrNotSerializable = errors.New("tnetstring: value not serializable")

	// ErrOutOfMemory indicates the output grew past MaxEncodedSize.
	ErrOutOfMemory = errors.New("tnetstring: out of memory")
)

// Error describes a failed decode or encode.
type Error struct {
	Op     string // "decode" or "encode"
	Kind   error  // one of the sentinel errors
	Offset int    // decode: byte offset of the failing tnetstring
	Path   string // encode: location of the failing value, e.g. [2]{0:value}
	Reason string // optional detail
	Err    error  // optional cause, often a nested *Error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Op == "encode" {
		if e.Path != "" {
			b.WriteString(" at ")
			b.WriteString(e.Path)
		}
	} else {
		b.WriteString(" at offset ")
		b.WriteString(strconv.Itoa(e.Offset))
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap yields the kind and, when present, the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func decodeError(kind error, offset int, reason string) *Error {
	return &Error{Op: "decode", Kind: kind, Offset: offset, Reason: reason}
}

func encodeError(kind error, reason string, cause error) *Error {
	return &Error{Op: "encode", Kind: kind, Reason: reason, Err: cause}
}

// brokenContainer wraps a child failure in the container's kind. Nested
// containers each add a layer, so errors.Is matches every enclosing
// container kind as well as the innermost cause.
func brokenContainer(kind error, offset int, reason string, child error) error {
	return &Error{Op: "decode", Kind: kind, Offset: offset, Reason: reason, Err: child}
}

// withPath prepends a path segment to an encode error.
func withPath(err error, segment string) error {
	var e *Error
	if errors.As(err, &e) && e.Op == "encode" {
		e.Path = segment + e.Path
	}
	return err
}
