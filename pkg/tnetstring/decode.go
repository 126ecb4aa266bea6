package tnetstring

import (
	"bytes"
	"fmt"

	"github.com/epithet-ssh/tnetstring/internal/literal"
)

var (
	trueLiteral  = []byte("true")
	falseLiteral = []byte("false")
)

// parse decodes the tnetstring at the start of data, which begins offset
// bytes into the caller's input, and returns it with the bytes after it.
func (c *Codec[V]) parse(data []byte, offset, depth int) (V, []byte, error) {
	var zero V

	tag, payload, rest, err := splitFrame(data, c.cfg.maxLength, offset)
	if err != nil {
		return zero, nil, err
	}
	payloadOffset := offset + len(data) - len(rest) - len(payload) - 1

	v, err := c.parsePayload(tag, payload, offset, payloadOffset, depth)
	if err != nil {
		return zero, nil, err
	}
	return v, rest, nil
}

func (c *Codec[V]) parsePayload(tag Tag, payload []byte, offset, payloadOffset, depth int) (V, error) {
	var zero V

	switch tag {
	case TagString:
		v, err := c.b.NewString(payload)
		if err != nil {
			return zero, &Error{Op: "decode", Kind: ErrInvalidStringLiteral, Offset: offset, Err: err}
		}
		return v, nil

	case TagInteger:
		n, big, err := literal.ParseInt(payload)
		if err != nil {
			return zero, decodeError(ErrInvalidIntegerLiteral, offset, quote(payload))
		}
		return c.b.NewInteger(Integer{small: n, big: big}), nil

	case TagFloat:
		f, err := literal.ParseFloat(payload)
		if err != nil {
			return zero, decodeError(ErrInvalidFloatLiteral, offset, quote(payload))
		}
		return c.b.NewFloat(f), nil

	case TagBool:
		switch {
		case bytes.Equal(payload, trueLiteral):
			return c.b.NewBool(true), nil
		case bytes.Equal(payload, falseLiteral):
			return c.b.NewBool(false), nil
		}
		return zero, decodeError(ErrInvalidBooleanLiteral, offset, quote(payload))

	case TagNull:
		if len(payload) != 0 {
			return zero, decodeError(ErrInvalidNullLiteral, offset, quote(payload))
		}
		return c.b.NewNull(), nil

	case TagList:
		if depth >= c.cfg.maxDepth {
			return zero, decodeError(ErrNestingTooDeep, offset, fmt.Sprintf("more than %d levels", c.cfg.maxDepth))
		}
		return c.parseList(payload, offset, payloadOffset, depth)

	case TagDict:
		if depth >= c.cfg.maxDepth {
			return zero, decodeError(ErrNestingTooDeep, offset, fmt.Sprintf("more than %d levels", c.cfg.maxDepth))
		}
		return c.parseDict(payload, offset, payloadOffset, depth)
	}

	return zero, decodeError(ErrInvalidTypeTag, offset, fmt.Sprintf("%q", rune(tag)))
}

func (c *Codec[V]) parseList(payload []byte, offset, pos, depth int) (V, error) {
	var zero V

	list := c.b.NewList()
	for len(payload) > 0 {
		item, rest, err := c.parse(payload, pos, depth+1)
		if err != nil {
			c.release(list)
			return zero, brokenContainer(ErrBrokenListItems, offset, "", err)
		}
		pos += len(payload) - len(rest)
		payload = rest

		next, err := c.b.AppendList(list, item)
		if err != nil {
			c.release(item)
			c.release(list)
			return zero, brokenContainer(ErrBrokenListItems, offset, "item rejected", err)
		}
		list = next
	}
	return list, nil
}

func (c *Codec[V]) parseDict(payload []byte, offset, pos, depth int) (V, error) {
	var zero V

	dict := c.b.NewDict()
	for len(payload) > 0 {
		key, rest, err := c.parse(payload, pos, depth+1)
		if err != nil {
			c.release(dict)
			return zero, brokenContainer(ErrBrokenDictItems, offset, "", err)
		}
		pos += len(payload) - len(rest)
		payload = rest

		if len(payload) == 0 {
			c.release(key)
			c.release(dict)
			return zero, decodeError(ErrBrokenDictItems, offset, "key without value")
		}

		value, rest, err := c.parse(payload, pos, depth+1)
		if err != nil {
			c.release(key)
			c.release(dict)
			return zero, brokenContainer(ErrBrokenDictItems, offset, "", err)
		}
		pos += len(payload) - len(rest)
		payload = rest

		next, err := c.b.SetDict(dict, key, value)
		if err != nil {
			c.release(key)
			c.release(value)
			c.release(dict)
			return zero, brokenContainer(ErrBrokenDictItems, offset, "entry rejected", err)
		}
		dict = next
	}
	return dict, nil
}
