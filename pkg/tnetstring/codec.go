package tnetstring

import (
	"fmt"

	"github.com/epithet-ssh/tnetstring/internal/outbuf"
)

// Codec encodes and decodes tnetstrings through a Backend.
//
// A Codec is immutable after construction and safe for concurrent use.
type Codec[V any] struct {
	b   Backend[V]
	rel Releaser[V]
	cfg config
}

// NewCodec returns a Codec over b.
//
// Example:
//
//	codec := tnetstring.NewCodec(tnetstring.Values, tnetstring.MaxDepth(32))
func NewCodec[V any](b Backend[V], opts ...Option) *Codec[V] {
	rel, _ := b.(Releaser[V])
	return &Codec[V]{
		b:   b,
		rel: rel,
		cfg: newConfig(opts),
	}
}

// Decode decodes data, which must hold exactly one tnetstring. Bytes after
// it fail with ErrTrailingData.
func (c *Codec[V]) Decode(data []byte) (V, error) {
	v, rest, err := c.parse(data, 0, 0)
	if err != nil {
		return v, err
	}
	if len(rest) > 0 {
		c.release(v)
		var zero V
		return zero, decodeError(ErrTrailingData, len(data)-len(rest),
			fmt.Sprintf("%d bytes after value", len(rest)))
	}
	return v, nil
}

// DecodePrefix decodes the tnetstring at the start of data and returns it
// with the bytes that follow it.
func (c *Codec[V]) DecodePrefix(data []byte) (V, []byte, error) {
	return c.parse(data, 0, 0)
}

// DecodePayload decodes a payload whose tag is already known, as split off
// by SplitFrame.
func (c *Codec[V]) DecodePayload(tag Tag, payload []byte) (V, error) {
	return c.parsePayload(tag, payload, 0, 0, 0)
}

// Encode returns the tnetstring encoding of v.
func (c *Codec[V]) Encode(v V) ([]byte, error) {
	out := outbuf.New(c.cfg.maxEncodedSize)
	if err := c.render(out, v, 0); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// AppendEncode appends the tnetstring encoding of v to dst. On error dst
// is returned unchanged.
func (c *Codec[V]) AppendEncode(dst []byte, v V) ([]byte, error) {
	out := outbuf.New(c.cfg.maxEncodedSize)
	if err := c.render(out, v, 0); err != nil {
		return dst, err
	}
	return out.AppendTo(dst), nil
}

func (c *Codec[V]) release(v V) {
	if c.rel != nil {
		c.rel.Release(v)
	}
}
