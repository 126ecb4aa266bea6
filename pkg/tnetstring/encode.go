package tnetstring

import (
	"fmt"

	"github.com/epithet-ssh/tnetstring/internal/literal"
	"github.com/epithet-ssh/tnetstring/internal/outbuf"
)

// render writes v to out, back to front: tag, payload, ':' and length.
func (c *Codec[V]) render(out *outbuf.Buffer, v V, depth int) error {
	tag, ok := c.b.Classify(v)
	if !ok {
		return encodeError(ErrNotSerializable, fmt.Sprintf("cannot encode %T", v), nil)
	}
	if tag.Container() && depth >= c.cfg.maxDepth {
		return encodeError(ErrNestingTooDeep, fmt.Sprintf("more than %d levels", c.cfg.maxDepth), nil)
	}

	if err := out.PutByte(byte(tag)); err != nil {
		return outOfMemory(err)
	}
	mark := out.Mark()

	var scratch [32]byte
	var err error
	switch tag {
	case TagNull:
	case TagBool:
		if c.b.BoolOf(v) {
			err = out.PutBytes(trueLiteral)
		} else {
			err = out.PutBytes(falseLiteral)
		}
	case TagInteger:
		err = out.PutBytes(c.b.IntegerOf(v).append(scratch[:0]))
	case TagFloat:
		err = out.PutBytes(literal.AppendFloat(scratch[:0], c.b.FloatOf(v)))
	case TagString:
		p, serr := c.b.StringOf(v)
		if serr != nil {
			return encodeError(ErrNotSerializable, "", serr)
		}
		err = out.PutBytes(p)
	case TagList:
		items := c.b.Items(v)
		for i := len(items) - 1; i >= 0; i-- {
			if err := c.render(out, items[i], depth+1); err != nil {
				return withPath(err, fmt.Sprintf("[%d]", i))
			}
		}
	case TagDict:
		entries := c.b.Entries(v)
		for i := len(entries) - 1; i >= 0; i-- {
			if err := c.render(out, entries[i].Value, depth+1); err != nil {
				return withPath(err, fmt.Sprintf("{%d:value}", i))
			}
			if err := c.render(out, entries[i].Key, depth+1); err != nil {
				return withPath(err, fmt.Sprintf("{%d:key}", i))
			}
		}
	default:
		return encodeError(ErrNotSerializable, fmt.Sprintf("unknown tag %v", tag), nil)
	}
	if err != nil {
		return outOfMemory(err)
	}

	n := out.Since(mark)
	if n > c.cfg.maxLength {
		return encodeError(ErrNotSerializable,
			fmt.Sprintf("payload of %d bytes exceeds maximum length %d", n, c.cfg.maxLength), nil)
	}
	if err := out.PutByte(':'); err != nil {
		return outOfMemory(err)
	}
	if err := out.PutUint(uint64(n)); err != nil {
		return outOfMemory(err)
	}
	return nil
}

// outOfMemory converts buffer growth failures. Errors from nested
// renders are already *Error and pass through.
func outOfMemory(err error) error {
	if _, ok := err.(*Error); ok {
		return err
	}
	return encodeError(ErrOutOfMemory, "", err)
}

func (i Integer) append(dst []byte) []byte {
	if i.big != nil {
		return literal.AppendBigInt(dst, i.big)
	}
	return literal.AppendInt(dst, i.small)
}
