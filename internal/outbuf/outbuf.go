// Package outbuf implements the growable output buffer used when
// rendering tnetstrings.
//
// Values are rendered back to front: a payload is written first and its
// length prefix is prepended once the payload size is known. The buffer
// therefore fills from the tail of its allocation toward the front, and
// finalizing it is a single copy of the used region to the start.
package outbuf

import (
	"errors"
	"math"
)

const initialSize = 64

// ErrOutOfMemory is returned when growing the buffer would exceed its
// limit or overflow the address space.
var ErrOutOfMemory = errors.New("outbuf: allocation limit exceeded")

// Buffer accumulates bytes in reverse call order. Bytes passed to
// PutBytes keep their own order; each call lands in front of everything
// written before it.
type Buffer struct {
	buf   []byte
	head  int // index of the first used byte
	limit int
}

// New returns a Buffer with a small initial allocation. A limit of zero
// or less means the buffer may grow until int overflow.
func New(limit int) *Buffer {
	if limit <= 0 {
		limit = math.MaxInt
	}
	return &Buffer{
		buf:   make([]byte, initialSize),
		head:  initialSize,
		limit: limit,
	}
}

// Len returns the number of bytes written so far.
func (b *Buffer) Len() int {
	return len(b.buf) - b.head
}

// Mark returns a position that Since can measure against.
func (b *Buffer) Mark() int {
	return b.Len()
}

// Since returns how many bytes were written after mark was taken.
func (b *Buffer) Since(mark int) int {
	return b.Len() - mark
}

// reserve makes room for n more bytes in front of the used region.
func (b *Buffer) reserve(n int) error {
	if n > b.limit-b.Len() {
		return ErrOutOfMemory
	}
	if b.head < n {
		b.extend(n)
	}
	return nil
}

// extend reallocates so that at least n more bytes fit in front of the
// used region. Capacity doubles until the data fits.
func (b *Buffer) extend(n int) {
	used := b.Len()
	need := used + n

	size := len(b.buf)
	if size == 0 {
		size = initialSize
	}
	for size < need {
		if size > math.MaxInt/2 {
			size = need
			break
		}
		size *= 2
	}

	tmp := make([]byte, size)
	copy(tmp[size-used:], b.buf[b.head:])
	b.buf = tmp
	b.head = size - used
}

// PutByte writes a single byte in front of the used region.
func (b *Buffer) PutByte(c byte) error {
	if err := b.reserve(1); err != nil {
		return err
	}
	b.head--
	b.buf[b.head] = c
	return nil
}

// PutBytes writes p, in order, in front of the used region.
func (b *Buffer) PutBytes(p []byte) error {
	if err := b.reserve(len(p)); err != nil {
		return err
	}
	b.head -= len(p)
	copy(b.buf[b.head:], p)
	return nil
}

// PutString is PutBytes for a string.
func (b *Buffer) PutString(s string) error {
	if err := b.reserve(len(s)); err != nil {
		return err
	}
	b.head -= len(s)
	copy(b.buf[b.head:], s)
	return nil
}

// PutUint writes the decimal digits of n in front of the used region.
// Digits are produced least significant first, which is exactly the
// order a back-to-front buffer needs.
func (b *Buffer) PutUint(n uint64) error {
	for {
		if err := b.PutByte(byte(n%10) + '0'); err != nil {
			return err
		}
		n /= 10
		if n == 0 {
			return nil
		}
	}
}

// AppendTo appends the used region to dst. The buffer stays usable.
func (b *Buffer) AppendTo(dst []byte) []byte {
	return append(dst, b.buf[b.head:]...)
}

// Bytes finalizes the buffer: the used region is moved to the front of
// the allocation and returned. The Buffer must not be used afterwards.
func (b *Buffer) Bytes() []byte {
	used := b.Len()
	copy(b.buf, b.buf[b.head:])
	out := b.buf[:used]
	b.buf = nil
	b.head = 0
	return out
}
