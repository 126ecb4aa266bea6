package tnetstring

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// byteScanner is what a Decoder reads from: single bytes for the length
// prefix, bulk reads for the payload.
type byteScanner interface {
	io.Reader
	io.ByteReader
}

// oneByteReader adds ReadByte to a reader without buffering, so nothing
// past the current value is consumed from the underlying stream.
type oneByteReader struct {
	r io.Reader
	b [1]byte
}

func (o *oneByteReader) Read(p []byte) (int, error) {
	return o.r.Read(p)
}

func (o *oneByteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(o.r, o.b[:]); err != nil {
		return 0, err
	}
	return o.b[0], nil
}

// Decoder reads tnetstrings from a stream.
//
// The decoder never reads past the end of the value it returns. Readers
// that implement io.ByteReader (*bufio.Reader, *bytes.Reader) are used
// directly; any other reader is read one byte at a time while the length
// prefix is parsed. For network streams, wrap the reader in bufio.Reader:
//
//	dec := codec.NewDecoder(bufio.NewReader(conn))
//
// A Decoder is not safe for concurrent use.
type Decoder[V any] struct {
	c      *Codec[V]
	r      byteScanner
	offset int
	buf    bytes.Buffer
}

// NewDecoder returns a Decoder that reads from r.
func (c *Codec[V]) NewDecoder(r io.Reader) *Decoder[V] {
	br, ok := r.(byteScanner)
	if !ok {
		br = &oneByteReader{r: r}
	}
	return &Decoder[V]{c: c, r: br}
}

// Offset returns the number of bytes consumed from the stream so far.
func (d *Decoder[V]) Offset() int {
	return d.offset
}

// Decode reads the next tnetstring and decodes it.
//
// Returns io.EOF when the stream ends cleanly before a value starts.
// The payload buffer grows with the bytes actually received, so a large
// declared length costs nothing until its data arrives.
func (d *Decoder[V]) Decode() (V, error) {
	var zero V

	start, n, err := d.readLength()
	if err != nil {
		return zero, err
	}
	payloadOffset := d.offset

	d.buf.Reset()
	copied, err := io.CopyN(&d.buf, d.r, int64(n)+1)
	d.offset += int(copied)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return zero, decodeError(ErrTruncatedInput, start,
				fmt.Sprintf("need %d bytes after length prefix, have %d", n+1, copied))
		}
		return zero, &Error{Op: "decode", Kind: ErrTruncatedInput, Offset: start,
			Reason: fmt.Sprintf("read failed after %d of %d bytes", copied, n+1), Err: err}
	}

	frame := d.buf.Bytes()
	return d.c.parsePayload(Tag(frame[n]), frame[:n], start, payloadOffset, 0)
}

// readLength reads the length prefix and the ':' after it. It returns the
// offset at which the tnetstring starts and the declared payload length.
//
// In lenient mode, whitespace before the first digit is skipped. Each
// byte is validated as soon as it is read, so a bad prefix leaves the
// bytes after the offending one unread.
func (d *Decoder[V]) readLength() (start, n int, err error) {
	digits := 0
	first := byte(0)

	for {
		start = d.offset
		b, err := d.readByte()
		if err != nil {
			if digits == 0 && errors.Is(err, io.EOF) {
				return 0, 0, io.EOF
			}
			return 0, 0, d.prefixError(err)
		}
		if digits == 0 && d.c.cfg.lenient && isWhitespace(b) {
			continue
		}

		if b == ':' {
			if digits == 0 {
				return 0, 0, decodeError(ErrInvalidLengthPrefix, start, "length prefix is empty")
			}
			return start - digits, n, nil
		}
		if b < '0' || b > '9' {
			if isWhitespace(b) {
				return 0, 0, decodeError(ErrInvalidLengthPrefix, start,
					"unexpected whitespace in length prefix (use tnetstring.Lenient() for whitespace tolerance)")
			}
			if digits == 0 {
				return 0, 0, decodeError(ErrInvalidLengthPrefix, start, fmt.Sprintf("expected digit, got %q", rune(b)))
			}
			return 0, 0, decodeError(ErrInvalidLengthPrefix, start-digits,
				fmt.Sprintf("expected ':' after length, got %q", rune(b)))
		}

		if digits == 0 {
			first = b
		} else if first == '0' {
			return 0, 0, decodeError(ErrInvalidLengthPrefix, start-digits, "length prefix has leading zero")
		}

		dig := int(b - '0')
		if d.c.cfg.maxLength < dig || n > (d.c.cfg.maxLength-dig)/10 {
			return 0, 0, decodeError(ErrInvalidLengthPrefix, start-digits,
				fmt.Sprintf("length exceeds maximum %d", d.c.cfg.maxLength))
		}
		n = n*10 + dig
		digits++
	}
}

func (d *Decoder[V]) prefixError(err error) error {
	reason := "read failed"
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
		reason = "missing ':' after length"
	}
	return &Error{Op: "decode", Kind: ErrInvalidLengthPrefix, Offset: d.offset, Reason: reason, Err: err}
}

// readByte reads a single byte and tracks position for error reporting.
func (d *Decoder[V]) readByte() (byte, error) {
	b, err := d.r.ReadByte()
	if err == nil {
		d.offset++
	}
	return b, err
}

// isWhitespace returns true if b is a whitespace character.
// Whitespace is defined as: space, tab, \n, \r
func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// Encoder writes tnetstrings to a stream.
//
// Each value is written with a single Write call. The encoder does not
// buffer; wrap the writer in bufio.Writer if batching is desired.
//
// An Encoder is not safe for concurrent use.
type Encoder[V any] struct {
	c   *Codec[V]
	w   io.Writer
	buf []byte
}

// NewEncoder returns an Encoder that writes to w.
func (c *Codec[V]) NewEncoder(w io.Writer) *Encoder[V] {
	return &Encoder[V]{c: c, w: w}
}

// Encode writes the encoding of v.
func (e *Encoder[V]) Encode(v V) error {
	buf, err := e.c.AppendEncode(e.buf[:0], v)
	if err != nil {
		return err
	}
	e.buf = buf
	_, err = e.w.Write(buf)
	return err
}
