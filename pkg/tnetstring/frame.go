package tnetstring

import "fmt"

// SplitFrame splits the first tnetstring off data without interpreting
// its payload. It returns the tag, the payload and the bytes after the
// tag. The payload aliases data.
//
// A maxLength of zero or less means DefaultMaxLength.
func SplitFrame(data []byte, maxLength int) (tag Tag, payload, rest []byte, err error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return splitFrame(data, maxLength, 0)
}

// splitFrame is SplitFrame for a tnetstring that starts offset bytes into
// the caller's input.
func splitFrame(data []byte, maxLength, offset int) (Tag, []byte, []byte, error) {
	n, colon, err := parseLength(data, maxLength, offset)
	if err != nil {
		return 0, nil, nil, err
	}

	start := colon + 1
	if len(data)-start <= n {
		return 0, nil, nil, decodeError(ErrTruncatedInput, offset,
			fmt.Sprintf("need %d bytes after length prefix, have %d", n+1, len(data)-start))
	}
	end := start + n
	return Tag(data[end]), data[start:end:end], data[end+1:], nil
}

// parseLength reads the decimal length prefix and returns it with the
// index of the ':' that ends it.
//
// The bound is checked as each digit is read, so an absurd prefix fails
// before its value is ever used.
func parseLength(data []byte, maxLength, offset int) (n, colon int, err error) {
	i := 0
	for ; i < len(data); i++ {
		c := data[i]
		if c < '0' || c > '9' {
			break
		}
		if i > 0 && data[0] == '0' {
			return 0, 0, decodeError(ErrInvalidLengthPrefix, offset, "length prefix has leading zero")
		}
		d := int(c - '0')
		if maxLength < d || n > (maxLength-d)/10 {
			return 0, 0, decodeError(ErrInvalidLengthPrefix, offset,
				fmt.Sprintf("length exceeds maximum %d", maxLength))
		}
		n = n*10 + d
	}

	switch {
	case len(data) == 0:
		return 0, 0, decodeError(ErrInvalidLengthPrefix, offset, "empty input")
	case i == 0:
		return 0, 0, decodeError(ErrInvalidLengthPrefix, offset,
			fmt.Sprintf("expected digit, got %q", rune(data[0])))
	case i == len(data):
		return 0, 0, decodeError(ErrInvalidLengthPrefix, offset, "missing ':' after length")
	case data[i] != ':':
		return 0, 0, decodeError(ErrInvalidLengthPrefix, offset,
			fmt.Sprintf("expected ':' after length, got %q", rune(data[i])))
	}
	return n, i, nil
}

// quote renders a payload for an error message, shortened if long.
func quote(p []byte) string {
	const max = 32
	if len(p) > max {
		return fmt.Sprintf("%q...", p[:max])
	}
	return fmt.Sprintf("%q", p)
}
