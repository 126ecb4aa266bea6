// Package literal parses and renders the numeric payloads of
// tnetstrings.
//
// Integer literals are an optional sign followed by decimal digits with
// no leading zeros. Short literals are converted with hand-rolled digit
// loops; long ones fall back to math/big. All paths share one grammar
// check, so a literal is accepted or rejected identically whichever path
// converts it.
package literal

import (
	"bytes"
	"errors"
	"math/big"
	"strconv"
)

var (
	// ErrInvalidInteger indicates a payload that is not an integer literal.
	ErrInvalidInteger = errors.New("invalid integer literal")

	// ErrInvalidFloat indicates a payload that is not a float literal.
	ErrInvalidFloat = errors.New("invalid float literal")
)

// Below these lengths (sign included) the digit loop cannot overflow the
// named type.
const (
	smallLen = 10 // fits in an int32
	wordLen  = 19 // fits in an int64
)

// validInteger checks the integer grammar: [+-]?(0|[1-9][0-9]*).
func validInteger(p []byte) bool {
	digits := p
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return false
	}
	if digits[0] == '0' && len(digits) > 1 {
		return false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// ParseInt parses an integer literal. When the value fits in an int64
// it is returned directly and the *big.Int is nil; otherwise the
// *big.Int holds the value.
func ParseInt(p []byte) (int64, *big.Int, error) {
	if !validInteger(p) {
		return 0, nil, ErrInvalidInteger
	}

	switch {
	case len(p) < smallLen:
		return int64(parseSmall(p)), nil, nil
	case len(p) < wordLen:
		return parseWord(p), nil, nil
	default:
		return parseBig(p)
	}
}

func splitSign(p []byte) (neg bool, digits []byte) {
	switch p[0] {
	case '-':
		return true, p[1:]
	case '+':
		return false, p[1:]
	}
	return false, p
}

func parseSmall(p []byte) int32 {
	neg, digits := splitSign(p)
	var v int32
	for _, c := range digits {
		v = v*10 + int32(c-'0')
	}
	if neg {
		return -v
	}
	return v
}

func parseWord(p []byte) int64 {
	neg, digits := splitSign(p)
	var v int64
	for _, c := range digits {
		v = v*10 + int64(c-'0')
	}
	if neg {
		return -v
	}
	return v
}

func parseBig(p []byte) (int64, *big.Int, error) {
	v, ok := new(big.Int).SetString(string(p), 10)
	if !ok {
		return 0, nil, ErrInvalidInteger
	}
	if v.IsInt64() {
		return v.Int64(), nil, nil
	}
	return 0, v, nil
}

// ParseFloat parses a float literal. The whole payload must be consumed.
// Magnitudes outside the float64 range saturate to ±Inf or zero rather
// than failing.
//
// Digit separators ('_') are Go syntax, not part of the literal grammar,
// and are rejected.
func ParseFloat(p []byte) (float64, error) {
	if len(p) == 0 || bytes.IndexByte(p, '_') >= 0 {
		return 0, ErrInvalidFloat
	}
	f, err := strconv.ParseFloat(string(p), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, nil
		}
		return 0, ErrInvalidFloat
	}
	return f, nil
}

// AppendInt appends the decimal form of n.
func AppendInt(dst []byte, n int64) []byte {
	return strconv.AppendInt(dst, n, 10)
}

// AppendBigInt appends the decimal form of n.
func AppendBigInt(dst []byte, n *big.Int) []byte {
	return n.Append(dst, 10)
}

// AppendFloat appends the shortest decimal form of f that parses back to
// the same float64.
// Infinities render as +Inf/-Inf and NaN as NaN; ParseFloat accepts all
// three.
func AppendFloat(dst []byte, f float64) []byte {
	return strconv.AppendFloat(dst, f, 'g', -1, 64)
}
