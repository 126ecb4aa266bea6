package tnetstring

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Boundary(t *testing.T) {
	cases := []struct {
		wire string
		want Value
	}{
		{"0:~", Null{}},
		{"0:,", String("")},
		{"4:true!", Bool(true)},
		{"19:5:12345#4:true!1:0#]", List{Int(12345), Bool(true), Int(0)}},
	}
	for _, tc := range cases {
		t.Run(tc.wire, func(t *testing.T) {
			got, err := Decode([]byte(tc.wire))
			require.NoError(t, err)
			requireValue(t, tc.want, got)
		})
	}
}

var formatExamples = []struct {
	wire string
	want Value
}{
	{"0:}", Dict{}},
	{"0:]", List{}},
	{
		"51:5:hello,39:11:12345678901#4:this,4:true!0:~4:\x00\x00\x00\x00,]}",
		Dict{{Key: String("hello"), Value: List{Int(12345678901), String("this"), Bool(true), Null{}, String("\x00\x00\x00\x00")}}},
	},
	{"5:12345#", Int(12345)},
	{"12:this is cool,", String("this is cool")},
	{"0:,", String("")},
	{"0:~", Null{}},
	{"4:true!", Bool(true)},
	{"5:false!", Bool(false)},
	{"10:\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00,", String("\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00")},
	{"24:5:12345#5:67890#5:xxxxx,]", List{Int(12345), Int(67890), String("xxxxx")}},
	{"18:3:0.1^3:0.2^3:0.3^]", List{Float(0.1), Float(0.2), Float(0.3)}},
	{
		"243:238:233:228:223:218:213:208:203:198:193:188:183:178:173:168:163:158:153:148:143:138:133:128:123:118:113:108:103:99:95:91:87:83:79:75:71:67:63:59:55:51:47:43:39:35:31:27:23:19:15:11:hello-there,]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]]",
		nested(String("hello-there"), 51),
	},
}

func TestDecode_FormatExamples(t *testing.T) {
	for _, tc := range formatExamples {
		got, err := Decode([]byte(tc.wire))
		require.NoError(t, err, "%q", tc.wire)
		requireValue(t, tc.want, got)

		got, rest, err := Pop([]byte(tc.wire))
		require.NoError(t, err, "%q", tc.wire)
		assert.Empty(t, rest)
		requireValue(t, tc.want, got)

		wire, err := Encode(tc.want)
		require.NoError(t, err)
		assert.Equal(t, tc.wire, string(wire))
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		kind  error
	}{
		{"empty input", "", ErrInvalidLengthPrefix},
		{"digits only", "5", ErrInvalidLengthPrefix},
		{"no digits", "x:abc,", ErrInvalidLengthPrefix},
		{"colon first", ":abc,", ErrInvalidLengthPrefix},
		{"leading zero", "05:hello,", ErrInvalidLengthPrefix},
		{"double zero", "00:,", ErrInvalidLengthPrefix},
		{"wrong separator", "5;hello,", ErrInvalidLengthPrefix},
		{"space before length", " 5:hello,", ErrInvalidLengthPrefix},
		{"absurd length", "1000000000:x,", ErrInvalidLengthPrefix},
		{"short payload", "5:hell", ErrTruncatedInput},
		{"missing tag", "5:hello", ErrTruncatedInput},
		{"unknown tag", "5:hello?", ErrInvalidTypeTag},
		{"float in integer", "3:1.0#", ErrInvalidIntegerLiteral},
		{"exponent in integer", "3:1e5#", ErrInvalidIntegerLiteral},
		{"integer leading zero", "2:01#", ErrInvalidIntegerLiteral},
		{"empty integer", "0:#", ErrInvalidIntegerLiteral},
		{"bad float", "3:abc^", ErrInvalidFloatLiteral},
		{"empty float", "0:^", ErrInvalidFloatLiteral},
		{"digit separator in float", "6:0x_1p3^", ErrInvalidFloatLiteral},
		{"nested break", "12:9:1:x,2:0x#}]", ErrBrokenListItems},
		{"capitalized bool", "4:True!", ErrInvalidBooleanLiteral},
		{"empty bool", "0:!", ErrInvalidBooleanLiteral},
		{"non-empty null", "1:x~", ErrInvalidNullLiteral},
		{"key without value", "8:5:hello,}", ErrBrokenDictItems},
		{"bad dict value", "8:1:k,1:x!}", ErrBrokenDictItems},
		{"bad list item", "4:1:x!]", ErrBrokenListItems},
		{"truncated list item", "4:5:ab]", ErrBrokenListItems},
		{"trailing data", "5:hello,x", ErrTrailingData},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.input))
			require.ErrorIs(t, err, tc.kind)

			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, "decode", e.Op)
		})
	}
}

func TestDecode_ChildErrorIsWrapped(t *testing.T) {
	_, err := Decode([]byte("4:1:x!]"))
	require.ErrorIs(t, err, ErrBrokenListItems)
	require.ErrorIs(t, err, ErrInvalidBooleanLiteral)

	_, err = Decode([]byte("4:5:ab]"))
	require.ErrorIs(t, err, ErrBrokenListItems)
	require.ErrorIs(t, err, ErrTruncatedInput)
}

func TestDecode_ErrorOffsets(t *testing.T) {
	_, err := Decode([]byte("12:5:hello,1:x!]"))
	require.Error(t, err)

	var outer *Error
	require.True(t, errors.As(err, &outer))
	assert.Equal(t, ErrBrokenListItems, outer.Kind)
	assert.Equal(t, 0, outer.Offset)

	var inner *Error
	require.True(t, errors.As(outer.Err, &inner))
	assert.Equal(t, ErrInvalidBooleanLiteral, inner.Kind)
	assert.Equal(t, 11, inner.Offset)
	assert.Contains(t, err.Error(), "at offset 11")
}

func TestDecode_NestedContainerBreaks(t *testing.T) {
	// A dict holding a list holding a bad bool.
	_, err := Decode([]byte("11:1:k,4:1:x!]}"))
	require.ErrorIs(t, err, ErrBrokenDictItems)
	require.ErrorIs(t, err, ErrBrokenListItems)
	require.ErrorIs(t, err, ErrInvalidBooleanLiteral)

	var outer *Error
	require.True(t, errors.As(err, &outer))
	assert.Equal(t, ErrBrokenDictItems, outer.Kind)
	assert.Equal(t, 0, outer.Offset)

	var inner *Error
	require.True(t, errors.As(outer.Err, &inner))
	assert.Equal(t, ErrBrokenListItems, inner.Kind)
	assert.Equal(t, 7, inner.Offset)

	// A list holding a dict holding a bad integer.
	_, err = Decode([]byte("12:9:1:x,2:0x#}]"))
	require.ErrorIs(t, err, ErrBrokenListItems)
	require.ErrorIs(t, err, ErrBrokenDictItems)
	require.ErrorIs(t, err, ErrInvalidIntegerLiteral)
	require.True(t, errors.As(err, &outer))
	assert.Equal(t, ErrBrokenListItems, outer.Kind)
}

func TestDecode_OversizedLengthRejected(t *testing.T) {
	codec := NewCodec(Values, MaxLength(10))

	_, err := codec.Decode([]byte("10:0123456789,"))
	require.NoError(t, err)

	_, err = codec.Decode([]byte("11:hello world,"))
	require.ErrorIs(t, err, ErrInvalidLengthPrefix)

	// The prefix alone is enough to reject; no payload is needed.
	_, err = Decode([]byte("99999999999999999999999:"))
	require.ErrorIs(t, err, ErrInvalidLengthPrefix)
}

func TestDecode_NonStringKeys(t *testing.T) {
	want := Dict{
		{Key: Int(1), Value: String("one")},
		{Key: Null{}, Value: Bool(false)},
		{Key: List{Int(1), Int(2)}, Value: Float(2.5)},
		{Key: Dict{{Key: Bool(true), Value: Null{}}}, Value: String("nested")},
	}

	wire, err := Encode(want)
	require.NoError(t, err)

	got, err := Decode(wire)
	require.NoError(t, err)
	requireValue(t, want, got)

	v, ok := got.(Dict).Lookup(List{Int(1), Int(2)})
	require.True(t, ok)
	assert.Equal(t, Float(2.5), v)
}

func TestDecode_BigIntegers(t *testing.T) {
	got, err := Decode([]byte("31:-123456789012345678901234567890#"))
	require.NoError(t, err)

	n, ok := new(big.Int).SetString("-123456789012345678901234567890", 10)
	require.True(t, ok)
	requireValue(t, BigInt(n), got)

	_, fits := got.(Integer).Int64()
	assert.False(t, fits)

	got, err = Decode([]byte("20:-9223372036854775808#"))
	require.NoError(t, err)
	i, fits := got.(Integer).Int64()
	require.True(t, fits)
	assert.Equal(t, int64(-9223372036854775808), i)
}

func TestDecode_FloatSpecials(t *testing.T) {
	got, err := Decode([]byte("5:1e400^"))
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(got.(Float)), 1))

	got, err = Decode([]byte("3:NaN^"))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(float64(got.(Float))))
	assert.True(t, Equal(Float(math.NaN()), got))
}

func TestDecode_NestingTooDeep(t *testing.T) {
	codec := NewCodec(Values, MaxDepth(3))

	_, err := codec.Decode([]byte(nestedWire(3)))
	require.NoError(t, err)

	_, err = codec.Decode([]byte(nestedWire(4)))
	require.ErrorIs(t, err, ErrNestingTooDeep)
	require.ErrorIs(t, err, ErrBrokenListItems)

	_, err = Decode([]byte(nestedWire(DefaultMaxDepth)))
	require.NoError(t, err)

	_, err = Decode([]byte(nestedWire(DefaultMaxDepth + 1)))
	require.ErrorIs(t, err, ErrNestingTooDeep)
}

func TestDecodePayload(t *testing.T) {
	got, err := valueCodec.DecodePayload(TagInteger, []byte("42"))
	require.NoError(t, err)
	requireValue(t, Int(42), got)

	got, err = valueCodec.DecodePayload(TagList, []byte("1:a,1:b,"))
	require.NoError(t, err)
	requireValue(t, List{String("a"), String("b")}, got)

	_, err = valueCodec.DecodePayload(Tag('x'), nil)
	require.ErrorIs(t, err, ErrInvalidTypeTag)
}

func TestSplitFrame(t *testing.T) {
	tag, payload, rest, err := SplitFrame([]byte("5:hello,rest"), 0)
	require.NoError(t, err)
	assert.Equal(t, TagString, tag)
	assert.Equal(t, "hello", string(payload))
	assert.Equal(t, "rest", string(rest))

	// The payload is not interpreted.
	tag, payload, _, err = SplitFrame([]byte("3:abc#"), 0)
	require.NoError(t, err)
	assert.Equal(t, TagInteger, tag)
	assert.Equal(t, "abc", string(payload))

	_, _, _, err = SplitFrame([]byte("6:hello,"), 0)
	require.ErrorIs(t, err, ErrTruncatedInput)

	_, _, _, err = SplitFrame([]byte("6:hello,"), 5)
	require.ErrorIs(t, err, ErrInvalidLengthPrefix)
}

func TestPop_LeavesRemainder(t *testing.T) {
	v, rest, err := Pop([]byte("5:hello,4:true!OK"))
	require.NoError(t, err)
	requireValue(t, String("hello"), v)

	v, rest, err = Pop(rest)
	require.NoError(t, err)
	requireValue(t, Bool(true), v)
	assert.Equal(t, "OK", string(rest))
}

func TestDecode_CopiesStrings(t *testing.T) {
	data := []byte("5:hello,")
	v, err := Decode(data)
	require.NoError(t, err)

	copy(data[2:], "HELLO")
	requireValue(t, String("hello"), v)
}
