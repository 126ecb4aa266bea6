package tnetstring

var (
	valueCodec  = NewCodec(Values)
	nativeCodec = NewCodec(Native)
)

// Encode returns the tnetstring encoding of v using the default options.
//
// Example:
//
//	data, _ := tnetstring.Encode(tnetstring.List{tnetstring.Int(12345), tnetstring.Bool(true), tnetstring.Int(0)})
//	// data is "19:5:12345#4:true!1:0#]"
func Encode(v Value) ([]byte, error) {
	return valueCodec.Encode(v)
}

// Decode decodes data, which must hold exactly one tnetstring.
func Decode(data []byte) (Value, error) {
	return valueCodec.Decode(data)
}

// Pop decodes the tnetstring at the start of data and returns it with the
// remaining bytes.
func Pop(data []byte) (Value, []byte, error) {
	return valueCodec.DecodePrefix(data)
}

// Marshal returns the tnetstring encoding of a plain Go value. See Native
// for the supported types.
func Marshal(v any) ([]byte, error) {
	return nativeCodec.Encode(v)
}

// Unmarshal decodes data, which must hold exactly one tnetstring, into
// plain Go values. See Native for the types produced.
func Unmarshal(data []byte) (any, error) {
	return nativeCodec.Decode(data)
}

// UnmarshalPrefix is Unmarshal for the tnetstring at the start of data; it
// also returns the remaining bytes.
func UnmarshalPrefix(data []byte) (any, []byte, error) {
	return nativeCodec.DecodePrefix(data)
}
