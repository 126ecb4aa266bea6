// Package tnetstring implements encoding and decoding of typed netstrings.
//
// A tnetstring is a length-prefixed, self-describing value. The format is:
// <length>:<payload><tag>
//
// Where <length> is the decimal ASCII length of the payload, and <tag> is
// a single byte naming the payload's type.
//
// # Tags
//
//	","  string (raw bytes)
//	"#"  integer, arbitrary precision
//	"^"  float
//	"!"  boolean, payload "true" or "false"
//	"~"  null, empty payload
//	"}"  dict, payload is key,value,key,value,...
//	"]"  list, payload is item,item,...
//
// # Examples
//
//	"0:~"                       // null
//	"5:hello,"                  // the string "hello"
//	"5:12345#"                  // the integer 12345
//	"19:5:12345#4:true!1:0#]"   // [12345, true, 0]
//
// # Basic Usage
//
// Encoding and decoding the package's own Value model:
//
//	data, err := tnetstring.Encode(tnetstring.List{tnetstring.Int(1), tnetstring.String("a")})
//	v, err := tnetstring.Decode(data)
//	v, rest, err := tnetstring.Pop(data)
//
// Plain Go values:
//
//	data, err := tnetstring.Marshal(map[string]any{"hello": []any{1, "x"}})
//	var v any
//	v, err = tnetstring.Unmarshal(data)
//
// Custom configuration and value representations go through a Codec:
//
//	codec := tnetstring.NewCodec(tnetstring.TextValues(unicode.UTF8), tnetstring.MaxDepth(64))
//	v, err := codec.Decode(data)
//
// # Streams
//
// Decoder reads one value at a time from an io.Reader and never reads past
// the end of the value it returns, so a stream may carry other data after
// a tnetstring. Encoder writes values to an io.Writer.
//
// # Security
//
// Length prefixes are checked against MaxLength one digit at a time,
// before anything is allocated. MaxDepth bounds recursion on both decode
// and encode; the latter also stops cyclic Go values.
package tnetstring
