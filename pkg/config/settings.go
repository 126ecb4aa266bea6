package config

import (
	"errors"
	"fmt"

	"github.com/epithet-ssh/tnetstring/pkg/tnetstring"
	"golang.org/x/text/encoding"
)

// DefaultListen is the address the conversion server binds by default.
const DefaultListen = "localhost:8419"

// Settings configures a tnetstring codec and the conversion server.
// Zero fields fall back to the codec defaults.
type Settings struct {
	MaxLength int    `json:"max_length,omitempty"`
	MaxDepth  int    `json:"max_depth,omitempty"`
	Encoding  string `json:"encoding,omitempty"`
	Listen    string `json:"listen,omitempty"`
	Lenient   bool   `json:"lenient,omitempty"`
}

// Validate checks field ranges and that the encoding is known.
func (s Settings) Validate() error {
	var errs []error
	if s.MaxLength < 0 || s.MaxLength > tnetstring.DefaultMaxLength {
		errs = append(errs, fmt.Errorf("max_length must be between 0 and %d", tnetstring.DefaultMaxLength))
	}
	if s.MaxDepth < 0 {
		errs = append(errs, errors.New("max_depth must not be negative"))
	}
	if s.Encoding != "" {
		if _, err := tnetstring.LookupEncoding(s.Encoding); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CodecOptions returns the codec options these settings describe.
func (s Settings) CodecOptions() []tnetstring.Option {
	opts := []tnetstring.Option{
		tnetstring.MaxLength(s.MaxLength),
		tnetstring.MaxDepth(s.MaxDepth),
	}
	if s.Lenient {
		opts = append(opts, tnetstring.Lenient())
	}
	return opts
}

// TextEncoding resolves Encoding. It returns nil when no encoding is set,
// meaning strings are raw bytes.
func (s Settings) TextEncoding() (encoding.Encoding, error) {
	if s.Encoding == "" {
		return nil, nil
	}
	return tnetstring.LookupEncoding(s.Encoding)
}

// Backend returns the Value backend these settings select: TextValues
// when an encoding is set, Values otherwise.
func (s Settings) Backend() (tnetstring.Backend[tnetstring.Value], error) {
	enc, err := s.TextEncoding()
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return tnetstring.Values, nil
	}
	return tnetstring.TextValues(enc), nil
}

// Codec builds a codec from the settings.
func (s Settings) Codec() (*tnetstring.Codec[tnetstring.Value], error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	b, err := s.Backend()
	if err != nil {
		return nil, err
	}
	return tnetstring.NewCodec(b, s.CodecOptions()...), nil
}
