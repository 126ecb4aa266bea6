package tnetstring

const (
	// DefaultMaxLength is the largest payload length accepted by default:
	// nine decimal digits.
	DefaultMaxLength = 999999999

	// DefaultMaxDepth is the default limit on container nesting.
	DefaultMaxDepth = 1000
)

// config holds codec configuration.
type config struct {
	maxLength      int
	maxDepth       int
	maxEncodedSize int
	lenient        bool
}

func newConfig(opts []Option) config {
	cfg := config{
		maxLength: DefaultMaxLength,
		maxDepth:  DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a Codec.
type Option func(*config)

// MaxLength sets the largest payload length, in bytes, that a length
// prefix may declare. Longer prefixes fail with ErrInvalidLengthPrefix on
// decode; longer payloads fail with ErrNotSerializable on encode.
//
// Values of zero or less are ignored. Default: 999999999.
func MaxLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxLength = n
		}
	}
}

// MaxDepth sets how deeply containers may nest. Exceeding it fails with
// ErrNestingTooDeep.
//
// Values of zero or less are ignored. Default: 1000.
func MaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// MaxEncodedSize caps the size of a single encoded value. Growing the
// output past it fails with ErrOutOfMemory.
//
// Default: 0 (no cap).
func MaxEncodedSize(n int) Option {
	return func(c *config) {
		c.maxEncodedSize = n
	}
}

// Lenient makes stream Decoders skip whitespace (space, tab, \n, \r)
// between values. Whitespace inside a value is never skipped. It has no
// effect on in-memory decoding.
//
// Default: false (whitespace before a length prefix is an error).
func Lenient() Option {
	return func(c *config) {
		c.lenient = true
	}
}
