package gomap

// DefaultMaxDepth bounds the nesting of objects in one conversion.
const DefaultMaxDepth = 64

// Option configures a Mapper.
type Option func(*config)

type config struct {
	maxDepth         int
	skipNullOnEncode bool
	workers          int
}

func newConfig(opts ...Option) config {
	cfg := config{maxDepth: DefaultMaxDepth, workers: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// MaxDepth sets how deeply objects may nest. Deeper values are reported as
// CoercionFailed field errors instead of being converted.
func MaxDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// SkipNullOnEncode omits fields whose value encodes to null.
func SkipNullOnEncode(v bool) Option {
	return func(c *config) { c.skipNullOnEncode = v }
}

// Workers sets how many elements DecodeAll and EncodeAll convert at once.
func Workers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}
