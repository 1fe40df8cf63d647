package valerror

import "github.com/Gobd/valerror/openapi"

type config struct {
	code           string
	includeType    bool
	everyOperation bool
	description    string
}

// Option configures a [Normalizer].
type Option func(*config)

// WithCode replaces [DefaultCode] as the envelope's error.code, both in
// responses and in the patched documentation.
func WithCode(code string) Option {
	return func(c *config) {
		c.code = code
	}
}

// WithTypes adds each failure's category to its detail entry as "type".
func WithTypes() Option {
	return func(c *config) {
		c.includeType = true
	}
}

// WithEveryOperation documents the 400 envelope on every operation, not only
// on operations that documented the legacy 422 response.
func WithEveryOperation() Option {
	return func(c *config) {
		c.everyOperation = true
	}
}

// WithDescription sets the description of the documented 400 response.
func WithDescription(desc string) Option {
	return func(c *config) {
		c.description = desc
	}
}

func newConfig(opts []Option) config {
	c := config{
		code:        DefaultCode,
		description: openapi.DefaultErrorDescription,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.code == "" {
		c.code = DefaultCode
	}
	return c
}
