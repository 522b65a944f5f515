package bfforms

import (
	"fmt"

	"github.com/russross/blackfriday/v2"
)

type config struct {
	params     blackfriday.HTMLRendererParameters
	extensions blackfriday.Extensions
}

// Option configures Run.
type Option func(*config)

// WithParameters replaces the HTML renderer parameters. The default is
// blackfriday.CommonHTMLFlags, as used by blackfriday.Run.
func WithParameters(params blackfriday.HTMLRendererParameters) Option {
	return func(c *config) {
		c.params = params
	}
}

// WithExtensions replaces the parser extensions. The default is
// blackfriday.CommonExtensions.
func WithExtensions(ext blackfriday.Extensions) Option {
	return func(c *config) {
		c.extensions = ext
	}
}

// Run renders markdown input to HTML with form controls.
func Run(input []byte, opts ...Option) ([]byte, error) {
	c := config{
		params:     blackfriday.HTMLRendererParameters{Flags: blackfriday.CommonHTMLFlags},
		extensions: blackfriday.CommonExtensions,
	}
	for _, opt := range opts {
		opt(&c)
	}
	r := NewRenderer(c.params)
	out := blackfriday.Run(input,
		blackfriday.WithRenderer(r),
		blackfriday.WithExtensions(c.extensions),
	)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("bfforms: %w", err)
	}
	return out, nil
}
