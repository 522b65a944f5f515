package extensions

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// FormsOption configures the Forms extension.
type FormsOption func(*formsExtension)

// WithSpacesInLinks lets link destinations contain spaces without angle brackets,
// e.g. [Name ??](Full Name). Off by default since CommonMark does not allow it.
func WithSpacesInLinks() FormsOption {
	return func(e *formsExtension) {
		e.spacesInLinks = true
	}
}

type formsExtension struct {
	spacesInLinks bool
}

func (e *formsExtension) Extend(m goldmark.Markdown) {
	r := newFormsHTMLRenderer(m.Renderer())
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(formTransformer{renderer: r}, priorityFormTransformer),
			util.Prioritized(containerTransformer{}, priorityContainerTransformer),
		),
		parser.WithInlineParsers(
			util.Prioritized(newContainerFlagParser(), priorityContainerFlagParser),
		),
	)
	if e.spacesInLinks {
		m.Parser().AddOptions(
			parser.WithASTTransformers(
				util.Prioritized(spacedLinkTransformer{}, prioritySpacedLinkTransformer),
			),
		)
	}
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(r, priorityFormsHTMLRenderer),
		),
	)
}

// Forms renders [label ?type?](name "class") links and the lists following grouped
// controls as HTML form controls. Blockquotes starting with [!form action method] or
// [!fieldset legend] become <form> and <fieldset> elements.
func Forms(opts ...FormsOption) goldmark.Extender {
	e := &formsExtension{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
