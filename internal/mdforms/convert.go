package mdforms

import (
	"bytes"
	"fmt"
	"log"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/russross/blackfriday/v2"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	gmText "github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"

	"wyweb.site/mdforms/bfforms"
	wwExt "wyweb.site/mdforms/extensions"
	"wyweb.site/mdforms/forms"
)

// Stylesheet is CSS generated for code highlighting.
type Stylesheet struct {
	Media string
	CSS   string
}

// Document is a converted markdown file. Body holds the rendered markdown with
// form controls, the other fields are only used when building a full page.
type Document struct {
	Title       string
	Meta        map[string]interface{}
	Body        []byte
	TOC         *HTMLElement
	Stylesheets []Stylesheet
}

// NewMarkdown builds the goldmark pipeline for form documents.
func NewMarkdown(cfg *Config) goldmark.Markdown {
	var formOpts []wwExt.FormsOption
	if cfg.SpacesInLinks {
		formOpts = append(formOpts, wwExt.WithSpacesInLinks())
	}
	rendererOpts := []renderer.Option{}
	if cfg.XHTML {
		rendererOpts = append(rendererOpts, html.WithXHTML())
	}
	if cfg.Unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}
	return goldmark.New(
		goldmark.WithExtensions(
			wwExt.Forms(formOpts...),
			meta.Meta,
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(cfg.Highlight.Style),
				highlighting.WithFormatOptions(
					chromahtml.WithLineNumbers(cfg.Highlight.LineNumbers),
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
}

// Convert renders text to an HTML fragment.
func Convert(text []byte, cfg *Config) (*Document, error) {
	return convert(text, cfg, false)
}

func convert(text []byte, cfg *Config, page bool) (*Document, error) {
	if cfg.Engine == EngineBlackfriday {
		return convertBlackfriday(text, cfg, page)
	}
	md := NewMarkdown(cfg)
	context := parser.NewContext()
	reader := gmText.NewReader(text)
	doc := md.Parser().Parse(reader, parser.WithContext(context))

	result := &Document{
		Title: cfg.Page.Title,
		Meta:  meta.Get(context),
	}
	if title, ok := result.Meta["title"].(string); ok && title != "" {
		result.Title = title
	}
	if page {
		if cfg.TOC.Enabled {
			result.TOC = renderTOC(doc, text, cfg.TOC)
		}
		if heading := firstHeading(doc); heading != nil {
			if result.Title == "" {
				result.Title = string(heading.Text(text))
			}
			doc.RemoveChild(doc, heading)
		}
		if hasCode(doc) {
			sheets, err := highlightCSS(cfg.Highlight)
			if err != nil {
				return nil, err
			}
			result.Stylesheets = sheets
		}
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, text, doc); err != nil {
		return nil, err
	}
	result.Body = buf.Bytes()
	return result, nil
}

func convertBlackfriday(text []byte, cfg *Config, page bool) (*Document, error) {
	if page && cfg.TOC.Enabled {
		log.Printf("WARN: table of contents is not supported by the %s engine\n", EngineBlackfriday)
	}
	if cfg.SpacesInLinks {
		log.Printf("WARN: spaces_in_links is not supported by the %s engine\n", EngineBlackfriday)
	}
	flags := blackfriday.CommonHTMLFlags
	if cfg.XHTML {
		flags |= blackfriday.UseXHTML
	}
	body, err := bfforms.Run(text, bfforms.WithParameters(blackfriday.HTMLRendererParameters{Flags: flags}))
	if err != nil {
		return nil, err
	}
	return &Document{
		Title: cfg.Page.Title,
		Body:  body,
	}, nil
}

func firstHeading(doc ast.Node) *ast.Heading {
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			return h
		}
	}
	return nil
}

func hasCode(doc ast.Node) bool {
	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindFencedCodeBlock {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

func highlightCSS(cfg HighlightConfig) ([]Stylesheet, error) {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	var sheets []Stylesheet
	for _, s := range []struct{ name, media string }{
		{cfg.Style, "screen"},
		{cfg.PrintStyle, "print"},
	} {
		if s.name == "" {
			continue
		}
		var css bytes.Buffer
		if err := formatter.WriteCSS(&css, styles.Get(s.name)); err != nil {
			return nil, fmt.Errorf("highlight style %s: %w", s.name, err)
		}
		sheets = append(sheets, Stylesheet{Media: s.media, CSS: css.String()})
	}
	return sheets, nil
}

func tocRecurse(table *toc.Item, parent *HTMLElement) {
	child := parent.AppendNew("li")
	child.AppendNew("a", Href("#"+string(table.ID))).AppendText(forms.EscapeHTML(string(table.Title)))
	if len(table.Items) > 0 {
		ul := child.AppendNew("ul")
		for _, item := range table.Items {
			tocRecurse(item, ul)
		}
	}
}

func renderTOC(doc ast.Node, text []byte, cfg TOCConfig) *HTMLElement {
	tree, err := toc.Inspect(doc, text, toc.MinDepth(cfg.MinDepth), toc.MaxDepth(cfg.MaxDepth), toc.Compact(true))
	if err != nil {
		log.Printf("WARN: could not generate table of contents: %v\n", err)
		return nil
	}
	if len(tree.Items) == 0 {
		return nil
	}
	elem := NewHTMLElement("nav", Class("nav-toc"))
	ul := elem.AppendNew("div", Class("toc")).AppendNew("ul")
	for _, item := range tree.Items {
		tocRecurse(item, ul)
	}
	return elem
}
