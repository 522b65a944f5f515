package extensions

import (
	"sync"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"wyweb.site/mdforms/forms"
)

// renderState is the per-document state of a FormsHTMLRenderer.
type renderState struct {
	collector *forms.Collector
	// blocks whose opening tag was not written, so their closing tag must not be either
	suppressed map[ast.Node]bool
	// set while a list item is rendered as option text
	capturing bool
}

func newRenderState() *renderState {
	return &renderState{
		collector:  forms.NewCollector(),
		suppressed: make(map[ast.Node]bool),
	}
}

type funcTable map[ast.NodeKind]renderer.NodeRendererFunc

func (t funcTable) Register(kind ast.NodeKind, f renderer.NodeRendererFunc) {
	t[kind] = f
}

// FormsHTMLRenderer renders FormControl nodes and intercepts paragraphs and lists
// while a select, checklist or radiolist is collecting options. Everything else is
// handed to the standard html renderer.
type FormsHTMLRenderer struct {
	html.Config
	base     renderer.NodeRenderer
	fallback funcTable
	// fallback overlaid with our own funcs, used when there is no host renderer
	local funcTable
	// the renderer of the goldmark.Markdown we are registered with, if any
	host renderer.Renderer
	// one renderState per document being rendered
	sessions sync.Map
}

// NewFormsHTMLRenderer returns a new FormsHTMLRenderer.
func NewFormsHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	return newFormsHTMLRenderer(nil, opts...)
}

func newFormsHTMLRenderer(host renderer.Renderer, opts ...html.Option) *FormsHTMLRenderer {
	r := &FormsHTMLRenderer{
		Config:   html.NewConfig(),
		base:     html.NewRenderer(opts...),
		fallback: make(funcTable),
		local:    make(funcTable),
		host:     host,
	}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	r.base.RegisterFuncs(r.fallback)
	for kind, f := range r.fallback {
		r.local[kind] = f
	}
	r.RegisterFuncs(r.local)
	return r
}

// SetOption implements renderer.SetOptioner so the standard renderer we fall back on
// sees the same options (XHTML, unsafe, ...) as the rest of the pipeline.
func (r *FormsHTMLRenderer) SetOption(name renderer.OptionName, value interface{}) {
	r.Config.SetOption(name, value)
	if so, ok := r.base.(renderer.SetOptioner); ok {
		so.SetOption(name, value)
	}
}

// RegisterFuncs registers the renderer with the Goldmark renderer.
func (r *FormsHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindFormControl, r.renderFormControl)
	reg.Register(KindFormContainer, r.renderFormContainer)
	reg.Register(ast.KindDocument, r.renderDocument)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindTextBlock, r.renderParagraph)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
}

func rootOf(n ast.Node) ast.Node {
	for n.Parent() != nil {
		n = n.Parent()
	}
	return n
}

func (r *FormsHTMLRenderer) state(n ast.Node) *renderState {
	root := rootOf(n)
	if s, ok := r.sessions.Load(root); ok {
		return s.(*renderState)
	}
	s, _ := r.sessions.LoadOrStore(root, newRenderState())
	return s.(*renderState)
}

func (r *FormsHTMLRenderer) abort(n ast.Node, err error) (ast.WalkStatus, error) {
	r.sessions.Delete(rootOf(n))
	return ast.WalkStop, err
}

func (r *FormsHTMLRenderer) passThrough(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if f := r.fallback[node.Kind()]; f != nil {
		return f(w, source, node, entering)
	}
	return ast.WalkContinue, nil
}

func (r *FormsHTMLRenderer) renderDocument(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.sessions.Store(node, newRenderState())
		return r.passThrough(w, source, node, entering)
	}
	// a group whose list never arrived is closed at the end of the document
	_, _ = w.WriteString(r.state(node).collector.Flush())
	r.sessions.Delete(node)
	return r.passThrough(w, source, node, entering)
}

func (r *FormsHTMLRenderer) renderFormControl(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n, ok := node.(*FormControl)
	if !ok || !entering {
		return ast.WalkContinue, nil
	}
	s := r.state(node)
	if s.capturing {
		_, _ = w.WriteString(n.Control.Label)
		return ast.WalkSkipChildren, nil
	}
	out, err := forms.Render(n.Control, s.collector)
	if err != nil {
		return r.abort(node, err)
	}
	_, _ = w.WriteString(out)
	return ast.WalkSkipChildren, nil
}

// renderFormContainer closes any open group at both ends of the container so the
// group's markup stays inside it.
func (r *FormsHTMLRenderer) renderFormContainer(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n, ok := node.(*FormContainer)
	if !ok {
		return ast.WalkContinue, nil
	}
	if out := r.state(node).collector.Flush(); out != "" {
		_, _ = w.WriteString(out)
		_ = w.WriteByte('\n')
	}
	if entering {
		_, _ = w.WriteString(n.Open())
	} else {
		_, _ = w.WriteString(n.Close())
	}
	return ast.WalkContinue, nil
}

// renderParagraph drops the paragraph wrapper while options are being collected and
// around the link that starts a group.
func (r *FormsHTMLRenderer) renderParagraph(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	s := r.state(node)
	if entering {
		if s.collector.Armed() || firstGroup(node) != nil {
			s.suppressed[node] = true
			return ast.WalkContinue, nil
		}
	} else if s.suppressed[node] {
		delete(s.suppressed, node)
		return ast.WalkContinue, nil
	}
	return r.passThrough(w, source, node, entering)
}

func (r *FormsHTMLRenderer) renderList(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	s := r.state(node)
	if entering {
		if s.collector.Armed() {
			s.suppressed[node] = true
			return ast.WalkContinue, nil
		}
		return r.passThrough(w, source, node, entering)
	}
	if s.suppressed[node] {
		delete(s.suppressed, node)
		if out, ok := s.collector.OnListClose(""); ok {
			_, _ = w.WriteString(out)
		}
		return ast.WalkContinue, nil
	}
	// the list was opened before the group started; close the group, then the list
	_, _ = w.WriteString(s.collector.Flush())
	return r.passThrough(w, source, node, entering)
}

func (r *FormsHTMLRenderer) renderListItem(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	s := r.state(node)
	if !entering {
		if s.suppressed[node] {
			delete(s.suppressed, node)
			return ast.WalkContinue, nil
		}
		return r.passThrough(w, source, node, entering)
	}
	if !s.collector.Armed() {
		return r.passThrough(w, source, node, entering)
	}
	if nested := firstGroup(node); nested != nil {
		if err := s.collector.CheckNesting(nested.Control); err != nil {
			return r.abort(node, err)
		}
	}
	s.capturing = true
	text, err := r.renderChildren(node, source)
	s.capturing = false
	if err != nil {
		return r.abort(node, err)
	}
	out, _ := s.collector.OnListItem(text)
	_, _ = w.WriteString(out)
	s.suppressed[node] = true
	return ast.WalkSkipChildren, nil
}
