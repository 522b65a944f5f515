// Package bfforms renders markdown form syntax with blackfriday.
package bfforms

import (
	"bytes"
	"io"
	"strings"

	"github.com/russross/blackfriday/v2"

	"wyweb.site/mdforms/forms"
)

// Renderer is a blackfriday renderer that turns form links into controls and
// collects the list following a grouped control as its options. It keeps the state
// of one document at a time; RenderHeader resets it.
type Renderer struct {
	*blackfriday.HTMLRenderer
	// renders option and link text; kept apart so the document renderer's
	// newline bookkeeping is untouched
	inline     *blackfriday.HTMLRenderer
	collector  *forms.Collector
	suppressed map[*blackfriday.Node]bool
	err        error
}

func NewRenderer(params blackfriday.HTMLRendererParameters) *Renderer {
	return &Renderer{
		HTMLRenderer: blackfriday.NewHTMLRenderer(params),
		inline:       blackfriday.NewHTMLRenderer(params),
		collector:    forms.NewCollector(),
		suppressed:   make(map[*blackfriday.Node]bool),
	}
}

// Err returns the error that stopped the last render, if any.
func (r *Renderer) Err() error {
	return r.err
}

func (r *Renderer) RenderHeader(w io.Writer, ast *blackfriday.Node) {
	r.collector.Reset()
	r.suppressed = make(map[*blackfriday.Node]bool)
	r.err = nil
	r.HTMLRenderer.RenderHeader(w, ast)
}

func (r *Renderer) RenderFooter(w io.Writer, ast *blackfriday.Node) {
	_, _ = io.WriteString(w, r.collector.Flush())
	r.HTMLRenderer.RenderFooter(w, ast)
}

func (r *Renderer) RenderNode(w io.Writer, node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	switch node.Type {
	case blackfriday.Link:
		if entering {
			if ctrl, ok := r.parseLink(node); ok {
				out, err := forms.Render(ctrl, r.collector)
				if err != nil {
					r.err = err
					return blackfriday.Terminate
				}
				_, _ = io.WriteString(w, out)
				return blackfriday.SkipChildren
			}
		}
	case blackfriday.Paragraph:
		if entering && (r.collector.Armed() || r.hasGroup(node)) {
			r.suppressed[node] = true
			return blackfriday.GoToNext
		}
		if !entering && r.suppressed[node] {
			delete(r.suppressed, node)
			return blackfriday.GoToNext
		}
	case blackfriday.List:
		if entering && r.collector.Armed() {
			r.suppressed[node] = true
			return blackfriday.GoToNext
		}
		if !entering {
			if r.suppressed[node] {
				delete(r.suppressed, node)
				if out, ok := r.collector.OnListClose(""); ok {
					_, _ = io.WriteString(w, out)
				}
				return blackfriday.GoToNext
			}
			_, _ = io.WriteString(w, r.collector.Flush())
		}
	case blackfriday.Item:
		if entering && r.collector.Armed() {
			if nested, ok := r.firstGroupControl(node); ok {
				if err := r.collector.CheckNesting(nested); err != nil {
					r.err = err
					return blackfriday.Terminate
				}
			}
			out, _ := r.collector.OnListItem(r.itemText(node))
			_, _ = io.WriteString(w, out)
			// skipped children also skip the exit call for this item
			return blackfriday.SkipChildren
		}
	}
	return r.HTMLRenderer.RenderNode(w, node, entering)
}

func (r *Renderer) parseLink(link *blackfriday.Node) (forms.Control, bool) {
	return forms.Parse(string(link.LinkData.Destination), string(link.LinkData.Title), r.inlineText(link))
}

func (r *Renderer) firstGroupControl(n *blackfriday.Node) (forms.Control, bool) {
	var found forms.Control
	var ok bool
	n.Walk(func(c *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering || c.Type != blackfriday.Link {
			return blackfriday.GoToNext
		}
		if ctrl, match := r.parseLink(c); match && ctrl.IsGroup() {
			found, ok = ctrl, true
			return blackfriday.Terminate
		}
		return blackfriday.SkipChildren
	})
	return found, ok
}

func (r *Renderer) hasGroup(n *blackfriday.Node) bool {
	_, ok := r.firstGroupControl(n)
	return ok
}

// inlineText renders the children of n as blackfriday would inside a paragraph.
func (r *Renderer) inlineText(n *blackfriday.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.Next {
		r.writeInline(&buf, c)
	}
	return buf.String()
}

// writeInline renders n without paragraph tags. Text skips smartypants so a
// trailing "value" is still in plain quotes when the option is split, and form
// links contribute their label.
func (r *Renderer) writeInline(w io.Writer, n *blackfriday.Node) {
	n.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Paragraph:
			return blackfriday.GoToNext
		case blackfriday.Text:
			_, _ = io.WriteString(w, forms.EscapeHTML(string(node.Literal)))
			return blackfriday.GoToNext
		case blackfriday.Link:
			if !entering {
				break
			}
			if ctrl, ok := r.parseLink(node); ok {
				_, _ = io.WriteString(w, ctrl.Label)
				return blackfriday.SkipChildren
			}
		}
		return r.inline.RenderNode(w, node, entering)
	})
}

// itemText is the text of a list item without its nested lists, one line per block.
func (r *Renderer) itemText(item *blackfriday.Node) string {
	parts := make([]string, 0)
	for c := item.FirstChild; c != nil; c = c.Next {
		if c.Type == blackfriday.List {
			continue
		}
		var buf bytes.Buffer
		r.writeInline(&buf, c)
		parts = append(parts, buf.String())
	}
	return strings.Join(parts, "\n")
}
