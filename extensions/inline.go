package extensions

import (
	"bufio"
	"bytes"
	"io"

	"github.com/yuin/goldmark/ast"
)

// renderChildren renders the children of n, minus nested lists, exactly as the
// document renderer would. Block children are separated by a newline. Option labels
// and form text therefore keep links, images and extension inlines.
func (r *FormsHTMLRenderer) renderChildren(n ast.Node, source []byte) (string, error) {
	var buf bytes.Buffer
	blocks := 0
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == ast.KindList {
			continue
		}
		if c.Type() == ast.TypeBlock {
			if blocks > 0 {
				buf.WriteByte('\n')
			}
			blocks++
		}
		if err := r.render(&buf, source, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (r *FormsHTMLRenderer) render(w io.Writer, source []byte, n ast.Node) error {
	if r.host != nil {
		return r.host.Render(w, source, n)
	}
	bw := bufio.NewWriter(w)
	err := ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if f := r.local[c.Kind()]; f != nil {
			return f(bw, source, c, entering)
		}
		return ast.WalkContinue, nil
	})
	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	return err
}
