package extensions

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"wyweb.site/mdforms/forms"
)

type formTransformer struct {
	// renders link text the way the document will show it
	renderer *FormsHTMLRenderer
}

// Transform replaces every link whose text is form syntax with a FormControl node.
func (t formTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	links := make([]*ast.Link, 0)
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if link, ok := n.(*ast.Link); ok && entering {
			links = append(links, link)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	// replacing while walking would cut the walk short at the replaced node
	for _, link := range links {
		label, err := t.renderer.renderChildren(link, source)
		if err != nil {
			continue
		}
		ctrl, ok := forms.Parse(string(link.Destination), string(link.Title), label)
		if !ok {
			continue
		}
		parent := link.Parent()
		parent.ReplaceChild(parent, link, NewFormControl(ctrl))
	}
}
