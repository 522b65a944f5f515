package extensions

import (
	"github.com/yuin/goldmark/ast"

	"wyweb.site/mdforms/forms"
)

// FormControl replaces a link whose text is form syntax.
type FormControl struct {
	ast.BaseInline
	Control forms.Control
}

var KindFormControl = ast.NewNodeKind("FormControl")

func (n *FormControl) Kind() ast.NodeKind {
	return KindFormControl
}

// Dump implements Node.Dump.
func (n *FormControl) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Type":  n.Control.Type,
		"Name":  n.Control.Name,
		"Label": n.Control.Label,
	}, nil)
}

func NewFormControl(c forms.Control) *FormControl {
	return &FormControl{
		Control: c,
	}
}

// firstGroup returns the first grouped control below n, or nil.
func firstGroup(n ast.Node) *FormControl {
	var found *FormControl
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if fc, ok := c.(*FormControl); ok && entering && fc.Control.IsGroup() {
			found = fc
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}
