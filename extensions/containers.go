package extensions

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"wyweb.site/mdforms/forms"
)

const (
	ContainerForm     = "form"
	ContainerFieldset = "fieldset"
)

var flagOpen = []byte("[!")

// containerFlagParser reads the [!form action method] or [!fieldset legend]
// marker at the very start of a blockquote.
type containerFlagParser struct{}

func (p *containerFlagParser) Trigger() []byte {
	return []byte{'['}
}

func newContainerFlagParser() *containerFlagParser {
	return &containerFlagParser{}
}

type containerFlagNode struct {
	ast.BaseInline
	name string
	rest string
}

var KindContainerFlag = ast.NewNodeKind("ContainerFlag")

func (n *containerFlagNode) Kind() ast.NodeKind {
	return KindContainerFlag
}

// Dump implements Node.Dump.
func (n *containerFlagNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": n.name, "Rest": n.rest}, nil)
}

func (p *containerFlagParser) Parse(parent ast.Node, block text.Reader, _ parser.Context) ast.Node {
	if parent.Kind() != ast.KindParagraph || parent.ChildCount() != 0 || parent.PreviousSibling() != nil {
		return nil
	}
	if _, ok := parent.Parent().(*ast.Blockquote); !ok {
		return nil
	}
	line, seg := block.PeekLine()
	if !bytes.HasPrefix(line, flagOpen) {
		return nil
	}
	stop := bytes.IndexByte(line, ']')
	if stop < 0 {
		return nil
	}
	name, rest, _ := strings.Cut(strings.TrimSpace(string(line[len(flagOpen):stop])), " ")
	name = strings.ToLower(name)
	if name != ContainerForm && name != ContainerFieldset {
		return nil
	}
	out := &containerFlagNode{name: name, rest: strings.TrimSpace(rest)}
	out.AppendChild(out, ast.NewTextSegment(text.NewSegment(seg.Start, seg.Start+stop+1)))
	block.Advance(stop + 1)
	return out
}

// FormContainer is a blockquote turned into a <form> or <fieldset>.
type FormContainer struct {
	ast.BaseBlock
	Tag    string
	Legend string
	Action string
	Method string
}

var KindFormContainer = ast.NewNodeKind("FormContainer")

func (n *FormContainer) Kind() ast.NodeKind {
	return KindFormContainer
}

// Dump implements Node.Dump.
func (n *FormContainer) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Tag":    n.Tag,
		"Legend": n.Legend,
		"Action": n.Action,
		"Method": n.Method,
	}, nil)
}

func newFormContainer(flag *containerFlagNode) *FormContainer {
	c := &FormContainer{Tag: flag.name}
	switch flag.name {
	case ContainerFieldset:
		c.Legend = flag.rest
	case ContainerForm:
		args := strings.Fields(flag.rest)
		if len(args) > 0 {
			c.Action = args[0]
		}
		if len(args) > 1 {
			c.Method = strings.ToLower(args[1])
		}
	}
	return c
}

func quoteAttr(name, value string) string {
	if value == "" {
		return ""
	}
	return " " + name + `="` + forms.EscapeQuotes(value) + `"`
}

// Open returns the opening markup of the container.
func (n *FormContainer) Open() string {
	if n.Tag == ContainerFieldset {
		out := "<fieldset>\n"
		if n.Legend != "" {
			out += "<legend>" + forms.EscapeHTML(n.Legend) + "</legend>\n"
		}
		return out
	}
	return "<form" + quoteAttr("action", n.Action) + quoteAttr("method", n.Method) + ">\n"
}

func (n *FormContainer) Close() string {
	return "</" + n.Tag + ">\n"
}

type containerTransformer struct{}

// Transform replaces flagged blockquotes with FormContainer nodes.
func (t containerTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	quotes := make([]*ast.Blockquote, 0)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if bq, ok := n.(*ast.Blockquote); ok && entering {
			if para, ok := bq.FirstChild().(*ast.Paragraph); ok {
				if _, ok := para.FirstChild().(*containerFlagNode); ok {
					quotes = append(quotes, bq)
				}
			}
		}
		return ast.WalkContinue, nil
	})
	for _, bq := range quotes {
		para := bq.FirstChild()
		flag := para.FirstChild().(*containerFlagNode)
		container := newFormContainer(flag)
		para.RemoveChild(para, flag)
		// the line break left over from the marker line
		for c := para.FirstChild(); c != nil; c = para.FirstChild() {
			if txt, ok := c.(*ast.Text); !ok || txt.Segment.Len() != 0 {
				break
			}
			para.RemoveChild(para, c)
		}
		if para.ChildCount() == 0 {
			bq.RemoveChild(bq, para)
		}
		for c := bq.FirstChild(); c != nil; {
			next := c.NextSibling()
			container.AppendChild(container, c)
			c = next
		}
		parent := bq.Parent()
		parent.ReplaceChild(parent, bq, container)
	}
}
