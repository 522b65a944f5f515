package extensions

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// spacedLinkTransformer turns [text](destination with spaces "title") back into a
// link. Goldmark rejects such links and leaves their brackets as text around the
// already parsed label, so only the destination has to be recovered; the label keeps
// its emphasis, code spans and other inline markup.
type spacedLinkTransformer struct{}

func (t spacedLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	parents := make([]ast.Node, 0)
	seen := make(map[ast.Node]bool)
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Link, *ast.Image, *ast.AutoLink, *ast.CodeSpan, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			p := v.Parent()
			if !seen[p] && bytes.Contains(v.Segment.Value(source), []byte("](")) {
				seen[p] = true
				parents = append(parents, p)
			}
		}
		return ast.WalkContinue, nil
	})
	for _, p := range parents {
		for c := p.FirstChild(); c != nil; {
			txt, ok := c.(*ast.Text)
			if !ok {
				c = c.NextSibling()
				continue
			}
			if resume, linked := wrapSpacedLink(p, txt, source); linked {
				c = resume
				continue
			}
			c = c.NextSibling()
		}
	}
}

func escaped(source []byte, i int) bool {
	return i > 0 && source[i-1] == '\\'
}

// findOpener returns the text node and source offset of the '[' that the ']' at
// closeAt belongs to, searching backwards from closing through its earlier siblings.
func findOpener(closing *ast.Text, closeAt int, source []byte) (*ast.Text, int) {
	var n ast.Node = closing
	stop := closeAt
	for n != nil {
		switch v := n.(type) {
		case *ast.Text:
			for i := stop - 1; i >= v.Segment.Start; i-- {
				if escaped(source, i) {
					continue
				}
				switch source[i] {
				case '[':
					return v, i
				case ']':
					return nil, -1
				}
			}
		case *ast.Link, *ast.Image, *ast.AutoLink:
			// links do not nest
			return nil, -1
		}
		n = n.PreviousSibling()
		if t, ok := n.(*ast.Text); ok {
			stop = t.Segment.Stop
		}
	}
	return nil, -1
}

// wrapSpacedLink links the first spaced destination closed in closing and returns
// the node to continue scanning from.
func wrapSpacedLink(parent ast.Node, closing *ast.Text, source []byte) (ast.Node, bool) {
	seg := closing.Segment
	for q := seg.Start; q < seg.Stop-1; q++ {
		if source[q] != ']' || source[q+1] != '(' || escaped(source, q) {
			continue
		}
		opener, openAt := findOpener(closing, q, source)
		if opener == nil {
			continue
		}
		rest := source[q+2:]
		end := bytes.IndexAny(rest, ")\n")
		if end < 0 || rest[end] != ')' {
			continue
		}
		destination, title, ok := splitDestination(rest[:end])
		if !ok || !bytes.ContainsAny(destination, " \t") {
			continue
		}
		// the closing parenthesis may sit in a later text node
		closeParen := q + 2 + end
		last := ast.Node(closing)
		for last.(*ast.Text).Segment.Stop <= closeParen {
			next, ok := last.NextSibling().(*ast.Text)
			if !ok {
				return nil, false
			}
			last = next
		}
		return spliceLink(parent, opener, openAt, closing, q, last.(*ast.Text), closeParen, destination, title), true
	}
	return nil, false
}

func textPiece(start, stop int, breaksFrom *ast.Text) *ast.Text {
	t := ast.NewTextSegment(text.NewSegment(start, stop))
	if breaksFrom != nil {
		t.SetSoftLineBreak(breaksFrom.SoftLineBreak())
		t.SetHardLineBreak(breaksFrom.HardLineBreak())
	}
	return t
}

func keep(t *ast.Text) bool {
	return t.Segment.Len() > 0 || t.SoftLineBreak() || t.HardLineBreak()
}

// spliceLink replaces the nodes from the '[' at openAt in opener to the ')' at
// closeParen in last with a link whose children are the nodes in between.
func spliceLink(parent ast.Node, opener *ast.Text, openAt int, closing *ast.Text, closeAt int,
	last *ast.Text, closeParen int, destination, title []byte) ast.Node {
	between := make([]ast.Node, 0)
	if opener != closing {
		for c := opener.NextSibling(); c != closing; c = c.NextSibling() {
			between = append(between, c)
		}
	}
	consumed := make([]ast.Node, 0)
	for c := ast.Node(closing); ; c = c.NextSibling() {
		if c != opener {
			consumed = append(consumed, c)
		}
		if c == last {
			break
		}
	}

	link := ast.NewLink()
	link.Destination = destination
	link.Title = title
	if opener == closing {
		if closeAt > openAt+1 {
			link.AppendChild(link, textPiece(openAt+1, closeAt, nil))
		}
	} else {
		if head := textPiece(openAt+1, opener.Segment.Stop, opener); keep(head) {
			link.AppendChild(link, head)
		}
		for _, c := range between {
			link.AppendChild(link, c)
		}
		if closeAt > closing.Segment.Start {
			link.AppendChild(link, textPiece(closing.Segment.Start, closeAt, nil))
		}
	}
	tail := textPiece(closeParen+1, last.Segment.Stop, last)

	parent.InsertAfter(parent, opener, link)
	for _, c := range consumed {
		parent.RemoveChild(parent, c)
	}
	resume := link.NextSibling()
	if keep(tail) {
		parent.InsertAfter(parent, link, tail)
		resume = tail
	}
	// what precedes the '[' stays in front of the link
	if openAt > opener.Segment.Start {
		opener.Segment = text.NewSegment(opener.Segment.Start, openAt)
		opener.SetSoftLineBreak(false)
		opener.SetHardLineBreak(false)
	} else {
		parent.RemoveChild(parent, opener)
	}
	return resume
}

// splitDestination separates `dest "title"` inside the parentheses of a link.
func splitDestination(inner []byte) (destination, title []byte, ok bool) {
	inner = bytes.TrimSpace(inner)
	if len(inner) == 0 || inner[0] == '<' {
		return nil, nil, false
	}
	if inner[len(inner)-1] == '"' {
		open := bytes.LastIndex(inner[:len(inner)-1], []byte(` "`))
		if open >= 0 {
			title = inner[open+2 : len(inner)-1]
			inner = bytes.TrimSpace(inner[:open])
		}
	}
	if len(inner) == 0 || bytes.ContainsRune(inner, '"') {
		return nil, nil, false
	}
	return inner, title, true
}
