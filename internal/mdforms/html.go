///////////////////////////////////////////////////////////////////////////////////////////////////
//                                                                                               //
//                                                                                               //
//         oooooo   oooooo     oooo           oooooo   oooooo     oooo         .o8               //
//          `888.    `888.     .8'             `888.    `888.     .8'         "888               //
//           `888.   .8888.   .8' oooo    ooo   `888.   .8888.   .8' .ooooo.   888oooo.          //
//            `888  .8'`888. .8'   `88.  .8'     `888  .8'`888. .8' d88' `88b  d88' `88b         //
//             `888.8'  `888.8'     `88..8'       `888.8'  `888.8'  888ooo888  888   888         //
//              `888'    `888'       `888'         `888'    `888'   888    .o  888   888         //
//               `8'      `8'         .8'           `8'      `8'    `Y8bod8P'  `Y8bod8P'         //
//                                .o..P'                                                         //
//                                `Y8P'                                                          //
//                                                                                               //
//                                                                                               //
//                              Copyright (C) 2024  Wyatt Sheffield                              //
//                                                                                               //
//                 This program is free software: you can redistribute it and/or                 //
//                 modify it under the terms of the GNU General Public License as                //
//                 published by the Free Software Foundation, either version 3 of                //
//                      the License, or (at your option) any later version.                      //
//                                                                                               //
//                This program is distributed in the hope that it will be useful,                //
//                 but WITHOUT ANY WARRANTY; without even the implied warranty of                //
//                 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the                 //
//                          GNU General Public License for more details.                         //
//                                                                                               //
//                   You should have received a copy of the GNU General Public                   //
//                         License along with this program.  If not, see                         //
//                                <https://www.gnu.org/licenses/>.                               //
//                                                                                               //
//                                                                                               //
///////////////////////////////////////////////////////////////////////////////////////////////////


package mdforms

import (
	"bytes"
	"slices"
	"sort"
	"strings"
)

const (
	indentUnit  = "    "
	// longest text kept on the same line as its tags
	inlineLimit = 32
)

var voidElements = []string{
	"area",
	"base",
	"br",
	"col",
	"embed",
	"hr",
	"img",
	"input",
	"link",
	"meta",
	"source",
	"track",
	"wbr",
}

// HTMLElement is a minimal element tree used to build the page around the
// rendered markdown. Text nodes have an empty Tag and are written verbatim.
type HTMLElement struct {
	Tag        string
	Content    string
	Attributes map[string]string
	Children   []*HTMLElement
	indent     bool
}

// NewHTMLElement makes an element from any number of attribute maps. A key given
// more than once has its values joined with a space, so Class("a"), Class("b")
// gives class="a b".
func NewHTMLElement(tag string, attr ...map[string]string) *HTMLElement {
	attributes := make(map[string]string)
	for _, set := range attr {
		for key, value := range set {
			if prev, ok := attributes[key]; ok {
				value = prev + " " + value
			}
			attributes[key] = value
		}
	}
	return &HTMLElement{
		Tag:        tag,
		Attributes: attributes,
		Children:   make([]*HTMLElement, 0),
		indent:     true,
	}
}

// NoIndent writes a text node's lines as they are. Used for pre-rendered
// markup where leading whitespace matters.
func (e *HTMLElement) NoIndent() {
	e.indent = false
}

func (e *HTMLElement) Append(elem *HTMLElement) {
	if elem == nil {
		return
	}
	e.Children = append(e.Children, elem)
}

func Class(cls string) map[string]string {
	return map[string]string{"class": cls}
}

func ID(id string) map[string]string {
	return map[string]string{"id": id}
}

func Href(url string) map[string]string {
	return map[string]string{"href": url}
}

func (e *HTMLElement) AppendNew(tag string, attr ...map[string]string) *HTMLElement {
	elem := NewHTMLElement(tag, attr...)
	e.Children = append(e.Children, elem)
	return elem
}

func (e *HTMLElement) AppendText(text string) *HTMLElement {
	elem := &HTMLElement{
		Content: text,
		indent:  true,
	}
	e.Children = append(e.Children, elem)
	return elem
}

// inline reports whether e is written on a single line: it is empty or holds one
// short single-line text that may be re-indented.
func (e *HTMLElement) inline() bool {
	switch len(e.Children) {
	case 0:
		return true
	case 1:
		c := e.Children[0]
		return c.Tag == "" && c.indent && len(c.Content) < inlineLimit && !strings.Contains(c.Content, "\n")
	}
	return false
}

// attributes are written in key order so pages are reproducible
func (e *HTMLElement) writeAttributes(buf *bytes.Buffer) {
	keys := make([]string, 0, len(e.Attributes))
	for key := range e.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		buf.WriteByte(' ')
		buf.WriteString(key)
		if value := e.Attributes[key]; value != "" {
			buf.WriteString(`="` + value + `"`)
		}
	}
}

func (e *HTMLElement) writeText(buf *bytes.Buffer, depth int) {
	for _, line := range strings.Split(e.Content, "\n") {
		if e.indent {
			buf.WriteString(strings.Repeat(indentUnit, depth))
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
}

func (e *HTMLElement) write(buf *bytes.Buffer, depth int) {
	if e.Tag == "" {
		e.writeText(buf, depth)
		return
	}
	pad := strings.Repeat(indentUnit, depth)
	buf.WriteString(pad + "<" + e.Tag)
	e.writeAttributes(buf)
	buf.WriteByte('>')
	switch {
	case slices.Contains(voidElements, e.Tag):
		buf.WriteByte('\n')
	case e.inline():
		if len(e.Children) == 1 {
			buf.WriteString(strings.TrimSpace(e.Children[0].Content))
		}
		buf.WriteString("</" + e.Tag + ">\n")
	default:
		buf.WriteByte('\n')
		for _, c := range e.Children {
			c.write(buf, depth+1)
		}
		buf.WriteString(pad + "</" + e.Tag + ">\n")
	}
}

// RenderHTML writes root and its children to buf, one element per line and
// indented by depth. Text nodes marked NoIndent are copied line by line unchanged.
func RenderHTML(root *HTMLElement, buf *bytes.Buffer) {
	if root == nil {
		return
	}
	root.write(buf, 0)
}
