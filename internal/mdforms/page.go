package mdforms

import (
	"bytes"

	"wyweb.site/mdforms/forms"
	"wyweb.site/mdforms/util"
)

// ConvertPage renders text as a complete HTML document.
func ConvertPage(text []byte, cfg *Config) ([]byte, error) {
	doc, err := convert(text, cfg, true)
	if err != nil {
		return nil, err
	}
	return RenderPage(doc, cfg), nil
}

// metaStrings reads a string or list of strings from front matter.
func metaStrings(data map[string]interface{}, key string) []string {
	switch v := data[key].(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func buildHead(doc *Document, cfg *Config) *HTMLElement {
	head := NewHTMLElement("head")
	head.AppendNew("meta", map[string]string{"charset": "utf-8"})
	head.AppendNew("meta", map[string]string{
		"name":    "viewport",
		"content": "width=device-width, initial-scale=1",
	})
	if doc.Title != "" {
		head.AppendNew("title").AppendText(forms.EscapeHTML(doc.Title))
	}
	for _, href := range util.ConcatUnique(cfg.Page.Stylesheets, metaStrings(doc.Meta, "stylesheets")) {
		head.AppendNew("link", map[string]string{"rel": "stylesheet", "href": forms.EscapeQuotes(href)})
	}
	for _, sheet := range doc.Stylesheets {
		head.AppendNew("style", map[string]string{"media": sheet.Media}).AppendText(sheet.CSS).NoIndent()
	}
	return head
}

func buildBody(doc *Document) *HTMLElement {
	body := NewHTMLElement("body")
	body.Append(doc.TOC)
	article := body.AppendNew("article")
	if doc.Title != "" {
		article.AppendNew("header").AppendNew("h1", ID("title")).AppendText(forms.EscapeHTML(doc.Title))
	}
	article.AppendText(string(doc.Body)).NoIndent()
	return body
}

// RenderPage wraps a converted document in an HTML page.
func RenderPage(doc *Document, cfg *Config) []byte {
	attrs := map[string]string{}
	if cfg.Page.Lang != "" {
		attrs["lang"] = cfg.Page.Lang
	}
	root := NewHTMLElement("html", attrs)
	root.Append(buildHead(doc, cfg))
	root.Append(buildBody(doc))

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n")
	RenderHTML(root, &buf)
	return buf.Bytes()
}
