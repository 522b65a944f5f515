package mdforms

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"wyweb.site/mdforms/forms"
)

const survey = `---
title: Survey
stylesheets:
  - forms.css
---

# Customer Survey

## Contact

[Name ??*](name)

[Carrier ?select?](carrier)

- Please select ""
- T-Mobile "TMO"

## Notes

` + "```go\nfmt.Println(\"hi\")\n```\n"

func TestConvertFragment(t *testing.T) {
	doc, err := Convert([]byte(survey), DefaultConfig())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	body := string(doc.Body)
	for _, want := range []string{
		"<label for=\"name\" class=\"required\">Name</label>\n<input required name=\"name\" id=\"name\" class=\"required\">",
		"\n<select name=\"carrier\" id=\"carrier\">\n<option value=\"\">Please select</option>\n<option value=\"TMO\">T-Mobile</option>\n</select>",
		"<h1 id=\"customer-survey\">Customer Survey</h1>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "stylesheets:") {
		t.Errorf("front matter leaked into body:\n%s", body)
	}
	if doc.Title != "Survey" {
		t.Errorf("Title = %q, want Survey", doc.Title)
	}
	if doc.TOC != nil || doc.Stylesheets != nil {
		t.Errorf("fragment conversion built page parts")
	}
}

func TestConvertPage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TOC.Enabled = true
	cfg.Page.Stylesheets = []string{"site.css", "forms.css"}
	out, err := ConvertPage([]byte(survey), cfg)
	if err != nil {
		t.Fatalf("ConvertPage: %v", err)
	}
	page := string(out)
	for _, want := range []string{
		"<!DOCTYPE html>\n<html lang=\"en\">",
		"<title>Survey</title>",
		"<h1 id=\"title\">Survey</h1>",
		"<nav class=\"nav-toc\">",
		"<a href=\"#contact\">Contact</a>",
		"<style media=\"screen\">",
		"<style media=\"print\">",
		"<link href=\"site.css\" rel=\"stylesheet\">",
		"\n<select name=\"carrier\" id=\"carrier\">",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
	if n := strings.Count(page, "rel=\"stylesheet\""); n != 2 {
		t.Errorf("page links %d stylesheets, want 2", n)
	}
	if strings.Contains(page, "<h1 id=\"customer-survey\">") {
		t.Errorf("first heading was not moved out of the body")
	}
}

func TestConvertPageTitleFromHeading(t *testing.T) {
	out, err := ConvertPage([]byte("# Sign up\n\n[??](email)\n"), DefaultConfig())
	if err != nil {
		t.Fatalf("ConvertPage: %v", err)
	}
	page := string(out)
	if !strings.Contains(page, "<title>Sign up</title>") {
		t.Errorf("title not taken from heading:\n%s", page)
	}
	if strings.Contains(page, "<style") {
		t.Errorf("highlight css emitted for a document without code:\n%s", page)
	}
}

func TestConvertBlackfriday(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine = EngineBlackfriday
	doc, err := Convert([]byte("[Carrier ?select?](carrier)\n\n- T-Mobile \"TMO\"\n"), cfg)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := "\n<label for=\"carrier\">Carrier</label>\n<select name=\"carrier\" id=\"carrier\">\n<option value=\"TMO\">T-Mobile</option>\n</select>"
	if string(doc.Body) != want {
		t.Errorf("Body = %q, want %q", doc.Body, want)
	}
}

func TestConvertBlackfridayWarnings(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	cfg := DefaultConfig()
	cfg.Engine = EngineBlackfriday
	if _, err := Convert([]byte("[Name ??](full name)\n"), cfg); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "WARN: spaces_in_links is not supported by the blackfriday engine") {
		t.Errorf("missing spaces_in_links warning in %q", got)
	}

	buf.Reset()
	cfg.SpacesInLinks = false
	if _, err := Convert([]byte("[Name ??](name)\n"), cfg); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if got := buf.String(); strings.Contains(got, "spaces_in_links") {
		t.Errorf("unexpected warning %q", got)
	}
}

func TestConvertNestingError(t *testing.T) {
	for _, engine := range []string{EngineGoldmark, EngineBlackfriday} {
		cfg := DefaultConfig()
		cfg.Engine = engine
		_, err := Convert([]byte("[?radiolist?](a)\n\n- [?select?](b)\n"), cfg)
		var nesting *forms.UnsupportedNestingError
		if !errors.As(err, &nesting) {
			t.Errorf("%s: Convert error = %v, want UnsupportedNestingError", engine, err)
		}
	}
}

func TestConvertSpacesInLinks(t *testing.T) {
	doc, err := Convert([]byte("[Full Name ??](Full Name)\n"), DefaultConfig())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(string(doc.Body), "<input name=\"Full Name\" id=\"full-name\">") {
		t.Errorf("unexpected body %q", doc.Body)
	}
}
