package extensions

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"

	"wyweb.site/mdforms/forms"
)

func newMarkdown(opts ...FormsOption) goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(Forms(opts...)))
}

func convert(t *testing.T, md goldmark.Markdown, src string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		t.Fatalf("Convert(%q): %v", src, err)
	}
	return buf.String()
}

func TestFormsExtension(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "regular link",
			in:   "[regular link](url)",
			want: "<p><a href=\"url\">regular link</a></p>\n",
		},
		{
			name: "regular link with spaces",
			in:   "[regular link](url space)",
			want: "<p><a href=\"url%20space\">regular link</a></p>\n",
		},
		{
			name: "bare input",
			in:   "[??](name)",
			want: "<p>\n<input name=\"name\" id=\"name\"></p>\n",
		},
		{
			name: "input with class",
			in:   "[??](name \"cssname\")",
			want: "<p>\n<input name=\"name\" id=\"name\" class=\"cssname\"></p>\n",
		},
		{
			name: "name with spaces",
			in:   "[?? Label Text](Name With Spaces)",
			want: "<p>\n<input name=\"Name With Spaces\" id=\"name-with-spaces\">\n<label for=\"name-with-spaces\">Label Text</label></p>\n",
		},
		{
			name: "label with spaced name and class",
			in:   "[Label text ?label?](name with spaces \"classname1 classname2\")",
			want: "<p>\n<label for=\"name-with-spaces\" class=\"classname1 classname2\">Label text</label></p>\n",
		},
		{
			name: "label without name",
			in:   "[?label? Label text](- \"classname1 classname2\")",
			want: "<p>\n<label class=\"classname1 classname2\">Label text</label></p>\n",
		},
		{
			name: "two radios",
			in:   "[Radio 1 ?radio?](name) [Radio 2 ?radio?](name)",
			want: "<p>\n<label for=\"name\">Radio 1</label>\n<input type=\"radio\" name=\"name\" value=\"checked\" id=\"name\"> " +
				"\n<label for=\"name\">Radio 2</label>\n<input type=\"radio\" name=\"name\" value=\"checked\" id=\"name\"></p>\n",
		},
		{
			name: "select after paragraph",
			in:   "[Label Text ?select?](Name)\n\n- option1\n- option2\n- option3",
			want: "\n<label for=\"name\">Label Text</label>" +
				"\n<select name=\"Name\" id=\"name\">" +
				"\n<option value=\"option1\">option1</option>" +
				"\n<option value=\"option2\">option2</option>" +
				"\n<option value=\"option3\">option3</option>" +
				"\n</select>",
		},
		{
			name: "select loose list",
			in:   "[Label Text ?select?](Name)\n\n* option1\n\n* option2\n\n* option3",
			want: "\n<label for=\"name\">Label Text</label>" +
				"\n<select name=\"Name\" id=\"name\">" +
				"\n<option value=\"option1\">option1</option>" +
				"\n<option value=\"option2\">option2</option>" +
				"\n<option value=\"option3\">option3</option>" +
				"\n</select>",
		},
		{
			name: "select ordered list",
			in:   "[Label Text ?select?](Name)\n\n1. option1\n2. option2\n8. option3",
			want: "\n<label for=\"name\">Label Text</label>" +
				"\n<select name=\"Name\" id=\"name\">" +
				"\n<option value=\"option1\">option1</option>" +
				"\n<option value=\"option2\">option2</option>" +
				"\n<option value=\"option3\">option3</option>" +
				"\n</select>",
		},
		{
			name: "select nested in list item",
			in:   "- [?select? Label Text](Name)\n    - option1\n    - option2",
			want: "<ul>\n<li>" +
				"\n<select name=\"Name\" id=\"name\">" +
				"\n<option value=\"option1\">option1</option>" +
				"\n<option value=\"option2\">option2</option>" +
				"\n</select>" +
				"\n<label for=\"name\">Label Text</label>" +
				"</li>\n</ul>\n",
		},
		{
			name: "select carrier values",
			in:   "[Cellphone Service Provider ?select?](carrier)\n\n- Please select \"\"\n- T-Mobile \"TMO\"\n- Verizon\n- AT&T \"ATT\"",
			want: "\n<label for=\"carrier\">Cellphone Service Provider</label>" +
				"\n<select name=\"carrier\" id=\"carrier\">" +
				"\n<option value=\"\">Please select</option>" +
				"\n<option value=\"TMO\">T-Mobile</option>" +
				"\n<option value=\"Verizon\">Verizon</option>" +
				"\n<option value=\"ATT\">AT&amp;T</option>" +
				"\n</select>",
		},
		{
			name: "classic checklist",
			in:   "[?checklist?](name)\n\n- check1\n- check2",
			want: "\n<label class=\"checkbox\">check1<input type=\"checkbox\" name=\"name\" value=\"check1\"></label>" +
				"\n<label class=\"checkbox\">check2<input type=\"checkbox\" name=\"name\" value=\"check2\"></label>" +
				"\n",
		},
		{
			name: "modern checklist",
			in:   "[?checklist?M](name)\n- check-a1\n- check2\n- check3",
			want: "\n<ul id=\"name\" class=\"checklist\">" +
				"<li class=\"checkbox\">" +
				"\n<label class=\"checkbox\" for=\"name-1\">check-a1</label><input id=\"name-1\" type=\"checkbox\" name=\"name\" value=\"check-a1\"></li>" +
				"<li class=\"checkbox\">" +
				"\n<label class=\"checkbox\" for=\"name-2\">check2</label><input id=\"name-2\" type=\"checkbox\" name=\"name\" value=\"check2\"></li>" +
				"<li class=\"checkbox\">" +
				"\n<label class=\"checkbox\" for=\"name-3\">check3</label><input id=\"name-3\" type=\"checkbox\" name=\"name\" value=\"check3\"></li>" +
				"\n</ul>",
		},
		{
			name: "modern radiolist with label after",
			in:   "[?radiolist?M Radiolist with a label after](name)\n- radio1\n- radio2",
			want: "\n<ul id=\"name\" class=\"radiolist\">" +
				"<li class=\"radio\"><input id=\"name-1\" type=\"radio\" name=\"name\" value=\"radio1\">" +
				"\n<label class=\"radio\" for=\"name-1\">radio1</label></li>" +
				"<li class=\"radio\"><input id=\"name-2\" type=\"radio\" name=\"name\" value=\"radio2\">" +
				"\n<label class=\"radio\" for=\"name-2\">radio2</label></li>" +
				"\n</ul>" +
				"\n<label for=\"name\">Radiolist with a label after</label>",
		},
		{
			name: "group without list is closed at document end",
			in:   "[?select? Pick](a)",
			want: "\n<select name=\"a\" id=\"a\">\n</select>\n<label for=\"a\">Pick</label>",
		},
		{
			name: "list after group resumes normal rendering",
			in:   "[Pick ?select?](a)\n\n- x\n\ntext\n\n- y\n",
			want: "\n<label for=\"a\">Pick</label>\n<select name=\"a\" id=\"a\">" +
				"\n<option value=\"x\">x</option>\n</select>" +
				"<p>text</p>\n<ul>\n<li>y</li>\n</ul>\n",
		},
	}
	md := newMarkdown(WithSpacesInLinks())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := convert(t, md, tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Convert(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestSpacesInLinksDisabled(t *testing.T) {
	got := convert(t, newMarkdown(), "[regular link](url space)")
	if want := "<p>[regular link](url space)</p>\n"; got != want {
		t.Errorf("Convert = %q, want %q", got, want)
	}
}

func TestPassThrough(t *testing.T) {
	src := "# Title\n\nSome *text* with [a link](http://example.com \"t\").\n\n" +
		"- one\n- two\n  - nested\n\n1. first\n2. second\n\n> quoted\n> paragraph\n\n" +
		"    code block\n\nlast paragraph\n"
	want := convert(t, goldmark.New(), src)
	got := convert(t, newMarkdown(WithSpacesInLinks()), src)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output differs from plain goldmark (-want +got):\n%s", diff)
	}
}

func TestNestedGroupIsAnError(t *testing.T) {
	md := newMarkdown()
	var buf bytes.Buffer
	err := md.Convert([]byte("[?select?](outer)\n\n- [?radiolist?](inner)\n- x\n"), &buf)
	var nesting *forms.UnsupportedNestingError
	if !errors.As(err, &nesting) {
		t.Fatalf("Convert error = %v, want UnsupportedNestingError", err)
	}
	if nesting.Active != forms.TypeSelect || nesting.NestedName != "inner" {
		t.Errorf("unexpected error fields: %+v", nesting)
	}
}

func TestNoLeakBetweenDocuments(t *testing.T) {
	md := newMarkdown()
	_ = convert(t, md, "[?checklist?](opts)")
	got := convert(t, md, "- a\n- b\n")
	if want := "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n"; got != want {
		t.Errorf("second document = %q, want %q", got, want)
	}
}

func TestConcurrentConvert(t *testing.T) {
	md := newMarkdown()
	src := "[Pick ?select?](a)\n\n- x\n- y\n"
	want := convert(t, md, src)
	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var buf bytes.Buffer
			if err := md.Convert([]byte(src), &buf); err != nil {
				results[i] = err.Error()
				return
			}
			results[i] = buf.String()
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		if got != want {
			t.Errorf("result %d = %q, want %q", i, got, want)
		}
	}
}

func TestSplitDestination(t *testing.T) {
	testCases := []struct {
		in          string
		dest, title string
		ok          bool
	}{
		{"url space", "url space", "", true},
		{" name with spaces \"a b\" ", "name with spaces", "a b", true},
		{"- \"css\"", "-", "css", true},
		{"<angle>", "", "", false},
		{"", "", "", false},
		{"\"only title\"", "", "", false},
	}
	for _, tc := range testCases {
		dest, title, ok := splitDestination([]byte(tc.in))
		if ok != tc.ok || string(dest) != tc.dest || string(title) != tc.title {
			t.Errorf("splitDestination(%q) = %q, %q, %v; want %q, %q, %v",
				tc.in, dest, title, ok, tc.dest, tc.title, tc.ok)
		}
	}
}

func TestInlineMarkupInOptions(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "link with value",
			in:   "[?checklist?](agree)\n\n- I accept the [terms](/terms.html) \"yes\"\n",
			want: "<label class=\"checkbox\">I accept the <a href=\"/terms.html\">terms</a><input type=\"checkbox\" name=\"agree\" value=\"yes\"></label>",
		},
		{
			name: "image",
			in:   "[?checklist?](pic)\n\n- ![alt](i.png) pic\n",
			want: "<label class=\"checkbox\"><img src=\"i.png\" alt=\"alt\"> pic<input",
		},
		{
			name: "autolink",
			in:   "[Site ?select?](site)\n\n- <https://example.com> \"ex\"\n",
			want: "\n<option value=\"ex\"><a href=\"https://example.com\">https://example.com</a></option>",
		},
		{
			name: "loose item with two paragraphs",
			in:   "[?checklist?](multi)\n\n- first\n\n  second\n",
			want: "<label class=\"checkbox\">first\nsecond<input",
		},
	}
	md := newMarkdown()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := convert(t, md, tc.in); !strings.Contains(got, tc.want) {
				t.Errorf("Convert(%q) = %q, want it to contain %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSpacedLinkLabelMarkup(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "emphasis in label",
			in:   "[**Bold** ?email?](full name)",
			want: "<label for=\"full-name\"><strong>Bold</strong></label>\n<input type=\"email\" name=\"full name\" id=\"full-name\">",
		},
		{
			name: "same label without spaces",
			in:   "[**Bold** ?email?](fullname)",
			want: "<label for=\"fullname\"><strong>Bold</strong></label>\n<input type=\"email\" name=\"fullname\" id=\"fullname\">",
		},
		{
			name: "text around the link",
			in:   "before [*Name* ??](full name) after",
			want: "<p>before \n<label for=\"full-name\"><em>Name</em></label>\n<input name=\"full name\" id=\"full-name\"> after</p>\n",
		},
		{
			name: "regular link with code",
			in:   "see [the `docs`](my docs)",
			want: "<p>see <a href=\"my%20docs\">the <code>docs</code></a></p>\n",
		},
	}
	md := newMarkdown(WithSpacesInLinks())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := convert(t, md, tc.in); !strings.Contains(got, tc.want) {
				t.Errorf("Convert(%q) = %q, want it to contain %q", tc.in, got, tc.want)
			}
		})
	}
}
