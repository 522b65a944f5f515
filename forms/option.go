package forms

import (
	"regexp"
	"strings"
)

var (
	optionValuePattern = regexp.MustCompile(`^(.*)\s+"([^"]*)"\s*$`)
	tagPattern         = regexp.MustCompile(`<[^>]*>`)
)

// stands in for the quotes of inline tags while the value is matched
const tagQuote = "\x00"

// Option is one list item of a grouped control.
type Option struct {
	Label string
	Value string
}

// SplitOption splits rendered list item text into a visible label and a submitted
// value. A trailing "value" segment sets the value; without one, label and value are
// both the whole text. Text arrives with quotes escaped as &quot;, so the match runs
// on the unescaped text and both parts are escaped again. Quotes inside inline tags
// such as <a href="..."> are left as they are.
func SplitOption(text string) Option {
	protected := tagPattern.ReplaceAllStringFunc(text, func(tag string) string {
		return strings.ReplaceAll(tag, `"`, tagQuote)
	})
	m := optionValuePattern.FindStringSubmatch(UnescapeQuotes(protected))
	if m == nil {
		return Option{Label: text, Value: text}
	}
	return Option{Label: restoreTagQuotes(EscapeQuotes(m[1])), Value: restoreTagQuotes(EscapeQuotes(m[2]))}
}

func restoreTagQuotes(s string) string {
	return strings.ReplaceAll(s, tagQuote, `"`)
}
