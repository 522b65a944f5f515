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


package forms

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`\W+`)

var (
	quoteEscaper   = strings.NewReplacer(`"`, "&quot;")
	quoteUnescaper = strings.NewReplacer("&quot;", `"`)
	htmlEscaper    = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
)

// EscapeQuotes replaces double quotes with &quot; so a value is safe inside an attribute.
func EscapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func UnescapeQuotes(s string) string {
	return quoteUnescaper.Replace(s)
}

// EscapeHTML escapes text the way markdown hosts escape inline text before it reaches
// the form renderer.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// IDFromName lower-cases name and collapses every run of non-word characters into a
// single hyphen. An empty name gives an empty id.
func IDFromName(name string) string {
	if name == "" {
		return ""
	}
	return nonWord.ReplaceAllString(strings.ToLower(name), "-")
}

// attr renders ` name="value"`, or nothing when value is empty.
func attr(name, value string) string {
	if value == "" {
		return ""
	}
	return forceAttr(name, value)
}

// forceAttr renders the attribute even when value is empty.
func forceAttr(name, value string) string {
	return " " + name + `="` + EscapeQuotes(value) + `"`
}

func joinClasses(classes ...string) string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}
