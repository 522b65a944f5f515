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

import "regexp"

// Control types with special handling. Any other type token is emitted verbatim as
// the input's type attribute.
const (
	TypeText      = ""
	TypeSelect    = "select"
	TypeChecklist = "checklist"
	TypeRadiolist = "radiolist"
	TypeTextarea  = "textarea"
	TypeLabel     = "label"
	TypeSubmit    = "submit"
	TypeButton    = "button"
	TypeHidden    = "hidden"
	TypeCheckbox  = "checkbox"
	TypeRadio     = "radio"
)

// NoName is the link destination that suppresses the name and id attributes.
const NoName = "-"

var (
	labelFirstPattern = regexp.MustCompile(`^(.*?)\s*\?([^?\s]*)\?(\*?)(X?)(H?)(M?)$`)
	labelAfterPattern = regexp.MustCompile(`^\?([^?\s]*)\?(\*?)(X?)(H?)(M?)\s*(.*)$`)
)

// Control is a form control decoded from the text, destination and title of a
// markdown link.
type Control struct {
	Label      string
	Type       string
	Required   bool
	Checked    bool
	Hidden     bool
	Modern     bool
	Name       string
	Class      string
	LabelFirst bool
}

// IsGroup reports whether the control collects the list that follows it.
func (c Control) IsGroup() bool {
	return IsGroupType(c.Type)
}

func IsGroupType(t string) bool {
	switch t {
	case TypeSelect, TypeChecklist, TypeRadiolist:
		return true
	}
	return false
}

// Parse decodes link text of the form "label ?type?flags" or "?type?flags label".
// The second return value is false when text is not form syntax and the link should
// be rendered as an ordinary link.
func Parse(destination, title, text string) (Control, bool) {
	if m := labelFirstPattern.FindStringSubmatch(text); m != nil {
		return newControl(m[1], m[2], m[3], m[4], m[5], m[6], destination, title, true), true
	}
	if m := labelAfterPattern.FindStringSubmatch(text); m != nil {
		return newControl(m[6], m[1], m[2], m[3], m[4], m[5], destination, title, false), true
	}
	return Control{}, false
}

func newControl(label, typ, required, checked, hidden, modern, name, class string, labelFirst bool) Control {
	return Control{
		Label:      label,
		Type:       typ,
		Required:   required != "",
		Checked:    checked != "",
		Hidden:     hidden != "",
		Modern:     modern != "",
		Name:       name,
		Class:      class,
		LabelFirst: labelFirst,
	}
}

// field holds the attribute values of a control after the type-specific rules
// have been applied.
type field struct {
	text     string
	value    string
	name     string
	id       string
	class    string
	hidden   bool
	disabled bool
}

func (c Control) resolve() field {
	f := field{
		text:   c.Label,
		name:   c.Name,
		class:  joinClasses(requiredClass(c.Required), c.Class),
		hidden: c.Hidden,
	}
	switch c.Type {
	case TypeSubmit, TypeButton, TypeHidden:
		f.value = f.text
		f.text = ""
	case TypeCheckbox, TypeRadio:
		f.value = "checked"
	}
	switch c.Type {
	case TypeSubmit, TypeButton, TypeLabel:
	default:
		if f.name == "" {
			f.name = f.text
		}
	}
	// hidden implies disabled; submit is never hidden or disabled
	f.disabled = f.hidden
	if c.Type == TypeSubmit {
		f.hidden = false
		f.disabled = false
	}
	if f.name == NoName {
		f.name = ""
	}
	f.id = IDFromName(f.name)
	return f
}

func requiredClass(required bool) string {
	if required {
		return "required"
	}
	return ""
}
