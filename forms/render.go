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

// Render produces the HTML for a single control. Pending markup of a previous group
// is flushed first. For select, checklist and radiolist the collector is armed so
// the following list is rendered as options.
func Render(c Control, col *Collector) (string, error) {
	f := c.resolve()

	style := ""
	if f.hidden {
		style = ` style="display:none;"`
	}
	disabled := ""
	if f.disabled {
		disabled = " disabled"
	}
	required := ""
	if c.Required {
		required = " required"
	}
	checked := ""
	if c.Checked {
		checked = " checked"
	}

	labelFor := f.id
	if (c.Type == TypeChecklist || c.Type == TypeRadiolist) && !c.Modern {
		labelFor = ""
	}
	var label string
	if f.text != "" {
		label = "\n<label" + style + attr("for", labelFor) + attr("class", f.class) + ">" + f.text + "</label>"
	}

	out := col.Flush()
	if c.Type == TypeLabel {
		return out + label, nil
	}

	el := "input"
	typ := c.Type
	switch c.Type {
	case TypeSelect, TypeChecklist, TypeRadiolist:
		g := Group{
			Type:       c.Type,
			Name:       f.name,
			ID:         f.id,
			LabelFirst: c.LabelFirst,
			Modern:     c.Modern,
			Required:   c.Required,
			Checked:    c.Checked,
		}
		var open string
		switch {
		case c.Type == TypeSelect:
			g.Pending = "\n</select>"
			open = "\n<select" + style + disabled + required + checked +
				attr("name", f.name) +
				attr("id", f.id) +
				attr("class", f.class) + ">"
		case c.Modern:
			g.Pending = "\n</ul>"
			open = "\n<ul" + style +
				attr("id", f.id) +
				attr("class", joinClasses(c.Type, f.class)) + ">"
		default:
			g.Pending = "\n"
		}
		if !c.LabelFirst {
			g.Pending += label
		}
		if err := col.Arm(g); err != nil {
			return "", err
		}
		if c.LabelFirst {
			return out + label + open, nil
		}
		return out + open, nil
	case TypeTextarea:
		el = TypeTextarea
		typ = ""
	}

	input := "\n<" + el + style + disabled + required + checked +
		attr("type", typ) +
		attr("name", f.name) +
		attr("value", f.value) +
		attr("id", f.id) +
		attr("class", f.class) + ">"
	if el == TypeTextarea {
		input += "</textarea>"
	}

	if c.LabelFirst {
		return out + label + input, nil
	}
	return out + input + label, nil
}
