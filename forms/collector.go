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
	"fmt"
	"strconv"
)

// Group describes a grouped control whose options come from the list that follows it.
type Group struct {
	Type       string
	Name       string
	ID         string
	LabelFirst bool
	Modern     bool
	Required   bool
	Checked    bool
	// Pending is the markup emitted when the list closes. It must not be empty.
	Pending string
}

// UnsupportedNestingError is returned when a grouped control starts while another
// group is still collecting options.
type UnsupportedNestingError struct {
	Active     string
	ActiveName string
	Nested     string
	NestedName string
}

func (e *UnsupportedNestingError) Error() string {
	return fmt.Sprintf("forms: %s %q started while %s %q is still collecting options",
		e.Nested, e.NestedName, e.Active, e.ActiveName)
}

// Collector captures the list items following a select, checklist or radiolist and
// renders them as options. It is Disarmed until Arm is called and goes back to
// Disarmed when the list closes. A Collector belongs to a single document render.
type Collector struct {
	pending      string
	group        string
	name         string
	// name attribute written on each option; empty for select
	optionName   string
	id           string
	counter      int
	labelFirst   bool
	modern       bool
	requiredAttr string
	checkedAttr  string
}

func NewCollector() *Collector {
	return &Collector{}
}

// Armed reports whether list callbacks are currently being intercepted.
func (c *Collector) Armed() bool {
	return c.pending != ""
}

// Group returns the type of the group being collected, or "" when disarmed.
func (c *Collector) Group() string {
	return c.group
}

func (c *Collector) Name() string {
	return c.name
}

// Arm starts collecting options for g.
func (c *Collector) Arm(g Group) error {
	if c.Armed() {
		return &UnsupportedNestingError{
			Active:     c.group,
			ActiveName: c.name,
			Nested:     g.Type,
			NestedName: g.Name,
		}
	}
	if !IsGroupType(g.Type) {
		return fmt.Errorf("forms: %q is not a grouped control type", g.Type)
	}
	if g.Pending == "" {
		return fmt.Errorf("forms: %s %q armed without closing markup", g.Type, g.Name)
	}
	*c = Collector{
		pending:    g.Pending,
		group:      g.Type,
		name:       g.Name,
		optionName: g.Name,
		id:         g.ID,
		labelFirst: g.LabelFirst,
		modern:     g.Modern && g.Type != TypeSelect,
	}
	// options of a select carry no name of their own
	if g.Type == TypeSelect {
		c.optionName = ""
	}
	if c.modern && g.Type == TypeRadiolist {
		if g.Required {
			c.requiredAttr = " required"
		}
		if g.Checked {
			c.checkedAttr = " checked"
		}
	}
	return nil
}

// CheckNesting returns an UnsupportedNestingError when ctrl is a grouped control and
// the collector is already collecting options for another group.
func (c *Collector) CheckNesting(ctrl Control) error {
	if !c.Armed() || !ctrl.IsGroup() {
		return nil
	}
	return &UnsupportedNestingError{
		Active:     c.group,
		ActiveName: c.name,
		Nested:     ctrl.Type,
		NestedName: ctrl.Name,
	}
}

// Reset disarms the collector and drops any pending markup.
func (c *Collector) Reset() {
	*c = Collector{}
}

// Flush returns the pending closing markup and disarms the collector.
func (c *Collector) Flush() string {
	out := c.pending
	c.Reset()
	return out
}

// OnParagraph leaves paragraph text unwrapped while armed. The boolean is false when
// the host should render the paragraph itself.
func (c *Collector) OnParagraph(text string) (string, bool) {
	if !c.Armed() {
		return "", false
	}
	return text, true
}

// OnListItem renders one option from the rendered text of a list item.
func (c *Collector) OnListItem(text string) (string, bool) {
	if !c.Armed() {
		return "", false
	}
	c.counter++
	return c.renderOption(SplitOption(text)), true
}

// OnListClose appends the pending closing markup to the collected options and
// disarms the collector.
func (c *Collector) OnListClose(body string) (string, bool) {
	if !c.Armed() {
		return "", false
	}
	return body + c.Flush(), true
}

func (c *Collector) renderOption(o Option) string {
	if c.group == TypeSelect {
		return "\n<option" + attr("name", c.optionName) + forceAttr("value", o.Value) + ">" + o.Label + "</option>"
	}
	typ := TypeCheckbox
	if c.group == TypeRadiolist {
		typ = TypeRadio
	}
	if c.modern {
		return c.renderModernOption(typ, o)
	}

	input := "<input" + attr("type", typ) + attr("name", c.optionName) + forceAttr("value", o.Value) + ">"
	if o.Label == "" {
		return input
	}
	open := "\n<label" + attr("class", typ) + ">"
	if c.labelFirst {
		return open + o.Label + input + "</label>"
	}
	return open + input + o.Label + "</label>"
}

func (c *Collector) renderModernOption(typ string, o Option) string {
	var id string
	if c.id != "" {
		id = c.id + "-" + strconv.Itoa(c.counter)
	}
	checked := ""
	if c.counter == 1 {
		checked = c.checkedAttr
	}
	input := "<input" + c.requiredAttr + checked +
		attr("id", id) +
		attr("type", typ) +
		attr("name", c.optionName) +
		forceAttr("value", o.Value) + ">"
	var label string
	if o.Label != "" {
		label = "\n<label" + attr("class", typ) + attr("for", id) + ">" + o.Label + "</label>"
	}
	out := "<li" + attr("class", typ) + ">"
	if c.labelFirst {
		out += label + input
	} else {
		out += input + label
	}
	return out + "</li>"
}
