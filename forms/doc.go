/*
Package forms turns specially tagged markdown links and lists into HTML form controls.

A link whose text carries a ?type? marker is a control:

	[Email ?email?*](email "wide")      label, then <input required type="email" ...>
	[?checkbox?X Subscribe](subscribe)  <input checked type="checkbox" ...>, then label
	[?submit? Send]()                   <input type="submit" value="Send">

The marker may be followed by the flags * (required), X (checked), H (hidden) and
M (modern list markup), in that order. The link destination is the name ("-" for no
name) and the title is an extra CSS class.

A select, checklist or radiolist link arms a Collector. The list that follows is
captured item by item as options and the group is closed when the list ends:

	[Carrier ?select?](carrier)

	- Please select ""
	- T-Mobile "TMO"
	- Verizon

Parse, Render and Collector know nothing about the markdown host. The extensions
package wires them into goldmark and the bfforms package into blackfriday.
*/
package forms
