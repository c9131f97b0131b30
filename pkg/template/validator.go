// validator.go — Non-fatal sanity checks for loaded documents.
package template

import "fmt"

// Validate reports warnings for document oddities: unknown text-slot
// names, unknown sidebar item kinds, unrecognized avatar shapes.
// Warnings never fail a render — a malformed template still draws.
func Validate(doc *Document) []string {
	var warnings []string

	for name := range doc.Text {
		if !KnownSlot(name) {
			warnings = append(warnings, fmt.Sprintf("text slot %q is not bound to any value — ignored", name))
		}
	}

	if doc.Sidebar != nil {
		_, itemWarnings := doc.Sidebar.DecodedItems()
		warnings = append(warnings, itemWarnings...)
	}

	if a := doc.Avatar; a != nil && a.Shape != "" && a.Shape != "circle" && a.Shape != "rounded" {
		warnings = append(warnings, fmt.Sprintf("avatar shape %q is not circle or rounded — treated as circle", a.Shape))
	}

	return warnings
}
