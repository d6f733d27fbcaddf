// Package selection holds the single source of truth for the highlighted project.
package selection

// None is the Unselected state.
const None = ""

// Click applies a marker or list-item click on name to the current selection:
// clicking the selected project clears it, any other project replaces it.
func Click(current, name string) string {
	if name == current {
		return None
	}
	return name
}

// Close clears the selection regardless of the current state.
func Close(string) string {
	return None
}

// IsSelected reports whether current is in the Selected state. The detail
// panel is open exactly when this is true.
func IsSelected(current string) bool {
	return current != None
}
