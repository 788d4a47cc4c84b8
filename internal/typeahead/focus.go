package typeahead

// Element is a node in the widget's focus tree
type Element struct {
	ID     string
	Parent *Element
}

// NewElement creates a child of parent (nil for a root)
func NewElement(id string, parent *Element) *Element {
	return &Element{ID: id, Parent: parent}
}

// Within reports whether e is ancestor or one of its descendants
func (e *Element) Within(ancestor *Element) bool {
	if ancestor == nil {
		return false
	}
	for n := e; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}
