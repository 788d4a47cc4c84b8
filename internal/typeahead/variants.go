package typeahead

// BaseItemClasses are the style tokens every list item carries
var BaseItemClasses = []string{"typeahead-item", "list-group-item", "list-group-item-action"}

// VariantResolver picks a background variant per item. Only string results
// are honored; anything else leaves the item on its default styling.
type VariantResolver func(data any) any

// ItemStyle configures how list items are styled
type ItemStyle struct {
	TextVariant       string
	BackgroundVariant string
	Resolver          VariantResolver
	Active            bool
}

// ItemClasses returns the style tokens for one list item
func ItemClasses(style ItemStyle, data any) []string {
	classes := make([]string, len(BaseItemClasses), len(BaseItemClasses)+3)
	copy(classes, BaseItemClasses)

	if style.Active {
		classes = append(classes, "active")
	}

	background := style.BackgroundVariant
	if style.Resolver != nil {
		if v, ok := style.Resolver(data).(string); ok && v != "" {
			background = v
		}
	}
	if background != "" {
		classes = append(classes, "list-group-item-"+background)
	}

	if style.TextVariant != "" {
		classes = append(classes, "text-"+style.TextVariant)
	}
	return classes
}

// InputGroupClasses returns the structural tokens of the input group
func InputGroupClasses(size string) string {
	if size == "" {
		return "input-group"
	}
	return "input-group input-group-" + size
}
