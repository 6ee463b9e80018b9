package wrapper

// baselineAttributes are added to every component after its own attributes
// unless the component already declares an attribute with the same name.
var baselineAttributes = []MappedAttribute{
	{
		Name:        "for",
		FieldName:   "htmlFor",
		Type:        "string",
		Description: "Associates the element with a form control by the control's `id`.",
		Global:      true,
	},
}

// mappedPropName returns the prop a member named name is read from.
// Members that share a baseline attribute's name use its field instead.
func mappedPropName(name string) string {
	for _, attr := range baselineAttributes {
		if attr.Name == name {
			return attr.FieldName
		}
	}
	return name
}

func isBaselineField(field string) bool {
	for _, attr := range baselineAttributes {
		if attr.FieldName == field {
			return true
		}
	}
	return false
}

// baseReactProps is the allow-list of React HTML props every wrapper accepts
// when Options.ReactProps.All is false.
var baseReactProps = []string{
	"accessKey",
	"autoCapitalize",
	"autoFocus",
	"children",
	"className",
	"contentEditable",
	"defaultChecked",
	"defaultValue",
	"dir",
	"draggable",
	"enterKeyHint",
	"hidden",
	"id",
	"inputMode",
	"lang",
	"nonce",
	"role",
	"slot",
	"spellCheck",
	"style",
	"suppressContentEditableWarning",
	"suppressHydrationWarning",
	"tabIndex",
	"title",
	"translate",
	"onBlur",
	"onClick",
	"onContextMenu",
	"onDoubleClick",
	"onFocus",
	"onKeyDown",
	"onKeyUp",
	"onMouseDown",
	"onMouseEnter",
	"onMouseLeave",
	"onMouseUp",
	"onPointerDown",
	"onPointerEnter",
	"onPointerLeave",
	"onPointerUp",
}

// nonAttrBaseProps are React-only props removed from the allow-list because
// custom elements have no matching attribute or property.
var nonAttrBaseProps = map[string]bool{
	"defaultChecked":                 true,
	"defaultValue":                   true,
	"suppressContentEditableWarning": true,
	"suppressHydrationWarning":       true,
}

// pickedReactProps returns the allow-list minus the deny-list plus extra,
// without duplicates, in that order.
func pickedReactProps(extra []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}
	for _, name := range baseReactProps {
		if !nonAttrBaseProps[name] {
			add(name)
		}
	}
	for _, name := range extra {
		add(name)
	}
	return out
}
