package manifest

import (
	"strings"
	"unicode"
)

// builtinTypes are event and detail types that resolve globally and must not
// be imported from the element's module.
var builtinTypes = map[string]bool{
	"Event":            true,
	"CustomEvent":      true,
	"UIEvent":          true,
	"MouseEvent":       true,
	"PointerEvent":     true,
	"KeyboardEvent":    true,
	"FocusEvent":       true,
	"InputEvent":       true,
	"SubmitEvent":      true,
	"WheelEvent":       true,
	"TouchEvent":       true,
	"DragEvent":        true,
	"AnimationEvent":   true,
	"TransitionEvent":  true,
	"ClipboardEvent":   true,
	"CompositionEvent": true,
	"ErrorEvent":       true,
	"ProgressEvent":    true,
	"ToggleEvent":      true,
	"HTMLElement":      true,
	"Element":          true,
	"EventTarget":      true,
	"string":           true,
	"number":           true,
	"boolean":          true,
	"bigint":           true,
	"symbol":           true,
	"object":           true,
	"unknown":          true,
	"any":              true,
	"void":             true,
	"null":             true,
	"undefined":        true,
	"never":            true,
	"Record":           true,
	"Array":            true,
	"Date":             true,
	"File":             true,
	"FileList":         true,
	"Blob":             true,
	"Map":              true,
	"Set":              true,
	"Promise":          true,
}

// CustomEventDetailTypes returns the named types a component's events refer
// to that have to be imported from the element module: the detail type of
// `CustomEvent<Detail>` or a custom event class name. Inline object shapes,
// unions and DOM built-ins are skipped. Order follows the events, without
// duplicates.
func CustomEventDetailTypes(c Component) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range c.Events {
		name := detailTypeName(e.Type)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func detailTypeName(typeText string) string {
	t := strings.TrimSpace(typeText)
	if inner, ok := strings.CutPrefix(t, "CustomEvent<"); ok {
		t = strings.TrimSpace(strings.TrimSuffix(inner, ">"))
	}
	if t == "" || builtinTypes[t] || !isTypeName(t) {
		return ""
	}
	return t
}

// isTypeName accepts a bare identifier, which excludes object shapes,
// generics, unions and arrays.
func isTypeName(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
