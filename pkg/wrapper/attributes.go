package wrapper

import (
	"strings"

	"github.com/gnana997/cewrap/pkg/manifest"
	"github.com/gnana997/cewrap/pkg/naming"
)

// MappedAttribute is a manifest attribute after reserved-word renaming.
type MappedAttribute struct {
	// Name is the attribute name after renaming.
	Name string
	// OriginalName is the manifest name when the attribute was renamed.
	OriginalName string
	// FieldName is the React prop the attribute is read from.
	FieldName   string
	Type        string
	Description string
	Deprecated  manifest.Deprecation
	Boolean     bool
	// Global marks baseline attributes added to every component.
	Global bool
	// HasField reports whether the manifest declared a backing field.
	HasField bool
	// BackingField is the manifest field behind the attribute. It survives
	// renaming so the field is not promoted a second time as a property.
	BackingField string
}

// WireName is the attribute name set on the element.
func (a MappedAttribute) WireName() string {
	if a.OriginalName != "" {
		return a.OriginalName
	}
	return a.Name
}

// ComponentAttributes holds the reconciled attributes of one component.
type ComponentAttributes struct {
	Attributes        []MappedAttribute
	BooleanAttributes []MappedAttribute
}

// All returns the boolean attributes followed by the plain attributes.
func (ca ComponentAttributes) All() []MappedAttribute {
	out := make([]MappedAttribute, 0, len(ca.BooleanAttributes)+len(ca.Attributes))
	out = append(out, ca.BooleanAttributes...)
	return append(out, ca.Attributes...)
}

func (ca ComponentAttributes) has(name string) bool {
	for _, a := range ca.Attributes {
		if a.Name == name {
			return true
		}
	}
	for _, a := range ca.BooleanAttributes {
		if a.Name == name {
			return true
		}
	}
	return false
}

func (ca ComponentAttributes) hasField(field string) bool {
	for _, a := range ca.All() {
		if a.FieldName == field || a.BackingField == field {
			return true
		}
	}
	return false
}

// Property is a public instance field forwarded to the element as a
// JavaScript property.
type Property struct {
	Name        string
	Type        string
	Description string
	Deprecated  manifest.Deprecation
}

// ReconcileAttributes maps a component's manifest attributes to React props.
// Reserved attribute names must be renamed through cfg.AttributeMapping;
// otherwise a *NamingCollisionError is returned. Duplicate names keep the
// first occurrence. Baseline global attributes are appended last.
func ReconcileAttributes(cfg *Config, comp manifest.Component) (ComponentAttributes, error) {
	var result ComponentAttributes

	for _, attr := range comp.Attributes {
		if attr.Name == "" {
			continue
		}

		mapped := MappedAttribute{
			Name:         attr.Name,
			FieldName:    attr.FieldName,
			Type:         attr.Type,
			Description:  attr.Description,
			Deprecated:   attr.Deprecated,
			HasField:     attr.FieldName != "",
			BackingField: attr.FieldName,
		}

		if naming.IsReserved(attr.Name) {
			renamed, ok := cfg.AttributeMapping[attr.Name]
			if !ok || renamed == "" {
				return ComponentAttributes{}, &NamingCollisionError{Attribute: attr.Name, Component: comp.ClassName}
			}
			mapped.OriginalName = attr.Name
			mapped.Name = renamed
			mapped.FieldName = naming.ToCamelCase(renamed)
			mapped.HasField = false
		}
		if mapped.FieldName == "" {
			mapped.FieldName = naming.ToCamelCase(mapped.Name)
		}

		if result.has(mapped.Name) {
			continue
		}
		if strings.Contains(mapped.Type, "boolean") {
			mapped.Boolean = true
			result.BooleanAttributes = append(result.BooleanAttributes, mapped)
		} else {
			result.Attributes = append(result.Attributes, mapped)
		}
	}

	for _, base := range baselineAttributes {
		if !result.has(base.Name) {
			result.Attributes = append(result.Attributes, base)
		}
	}

	return result, nil
}

// PromoteProperties returns the public, documented instance fields of a
// component that are not already covered by an attribute field, including
// the manifest field of a renamed attribute.
func PromoteProperties(comp manifest.Component, attrs ComponentAttributes) []Property {
	var props []Property
	seen := make(map[string]bool)

	for _, m := range comp.Members {
		if m.Kind != manifest.MemberKindField || m.Static || !m.IsPublic() {
			continue
		}
		if m.Description == "" && !m.Deprecated.Deprecated {
			continue
		}
		if m.Name == "" || seen[m.Name] || attrs.hasField(m.Name) {
			continue
		}
		seen[m.Name] = true
		props = append(props, Property{
			Name:        m.Name,
			Type:        m.Type,
			Description: m.Description,
			Deprecated:  m.Deprecated,
		})
	}

	return props
}
