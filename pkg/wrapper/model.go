package wrapper

import (
	"fmt"

	"github.com/gnana997/cewrap/pkg/manifest"
	"github.com/gnana997/cewrap/pkg/naming"
)

// ComponentModel is everything the synthesizers need to render one
// component.
type ComponentModel struct {
	Component   manifest.Component
	Name        string // formatted component name, also the file stem
	ModulePath  string // import specifier of the element module
	Attributes  ComponentAttributes
	Properties  []Property
	Events      []EventName
	DetailTypes []string
}

// NewComponentModel reconciles a component against cfg.
func NewComponentModel(cfg *Config, comp manifest.Component, modulePath string) (*ComponentModel, error) {
	attrs, err := ReconcileAttributes(cfg, comp)
	if err != nil {
		return nil, err
	}
	name := cfg.ComponentName(comp)
	if !naming.IsIdentifier(name) {
		return nil, &ConfigError{
			Component: comp.ClassName,
			Msg:       fmt.Sprintf("component name %q is not a valid JavaScript identifier", name),
		}
	}
	events, err := ResolveEvents(cfg, comp)
	if err != nil {
		return nil, err
	}
	return &ComponentModel{
		Component:   comp,
		Name:        name,
		ModulePath:  modulePath,
		Attributes:  attrs,
		Properties:  PromoteProperties(comp, attrs),
		Events:      events,
		DetailTypes: manifest.CustomEventDetailTypes(comp),
	}, nil
}

// Destructured returns the props the wrapper consumes explicitly, in boolean
// attribute, attribute, property order. Reserved words, "for" and
// "key" are left in the pass-through props.
func (m *ComponentModel) Destructured() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(field string) {
		if seen[field] || !naming.IsDestructurable(field) {
			return
		}
		seen[field] = true
		out = append(out, field)
	}
	for _, a := range m.Attributes.BooleanAttributes {
		add(a.FieldName)
	}
	for _, a := range m.Attributes.Attributes {
		add(a.FieldName)
	}
	for _, p := range m.Properties {
		add(mappedPropName(p.Name))
	}
	return out
}

// fieldRef returns the expression reading field inside the wrapper body.
func (m *ComponentModel) fieldRef(field string, destructured map[string]bool) string {
	if destructured[field] {
		return field
	}
	if naming.IsDestructurable(field) {
		return "props." + field
	}
	return "props[" + jsString(field) + "]"
}
