package wrapper

import (
	"fmt"
	"strings"
	"text/template"
)

var declarationTemplate = template.Must(template.New("declaration").Funcs(template.FuncMap{
	"js": jsString,
}).Parse(`import React from "react";
import { {{.ElementImport}} as {{.Name}}Element{{range .DetailTypes}}, {{.}}{{end}} } from {{js .ModulePath}};
{{- if .TypedEvents}}

/**
 * A generic type for strongly typing custom events with their targets
 * @template T - The type of the event target (extends EventTarget)
 * @template E - The type of the event
 */
type TypedEvent<T extends EventTarget, E = Event> = E & {
target: T;
};

/** ` + "`{{.Name}}`" + ` component event */
export type {{.Name}}ElementEvent<E = Event> = TypedEvent<{{.Name}}Element, E>;
{{- range .EventAliases}}

/** ` + "`{{.Event}}`" + ` event type */
export type {{.Alias}} = {{$.Name}}ElementEvent<{{.Type}}>;
{{- end}}
{{- end}}

export type { {{.Name}}Element{{range .DetailTypes}}, {{.}}{{end}} };

export interface {{.Name}}Props {{.Extends}} {
{{- range .Props}}
{{if .Doc}}{{.Doc}}
{{end}}{{.Decl}}
{{- end}}
}
{{- if .CSSProperties}}

declare module "react" {
interface CSSProperties {
{{- range .CSSProperties}}
{{if .Doc}}{{.Doc}}
{{end}}{{.Decl}}
{{- end}}
}
}
{{- end}}

{{if .Details}}{{.Details}}
{{end}}export const {{.Name}}: React.ForwardRefExoticComponent<{{.Name}}Props>;
`))

type declarationView struct {
	Name          string
	ElementImport string
	ModulePath    string
	DetailTypes   []string
	TypedEvents   bool
	EventAliases  []eventAlias
	Extends       string
	Props         []declLine
	CSSProperties []declLine
	Details       string
}

type eventAlias struct {
	Event string
	Alias string
	Type  string
}

type declLine struct {
	Doc  string
	Decl string
}

// RenderDeclaration renders the TypeScript declaration of a component.
func RenderDeclaration(cfg *Config, m *ComponentModel) (string, error) {
	comp := m.Component
	events := componentEvents(m.Events)

	view := declarationView{
		Name:          m.Name,
		ElementImport: comp.ClassName,
		ModulePath:    m.ModulePath,
		DetailTypes:   m.DetailTypes,
		TypedEvents:   cfg.StronglyTypedEvents && len(events) > 0,
		Extends:       extendsClause(cfg),
		Details:       componentDetails(cfg, comp, m.Events),
	}
	if cfg.DefaultExport {
		view.ElementImport = "default"
	}

	if view.TypedEvents {
		seen := make(map[string]bool)
		for _, e := range events {
			t, ok := typedEventType(e.Type)
			alias := eventAliasName(m.Name, e.Name)
			if !ok || seen[alias] {
				continue
			}
			seen[alias] = true
			view.EventAliases = append(view.EventAliases, eventAlias{Event: e.Name, Alias: alias, Type: t})
		}
	}

	seen := make(map[string]bool)
	addProp := func(key, doc, decl string) {
		if seen[key] {
			return
		}
		seen[key] = true
		view.Props = append(view.Props, declLine{Doc: doc, Decl: propKey(key) + decl})
	}

	for _, a := range m.Attributes.BooleanAttributes {
		t := a.Type
		if t == "" {
			t = "boolean"
		}
		addProp(a.FieldName, docComment(a.Description, a.Deprecated), "?: "+t+";")
	}
	for _, a := range m.Attributes.Attributes {
		addProp(a.FieldName, docComment(a.Description, a.Deprecated), "?: "+attributePropType(m.Name, a)+";")
	}
	for _, p := range m.Properties {
		addProp(p.Name, docComment(p.Description, p.Deprecated), "?: "+m.Name+"Element["+jsString(p.Name)+"];")
	}
	for _, g := range cfg.GlobalProps {
		if g.Name == "" {
			continue
		}
		t := g.Type
		if t == "" {
			t = "string"
		}
		addProp(g.Name, docComment(g.Description, noDeprecation), "?: "+t+";")
	}
	for _, e := range m.Events {
		addProp(e.ReactName, docComment(e.Description, noDeprecation),
			"?: (event: "+eventPropType(cfg, m.Name, e)+") => void;")
	}

	for _, p := range comp.CSSProperties {
		if p.Name == "" {
			continue
		}
		view.CSSProperties = append(view.CSSProperties, declLine{
			Doc:  docComment(p.Description, noDeprecation),
			Decl: jsString(p.Name) + "?: string | number;",
		})
	}

	var b strings.Builder
	if err := declarationTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("failed to render declaration for %s: %w", comp.ClassName, err)
	}
	return b.String(), nil
}

// attributePropType returns the prop type of a non-boolean attribute.
func attributePropType(name string, a MappedAttribute) string {
	if strings.Contains(a.Type, "{ELEMENT_NAME}") {
		return strings.ReplaceAll(a.Type, "{ELEMENT_NAME}", name+"Element")
	}
	if a.Global || !a.HasField {
		if a.Type == "" {
			return "string"
		}
		return a.Type
	}
	return name + "Element[" + jsString(a.FieldName) + "]"
}

// extendsClause returns the React HTML props a props interface extends.
func extendsClause(cfg *Config) string {
	if cfg.ReactProps.All {
		return "extends React.AllHTMLAttributes<HTMLElement>"
	}
	picked := pickedReactProps(cfg.ReactProps.Extra)
	quoted := make([]string, len(picked))
	for i, p := range picked {
		quoted[i] = jsString(p)
	}
	return "extends Pick<React.AllHTMLAttributes<HTMLElement>, " + strings.Join(quoted, " | ") + ">"
}
