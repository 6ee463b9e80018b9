package wrapper

import (
	"fmt"
	"strings"
	"text/template"
)

var wrapperTemplate = template.Must(template.New("wrapper").Funcs(template.FuncMap{
	"js":   jsString,
	"join": strings.Join,
}).Parse(`{{if .SSRSafe}}"use client";
{{end}}
import React, { {{join .ReactImports ", "}} } from "react";
{{- if not .SSRSafe}}
import {{js .ModulePath}};
{{- end}}
import { {{join .UtilImports ", "}} } from "./react-utils.js";
{{- if .ScopedTags}}
import { ScopeContext } from "./ScopeProvider.js";
{{- end}}

export const {{.Name}} = forwardRef((props, forwardedRef) => {
const ref = useRef(null);
{{- if .Destructured}}
const { {{join .Destructured ", "}}, ...restProps } = props;
{{- end}}
{{- if .ScopedTags}}
const scope = useContext(ScopeContext);
{{- end}}
{{if .SSRSafe}}
/** Waits for the client before loading the custom element */
useEffect(() => {
import({{js .ModulePath}});
}, []);
{{end}}
{{- if .EventCalls}}
/** Event listeners - run once */
{{range .EventCalls}}{{.}}
{{end}}
{{- end}}
{{- if .PropertyCalls}}
/** Properties - run whenever a property has changed */
{{range .PropertyCalls}}{{.}}
{{end}}
{{- end}}
return React.createElement(
{{.TagExpr}},
{
ref: createForwardedRefHandler(ref, forwardedRef),
{{if .Destructured}}...restProps,{{else}}...props,{{end}}
{{range .Entries}}{{.}},
{{end -}}
style: { ...props.style },
{{range .Handlers}}{{.}},
{{end -}}
},
props.children
);
});
`))

type wrapperView struct {
	SSRSafe       bool
	ScopedTags    bool
	Name          string
	ModulePath    string
	ReactImports  []string
	UtilImports   []string
	Destructured  []string
	EventCalls    []string
	PropertyCalls []string
	TagExpr       string
	Entries       []string
	Handlers      []string
}

// excludedAttributeEntries are never set as element attributes.
var excludedAttributeEntries = map[string]bool{
	"ref":       true,
	"children":  true,
	"key":       true,
	"style":     true,
	"className": true,
}

// RenderWrapper renders the React wrapper module of a component.
func RenderWrapper(cfg *Config, m *ComponentModel) (string, error) {
	destructured := m.Destructured()
	consumed := make(map[string]bool, len(destructured))
	for _, f := range destructured {
		consumed[f] = true
	}

	view := wrapperView{
		SSRSafe:      cfg.SSRSafe,
		ScopedTags:   cfg.ScopedTags,
		Name:         m.Name,
		ModulePath:   m.ModulePath,
		Destructured: destructured,
		TagExpr:      TagExpression(cfg, m.Component),
	}

	view.ReactImports = []string{"forwardRef"}
	if cfg.SSRSafe {
		view.ReactImports = append(view.ReactImports, "useEffect")
	}
	view.ReactImports = append(view.ReactImports, "useRef")
	if cfg.ScopedTags {
		view.ReactImports = append(view.ReactImports, "useContext")
	}

	for _, e := range componentEvents(m.Events) {
		view.EventCalls = append(view.EventCalls, fmt.Sprintf("useEventListener(ref, %s, %s);",
			jsString(e.Name), m.fieldRef(e.ReactName, consumed)))
	}
	for _, p := range m.Properties {
		view.PropertyCalls = append(view.PropertyCalls, fmt.Sprintf("useProperties(ref, %s, %s);",
			jsString(p.Name), m.fieldRef(mappedPropName(p.Name), consumed)))
	}

	if len(view.EventCalls) > 0 {
		view.UtilImports = append(view.UtilImports, "useEventListener")
	}
	if len(view.PropertyCalls) > 0 {
		view.UtilImports = append(view.UtilImports, "useProperties")
	}
	view.UtilImports = append(view.UtilImports, "createForwardedRefHandler")

	for _, a := range m.Attributes.Attributes {
		if excludedAttributeEntries[a.WireName()] {
			continue
		}
		value := m.fieldRef(a.FieldName, consumed)
		if strings.Contains(a.Name, "-") {
			value += " ?? props[" + jsString(a.Name) + "]"
		}
		view.Entries = append(view.Entries, jsString(a.WireName())+": "+value)
	}
	for _, a := range m.Attributes.BooleanAttributes {
		view.Entries = append(view.Entries,
			jsString(a.WireName())+": "+m.fieldRef(a.FieldName, consumed)+" ? true : undefined")
	}

	for _, e := range customEvents(m.Events) {
		view.Handlers = append(view.Handlers, propKey(e.ReactName)+": "+m.fieldRef(e.ReactName, consumed))
	}

	var b strings.Builder
	if err := wrapperTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("failed to render wrapper for %s: %w", m.Component.ClassName, err)
	}
	return b.String(), nil
}
