package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/cewrap/pkg/manifest"
	"github.com/gnana997/cewrap/pkg/wrapper"
)

// componentSummary is one list_components entry.
type componentSummary struct {
	ClassName  string `json:"class_name"`
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	Summary    string `json:"summary,omitempty"`
	Deprecated bool   `json:"deprecated,omitempty"`
}

type attributeAPI struct {
	Name       string `json:"name"`
	WireName   string `json:"wire_name"`
	Prop       string `json:"prop"`
	Type       string `json:"type,omitempty"`
	Boolean    bool   `json:"boolean,omitempty"`
	Global     bool   `json:"global,omitempty"`
	Deprecated bool   `json:"deprecated,omitempty"`
}

type propertyAPI struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	Deprecated bool   `json:"deprecated,omitempty"`
}

type eventAPI struct {
	Name    string `json:"name"`
	Handler string `json:"handler"`
	Type    string `json:"type,omitempty"`
	Global  bool   `json:"global,omitempty"`
}

// componentAPI is the get_component_api response.
type componentAPI struct {
	ClassName     string         `json:"class_name"`
	TagName       string         `json:"tag_name"`
	Name          string         `json:"name"`
	ModulePath    string         `json:"module_path"`
	Description   string         `json:"description,omitempty"`
	Attributes    []attributeAPI `json:"attributes"`
	Properties    []propertyAPI  `json:"properties"`
	Events        []eventAPI     `json:"events"`
	Slots         []string       `json:"slots,omitempty"`
	CSSProperties []string       `json:"css_properties,omitempty"`
	CSSParts      []string       `json:"css_parts,omitempty"`
	Deprecated    string         `json:"deprecated,omitempty"`
}

func (s *Server) handleListComponents(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := req.GetString("filter", "")
	if filter != "" && !doublestar.ValidatePattern(filter) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid filter pattern: %s", filter)), nil
	}

	cfg := s.gen.Config()
	comps, err := s.pkg.Components(cfg.Exclude)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := make([]componentSummary, 0, len(comps))
	for _, c := range comps {
		if filter != "" && !matchesFilter(filter, c) {
			continue
		}
		out = append(out, componentSummary{
			ClassName:  c.ClassName,
			TagName:    c.TagName,
			Name:       cfg.ComponentName(c),
			Summary:    c.Summary,
			Deprecated: c.Deprecated.Deprecated,
		})
	}
	return jsonResult(out)
}

func matchesFilter(filter string, c manifest.Component) bool {
	if ok, _ := doublestar.Match(filter, c.ClassName); ok {
		return true
	}
	ok, _ := doublestar.Match(filter, c.TagName)
	return ok
}

func (s *Server) handleGetComponentAPI(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	className, err := req.RequireString("class_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	m, err := s.gen.Model(s.pkg, className)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(newComponentAPI(s.gen.Config(), m))
}

func newComponentAPI(cfg *wrapper.Config, m *wrapper.ComponentModel) componentAPI {
	comp := m.Component
	api := componentAPI{
		ClassName:   comp.ClassName,
		TagName:     cfg.StaticTagName(comp),
		Name:        m.Name,
		ModulePath:  m.ModulePath,
		Description: comp.Doc(cfg.DescriptionSrc),
		Attributes:  []attributeAPI{},
		Properties:  []propertyAPI{},
		Events:      []eventAPI{},
		Deprecated:  deprecationText(comp.Deprecated),
	}
	for _, a := range m.Attributes.All() {
		api.Attributes = append(api.Attributes, attributeAPI{
			Name:       a.Name,
			WireName:   a.WireName(),
			Prop:       a.FieldName,
			Type:       a.Type,
			Boolean:    a.Boolean,
			Global:     a.Global,
			Deprecated: a.Deprecated.Deprecated,
		})
	}
	for _, p := range m.Properties {
		api.Properties = append(api.Properties, propertyAPI{
			Name:       p.Name,
			Type:       p.Type,
			Deprecated: p.Deprecated.Deprecated,
		})
	}
	for _, e := range m.Events {
		api.Events = append(api.Events, eventAPI{
			Name:    e.Name,
			Handler: e.ReactName,
			Type:    e.Type,
			Global:  e.Custom,
		})
	}
	for _, slot := range comp.Slots {
		name := slot.Name
		if name == "" {
			name = "(default)"
		}
		api.Slots = append(api.Slots, name)
	}
	for _, p := range comp.CSSProperties {
		api.CSSProperties = append(api.CSSProperties, p.Name)
	}
	for _, p := range comp.CSSParts {
		api.CSSParts = append(api.CSSParts, p.Name)
	}
	return api
}

func deprecationText(d manifest.Deprecation) string {
	if !d.Deprecated {
		return ""
	}
	if d.Reason != "" {
		return d.Reason
	}
	return "deprecated"
}

func (s *Server) handlePreviewWrapper(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	className, err := req.RequireString("class_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	part := req.GetString("part", PartBoth)
	switch part {
	case PartWrapper, PartTypes, PartBoth:
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown part %q: want %s, %s or %s", part, PartWrapper, PartTypes, PartBoth)), nil
	}

	r, err := s.gen.Render(s.pkg, className)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch part {
	case PartWrapper:
		return mcp.NewToolResultText(r.Wrapper), nil
	case PartTypes:
		return mcp.NewToolResultText(r.Declaration), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "// %s.js\n%s\n// %s.d.ts\n%s", r.Model.Name, r.Wrapper, r.Model.Name, r.Declaration)
	return mcp.NewToolResultText(b.String()), nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
