package wrapper

import (
	"strings"

	"github.com/gnana997/cewrap/pkg/manifest"
)

// componentDetails renders the documentation block placed on the component
// export of the type declaration.
func componentDetails(cfg *Config, comp manifest.Component, events []EventName) string {
	var lines []string
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "### **"+title+":**")
		lines = append(lines, items...)
	}

	if desc := comp.Doc(cfg.DescriptionSrc); desc != "" {
		lines = append(lines, docText(desc)...)
		lines = append(lines, "", "---", "")
	}

	var items []string
	for _, e := range componentEvents(events) {
		items = append(items, detailItem("**"+e.Name+"**", e.Description))
	}
	section("Events", items)

	items = nil
	for _, m := range comp.Members {
		if m.Kind != manifest.MemberKindMethod || m.Static || !m.IsPublic() || m.Name == "" {
			continue
		}
		items = append(items, detailItem("**"+methodSignature(m)+"**", m.Description))
	}
	section("Methods", items)

	items = nil
	for _, s := range comp.Slots {
		label := "_default_"
		if s.Name != "" {
			label = "**" + s.Name + "**"
		}
		items = append(items, detailItem(label, s.Description))
	}
	section("Slots", items)

	items = nil
	for _, p := range comp.CSSProperties {
		desc := p.Description
		if p.Default != "" {
			desc = strings.TrimSpace(desc + " _(default: " + p.Default + ")_")
		}
		items = append(items, detailItem("**"+p.Name+"**", desc))
	}
	section("CSS Properties", items)

	items = nil
	for _, p := range comp.CSSParts {
		items = append(items, detailItem("**"+p.Name+"**", p.Description))
	}
	section("CSS Parts", items)

	if comp.Deprecated.Deprecated {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, strings.TrimSpace("@deprecated "+comp.Deprecated.Reason))
	}

	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("/**\n")
	for _, l := range lines {
		l = strings.ReplaceAll(l, "*/", "*\\/")
		if l == "" {
			b.WriteString(" *\n")
			continue
		}
		b.WriteString(" * " + l + "\n")
	}
	b.WriteString(" */")
	return b.String()
}

func detailItem(label, description string) string {
	description = strings.Join(strings.Fields(description), " ")
	if description == "" {
		return " - " + label
	}
	return " - " + label + " - " + description
}

// methodSignature renders focus(options?: FocusOptions): _void_.
func methodSignature(m manifest.Member) string {
	params := make([]string, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		param := p.Name
		if p.Optional {
			param += "?"
		}
		if p.Type != "" {
			param += ": " + p.Type
		}
		params = append(params, param)
	}
	sig := m.Name + "(" + strings.Join(params, ", ") + ")"
	if m.Return != "" {
		sig += ": _" + m.Return + "_"
	}
	return sig
}
