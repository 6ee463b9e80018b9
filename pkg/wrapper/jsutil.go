package wrapper

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gnana997/cewrap/pkg/manifest"
	"github.com/gnana997/cewrap/pkg/naming"
)

// jsString quotes s as a double-quoted JavaScript string literal.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// propKey returns s as an object literal or interface key. Reserved words
// are quoted.
func propKey(s string) string {
	if naming.IsDestructurable(s) {
		return s
	}
	return jsString(s)
}

// docText makes s safe inside a /** */ block and splits it into lines.
func docText(s string) []string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "*/", "*\\/")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return lines
}

// docComment renders a JSDoc comment, or "" when there is nothing to say.
func docComment(description string, dep manifest.Deprecation) string {
	lines := docText(description)
	if dep.Deprecated {
		tag := "@deprecated"
		if dep.Reason != "" {
			tag += " " + strings.ReplaceAll(dep.Reason, "*/", "*\\/")
		}
		lines = append(lines, tag)
	}
	switch len(lines) {
	case 0:
		return ""
	case 1:
		return "/** " + lines[0] + " */"
	}
	var b strings.Builder
	b.WriteString("/**\n")
	for _, l := range lines {
		if l == "" {
			b.WriteString(" *\n")
			continue
		}
		b.WriteString(" * " + l + "\n")
	}
	b.WriteString(" */")
	return b.String()
}

var noDeprecation manifest.Deprecation
