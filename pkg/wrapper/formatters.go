package wrapper

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/gnana997/cewrap/pkg/naming"
)

// formatterFuncs are available to formatter templates. Arguments come first
// so the functions work in pipelines: {{ .TagName | trimPrefix "sl-" }}.
var formatterFuncs = template.FuncMap{
	"trimPrefix": func(prefix, s string) string { return strings.TrimPrefix(s, prefix) },
	"trimSuffix": func(suffix, s string) string { return strings.TrimSuffix(s, suffix) },
	"replace":    func(old, new, s string) string { return strings.ReplaceAll(s, old, new) },
	"pascal":     naming.ToPascalCase,
	"camel":      naming.ToCamelCase,
	"lower":      strings.ToLower,
	"upper":      strings.ToUpper,
}

// FormatterData is the data passed to formatter templates.
type FormatterData struct {
	TagName   string
	ClassName string
}

// NewTemplateFormatter compiles a formatter template. The returned function
// yields "" when the template fails, which callers treat as "no override".
func NewTemplateFormatter(name, text string) (func(tagName, className string) string, error) {
	tmpl, err := template.New(name).Funcs(formatterFuncs).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid %s template: %w", name, err)
	}
	// Catch execution errors (unknown fields) before the run starts.
	if err := tmpl.Execute(new(strings.Builder), FormatterData{TagName: "x-example", ClassName: "XExample"}); err != nil {
		return nil, fmt.Errorf("invalid %s template: %w", name, err)
	}
	return func(tagName, className string) string {
		var b strings.Builder
		if err := tmpl.Execute(&b, FormatterData{TagName: tagName, ClassName: className}); err != nil {
			return ""
		}
		return strings.TrimSpace(b.String())
	}, nil
}

// NewModulePathFormatter compiles a module_path template. Its signature
// matches Options.ModulePath, which receives the class name first.
func NewModulePathFormatter(text string) (func(className, tagName string) string, error) {
	f, err := NewTemplateFormatter("module_path", text)
	if err != nil {
		return nil, err
	}
	return func(className, tagName string) string {
		return f(tagName, className)
	}, nil
}
