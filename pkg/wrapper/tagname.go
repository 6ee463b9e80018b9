package wrapper

import (
	"github.com/gnana997/cewrap/pkg/manifest"
)

// TagExpression returns the JavaScript expression passed as the element type
// to React.createElement. Scoped tags are resolved from the nearest
// ScopeProvider at render time and fall back to the static tag.
func TagExpression(cfg *Config, comp manifest.Component) string {
	if !cfg.ScopedTags {
		return jsString(comp.TagName)
	}
	return "`${scope?.tagFormatter?.(" + jsString(comp.TagName) + ", " + jsString(comp.ClassName) + ") || " +
		jsString(cfg.StaticTagName(comp)) + "}`"
}
