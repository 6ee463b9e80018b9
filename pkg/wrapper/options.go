// Package wrapper generates React wrapper modules and type declarations for
// the custom elements described by a Custom Elements Manifest.
package wrapper

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/gnana997/cewrap/pkg/manifest"
)

// DefaultOutDir is used when Options.OutDir is empty.
const DefaultOutDir = "./react"

// Options configures a generation run. The zero value is usable.
type Options struct {
	// OutDir is the output directory. Defaults to DefaultOutDir.
	OutDir string
	// RootDir holds the project's package.json. Defaults to ".".
	RootDir string
	// ModulePath returns the import path of a component's defining module.
	// When nil, the package.json "module" entry is used for every component.
	ModulePath func(className, tagName string) string
	// DefaultExport marks the element classes as default exports.
	DefaultExport bool
	// StronglyTypedEvents emits event aliases whose target is the element.
	StronglyTypedEvents bool
	// AttributeMapping renames attributes whose names are reserved words.
	AttributeMapping map[string]string
	// GlobalProps are added to every component's props interface.
	GlobalProps []GlobalProp
	// GlobalEvents are added to every component.
	GlobalEvents []GlobalEvent
	// ReactProps selects which React HTML props the props interface extends.
	ReactProps ReactProps
	// ScopedTags emits a ScopeProvider and resolves tag names at render time.
	ScopedTags bool
	// TagFormatter formats tag names at build time.
	TagFormatter func(tagName, className string) string
	// ComponentNameFormatter formats the React component (and file) names.
	ComponentNameFormatter func(tagName, className string) string
	// SSRSafe defers loading the element module until the client mounts.
	SSRSafe bool
	// Exclude lists class names (or doublestar patterns) to skip.
	Exclude []string
	// DescriptionSrc is the declaration field used for component docs.
	DescriptionSrc string
	// Debug enables debug logging.
	Debug bool
	// Skip turns the run into a no-op.
	Skip bool
}

// ReactProps selects the React HTML props a component accepts. All extends
// every React HTML attribute; otherwise the base allow-list plus Extra.
type ReactProps struct {
	All   bool
	Extra []string
}

// GlobalEvent is an event handler prop added to every component.
// Event is the prop name (e.g. "onCustomFocus"), Type its event type.
type GlobalEvent struct {
	Event       string `json:"event" yaml:"event" toml:"event"`
	Description string `json:"description" yaml:"description" toml:"description"`
	Type        string `json:"type" yaml:"type" toml:"type"`
}

// GlobalProp is a prop added to every component's props interface.
type GlobalProp struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Type        string `json:"type" yaml:"type" toml:"type"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// Config is the resolved option set of one run. It is built once by
// NewConfig and must not be modified afterwards.
type Config struct {
	Options
}

// NewConfig merges opts over the defaults. Maps and slices are copied so the
// caller's values cannot change a run in flight.
func NewConfig(opts Options) *Config {
	cfg := &Config{Options: opts}
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	if cfg.RootDir == "" {
		cfg.RootDir = "."
	}
	if cfg.DescriptionSrc == "" {
		cfg.DescriptionSrc = "description"
	}
	cfg.AttributeMapping = maps.Clone(opts.AttributeMapping)
	if cfg.AttributeMapping == nil {
		cfg.AttributeMapping = map[string]string{}
	}
	cfg.Exclude = slices.Clone(opts.Exclude)
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}
	cfg.GlobalProps = slices.Clone(opts.GlobalProps)
	cfg.GlobalEvents = slices.Clone(opts.GlobalEvents)
	cfg.ReactProps.Extra = slices.Clone(opts.ReactProps.Extra)
	return cfg
}

// ComponentName returns the React name of a component: the formatter's
// result, or the class name when there is no formatter or it returns "".
func (c *Config) ComponentName(comp manifest.Component) string {
	if c.ComponentNameFormatter != nil {
		if name := c.ComponentNameFormatter(comp.TagName, comp.ClassName); name != "" {
			return name
		}
	}
	return comp.ClassName
}

// StaticTagName returns the build-time tag of a component.
func (c *Config) StaticTagName(comp manifest.Component) string {
	if c.TagFormatter != nil {
		if tag := c.TagFormatter(comp.TagName, comp.ClassName); tag != "" {
			return tag
		}
	}
	return comp.TagName
}

// LogAttrs returns the config as structured log attributes.
func (c *Config) LogAttrs() []any {
	return []any{
		slog.String("outdir", c.OutDir),
		slog.Bool("ssr_safe", c.SSRSafe),
		slog.Bool("scoped_tags", c.ScopedTags),
		slog.Bool("strongly_typed_events", c.StronglyTypedEvents),
		slog.Int("exclude", len(c.Exclude)),
	}
}
