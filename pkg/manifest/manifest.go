// Package manifest parses Custom Elements Manifests (custom-elements.json)
// into validated component descriptors.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/edsrzf/mmap-go"
)

// Package is a parsed manifest. Components are kept in manifest order:
// module order first, then declaration order within each module.
type Package struct {
	SchemaVersion string
	Path          string // file the manifest was loaded from, empty for bytes
	components    []Component
}

// AllComponents returns every custom element declaration, unfiltered.
func (p *Package) AllComponents() []Component {
	return p.components
}

// Components returns the components whose class names match none of the
// exclude patterns. Patterns are doublestar globs; a plain class name matches
// only itself.
func (p *Package) Components(exclude []string) ([]Component, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	out := make([]Component, 0, len(p.components))
	for _, c := range p.components {
		if isExcluded(c.ClassName, exclude) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Component looks up a component by class name.
func (p *Package) Component(className string) (*Component, bool) {
	for i := range p.components {
		if p.components[i].ClassName == className {
			return &p.components[i], true
		}
	}
	return nil, false
}

func isExcluded(name string, exclude []string) bool {
	for _, pattern := range exclude {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// LoadFromFile reads a manifest, parses and validates it.
// The file is memory-mapped read-only; if mapping fails the file is read
// normally.
func LoadFromFile(path string) (*Package, error) {
	data, unmap, err := readMapped(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}
	defer unmap()

	pkg, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	pkg.Path = path
	return pkg, nil
}

func readMapped(path string) ([]byte, func(), error) {
	noop := func() {}

	f, err := os.Open(path)
	if err != nil {
		return nil, noop, err
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		// Empty files and special filesystems cannot be mapped.
		data, readErr := os.ReadFile(path)
		return data, noop, readErr
	}
	return []byte(m), func() { _ = m.Unmap() }, nil
}

// LoadFromBytes parses a manifest from raw JSON and validates its shape.
func LoadFromBytes(data []byte) (*Package, error) {
	var raw rawPackage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse manifest JSON: %w", err)
	}

	pkg := &Package{SchemaVersion: raw.SchemaVersion}
	for mi, mod := range raw.Modules {
		for di, decl := range mod.Declarations {
			c, ok, err := parseDeclaration(mod.Path, decl)
			if err != nil {
				return nil, fmt.Errorf("modules[%d].declarations[%d]: %w", mi, di, err)
			}
			if ok {
				pkg.components = append(pkg.components, c)
			}
		}
	}

	if errs := pkg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("manifest validation failed: %w", errors.Join(errs...))
	}
	return pkg, nil
}

// Validate runs the minimal shape checks: every custom element needs a class
// name, and class names must be unique because they become file names.
func (p *Package) Validate() []error {
	var errs []error
	seen := make(map[string]bool, len(p.components))
	for i, c := range p.components {
		if c.ClassName == "" {
			errs = append(errs, fmt.Errorf("custom element <%s> (#%d): class name is required", c.TagName, i))
			continue
		}
		if seen[c.ClassName] {
			errs = append(errs, fmt.Errorf("component %q: duplicate class name", c.ClassName))
			continue
		}
		seen[c.ClassName] = true
	}
	return errs
}

// parseDeclaration converts one raw declaration. ok is false for declarations
// that are not custom elements (functions, variables, mixins, plain classes).
func parseDeclaration(modulePath string, data json.RawMessage) (Component, bool, error) {
	var d rawDeclaration
	if err := json.Unmarshal(data, &d); err != nil {
		return Component{}, false, err
	}
	if d.Kind != "" && d.Kind != "class" {
		return Component{}, false, nil
	}
	if d.TagName == "" {
		return Component{}, false, nil
	}

	c := Component{
		ClassName:   d.Name,
		TagName:     d.TagName,
		ModulePath:  modulePath,
		Description: d.Description,
		Summary:     d.Summary,
		Docs:        stringFields(data),
		Deprecated:  d.Deprecated,
	}

	for _, a := range d.Attributes {
		c.Attributes = append(c.Attributes, Attribute{
			Name:        a.Name,
			FieldName:   a.FieldName,
			Type:        typeText(a.Type),
			Description: a.Description,
			Default:     a.Default,
			Deprecated:  a.Deprecated,
		})
	}

	for _, m := range d.Members {
		member := Member{
			Kind:        MemberKind(m.Kind),
			Name:        m.Name,
			Static:      m.Static,
			Privacy:     m.Privacy,
			Type:        typeText(m.Type),
			Description: m.Description,
			Deprecated:  m.Deprecated,
			Readonly:    m.Readonly,
		}
		for _, p := range m.Parameters {
			member.Parameters = append(member.Parameters, Parameter{
				Name:        p.Name,
				Type:        typeText(p.Type),
				Optional:    p.Optional,
				Description: p.Description,
			})
		}
		if m.Return != nil {
			member.Return = typeText(m.Return.Type)
		}
		c.Members = append(c.Members, member)
	}

	for _, e := range d.Events {
		c.Events = append(c.Events, Event{
			Name:        e.Name,
			Type:        typeText(e.Type),
			Description: e.Description,
			Deprecated:  e.Deprecated,
		})
	}

	for _, p := range d.CSSProperties {
		c.CSSProperties = append(c.CSSProperties, CSSProperty(p))
	}
	for _, p := range d.CSSParts {
		c.CSSParts = append(c.CSSParts, CSSPart(p))
	}
	for _, s := range d.Slots {
		c.Slots = append(c.Slots, Slot(s))
	}

	return c, true, nil
}

// stringFields collects the top-level string-valued fields of a declaration.
func stringFields(data json.RawMessage) map[string]string {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
