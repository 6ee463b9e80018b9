package wrapper

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gnana997/cewrap/pkg/manifest"
	"github.com/gnana997/cewrap/pkg/output"
)

// FileWriter persists generated files.
type FileWriter interface {
	CreateOutDir(dir string) error
	// SaveFile writes contents to dir/name and returns the written path.
	SaveFile(dir, name, contents string) (string, error)
}

// Generator turns a manifest into React wrappers.
type Generator struct {
	cfg    *Config
	writer FileWriter
	logger *slog.Logger

	moduleOnce sync.Once
	module     string
	moduleErr  error
}

// Result summarizes a generation run.
type Result struct {
	OutDir     string
	Components []string
	Files      []string
	Skipped    bool
	Timings    Timings
}

// Timings reports how long each phase of a run took.
type Timings struct {
	Reconcile time.Duration
	Render    time.Duration
	Write     time.Duration
	Total     time.Duration
}

// Rendered is one component rendered in memory.
type Rendered struct {
	Model       *ComponentModel
	Wrapper     string
	Declaration string
}

type generatedFile struct {
	name     string
	contents string
}

// New creates a Generator. A nil logger discards all output.
func New(opts Options, writer FileWriter, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		cfg:    NewConfig(opts),
		writer: writer,
		logger: logger,
	}
}

// Config returns the resolved configuration.
func (g *Generator) Config() *Config {
	return g.cfg
}

// Run generates the wrappers of every non-excluded component in pkg.
// Nothing is written unless every component reconciles and renders.
func (g *Generator) Run(pkg *manifest.Package) (*Result, error) {
	start := time.Now()
	if g.cfg.Skip {
		g.logger.Warn("[react-wrappers] - Skipped")
		return &Result{OutDir: g.cfg.OutDir, Skipped: true}, nil
	}

	g.logger.Info("[react-wrappers] - Generating wrappers...", g.cfg.LogAttrs()...)
	result := &Result{OutDir: g.cfg.OutDir}

	models, err := g.Models(pkg)
	if err != nil {
		return nil, err
	}
	result.Timings.Reconcile = time.Since(start)

	renderStart := time.Now()
	files, err := g.renderAll(models)
	if err != nil {
		return nil, err
	}
	result.Timings.Render = time.Since(renderStart)

	writeStart := time.Now()
	if err := g.writer.CreateOutDir(g.cfg.OutDir); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, f := range files {
		path, err := g.writer.SaveFile(g.cfg.OutDir, f.name, f.contents)
		if err != nil {
			return nil, fmt.Errorf("failed to save %s: %w", f.name, err)
		}
		result.Files = append(result.Files, path)
	}
	result.Timings.Write = time.Since(writeStart)

	for _, m := range models {
		result.Components = append(result.Components, m.Name)
	}
	result.Timings.Total = time.Since(start)

	g.logger.Info(fmt.Sprintf("[react-wrappers] - Generated wrappers in %q.", g.cfg.OutDir),
		"components", len(models),
		"files", len(result.Files),
		"ms", result.Timings.Total.Milliseconds())
	return result, nil
}

// Models reconciles every non-excluded component of pkg in manifest order.
func (g *Generator) Models(pkg *manifest.Package) ([]*ComponentModel, error) {
	comps, err := pkg.Components(g.cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to select components: %w", err)
	}

	models := make([]*ComponentModel, 0, len(comps))
	byName := make(map[string]string, len(comps))
	for _, comp := range comps {
		m, err := g.model(comp)
		if err != nil {
			return nil, err
		}
		if other, ok := byName[m.Name]; ok {
			return nil, &ConfigError{
				Component: comp.ClassName,
				Msg:       fmt.Sprintf("component name %q is already used by %s", m.Name, other),
			}
		}
		byName[m.Name] = comp.ClassName
		models = append(models, m)
	}
	return models, nil
}

// Model reconciles a single component. Components matching an exclude
// pattern are rejected with ErrExcluded, as Run never generates them.
func (g *Generator) Model(pkg *manifest.Package, className string) (*ComponentModel, error) {
	comp, ok := pkg.Component(className)
	if !ok {
		return nil, fmt.Errorf("component %q not found in manifest", className)
	}
	comps, err := pkg.Components(g.cfg.Exclude)
	if err != nil {
		return nil, err
	}
	for _, c := range comps {
		if c.ClassName == className {
			return g.model(*comp)
		}
	}
	return nil, fmt.Errorf("component %q: %w", className, ErrExcluded)
}

// Render renders one component in memory without writing files.
func (g *Generator) Render(pkg *manifest.Package, className string) (*Rendered, error) {
	m, err := g.Model(pkg, className)
	if err != nil {
		return nil, err
	}
	wrapper, err := RenderWrapper(g.cfg, m)
	if err != nil {
		return nil, err
	}
	decl, err := RenderDeclaration(g.cfg, m)
	if err != nil {
		return nil, err
	}
	return &Rendered{
		Model:       m,
		Wrapper:     output.Format(wrapper),
		Declaration: output.Format(decl),
	}, nil
}

func (g *Generator) model(comp manifest.Component) (*ComponentModel, error) {
	modulePath, err := g.modulePath(comp)
	if err != nil {
		return nil, err
	}
	m, err := NewComponentModel(g.cfg, comp, modulePath)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("reconciled component",
		"component", m.Name,
		"attributes", len(m.Attributes.Attributes),
		"boolean_attributes", len(m.Attributes.BooleanAttributes),
		"properties", len(m.Properties),
		"events", len(m.Events))
	return m, nil
}

// modulePath resolves the element module import of comp. The package.json
// lookup only happens when a component needs it.
func (g *Generator) modulePath(comp manifest.Component) (string, error) {
	if g.cfg.ModulePath != nil {
		return g.cfg.ModulePath(comp.ClassName, comp.TagName), nil
	}

	g.moduleOnce.Do(func() {
		module, err := PackageModule(g.cfg.RootDir)
		if err != nil {
			g.moduleErr = err
			return
		}
		g.module, g.moduleErr = relativeModulePath(g.cfg.RootDir, g.cfg.OutDir, module)
	})
	if g.moduleErr != nil {
		var cfgErr *ConfigError
		if errors.As(g.moduleErr, &cfgErr) {
			return "", &ConfigError{Component: comp.ClassName, Msg: cfgErr.Msg, Err: cfgErr.Err}
		}
		return "", g.moduleErr
	}
	return g.module, nil
}

func (g *Generator) renderAll(models []*ComponentModel) ([]generatedFile, error) {
	var files []generatedFile

	utils, err := RenderReactUtils(g.cfg)
	if err != nil {
		return nil, err
	}
	files = append(files, generatedFile{ReactUtilsFile, utils})

	if g.cfg.ScopedTags {
		js, dts, err := RenderScopeProvider(g.cfg)
		if err != nil {
			return nil, err
		}
		files = append(files,
			generatedFile{ScopeProviderFile, js},
			generatedFile{ScopeProviderTypeFile, dts})
	}

	names := make([]string, 0, len(models))
	for _, m := range models {
		wrapper, err := RenderWrapper(g.cfg, m)
		if err != nil {
			return nil, err
		}
		decl, err := RenderDeclaration(g.cfg, m)
		if err != nil {
			return nil, err
		}
		files = append(files,
			generatedFile{m.Name + ".js", wrapper},
			generatedFile{m.Name + ".d.ts", decl})
		names = append(names, m.Name)
	}

	barrel := RenderBarrel(g.cfg, names)
	files = append(files,
		generatedFile{IndexFile, barrel},
		generatedFile{IndexTypeFile, barrel})

	return files, nil
}
