package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gnana997/cewrap/pkg/manifest"
	"github.com/gnana997/cewrap/pkg/wrapper"
)

// Environment variables, read after .env has been loaded.
const (
	envManifest = "CEWRAP_MANIFEST"
	envOutDir   = "CEWRAP_OUTDIR"
	envDebug    = "CEWRAP_DEBUG"
)

// Replaceable for testing.
var getenv = os.Getenv

// configCandidates are searched in order when --config is not given.
var configCandidates = []string{
	filepath.Join(".cewrap", "config.yaml"),
	filepath.Join(".cewrap", "config.yml"),
	"cewrap.toml",
}

// ProjectConfig holds the contents of .cewrap/config.yaml or cewrap.toml.
// Formatter functions are text/template strings over .TagName and .ClassName.
type ProjectConfig struct {
	Manifest            string                `yaml:"manifest" toml:"manifest"`
	OutDir              string                `yaml:"outdir" toml:"outdir"`
	RootDir             string                `yaml:"root_dir" toml:"root_dir"`
	ModulePath          string                `yaml:"module_path" toml:"module_path"`
	TagFormat           string                `yaml:"tag_format" toml:"tag_format"`
	ComponentNameFormat string                `yaml:"component_name_format" toml:"component_name_format"`
	DefaultExport       bool                  `yaml:"default_export" toml:"default_export"`
	StronglyTypedEvents bool                  `yaml:"strongly_typed_events" toml:"strongly_typed_events"`
	AttributeMapping    map[string]string     `yaml:"attribute_mapping" toml:"attribute_mapping"`
	GlobalProps         []wrapper.GlobalProp  `yaml:"global_props" toml:"global_props"`
	GlobalEvents        []wrapper.GlobalEvent `yaml:"global_events" toml:"global_events"`
	ReactProps          reactPropsSetting     `yaml:"react_props" toml:"react_props"`
	ScopedTags          bool                  `yaml:"scoped_tags" toml:"scoped_tags"`
	SSRSafe             bool                  `yaml:"ssr_safe" toml:"ssr_safe"`
	Exclude             []string              `yaml:"exclude" toml:"exclude"`
	DescriptionSrc      string                `yaml:"description_src" toml:"description_src"`
	Debug               bool                  `yaml:"debug" toml:"debug"`
	Skip                bool                  `yaml:"skip" toml:"skip"`
	MCPLog              string                `yaml:"mcp_log" toml:"mcp_log"`
}

// reactPropsSetting accepts either a boolean (true extends every React HTML
// prop) or a list of extra prop names.
type reactPropsSetting wrapper.ReactProps

func (r *reactPropsSetting) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if err := node.Decode(&r.All); err != nil {
			return fmt.Errorf("react_props: want a boolean or a list of prop names: %w", err)
		}
		return nil
	case yaml.SequenceNode:
		return node.Decode(&r.Extra)
	}
	return errors.New("react_props: want a boolean or a list of prop names")
}

func (r *reactPropsSetting) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case bool:
		r.All = v
		return nil
	case []any:
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return fmt.Errorf("react_props: %v is not a prop name", item)
			}
			r.Extra = append(r.Extra, name)
		}
		return nil
	}
	return errors.New("react_props: want a boolean or a list of prop names")
}

// loadProjectConfig reads the config file at path, or the first existing
// candidate when path is empty. A missing candidate is not an error: the
// zero config and an empty path are returned.
func loadProjectConfig(path string) (*ProjectConfig, string, error) {
	if path == "" {
		for _, candidate := range configCandidates {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return &ProjectConfig{}, "", nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := decodeProjectConfig(path, data)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// decodeProjectConfig picks the decoder by file extension.
func decodeProjectConfig(path string, data []byte) (*ProjectConfig, error) {
	var cfg ProjectConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return &cfg, nil
}

// options converts the file settings into generator options, compiling the
// formatter templates.
func (pc *ProjectConfig) options() (wrapper.Options, error) {
	opts := wrapper.Options{
		OutDir:              pc.OutDir,
		RootDir:             pc.RootDir,
		DefaultExport:       pc.DefaultExport,
		StronglyTypedEvents: pc.StronglyTypedEvents,
		AttributeMapping:    pc.AttributeMapping,
		GlobalProps:         pc.GlobalProps,
		GlobalEvents:        pc.GlobalEvents,
		ReactProps:          wrapper.ReactProps(pc.ReactProps),
		ScopedTags:          pc.ScopedTags,
		SSRSafe:             pc.SSRSafe,
		Exclude:             pc.Exclude,
		DescriptionSrc:      pc.DescriptionSrc,
		Debug:               pc.Debug,
		Skip:                pc.Skip,
	}

	if pc.ModulePath != "" {
		f, err := wrapper.NewModulePathFormatter(pc.ModulePath)
		if err != nil {
			return opts, err
		}
		opts.ModulePath = f
	}
	if pc.TagFormat != "" {
		f, err := wrapper.NewTemplateFormatter("tag_format", pc.TagFormat)
		if err != nil {
			return opts, err
		}
		opts.TagFormatter = f
	}
	if pc.ComponentNameFormat != "" {
		f, err := wrapper.NewTemplateFormatter("component_name_format", pc.ComponentNameFormat)
		if err != nil {
			return opts, err
		}
		opts.ComponentNameFormatter = f
	}
	return opts, nil
}

// cliFlags are the flags shared by every command that reads a manifest.
type cliFlags struct {
	manifest string
	outDir   string
	config   string
	debug    bool
	skip     bool

	set map[string]bool // flags given on the command line
}

// parseFlags parses the shared flags plus any extra ones registered by the
// command.
func parseFlags(name string, args []string, extra func(*flag.FlagSet)) (*cliFlags, *flag.FlagSet, error) {
	f := &cliFlags{set: make(map[string]bool)}
	fset := flag.NewFlagSet("cewrap "+name, flag.ContinueOnError)
	fset.StringVar(&f.manifest, "manifest", "", "path to custom-elements.json (default: discovered)")
	fset.StringVar(&f.outDir, "outdir", "", "output directory (default "+wrapper.DefaultOutDir+")")
	fset.StringVar(&f.config, "config", "", "config file (default .cewrap/config.yaml or cewrap.toml)")
	fset.BoolVar(&f.debug, "debug", false, "enable debug logging")
	fset.BoolVar(&f.skip, "skip", false, "skip generation")
	if extra != nil {
		extra(fset)
	}
	if err := fset.Parse(args); err != nil {
		return nil, nil, err
	}
	fset.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, fset, nil
}

// settings is the resolved configuration of one command invocation.
type settings struct {
	ManifestPath string
	ConfigPath   string // empty when no config file was found
	MCPLog       string
	Options      wrapper.Options
}

// resolveSettings applies the chain flag > environment > config file >
// defaults. The manifest is discovered under the root directory when no
// layer names one, unless generation is skipped.
func resolveSettings(flags *cliFlags, getenv func(string) string) (*settings, error) {
	pc, cfgPath, err := loadProjectConfig(flags.config)
	if err != nil {
		return nil, err
	}
	opts, err := pc.options()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfgPath, err)
	}
	s := &settings{
		ManifestPath: pc.Manifest,
		ConfigPath:   cfgPath,
		MCPLog:       pc.MCPLog,
		Options:      opts,
	}

	if v := getenv(envManifest); v != "" {
		s.ManifestPath = v
	}
	if v := getenv(envOutDir); v != "" {
		s.Options.OutDir = v
	}
	if v := getenv(envDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envDebug, err)
		}
		s.Options.Debug = debug
	}

	if flags.manifest != "" {
		s.ManifestPath = flags.manifest
	}
	if flags.outDir != "" {
		s.Options.OutDir = flags.outDir
	}
	if flags.set["debug"] {
		s.Options.Debug = flags.debug
	}
	if flags.set["skip"] {
		s.Options.Skip = flags.skip
	}

	if s.ManifestPath == "" && !s.Options.Skip {
		root := s.Options.RootDir
		if root == "" {
			root = "."
		}
		path, err := manifest.Discover(root)
		if err != nil {
			return nil, err
		}
		s.ManifestPath = path
	}
	return s, nil
}

// watchedFiles lists the inputs whose changes trigger a regeneration.
func (s *settings) watchedFiles() []string {
	files := []string{s.ManifestPath}
	if s.ConfigPath != "" {
		files = append(files, s.ConfigPath)
	}
	if s.Options.ModulePath == nil {
		root := s.Options.RootDir
		if root == "" {
			root = "."
		}
		pkgJSON := filepath.Join(root, "package.json")
		if _, err := os.Stat(pkgJSON); err == nil {
			files = append(files, pkgJSON)
		}
	}
	return files
}
