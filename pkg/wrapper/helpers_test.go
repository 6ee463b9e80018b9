package wrapper

import (
	"path"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gnana997/cewrap/pkg/manifest"
	"github.com/gnana997/cewrap/pkg/output"
)

// memWriter keeps generated files in memory, formatted like output.Writer
// formats them.
type memWriter struct {
	dirs  []string
	files map[string]string
	order []string
}

func newMemWriter() *memWriter {
	return &memWriter{files: make(map[string]string)}
}

func (w *memWriter) CreateOutDir(dir string) error {
	w.dirs = append(w.dirs, dir)
	return nil
}

func (w *memWriter) SaveFile(dir, name, contents string) (string, error) {
	w.files[name] = output.Format(contents)
	w.order = append(w.order, name)
	return path.Join(dir, name), nil
}

func fixedModulePath(className, tagName string) string {
	return "../dist/index.js"
}

func loadFixture(t *testing.T) *manifest.Package {
	t.Helper()
	pkg, err := manifest.LoadFromFile("testdata/custom-elements.json")
	require.NoError(t, err)
	return pkg
}

func fixtureComponent(t *testing.T, className string) manifest.Component {
	t.Helper()
	comp, ok := loadFixture(t).Component(className)
	require.True(t, ok, "fixture component %s", className)
	return *comp
}

func newModel(t *testing.T, cfg *Config, className string) *ComponentModel {
	t.Helper()
	m, err := NewComponentModel(cfg, fixtureComponent(t, className), "../dist/index.js")
	require.NoError(t, err)
	return m
}
