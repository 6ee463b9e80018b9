package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/cewrap/pkg/manifest"
	"github.com/gnana997/cewrap/pkg/wrapper"
)

// --- helpers ---

func fixtureGenerator(t *testing.T, opts wrapper.Options) (*wrapper.Generator, *manifest.Package) {
	t.Helper()
	pkg, err := manifest.LoadFromFile(filepath.Join("testdata", "custom-elements.json"))
	require.NoError(t, err)
	if opts.ModulePath == nil {
		opts.ModulePath = func(className, tagName string) string { return "../dist/index.js" }
	}
	return wrapper.New(opts, nil, discardLogger()), pkg
}

// --- printTable tests ---

func TestPrintTable(t *testing.T) {
	var out bytes.Buffer
	printTable(&out, "T", []string{"NAME", "TYPE"}, [][]string{
		{"a", "bb"},
		{"ccc", ""},
	})
	want := "T\n" +
		"  NAME  TYPE\n" +
		"  ──────────\n" +
		"  a     bb\n" +
		"  ccc   —\n"
	assert.Equal(t, want, out.String())
}

func TestPrintTable_Empty(t *testing.T) {
	var out bytes.Buffer
	printTable(&out, "Slots", []string{"NAME"}, nil)
	assert.Equal(t, "Slots  (none)\n", out.String())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "first", truncate("first\nsecond line", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestPrintWrapped(t *testing.T) {
	var out bytes.Buffer
	printWrapped(&out, "aaa bbb ccc", 2, 9)
	assert.Equal(t, "  aaa bbb\n  ccc\n", out.String())
}

// --- inspectComponent tests ---

func TestInspectComponent_Summary(t *testing.T) {
	gen, pkg := fixtureGenerator(t, wrapper.Options{})

	var out bytes.Buffer
	require.NoError(t, inspectComponent(&out, gen, pkg, "MyButton", false, false))
	text := out.String()

	assert.Contains(t, text, "MyButton  <my-button>\n")
	assert.Contains(t, text, "Buttons represent actions that are available to the user.")
	assert.Contains(t, text, "Element module\n  ../dist/index.js\n")
	assert.Contains(t, text, "Attributes\n  ATTRIBUTE")
	assert.Regexp(t, `  disabled\s+disabled\s+boolean\s+boolean`, text)
	assert.Regexp(t, `  for\s+htmlFor\s+string\s+global`, text)
	assert.Regexp(t, `  value\s+string`, text)
	assert.Regexp(t, `  my-change\s+onMyChange\s+CustomEvent`, text)
	assert.Contains(t, text, "(default)")
	assert.Regexp(t, `  --my-radius\s+4px\s+Border radius\.`, text)
	assert.Regexp(t, `  base\s+The base wrapper\.`, text)
}

func TestInspectComponent_Deprecated(t *testing.T) {
	gen, pkg := fixtureGenerator(t, wrapper.Options{
		ComponentNameFormatter: func(tagName, className string) string { return "Label" },
	})

	var out bytes.Buffer
	require.NoError(t, inspectComponent(&out, gen, pkg, "MyLabel", false, false))
	text := out.String()

	assert.Contains(t, text, "Label  <my-label>  (class MyLabel)  [DEPRECATED]\n")
	assert.Contains(t, text, "  Deprecated: Use a native label.\n")
	assert.Contains(t, text, "Properties  (none)\n")
	assert.Contains(t, text, "Slots  (none)\n")
}

func TestInspectComponent_Sources(t *testing.T) {
	gen, pkg := fixtureGenerator(t, wrapper.Options{})

	tests := []struct {
		name        string
		wrapper     bool
		types       bool
		contains    []string
		notContains []string
	}{
		{
			name:        "wrapper",
			wrapper:     true,
			contains:    []string{"// MyButton.js\n", "export const MyButton = forwardRef("},
			notContains: []string{"// MyButton.d.ts"},
		},
		{
			name:        "types",
			types:       true,
			contains:    []string{"// MyButton.d.ts\n", "export interface MyButtonProps"},
			notContains: []string{"// MyButton.js"},
		},
		{
			name:     "both",
			wrapper:  true,
			types:    true,
			contains: []string{"// MyButton.js\n", "// MyButton.d.ts\n"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, inspectComponent(&out, gen, pkg, "MyButton", tc.wrapper, tc.types))
			for _, want := range tc.contains {
				assert.Contains(t, out.String(), want)
			}
			for _, unwanted := range tc.notContains {
				assert.NotContains(t, out.String(), unwanted)
			}
		})
	}
}

func TestInspectComponent_NotFound(t *testing.T) {
	gen, pkg := fixtureGenerator(t, wrapper.Options{})
	err := inspectComponent(&bytes.Buffer{}, gen, pkg, "Nope", false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// --- runInspect tests ---

func TestRunInspect_MissingClassName(t *testing.T) {
	err := runInspect([]string{"--types"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage: cewrap inspect")
}

func TestRunInspect_ClassNameBeforeFlags(t *testing.T) {
	noEnv(t)
	projectDir(t)

	var out bytes.Buffer
	require.NoError(t, runInspect([]string{"MyButton", "--types"}, &out))
	assert.Contains(t, out.String(), "// MyButton.d.ts\n")
}

func TestRunInspect_ClassNameAfterFlags(t *testing.T) {
	noEnv(t)
	projectDir(t)

	var out bytes.Buffer
	require.NoError(t, runInspect([]string{"--manifest", "custom-elements.json", "MyLabel"}, &out))
	assert.Contains(t, out.String(), "MyLabel  <my-label>")
}
