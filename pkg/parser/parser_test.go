package parser

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *ParserManager {
	t.Helper()
	manager := NewParserManager(slog.New(slog.NewTextHandler(io.Discard, nil)), 2)
	t.Cleanup(func() { manager.Close() })
	return manager
}

// --- DetectLanguage tests ---

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name string
		want Language
	}{
		{"SlButton.js", LanguageJavaScript},
		{"react-utils.js", LanguageJavaScript},
		{"index.mjs", LanguageJavaScript},
		{"SlButton.d.ts", LanguageTypeScript},
		{"INDEX.D.TS", LanguageTypeScript},
		{"types.ts", LanguageTypeScript},
		{"SlButton.js.unformatted", LanguageUnknown},
		{"README.md", LanguageUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectLanguage(tt.name))
		})
	}
}

func TestLanguage_String(t *testing.T) {
	assert.Equal(t, "javascript", LanguageJavaScript.String())
	assert.Equal(t, "typescript", LanguageTypeScript.String())
	assert.Equal(t, "unknown", LanguageUnknown.String())
	assert.Len(t, SupportedLanguages(), 2)
}

// --- Check tests ---

func TestCheck_ValidJavaScript(t *testing.T) {
	manager := newTestManager(t)

	src := `import React, { forwardRef, useRef } from "react";
export const SlButton = forwardRef((props, forwardedRef) => {
  const ref = useRef(null);
  return React.createElement("sl-button", { ref, ...props }, props.children);
});
`
	issues, err := manager.Check([]byte(src), LanguageJavaScript)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestCheck_ValidDeclaration(t *testing.T) {
	manager := newTestManager(t)

	src := `import React from "react";
import { SlButton as SlButtonElement } from "../dist/index.js";
export type { SlButtonElement };
export interface SlButtonProps extends Pick<React.AllHTMLAttributes<HTMLElement>, "id" | "title"> {
  disabled?: boolean;
  variant?: SlButtonElement["variant"];
  onSlChange?: (event: CustomEvent) => void;
}
export const SlButton: React.ForwardRefExoticComponent<SlButtonProps>;
`
	issues, err := manager.Check([]byte(src), LanguageTypeScript)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestCheck_InvalidJavaScript(t *testing.T) {
	manager := newTestManager(t)

	issues, err := manager.Check([]byte("export const = forwardRef((props) => {\n"), LanguageJavaScript)
	require.NoError(t, err)
	require.NotEmpty(t, issues)
	assert.Equal(t, 1, issues[0].Line)
	assert.NotEmpty(t, issues[0].String())
}

func TestCheckFile_UnknownExtensionIsSkipped(t *testing.T) {
	manager := newTestManager(t)

	issues, err := manager.CheckFile([]byte("this is { not code"), "notes.txt")
	require.NoError(t, err)
	assert.Nil(t, issues)
}

func TestParse_UnknownLanguage(t *testing.T) {
	manager := newTestManager(t)

	_, err := manager.Parse([]byte("x"), LanguageUnknown)
	assert.Error(t, err)
}

// --- Pool tests ---

func TestConcurrentChecks(t *testing.T) {
	manager := newTestManager(t)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lang := LanguageJavaScript
			if i%2 == 0 {
				lang = LanguageTypeScript
			}
			if _, err := manager.Check([]byte("const x = 1;"), lang); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}

	stats := manager.GetStats()
	assert.Equal(t, workers, stats.ParsesCalled)
	assert.LessOrEqual(t, stats.ParsersCreated, 4, "each pool is capped at 2 parsers")
}
