package parser

import (
	"path"
	"strings"
)

// Language is a grammar used to check generated sources.
type Language int

const (
	// LanguageJavaScript checks wrapper modules (.js, .mjs).
	LanguageJavaScript Language = iota
	// LanguageTypeScript checks type declarations (.d.ts, .ts).
	LanguageTypeScript
	// LanguageUnknown is returned for files that are not checked.
	LanguageUnknown
)

func (l Language) String() string {
	switch l {
	case LanguageJavaScript:
		return "javascript"
	case LanguageTypeScript:
		return "typescript"
	default:
		return "unknown"
	}
}

// DetectLanguage picks the grammar for a generated file name.
func DetectLanguage(name string) Language {
	name = strings.ToLower(name)
	if strings.HasSuffix(name, ".d.ts") {
		return LanguageTypeScript
	}
	switch path.Ext(name) {
	case ".ts", ".mts", ".cts":
		return LanguageTypeScript
	case ".js", ".mjs", ".cjs":
		return LanguageJavaScript
	default:
		return LanguageUnknown
	}
}

// SupportedLanguages returns every checkable language.
func SupportedLanguages() []Language {
	return []Language{LanguageJavaScript, LanguageTypeScript}
}
