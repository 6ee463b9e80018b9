// Package parser checks generated JavaScript and TypeScript sources with
// pooled tree-sitter parsers.
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/gnana997/cewrap/pkg/util"
)

// ParserManager owns one lazily created parser pool per language. It is safe
// for concurrent use and must be closed with Close.
//
// Example:
//
//	manager := parser.NewParserManager(logger, 0)
//	defer manager.Close()
//
//	issues, err := manager.Check([]byte(src), parser.LanguageJavaScript)
type ParserManager struct {
	mu       sync.RWMutex
	pools    map[Language]*parserPool
	poolSize int
	logger   *slog.Logger
	parses   int
}

// Issue is a syntax error found in a source.
type Issue struct {
	Line    int // 1-based
	Column  int // 1-based
	Missing bool
	Kind    string
	Text    string
}

func (i Issue) String() string {
	if i.Missing {
		return fmt.Sprintf("%d:%d: missing %s", i.Line, i.Column, i.Kind)
	}
	return fmt.Sprintf("%d:%d: unexpected %q", i.Line, i.Column, i.Text)
}

// ParserStats reports pool usage.
type ParserStats struct {
	ParsersCreated int
	ParsesCalled   int
}

// NewParserManager creates a manager whose pools hold up to poolSize
// parsers each. poolSize <= 0 sizes the pools from the CPU count.
func NewParserManager(logger *slog.Logger, poolSize int) *ParserManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParserManager{
		pools:    make(map[Language]*parserPool),
		poolSize: util.GetOptimalPoolSizeWithOverride(poolSize),
		logger:   logger,
	}
}

// Parse parses source. The caller must Close the returned tree.
func (pm *ParserManager) Parse(source []byte, lang Language) (*ts.Tree, error) {
	pool, err := pm.pool(lang)
	if err != nil {
		return nil, err
	}

	pm.mu.Lock()
	pm.parses++
	pm.mu.Unlock()

	parser, err := pool.acquire()
	if err != nil {
		return nil, err
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("%s parser returned no tree", lang)
	}
	return tree, nil
}

// Check parses source and returns its syntax errors in source order.
// A nil slice means the source parsed cleanly.
func (pm *ParserManager) Check(source []byte, lang Language) ([]Issue, error) {
	tree, err := pm.Parse(source, lang)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}
	var issues []Issue
	collectIssues(root, source, &issues)
	return issues, nil
}

// CheckFile checks source with the grammar matching name. Unknown file
// types are not checked.
func (pm *ParserManager) CheckFile(source []byte, name string) ([]Issue, error) {
	lang := DetectLanguage(name)
	if lang == LanguageUnknown {
		return nil, nil
	}
	return pm.Check(source, lang)
}

func collectIssues(node *ts.Node, source []byte, issues *[]Issue) {
	if node == nil {
		return
	}
	if node.IsError() || node.IsMissing() {
		pos := node.StartPosition()
		issue := Issue{
			Line:    int(pos.Row) + 1,
			Column:  int(pos.Column) + 1,
			Missing: node.IsMissing(),
			Kind:    node.Kind(),
		}
		if !issue.Missing {
			issue.Text = excerpt(source, node.StartByte(), node.EndByte())
		}
		*issues = append(*issues, issue)
		if node.IsError() {
			return
		}
	}
	if !node.HasError() {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		collectIssues(node.Child(i), source, issues)
	}
}

func excerpt(source []byte, start, end uint) string {
	if end > uint(len(source)) {
		end = uint(len(source))
	}
	if start > end {
		return ""
	}
	const limit = 40
	if end-start > limit {
		end = start + limit
	}
	return string(source[start:end])
}

// Close releases every parser. The manager cannot be used afterwards.
func (pm *ParserManager) Close() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	closed := 0
	for lang, pool := range pm.pools {
		closed += pool.close()
		delete(pm.pools, lang)
	}
	pm.logger.Debug("closed parser manager", "parsers_closed", closed, "parses", pm.parses)
	return nil
}

// GetStats returns parser usage statistics.
func (pm *ParserManager) GetStats() ParserStats {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	created := 0
	for _, pool := range pm.pools {
		created += pool.size()
	}
	return ParserStats{ParsersCreated: created, ParsesCalled: pm.parses}
}

func (pm *ParserManager) pool(lang Language) (*parserPool, error) {
	pm.mu.RLock()
	pool, ok := pm.pools[lang]
	pm.mu.RUnlock()
	if ok {
		return pool, nil
	}

	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pool, ok = pm.pools[lang]; ok {
		return pool, nil
	}

	langPtr, err := languagePointer(lang)
	if err != nil {
		return nil, err
	}
	pool = newParserPool(lang, langPtr, pm.poolSize, pm.logger)
	pm.pools[lang] = pool
	return pool, nil
}

func languagePointer(lang Language) (unsafe.Pointer, error) {
	switch lang {
	case LanguageJavaScript:
		return ts_javascript.Language(), nil
	case LanguageTypeScript:
		return ts_typescript.LanguageTypescript(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
}
