package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// parserPool hands out parsers of one language. Parsers are created on
// demand up to maxSize; after that callers wait for a release.
type parserPool struct {
	parsers chan *ts.Parser
	langPtr unsafe.Pointer
	lang    Language
	maxSize int
	logger  *slog.Logger

	mu      sync.Mutex
	created int
}

func newParserPool(lang Language, langPtr unsafe.Pointer, maxSize int, logger *slog.Logger) *parserPool {
	return &parserPool{
		parsers: make(chan *ts.Parser, maxSize),
		langPtr: langPtr,
		lang:    lang,
		maxSize: maxSize,
		logger:  logger,
	}
}

func (p *parserPool) acquire() (*ts.Parser, error) {
	select {
	case parser := <-p.parsers:
		return parser, nil
	default:
	}

	p.mu.Lock()
	if p.created >= p.maxSize {
		p.mu.Unlock()
		return <-p.parsers, nil
	}
	defer p.mu.Unlock()

	parser := ts.NewParser()
	if parser == nil {
		return nil, fmt.Errorf("failed to create %s parser", p.lang)
	}
	if err := parser.SetLanguage(ts.NewLanguage(p.langPtr)); err != nil {
		parser.Close()
		return nil, fmt.Errorf("failed to set language %s: %w", p.lang, err)
	}
	p.created++
	p.logger.Debug("created parser", "language", p.lang.String(), "pool_size", p.created)
	return parser, nil
}

func (p *parserPool) release(parser *ts.Parser) {
	if parser == nil {
		return
	}
	select {
	case p.parsers <- parser:
	default:
		parser.Close()
	}
}

func (p *parserPool) close() int {
	close(p.parsers)
	closed := 0
	for parser := range p.parsers {
		parser.Close()
		closed++
	}
	return closed
}

func (p *parserPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.created
}
