package output

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of remembered file hashes.
const DefaultCacheSize = 1024

// UnformattedSuffix is appended to the name of a file that failed
// verification; the raw generated source is kept there for debugging.
const UnformattedSuffix = ".unformatted"

// Writer formats, verifies and writes generated files. It remembers the
// hash of every file it wrote and skips rewriting identical contents, which
// keeps file watchers downstream quiet across regenerations.
type Writer struct {
	verifier *Verifier
	hashes   *lru.Cache[string, [sha256.Size]byte]
	logger   *slog.Logger

	written int
	skipped int
}

// WriterConfig configures a Writer.
type WriterConfig struct {
	// Verifier checks sources before writing. Nil disables verification.
	Verifier *Verifier
	// CacheSize bounds the hash cache. Defaults to DefaultCacheSize.
	CacheSize int
	Logger    *slog.Logger
}

// NewWriter creates a Writer.
func NewWriter(cfg WriterConfig) (*Writer, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	hashes, err := lru.New[string, [sha256.Size]byte](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create hash cache: %w", err)
	}
	return &Writer{
		verifier: cfg.Verifier,
		hashes:   hashes,
		logger:   cfg.Logger,
	}, nil
}

// CreateOutDir creates dir and its parents.
func (w *Writer) CreateOutDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

// SaveFile formats contents, verifies the result and writes it to dir/name.
// On a syntax error the raw contents are written to name+UnformattedSuffix
// and a *SyntaxError is returned.
func (w *Writer) SaveFile(dir, name, contents string) (string, error) {
	path := filepath.Join(dir, name)
	formatted := Format(contents)

	if w.verifier != nil {
		if err := w.verifier.Verify(name, formatted); err != nil {
			if werr := os.WriteFile(path+UnformattedSuffix, []byte(contents), 0o644); werr != nil {
				w.logger.Warn("failed to keep unformatted source", "file", path, "error", werr)
			}
			return path, err
		}
	}

	sum := sha256.Sum256([]byte(formatted))
	if prev, ok := w.hashes.Get(path); ok && prev == sum {
		if _, err := os.Stat(path); err == nil {
			w.skipped++
			w.logger.Debug("unchanged", "file", path)
			return path, nil
		}
	}

	if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
		return path, fmt.Errorf("failed to write %s: %w", path, err)
	}
	_ = os.Remove(path + UnformattedSuffix)
	w.hashes.Add(path, sum)
	w.written++
	w.logger.Debug("wrote", "file", path, "bytes", len(formatted))
	return path, nil
}

// Stats returns how many files were written and skipped as unchanged.
func (w *Writer) Stats() (written, skipped int) {
	return w.written, w.skipped
}
