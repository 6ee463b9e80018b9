package output

import (
	"fmt"
	"strings"

	"github.com/gnana997/cewrap/pkg/parser"
)

// SyntaxError reports a generated file that does not parse.
type SyntaxError struct {
	File   string
	Issues []parser.Issue
}

func (e *SyntaxError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}
	return fmt.Sprintf("generated %s has syntax errors: %s", e.File, strings.Join(msgs, "; "))
}

// Verifier checks generated sources before they are written.
type Verifier struct {
	parsers *parser.ParserManager
}

// NewVerifier returns a Verifier backed by parsers. The caller keeps
// ownership of the manager.
func NewVerifier(parsers *parser.ParserManager) *Verifier {
	return &Verifier{parsers: parsers}
}

// Verify returns a *SyntaxError when contents of file name do not parse.
// Files with unknown extensions are accepted as is.
func (v *Verifier) Verify(name, contents string) error {
	issues, err := v.parsers.CheckFile([]byte(contents), name)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", name, err)
	}
	if len(issues) > 0 {
		return &SyntaxError{File: name, Issues: issues}
	}
	return nil
}
