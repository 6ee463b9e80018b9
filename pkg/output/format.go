// Package output formats, checks and writes generated sources.
package output

import (
	"strings"
)

const indentUnit = "  "

// Format tidies generated JavaScript or TypeScript. It trims every line,
// re-indents by bracket nesting, collapses runs of blank lines and drops
// blank lines right inside brackets. Brackets in strings, template literals
// and comments are ignored. Format is idempotent.
func Format(src string) string {
	var (
		out       []string
		levels    []int
		inComment bool
		blank     bool
	)

	for _, raw := range strings.Split(src, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			blank = true
			continue
		}

		startedInComment := inComment
		scan := scanLine(line, inComment)
		inComment = scan.inComment

		indent := len(levels)
		for range scan.leading {
			if len(levels) == 0 {
				break
			}
			top := len(levels) - 1
			indent = min(indent, top)
			levels[top]--
			if levels[top] == 0 {
				levels = levels[:top]
			}
		}

		opened := 0
		for _, c := range scan.brackets[scan.leading:] {
			switch {
			case isOpener(c):
				opened++
			case opened > 0:
				opened--
			case len(levels) > 0:
				top := len(levels) - 1
				levels[top]--
				if levels[top] == 0 {
					levels = levels[:top]
				}
			}
		}
		if opened > 0 {
			levels = append(levels, opened)
		}

		if blank && len(out) > 0 && !endsWithOpener(out[len(out)-1]) && !isCloser(line[0]) {
			out = append(out, "")
		}
		blank = false

		if startedInComment && strings.HasPrefix(line, "*") {
			line = " " + line
		}
		out = append(out, strings.Repeat(indentUnit, indent)+line)
	}

	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

type lineScan struct {
	brackets  []byte
	leading   int // closers before any other code on the line
	inComment bool
}

// scanLine collects the brackets of one line that are outside strings and
// comments. inComment carries an open block comment across lines.
func scanLine(line string, inComment bool) lineScan {
	var s lineScan
	code := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		if inComment {
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				inComment = false
				i++
			}
			continue
		}

		switch c {
		case ' ', '\t':
		case '/':
			if i+1 < len(line) && line[i+1] == '/' {
				s.inComment = false
				return s
			}
			if i+1 < len(line) && line[i+1] == '*' {
				inComment = true
				i++
				continue
			}
			code = true
		case '"', '\'', '`':
			i = skipString(line, i)
			code = true
		case '{', '(', '[':
			s.brackets = append(s.brackets, c)
			code = true
		case '}', ')', ']':
			s.brackets = append(s.brackets, c)
			if !code {
				s.leading++
			}
		default:
			code = true
		}
	}

	s.inComment = inComment
	return s
}

// skipString returns the index of the quote closing the string that starts
// at line[start], or the last index when the string is unterminated.
func skipString(line string, start int) int {
	quote := line[start]
	for i := start + 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return len(line) - 1
}

func isOpener(c byte) bool {
	return c == '{' || c == '(' || c == '['
}

func isCloser(c byte) bool {
	return c == '}' || c == ')' || c == ']'
}

func endsWithOpener(line string) bool {
	line = strings.TrimSpace(line)
	return line != "" && isOpener(line[len(line)-1])
}
