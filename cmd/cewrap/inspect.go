package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/gnana997/cewrap/pkg/manifest"
	"github.com/gnana997/cewrap/pkg/util"
	"github.com/gnana997/cewrap/pkg/wrapper"
)

const (
	maxWidth       = 80
	maxDescription = 48
)

// runInspect is the entry point for `cewrap inspect <ClassName>`.
func runInspect(args []string, w io.Writer) error {
	var className string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		className, args = args[0], args[1:]
	}

	var showWrapper, showTypes bool
	flags, fset, err := parseFlags("inspect", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&showWrapper, "wrapper", false, "print the generated wrapper module")
		fs.BoolVar(&showTypes, "types", false, "print the generated type declaration")
	})
	if err != nil {
		return err
	}
	if className == "" {
		className = fset.Arg(0)
	}
	if className == "" {
		return errors.New("usage: cewrap inspect <ClassName> [--wrapper] [--types]")
	}

	s, err := resolveSettings(flags, getenv)
	if err != nil {
		return err
	}
	logger := util.NewLogger(util.CLILoggerConfig(s.Options.Debug))

	pkg, err := manifest.LoadFromFile(s.ManifestPath)
	if err != nil {
		return err
	}
	gen := wrapper.New(s.Options, nil, logger)
	return inspectComponent(w, gen, pkg, className, showWrapper, showTypes)
}

// inspectComponent prints either the rendered sources or the human-readable
// API summary of one component.
func inspectComponent(w io.Writer, gen *wrapper.Generator, pkg *manifest.Package, className string, showWrapper, showTypes bool) error {
	if showWrapper || showTypes {
		r, err := gen.Render(pkg, className)
		if err != nil {
			return err
		}
		if showWrapper {
			fmt.Fprintf(w, "// %s.js\n%s", r.Model.Name, r.Wrapper)
		}
		if showTypes {
			if showWrapper {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "// %s.d.ts\n%s", r.Model.Name, r.Declaration)
		}
		return nil
	}

	m, err := gen.Model(pkg, className)
	if err != nil {
		return err
	}
	printComponentHuman(w, gen.Config(), m)
	return nil
}

// printComponentHuman prints a human-readable summary of a reconciled
// component.
func printComponentHuman(w io.Writer, cfg *wrapper.Config, m *wrapper.ComponentModel) {
	comp := m.Component

	header := fmt.Sprintf("%s  <%s>", m.Name, cfg.StaticTagName(comp))
	if m.Name != comp.ClassName {
		header += fmt.Sprintf("  (class %s)", comp.ClassName)
	}
	if comp.Deprecated.Deprecated {
		header += "  [DEPRECATED]"
	}
	fmt.Fprintln(w, header)
	if comp.Deprecated.Reason != "" {
		fmt.Fprintf(w, "  Deprecated: %s\n", comp.Deprecated.Reason)
	}

	if desc := comp.Doc(cfg.DescriptionSrc); desc != "" {
		fmt.Fprintln(w)
		printWrapped(w, desc, 0, maxWidth)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Element module")
	fmt.Fprintf(w, "  %s\n", m.ModulePath)

	var rows [][]string
	for _, a := range m.Attributes.All() {
		var notes []string
		if a.Boolean {
			notes = append(notes, "boolean")
		}
		if a.OriginalName != "" {
			notes = append(notes, "renamed to "+a.Name)
		}
		if a.Global {
			notes = append(notes, "global")
		}
		if a.Deprecated.Deprecated {
			notes = append(notes, "deprecated")
		}
		rows = append(rows, []string{a.WireName(), a.FieldName, a.Type, strings.Join(notes, ", ")})
	}
	fmt.Fprintln(w)
	printTable(w, "Attributes", []string{"ATTRIBUTE", "PROP", "TYPE", "NOTES"}, rows)

	rows = nil
	for _, p := range m.Properties {
		notes := ""
		if p.Deprecated.Deprecated {
			notes = "deprecated"
		}
		rows = append(rows, []string{p.Name, p.Type, notes})
	}
	fmt.Fprintln(w)
	printTable(w, "Properties", []string{"PROP", "TYPE", "NOTES"}, rows)

	rows = nil
	for _, e := range m.Events {
		notes := ""
		if e.Custom {
			notes = "global"
		}
		rows = append(rows, []string{e.Name, e.ReactName, e.Type, notes})
	}
	fmt.Fprintln(w)
	printTable(w, "Events", []string{"EVENT", "HANDLER", "TYPE", "NOTES"}, rows)

	rows = nil
	for _, s := range comp.Slots {
		name := s.Name
		if name == "" {
			name = "(default)"
		}
		rows = append(rows, []string{name, truncate(s.Description, maxDescription)})
	}
	fmt.Fprintln(w)
	printTable(w, "Slots", []string{"NAME", "DESCRIPTION"}, rows)

	rows = nil
	for _, p := range comp.CSSProperties {
		rows = append(rows, []string{p.Name, p.Default, truncate(p.Description, maxDescription)})
	}
	fmt.Fprintln(w)
	printTable(w, "CSS Properties", []string{"NAME", "DEFAULT", "DESCRIPTION"}, rows)

	rows = nil
	for _, p := range comp.CSSParts {
		rows = append(rows, []string{p.Name, truncate(p.Description, maxDescription)})
	}
	fmt.Fprintln(w)
	printTable(w, "CSS Parts", []string{"NAME", "DESCRIPTION"}, rows)
}

// printTable renders rows with dynamic column widths. Empty cells print as a
// dash.
func printTable(w io.Writer, title string, header []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintf(w, "%s  (none)\n", title)
		return
	}
	fmt.Fprintln(w, title)

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cellText(cell)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	sepLen := 2 * (len(widths) - 1)
	for _, n := range widths {
		sepLen += n
	}

	printRow(w, widths, header)
	fmt.Fprintf(w, "  %s\n", strings.Repeat("─", sepLen))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cellText(cell)
		}
		printRow(w, widths, cells)
	}
}

func printRow(w io.Writer, widths []int, cells []string) {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%-*s", widths[i], cell)
	}
	fmt.Fprintf(w, "  %s\n", strings.TrimRight(b.String(), " "))
}

func cellText(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

// truncate shortens the first line of s to at most n runes.
func truncate(s string, n int) string {
	s, _, _ = strings.Cut(strings.TrimSpace(s), "\n")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

// printWrapped prints text word-wrapped at width with the given left indent.
func printWrapped(w io.Writer, text string, indent, width int) {
	words := strings.Fields(text)
	prefix := strings.Repeat(" ", indent)
	line := prefix
	for _, word := range words {
		switch {
		case line == prefix:
			line += word
		case len(line)+len(word)+1 > width:
			fmt.Fprintln(w, line)
			line = prefix + word
		default:
			line += " " + word
		}
	}
	if line != prefix {
		fmt.Fprintln(w, line)
	}
}
