package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bxlang/bxc/alias"
	"github.com/bxlang/bxc/ast"
	"github.com/bxlang/bxc/checker"
	"github.com/bxlang/bxc/reporter"
	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiRed   = "\x1b[31m"
)

// analyze resolves aliases and checks prog. Checking is skipped when alias
// resolution failed, as standins would still be left in the program.
func analyze(prog ast.Program) (*checker.Info, []reporter.Diagnostic, bool) {
	r := reporter.New()
	if !alias.Resolve(prog, r) {
		return nil, r.Diagnostics(), false
	}

	info, ok := checker.Check(prog, r)
	return info, r.Diagnostics(), ok
}

func formatDiagnostic(d reporter.Diagnostic, filename string, color bool) string {
	category := d.Category.String()
	if color {
		category = ansiBold + ansiRed + category + ansiReset
	}

	if d.Location == nil {
		return fmt.Sprintf("%s: %s", category, d.Message)
	}

	loc := *d.Location
	if filename != "" {
		loc = loc.WithFilename(filename)
	}
	return fmt.Sprintf("%s: %s: %s", loc, category, d.Message)
}

func printDiagnostics(w io.Writer, diags []reporter.Diagnostic, filename string, color bool) {
	for _, d := range diags {
		fmt.Fprintln(w, formatDiagnostic(d, filename, color))
	}
	if len(diags) > 0 {
		fmt.Fprintf(w, "%d error(s)\n", len(diags))
	}
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
