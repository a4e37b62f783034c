// Package reporter collects the diagnostics of a checking session.
package reporter

import (
	"fmt"

	"github.com/bxlang/bxc/types"
)

type Category int

const (
	// Name errors: duplicated or unresolved names.
	Name Category = iota
	// Signature errors: call arity, entry-point signature.
	Signature
	// Type errors: expected/inferred mismatches and misuse of a type.
	Type
	// Range errors: integer literals outside the signed 64-bit range.
	Range
	// Control errors: misplaced break/continue/return, missing returns.
	Control
	// Constant errors: non-literal global initializers.
	Constant
	// Structural errors: malformed declarations (aliases, struct attributes).
	Structural
)

func (c Category) String() string {
	switch c {
	case Name:
		return "name"
	case Signature:
		return "signature"
	case Type:
		return "type"
	case Range:
		return "range"
	case Control:
		return "control"
	case Constant:
		return "constant"
	case Structural:
		return "structural"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

type Diagnostic struct {
	Category Category
	Message  string
	Location *types.Span
}

func (d Diagnostic) Error() string {
	if d.Location == nil {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Location, d.Message)
}

// Reporter is an append-only diagnostics sink. It is passed by reference
// through a whole checking session.
type Reporter struct {
	diagnostics []Diagnostic
}

func New() *Reporter {
	return &Reporter{}
}

func (r *Reporter) Report(c Category, pos *types.Span, msg string) {
	r.diagnostics = append(r.diagnostics, Diagnostic{
		Category: c,
		Message:  msg,
		Location: pos,
	})
}

func (r *Reporter) Reportf(c Category, pos *types.Span, msg string, fmts ...interface{}) {
	r.Report(c, pos, fmt.Sprintf(msg, fmts...))
}

func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diagnostics
}

func (r *Reporter) Len() int {
	return len(r.diagnostics)
}

// Checkpoint marks the current end of the diagnostics list.
func (r *Reporter) Checkpoint() Checkpoint {
	return Checkpoint{r: r, start: len(r.diagnostics)}
}

type Checkpoint struct {
	r     *Reporter
	start int
}

// Clean is true iff nothing was reported since the checkpoint was taken.
func (c Checkpoint) Clean() bool {
	return len(c.r.diagnostics) == c.start
}
