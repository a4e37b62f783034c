package checker

import (
	"github.com/bxlang/bxc/ast"
	"github.com/bxlang/bxc/reporter"
	"github.com/bxlang/bxc/scope"
)

// Info is what a checking session produces besides its diagnostics.
type Info struct {
	// Types holds an entry for every checked expression. A nil entry marks an
	// expression whose type could not be determined.
	Types   map[ast.Expression]ast.Type
	Globals *scope.Scope
	Procs   Signatures
}

// TypeOf is the recorded type of e; ok is false when e was never checked or
// its type was undetermined.
func (i *Info) TypeOf(e ast.Expression) (t ast.Type, ok bool) {
	t = i.Types[e]
	return t, t != nil
}

// Check runs the pre-pass and the type checker over prog. The program is
// valid iff nothing was reported during the session.
func Check(prog ast.Program, r *reporter.Reporter) (*Info, bool) {
	checkpoint := r.Checkpoint()

	globals, procs := NewPreTyper(r).Pretype(prog)
	tc := NewTypeChecker(globals, procs, r)
	tc.Check(prog)

	return &Info{Types: tc.Types(), Globals: globals, Procs: procs}, checkpoint.Clean()
}
