// Package scope is the lexical environment of the checker: a stack of
// frames, innermost last, mapping names to their declared types.
package scope

import (
	"github.com/bxlang/bxc/ast"
)

type Scope struct {
	names []map[string]ast.Type
}

// New returns a scope with a single, outermost frame.
func New() *Scope {
	s := &Scope{}
	s.Open()
	return s
}

func (s *Scope) Open() {
	s.names = append(s.names, make(map[string]ast.Type))
}

func (s *Scope) Close() {
	if len(s.names) == 0 {
		panic("scope: close without a matching open")
	}
	s.names = s.names[:len(s.names)-1]
}

// InSubscope runs fn inside a fresh frame. The frame is closed however fn
// returns, panics included.
func (s *Scope) InSubscope(fn func()) {
	s.Open()
	defer s.Close()
	fn()
}

// Depth is the number of open frames.
func (s *Scope) Depth() int {
	return len(s.names)
}

func (s *Scope) top() map[string]ast.Type {
	return s.names[len(s.names)-1]
}

// Push binds name in the innermost frame, replacing any binding it already
// has there.
func (s *Scope) Push(name string, t ast.Type) {
	s.top()[name] = t
}

// IsLocal tests the innermost frame only.
func (s *Scope) IsLocal(name string) bool {
	_, ok := s.top()[name]
	return ok
}

// Lookup searches from the innermost frame outward.
func (s *Scope) Lookup(name string) (ast.Type, bool) {
	for i := len(s.names) - 1; i >= 0; i-- {
		val, ok := s.names[i][name]
		if ok {
			return val, true
		}
	}

	return nil, false
}

func (s *Scope) Contains(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}
