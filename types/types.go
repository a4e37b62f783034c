package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

// OfPosition is the one-column span starting at line:column.
func OfPosition(line, column int) Span {
	p := Position{Line: line, Column: column}
	return Span{p, Position{Line: line, Column: column + 1}}
}

// WithFilename returns the span with both ends attributed to filename.
func (s Span) WithFilename(filename string) Span {
	s.From.Filename = filename
	s.To.Filename = filename
	return s
}
