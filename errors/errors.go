package errors

import (
	"fmt"
	"strings"

	"github.com/bxlang/bxc/types"
)

// ExpectedOneOfKindGotKind is raised when an AST document node carries none, or more
// than one, of the keys that select its variant.
type ExpectedOneOfKindGotKind struct {
	Node     string
	Expected []string
	Got      []string
	Location *types.Span
}

func (e ExpectedOneOfKindGotKind) Error() string {
	got := "nothing"
	if len(e.Got) > 0 {
		got = strings.Join(e.Got, ", ")
	}
	return fmt.Sprintf("%s: got %s, expected one of %s.%s", e.Node, got, strings.Join(e.Expected, ", "), locationSuffix(e.Location))
}

type UnknownOperator struct {
	Name     string
	Location *types.Span
}

func (e UnknownOperator) Error() string {
	return fmt.Sprintf("unknown operator %s.%s", e.Name, locationSuffix(e.Location))
}

type MalformedType struct {
	Text     string
	Location *types.Span
}

func (e MalformedType) Error() string {
	return fmt.Sprintf("malformed type %q.%s", e.Text, locationSuffix(e.Location))
}

type MalformedPosition struct {
	Text string
}

func (e MalformedPosition) Error() string {
	return fmt.Sprintf("malformed position %q, expected line:col-line:col", e.Text)
}

type DuplicateAttribute struct {
	Name     string
	Location *types.Span
}

func (e DuplicateAttribute) Error() string {
	return fmt.Sprintf("attribute %s specified more than once.%s", e.Name, locationSuffix(e.Location))
}

func locationSuffix(s *types.Span) string {
	if s == nil {
		return ""
	}
	return " " + s.String()
}
