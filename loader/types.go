package loader

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bxlang/bxc/ast"
	"github.com/bxlang/bxc/errors"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type typeNode struct {
	ast.Type
}

type rawAttribute struct {
	Name string   `yaml:"name"`
	Type typeNode `yaml:"type"`
}

type rawType struct {
	Struct  []rawAttribute `yaml:"struct"`
	Pointer *typeNode      `yaml:"pointer"`
	Array   *typeNode      `yaml:"array"`
	Size    uint64         `yaml:"size"`
}

// UnmarshalYAML accepts either the textual spelling of a type ("int",
// "bool*", "int[4]", "cell") or one of the mappings {struct: [...]},
// {pointer: T}, {array: T, size: N}.
func (t *typeNode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var text string
	if err := unmarshal(&text); err == nil {
		t.Type = parseType(text)
		return nil
	}

	var raw rawType
	if err := unmarshal(&raw); err != nil {
		return err
	}

	var got []string
	if raw.Struct != nil {
		got = append(got, "struct")
	}
	if raw.Pointer != nil {
		got = append(got, "pointer")
	}
	if raw.Array != nil {
		got = append(got, "array")
	}
	if len(got) != 1 {
		panic(errors.ExpectedOneOfKindGotKind{
			Node:     "type",
			Expected: []string{"struct", "pointer", "array"},
			Got:      got,
		})
	}

	switch {
	case raw.Struct != nil:
		st := &ast.StructType{}
		for _, attr := range raw.Struct {
			st.Attributes = append(st.Attributes, ast.Attribute{Name: ast.NewID(attr.Name), Type: attr.Type.Type})
		}
		t.Type = st
	case raw.Pointer != nil:
		t.Type = ast.PointerTo(raw.Pointer.Type)
	case raw.Array != nil:
		t.Type = &ast.ArrayType{Target: raw.Array.Type, Size: raw.Size}
	}
	return nil
}

func parseType(text string) ast.Type {
	text = strings.TrimSpace(text)

	if strings.HasSuffix(text, "*") {
		return ast.PointerTo(parseType(strings.TrimSuffix(text, "*")))
	}

	if strings.HasSuffix(text, "]") {
		open := strings.LastIndex(text, "[")
		if open < 0 {
			panic(errors.MalformedType{Text: text})
		}
		target := parseType(text[:open])
		size := strings.TrimSpace(text[open+1 : len(text)-1])
		if size == "" {
			switch target {
			case ast.Int:
				return ast.ArrayInt
			case ast.Bool:
				return ast.ArrayBool
			}
			panic(errors.MalformedType{Text: text})
		}
		n, err := strconv.ParseUint(size, 10, 64)
		if err != nil {
			panic(errors.MalformedType{Text: text})
		}
		return &ast.ArrayType{Target: target, Size: n}
	}

	switch text {
	case "void":
		return ast.Void
	case "bool":
		return ast.Bool
	case "int":
		return ast.Int
	case "null":
		return ast.Null
	}

	if !identRe.MatchString(text) {
		panic(errors.MalformedType{Text: text})
	}
	return &ast.StandinType{Name: ast.NewID(text)}
}
