package ast

import (
	"fmt"
	"strings"

	"github.com/bxlang/bxc/errors"
)

type Type interface {
	is_Type()
	String() string
}

// Basic enumerates the primitive types and the int/bool-restricted pointer
// and array types.
type Basic int

const (
	Void Basic = iota
	Bool
	Int
	Null
	PointerInt
	PointerBool
	ArrayInt
	ArrayBool
)

func (v Basic) is_Type() {}

func (v Basic) String() string {
	data := map[Basic]string{
		Void:        "void",
		Bool:        "bool",
		Int:         "int",
		Null:        "null",
		PointerInt:  "int*",
		PointerBool: "bool*",
		ArrayInt:    "int[]",
		ArrayBool:   "bool[]",
	}
	if s, ok := data[v]; ok {
		return s
	}
	return fmt.Sprintf("basic(%d)", int(v))
}

type PointerType struct {
	Target Type
}

func (v *PointerType) is_Type() {}

func (v *PointerType) String() string {
	return fmt.Sprintf("%s*", v.Target)
}

type ArrayType struct {
	Target Type
	Size   uint64
}

func (v *ArrayType) is_Type() {}

func (v *ArrayType) String() string {
	return fmt.Sprintf("%s[%d]", v.Target, v.Size)
}

type Attribute struct {
	Name Identifier
	Type Type
}

type AttrInfo struct {
	Ordinal int
	Type    Type
}

// StructType lists its attributes in declaration order. The name index is
// derived from Attributes the first time the struct is finalized and never
// rebuilt afterwards.
type StructType struct {
	Attributes []Attribute

	lookup map[string]AttrInfo
}

func (v *StructType) is_Type() {}

func (v *StructType) String() string {
	var attrs []string
	for _, attr := range v.Attributes {
		attrs = append(attrs, fmt.Sprintf("%s: %s", attr.Name.Name, attr.Type))
	}
	return fmt.Sprintf("struct {%s}", strings.Join(attrs, ", "))
}

// NewStructType builds a finalized struct type.
func NewStructType(attrs []Attribute) (*StructType, error) {
	s := &StructType{Attributes: attrs}
	return s, s.Finalize()
}

// Finalize builds the attribute index. Only the first call does any work; on
// duplicated names the first declaration wins and a DuplicateAttribute error
// naming the first offender is returned.
func (v *StructType) Finalize() error {
	if v.lookup != nil {
		return nil
	}

	var err error
	v.lookup = make(map[string]AttrInfo, len(v.Attributes))
	for idx, attr := range v.Attributes {
		if _, ok := v.lookup[attr.Name.Name]; ok {
			if err == nil {
				err = errors.DuplicateAttribute{Name: attr.Name.Name, Location: attr.Name.Pos}
			}
			continue
		}
		v.lookup[attr.Name.Name] = AttrInfo{Ordinal: idx, Type: attr.Type}
	}
	return err
}

func (v *StructType) Lookup(name string) (AttrInfo, bool) {
	_ = v.Finalize()
	info, ok := v.lookup[name]
	return info, ok
}

// StandinType names a type alias that has not been resolved yet.
type StandinType struct {
	Name Identifier
}

func (v *StandinType) is_Type() {}

func (v *StandinType) String() string {
	return v.Name.Name
}

// canonical folds pointers to int/bool onto their Basic spelling.
func canonical(t Type) Type {
	if p, ok := t.(*PointerType); ok {
		switch canonical(p.Target) {
		case Int:
			return PointerInt
		case Bool:
			return PointerBool
		}
	}
	return t
}

// Equal is structural type equality.
func Equal(a, b Type) bool {
	a, b = canonical(a), canonical(b)

	switch x := a.(type) {
	case nil:
		return b == nil
	case Basic:
		y, ok := b.(Basic)
		return ok && x == y
	case *PointerType:
		y, ok := b.(*PointerType)
		return ok && Equal(x.Target, y.Target)
	case *ArrayType:
		y, ok := b.(*ArrayType)
		return ok && x.Size == y.Size && Equal(x.Target, y.Target)
	case *StructType:
		y, ok := b.(*StructType)
		if !ok || len(x.Attributes) != len(y.Attributes) {
			return false
		}
		for i := range x.Attributes {
			if x.Attributes[i].Name.Name != y.Attributes[i].Name.Name {
				return false
			}
			if !Equal(x.Attributes[i].Type, y.Attributes[i].Type) {
				return false
			}
		}
		return true
	case *StandinType:
		y, ok := b.(*StandinType)
		return ok && x.Name.Name == y.Name.Name
	default:
		panic("unhandled type")
	}
}

// AssignableTo reports whether a value of type got may flow where want is
// expected: equal types, or the null literal into any pointer.
func AssignableTo(got, want Type) bool {
	if Equal(got, want) {
		return true
	}
	if got == Null {
		_, ok := Pointee(want)
		return ok
	}
	return false
}

// Pointee is the target type of a pointer type.
func Pointee(t Type) (Type, bool) {
	switch v := canonical(t).(type) {
	case Basic:
		switch v {
		case PointerInt:
			return Int, true
		case PointerBool:
			return Bool, true
		}
	case *PointerType:
		return v.Target, true
	}
	return nil, false
}

// Element is the element type of an indexable type: a pointer or array whose
// elements are int or bool.
func Element(t Type) (Type, bool) {
	switch v := canonical(t).(type) {
	case Basic:
		switch v {
		case PointerInt, ArrayInt:
			return Int, true
		case PointerBool, ArrayBool:
			return Bool, true
		}
	case *ArrayType:
		switch canonical(v.Target) {
		case Int:
			return Int, true
		case Bool:
			return Bool, true
		}
	}
	return nil, false
}

// PointerTo is the type of a pointer to t.
func PointerTo(t Type) Type {
	return canonical(&PointerType{Target: t})
}
