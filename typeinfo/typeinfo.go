// Package typeinfo lowers the checked interface of a program to an LLVM IR
// module: an external declaration per procedure, a definition per global and
// a `__bx_types` global holding the signatures as JSON for later linking.
package typeinfo

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bxlang/bxc/ast"
	"github.com/bxlang/bxc/checker"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// GlobalName is the symbol the JSON typeinfo is stored under.
const GlobalName = "__bx_types"

type Info struct {
	Procedures map[string]string `json:"procedures"`
	Globals    map[string]string `json:"globals"`
}

// LLVMType lowers t. Unsized int/bool arrays decay to pointers.
func LLVMType(t ast.Type) (types.Type, error) {
	switch v := t.(type) {
	case nil:
		return types.Void, nil
	case ast.Basic:
		switch v {
		case ast.Void:
			return types.Void, nil
		case ast.Bool:
			return types.I1, nil
		case ast.Int:
			return types.I64, nil
		case ast.Null:
			return types.NewPointer(types.I8), nil
		case ast.PointerInt, ast.ArrayInt:
			return types.NewPointer(types.I64), nil
		case ast.PointerBool, ast.ArrayBool:
			return types.NewPointer(types.I1), nil
		}
	case *ast.PointerType:
		target, err := LLVMType(v.Target)
		if err != nil {
			return nil, err
		}
		if types.IsVoid(target) {
			target = types.I8
		}
		return types.NewPointer(target), nil
	case *ast.ArrayType:
		target, err := LLVMType(v.Target)
		if err != nil {
			return nil, err
		}
		return types.NewArray(v.Size, target), nil
	case *ast.StructType:
		var fields []types.Type
		for _, attr := range v.Attributes {
			field, err := LLVMType(attr.Type)
			if err != nil {
				return nil, err
			}
			fields = append(fields, field)
		}
		return types.NewStruct(fields...), nil
	case *ast.StandinType:
		return nil, fmt.Errorf("unresolved type alias %s", v.Name.Name)
	}

	return nil, fmt.Errorf("cannot lower type %s", t)
}

// Collect gathers the typeinfo of a checked program.
func Collect(prog ast.Program, info *checker.Info) Info {
	ti := Info{
		Procedures: map[string]string{},
		Globals:    map[string]string{},
	}
	for name, sig := range info.Procs {
		ti.Procedures[name] = sig.String()
	}
	for _, topdecl := range prog {
		if g, ok := topdecl.(*ast.GlobalVar); ok {
			ti.Globals[g.Name.Name] = g.Type.String()
		}
	}
	return ti
}

func registerTypeInfoWithModule(t Info, m *ir.Module) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}

	g := m.NewGlobalDef(GlobalName, constant.NewCharArray(append(data, 0)))
	g.Immutable = true
	return nil
}

// Build emits the interface module of a program that passed checking.
func Build(prog ast.Program, info *checker.Info) (*ir.Module, error) {
	m := ir.NewModule()

	var names []string
	for name := range info.Procs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sig := info.Procs[name]
		ret, err := LLVMType(sig.Returns)
		if err != nil {
			return nil, fmt.Errorf("procedure %s: %w", name, err)
		}
		var params []*ir.Param
		for idx, param := range sig.Params {
			typ, err := LLVMType(param)
			if err != nil {
				return nil, fmt.Errorf("procedure %s, parameter %d: %w", name, idx, err)
			}
			params = append(params, ir.NewParam(fmt.Sprintf("arg%d", idx), typ))
		}
		m.NewFunc(name, ret, params...)
	}

	for _, topdecl := range prog {
		g, ok := topdecl.(*ast.GlobalVar)
		if !ok {
			continue
		}
		typ, err := LLVMType(g.Type)
		if err != nil {
			return nil, fmt.Errorf("global %s: %w", g.Name.Name, err)
		}
		init := constant.Constant(constant.NewZeroInitializer(typ))
		if lit, ok := g.Init.(*ast.IntExpr); ok && lit.Value.IsInt64() {
			if it, ok := typ.(*types.IntType); ok {
				init = constant.NewInt(it, lit.Value.Int64())
			}
		}
		m.NewGlobalDef(g.Name.Name, init)
	}

	if err := registerTypeInfoWithModule(Collect(prog, info), m); err != nil {
		return nil, err
	}
	return m, nil
}

func Decode(data string) (t Info, err error) {
	err = json.Unmarshal([]byte(data), &t)
	return
}
