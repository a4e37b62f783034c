// Package loader reads programs from YAML AST documents. A document is a
// sequence of top-level declarations, each a mapping selected by one key:
//
//	- global: limit
//	  type: int
//	  init: {int: 10}
//	- proc: main
//	  body:
//	    block:
//	      - var: i
//	        type: int
//	        init: {int: 0}
//	      - while: {op: cmp-lower-than, args: [{var: i}, {var: limit}]}
//	        body:
//	          block:
//	            - print: {var: i}
//	            - assign: {var: i}
//	              value: {op: addition, args: [{var: i}, {int: 1}]}
//
// Any node may carry a `pos: "line:col-line:col"` key.
package loader

import (
	"fmt"
	"io/ioutil"

	"github.com/bxlang/bxc/ast"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

func Load(data []byte) (prog ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(error)
			if ok {
				err = tracerr.Wrap(rerr)
			} else {
				panic(r)
			}
		}
	}()

	var nodes []topDeclNode
	if err := yaml.UnmarshalStrict(data, &nodes); err != nil {
		return nil, tracerr.Wrap(err)
	}

	prog = ast.Program{}
	for _, n := range nodes {
		prog = append(prog, n.TopDecl)
	}
	return prog, nil
}

func LoadFile(path string) (ast.Program, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}

	prog, err := Load(data)
	if err != nil {
		return nil, tracerr.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// LoadFiles concatenates the declarations of several documents in order.
func LoadFiles(paths []string) (ast.Program, error) {
	if len(paths) == 0 {
		return nil, tracerr.Wrap(fmt.Errorf("no source documents given"))
	}

	var prog ast.Program
	for _, path := range paths {
		p, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		prog = append(prog, p...)
	}
	return prog, nil
}
