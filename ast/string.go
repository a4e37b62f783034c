package ast

import (
	"fmt"
	"strings"
)

func typeToString(t Type) string {
	if t == nil {
		return Void.String()
	}
	return t.String()
}

// SignatureString renders a procedure signature as "(int, bool) -> void".
func SignatureString(params []Type, returns Type) string {
	var args []string
	for _, param := range params {
		args = append(args, typeToString(param))
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(args, ", "), typeToString(returns))
}

func (v *Proc) String() string {
	var params []Type
	for _, param := range v.Parameters {
		params = append(params, param.Type)
	}
	return fmt.Sprintf("proc %s%s", v.Name.Name, SignatureString(params, v.Returns))
}
