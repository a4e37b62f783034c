package checker

import "github.com/bxlang/bxc/ast"

type opSig struct {
	params []ast.Type
	result ast.Type
}

var (
	boolT = ast.Bool
	intT  = ast.Int
)

// operators maps every operator name to its fixed signature. Arithmetic,
// bitwise, shift and comparison operators work on int; boolean operators on
// bool; comparisons yield bool.
var operators = map[string]opSig{
	"opposite":         {[]ast.Type{intT}, intT},
	"bitwise-negation": {[]ast.Type{intT}, intT},
	"boolean-not":      {[]ast.Type{boolT}, boolT},

	"addition":            {[]ast.Type{intT, intT}, intT},
	"subtraction":         {[]ast.Type{intT, intT}, intT},
	"multiplication":      {[]ast.Type{intT, intT}, intT},
	"division":            {[]ast.Type{intT, intT}, intT},
	"modulus":             {[]ast.Type{intT, intT}, intT},
	"logical-right-shift": {[]ast.Type{intT, intT}, intT},
	"logical-left-shift":  {[]ast.Type{intT, intT}, intT},
	"bitwise-and":         {[]ast.Type{intT, intT}, intT},
	"bitwise-or":          {[]ast.Type{intT, intT}, intT},
	"bitwise-xor":         {[]ast.Type{intT, intT}, intT},

	"boolean-and": {[]ast.Type{boolT, boolT}, boolT},
	"boolean-or":  {[]ast.Type{boolT, boolT}, boolT},

	"cmp-equal":                 {[]ast.Type{intT, intT}, boolT},
	"cmp-not-equal":             {[]ast.Type{intT, intT}, boolT},
	"cmp-lower-than":            {[]ast.Type{intT, intT}, boolT},
	"cmp-lower-or-equal-than":   {[]ast.Type{intT, intT}, boolT},
	"cmp-greater-than":          {[]ast.Type{intT, intT}, boolT},
	"cmp-greater-or-equal-than": {[]ast.Type{intT, intT}, boolT},
}

// IsOperator reports whether name is a known operator.
func IsOperator(name string) bool {
	_, ok := operators[name]
	return ok
}
