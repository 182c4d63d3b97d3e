package lisp

import (
	"fmt"

	"github.com/bmatsuo/gomal/parser/token"
)

// LType is the type of an LVal
type LType uint

// Possible LType values
const (
	LInvalid LType = iota
	LInt
	LString
	LSymbol
	LKeyword
	LNil
	LTrue
	LFalse
	LList
	LVector
	LMap
	LAtom
	LFun
	LError
	numLType
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LInt:     "int",
	LString:  "string",
	LSymbol:  "symbol",
	LKeyword: "keyword",
	LNil:     "nil",
	LTrue:    "true",
	LFalse:   "false",
	LList:    "list",
	LVector:  "vector",
	LMap:     "map",
	LAtom:    "atom",
	LFun:     "function",
	LError:   "error",
}

func (t LType) String() string {
	if t >= numLType {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LFunType is used to distinguish ordinary functions from macros.
type LFunType uint8

// Possible LFunType values
const (
	LFunNone LFunType = iota
	LFunMacro
)

func (ft LFunType) String() string {
	switch ft {
	case LFunNone:
		return "function"
	case LFunMacro:
		return "macro"
	default:
		return "INVALID"
	}
}

// LBuiltin is a function that performs executes a lisp function.  The args
// value is always an LList.
type LBuiltin func(env *LEnv, args *LVal) *LVal

// LVal is a lisp value
type LVal struct {
	// Source is the location in source where the value was read.
	Source *token.Location

	// Int is the value of an LInt.
	Int int

	// Str is the contents of an LString, the name of an LSymbol or LKeyword
	// (keywords keep their leading colon), the name of a builtin function, or
	// the condition of an LError.
	Str string

	// Cells holds the elements of an LList or LVector and the alternating
	// keys and values of an LMap.  The slot of an LAtom is Cells[0].  A
	// closure stores its formals and body in Cells[0] and Cells[1].  An
	// LError stores its payload in Cells[0].
	Cells []*LVal

	// Builtin is the native implementation of a builtin LFun.
	Builtin LBuiltin

	// Env is the environment captured by a closure.
	Env *LEnv

	// Meta is the metadata attached with ``with-meta''.
	Meta *LVal

	// Stack is the call stack at the time an LError was created, if known.
	Stack *CallStack

	Type    LType
	FunType LFunType
}

var (
	nilVal   = &LVal{Type: LNil}
	trueVal  = &LVal{Type: LTrue}
	falseVal = &LVal{Type: LFalse}
)

// Int returns an LVal representing the number x.
func Int(x int) *LVal {
	return &LVal{
		Type: LInt,
		Int:  x,
	}
}

// String returns an LVal representing the string str.
func String(str string) *LVal {
	return &LVal{
		Type: LString,
		Str:  str,
	}
}

// Symbol returns an LVal resprenting the symbol s
func Symbol(s string) *LVal {
	return &LVal{
		Type: LSymbol,
		Str:  s,
	}
}

// Keyword returns an LVal representing the keyword named s.  The keyword
// prefix is added to s if it is not already present.
func Keyword(s string) *LVal {
	if len(s) == 0 || s[0] != KeywordPrefix {
		s = string(KeywordPrefix) + s
	}
	return &LVal{
		Type: LKeyword,
		Str:  s,
	}
}

// Nil returns an LVal representing nil, an absent value.
func Nil() *LVal {
	return nilVal
}

// True returns the boolean true.
func True() *LVal {
	return trueVal
}

// False returns the boolean false.
func False() *LVal {
	return falseVal
}

// Bool returns an LVal representing the boolean value b.
func Bool(b bool) *LVal {
	if b {
		return trueVal
	}
	return falseVal
}

// List returns an LList containing cells.  The cells slice is not copied.
func List(cells ...*LVal) *LVal {
	return &LVal{
		Type:  LList,
		Cells: cells,
	}
}

// Vector returns an LVector containing cells.  The cells slice is not
// copied.
func Vector(cells ...*LVal) *LVal {
	return &LVal{
		Type:  LVector,
		Cells: cells,
	}
}

// Map returns an LMap constructed from an alternating sequence of keys and
// values.  If the sequence has odd length or contains a key which is neither
// a string nor a keyword an LError is returned.  Later values for a repeated
// key replace earlier ones.
func Map(kvs ...*LVal) *LVal {
	if len(kvs)%2 != 0 {
		return ErrorConditionf(CondSyntax, "odd number of map elements: %d", len(kvs))
	}
	m := &LVal{Type: LMap}
	for i := 0; i < len(kvs); i += 2 {
		if !isMapKey(kvs[i]) {
			return ErrorConditionf(CondTypeMismatch, "invalid map key type: %v", kvs[i].Type)
		}
		m.mapSet(kvs[i], kvs[i+1])
	}
	return m
}

// Atom returns a new LAtom holding v.
func Atom(v *LVal) *LVal {
	return &LVal{
		Type:  LAtom,
		Cells: []*LVal{v},
	}
}

// Fun returns an LVal representing a builtin function with the given name.
func Fun(name string, fn LBuiltin) *LVal {
	return &LVal{
		Type:    LFun,
		Str:     name,
		Builtin: fn,
	}
}

// Lambda returns an anonymous function that binds formals to its arguments
// and evaluates body in a child of env.  An LError is returned if formals is
// not a valid parameter list.
func Lambda(env *LEnv, formals *LVal, body *LVal) *LVal {
	if formals.Type != LList && formals.Type != LVector {
		return ErrorConditionf(CondTypeMismatch, "function formals must be a list or vector: %v", formals.Type)
	}
	for i, sym := range formals.Cells {
		if sym.Type != LSymbol {
			return ErrorConditionf(CondTypeMismatch, "function formal is not a symbol: %v", sym)
		}
		if sym.Str == VarArgSymbol && i != len(formals.Cells)-2 {
			return ErrorConditionf(CondSyntax, "symbol %s must be followed by exactly one formal", VarArgSymbol)
		}
	}
	return &LVal{
		Type:  LFun,
		Env:   env,
		Cells: []*LVal{formals, body},
	}
}

// IsNil returns true if v is nil.
func (v *LVal) IsNil() bool {
	return v.Type == LNil
}

// IsTrue returns true if v is truthy.  Only nil and false are falsy.
func (v *LVal) IsTrue() bool {
	return v.Type != LNil && v.Type != LFalse
}

// IsSeq returns true if v is a list or a vector.
func (v *LVal) IsSeq() bool {
	return v.Type == LList || v.Type == LVector
}

// IsMacro returns true if v is a macro closure.
func (v *LVal) IsMacro() bool {
	return v.Type == LFun && v.FunType == LFunMacro
}

// IsBuiltin returns true if v is a native function.
func (v *LVal) IsBuiltin() bool {
	return v.Type == LFun && v.Builtin != nil
}

// Formals returns the formal argument list of a closure.
func (v *LVal) Formals() *LVal {
	return v.Cells[0]
}

// Body returns the body expression of a closure.
func (v *LVal) Body() *LVal {
	return v.Cells[1]
}

// Len returns the number of elements in a sequence or the number of entries
// in a map.
func (v *LVal) Len() int {
	if v.Type == LMap {
		return len(v.Cells) / 2
	}
	return len(v.Cells)
}

// Copy returns a shallow copy of v.  The copy does not share its Cells slice
// with v, but the elements themselves are shared.  Atoms are never copied.
func (v *LVal) Copy() *LVal {
	if v == nil || v.Type == LAtom {
		return v
	}
	cp := &LVal{}
	*cp = *v
	if v.Cells != nil {
		cp.Cells = make([]*LVal, len(v.Cells))
		copy(cp.Cells, v.Cells)
	}
	return cp
}

// Equal returns true if v and other are structurally equal.  Lists and
// vectors with equal elements are equal to each other.  Atoms are only equal
// to themselves.
func (v *LVal) Equal(other *LVal) bool {
	if v == other {
		return true
	}
	if v.IsSeq() && other.IsSeq() {
		return cellsEqual(v.Cells, other.Cells)
	}
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LInt:
		return v.Int == other.Int
	case LString, LSymbol, LKeyword:
		return v.Str == other.Str
	case LNil, LTrue, LFalse:
		return true
	case LMap:
		if v.Len() != other.Len() {
			return false
		}
		for i := 0; i < len(v.Cells); i += 2 {
			x, ok := other.mapGet(v.Cells[i])
			if !ok || !v.Cells[i+1].Equal(x) {
				return false
			}
		}
		return true
	case LError:
		return v.Str == other.Str && cellsEqual(v.Cells, other.Cells)
	default:
		// atoms and functions have identity semantics
		return false
	}
}

func cellsEqual(a, b []*LVal) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// AsSeq narrows v to a list or vector.
func (v *LVal) AsSeq() ([]*LVal, *LVal) {
	if !v.IsSeq() {
		return nil, typeMismatch("list or vector", v)
	}
	return v.Cells, nil
}

// AsList narrows v to a list.
func (v *LVal) AsList() ([]*LVal, *LVal) {
	if v.Type != LList {
		return nil, typeMismatch(LList.String(), v)
	}
	return v.Cells, nil
}

// AsInt narrows v to an integer.
func (v *LVal) AsInt() (int, *LVal) {
	if v.Type != LInt {
		return 0, typeMismatch(LInt.String(), v)
	}
	return v.Int, nil
}

// AsString narrows v to a string.
func (v *LVal) AsString() (string, *LVal) {
	if v.Type != LString {
		return "", typeMismatch(LString.String(), v)
	}
	return v.Str, nil
}

// AsSymbol narrows v to a symbol and returns its name.
func (v *LVal) AsSymbol() (string, *LVal) {
	if v.Type != LSymbol {
		return "", typeMismatch(LSymbol.String(), v)
	}
	return v.Str, nil
}

// AsAtom narrows v to an atom and returns it.
func (v *LVal) AsAtom() (*LVal, *LVal) {
	if v.Type != LAtom {
		return nil, typeMismatch(LAtom.String(), v)
	}
	return v, nil
}

// AsFun narrows v to a callable function (a builtin or a non-macro
// closure).
func (v *LVal) AsFun() (*LVal, *LVal) {
	if v.Type != LFun || v.IsMacro() {
		return nil, typeMismatch(LFun.String(), v)
	}
	return v, nil
}

// AsMap narrows v to a map.
func (v *LVal) AsMap() (*LVal, *LVal) {
	if v.Type != LMap {
		return nil, typeMismatch(LMap.String(), v)
	}
	return v, nil
}

// Deref returns the value held by an atom.
func (v *LVal) Deref() *LVal {
	return v.Cells[0]
}

// Reset replaces the value held by an atom and returns it.
func (v *LVal) Reset(x *LVal) *LVal {
	v.Cells[0] = x
	return x
}

func typeMismatch(expect string, v *LVal) *LVal {
	return ErrorConditionf(CondTypeMismatch, "expected %s but got %v: %v", expect, v.Type, v)
}

func (v *LVal) String() string {
	return v.Print(true)
}

// GoString implements fmt.GoStringer so that %#v prints the value type.
func (v *LVal) GoString() string {
	return fmt.Sprintf("lisp.LVal{Type: %v, %s}", v.Type, v.Print(true))
}
