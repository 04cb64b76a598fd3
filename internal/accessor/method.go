// Package accessor synthesizes accessor methods from resolved layouts.
//
// Synthesis is a pure function of a layout, a field reference and a source
// position: it performs no I/O and produces either one Method or one
// ConfigError.
package accessor

import (
	"go/ast"
	"go/token"

	"github.com/ecordell/gsetgen/internal/layout"
)

// FieldRef identifies the field an accessor is generated for.
type FieldRef struct {
	// NameOrIndex is the field name, or its position for a blank field.
	NameOrIndex string
	Type        ast.Expr
	// Unwrap is the field type's indirection-unwrap capability, if any.
	Unwrap *Unwrap
	// Doc holds the field's doc comment lines, verbatim.
	Doc []string
}

// Unwrap describes a single-level indirection-unwrap of a field type.
type Unwrap struct {
	// Target is the type reached by the unwrap.
	Target ast.Expr
	// Method is the name of the unwrap method returning *Target, or empty
	// when the field is a plain pointer to Target.
	Method string
}

// Receiver is how a method takes its receiver.
type Receiver int

const (
	// Shared only reads through the receiver.
	Shared Receiver = iota
	// Exclusive may modify the receiver.
	Exclusive
	// Consuming takes the receiver by value and hands it back.
	Consuming
)

func (r Receiver) String() string {
	switch r {
	case Shared:
		return "shared"
	case Exclusive:
		return "exclusive"
	case Consuming:
		return "consuming"
	default:
		return "unknown"
	}
}

// Pointer reports whether the receiver is declared as a pointer.
func (r Receiver) Pointer() bool {
	return r != Consuming
}

// Op is the operation a method body performs on its field.
type Op int

const (
	// OpAddr returns the address of the field.
	OpAddr Op = iota + 1
	// OpValue returns a copy of the field.
	OpValue
	// OpThrough returns a pointer to the unwrap target.
	OpThrough
	// OpThroughValue returns a copy of the unwrap target.
	OpThroughValue
	// OpConvert returns the result of the field's conversion method.
	OpConvert
	// OpAssign stores the parameter in the field.
	OpAssign
	// OpAssignChain stores the parameter and returns the receiver.
	OpAssignChain
)

// Body is the data a renderer needs to emit a method body.
type Body struct {
	Op    Op
	Field string
	// Method is the unwrap method for OpThrough/OpThroughValue (empty for a
	// plain pointer field) or the conversion method for OpConvert.
	Method string
	// Param is the parameter assigned by OpAssign/OpAssignChain.
	Param string
}

// ResultKind is the category of a method's result.
type ResultKind int

const (
	NoResult ResultKind = iota
	TypeResult
	// SelfPointer is a pointer to the receiver's type.
	SelfPointer
	// SelfValue is the receiver's type.
	SelfValue
)

// Result is the result of a generated method.
type Result struct {
	Kind ResultKind
	Type ast.Expr
}

// Param is a method parameter.
type Param struct {
	Name string
	Type ast.Expr
}

// Method is one generated accessor.
type Method struct {
	Name       string
	Visibility layout.Visibility
	Receiver   Receiver
	Params     []Param
	Body       Body
	Result     Result
	Doc        []string
	// Inline marks the accessor as a candidate for inlining. The Go
	// compiler decides inlining on its own, so renderers ignore it.
	Inline bool

	Kind layout.Kind
	Pos  token.Position
}

// GoName returns the method name with the visibility applied.
func (m *Method) GoName() string {
	return m.Visibility.Apply(m.Name)
}
