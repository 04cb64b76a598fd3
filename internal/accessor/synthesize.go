package accessor

import (
	"go/ast"
	"go/token"

	"github.com/ecordell/gsetgen/internal/diag"
	"github.com/ecordell/gsetgen/internal/layout"
)

// ValueParam is the parameter name of generated setters.
const ValueParam = "value"

// result rules for kinds without a type override
type resultRule int

const (
	resultFieldPtr resultRule = iota
	resultField
	resultTargetPtr
	resultTarget
	resultRequired
	resultNone
	resultSelfPtr
	resultSelf
)

// shape is the code shape of one kind.
type shape struct {
	receiver Receiver
	op       Op
	convert  string
	result   resultRule
	takes    bool
}

var shapes = map[layout.Kind]shape{
	layout.Read:             {receiver: Shared, op: OpAddr, result: resultFieldPtr},
	layout.ReadMut:          {receiver: Exclusive, op: OpAddr, result: resultFieldPtr},
	layout.ReadCopy:         {receiver: Shared, op: OpValue, result: resultField},
	layout.ReadThrough:      {receiver: Shared, op: OpThrough, result: resultTargetPtr},
	layout.ReadThroughMut:   {receiver: Exclusive, op: OpThrough, result: resultTargetPtr},
	layout.ReadThroughCopy:  {receiver: Shared, op: OpThroughValue, result: resultTarget},
	layout.ReadAsRef:        {receiver: Shared, op: OpConvert, convert: "AsRef", result: resultRequired},
	layout.ReadAsThrough:    {receiver: Shared, op: OpConvert, convert: "AsDeref", result: resultRequired},
	layout.ReadAsThroughMut: {receiver: Exclusive, op: OpConvert, convert: "AsDerefMut", result: resultRequired},
	layout.Write:            {receiver: Exclusive, op: OpAssign, result: resultNone, takes: true},
	layout.WriteBorrowed:    {receiver: Exclusive, op: OpAssignChain, result: resultSelfPtr, takes: true},
	layout.WriteOwned:       {receiver: Consuming, op: OpAssignChain, result: resultSelf, takes: true},
}

// DefaultUnwrapMethod is the method of the unwrap contract assumed when a
// through kind has a type override but no discovered unwrap capability.
const DefaultUnwrapMethod = "Deref"

// Synthesizer turns layouts into methods. The naming scheme derives missing
// names; the vocabulary is only used to spell kinds in diagnostics.
type Synthesizer struct {
	naming *NamingScheme
	vocab  *layout.Vocabulary
}

// New returns a Synthesizer. Nil arguments select Snake and layout.GetSet.
func New(naming *NamingScheme, vocab *layout.Vocabulary) *Synthesizer {
	if naming == nil {
		naming = Snake
	}
	if vocab == nil {
		vocab = layout.GetSet
	}
	return &Synthesizer{naming: naming, vocab: vocab}
}

var defaultSynthesizer = New(nil, nil)

// Synthesize generates one method with the snake naming scheme.
func Synthesize(l *layout.Layout, field FieldRef, pos token.Position) (*Method, error) {
	return defaultSynthesizer.Synthesize(l, field, pos)
}

// Synthesize generates the method described by l for field. pos locates the
// annotation for diagnostics.
func (s *Synthesizer) Synthesize(l *layout.Layout, field FieldRef, pos token.Position) (*Method, error) {
	if l.Kind == layout.KindNone {
		return nil, diag.Errorf(diag.MissingKind, pos, "missing accessor kind on field %s", field.NameOrIndex).
			WithHint("%s", diag.OneOf(s.vocab.Tags()))
	}
	sh, ok := shapes[l.Kind]
	if !ok {
		return nil, diag.Errorf(diag.UnknownKind, pos, "unsupported accessor kind %s", l.Kind)
	}

	name, err := s.name(l, field, pos)
	if err != nil {
		return nil, err
	}

	result, err := s.result(l, sh, field, pos)
	if err != nil {
		return nil, err
	}

	m := &Method{
		Name:       name,
		Visibility: l.Visibility,
		Receiver:   sh.receiver,
		Body:       Body{Op: sh.op, Field: field.NameOrIndex},
		Result:     result,
		Doc:        field.Doc,
		Inline:     true,
		Kind:       l.Kind,
		Pos:        pos,
	}

	switch sh.op {
	case OpThrough, OpThroughValue:
		m.Body.Method = DefaultUnwrapMethod
		if field.Unwrap != nil {
			m.Body.Method = field.Unwrap.Method
		}
	case OpConvert:
		m.Body.Method = sh.convert
	}
	if sh.takes {
		m.Params = []Param{{Name: ValueParam, Type: field.Type}}
		m.Body.Param = ValueParam
	}
	return m, nil
}

func (s *Synthesizer) name(l *layout.Layout, field FieldRef, pos token.Position) (string, error) {
	if l.Name != "" {
		return l.Name, nil
	}

	role := RoleOf(l.Kind)
	name, err := s.naming.Derive(role, field.NameOrIndex)
	if err != nil || !layout.IsIdentifier(name) {
		return "", diag.Errorf(diag.MissingName, pos,
			"missing `%s` for %s accessor of field %s: default %s name %q is not a valid identifier",
			s.vocab.Keys.Name, s.tag(l), field.NameOrIndex, role, name).
			WithHint("set a name override")
	}
	return name, nil
}

func (s *Synthesizer) tag(l *layout.Layout) string {
	if l.KindTag != "" {
		return l.KindTag
	}
	return s.vocab.TagFor(l.Kind)
}

func (s *Synthesizer) result(l *layout.Layout, sh shape, field FieldRef, pos token.Position) (Result, error) {
	if l.Type != nil {
		return Result{Kind: TypeResult, Type: l.Type}, nil
	}

	switch sh.result {
	case resultFieldPtr:
		return Result{Kind: TypeResult, Type: &ast.StarExpr{X: field.Type}}, nil
	case resultField:
		return Result{Kind: TypeResult, Type: field.Type}, nil
	case resultTargetPtr, resultTarget:
		if field.Unwrap == nil || field.Unwrap.Target == nil {
			return Result{}, diag.Errorf(diag.UnresolvedTarget, pos,
				"cannot infer the result of %s accessor: field %s has no %s() method or pointer type",
				s.tag(l), field.NameOrIndex, DefaultUnwrapMethod).
				WithHint("set a type override")
		}
		if sh.result == resultTargetPtr {
			return Result{Kind: TypeResult, Type: &ast.StarExpr{X: field.Unwrap.Target}}, nil
		}
		return Result{Kind: TypeResult, Type: field.Unwrap.Target}, nil
	case resultRequired:
		return Result{}, diag.Errorf(diag.MissingType, pos,
			"missing `%s` for %s accessor of field %s", s.vocab.Keys.Type, s.tag(l), field.NameOrIndex).
			WithHint("the result type of this kind cannot be inferred and must be set")
	case resultSelfPtr:
		return Result{Kind: SelfPointer}, nil
	case resultSelf:
		return Result{Kind: SelfValue}, nil
	default:
		return Result{Kind: NoResult}, nil
	}
}
