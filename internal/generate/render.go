package generate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"

	"github.com/ecordell/gsetgen/internal/accessor"
)

// receiverID names the receiver after the first letter of the type.
func receiverID(structName string) string {
	r, _ := utf8.DecodeRuneInString(structName)
	if !unicode.IsLetter(r) {
		return "r"
	}
	return strings.ToLower(string(r))
}

// selfType is the struct type as used in receivers and results, with its
// type parameters.
func selfType(s *Struct) *jen.Statement {
	self := jen.Id(s.Name)
	if len(s.TypeParams) == 0 {
		return self
	}
	params := make([]jen.Code, 0, len(s.TypeParams))
	for _, p := range s.TypeParams {
		params = append(params, jen.Id(p))
	}
	return self.Types(params...)
}

// writeMethod renders m as a method of s.
func writeMethod(buf *jen.File, s *Struct, m *accessor.Method) {
	recv := receiverID(s.Name)

	receiver := jen.Id(recv)
	if m.Receiver.Pointer() {
		receiver.Op("*")
	}
	receiver.Add(selfType(s))

	params := make([]jen.Code, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, jen.Id(p.Name).Add(astTypeToJenCode(p.Type, s.resolver)))
	}

	for _, line := range m.Doc {
		buf.Comment(line)
	}
	buf.Func().Params(receiver).Id(m.GoName()).Params(params...).Add(resultCode(s, m.Result)).
		BlockFunc(func(grp *jen.Group) {
			writeBody(grp, recv, m.Body)
			if m.Body.Op == accessor.OpAssign && m.Result.Kind == accessor.TypeResult {
				// A plain setter has nothing to return; an overridden result
				// gets its zero value.
				grp.Var().Id("zero").Add(resultCode(s, m.Result))
				grp.Return(jen.Id("zero"))
			}
		})
	buf.Line()
}

func resultCode(s *Struct, r accessor.Result) jen.Code {
	switch r.Kind {
	case accessor.TypeResult:
		return astTypeToJenCode(r.Type, s.resolver)
	case accessor.SelfPointer:
		return jen.Op("*").Add(selfType(s))
	case accessor.SelfValue:
		return selfType(s)
	default:
		return jen.Null()
	}
}

func writeBody(grp *jen.Group, recv string, body accessor.Body) {
	field := func() *jen.Statement {
		return jen.Id(recv).Dot(body.Field)
	}
	unwrapped := func() *jen.Statement {
		if body.Method == "" {
			return field()
		}
		return field().Dot(body.Method).Call()
	}

	switch body.Op {
	case accessor.OpAddr:
		grp.Return(jen.Op("&").Add(field()))
	case accessor.OpValue:
		grp.Return(field())
	case accessor.OpThrough:
		grp.Return(unwrapped())
	case accessor.OpThroughValue:
		grp.Return(jen.Op("*").Add(unwrapped()))
	case accessor.OpConvert:
		grp.Return(field().Dot(body.Method).Call())
	case accessor.OpAssign:
		grp.Add(field()).Op("=").Id(body.Param)
	case accessor.OpAssignChain:
		grp.Add(field()).Op("=").Id(body.Param)
		grp.Return(jen.Id(recv))
	}
}
