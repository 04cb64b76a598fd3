package generate

import (
	"go/ast"
	"go/types"

	"github.com/dave/jennifer/jen"
)

// astTypeToJenCode converts an AST type expression to jen.Code for code
// generation. Package-qualified names are resolved through resolver so that
// jennifer manages the imports of the output file.
func astTypeToJenCode(expr ast.Expr, resolver *ImportResolver) jen.Code {
	switch t := expr.(type) {
	case *ast.Ident:
		return jen.Id(t.Name)
	case *ast.ParenExpr:
		return jen.Parens(astTypeToJenCode(t.X, resolver))
	case *ast.StarExpr:
		return jen.Op("*").Add(astTypeToJenCode(t.X, resolver))
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			return jen.Qual(resolver.Resolve(pkg.Name), t.Sel.Name)
		}
		return verbatim(expr)
	case *ast.IndexExpr:
		return jen.Add(astTypeToJenCode(t.X, resolver)).Types(astTypeToJenCode(t.Index, resolver))
	case *ast.IndexListExpr:
		args := make([]jen.Code, 0, len(t.Indices))
		for _, index := range t.Indices {
			args = append(args, astTypeToJenCode(index, resolver))
		}
		return jen.Add(astTypeToJenCode(t.X, resolver)).Types(args...)
	case *ast.ArrayType:
		if t.Len == nil {
			return jen.Index().Add(astTypeToJenCode(t.Elt, resolver))
		}
		return jen.Index(arrayLen(t.Len, resolver)).Add(astTypeToJenCode(t.Elt, resolver))
	case *ast.Ellipsis:
		return jen.Op("...").Add(astTypeToJenCode(t.Elt, resolver))
	case *ast.MapType:
		return jen.Map(astTypeToJenCode(t.Key, resolver)).Add(astTypeToJenCode(t.Value, resolver))
	case *ast.InterfaceType:
		if t.Methods == nil || len(t.Methods.List) == 0 {
			return jen.Interface()
		}
		return verbatim(expr)
	case *ast.ChanType:
		switch t.Dir {
		case ast.SEND:
			return jen.Chan().Op("<-").Add(astTypeToJenCode(t.Value, resolver))
		case ast.RECV:
			return jen.Op("<-").Chan().Add(astTypeToJenCode(t.Value, resolver))
		default:
			return jen.Chan().Add(astTypeToJenCode(t.Value, resolver))
		}
	case *ast.FuncType:
		return jen.Func().Params(fieldListCode(t.Params, resolver)...).Add(resultsCode(t.Results, resolver))
	case *ast.StructType:
		if t.Fields == nil || len(t.Fields.List) == 0 {
			return jen.Struct()
		}
		return verbatim(expr)
	default:
		return verbatim(expr)
	}
}

// verbatim prints expr as written. Qualified names inside it are not tracked
// as imports.
func verbatim(expr ast.Expr) jen.Code {
	return jen.Op(types.ExprString(expr))
}

func arrayLen(expr ast.Expr, resolver *ImportResolver) jen.Code {
	switch l := expr.(type) {
	case *ast.BasicLit:
		return jen.Op(l.Value)
	case *ast.Ident:
		return jen.Id(l.Name)
	case *ast.SelectorExpr:
		if pkg, ok := l.X.(*ast.Ident); ok {
			return jen.Qual(resolver.Resolve(pkg.Name), l.Sel.Name)
		}
	}
	return verbatim(expr)
}

func fieldListCode(fields *ast.FieldList, resolver *ImportResolver) []jen.Code {
	if fields == nil {
		return nil
	}
	var out []jen.Code
	for _, f := range fields.List {
		typ := astTypeToJenCode(f.Type, resolver)
		if len(f.Names) == 0 {
			out = append(out, typ)
			continue
		}
		for _, name := range f.Names {
			out = append(out, jen.Id(name.Name).Add(typ))
		}
	}
	return out
}

func resultsCode(fields *ast.FieldList, resolver *ImportResolver) jen.Code {
	if fields == nil || len(fields.List) == 0 {
		return jen.Null()
	}
	if len(fields.List) == 1 && len(fields.List[0].Names) == 0 {
		return astTypeToJenCode(fields.List[0].Type, resolver)
	}
	return jen.Params(fieldListCode(fields, resolver)...)
}
