package generate

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"golang.org/x/tools/go/packages"

	"github.com/ecordell/gsetgen/internal/accessor"
	"github.com/ecordell/gsetgen/internal/annotation"
	"github.com/ecordell/gsetgen/internal/diag"
	"github.com/ecordell/gsetgen/internal/layout"
)

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedImports |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo

// ErrStructNotFound is returned when a requested type is not declared in the
// loaded package.
var ErrStructNotFound = errors.New("type not found")

// Package is a loaded, type-checked Go package.
type Package struct {
	Name string
	Path string
	Fset *token.FileSet
	pkg  *packages.Package
}

// Load loads and type-checks the package in dir. Type errors are logged as
// warnings: the package being generated for often does not build until its
// accessors exist.
func Load(ctx context.Context, dir string, logger *log.Logger) (*Package, error) {
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     dir,
		Fset:    fset,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", dir, err)
	}
	if len(pkgs) != 1 {
		return nil, fmt.Errorf("loading %s: expected one package, found %d", dir, len(pkgs))
	}
	pkg := pkgs[0]
	for _, e := range pkg.Errors {
		logger.Warn("package error", "pkg", pkg.PkgPath, "err", e.Msg, "pos", e.Pos)
	}
	if len(pkg.Syntax) == 0 {
		return nil, fmt.Errorf("loading %s: no Go files", dir)
	}
	if pkg.Types == nil || pkg.TypesInfo == nil {
		return nil, fmt.Errorf("loading %s: no type information", dir)
	}

	logger.Debug("loaded package", "pkg", pkg.PkgPath, "files", len(pkg.Syntax))
	return &Package{
		Name: pkg.Name,
		Path: pkg.PkgPath,
		Fset: fset,
		pkg:  pkg,
	}, nil
}

// Struct is an annotated struct declaration.
type Struct struct {
	Name       string
	TypeParams []string
	Pos        token.Position
	Fields     []Field

	// Members are the names of the struct's fields and of its methods
	// declared outside the output file, with their positions.
	Members map[string]token.Position

	resolver *ImportResolver
}

// Field is one field of a Struct with its accessor occurrences.
type Field struct {
	accessor.FieldRef
	// Blank marks a field declared as _, which cannot be accessed.
	Blank       bool
	Occurrences []annotation.Occurrence
}

// FieldOptions selects the annotation surfaces read from each field.
type FieldOptions struct {
	Directive string
	TagKey    string
	// Output is the generated file; methods declared there are not
	// considered when checking for collisions.
	Output string
}

// Struct finds the declaration of the named struct and collects its fields.
func (p *Package) Struct(name string, opts FieldOptions) (*Struct, error) {
	file, ts := p.lookup(name)
	if ts == nil {
		return nil, fmt.Errorf("%w: %s in package %s", ErrStructNotFound, name, p.Path)
	}
	pos := p.Fset.Position(ts.Name.Pos())
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return nil, diag.Errorf(diag.UnsupportedStructureShape, pos,
			"%s is not a struct type", name).
			WithHint("accessors can only be generated for struct fields")
	}

	s := &Struct{
		Name:     name,
		Pos:      pos,
		Members:  make(map[string]token.Position),
		resolver: NewImportResolver(file, p.imports()),
	}
	if ts.TypeParams != nil {
		for _, field := range ts.TypeParams.List {
			for _, n := range field.Names {
				s.TypeParams = append(s.TypeParams, n.Name)
			}
		}
	}

	index := 0
	for _, field := range st.Fields.List {
		occs, err := annotation.FromField(p.Fset, field, opts.Directive, opts.TagKey)
		if err != nil {
			return nil, err
		}
		doc := annotation.DocLines(field.Doc, opts.Directive)
		unwrap := p.unwrap(field.Type, s.resolver)

		names := field.Names
		if len(names) == 0 {
			names = []*ast.Ident{{Name: embeddedName(field.Type), NamePos: field.Type.Pos()}}
		}
		for _, n := range names {
			f := Field{
				FieldRef: accessor.FieldRef{
					NameOrIndex: n.Name,
					Type:        field.Type,
					Unwrap:      unwrap,
					Doc:         doc,
				},
				Occurrences: occs,
			}
			if n.Name == "_" {
				f.Blank = true
				f.NameOrIndex = strconv.Itoa(index)
			} else {
				s.Members[n.Name] = p.Fset.Position(n.Pos())
			}
			s.Fields = append(s.Fields, f)
			index++
		}
	}

	p.collectMethods(s, opts.Output)
	return s, nil
}

func (p *Package) imports() map[string]*types.Package {
	imports := make(map[string]*types.Package)
	for _, imp := range p.pkg.Types.Imports() {
		imports[imp.Path()] = imp
	}
	return imports
}

func (p *Package) lookup(name string) (*ast.File, *ast.TypeSpec) {
	for _, file := range p.pkg.Syntax {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				if ts, ok := spec.(*ast.TypeSpec); ok && ts.Name.Name == name {
					return file, ts
				}
			}
		}
	}
	return nil, nil
}

func (p *Package) collectMethods(s *Struct, output string) {
	obj := p.pkg.Types.Scope().Lookup(s.Name)
	if obj == nil {
		return
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return
	}
	out, _ := filepath.Abs(output)
	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		pos := p.Fset.Position(m.Pos())
		if abs, err := filepath.Abs(pos.Filename); err == nil && output != "" && abs == out {
			continue
		}
		s.Members[m.Name()] = pos
	}
}

// unwrap discovers the one-level unwrap capability of a field type: a
// pointer, or a Deref method returning a pointer.
func (p *Package) unwrap(expr ast.Expr, resolver *ImportResolver) *accessor.Unwrap {
	typ := p.pkg.TypesInfo.TypeOf(expr)
	if typ == nil {
		return nil
	}
	if ptr, ok := typ.Underlying().(*types.Pointer); ok {
		if star, ok := expr.(*ast.StarExpr); ok {
			return &accessor.Unwrap{Target: star.X}
		}
		return p.target(ptr.Elem(), "", resolver)
	}

	obj, _, _ := types.LookupFieldOrMethod(typ, true, p.pkg.Types, accessor.DefaultUnwrapMethod)
	fn, ok := obj.(*types.Func)
	if !ok {
		return nil
	}
	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return nil
	}
	ptr, ok := sig.Results().At(0).Type().(*types.Pointer)
	if !ok {
		return nil
	}
	return p.target(ptr.Elem(), accessor.DefaultUnwrapMethod, resolver)
}

func (p *Package) target(typ types.Type, method string, resolver *ImportResolver) *accessor.Unwrap {
	text := types.TypeString(typ, resolver.Qualifier(p.pkg.Types))
	expr, err := layout.ParseType(text)
	if err != nil {
		return nil
	}
	return &accessor.Unwrap{Target: expr, Method: method}
}

// embeddedName returns the field name of an embedded field of type expr.
func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.IndexExpr:
		return embeddedName(t.X)
	case *ast.IndexListExpr:
		return embeddedName(t.X)
	default:
		return types.ExprString(expr)
	}
}
