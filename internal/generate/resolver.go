package generate

import (
	"go/ast"
	"go/types"
	"path"
	"strconv"
)

// ImportResolver maps package names to their full import paths.
type ImportResolver struct {
	pkgToPath map[string]string
	pathToPkg map[string]string
	// aliased holds the paths referred to by a name other than their own.
	aliased map[string]bool
}

// NewImportResolver creates an ImportResolver from a file's imports.
// The resolver maps package names to their full import paths, handling both
// standard imports and aliased imports. Known names of imported packages
// replace the last-path-element guess for paths such as gopkg.in/yaml.v3.
func NewImportResolver(file *ast.File, imports map[string]*types.Package) *ImportResolver {
	resolver := &ImportResolver{
		pkgToPath: make(map[string]string),
		pathToPkg: make(map[string]string),
		aliased:   make(map[string]bool),
	}
	if file == nil {
		return resolver
	}
	for _, imp := range file.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		var pkgName string
		switch {
		case imp.Name != nil:
			pkgName = imp.Name.Name
		case imports[importPath] != nil:
			pkgName = imports[importPath].Name()
		default:
			// "database/sql" -> "sql"
			pkgName = path.Base(importPath)
		}
		if pkgName == "_" || pkgName == "." {
			continue
		}
		resolver.Add(pkgName, importPath)
		if imp.Name != nil && (imports[importPath] == nil || imports[importPath].Name() != pkgName) {
			resolver.aliased[importPath] = true
		}
	}
	return resolver
}

// Add registers pkgName as a name of importPath. The first registration of a
// name wins.
func (r *ImportResolver) Add(pkgName, importPath string) {
	if _, ok := r.pkgToPath[pkgName]; !ok {
		r.pkgToPath[pkgName] = importPath
	}
	if _, ok := r.pathToPkg[importPath]; !ok {
		r.pathToPkg[importPath] = pkgName
	}
}

// Resolve returns the full import path for a package name.
// For example, "sql" might resolve to "database/sql".
func (r *ImportResolver) Resolve(pkgName string) string {
	if importPath, ok := r.pkgToPath[pkgName]; ok {
		return importPath
	}
	// Fallback for standard library single-component imports
	return pkgName
}

// Qualifier returns a types.Qualifier that prints packages other than local
// by their name and registers them with the resolver.
func (r *ImportResolver) Qualifier(local *types.Package) types.Qualifier {
	return func(p *types.Package) string {
		if p == local {
			return ""
		}
		if name, ok := r.pathToPkg[p.Path()]; ok {
			return name
		}
		name := p.Name()
		for i := 2; r.pkgToPath[name] != ""; i++ {
			name = p.Name() + strconv.Itoa(i)
		}
		if name != p.Name() {
			r.aliased[p.Path()] = true
		}
		r.Add(name, p.Path())
		return name
	}
}

// ImportNames returns the package name of every registered path that is
// referred to by its own name.
func (r *ImportResolver) ImportNames() map[string]string {
	names := make(map[string]string, len(r.pathToPkg))
	for importPath, name := range r.pathToPkg {
		if !r.aliased[importPath] {
			names[importPath] = name
		}
	}
	return names
}

// ImportAliases returns the alias of every registered path that is referred
// to by a name other than its own.
func (r *ImportResolver) ImportAliases() map[string]string {
	aliases := make(map[string]string, len(r.aliased))
	for importPath := range r.aliased {
		aliases[importPath] = r.pathToPkg[importPath]
	}
	return aliases
}
