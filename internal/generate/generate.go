// Package generate loads annotated structs and writes their accessor methods.
package generate

import (
	"bytes"
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dave/jennifer/jen"

	"github.com/ecordell/gsetgen/internal/accessor"
	"github.com/ecordell/gsetgen/internal/annotation"
	"github.com/ecordell/gsetgen/internal/diag"
	"github.com/ecordell/gsetgen/internal/layout"
)

// Header is the comment that marks generated files.
const Header = "Code generated by github.com/ecordell/gsetgen. DO NOT EDIT."

// WriterProvider returns the destination of the generated file. It is only
// called once the whole file has been generated.
type WriterProvider func() (io.Writer, error)

// Options configures a generator run.
type Options struct {
	// Dir is the directory of the package declaring the structs.
	Dir     string
	Structs []string
	// Output is the generated file.
	Output string
	// Package is the package clause of the output file; inferred when empty.
	Package string

	Vocabulary *layout.Vocabulary
	Naming     *accessor.NamingScheme
	Directive  string
	TagKey     string

	Logger *log.Logger
	// Writer overrides the destination; by default Output is created.
	Writer WriterProvider
}

func (o *Options) setDefaults() {
	if o.Vocabulary == nil {
		o.Vocabulary = layout.GetSet
	}
	if o.Naming == nil {
		o.Naming = accessor.Snake
	}
	if o.Directive == "" {
		o.Directive = annotation.DefaultDirective
	}
	if o.TagKey == "" {
		o.TagKey = annotation.DefaultTagKey
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Writer == nil {
		output := o.Output
		o.Writer = func() (io.Writer, error) {
			w, err := os.OpenFile(output, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o600)
			if err != nil {
				return nil, fmt.Errorf("couldn't open %s for writing: %w", output, err)
			}
			return w, nil
		}
	}
}

// Generate loads the package in opts.Dir, synthesizes the accessors of every
// requested struct and writes them to one file. Nothing is written if any
// annotation is invalid.
func Generate(ctx context.Context, opts Options) error {
	opts.setDefaults()
	if len(opts.Structs) == 0 {
		return fmt.Errorf("no struct names given")
	}

	pkg, err := Load(ctx, opts.Dir, opts.Logger)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Render(&buf, pkg, opts); err != nil {
		return err
	}

	w, err := opts.Writer()
	if err != nil {
		return err
	}
	if c, ok := w.(io.Closer); ok {
		defer c.Close()
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", opts.Output, err)
	}
	return nil
}

// Render generates the accessors of the requested structs of pkg into w.
func Render(w io.Writer, pkg *Package, opts Options) error {
	opts.setDefaults()

	pkgName := opts.Package
	if pkgName == "" {
		pkgName = PackageName(opts.Output, pkg.Name)
	}

	synth := accessor.New(opts.Naming, opts.Vocabulary)
	fieldOpts := FieldOptions{Directive: opts.Directive, TagKey: opts.TagKey, Output: opts.Output}

	buf := jen.NewFilePathName(pkg.Path, pkgName)
	buf.HeaderComment(Header)

	total := 0
	for _, name := range opts.Structs {
		s, err := pkg.Struct(name, fieldOpts)
		if err != nil {
			return err
		}
		methods, err := Collect(s, opts.Vocabulary, synth)
		if err != nil {
			return err
		}
		opts.Logger.Info("generating accessors", "struct", pkg.Name+"."+name, "methods", len(methods))

		for importPath, importName := range s.resolver.ImportNames() {
			buf.ImportName(importPath, importName)
		}
		for importPath, alias := range s.resolver.ImportAliases() {
			buf.ImportAlias(importPath, alias)
		}
		for _, m := range methods {
			opts.Logger.Debug("accessor", "struct", name, "method", m.GoName(), "kind", m.Kind, "pos", m.Pos)
			writeMethod(buf, s, m)
		}
		total += len(methods)
	}
	if total == 0 {
		opts.Logger.Warn("no accessor annotations found", "structs", strings.Join(opts.Structs, ", "))
	}

	if err := buf.Render(w); err != nil {
		return fmt.Errorf("rendering %s: %w", opts.Output, err)
	}
	return nil
}

// Collect resolves and synthesizes every occurrence of s in field, then
// occurrence, order. The first invalid annotation or name collision aborts.
func Collect(s *Struct, vocab *layout.Vocabulary, synth *accessor.Synthesizer) ([]*accessor.Method, error) {
	var methods []*accessor.Method
	generated := make(map[string]*accessor.Method)

	for _, f := range s.Fields {
		for _, occ := range f.Occurrences {
			l, err := layout.Resolve(vocab, occ)
			if err != nil {
				return nil, err
			}
			m, err := synth.Synthesize(l, f.FieldRef, occ.Pos)
			if err != nil {
				return nil, err
			}
			if f.Blank {
				return nil, diag.Errorf(diag.UnsupportedStructureShape, occ.Pos,
					"field %s of %s is blank and cannot be accessed", f.NameOrIndex, s.Name)
			}

			name := m.GoName()
			if prev, ok := generated[name]; ok {
				return nil, diag.Errorf(diag.DuplicateMethod, occ.Pos,
					"accessor %s of %s is already generated for field %s", name, s.Name, prev.Body.Field).
					WithHint("previous accessor at %s", prev.Pos)
			}
			if pos, ok := s.Members[name]; ok {
				return nil, diag.Errorf(diag.DuplicateMethod, occ.Pos,
					"accessor %s of %s collides with a field or method of the same name", name, s.Name).
					WithHint("declared at %s", pos)
			}
			generated[name] = m
			methods = append(methods, m)
		}
	}
	return methods, nil
}

// PackageName returns the package clause used by the Go files next to output,
// or fallback when there are none.
func PackageName(output, fallback string) string {
	outputDir := filepath.Dir(output)
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, outputDir, func(fi os.FileInfo) bool {
		return filepath.Clean(filepath.Join(outputDir, fi.Name())) != filepath.Clean(output)
	}, parser.PackageClauseOnly)
	if err != nil || len(pkgs) == 0 {
		return fallback
	}
	names := make([]string, 0, len(pkgs))
	for name := range pkgs {
		if !strings.HasSuffix(name, "_test") {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return fallback
	}
	sort.Strings(names)
	return names[0]
}
