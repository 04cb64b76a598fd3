package generate

import (
	"bytes"
	"context"
	"flag"
	"go/parser"
	"go/token"
	"go/types"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/ecordell/gsetgen/internal/accessor"
	"github.com/ecordell/gsetgen/internal/diag"
	"github.com/ecordell/gsetgen/internal/layout"
)

const testdata = "../../testdata"

var update = flag.Bool("update", false, "update golden files")

func loadTestdata(t *testing.T, name string) *Package {
	t.Helper()
	logger := log.New(os.Stderr)
	logger.SetLevel(log.WarnLevel)
	pkg, err := Load(context.Background(), filepath.Join(testdata, name), logger)
	require.NoError(t, err)
	return pkg
}

// typeCheck loads the package in dir with src overlaid as output and fails on
// any package error.
func typeCheck(t *testing.T, dir, output string, src []byte) {
	t.Helper()
	abs, err := filepath.Abs(output)
	require.NoError(t, err)
	pkgs, err := packages.Load(&packages.Config{
		Mode:    loadMode,
		Dir:     dir,
		Overlay: map[string][]byte{abs: src},
	}, ".")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	for _, e := range pkgs[0].Errors {
		t.Errorf("generated code does not type-check: %s", e)
	}
}

// compareGolden checks generated against a golden file next to the input.
// Cases without a golden file are only type-checked until -update writes one.
func compareGolden(t *testing.T, goldenFile string, generated []byte) {
	t.Helper()
	if *update {
		require.NoError(t, os.WriteFile(goldenFile, generated, 0o644))
		t.Logf("Updated golden file: %s", goldenFile)
		return
	}
	golden, err := os.ReadFile(goldenFile)
	if os.IsNotExist(err) {
		t.Logf("no golden file %s, run 'go test -update' to create it", goldenFile)
		return
	}
	require.NoError(t, err)
	assert.Equal(t, string(golden), string(generated), "run 'go test -update' to update golden files")
}

func TestRender(t *testing.T) {
	tests := []struct {
		name        string
		dir         string
		structs     []string
		vocab       *layout.Vocabulary
		naming      *accessor.NamingScheme
		contains    []string
		notContains []string
	}{
		{
			name:    "basic",
			dir:     "basic",
			structs: []string{"Account"},
			contains: []string{
				"// Code generated by github.com/ecordell/gsetgen. DO NOT EDIT.",
				"package testdata",
				"// Count of logins.\nfunc (a *Account) Get_count() int64 {\n\treturn a.count\n}",
				"// Count of logins.\nfunc (a *Account) SetCount(value int64) {\n\ta.count = value\n}",
				"func (a *Account) NameMut() *string {\n\treturn &a.Name\n}",
				"func (a *Account) Email() *string {\n\treturn &a.email\n}",
				"func (a *Account) SetEmail(value string) *Account {\n\ta.email = value\n\treturn a\n}",
				"func (a Account) with_email(value string) Account {\n\ta.email = value\n\treturn a\n}",
			},
			notContains: []string{"untouched", "getset:"},
		},
		{
			name:    "setter with result override",
			dir:     "basic",
			structs: []string{"Counter"},
			contains: []string{
				"func (c *Counter) SetN(value int) error {\n\tc.n = value\n\tvar zero error\n\treturn zero\n}",
			},
		},
		{
			name:    "cross package",
			dir:     "cross_package",
			structs: []string{"Schedule"},
			contains: []string{
				`"fmt"`,
				`"time"`,
				"func (s *Schedule) Start() time.Time {\n\treturn s.start\n}",
				"func (s *Schedule) SetStart(value time.Time) *Schedule {",
				"func (s *Schedule) Timeout() time.Duration {\n\treturn *s.timeout\n}",
				"func (s *Schedule) Every() fmt.Stringer {\n\treturn &s.every\n}",
				`"text/template"`,
				`template2 "html/template"`,
				"func (s *Schedule) Body() *template.Template {\n\treturn s.body\n}",
				"func (s *Schedule) Page() *template2.Template {\n\treturn s.page.Deref()\n}",
			},
		},
		{
			name:    "database/sql",
			dir:     "database_sql",
			structs: []string{"DatabaseConfig"},
			contains: []string{
				`"database/sql"`,
				"func (d *DatabaseConfig) Dsn() sql.NullString {",
				"func (d *DatabaseConfig) MaxConnsMut() *sql.NullInt64 {",
				"func (d *DatabaseConfig) SetMaxConns(value sql.NullInt64) {",
			},
		},
		{
			name:    "generics",
			dir:     "generics",
			structs: []string{"Container", "Pair"},
			contains: []string{
				"func (c *Container[T]) Value() *T {\n\treturn &c.value\n}",
				"func (c Container[T]) SetValue(value T) Container[T] {",
				"func (p *Pair[K, V]) Key() K {",
				"func (p *Pair[K, V]) ValueMut() *V {",
				"func (p *Pair[K, V]) SetValue(value V) *Pair[K, V] {",
				"func (p *Pair[K, V]) Next() Pair[K, V] {\n\treturn *p.next\n}",
				"func (p *Pair[K, V]) Items() []Container[V] {",
			},
		},
		{
			name:    "deref",
			dir:     "deref",
			structs: []string{"Shape"},
			contains: []string{
				"func (s *Shape) Origin() *Point {\n\treturn s.origin\n}",
				"func (s *Shape) origin_copy() Point {\n\treturn *s.origin\n}",
				"// Scale factor.\nfunc (s *Shape) ScaleMut() *float64 {\n\treturn s.scale.Deref()\n}",
				"func (s *Shape) Label() *string {\n\treturn s.label.AsRef()\n}",
				"func (s *Shape) Weight() *float64 {\n\treturn s.weight.AsDeref()\n}",
				"func (s *Shape) WeightMut() *float64 {\n\treturn s.weight.AsDerefMut()\n}",
			},
		},
		{
			name:    "legacy vocabulary",
			dir:     "legacy",
			structs: []string{"Options"},
			vocab:   layout.Gset,
			contains: []string{
				"func (o *Options) Retries() int {\n\treturn *o.retries\n}",
				"func (o *Options) Name() *string {\n\treturn o.name.AsRef()\n}",
				"func (o Options) WithVerbose(value bool) Options {",
			},
		},
		{
			name:    "embedded and blank fields",
			dir:     "nested",
			structs: []string{"Wrapper"},
			contains: []string{
				"func (w *Wrapper) BaseMut() *Base {\n\treturn &w.Base\n}",
				"func (w *Wrapper) InnerRef() *Inner {\n\treturn w.Inner\n}",
				"func (w *Wrapper) Count() int {\n\treturn w.count\n}",
			},
		},
		{
			name:    "visibility",
			dir:     "unexported",
			structs: []string{"Visibility"},
			contains: []string{
				"func (v *Visibility) exported() int {",
				"func (v *Visibility) level() int {",
				"func (v *Visibility) setLevel(value int) {",
				"func (v *Visibility) Hidden() string {",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(testdata, tt.dir)
			pkg := loadTestdata(t, tt.dir)
			naming := tt.naming
			if naming == nil {
				naming = accessor.GoStyle
			}
			output := filepath.Join(dir, "accessors_gen.go")

			var buf bytes.Buffer
			err := Render(&buf, pkg, Options{
				Structs:    tt.structs,
				Output:     output,
				Vocabulary: tt.vocab,
				Naming:     naming,
			})
			require.NoError(t, err)
			generated := buf.String()

			for _, want := range tt.contains {
				assert.Contains(t, generated, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, generated, unwanted)
			}

			_, err = parser.ParseFile(token.NewFileSet(), output, buf.Bytes(), parser.ParseComments)
			require.NoError(t, err, generated)
			typeCheck(t, dir, output, buf.Bytes())

			compareGolden(t, filepath.Join(dir, strings.Join(tt.structs, "_")+".golden"), buf.Bytes())
		})
	}
}

func TestRenderOrder(t *testing.T) {
	pkg := loadTestdata(t, "basic")
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, pkg, Options{
		Structs: []string{"Account"},
		Output:  filepath.Join(testdata, "basic", "accessors_gen.go"),
		Naming:  accessor.GoStyle,
	}))

	generated := buf.String()
	var last int
	for _, name := range []string{"Get_count", "SetCount", "NameMut", "Email", "SetEmail", "with_email"} {
		i := strings.Index(generated, ") "+name+"(")
		require.GreaterOrEqual(t, i, 0, name)
		assert.Greater(t, i, last, name)
		last = i
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		structName string
		want       diag.Code
	}{
		{"UnknownKind", diag.UnknownKind},
		{"DuplicateKind", diag.DuplicateKind},
		{"MissingType", diag.MissingType},
		{"FieldCollision", diag.DuplicateMethod},
		{"MethodCollision", diag.DuplicateMethod},
		{"DuplicateAccessor", diag.DuplicateMethod},
		{"BlankNamed", diag.UnsupportedStructureShape},
		{"BlankUnnamed", diag.MissingName},
		{"Unresolved", diag.UnresolvedTarget},
		{"Malformed", diag.MalformedAnnotation},
		{"Nested", diag.UnsupportedNesting},
		{"NestedTag", diag.UnsupportedNesting},
		{"Kind", diag.UnsupportedStructureShape},
	}

	pkg := loadTestdata(t, "invalid")
	for _, tt := range tests {
		t.Run(tt.structName, func(t *testing.T) {
			var buf bytes.Buffer
			err := Render(&buf, pkg, Options{
				Structs: []string{tt.structName},
				Output:  filepath.Join(testdata, "invalid", "accessors_gen.go"),
				Naming:  accessor.GoStyle,
			})
			require.Error(t, err)
			assert.Equal(t, tt.want, diag.CodeOf(err), "got %v", err)
			assert.Contains(t, err.Error(), "input.go:")
			assert.Zero(t, buf.Len())
		})
	}
}

func TestRenderSnakeCollision(t *testing.T) {
	// Under the snake scheme the getter of email is named like the field.
	pkg := loadTestdata(t, "basic")
	err := Render(&bytes.Buffer{}, pkg, Options{
		Structs: []string{"Account"},
		Output:  filepath.Join(testdata, "basic", "accessors_gen.go"),
		Naming:  accessor.Snake,
	})
	require.Error(t, err)
	assert.True(t, diag.Is(err, diag.DuplicateMethod))
	assert.Contains(t, err.Error(), "email")
}

func TestRenderUnknownStruct(t *testing.T) {
	pkg := loadTestdata(t, "basic")
	err := Render(&bytes.Buffer{}, pkg, Options{Structs: []string{"Missing"}, Output: "x.go"})
	require.ErrorIs(t, err, ErrStructNotFound)
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(context.Background(), Options{
		Dir:     filepath.Join(testdata, "basic"),
		Structs: []string{"Account"},
		Output:  filepath.Join(testdata, "basic", "accessors_gen.go"),
		Naming:  accessor.GoStyle,
		Writer: func() (io.Writer, error) {
			return &buf, nil
		},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "func (a *Account) SetCount(value int64)")

	var called bool
	err = Generate(context.Background(), Options{
		Dir:     filepath.Join(testdata, "invalid"),
		Structs: []string{"UnknownKind"},
		Output:  filepath.Join(testdata, "invalid", "accessors_gen.go"),
		Writer: func() (io.Writer, error) {
			called = true
			return &buf, nil
		},
	})
	require.Error(t, err)
	assert.False(t, called, "nothing is written when generation fails")
}

func TestCollectSkipsFieldsWithoutAnnotations(t *testing.T) {
	pkg := loadTestdata(t, "basic")
	s, err := pkg.Struct("Account", FieldOptions{Directive: "getset:", TagKey: "getset"})
	require.NoError(t, err)

	methods, err := Collect(s, layout.GetSet, accessor.New(accessor.GoStyle, nil))
	require.NoError(t, err)
	require.Len(t, methods, 6)
	for _, m := range methods {
		assert.NotEqual(t, "untouched", m.Body.Field)
	}

	// Under a different tag key the struct tag of Name is ignored.
	s, err = pkg.Struct("Account", FieldOptions{Directive: "getset:", TagKey: "other"})
	require.NoError(t, err)
	methods, err = Collect(s, layout.GetSet, accessor.New(accessor.GoStyle, nil))
	require.NoError(t, err)
	assert.Len(t, methods, 5)
}

func TestStructFields(t *testing.T) {
	pkg := loadTestdata(t, "nested")
	s, err := pkg.Struct("Wrapper", FieldOptions{Directive: "getset:", TagKey: "getset"})
	require.NoError(t, err)

	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.NameOrIndex)
	}
	assert.Equal(t, []string{"Base", "Inner", "2", "count"}, names)
	assert.True(t, s.Fields[2].Blank)
	assert.Nil(t, s.Fields[0].Unwrap)
	require.NotNil(t, s.Fields[1].Unwrap)
	assert.Empty(t, s.Fields[1].Unwrap.Method)
	assert.Contains(t, s.Members, "Base")
	assert.Contains(t, s.Members, "count")
	assert.NotContains(t, s.Members, "_")
}

func TestUnwrapDiscovery(t *testing.T) {
	pkg := loadTestdata(t, "deref")
	s, err := pkg.Struct("Shape", FieldOptions{Directive: "getset:", TagKey: "getset"})
	require.NoError(t, err)

	byName := make(map[string]Field)
	for _, f := range s.Fields {
		byName[f.NameOrIndex] = f
	}

	require.NotNil(t, byName["scale"].Unwrap)
	assert.Equal(t, "Deref", byName["scale"].Unwrap.Method)
	assert.Equal(t, "float64", types.ExprString(byName["scale"].Unwrap.Target))

	require.NotNil(t, byName["origin"].Unwrap)
	assert.Equal(t, "Point", types.ExprString(byName["origin"].Unwrap.Target))

	assert.Nil(t, byName["label"].Unwrap)
	assert.Equal(t, []string{"Scale factor."}, byName["scale"].Doc)
}

func TestPackageName(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "accessors_gen.go")
	assert.Equal(t, "fallback", PackageName(output, "fallback"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_test.go"), []byte("package things_test\n"), 0o600))
	assert.Equal(t, "fallback", PackageName(output, "fallback"))

	require.NoError(t, os.WriteFile(output, []byte("package stale\n"), 0o600))
	assert.Equal(t, "fallback", PackageName(output, "fallback"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package things\n"), 0o600))
	assert.Equal(t, "things", PackageName(output, "fallback"))
}
