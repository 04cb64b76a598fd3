package accessor

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/ecordell/gsetgen/internal/layout"
)

// Role groups kinds that share a default name.
type Role int

const (
	Getter Role = iota
	MutGetter
	Setter
)

func (r Role) String() string {
	switch r {
	case Getter:
		return "getter"
	case MutGetter:
		return "mut_getter"
	case Setter:
		return "setter"
	default:
		return "unknown"
	}
}

// NamingTemplates are the text/template sources of a naming scheme. Each
// template sees the field as .Name and may use the sprig functions plus
// export and unexport, which change the case of the first letter only.
type NamingTemplates struct {
	Getter    string `yaml:"getter" default:"{{ .Name }}"`
	MutGetter string `yaml:"mut_getter" default:"{{ .Name }}_mut"`
	Setter    string `yaml:"setter" default:"set_{{ .Name }}"`
}

// NamingScheme derives method names for accessors without a name override.
type NamingScheme struct {
	Name      string
	templates [3]*template.Template
}

// NewNamingScheme compiles the templates of a naming scheme.
func NewNamingScheme(name string, src NamingTemplates) (*NamingScheme, error) {
	s := &NamingScheme{Name: name}
	for role, text := range map[Role]string{Getter: src.Getter, MutGetter: src.MutGetter, Setter: src.Setter} {
		tmpl, err := template.New(role.String()).
			Option("missingkey=error").
			Funcs(funcMap()).
			Parse(text)
		if err != nil {
			return nil, fmt.Errorf("naming scheme %s: %s template: %w", name, role, err)
		}
		s.templates[role] = tmpl
	}
	return s, nil
}

// MustNamingScheme is like NewNamingScheme but panics on error.
func MustNamingScheme(name string, src NamingTemplates) *NamingScheme {
	s, err := NewNamingScheme(name, src)
	if err != nil {
		panic(err)
	}
	return s
}

var (
	// Snake keeps the field name: x, x_mut, set_x.
	Snake = MustNamingScheme("snake", NamingTemplates{
		Getter:    "{{ .Name }}",
		MutGetter: "{{ .Name }}_mut",
		Setter:    "set_{{ .Name }}",
	})

	// GoStyle follows Go conventions: X, XMut, SetX.
	GoStyle = MustNamingScheme("go", NamingTemplates{
		Getter:    "{{ export .Name }}",
		MutGetter: "{{ export .Name }}Mut",
		Setter:    "Set{{ export .Name }}",
	})
)

var schemes = map[string]*NamingScheme{
	Snake.Name:   Snake,
	GoStyle.Name: GoStyle,
}

// Scheme returns the built-in naming scheme with the given name.
func Scheme(name string) (*NamingScheme, error) {
	if s, ok := schemes[name]; ok {
		return s, nil
	}
	names := make([]string, 0, len(schemes))
	for n := range schemes {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("unknown naming scheme %q, should be one of %v", name, names)
}

func funcMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["export"] = layout.Exported.Apply
	funcs["unexport"] = layout.Unexported.Apply
	return funcs
}

// Derive renders the default name of role for the given field.
func (s *NamingScheme) Derive(role Role, nameOrIndex string) (string, error) {
	var b strings.Builder
	if err := s.templates[role].Execute(&b, struct{ Name string }{nameOrIndex}); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}

// RoleOf returns the naming role of a kind.
func RoleOf(kind layout.Kind) Role {
	switch kind {
	case layout.ReadMut, layout.ReadThroughMut, layout.ReadAsThroughMut:
		return MutGetter
	case layout.Write, layout.WriteBorrowed, layout.WriteOwned:
		return Setter
	default:
		return Getter
	}
}
