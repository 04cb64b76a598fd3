// Package layout resolves accessor annotation occurrences into validated
// configurations.
package layout

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"

	"github.com/ecordell/gsetgen/internal/annotation"
	"github.com/ecordell/gsetgen/internal/diag"
)

// Layout is the resolved configuration of one annotation occurrence.
type Layout struct {
	Kind Kind
	// KindTag is the tag that selected Kind, as spelled in the source.
	KindTag string

	// Name overrides the derived method name when not empty.
	Name string

	Visibility    Visibility
	HasVisibility bool

	// Type overrides the result type when not nil. TypeText is the source
	// text it was parsed from.
	Type     ast.Expr
	TypeText string

	Pos token.Position
}

// Resolve interprets the entries of one occurrence. Entries are processed in
// order and the first violation is reported.
func Resolve(vocab *Vocabulary, occ annotation.Occurrence) (*Layout, error) {
	l := &Layout{Pos: occ.Pos}
	seen := make(map[Slot]annotation.Entry, 3)

	for _, entry := range occ.Entries {
		switch entry.Kind {
		case annotation.Flag:
			if err := l.setKind(vocab, entry); err != nil {
				return nil, err
			}

		case annotation.Group:
			return nil, diag.Errorf(diag.UnsupportedNesting, entry.Pos,
				"nested annotation `%s` is not supported", entry.String()).
				WithHint("write each accessor as its own annotation")

		case annotation.KeyValue:
			if entry.ValueKind != annotation.Text {
				return nil, diag.Errorf(diag.UnsupportedValueType, entry.Pos,
					"value of `%s` is a %s, not text", entry.Name, entry.ValueKind).
					WithHint("quote the value, e.g. %s = %q", entry.Name, entry.Value)
			}
			slot, ok := vocab.Slot(entry.Name)
			if !ok {
				return nil, diag.Errorf(diag.UnknownKey, entry.Pos, "unknown key `%s`", entry.Name).
					WithHint("%s", diag.OneOf(vocab.KeyList()))
			}
			if prev, dup := seen[slot]; dup {
				return nil, diag.Errorf(diag.DuplicateKey, entry.Pos,
					"duplicate key `%s`: already set to %s", entry.Name, prev.Raw)
			}
			seen[slot] = entry
			if err := l.set(vocab, slot, entry); err != nil {
				return nil, err
			}

		default:
			return nil, diag.Errorf(diag.MalformedAnnotation, entry.Pos, "unexpected annotation entry %q", entry.String())
		}
	}

	return l, nil
}

func (l *Layout) setKind(vocab *Vocabulary, entry annotation.Entry) error {
	if l.Kind != KindNone {
		return diag.Errorf(diag.DuplicateKind, entry.Pos,
			"duplicate accessor kinds `%s` and `%s`", l.KindTag, entry.Name).
			WithHint("use one annotation per accessor")
	}
	kind, ok := vocab.Lookup(entry.Name)
	if !ok {
		return diag.Errorf(diag.UnknownKind, entry.Pos, "unknown accessor kind `%s`", entry.Name).
			WithHint("%s", diag.OneOf(vocab.Tags()))
	}
	l.Kind, l.KindTag = kind, entry.Name
	return nil
}

func (l *Layout) set(vocab *Vocabulary, slot Slot, entry annotation.Entry) error {
	switch slot {
	case SlotName:
		if !IsIdentifier(entry.Value) {
			return diag.Errorf(diag.InvalidIdentifier, entry.Pos, "invalid method name %q", entry.Value).
				WithHint("must be a Go identifier")
		}
		l.Name = entry.Value

	case SlotVisibility:
		vis, ok := vocab.Visibility(entry.Value)
		if !ok {
			return diag.Errorf(diag.InvalidVisibility, entry.Pos, "invalid visibility %q", entry.Value).
				WithHint("%s", diag.OneOf(vocab.VisibilityWords()))
		}
		l.Visibility, l.HasVisibility = vis, true

	case SlotType:
		expr, err := ParseType(entry.Value)
		if err != nil {
			return diag.Errorf(diag.InvalidType, entry.Pos, "invalid type %q: %v", entry.Value, err)
		}
		l.Type, l.TypeText = expr, entry.Value
	}
	return nil
}

// IsIdentifier reports whether name can be used as a method name.
func IsIdentifier(name string) bool {
	return name != "_" && token.IsIdentifier(name)
}

// ParseType parses text as a Go type expression.
func ParseType(text string) (ast.Expr, error) {
	expr, err := parser.ParseExpr(text)
	if err != nil {
		return nil, err
	}
	if !isType(expr) {
		return nil, errNotAType
	}
	return expr, nil
}

var errNotAType = errors.New("not a type expression")

func isType(expr ast.Expr) bool {
	switch t := expr.(type) {
	case *ast.Ident:
		return true
	case *ast.SelectorExpr:
		_, ok := t.X.(*ast.Ident)
		return ok
	case *ast.StarExpr:
		return isType(t.X)
	case *ast.ParenExpr:
		return isType(t.X)
	case *ast.ArrayType:
		return isType(t.Elt)
	case *ast.MapType:
		return isType(t.Key) && isType(t.Value)
	case *ast.ChanType:
		return isType(t.Value)
	case *ast.IndexExpr:
		return isType(t.X) && isType(t.Index)
	case *ast.IndexListExpr:
		if !isType(t.X) {
			return false
		}
		for _, idx := range t.Indices {
			if !isType(idx) {
				return false
			}
		}
		return true
	case *ast.FuncType, *ast.InterfaceType, *ast.StructType:
		return true
	default:
		return false
	}
}
