package annotation

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"github.com/fatih/structtag"

	"github.com/ecordell/gsetgen/internal/diag"
)

// DefaultTagKey is the struct tag key that carries accessor occurrences.
const DefaultTagKey = "getset"

// FromTag returns the occurrences carried by a field's struct tag under key.
// Every `key:"..."` pair is one occurrence; its comma separated options are
// flags (`get`), text pairs (`name=GetCount`), or groups (`get(...)`).
//
// Values cannot contain commas in this form; type overrides such as
// `Pair[K, V]` must use a directive comment instead.
func FromTag(fset *token.FileSet, lit *ast.BasicLit, key string) ([]Occurrence, error) {
	if lit == nil {
		return nil, nil
	}
	pos := fset.Position(lit.Pos())

	raw, err := strconv.Unquote(lit.Value)
	if err != nil {
		return nil, diag.Errorf(diag.MalformedAnnotation, pos, "malformed struct tag %s", lit.Value)
	}
	if raw == "" {
		return nil, nil
	}

	tags, err := structtag.Parse(raw)
	if err != nil {
		return nil, diag.Errorf(diag.MalformedAnnotation, pos, "malformed struct tag: %v", err)
	}

	var occs []Occurrence
	for _, tag := range tags.Tags() {
		if tag.Key != key {
			continue
		}
		occ := Occurrence{Pos: pos}
		for _, item := range append([]string{tag.Name}, tag.Options...) {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			occ.Entries = append(occ.Entries, tagEntry(item, pos))
		}
		occs = append(occs, occ)
	}
	return occs, nil
}

func tagEntry(item string, pos token.Position) Entry {
	eq, paren := strings.IndexByte(item, '='), strings.IndexByte(item, '(')
	if paren >= 0 && (eq < 0 || paren < eq) {
		return Entry{
			Kind: Group,
			Name: strings.TrimSpace(item[:paren]),
			Raw:  strings.TrimSuffix(item[paren+1:], ")"),
			Pos:  pos,
		}
	}
	if eq >= 0 {
		value := strings.TrimSpace(item[eq+1:])
		return Entry{
			Kind:      KeyValue,
			Name:      strings.TrimSpace(item[:eq]),
			Value:     value,
			ValueKind: Text,
			Raw:       value,
			Pos:       pos,
		}
	}
	return Entry{Kind: Flag, Name: item, Pos: pos}
}

// FromField returns all occurrences of a field: doc directives first, in
// source order, followed by struct tag occurrences.
func FromField(fset *token.FileSet, field *ast.Field, directive, tagKey string) ([]Occurrence, error) {
	occs, err := FromDoc(fset, field.Doc, directive)
	if err != nil {
		return nil, err
	}
	tagged, err := FromTag(fset, field.Tag, tagKey)
	if err != nil {
		return nil, err
	}
	return append(occs, tagged...), nil
}
