// Package annotation extracts accessor annotation occurrences from Go source.
//
// An occurrence is one annotation block attached to a struct field. Two
// surfaces are supported, both yielding the same ordered Entry sequences:
//
// Directive comments in the field's doc, one occurrence per line:
//
//	//getset:get_copy, name="GetCount", vis="pub"
//	//getset:set
//	Count int64
//
// Struct tags, one occurrence per tag key:
//
//	Count int64 `getset:"get_copy,name=GetCount,vis=pub" getset:"set"`
package annotation

import (
	"fmt"
	"go/token"
	"strings"
)

// EntryKind is the syntactic shape of an Entry.
type EntryKind int

const (
	// Flag is a bare word, e.g. `get`.
	Flag EntryKind = iota + 1
	// KeyValue is `key = literal`.
	KeyValue
	// Group is a word followed by a parenthesized sub-list, e.g. `get(vis="pub")`.
	Group
)

func (k EntryKind) String() string {
	switch k {
	case Flag:
		return "flag"
	case KeyValue:
		return "key-value"
	case Group:
		return "group"
	default:
		return "unknown"
	}
}

// ValueKind is the literal category of a KeyValue entry's value.
type ValueKind int

const (
	// Text is a quoted string (interpreted or raw).
	Text ValueKind = iota + 1
	Number
	Char
	// Ident is an unquoted identifier such as `true` or `Foo`.
	Ident
)

func (k ValueKind) String() string {
	switch k {
	case Text:
		return "text"
	case Number:
		return "number"
	case Char:
		return "char"
	case Ident:
		return "identifier"
	default:
		return "unknown"
	}
}

// Entry is one element of an occurrence.
type Entry struct {
	Kind EntryKind
	// Name is the flag or group word, or the key of a KeyValue entry.
	Name string
	// Value is the unquoted value of a KeyValue entry.
	Value     string
	ValueKind ValueKind
	// Raw is the value exactly as written.
	Raw string
	Pos token.Position
}

func (e Entry) String() string {
	switch e.Kind {
	case KeyValue:
		return fmt.Sprintf("%s = %s", e.Name, e.Raw)
	case Group:
		return e.Name + "(" + e.Raw + ")"
	default:
		return e.Name
	}
}

// Occurrence is one annotation block: an ordered list of entries and the
// position of the annotation itself.
type Occurrence struct {
	Entries []Entry
	Pos     token.Position
}

func (o Occurrence) String() string {
	parts := make([]string, 0, len(o.Entries))
	for _, e := range o.Entries {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}
