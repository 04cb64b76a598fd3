package layout

import (
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/creasty/defaults"
)

// Visibility is the visibility override of a generated method. Go expresses
// visibility through the case of the first letter of the name.
type Visibility int

const (
	// Inherited leaves the derived name untouched.
	Inherited Visibility = iota
	Exported
	Unexported
)

func (v Visibility) String() string {
	switch v {
	case Inherited:
		return "inherited"
	case Exported:
		return "exported"
	case Unexported:
		return "unexported"
	default:
		return fmt.Sprintf("visibility(%d)", int(v))
	}
}

// Apply returns name with its first letter cased for the visibility.
func (v Visibility) Apply(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	switch v {
	case Exported:
		return string(unicode.ToUpper(r)) + name[size:]
	case Unexported:
		return string(unicode.ToLower(r)) + name[size:]
	default:
		return name
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Visibility) UnmarshalText(text []byte) error {
	switch string(text) {
	case "inherited", "":
		*v = Inherited
	case "exported":
		*v = Exported
	case "unexported":
		*v = Unexported
	default:
		return fmt.Errorf("unknown visibility %q", text)
	}
	return nil
}

// Slot is a configuration slot that a key/value entry fills.
type Slot int

const (
	SlotName Slot = iota + 1
	SlotVisibility
	SlotType
)

func (s Slot) String() string {
	switch s {
	case SlotName:
		return "name"
	case SlotVisibility:
		return "visibility"
	case SlotType:
		return "type"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// KindTag binds an external annotation tag to a kind.
type KindTag struct {
	Tag  string `yaml:"tag"`
	Kind Kind   `yaml:"kind"`
}

// KeyNames holds the external spelling of each configuration key.
type KeyNames struct {
	Name       string `yaml:"name" default:"name"`
	Visibility string `yaml:"visibility" default:"vis"`
	Type       string `yaml:"type" default:"type"`
}

// Vocabulary is the external spelling of the annotation language: which tags
// select which kinds, how the keys are spelled, and which words denote a
// visibility. The resolver only ever consults a Vocabulary, so several
// spellings of the same language can coexist.
type Vocabulary struct {
	Name         string                `yaml:"name" default:"custom"`
	Kinds        []KindTag             `yaml:"kinds"`
	Keys         KeyNames              `yaml:"keys"`
	Visibilities map[string]Visibility `yaml:"visibilities"`
}

// DefaultVisibilities are the visibility words understood by the built-in
// vocabularies. Package-wide visibility in Go is an unexported name.
var DefaultVisibilities = map[string]Visibility{
	"":           Inherited,
	"pub":        Exported,
	"public":     Exported,
	"exported":   Exported,
	"pub(crate)": Unexported,
	"pub(super)": Unexported,
	"pub(self)":  Unexported,
	"private":    Unexported,
	"unexported": Unexported,
}

// GetSet is the default vocabulary.
var GetSet = &Vocabulary{
	Name: "getset",
	Kinds: []KindTag{
		{"get", Read},
		{"get_mut", ReadMut},
		{"get_copy", ReadCopy},
		{"get_deref", ReadThrough},
		{"get_deref_mut", ReadThroughMut},
		{"get_deref_copy", ReadThroughCopy},
		{"get_as_ref", ReadAsRef},
		{"get_as_deref", ReadAsThrough},
		{"get_as_deref_mut", ReadAsThroughMut},
		{"set", Write},
		{"set_borrow", WriteBorrowed},
		{"set_own", WriteOwned},
	},
	Keys:         KeyNames{Name: "name", Visibility: "vis", Type: "type"},
	Visibilities: DefaultVisibilities,
}

// Gset is the earlier spelling of the same language.
var Gset = &Vocabulary{
	Name: "gset",
	Kinds: []KindTag{
		{"get", Read},
		{"get_mut", ReadMut},
		{"get_copy", ReadCopy},
		{"deref_get", ReadThrough},
		{"deref_get_mut", ReadThroughMut},
		{"deref_get_copy", ReadThroughCopy},
		{"as_ref_get", ReadAsRef},
		{"as_deref_get", ReadAsThrough},
		{"as_deref_get_mut", ReadAsThroughMut},
		{"set", Write},
		{"set_borrow", WriteBorrowed},
		{"set_own", WriteOwned},
	},
	Keys:         KeyNames{Name: "name", Visibility: "vis", Type: "ty"},
	Visibilities: DefaultVisibilities,
}

var builtins = map[string]*Vocabulary{
	GetSet.Name: GetSet,
	Gset.Name:   Gset,
}

// Builtin returns the built-in vocabulary with the given name.
func Builtin(name string) (*Vocabulary, error) {
	if v, ok := builtins[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("unknown vocabulary %q, should be one of %v", name, BuiltinNames())
}

// BuiltinNames lists the built-in vocabularies.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Prepare fills unset key names and visibility words with their defaults and
// checks that the tables are unambiguous. It is meant for vocabularies
// loaded from configuration.
func (v *Vocabulary) Prepare() error {
	if err := defaults.Set(v); err != nil {
		return fmt.Errorf("vocabulary defaults: %w", err)
	}
	if len(v.Visibilities) == 0 {
		v.Visibilities = DefaultVisibilities
	}
	if len(v.Kinds) == 0 {
		return fmt.Errorf("vocabulary %q defines no kinds", v.Name)
	}

	seen := make(map[string]struct{}, len(v.Kinds))
	for _, kt := range v.Kinds {
		if kt.Tag == "" {
			return fmt.Errorf("vocabulary %q: empty tag for kind %s", v.Name, kt.Kind)
		}
		if kt.Kind == KindNone {
			return fmt.Errorf("vocabulary %q: tag %q has no kind", v.Name, kt.Tag)
		}
		if _, dup := seen[kt.Tag]; dup {
			return fmt.Errorf("vocabulary %q: tag %q is bound twice", v.Name, kt.Tag)
		}
		seen[kt.Tag] = struct{}{}
	}

	keys := v.KeyList()
	if keys[0] == keys[1] || keys[0] == keys[2] || keys[1] == keys[2] {
		return fmt.Errorf("vocabulary %q: keys must be distinct, got %v", v.Name, keys)
	}
	return nil
}

// Lookup returns the kind selected by tag.
func (v *Vocabulary) Lookup(tag string) (Kind, bool) {
	for _, kt := range v.Kinds {
		if kt.Tag == tag {
			return kt.Kind, true
		}
	}
	return KindNone, false
}

// TagFor returns the external tag of kind, or its canonical name if the
// vocabulary does not bind it.
func (v *Vocabulary) TagFor(kind Kind) string {
	for _, kt := range v.Kinds {
		if kt.Kind == kind {
			return kt.Tag
		}
	}
	return kind.String()
}

// Tags lists the recognized kind tags in table order.
func (v *Vocabulary) Tags() []string {
	tags := make([]string, 0, len(v.Kinds))
	for _, kt := range v.Kinds {
		tags = append(tags, kt.Tag)
	}
	return tags
}

// Slot returns the configuration slot that key fills.
func (v *Vocabulary) Slot(key string) (Slot, bool) {
	switch key {
	case v.Keys.Name:
		return SlotName, true
	case v.Keys.Visibility:
		return SlotVisibility, true
	case v.Keys.Type:
		return SlotType, true
	default:
		return 0, false
	}
}

// KeyList lists the recognized keys as name, visibility, type.
func (v *Vocabulary) KeyList() []string {
	return []string{v.Keys.Name, v.Keys.Visibility, v.Keys.Type}
}

// Visibility parses a visibility word.
func (v *Vocabulary) Visibility(word string) (Visibility, bool) {
	vis, ok := v.Visibilities[word]
	return vis, ok
}

// VisibilityWords lists the recognized visibility words, sorted.
func (v *Vocabulary) VisibilityWords() []string {
	words := make([]string, 0, len(v.Visibilities))
	for word := range v.Visibilities {
		if word != "" {
			words = append(words, word)
		}
	}
	sort.Strings(words)
	return words
}
