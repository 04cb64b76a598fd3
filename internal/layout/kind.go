package layout

import "fmt"

// Kind is the accessor behavior requested by one annotation occurrence.
// The zero value means no kind was selected.
type Kind int

const (
	KindNone Kind = iota
	Read
	ReadMut
	ReadCopy
	ReadThrough
	ReadThroughMut
	ReadThroughCopy
	ReadAsRef
	ReadAsThrough
	ReadAsThroughMut
	Write
	WriteBorrowed
	WriteOwned
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{
	Read, ReadMut, ReadCopy,
	ReadThrough, ReadThroughMut, ReadThroughCopy,
	ReadAsRef, ReadAsThrough, ReadAsThroughMut,
	Write, WriteBorrowed, WriteOwned,
}

var kindNames = [...]string{
	KindNone:         "none",
	Read:             "read",
	ReadMut:          "read_mut",
	ReadCopy:         "read_copy",
	ReadThrough:      "read_through",
	ReadThroughMut:   "read_through_mut",
	ReadThroughCopy:  "read_through_copy",
	ReadAsRef:        "read_as_ref",
	ReadAsThrough:    "read_as_through",
	ReadAsThroughMut: "read_as_through_mut",
	Write:            "write",
	WriteBorrowed:    "write_borrowed",
	WriteOwned:       "write_owned",
}

// String returns the canonical name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a canonical name back to its kind.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindNone, false
}

// RequiresType reports whether the kind cannot infer its result type and
// needs an explicit type override.
func (k Kind) RequiresType() bool {
	switch k {
	case ReadAsRef, ReadAsThrough, ReadAsThroughMut:
		return true
	default:
		return false
	}
}

// Through reports whether the kind unwraps one level of indirection of the
// field type.
func (k Kind) Through() bool {
	switch k {
	case ReadThrough, ReadThroughMut, ReadThroughCopy:
		return true
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := ParseKind(string(text))
	if !ok {
		return fmt.Errorf("unknown accessor kind %q", text)
	}
	*k = parsed
	return nil
}
