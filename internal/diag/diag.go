// Package diag defines the configuration errors reported while interpreting
// accessor annotations, and the helpers used to format them.
package diag

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// Code identifies the category of a ConfigError.
type Code int

const (
	UnknownKind Code = iota + 1
	DuplicateKind
	UnsupportedNesting
	UnsupportedValueType
	UnknownKey
	DuplicateKey
	InvalidIdentifier
	InvalidVisibility
	InvalidType
	MissingKind
	MissingName
	MissingType
	UnsupportedStructureShape
	UnresolvedTarget
	DuplicateMethod
	MalformedAnnotation
)

var codeNames = map[Code]string{
	UnknownKind:               "unknown kind",
	DuplicateKind:             "duplicate kind",
	UnsupportedNesting:        "unsupported nesting",
	UnsupportedValueType:      "unsupported value type",
	UnknownKey:                "unknown key",
	DuplicateKey:              "duplicate key",
	InvalidIdentifier:         "invalid identifier",
	InvalidVisibility:         "invalid visibility",
	InvalidType:               "invalid type",
	MissingKind:               "missing kind",
	MissingName:               "missing name",
	MissingType:               "missing type",
	UnsupportedStructureShape: "unsupported structure shape",
	UnresolvedTarget:          "unresolved target",
	DuplicateMethod:           "duplicate method",
	MalformedAnnotation:       "malformed annotation",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// ConfigError is a fatal error in an accessor annotation. Pos points at the
// offending annotation, Hint (optional) lists the valid alternatives.
type ConfigError struct {
	Code Code
	Pos  token.Position
	Msg  string
	Hint string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Hint != "" {
		b.WriteString(" (")
		b.WriteString(e.Hint)
		b.WriteString(")")
	}
	return b.String()
}

// Errorf builds a ConfigError without a hint.
func Errorf(code Code, pos token.Position, format string, args ...any) *ConfigError {
	return &ConfigError{Code: code, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// WithHint sets the remediation hint and returns the error for chaining.
func (e *ConfigError) WithHint(format string, args ...any) *ConfigError {
	e.Hint = fmt.Sprintf(format, args...)
	return e
}

// Is reports whether err, or any error it wraps, is a ConfigError with the
// given code.
func Is(err error, code Code) bool {
	var cerr *ConfigError
	if errors.As(err, &cerr) {
		return cerr.Code == code
	}
	return false
}

// CodeOf returns the code of the first ConfigError in err's chain, or 0.
func CodeOf(err error) Code {
	var cerr *ConfigError
	if errors.As(err, &cerr) {
		return cerr.Code
	}
	return 0
}

// Quoted renders a list of tags as "`a`, `b`, `c`".
func Quoted(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, item := range items {
		quoted = append(quoted, "`"+item+"`")
	}
	return strings.Join(quoted, ", ")
}

// OneOf is the standard hint for a closed set of alternatives.
func OneOf(items []string) string {
	return "should be one of: " + Quoted(items)
}
