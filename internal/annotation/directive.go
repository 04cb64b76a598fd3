package annotation

import (
	"go/ast"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"

	"github.com/ecordell/gsetgen/internal/diag"
)

// DefaultDirective is the comment prefix that marks an accessor directive.
const DefaultDirective = "getset:"

// IsDirective reports whether the comment is a directive with the given prefix.
// Like //go: directives, there is no space between the slashes and the prefix.
func IsDirective(c *ast.Comment, prefix string) bool {
	return strings.HasPrefix(c.Text, "//"+prefix)
}

// FromDoc returns the directive occurrences of a field doc comment, in order.
func FromDoc(fset *token.FileSet, doc *ast.CommentGroup, prefix string) ([]Occurrence, error) {
	if doc == nil {
		return nil, nil
	}

	var occs []Occurrence
	for _, c := range doc.List {
		if !IsDirective(c, prefix) {
			continue
		}
		occ, err := ParseDirective(fset.Position(c.Slash), strings.TrimPrefix(c.Text, "//"+prefix), len("//"+prefix))
		if err != nil {
			return nil, err
		}
		occs = append(occs, occ)
	}
	return occs, nil
}

// DocLines returns the doc comment lines that are not directives, with the
// comment markers removed and the text otherwise verbatim.
func DocLines(doc *ast.CommentGroup, prefix string) []string {
	if doc == nil {
		return nil
	}

	var lines []string
	for _, c := range doc.List {
		if IsDirective(c, prefix) {
			continue
		}
		text := c.Text
		switch {
		case strings.HasPrefix(text, "//"):
			text = strings.TrimPrefix(text, "//")
			text = strings.TrimPrefix(text, " ")
			lines = append(lines, text)
		case strings.HasPrefix(text, "/*"):
			text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
			for _, line := range strings.Split(text, "\n") {
				lines = append(lines, strings.TrimSpace(line))
			}
		}
	}
	return lines
}

// ParseDirective tokenizes the body of one directive. pos is the position of
// the comment; shift is the column offset of src within the comment line.
//
// The grammar is a comma separated list of entries:
//
//	entry = word | word "=" literal | word "(" ... ")"
//
// where word is an identifier or keyword and literal is any Go literal or
// identifier. Literal categories are preserved so that the resolver can
// reject values that are not quoted text.
func ParseDirective(pos token.Position, src string, shift int) (Occurrence, error) {
	p := newDirectiveParser(pos, src, shift)
	occ := Occurrence{Pos: pos}

	for {
		p.next()
		if p.atEnd() {
			break
		}
		entry, err := p.entry()
		if err != nil {
			return Occurrence{}, err
		}
		occ.Entries = append(occ.Entries, entry)

		p.next()
		if p.atEnd() {
			break
		}
		if p.tok != token.COMMA {
			return Occurrence{}, p.errorf("expected `,` after %q, found %q", entry.String(), p.text())
		}
	}

	if p.err != nil {
		return Occurrence{}, p.err
	}
	return occ, nil
}

type directiveParser struct {
	base  token.Position
	shift int
	src   string
	file  *token.File
	sc    scanner.Scanner
	err   *diag.ConfigError

	tok token.Token
	lit string
	at  token.Pos
	// held is set when the current token was scanned as lookahead and has
	// not been consumed yet.
	held bool
}

func newDirectiveParser(pos token.Position, src string, shift int) *directiveParser {
	p := &directiveParser{base: pos, shift: shift, src: src}
	p.file = token.NewFileSet().AddFile(pos.Filename, -1, len(src))
	p.sc.Init(p.file, []byte(src), func(at token.Position, msg string) {
		if p.err == nil {
			p.err = diag.Errorf(diag.MalformedAnnotation, p.position(at.Offset), "malformed annotation: %s", msg)
		}
	}, 0)
	return p
}

func (p *directiveParser) next() {
	if p.held {
		p.held = false
		return
	}
	p.at, p.tok, p.lit = p.sc.Scan()
}

// atEnd treats the automatically inserted trailing semicolon as the end.
func (p *directiveParser) atEnd() bool {
	return p.tok == token.EOF || (p.tok == token.SEMICOLON && p.lit == "\n")
}

func (p *directiveParser) text() string {
	if p.lit != "" {
		return p.lit
	}
	return p.tok.String()
}

func (p *directiveParser) position(offset int) token.Position {
	pos := p.base
	pos.Offset += p.shift + offset
	pos.Column += p.shift + offset
	return pos
}

func (p *directiveParser) here() token.Position {
	return p.position(p.file.Offset(p.at))
}

func (p *directiveParser) errorf(format string, args ...any) *diag.ConfigError {
	if p.err != nil {
		return p.err
	}
	return diag.Errorf(diag.MalformedAnnotation, p.here(), format, args...)
}

func (p *directiveParser) entry() (Entry, error) {
	if p.tok != token.IDENT && !p.tok.IsKeyword() {
		return Entry{}, p.errorf("expected annotation name, found %q", p.text())
	}
	entry := Entry{Kind: Flag, Name: p.lit, Pos: p.here()}

	p.next()
	switch p.tok {
	case token.ASSIGN:
		p.next()
		return p.value(entry)
	case token.LPAREN:
		return p.group(entry)
	default:
		p.held = true
		return entry, nil
	}
}

func (p *directiveParser) value(entry Entry) (Entry, error) {
	entry.Kind = KeyValue
	start := p.file.Offset(p.at)

	neg := false
	if p.tok == token.SUB {
		neg = true
		p.next()
	}

	switch p.tok {
	case token.STRING:
		unquoted, err := strconv.Unquote(p.lit)
		if err != nil {
			return Entry{}, p.errorf("malformed string %s", p.lit)
		}
		entry.Value, entry.ValueKind = unquoted, Text
	case token.INT, token.FLOAT, token.IMAG:
		entry.Value, entry.ValueKind = p.lit, Number
	case token.CHAR:
		entry.Value, entry.ValueKind = p.lit, Char
	case token.IDENT:
		entry.Value, entry.ValueKind = p.lit, Ident
	default:
		return Entry{}, p.errorf("expected value for %q, found %q", entry.Name, p.text())
	}
	if neg && entry.ValueKind != Number {
		return Entry{}, p.errorf("unexpected `-` before %q", p.lit)
	}
	if neg {
		entry.Value = "-" + entry.Value
	}
	entry.Raw = p.src[start : p.file.Offset(p.at)+len(p.lit)]
	return entry, nil
}

func (p *directiveParser) group(entry Entry) (Entry, error) {
	entry.Kind = Group
	start := p.file.Offset(p.at) + 1

	depth := 1
	for depth > 0 {
		p.next()
		switch p.tok {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.EOF:
			return Entry{}, p.errorf("unbalanced `(` in %q", entry.Name)
		}
	}
	entry.Raw = strings.TrimSpace(p.src[start:p.file.Offset(p.at)])
	return entry, nil
}
