package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/april-engine/schemagen/internal/codegen/common"
	"github.com/april-engine/schemagen/internal/codegen/diag"
	"github.com/april-engine/schemagen/internal/codegen/meta"
)

// DefaultMarker is the export annotation recognized inside a line comment:
//
//	// @export-cpp
//	// @export-cpp: CppName
const DefaultMarker = "@export-cpp"

// Scanner extracts exported declarations from shared schema sources.
type Scanner struct {
	marker string
	suffix string
	sink   diag.Sink
}

// New creates a Scanner. Empty marker or suffix select the defaults; a nil
// sink discards lenient-skip diagnostics.
func New(marker, suffix string, sink diag.Sink) *Scanner {
	if marker == "" {
		marker = DefaultMarker
	}
	if suffix == "" {
		suffix = common.DefaultSchemaSuffix
	}
	if sink == nil {
		sink = diag.Discard
	}
	return &Scanner{marker: marker, suffix: suffix, sink: sink}
}

// ParseFile reads and parses one schema file.
func (s *Scanner) ParseFile(path string) (*meta.SchemaFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return s.Parse(filepath.ToSlash(path), string(data))
}

// Parse parses schema content. The path is used for module naming and diagnostics.
func (s *Scanner) Parse(path, content string) (*meta.SchemaFile, error) {
	file := &meta.SchemaFile{
		Path:        path,
		Module:      common.ModuleNameForFile(path, s.suffix),
		Content:     content,
		Imports:     ParseImports(content),
		ImportLines: ParseImportLines(content),
	}
	if err := s.parseDeclarations(file); err != nil {
		return nil, err
	}
	return file, nil
}

// marker is one export annotation found in the source.
type marker struct {
	alias string
	end   int // offset just past the annotation line
	line  int
}

// findMarkers locates every line of the form "// <marker>[: Alias]".
func (s *Scanner) findMarkers(content string) []marker {
	var out []marker
	offset := 0
	lineNum := 0
	for offset <= len(content) {
		lineNum++
		end := strings.IndexByte(content[offset:], '\n')
		next := offset + end + 1
		if end < 0 {
			end = len(content) - offset
			next = len(content) + 1
		}
		line := content[offset : offset+end]
		if alias, ok := s.matchMarker(line); ok {
			out = append(out, marker{alias: alias, end: min(offset+end, len(content)), line: lineNum})
		}
		offset = next
	}
	return out
}

func (s *Scanner) matchMarker(line string) (string, bool) {
	text := strings.TrimLeft(line, " \t")
	text, ok := strings.CutPrefix(text, "//")
	if !ok {
		return "", false
	}
	text, ok = strings.CutPrefix(strings.TrimSpace(text), s.marker)
	if !ok {
		return "", false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", true
	}
	text, ok = strings.CutPrefix(text, ":")
	if !ok {
		return "", false
	}
	c := &cursor{src: strings.TrimSpace(text)}
	alias, ok := c.ident()
	if !ok || !c.eof() {
		return "", false
	}
	return alias, true
}

func (s *Scanner) parseDeclarations(file *meta.SchemaFile) error {
	content := file.Content
	for _, m := range s.findMarkers(content) {
		c := &cursor{src: content, pos: m.end}
		c.skipSpaceAndComments()
		start := c.pos

		if decl, ok := matchEnumHeader(c); ok {
			body, err := extractBody(file.Path, content, c.pos-1, decl.name)
			if err != nil {
				return err
			}
			file.Enums = append(file.Enums, meta.EnumDecl{
				Name:        decl.name,
				Alias:       aliasOr(m.alias, decl.name),
				BackingType: decl.base,
				Body:        body,
				Line:        lineAt(content, start),
			})
			continue
		}

		c.pos = start
		if decl, ok := matchStructHeader(c); ok {
			body, err := extractBody(file.Path, content, c.pos-1, decl.name)
			if err != nil {
				return err
			}
			file.Structs = append(file.Structs, meta.StructDecl{
				Name:   decl.name,
				Alias:  aliasOr(m.alias, decl.name),
				Fields: ParseFields(body),
				Body:   body,
				Line:   lineAt(content, start),
			})
			continue
		}

		c.pos = start
		if cd, ok := s.matchConstant(file.Path, c, m); ok {
			cd.Line = lineAt(content, start)
			file.Constants = append(file.Constants, cd)
		}
	}
	return nil
}

type header struct {
	name string
	base string
}

// matchEnumHeader matches `enum [class] Name [: Backing] {` and leaves the
// cursor just past the opening brace.
func matchEnumHeader(c *cursor) (header, bool) {
	if !c.keyword("enum") || !c.skipSpace() {
		return header{}, false
	}
	name, ok := c.ident()
	if !ok {
		return header{}, false
	}
	if name == "class" {
		save := c.pos
		if c.skipSpace() {
			if n, ok := c.ident(); ok {
				name = n
			} else {
				c.pos = save
			}
		} else {
			c.pos = save
		}
	}
	var h header
	h.name = name
	c.skipSpace()
	if c.consume(':') {
		c.skipSpace()
		base, ok := c.ident()
		if !ok {
			return header{}, false
		}
		h.base = base
		c.skipSpace()
	}
	if !c.consume('{') {
		return header{}, false
	}
	return h, true
}

// matchStructHeader matches `struct Name [: Base...] {`. The base list is
// ignored.
func matchStructHeader(c *cursor) (header, bool) {
	if !c.keyword("struct") || !c.skipSpace() {
		return header{}, false
	}
	name, ok := c.ident()
	if !ok {
		return header{}, false
	}
	c.skipSpace()
	if c.consume(':') {
		brace := strings.IndexByte(c.rest(), '{')
		if brace <= 0 || strings.TrimSpace(c.rest()[:brace]) == "" {
			return header{}, false
		}
		c.pos += brace
	}
	if !c.consume('{') {
		return header{}, false
	}
	return header{name: name}, true
}

// matchConstant matches `[static] const Type Name = Value;`. A constant-looking
// statement without a terminating semicolon is skipped leniently.
func (s *Scanner) matchConstant(path string, c *cursor, m marker) (meta.ConstantDecl, bool) {
	stmtEnd := strings.IndexByte(c.rest(), ';')
	if stmtEnd < 0 {
		probe := &cursor{src: c.rest()}
		if probe.keyword("static") {
			probe.skipSpace()
		}
		if probe.keyword("const") {
			s.sink.Report(diag.Diagnostic{
				Kind:    diag.KindSkip,
				File:    path,
				Line:    m.line,
				Message: "constant declaration has no terminating ';'",
			})
		}
		return meta.ConstantDecl{}, false
	}

	stmt := &cursor{src: strings.TrimSpace(c.rest()[:stmtEnd])}
	if stmt.keyword("static") && !stmt.skipSpace() {
		return meta.ConstantDecl{}, false
	}
	if !stmt.keyword("const") || !stmt.skipSpace() {
		return meta.ConstantDecl{}, false
	}
	typeStart := stmt.pos
	if _, ok := stmt.ident(); !ok {
		return meta.ConstantDecl{}, false
	}
	for !stmt.eof() && (isIdentPart(stmt.peek()) || stmt.peek() == ':') {
		stmt.pos++
	}
	typeName := stmt.src[typeStart:stmt.pos]
	if !stmt.skipSpace() {
		return meta.ConstantDecl{}, false
	}
	name, ok := stmt.ident()
	if !ok {
		return meta.ConstantDecl{}, false
	}
	stmt.skipSpace()
	if !stmt.consume('=') {
		return meta.ConstantDecl{}, false
	}
	value := strings.TrimSpace(stmt.rest())
	if value == "" {
		return meta.ConstantDecl{}, false
	}
	return meta.ConstantDecl{
		Name:  name,
		Alias: aliasOr(m.alias, name),
		Type:  typeName,
		Value: value,
	}, true
}

// extractBody returns the text between the brace at open and its match.
func extractBody(path, content string, open int, decl string) (string, error) {
	depth := 0
	for i := open; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[open+1 : i], nil
			}
		}
	}
	return "", &ParseError{Kind: ErrUnmatchedBrace, File: path, Line: lineAt(content, open), Decl: decl}
}

func aliasOr(alias, name string) string {
	if alias == "" {
		return name
	}
	return alias
}
