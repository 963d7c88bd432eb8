package scanner

import (
	"strings"

	"github.com/april-engine/schemagen/internal/codegen/meta"
)

// fieldModifiers are dropped in front of a field type.
var fieldModifiers = map[string]bool{
	"no_diff":         true,
	"nointerpolation": true,
	"noperspective":   true,
	"row_major":       true,
	"column_major":    true,
	"precise":         true,
	"public":          true,
	"internal":        true,
	"private":         true,
}

// skippedStatements start statements that never declare instance data.
var skippedStatements = map[string]bool{
	"static":      true,
	"typealias":   true,
	"typedef":     true,
	"using":       true,
	"import":      true,
	"enum":        true,
	"struct":      true,
	"property":    true,
	"__init":      true,
	"__subscript": true,
	"return":      true,
}

// ParseFields extracts the data members of a struct body in declaration order.
// Methods (with or without an attached body), static members and nested types
// are skipped.
func ParseFields(body string) []meta.Field {
	var fields []meta.Field
	for _, stmt := range topLevelStatements(stripComments(body)) {
		fields = append(fields, parseFieldStatement(stmt)...)
	}
	return fields
}

// topLevelStatements splits a body into `;`-terminated statements at brace
// depth zero. A statement that owns a `{...}` block is dropped together with
// the block.
func topLevelStatements(body string) []string {
	var out []string
	var stmt strings.Builder
	depth := 0
	initializer := false
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case ch == '{':
			if depth == 0 {
				initializer = strings.HasSuffix(strings.TrimSpace(stmt.String()), "=")
				if !initializer {
					stmt.Reset()
				}
			}
			depth++
		case ch == '}':
			if depth > 0 {
				depth--
			}
		case depth > 0:
		case ch == ';':
			if s := strings.TrimSpace(stmt.String()); s != "" {
				out = append(out, s)
			}
			stmt.Reset()
			initializer = false
		default:
			stmt.WriteByte(ch)
		}
	}
	return out
}

func parseFieldStatement(stmt string) []meta.Field {
	stmt = stripAttributes(stmt)
	head, _, _ := strings.Cut(stmt, "=")
	if stmt == "" || strings.ContainsAny(head, "()") {
		return nil
	}

	c := &cursor{src: stmt}
	var typeName string
	for {
		c.skipSpace()
		word, ok := c.ident()
		if !ok {
			return nil
		}
		if skippedStatements[word] {
			return nil
		}
		if word == "const" {
			return nil
		}
		if fieldModifiers[word] {
			continue
		}
		typeName = word + genericSuffix(c)
		break
	}

	var fields []meta.Field
	for _, decl := range splitDeclarators(c.rest()) {
		if f, ok := parseDeclarator(typeName, decl); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// genericSuffix consumes a balanced `<...>` argument list following a type name.
func genericSuffix(c *cursor) string {
	save := c.pos
	c.skipSpace()
	if c.peek() != '<' {
		c.pos = save
		return ""
	}
	start := c.pos
	depth := 0
	for !c.eof() {
		switch c.peek() {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				c.pos++
				return strings.Join(strings.Fields(c.src[start:c.pos]), "")
			}
		}
		c.pos++
	}
	c.pos = save
	return ""
}

// splitDeclarators splits "a, b[4] = {1,2}, c" on top-level commas.
func splitDeclarators(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '<':
			depth++
		case ']', '>':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}

func parseDeclarator(typeName, decl string) (meta.Field, bool) {
	if idx := strings.IndexByte(decl, '='); idx >= 0 {
		decl = decl[:idx]
	}
	// Semantics such as `: SV_Position` are not part of the layout.
	if idx := strings.IndexByte(decl, ':'); idx >= 0 {
		decl = decl[:idx]
	}
	c := &cursor{src: strings.TrimSpace(decl)}
	name, ok := c.ident()
	if !ok {
		return meta.Field{}, false
	}
	f := meta.Field{Type: typeName, Name: name}
	c.skipSpace()
	if c.consume('[') {
		end := strings.IndexByte(c.rest(), ']')
		if end < 0 {
			return meta.Field{}, false
		}
		f.ArrayLen = strings.TrimSpace(c.rest()[:end])
		if f.ArrayLen == "" {
			// Unsized arrays have no fixed layout; keep a marker so the
			// resolver reports them.
			f.ArrayLen = "?"
		}
	}
	return f, true
}

// stripAttributes removes leading `[attr]` groups from a statement.
func stripAttributes(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	for strings.HasPrefix(stmt, "[") {
		end := strings.IndexByte(stmt, ']')
		if end < 0 {
			return ""
		}
		stmt = strings.TrimSpace(stmt[end+1:])
	}
	return stmt
}

// stripComments blanks out line and block comments, keeping newlines.
func stripComments(src string) string {
	var sb strings.Builder
	sb.Grow(len(src))
	for i := 0; i < len(src); i++ {
		switch {
		case strings.HasPrefix(src[i:], "//"):
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				sb.WriteByte('\n')
			}
		case strings.HasPrefix(src[i:], "/*"):
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return sb.String()
			}
			sb.WriteString(strings.Repeat("\n", strings.Count(src[i:i+2+end+2], "\n")))
			i += 2 + end + 1
		default:
			sb.WriteByte(src[i])
		}
	}
	return sb.String()
}
