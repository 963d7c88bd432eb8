package scanner

import "strings"

// cursor walks a source string with an explicit position.
type cursor struct {
	src string
	pos int
}

func (c *cursor) eof() bool { return c.pos >= len(c.src) }

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.pos]
}

func (c *cursor) rest() string { return c.src[c.pos:] }

func (c *cursor) hasPrefix(s string) bool { return strings.HasPrefix(c.src[c.pos:], s) }

// skipSpace advances over whitespace and reports whether any was consumed.
func (c *cursor) skipSpace() bool {
	start := c.pos
	for !c.eof() && isSpace(c.src[c.pos]) {
		c.pos++
	}
	return c.pos > start
}

// skipSpaceAndComments advances over whitespace, line comments and block
// comments. An unterminated comment runs to the end of input.
func (c *cursor) skipSpaceAndComments() {
	for !c.eof() {
		c.skipSpace()
		switch {
		case c.hasPrefix("//"):
			end := strings.IndexByte(c.src[c.pos:], '\n')
			if end < 0 {
				c.pos = len(c.src)
				return
			}
			c.pos += end + 1
		case c.hasPrefix("/*"):
			end := strings.Index(c.src[c.pos+2:], "*/")
			if end < 0 {
				c.pos = len(c.src)
				return
			}
			c.pos += 2 + end + 2
		default:
			return
		}
	}
}

// ident reads an identifier ([A-Za-z_][A-Za-z0-9_]*).
func (c *cursor) ident() (string, bool) {
	if c.eof() || !isIdentStart(c.src[c.pos]) {
		return "", false
	}
	start := c.pos
	c.pos++
	for !c.eof() && isIdentPart(c.src[c.pos]) {
		c.pos++
	}
	return c.src[start:c.pos], true
}

// keyword consumes word when it appears as a whole word at the cursor.
func (c *cursor) keyword(word string) bool {
	if !c.hasPrefix(word) {
		return false
	}
	end := c.pos + len(word)
	if end < len(c.src) && isIdentPart(c.src[end]) {
		return false
	}
	c.pos = end
	return true
}

func (c *cursor) consume(b byte) bool {
	if c.peek() != b || c.eof() {
		return false
	}
	c.pos++
	return true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// lineAt returns the 1-based line number of offset pos.
func lineAt(src string, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	return strings.Count(src[:pos], "\n") + 1
}
