package scanner

import (
	"regexp"
	"strings"

	"github.com/april-engine/schemagen/internal/codegen/common"
)

// importPattern matches `import a.b.c;` and the re-exporting `__exported import a.b.c;`.
var importPattern = regexp.MustCompile(`(?m)^\s*(?:__exported\s+)?import\s+([A-Za-z0-9_.]+)\s*;`)

// importLinePattern matches a whole line holding only an import statement.
var importLinePattern = regexp.MustCompile(`(?m)^\s*(?:__exported\s+)?import\s+[A-Za-z0-9_.]+\s*;[ \t]*$`)

// ParseImports returns the normalized module identifier of every import.
func ParseImports(content string) []string {
	var out []string
	for _, m := range importPattern.FindAllStringSubmatch(content, -1) {
		out = append(out, common.NormalizeModuleName(m[1]))
	}
	return out
}

// ParseImportLines returns the verbatim import statements, trimmed.
func ParseImportLines(content string) []string {
	var out []string
	for _, m := range importLinePattern.FindAllString(content, -1) {
		out = append(out, strings.TrimSpace(m))
	}
	return out
}
