// Package transform rewrites Slang declaration bodies into C++.
//
// The rewrite is a fixed sequence of textual passes. It does not parse or
// validate the code; malformed input can produce malformed output.
package transform

import (
	"regexp"
	"strings"

	"github.com/april-engine/schemagen/internal/codegen/common"
)

// mutatingSentinel marks the line before a method that must stay non-const.
// It never survives into the output.
const mutatingSentinel = "__APRIL_MUTATING__"

// Options carries per-body context for the passes.
type Options struct {
	// StructName is the emitted name of the struct whose body is rewritten.
	// Empty for enum bodies and constant values.
	StructName string
}

// Pass is one rewrite step of a Pipeline.
type Pass struct {
	Name  string
	Apply func(src string, opts Options) string
}

// Pipeline is an ordered list of passes.
type Pipeline []Pass

// Run applies every pass in order.
func (p Pipeline) Run(src string, opts Options) string {
	for _, pass := range p {
		src = pass.Apply(src, opts)
	}
	return src
}

var (
	mutatingAttr  = regexp.MustCompile(`\[[ \t]*mutating[ \t]*\][ \t]*`)
	attributes    = regexp.MustCompile(`^([ \t]*)(?:\[[^\]\n]+\][ \t]*)+`)
	setterDecl    = regexp.MustCompile(`\bSETTER_DECL\b`)
	constFunction = regexp.MustCompile(`\bCONST_FUNCTION\b`)
	halfLiteral   = regexp.MustCompile(`(\d+\.\d+|\d+)h\b`)
	initCall      = regexp.MustCompile(`\b__init\s*\(`)
	blankLineRuns = regexp.MustCompile(`\n{3,}`)
	typeRewrites  = compileTypeRewrites()
	castRewrites  = compileCastRewrites()
	defaultPasses = buildDefault()
)

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

func compileTypeRewrites() []rewrite {
	mappings := common.SortedTypeMappings()
	out := make([]rewrite, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, rewrite{
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(m.Slang) + `\b`),
			repl: m.Cpp,
		})
	}
	return out
}

func compileCastRewrites() []rewrite {
	out := make([]rewrite, 0, len(common.CastTypes))
	for _, m := range common.CastTypes {
		out = append(out, rewrite{
			re:   regexp.MustCompile(`\b` + regexp.QuoteMeta(m.Slang) + `\s*\(`),
			repl: "static_cast<" + m.Cpp + ">(",
		})
	}
	return out
}

func buildDefault() Pipeline {
	return Pipeline{
		{"line-endings", normalizeLineEndings},
		{"attributes", rewriteAttributes},
		{"qualifier-macros", rewriteQualifierMacros},
		{"receiver", rewriteReceiver},
		{"half-literals", rewriteHalfLiterals},
		{"constructor", rewriteConstructor},
		{"types", rewriteTypes},
		{"casts", rewriteCasts},
		{"const-methods", addConstQualifiers},
		{"blank-lines", collapseBlankLines},
	}
}

// Default returns the standard Slang to C++ pipeline.
func Default() Pipeline {
	out := make(Pipeline, len(defaultPasses))
	copy(out, defaultPasses)
	return out
}

// Body rewrites a struct body. structName is the emitted struct name, used for
// constructors.
func Body(body, structName string) string {
	return defaultPasses.Run(body, Options{StructName: structName})
}

// Expr rewrites an enum body or a constant value.
func Expr(src string) string {
	return defaultPasses.Run(src, Options{})
}

func normalizeLineEndings(src string, _ Options) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	return strings.ReplaceAll(src, "\r", "\n")
}

// rewriteAttributes turns [mutating] into a sentinel line and drops every
// attribute group leading a line. A line left holding only attributes is
// joined with the following line, which takes over its indentation.
func rewriteAttributes(src string, _ Options) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		stripped := line
		if mutatingAttr.MatchString(stripped) {
			out = append(out, indent+mutatingSentinel)
			stripped = mutatingAttr.ReplaceAllString(stripped, "")
		}
		stripped = attributes.ReplaceAllString(stripped, "${1}")
		if stripped == line {
			out = append(out, line)
			continue
		}
		if strings.TrimSpace(stripped) != "" {
			out = append(out, indent+strings.TrimLeft(stripped, " \t"))
			continue
		}
		if i+1 < len(lines) {
			lines[i+1] = indent + strings.TrimLeft(lines[i+1], " \t")
		}
	}
	return strings.Join(out, "\n")
}

func rewriteQualifierMacros(src string, _ Options) string {
	src = setterDecl.ReplaceAllString(src, "")
	return constFunction.ReplaceAllString(src, "const")
}

func rewriteReceiver(src string, _ Options) string {
	return strings.ReplaceAll(src, "this.", "this->")
}

func rewriteHalfLiterals(src string, _ Options) string {
	return halfLiteral.ReplaceAllString(src, "${1}f")
}

func rewriteConstructor(src string, opts Options) string {
	if opts.StructName == "" {
		return src
	}
	return initCall.ReplaceAllLiteralString(src, opts.StructName+"(")
}

func rewriteTypes(src string, _ Options) string {
	for _, r := range typeRewrites {
		src = r.re.ReplaceAllLiteralString(src, r.repl)
	}
	return src
}

func rewriteCasts(src string, _ Options) string {
	for _, r := range castRewrites {
		src = r.re.ReplaceAllLiteralString(src, r.repl)
	}
	return src
}

func collapseBlankLines(src string, _ Options) string {
	src = blankLineRuns.ReplaceAllLiteralString(src, "\n\n")
	return strings.Trim(src, "\n")
}
