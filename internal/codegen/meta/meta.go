package meta

import "strings"

// SchemaFile holds everything parsed from one shared schema source.
// Parsed once per run and never cached across runs.
type SchemaFile struct {
	Path        string // path as discovered, slash separated
	RelPath     string // path relative to the input directory
	Module      string // normalized module identifier
	Content     string
	Imports     []string // normalized module identifiers
	ImportLines []string // verbatim import statements, trimmed
	Enums       []EnumDecl
	Structs     []StructDecl
	Constants   []ConstantDecl
}

// HasExports reports whether the file exported at least one declaration.
func (f *SchemaFile) HasExports() bool {
	return len(f.Enums) > 0 || len(f.Structs) > 0 || len(f.Constants) > 0
}

// EnumDecl is an exported enum.
type EnumDecl struct {
	Name        string
	Alias       string // emitted C++ name, equals Name without an alias
	BackingType string // empty when not declared
	Body        string
	Line        int
}

// IsFlags classifies an enum whose values are combinable bit patterns: the
// body mentions a hex literal, a left shift or a bitwise or.
func (e EnumDecl) IsFlags() bool {
	return strings.Contains(e.Body, "0x") || strings.Contains(e.Body, "<<") || strings.Contains(e.Body, "|")
}

// StructDecl is an exported struct.
type StructDecl struct {
	Name   string
	Alias  string
	Fields []Field
	Body   string
	Line   int
}

// ConstantDecl is an exported constant.
type ConstantDecl struct {
	Name  string
	Alias string
	Type  string
	Value string
	Line  int
}

// Field is a data member of an exported struct.
type Field struct {
	Type     string
	Name     string
	ArrayLen string // empty for scalars; integer literal or constant name otherwise
}

// IsArray reports whether the field has a fixed array length.
func (f Field) IsArray() bool { return f.ArrayLen != "" }

// Outputs are the two artifacts generated for one schema file.
type Outputs struct {
	Header string
	Shader string
}

// ModuleGraph maps a normalized module identifier to its generated outputs.
// It covers every exporting file of the batch and is built before any file
// resolves its dependencies, so import order never matters.
type ModuleGraph map[string]Outputs

// Dependencies returns the outputs of every module imported by f that is part
// of the graph, excluding f's own outputs.
func (g ModuleGraph) Dependencies(f *SchemaFile) []Outputs {
	own := g[f.Module]
	var deps []Outputs
	for _, mod := range f.Imports {
		out, ok := g[mod]
		if !ok || out == own {
			continue
		}
		deps = append(deps, out)
	}
	return deps
}

// FieldOffset is the placement of one field in a resolved struct.
type FieldOffset struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Type   string `json:"type" yaml:"type" toml:"type"`
	Offset int    `json:"offset" yaml:"offset" toml:"offset"`
	Size   int    `json:"size" yaml:"size" toml:"size"`
}

// Layout is the computed size and field placement of a struct. Immutable once
// resolved.
type Layout struct {
	Size   int           `json:"size" yaml:"size" toml:"size"`
	Fields []FieldOffset `json:"fields" yaml:"fields" toml:"fields"`
}

// Offsets returns the field offsets in declaration order.
func (l Layout) Offsets() []int {
	out := make([]int, len(l.Fields))
	for i, f := range l.Fields {
		out[i] = f.Offset
	}
	return out
}

// Metadata holds the globally resolved state of a batch. It is shared between
// the orchestrator and the per-target emitters and is read-only once built.
type Metadata struct {
	Files   []*SchemaFile
	Graph   ModuleGraph
	Layouts map[string]Layout // struct source name -> layout
}
