// Package cpp renders the C++ header mirror of a shared schema file.
package cpp

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/april-engine/schemagen/internal/codegen/meta"
)

// Options controls the fixed parts of every header.
type Options struct {
	// Namespace wraps helpers and declarations.
	Namespace string
	// HelperGuard is the macro guarding the shared helper block.
	HelperGuard string
	// Includes are emitted verbatim after #include, e.g. "<cstdint>".
	Includes []string
	// FlagMacro is invoked with the name of every flag enum.
	FlagMacro string
}

// DefaultOptions returns the settings the engine headers expect.
func DefaultOptions() Options {
	return Options{
		Namespace:   "april::graphics::inline generated",
		HelperGuard: "APRIL_GRAPHICS_GENERATED_SLANG_HELPERS",
		Includes: []string{
			"<core/math/type.hpp>",
			"<core/tools/enum-flags.hpp>",
			"<glm/gtc/packing.hpp>",
			"<cstdint>",
		},
		FlagMacro: "AP_ENUM_CLASS_OPERATORS",
	}
}

// Input is everything needed to render one header.
type Input struct {
	File *meta.SchemaFile
	// OutputPath is where the header will be written.
	OutputPath string
	// Dependencies are the header paths of imported modules.
	Dependencies []string
	// Layouts holds the resolved layout of every struct in the batch.
	Layouts map[string]meta.Layout
}

type headerData struct {
	Options
	Source       string
	File         *meta.SchemaFile
	Dependencies []string
}

var headerTmpl = template.Must(template.New("header").Funcs(tplFuncs(nil)).Parse(headerTemplate))

// Render produces the header text for in.
func Render(opts Options, in Input) ([]byte, error) {
	deps, err := includePaths(in.OutputPath, in.Dependencies)
	if err != nil {
		return nil, err
	}

	tmpl, err := headerTmpl.Clone()
	if err != nil {
		return nil, fmt.Errorf("clone header template: %w", err)
	}
	tmpl.Funcs(tplFuncs(in.Layouts))

	data := headerData{
		Options:      opts,
		Source:       filepath.ToSlash(in.File.Path),
		File:         in.File,
		Dependencies: deps,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute header template for %s: %w", in.File.Path, err)
	}
	return buf.Bytes(), nil
}

// includePaths turns dependency headers into sorted, unique include paths
// relative to the header being rendered. The header itself is never included.
func includePaths(outputPath string, deps []string) ([]string, error) {
	seen := make(map[string]bool, len(deps))
	var out []string
	dir := filepath.Dir(outputPath)
	for _, dep := range deps {
		if filepath.Clean(dep) == filepath.Clean(outputPath) || seen[dep] {
			continue
		}
		seen[dep] = true
		rel, err := filepath.Rel(dir, dep)
		if err != nil {
			return nil, fmt.Errorf("relative include for %s: %w", dep, err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out, nil
}
