// Package slang renders the shader-side companion of a shared schema file.
// Declarations keep their source syntax; only imports are synthesized.
package slang

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/april-engine/schemagen/internal/codegen/common"
	"github.com/april-engine/schemagen/internal/codegen/meta"
)

// DefaultImportPrefix is the module path generated companions live under.
const DefaultImportPrefix = "material.generated"

const companionTemplate = `// AUTO-GENERATED from {{.Source}} - DO NOT EDIT
// Generated shader-side declarations from shared schema.

{{range .Imports}}import {{$.Prefix}}.{{.}};
{{end}}{{if and .Imports .File.ImportLines}}
{{end}}{{range .File.ImportLines}}{{.}}
{{end}}{{if .File.ImportLines}}
{{end}}{{range .File.Constants}}static const {{.Type}} {{.Name}} = {{.Value}};
{{end}}{{if .File.Constants}}
{{end}}{{range .File.Enums}}enum class {{.Name}}{{with .BackingType}} : {{.}}{{end}}
{
{{with indent 4 .Body}}{{.}}
{{end}}};

{{end}}{{range .File.Structs}}struct {{.Name}}
{
{{with indent 4 .Body}}{{.}}
{{end}}};

{{end}}`

var companionTmpl = template.Must(template.New("companion").Funcs(template.FuncMap{
	"indent": common.Reindent,
}).Parse(companionTemplate))

// Input is everything needed to render one companion file.
type Input struct {
	File *meta.SchemaFile
	// OutputPath is where the companion will be written.
	OutputPath string
	// Dependencies are the companion paths of imported modules.
	Dependencies []string
	// Prefix is the module path of generated companions.
	Prefix string
}

// Render produces the companion text for in. Trailing whitespace is trimmed
// and the result always ends with a single newline.
func Render(in Input) ([]byte, error) {
	prefix := in.Prefix
	if prefix == "" {
		prefix = DefaultImportPrefix
	}
	data := struct {
		Source  string
		Prefix  string
		Imports []string
		File    *meta.SchemaFile
	}{
		Source:  filepath.ToSlash(in.File.Path),
		Prefix:  prefix,
		Imports: importModules(in.OutputPath, in.Dependencies),
		File:    in.File,
	}

	var buf bytes.Buffer
	if err := companionTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute companion template for %s: %w", in.File.Path, err)
	}
	out := strings.TrimRight(buf.String(), " \t\r\n") + "\n"
	return []byte(out), nil
}

// importModules maps dependency companions to sorted, unique module names,
// skipping the file being rendered.
func importModules(outputPath string, deps []string) []string {
	seen := make(map[string]bool, len(deps))
	var out []string
	for _, dep := range deps {
		if filepath.Clean(dep) == filepath.Clean(outputPath) {
			continue
		}
		name := common.GeneratedModuleName(filepath.Base(dep))
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
