// Command scan-exports dumps the declarations parsed from shared schema files
// as JSON. Pass files or directories; defaults to the working directory.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/april-engine/schemagen/internal/codegen/diag"
	"github.com/april-engine/schemagen/internal/codegen/generator"
)

func main() {
	roots := os.Args[1:]
	if len(roots) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to get working directory: %v\n", err)
			os.Exit(1)
		}
		roots = []string{wd}
	}

	sink := diag.SinkFunc(func(d diag.Diagnostic) {
		if d.Kind == diag.KindSkip {
			fmt.Fprintln(os.Stderr, d)
		}
	})
	g := generator.New(generator.DefaultConfig(), sink)

	type entry struct {
		File    string
		Module  string
		Imports []string
		Enums   any
		Structs any
		Consts  any
	}
	var out []entry
	for _, root := range roots {
		md, err := g.Load(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to scan %s: %v\n", root, err)
			os.Exit(1)
		}
		for _, f := range md.Files {
			if !f.HasExports() {
				continue
			}
			out = append(out, entry{
				File:    f.Path,
				Module:  f.Module,
				Imports: f.Imports,
				Enums:   f.Enums,
				Structs: f.Structs,
				Consts:  f.Constants,
			})
		}
	}

	output, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(output))
}
