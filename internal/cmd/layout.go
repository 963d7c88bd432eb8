package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/april-engine/schemagen/internal/codegen/generator"
	"github.com/april-engine/schemagen/internal/codegen/manifest"
	"github.com/april-engine/schemagen/internal/configpaths"
	"github.com/april-engine/schemagen/internal/log"
)

// Layout prints the resolved struct layouts without generating anything.
type Layout struct {
	InputDir string        `help:"Directory scanned recursively for shared schema files" required:"" env:"SCHEMAGEN_INPUT_DIR"`
	Format   string        `help:"Report format" enum:"json,yaml,toml" default:"json" env:"SCHEMAGEN_LAYOUT_FORMAT"`
	Query    string        `help:"jq expression applied to the report; results are printed as JSON lines"`
	Output   string        `help:"Write the report to this file instead of stdout"`
	Schema   SchemaOptions `embed:""`

	out io.Writer `kong:"-"`
}

// Run is called by Kong when the layout command is executed.
func (c *Layout) Run(logger *slog.Logger) error {
	md, err := generator.New(c.Schema.generatorConfig(), log.NewDiagnosticSink(logger)).Load(c.InputDir)
	if err != nil {
		return err
	}
	report := manifest.Layouts(md)
	logger.Debug("Resolved layouts", "structs", len(report.Structs))

	w := c.out
	if w == nil {
		w = os.Stdout
	}
	if c.Query == "" && c.Output == "" {
		return manifest.Write(w, report, c.Format)
	}

	var data []byte
	if c.Query != "" {
		results, err := manifest.Query(report, c.Query)
		if err != nil {
			return err
		}
		for _, r := range results {
			line, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("encode query result: %w", err)
			}
			data = append(append(data, line...), '\n')
		}
	} else if data, err = manifest.Marshal(report, c.Format); err != nil {
		return err
	}

	if c.Output != "" {
		if err := configpaths.EnsureDir(c.Output); err != nil {
			return err
		}
		return os.WriteFile(c.Output, data, 0o644)
	}
	_, err = w.Write(data)
	return err
}
