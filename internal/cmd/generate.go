package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/april-engine/schemagen/internal/codegen/diag"
	"github.com/april-engine/schemagen/internal/codegen/generator"
	"github.com/april-engine/schemagen/internal/codegen/manifest"
	"github.com/april-engine/schemagen/internal/configpaths"
	"github.com/april-engine/schemagen/internal/log"
)

type Generate struct {
	InputDir        string        `help:"Directory scanned recursively for shared schema files" env:"SCHEMAGEN_INPUT_DIR"`
	ShaderOutputDir string        `help:"Output directory for generated Slang files" env:"SCHEMAGEN_SHADER_OUTPUT_DIR"`
	HeaderOutputDir string        `help:"Output directory for generated C++ headers" env:"SCHEMAGEN_HEADER_OUTPUT_DIR"`
	Check           bool          `help:"Fail if generated files are missing or stale instead of writing them" env:"SCHEMAGEN_CHECK"`
	Manifest        string        `help:"Write a manifest of generated files; format follows the extension (.json, .yaml, .toml)" env:"SCHEMAGEN_MANIFEST"`
	Schema          SchemaOptions `embed:""`
}

// Validate rejects a partial set of directories.
func (c *Generate) Validate() error {
	if c.InputDir == "" || c.ShaderOutputDir == "" || c.HeaderOutputDir == "" {
		return errors.New("--input-dir, --shader-output-dir and --header-output-dir must be given together")
	}
	return nil
}

// Run is called by Kong when the generate command is executed.
func (c *Generate) Run(logger *slog.Logger) error {
	logger.Info("Starting schema generation",
		"input", c.InputDir, "shaders", c.ShaderOutputDir, "headers", c.HeaderOutputDir, "check", c.Check)

	sink := log.NewDiagnosticSink(logger)
	cfg := c.Schema.generatorConfig()
	cfg.Check = c.Check

	res, err := generator.New(cfg, sink).Run(c.InputDir, c.ShaderOutputDir, c.HeaderOutputDir)
	if err != nil {
		return err
	}
	logger.Info("Schema generation complete",
		"files", res.Generated,
		"artifacts", len(res.Artifacts),
		"without_exports", sink.Count(diag.KindNoExports),
		"skipped_markers", sink.Count(diag.KindSkip))

	if c.Manifest == "" {
		return nil
	}
	return writeManifest(logger, c.Manifest, res)
}

func writeManifest(logger *slog.Logger, path string, res *generator.Result) error {
	m, err := manifest.Build(res)
	if err != nil {
		return fmt.Errorf("build manifest: %w", err)
	}
	format := manifest.NormalizeFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		format = "json"
	}
	data, err := manifest.Marshal(m, format)
	if err != nil {
		return err
	}
	if err := configpaths.EnsureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	logger.Info("Wrote manifest", "file", path, "artifacts", len(m.Artifacts))
	return nil
}
