// Package generator drives a batch: it discovers shared schema files, resolves
// modules and layouts for the whole batch, renders every artifact in memory
// and only then writes them.
package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/april-engine/schemagen/internal/codegen/common"
	"github.com/april-engine/schemagen/internal/codegen/diag"
	"github.com/april-engine/schemagen/internal/codegen/generator/cpp"
	"github.com/april-engine/schemagen/internal/codegen/generator/slang"
	"github.com/april-engine/schemagen/internal/codegen/layout"
	"github.com/april-engine/schemagen/internal/codegen/meta"
	"github.com/april-engine/schemagen/internal/codegen/scanner"
)

// ErrStale is returned in check mode when generated files on disk differ from
// what the schema sources produce.
var ErrStale = errors.New("generated files are out of date")

// Config selects markers, naming and the fixed parts of the emitted files.
type Config struct {
	Marker       string
	Suffix       string
	ImportPrefix string
	Header       cpp.Options
	// Check compares rendered output with the files on disk instead of
	// writing.
	Check bool
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Marker:       scanner.DefaultMarker,
		Suffix:       common.DefaultSchemaSuffix,
		ImportPrefix: slang.DefaultImportPrefix,
		Header:       cpp.DefaultOptions(),
	}
}

// Target names an output flavour.
type Target string

const (
	// TargetHeader is the C++ header mirroring a schema file.
	TargetHeader Target = "cpp"
	// TargetShader is the Slang companion module.
	TargetShader Target = "slang"
)

// Artifact is one rendered output file.
type Artifact struct {
	Target  Target
	Path    string
	Source  string // schema file it was generated from
	Content []byte
}

// Result describes a finished batch.
type Result struct {
	Metadata  *meta.Metadata
	Artifacts []Artifact
	// Generated counts schema files with at least one export.
	Generated int
}

// Generator turns a tree of schema files into headers and companions. It keeps
// no state between runs.
type Generator struct {
	cfg  Config
	sink diag.Sink
}

// New creates a Generator. Zero config fields fall back to DefaultConfig; a
// nil sink discards diagnostics.
func New(cfg Config, sink diag.Sink) *Generator {
	def := DefaultConfig()
	if cfg.Marker == "" {
		cfg.Marker = def.Marker
	}
	if cfg.Suffix == "" {
		cfg.Suffix = def.Suffix
	}
	if cfg.ImportPrefix == "" {
		cfg.ImportPrefix = def.ImportPrefix
	}
	if cfg.Header.Namespace == "" {
		cfg.Header.Namespace = def.Header.Namespace
	}
	if cfg.Header.HelperGuard == "" {
		cfg.Header.HelperGuard = def.Header.HelperGuard
	}
	if cfg.Header.Includes == nil {
		cfg.Header.Includes = def.Header.Includes
	}
	if cfg.Header.FlagMacro == "" {
		cfg.Header.FlagMacro = def.Header.FlagMacro
	}
	if sink == nil {
		sink = diag.Discard
	}
	return &Generator{cfg: cfg, sink: sink}
}

// Generate processes inputDir with the default configuration.
func Generate(inputDir, shaderOutDir, headerOutDir string, sink diag.Sink) (int, error) {
	return New(DefaultConfig(), sink).ProcessDirectory(inputDir, shaderOutDir, headerOutDir)
}

// ProcessDirectory generates a header and a companion for every schema file
// under inputDir that exports something and returns how many files did.
func (g *Generator) ProcessDirectory(inputDir, shaderOutDir, headerOutDir string) (int, error) {
	res, err := g.Run(inputDir, shaderOutDir, headerOutDir)
	if res == nil {
		return 0, err
	}
	return res.Generated, err
}

// Run is ProcessDirectory returning the full batch result. Nothing is written
// unless the whole batch parses, resolves and renders.
func (g *Generator) Run(inputDir, shaderOutDir, headerOutDir string) (*Result, error) {
	md, err := g.Load(inputDir)
	if err != nil {
		return nil, err
	}
	artifacts, err := g.Render(md, inputDir, shaderOutDir, headerOutDir)
	if err != nil {
		return nil, err
	}

	res := &Result{Metadata: md, Artifacts: artifacts}
	for _, f := range md.Files {
		if f.HasExports() {
			res.Generated++
		}
	}

	if g.cfg.Check {
		err = g.check(artifacts)
	} else {
		err = g.write(artifacts)
	}

	for _, f := range md.Files {
		if !f.HasExports() {
			g.sink.Report(diag.Diagnostic{
				Kind:    diag.KindNoExports,
				File:    f.Path,
				Message: fmt.Sprintf("no %s annotations found", g.cfg.Marker),
			})
		}
	}
	return res, err
}

// Load discovers and parses every schema file under inputDir and resolves the
// layout of every exported struct.
func (g *Generator) Load(inputDir string) (*meta.Metadata, error) {
	paths, err := g.discover(inputDir)
	if err != nil {
		return nil, err
	}

	sc := scanner.New(g.cfg.Marker, g.cfg.Suffix, g.sink)
	md := &meta.Metadata{Files: make([]*meta.SchemaFile, 0, len(paths))}
	for _, p := range paths {
		f, err := sc.ParseFile(p)
		if err != nil {
			return nil, err
		}
		if rel, err := filepath.Rel(inputDir, p); err == nil {
			f.RelPath = filepath.ToSlash(rel)
		}
		md.Files = append(md.Files, f)
	}

	layouts, err := layout.NewContext().Resolve(md.Files)
	if err != nil {
		return nil, fmt.Errorf("resolve struct layouts: %w", err)
	}
	md.Layouts = layouts
	return md, nil
}

// Render builds the module graph and renders both artifacts of every
// exporting file. It never touches the output directories.
func (g *Generator) Render(md *meta.Metadata, inputDir, shaderOutDir, headerOutDir string) ([]Artifact, error) {
	md.Graph = make(meta.ModuleGraph)
	for _, f := range md.Files {
		if !f.HasExports() {
			continue
		}
		md.Graph[f.Module] = g.outputsFor(f, inputDir, shaderOutDir, headerOutDir)
	}

	var artifacts []Artifact
	for _, f := range md.Files {
		if !f.HasExports() {
			continue
		}
		own := md.Graph[f.Module]
		var headerDeps, shaderDeps []string
		for _, dep := range md.Graph.Dependencies(f) {
			headerDeps = append(headerDeps, dep.Header)
			shaderDeps = append(shaderDeps, dep.Shader)
		}

		header, err := cpp.Render(g.cfg.Header, cpp.Input{
			File:         f,
			OutputPath:   own.Header,
			Dependencies: headerDeps,
			Layouts:      md.Layouts,
		})
		if err != nil {
			return nil, err
		}
		shader, err := slang.Render(slang.Input{
			File:         f,
			OutputPath:   own.Shader,
			Dependencies: shaderDeps,
			Prefix:       g.cfg.ImportPrefix,
		})
		if err != nil {
			return nil, err
		}

		artifacts = append(artifacts,
			Artifact{Target: TargetHeader, Path: own.Header, Source: f.Path, Content: header},
			Artifact{Target: TargetShader, Path: own.Shader, Source: f.Path, Content: shader},
		)
	}
	return artifacts, nil
}

// outputsFor mirrors the file's directory below inputDir into both output
// trees.
func (g *Generator) outputsFor(f *meta.SchemaFile, inputDir, shaderOutDir, headerOutDir string) meta.Outputs {
	rel := f.RelPath
	if rel == "" {
		if r, err := filepath.Rel(inputDir, filepath.FromSlash(f.Path)); err == nil {
			rel = filepath.ToSlash(r)
		} else {
			rel = filepath.Base(f.Path)
		}
	}
	dir, base := filepath.Split(filepath.FromSlash(rel))
	return meta.Outputs{
		Header: filepath.Join(headerOutDir, dir, common.GeneratedName(base, g.cfg.Suffix, ".hpp")),
		Shader: filepath.Join(shaderOutDir, dir, common.GeneratedName(base, g.cfg.Suffix, ".slang")),
	}
}

func (g *Generator) discover(inputDir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(inputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), g.cfg.Suffix) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", inputDir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func (g *Generator) write(artifacts []Artifact) error {
	for _, a := range artifacts {
		if existing, err := os.ReadFile(a.Path); err == nil && bytes.Equal(existing, a.Content) {
			g.sink.Report(diag.Diagnostic{Kind: diag.KindGenerated, File: a.Path, Message: "unchanged"})
			continue
		}
		if err := os.MkdirAll(filepath.Dir(a.Path), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", a.Path, err)
		}
		if err := os.WriteFile(a.Path, a.Content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", a.Path, err)
		}
		g.sink.Report(diag.Diagnostic{Kind: diag.KindGenerated, File: a.Path, Message: "generated from " + a.Source})
	}
	return nil
}

func (g *Generator) check(artifacts []Artifact) error {
	stale := 0
	for _, a := range artifacts {
		existing, err := os.ReadFile(a.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			stale++
			g.sink.Report(diag.Diagnostic{Kind: diag.KindStale, File: a.Path, Message: "missing"})
		case err != nil:
			return fmt.Errorf("read %s: %w", a.Path, err)
		case !bytes.Equal(existing, a.Content):
			stale++
			g.sink.Report(diag.Diagnostic{Kind: diag.KindStale, File: a.Path, Message: "out of date with " + a.Source})
		}
	}
	if stale > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrStale, stale, len(artifacts))
	}
	return nil
}
