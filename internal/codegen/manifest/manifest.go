// Package manifest describes a finished batch: which artifacts were produced
// from which sources, and the resolved struct layouts.
package manifest

import (
	"encoding/hex"
	"path/filepath"
	"sort"

	"golang.org/x/crypto/blake2b"

	"github.com/april-engine/schemagen/internal/codegen/common"
	"github.com/april-engine/schemagen/internal/codegen/generator"
	"github.com/april-engine/schemagen/internal/codegen/meta"
)

// Manifest lists every artifact of a batch with a content fingerprint.
type Manifest struct {
	Version   string  `json:"version" yaml:"version" toml:"version"`
	Generated int     `json:"generated" yaml:"generated" toml:"generated"`
	Artifacts []Entry `json:"artifacts" yaml:"artifacts" toml:"artifacts"`
}

// Entry is one generated file.
type Entry struct {
	Target string `json:"target" yaml:"target" toml:"target"`
	Path   string `json:"path" yaml:"path" toml:"path"`
	Source string `json:"source" yaml:"source" toml:"source"`
	Size   int    `json:"size" yaml:"size" toml:"size"`
	Digest string `json:"digest" yaml:"digest" toml:"digest"`
}

// Build creates the manifest of a batch result, ordered by path.
func Build(res *generator.Result) (*Manifest, error) {
	version, err := common.GetVersion()
	if err != nil {
		return nil, err
	}
	m := &Manifest{Version: version, Generated: res.Generated}
	for _, a := range res.Artifacts {
		m.Artifacts = append(m.Artifacts, Entry{
			Target: string(a.Target),
			Path:   filepath.ToSlash(a.Path),
			Source: a.Source,
			Size:   len(a.Content),
			Digest: Digest(a.Content),
		})
	}
	sort.Slice(m.Artifacts, func(i, j int) bool { return m.Artifacts[i].Path < m.Artifacts[j].Path })
	return m, nil
}

// Digest is the hex BLAKE2b-256 of content.
func Digest(content []byte) string {
	sum := blake2b.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// LayoutReport lists the resolved layout of every exported struct.
type LayoutReport struct {
	Structs []StructLayout `json:"structs" yaml:"structs" toml:"structs"`
}

// StructLayout is the layout of one struct.
type StructLayout struct {
	Name   string             `json:"name" yaml:"name" toml:"name"`
	Alias  string             `json:"alias" yaml:"alias" toml:"alias"`
	File   string             `json:"file" yaml:"file" toml:"file"`
	Size   int                `json:"size" yaml:"size" toml:"size"`
	Fields []meta.FieldOffset `json:"fields" yaml:"fields" toml:"fields"`
}

// Layouts builds the layout report of md, ordered by struct name.
func Layouts(md *meta.Metadata) *LayoutReport {
	r := &LayoutReport{}
	for _, f := range md.Files {
		for _, s := range f.Structs {
			l, ok := md.Layouts[s.Name]
			if !ok {
				continue
			}
			r.Structs = append(r.Structs, StructLayout{
				Name:   s.Name,
				Alias:  s.Alias,
				File:   f.Path,
				Size:   l.Size,
				Fields: l.Fields,
			})
		}
	}
	sort.Slice(r.Structs, func(i, j int) bool { return r.Structs[i].Name < r.Structs[j].Name })
	return r
}
