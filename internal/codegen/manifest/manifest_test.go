package manifest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/april-engine/schemagen/internal/codegen/generator"
	"github.com/april-engine/schemagen/internal/codegen/meta"
)

func sampleResult() *generator.Result {
	return &generator.Result{
		Generated: 1,
		Artifacts: []generator.Artifact{
			{Target: generator.TargetShader, Path: "out/shaders/a.generated.slang", Source: "in/a.shared.slang", Content: []byte("struct A {};\n")},
			{Target: generator.TargetHeader, Path: "out/cpp/a.generated.hpp", Source: "in/a.shared.slang", Content: []byte("#pragma once\n")},
		},
	}
}

func sampleMetadata() *meta.Metadata {
	return &meta.Metadata{
		Files: []*meta.SchemaFile{
			{Path: "in/b.shared.slang", Structs: []meta.StructDecl{{Name: "Big", Alias: "GpuBig"}}},
			{Path: "in/a.shared.slang", Structs: []meta.StructDecl{{Name: "Small", Alias: "Small"}}},
			{Path: "in/empty.shared.slang"},
		},
		Layouts: map[string]meta.Layout{
			"Big": {Size: 32, Fields: []meta.FieldOffset{
				{Name: "a", Type: "float4", Offset: 0, Size: 16},
				{Name: "b", Type: "float3", Offset: 16, Size: 12},
			}},
			"Small": {Size: 16, Fields: []meta.FieldOffset{{Name: "x", Type: "float", Offset: 0, Size: 4}}},
		},
	}
}

func TestDigest(t *testing.T) {
	assert.Equal(t, "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8", Digest(nil))
	assert.Equal(t, Digest([]byte("abc")), Digest([]byte("abc")))
	assert.NotEqual(t, Digest([]byte("abc")), Digest([]byte("abd")))
}

func TestBuild(t *testing.T) {
	m, err := Build(sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 1, m.Generated)
	assert.NotEmpty(t, m.Version)
	require.Len(t, m.Artifacts, 2)
	assert.Equal(t, "out/cpp/a.generated.hpp", m.Artifacts[0].Path)
	assert.Equal(t, "cpp", m.Artifacts[0].Target)
	assert.Equal(t, len("#pragma once\n"), m.Artifacts[0].Size)
	assert.Equal(t, Digest([]byte("#pragma once\n")), m.Artifacts[0].Digest)
	assert.Equal(t, "slang", m.Artifacts[1].Target)
}

func TestLayouts(t *testing.T) {
	r := Layouts(sampleMetadata())
	require.Len(t, r.Structs, 2)
	assert.Equal(t, "Big", r.Structs[0].Name)
	assert.Equal(t, "GpuBig", r.Structs[0].Alias)
	assert.Equal(t, "in/b.shared.slang", r.Structs[0].File)
	assert.Equal(t, 32, r.Structs[0].Size)
	assert.Equal(t, "Small", r.Structs[1].Name)
}

func TestMarshal(t *testing.T) {
	m, err := Build(sampleResult())
	require.NoError(t, err)

	cases := []struct {
		format string
		want   []string
	}{
		{"json", []string{`"artifacts": [`, `"digest": "`, `"target": "cpp"`}},
		{"yaml", []string{"artifacts:", "digest: ", "target: cpp"}},
		{"yml", []string{"artifacts:"}},
		{"toml", []string{"[[artifacts]]", `digest = "`, `target = "cpp"`}},
	}
	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			data, err := Marshal(m, tc.format)
			require.NoError(t, err)
			for _, w := range tc.want {
				assert.Contains(t, string(data), w)
			}
		})
	}

	_, err = Marshal(m, "xml")
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Layouts(sampleMetadata()), "json"))
	assert.Contains(t, buf.String(), `"name": "Small"`)
	assert.Equal(t, byte('\n'), buf.Bytes()[buf.Len()-1])
}

func TestQuery(t *testing.T) {
	r := Layouts(sampleMetadata())

	names, err := Query(r, ".structs[].name")
	require.NoError(t, err)
	assert.Equal(t, []any{"Big", "Small"}, names)

	big, err := Query(r, `[.structs[] | select(.size > 16) | .alias]`)
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{"GpuBig"}}, big)

	fields, err := Query(r, `.structs[] | select(.name == "Big") | .fields | map(.name)`)
	require.NoError(t, err)
	assert.Equal(t, []any{[]any{"a", "b"}}, fields)

	_, err = Query(r, ".structs[")
	assert.Error(t, err)

	_, err = Query(r, `error("boom")`)
	assert.Error(t, err)
}
