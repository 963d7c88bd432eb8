package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/april-engine/schemagen/internal/codegen/diag"
)

const lightsSchema = `import material.common_types;
__exported import material.Shared-Math;

// @export-cpp
static const uint kMaxLights = 16u;

// @export-cpp: LightFlags
enum class LightFlag : uint
{
    None = 0,
    CastShadows = 0x1,
    Volumetric = 1 << 1,
};

// @export-cpp
enum LightType
{
    Point,
    Spot,
};

/* block comment between marker and struct is skipped */
// @export-cpp: GpuLight
// a trailing line comment
/* and a block comment */
struct PointLight : IDifferentiable
{
    float3 position;
    float radius;

    [mutating]
    void setRadius(float r) { this.radius = r; }
};
`

func TestParse_Declarations(t *testing.T) {
	s := New("", "", nil)
	file, err := s.Parse("shaders/lights.shared.slang", lightsSchema)
	require.NoError(t, err)

	assert.Equal(t, "lights", file.Module)
	assert.True(t, file.HasExports())

	require.Len(t, file.Constants, 1)
	assert.Equal(t, "kMaxLights", file.Constants[0].Name)
	assert.Equal(t, "kMaxLights", file.Constants[0].Alias)
	assert.Equal(t, "uint", file.Constants[0].Type)
	assert.Equal(t, "16u", file.Constants[0].Value)

	require.Len(t, file.Enums, 2)
	assert.Equal(t, "LightFlag", file.Enums[0].Name)
	assert.Equal(t, "LightFlags", file.Enums[0].Alias)
	assert.Equal(t, "uint", file.Enums[0].BackingType)
	assert.True(t, file.Enums[0].IsFlags())
	assert.Equal(t, "LightType", file.Enums[1].Name)
	assert.Empty(t, file.Enums[1].BackingType)
	assert.False(t, file.Enums[1].IsFlags())

	require.Len(t, file.Structs, 1)
	st := file.Structs[0]
	assert.Equal(t, "PointLight", st.Name)
	assert.Equal(t, "GpuLight", st.Alias)
	assert.Contains(t, st.Body, "float3 position;")
	assert.Contains(t, st.Body, "this.radius = r;")
	require.Len(t, st.Fields, 2)
	assert.Equal(t, "position", st.Fields[0].Name)
	assert.Equal(t, "float3", st.Fields[0].Type)
	assert.Equal(t, "radius", st.Fields[1].Name)
}

func TestParse_NestedBracesBalance(t *testing.T) {
	src := `// @export-cpp
struct Outer
{
    float value;
    float get() { if (value > 0) { return value; } return 0; }
};
float trailing() { return 1; }
`
	file, err := New("", "", nil).Parse("outer.shared.slang", src)
	require.NoError(t, err)
	require.Len(t, file.Structs, 1)
	assert.NotContains(t, file.Structs[0].Body, "trailing")
	assert.Contains(t, file.Structs[0].Body, "return value; }")
}

func TestParse_UnmatchedBraceIsFatal(t *testing.T) {
	src := "\n\n// @export-cpp\nstruct Broken\n{\n    float x;\n"
	_, err := New("", "", nil).Parse("broken.shared.slang", src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnmatchedBrace))

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "broken.shared.slang", perr.File)
	assert.Equal(t, 5, perr.Line)
	assert.Equal(t, "Broken", perr.Decl)
}

func TestParse_LenientAndIgnoredMarkers(t *testing.T) {
	cases := []struct {
		name      string
		src       string
		wantSkips int
	}{
		{
			name:      "unterminated constant is skipped with a diagnostic",
			src:       "// @export-cpp\nstatic const float kPi = 3.14159",
			wantSkips: 1,
		},
		{
			name: "marker before a function is ignored",
			src:  "// @export-cpp\nfloat helper(float x) { return x; }\n",
		},
		{
			name: "marker at end of input is ignored",
			src:  "struct NotExported { float x; };\n// @export-cpp\n",
		},
		{
			name: "marker before a plain variable is ignored",
			src:  "// @export-cpp\nfloat gValue = 1.0;\n",
		},
		{
			name: "marker with trailing text is not a marker",
			src:  "// @export-cpp please\nstruct Foo { float x; };\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var sink diag.Collector
			file, err := New("", "", &sink).Parse("x.shared.slang", tc.src)
			require.NoError(t, err)
			assert.False(t, file.HasExports())
			assert.Len(t, sink.OfKind(diag.KindSkip), tc.wantSkips)
		})
	}
}

func TestParse_EnumHeaderVariants(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		enum    string
		backing string
	}{
		{"plain", "// @export-cpp\nenum Mode { A, B };", "Mode", ""},
		{"class", "// @export-cpp\nenum class Mode { A };", "Mode", ""},
		{"class with backing", "// @export-cpp\nenum class Mode:uint16_t{ A };", "Mode", "uint16_t"},
		{"enum named class", "// @export-cpp\nenum class { A };", "class", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			file, err := New("", "", nil).Parse("e.shared.slang", tc.src)
			require.NoError(t, err)
			require.Len(t, file.Enums, 1)
			assert.Equal(t, tc.enum, file.Enums[0].Name)
			assert.Equal(t, tc.backing, file.Enums[0].BackingType)
		})
	}
}

func TestParse_CustomMarker(t *testing.T) {
	src := "// @shared: Foo\nstruct Bar { float x; };\n// @export-cpp\nstruct Baz { float y; };\n"
	file, err := New("@shared", "", nil).Parse("m.shared.slang", src)
	require.NoError(t, err)
	require.Len(t, file.Structs, 1)
	assert.Equal(t, "Bar", file.Structs[0].Name)
	assert.Equal(t, "Foo", file.Structs[0].Alias)
}

func TestParseFile_ReadError(t *testing.T) {
	_, err := New("", "", nil).ParseFile("does/not/exist.shared.slang")
	require.Error(t, err)
}
