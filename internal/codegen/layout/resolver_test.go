package layout_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/april-engine/schemagen/internal/codegen/layout"
	"github.com/april-engine/schemagen/internal/codegen/meta"
)

func structDecl(name string, fields ...meta.Field) meta.StructDecl {
	return meta.StructDecl{Name: name, Alias: name, Fields: fields}
}

func field(typ, name string) meta.Field { return meta.Field{Type: typ, Name: name} }

func file(path string, structs ...meta.StructDecl) *meta.SchemaFile {
	return &meta.SchemaFile{Path: path, Structs: structs}
}

func TestResolve_LinearPacking(t *testing.T) {
	type testCase struct {
		name    string
		decl    meta.StructDecl
		size    int
		offsets []int
	}

	cases := []testCase{
		{
			name:    "three scalars round up to 16",
			decl:    structDecl("S", field("float", "a"), field("uint", "b"), field("int", "c")),
			size:    16,
			offsets: []int{0, 4, 8},
		},
		{
			name:    "float3 plus scalar is already aligned",
			decl:    structDecl("S", field("float3", "p"), field("float", "r")),
			size:    16,
			offsets: []int{0, 12},
		},
		{
			name:    "single float3 rounds to 16",
			decl:    structDecl("S", field("float3", "p")),
			size:    16,
			offsets: []int{0},
		},
		{
			name:    "half precision vectors are two bytes per component",
			decl:    structDecl("S", field("float16_t", "a"), field("float16_t3", "b"), field("float16_t4", "c")),
			size:    16,
			offsets: []int{0, 2, 8},
		},
		{
			name:    "matrices",
			decl:    structDecl("S", field("float2x2", "a"), field("float3x3", "b"), field("float4x4", "c")),
			size:    128,
			offsets: []int{0, 16, 64},
		},
		{
			name: "fixed arrays multiply the element size",
			decl: structDecl("S",
				meta.Field{Type: "float4", Name: "colors", ArrayLen: "3"},
				meta.Field{Type: "uint", Name: "ids", ArrayLen: "0x4"},
			),
			size:    64,
			offsets: []int{0, 48},
		},
		{
			name:    "offsets are unrounded per field",
			decl:    structDecl("S", field("float3", "a"), field("float3", "b"), field("float2", "c")),
			size:    32,
			offsets: []int{0, 12, 24},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layouts, err := layout.NewContext().Resolve([]*meta.SchemaFile{file("a.shared.slang", tc.decl)})
			require.NoError(t, err)
			l := layouts[tc.decl.Name]
			assert.Equal(t, tc.size, l.Size)
			assert.Equal(t, tc.offsets, l.Offsets())
			assert.Zero(t, l.Size%layout.Alignment)
		})
	}
}

func TestResolve_ForwardStructReferencesAcrossFiles(t *testing.T) {
	// Outer is seen first but embeds Inner from a later file.
	outer := structDecl("Outer", field("Inner", "inner"), field("float", "weight"))
	inner := structDecl("Inner", field("float3", "p"))
	layouts, err := layout.NewContext().Resolve([]*meta.SchemaFile{
		file("b.shared.slang", outer),
		file("a.shared.slang", inner),
	})
	require.NoError(t, err)
	assert.Equal(t, 16, layouts["Inner"].Size)
	assert.Equal(t, 32, layouts["Outer"].Size)
	assert.Equal(t, []int{0, 16}, layouts["Outer"].Offsets())
}

func TestResolve_EnumsAndConstants(t *testing.T) {
	f := &meta.SchemaFile{
		Path:      "e.shared.slang",
		Enums:     []meta.EnumDecl{{Name: "Mode"}, {Name: "Small", BackingType: "uint16_t"}},
		Constants: []meta.ConstantDecl{{Name: "kCount", Type: "uint", Value: "4u"}},
		Structs: []meta.StructDecl{structDecl("S",
			field("Mode", "mode"),
			field("Small", "small"),
			meta.Field{Type: "float", Name: "values", ArrayLen: "kCount"},
		)},
	}
	layouts, err := layout.NewContext().Resolve([]*meta.SchemaFile{f})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4, 6}, layouts["S"].Offsets())
	assert.Equal(t, 32, layouts["S"].Size)
}

func TestResolve_UndefinedTypeFailsWithStructNamed(t *testing.T) {
	bad := structDecl("Bad", field("float", "ok"), field("Missing", "nope"))
	good := structDecl("Good", field("float", "x"))
	user := structDecl("User", field("Bad", "b"))

	_, err := layout.NewContext().Resolve([]*meta.SchemaFile{file("x.shared.slang", bad, good, user)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, layout.ErrUnresolvable))

	var lerr *layout.Error
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, []string{"Bad", "User"}, lerr.Structs())
	assert.Contains(t, err.Error(), "undefined type Missing")
	assert.Contains(t, err.Error(), "depends on unresolved struct Bad")
	assert.Empty(t, lerr.Cycles)

	// Removing the bad field makes the batch succeed.
	fixed := structDecl("Bad", field("float", "ok"))
	layouts, err := layout.NewContext().Resolve([]*meta.SchemaFile{file("x.shared.slang", fixed, good, user)})
	require.NoError(t, err)
	assert.Equal(t, 16, layouts["User"].Size)
}

func TestResolve_CyclesAreReportedTogether(t *testing.T) {
	a := structDecl("A", field("B", "b"))
	b := structDecl("B", field("A", "a"))
	self := structDecl("Self", field("Self", "next"))
	ok := structDecl("Ok", field("float", "x"))

	_, err := layout.NewContext().Resolve([]*meta.SchemaFile{file("c.shared.slang", a, b, self, ok)})
	var lerr *layout.Error
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, []string{"A", "B", "Self"}, lerr.Structs())
	assert.Equal(t, [][]string{{"A", "B", "A"}, {"Self", "Self"}}, lerr.Cycles)
}

func TestResolve_UnresolvedArrayLength(t *testing.T) {
	s := structDecl("S", meta.Field{Type: "float", Name: "data", ArrayLen: "?"})
	_, err := layout.NewContext().Resolve([]*meta.SchemaFile{file("s.shared.slang", s)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unresolved array length "?"`)
}

func TestResolve_DuplicateStruct(t *testing.T) {
	_, err := layout.NewContext().Resolve([]*meta.SchemaFile{
		file("a.shared.slang", structDecl("S", field("float", "x"))),
		file("b.shared.slang", structDecl("S", field("float", "y"))),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, layout.ErrDuplicateStruct))
}

func TestContext_RunsDoNotShareState(t *testing.T) {
	first := layout.NewContext()
	_, err := first.Resolve([]*meta.SchemaFile{file("a.shared.slang", structDecl("Only", field("float", "x")))})
	require.NoError(t, err)
	_, ok := first.TypeSize("Only")
	assert.True(t, ok)

	second := layout.NewContext()
	_, ok = second.TypeSize("Only")
	assert.False(t, ok)
}

func TestResolve_FixedWidthIntegerFields(t *testing.T) {
	s := structDecl("P",
		field("uint16_t", "a"),
		field("int16_t", "b"),
		field("float", "c"),
		field("uint8_t", "d"),
		field("uint64_t", "e"),
	)
	layouts, err := layout.NewContext().Resolve([]*meta.SchemaFile{file("p.shared.slang", s)})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4, 8, 9}, layouts["P"].Offsets())
	assert.Equal(t, 32, layouts["P"].Size)
}
