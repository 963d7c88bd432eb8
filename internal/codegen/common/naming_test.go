package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeModuleName(t *testing.T) {
	cases := map[string]string{
		"material.Shared-Types": "shared_types",
		"  lights ":             "lights",
		"a.b.Point-Light":       "point_light",
		"plain":                 "plain",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeModuleName(in), in)
	}
}

func TestModuleNameForFile(t *testing.T) {
	assert.Equal(t, "point_light", ModuleNameForFile("shaders/lights/Point-Light.shared.slang", DefaultSchemaSuffix))
	assert.Equal(t, "types", ModuleNameForFile(`math\types.shared.slang`, DefaultSchemaSuffix))
	assert.Equal(t, "types", ModuleNameForFile("types.schema.slang", DefaultSchemaSuffix))
}

func TestGeneratedName(t *testing.T) {
	assert.Equal(t, "lights.generated.hpp", GeneratedName("lights.shared.slang", DefaultSchemaSuffix, ".hpp"))
	assert.Equal(t, "lights.generated.slang", GeneratedName("lights.shared.slang", DefaultSchemaSuffix, ".slang"))
	assert.Equal(t, "lights.generated.hpp", GeneratedName("lights.gpu", ".shared.slang", ".hpp"))
}

func TestGeneratedModuleName(t *testing.T) {
	assert.Equal(t, "point_light", GeneratedModuleName("out/lights/point-light.generated.slang"))
	assert.Equal(t, "types", GeneratedModuleName("types.generated.slang"))
}
