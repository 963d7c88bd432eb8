package cmd

import (
	"github.com/april-engine/schemagen/internal/codegen/generator"
	"github.com/april-engine/schemagen/internal/codegen/generator/cpp"
)

// SchemaOptions are the generator settings shared by every command that reads
// schema files.
type SchemaOptions struct {
	Marker       string   `help:"Export annotation marker" default:"@export-cpp" env:"SCHEMAGEN_MARKER"`
	Suffix       string   `help:"File suffix of shared schema sources" default:".shared.slang" env:"SCHEMAGEN_SUFFIX"`
	Namespace    string   `help:"C++ namespace of generated declarations" default:"april::graphics::inline generated" env:"SCHEMAGEN_NAMESPACE"`
	HelperGuard  string   `help:"Macro guarding the shared helper block" default:"APRIL_GRAPHICS_GENERATED_SLANG_HELPERS" env:"SCHEMAGEN_HELPER_GUARD"`
	Includes     []string `help:"Foundation includes of every header" default:"<core/math/type.hpp>,<core/tools/enum-flags.hpp>,<glm/gtc/packing.hpp>,<cstdint>" env:"SCHEMAGEN_INCLUDES"`
	FlagMacro    string   `help:"Macro enabling bitwise operators on flag enums" default:"AP_ENUM_CLASS_OPERATORS" env:"SCHEMAGEN_FLAG_MACRO"`
	ImportPrefix string   `help:"Slang module prefix of generated companions" default:"material.generated" env:"SCHEMAGEN_IMPORT_PREFIX"`
}

func (o SchemaOptions) generatorConfig() generator.Config {
	return generator.Config{
		Marker:       o.Marker,
		Suffix:       o.Suffix,
		ImportPrefix: o.ImportPrefix,
		Header: cpp.Options{
			Namespace:   o.Namespace,
			HelperGuard: o.HelperGuard,
			Includes:    o.Includes,
			FlagMacro:   o.FlagMacro,
		},
	}
}
